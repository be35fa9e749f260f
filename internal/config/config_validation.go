// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The usgromana Authors

package config

import (
	"fmt"
	"strings"
)

func (cfg *StructuredConfig) validate() error {
	switch strings.ToUpper(cfg.App.TokenAlgorithm) {
	case "", "HS256":
		if cfg.App.TokenSignKey == "" {
			return fmt.Errorf("%w: token sign key is required for HS256", ErrInvalidAppConfigs)
		}
	case "RS256":
		if cfg.App.TokenPrivateKeyFile == "" {
			return fmt.Errorf("%w: private key file is required for RS256", ErrInvalidAppConfigs)
		}
	default:
		return fmt.Errorf("%w: unsupported token algorithm %q", ErrInvalidAppConfigs, cfg.App.TokenAlgorithm)
	}

	if cfg.App.TokenDuration <= 0 || cfg.App.MaxTokenDuration < cfg.App.TokenDuration {
		return fmt.Errorf("%w: token duration must be positive and not exceed the maximum", ErrInvalidAppConfigs)
	}
	if cfg.App.ClaimSubject == "" || cfg.App.ClaimUsername == "" || cfg.App.ClaimSubject == cfg.App.ClaimUsername {
		return fmt.Errorf("%w: claim names must be distinct and non-empty", ErrInvalidAppConfigs)
	}

	if cfg.Storage.UsersFile == "" || cfg.Storage.GroupsFile == "" || cfg.Storage.OutputDir == "" || cfg.Storage.UsersRoot == "" {
		return ErrInvalidStorageConfigs
	}

	if cfg.Queue.MaxHistorySize <= 0 || cfg.Queue.FallbackOwner == "" || cfg.Queue.Workers < 0 {
		return ErrInvalidQueueConfigs
	}

	if cfg.Safety.Threshold < 0 || cfg.Safety.Threshold > 1 || cfg.Safety.EnforcementCacheSize <= 0 || cfg.Safety.LockStripes <= 0 {
		return ErrInvalidSafetyConfigs
	}

	return nil
}
