// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The usgromana Authors

package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// parseEnv populates cfg from environment variables using the env and
// envPrefix struct tags, e.g. APP_TOKEN_SIGN_KEY or QUEUE_MAX_HISTORY_SIZE.
func parseEnv(cfg any) error {
	err := env.Parse(cfg)
	if err != nil {
		return fmt.Errorf("error getting env configs: %w", err)
	}

	return nil
}
