// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The usgromana Authors

package service

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/simcop2387/usgromana/internal/config"
	"github.com/simcop2387/usgromana/internal/logger"
	"github.com/simcop2387/usgromana/internal/utils"
	"github.com/simcop2387/usgromana/models"
)

// tokenService signs tokens with HS256 or RS256 and stores the identity
// under the configured claim names.
type tokenService struct {
	keys  utils.JWTKeys
	names utils.ClaimNames
	ttl   time.Duration

	logger *logger.Logger
}

// NewTokenService loads the signing keys described by cfg. RS256 key files
// are read once here.
func NewTokenService(cfg config.App, logger *logger.Logger) (TokenService, error) {
	var privatePEM, publicPEM []byte
	if cfg.TokenPrivateKeyFile != "" {
		b, err := os.ReadFile(cfg.TokenPrivateKeyFile)
		if err != nil {
			return nil, fmt.Errorf("read token private key: %w", err)
		}
		privatePEM = b
	}
	if cfg.TokenPublicKeyFile != "" {
		b, err := os.ReadFile(cfg.TokenPublicKeyFile)
		if err != nil {
			return nil, fmt.Errorf("read token public key: %w", err)
		}
		publicPEM = b
	}

	keys, err := utils.LoadJWTKeys(cfg.TokenAlgorithm, cfg.TokenSignKey, string(privatePEM), string(publicPEM))
	if err != nil {
		return nil, err
	}

	return &tokenService{
		keys:   keys,
		names:  utils.ClaimNames{Subject: cfg.ClaimSubject, Username: cfg.ClaimUsername},
		ttl:    cfg.TokenDuration,
		logger: logger,
	}, nil
}

func (t *tokenService) Issue(subjectID, username string, ttl time.Duration) (models.Token, error) {
	if ttl <= 0 {
		ttl = t.ttl
	}
	token, err := utils.GenerateJWTToken(t.keys, t.names, subjectID, username, ttl)
	if err != nil {
		return models.Token{}, fmt.Errorf("%w: %w", ErrTokenCreationFailed, err)
	}
	return token, nil
}

func (t *tokenService) Verify(token string) (models.Claims, error) {
	claims, err := utils.ValidateAndParseJWTToken(token, t.keys, t.names)
	switch {
	case err == nil:
		return claims, nil
	case errors.Is(err, utils.ErrJWTExpired):
		return models.Claims{}, ErrTokenExpired
	case errors.Is(err, utils.ErrJWTSignature):
		return models.Claims{}, ErrTokenSignature
	default:
		return models.Claims{}, ErrTokenMalformed
	}
}

func (t *tokenService) DefaultTTL() time.Duration {
	return t.ttl
}
