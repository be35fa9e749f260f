// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The usgromana Authors

package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/simcop2387/usgromana/internal/config"
	"github.com/simcop2387/usgromana/internal/logger"
	"github.com/simcop2387/usgromana/internal/store"
	"github.com/simcop2387/usgromana/internal/validators"
	"github.com/simcop2387/usgromana/models"
)

// authService registers accounts and exchanges credentials for tokens.
type authService struct {
	users     store.UserRepository
	tokens    TokenService
	validator validators.Validator

	disableGuest     bool
	maxTokenDuration time.Duration

	logger *logger.Logger
}

func NewAuthService(users store.UserRepository, tokens TokenService, cfg config.App, logger *logger.Logger) AuthService {
	return &authService{
		users:            users,
		tokens:           tokens,
		validator:        validators.NewAccountValidator(),
		disableGuest:     cfg.DisableGuest,
		maxTokenDuration: cfg.MaxTokenDuration,
		logger:           logger,
	}
}

// Register creates an account. While no named account exists the caller
// needs no credentials and becomes the bootstrap admin; afterwards the
// request must carry the credentials of an admin.
func (a *authService) Register(ctx context.Context, req models.RegisterRequest) (models.User, error) {
	log := logger.FromContext(ctx)

	if err := a.validator.Validate(ctx, req); err != nil {
		return models.User{}, err
	}

	existing, err := a.users.List(ctx)
	if err != nil {
		return models.User{}, fmt.Errorf("list users: %w", err)
	}
	bootstrap := true
	for _, u := range existing {
		if !u.IsGuest() {
			bootstrap = false
			break
		}
	}

	if !bootstrap {
		admin, err := a.checkPassword(ctx, req.AdminUsername, req.AdminPassword)
		if err != nil || !admin.Admin() {
			log.Warn().Str("user", req.Username).Str("admin", req.AdminUsername).Msg("registration without valid admin credentials")
			return models.User{}, ErrAdminCredentialsRequired
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return models.User{}, fmt.Errorf("hash password: %w", err)
	}

	user, err := a.users.Create(ctx, models.User{Username: req.Username, PasswordHash: string(hash)})
	if err != nil {
		log.Err(err).Str("user", req.Username).Msg("user creation ended with error")
		return models.User{}, fmt.Errorf("user creation ended with error: %w", err)
	}
	log.Info().Str("user", user.Username).Bool("admin", user.Admin()).Msg("user registered")

	if bootstrap {
		if err = a.EnsureGuest(ctx); err != nil {
			log.Err(err).Msg("guest account creation failed")
		}
	}
	return user, nil
}

func (a *authService) Login(ctx context.Context, req models.LoginRequest) (models.Token, error) {
	log := logger.FromContext(ctx)

	if err := a.validator.Validate(ctx, req); err != nil {
		return models.Token{}, err
	}

	var (
		user models.User
		err  error
	)
	if req.GuestLogin {
		if a.disableGuest {
			return models.Token{}, ErrGuestDisabled
		}
		if err = a.EnsureGuest(ctx); err != nil {
			return models.Token{}, err
		}
		if user, err = a.users.FindByUsername(ctx, models.GuestUsername); err != nil {
			return models.Token{}, fmt.Errorf("find guest account: %w", err)
		}
	} else if user, err = a.checkPassword(ctx, req.Username, req.Password); err != nil {
		log.Warn().Str("user", req.Username).Msg("login failed")
		return models.Token{}, err
	}

	token, err := a.tokens.Issue(user.ID, user.Username, a.tokens.DefaultTTL())
	if err != nil {
		return models.Token{}, err
	}
	log.Info().Str("user", user.Username).Msg("login succeeded")
	return token, nil
}

// GenerateToken mints a long-lived API token, capped at the configured
// maximum lifetime.
func (a *authService) GenerateToken(ctx context.Context, req models.GenerateTokenRequest) (models.Token, error) {
	if err := a.validator.Validate(ctx, req); err != nil {
		return models.Token{}, err
	}
	user, err := a.checkPassword(ctx, req.Username, req.Password)
	if err != nil {
		return models.Token{}, err
	}

	ttl := time.Duration(req.ExpireHours) * time.Hour
	if a.maxTokenDuration > 0 && ttl > a.maxTokenDuration {
		ttl = a.maxTokenDuration
	}
	return a.tokens.Issue(user.ID, user.Username, ttl)
}

// EnsureGuest creates the guest account unless it exists or guests are
// disabled.
func (a *authService) EnsureGuest(ctx context.Context) error {
	if a.disableGuest {
		return nil
	}
	_, err := a.users.FindByUsername(ctx, models.GuestUsername)
	if err == nil {
		return nil
	}
	if !errors.Is(err, store.ErrUserNotFound) {
		return err
	}

	enforced := true
	_, err = a.users.Create(ctx, models.User{
		Username:    models.GuestUsername,
		Groups:      []string{models.RoleGuest},
		SafetyCheck: &enforced,
	})
	if err != nil && !errors.Is(err, store.ErrUsernameTaken) {
		return fmt.Errorf("create guest account: %w", err)
	}
	logger.FromContext(ctx).Info().Msg("guest account created")
	return nil
}

// checkPassword returns the account of username if password matches. The
// guest account has no password and never matches.
func (a *authService) checkPassword(ctx context.Context, username, password string) (models.User, error) {
	if username == "" || password == "" || models.IsGuestName(username) {
		return models.User{}, ErrInvalidCredentials
	}
	user, err := a.users.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			return models.User{}, ErrInvalidCredentials
		}
		return models.User{}, err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return models.User{}, ErrInvalidCredentials
	}
	return user, nil
}
