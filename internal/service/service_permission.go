// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The usgromana Authors

package service

import (
	"context"
	"errors"
	"strings"

	"github.com/simcop2387/usgromana/internal/logger"
	"github.com/simcop2387/usgromana/internal/store"
	"github.com/simcop2387/usgromana/models"
)

// permissionService turns tokens into identities. It holds no state of its
// own; users and groups are re-read through their change-detecting stores.
type permissionService struct {
	tokens TokenService
	users  store.UserRepository
	groups store.GroupRepository

	logger *logger.Logger
}

func NewPermissionService(tokens TokenService, users store.UserRepository, groups store.GroupRepository, logger *logger.Logger) PermissionService {
	return &permissionService{
		tokens: tokens,
		users:  users,
		groups: groups,
		logger: logger,
	}
}

func (p *permissionService) Resolve(ctx context.Context, token string) models.Identity {
	if token == "" {
		return models.Anonymous()
	}
	claims, err := p.tokens.Verify(token)
	if err != nil {
		logger.FromContext(ctx).Debug().Err(err).Msg("token rejected, resolving as guest")
		return models.Anonymous()
	}
	identity, err := p.IdentityFor(ctx, claims)
	if err != nil {
		return models.Anonymous()
	}
	return identity
}

// IdentityFor resolves verified claims. The subject must still exist and
// carry the same username.
func (p *permissionService) IdentityFor(ctx context.Context, claims models.Claims) (models.Identity, error) {
	log := logger.FromContext(ctx)

	user, err := p.users.FindByID(ctx, claims.SubjectID)
	if err != nil {
		if !errors.Is(err, store.ErrUserNotFound) {
			log.Err(err).Str("subject", claims.SubjectID).Msg("user lookup failed")
		}
		return models.Identity{}, ErrSubjectMismatch
	}
	if !strings.EqualFold(user.Username, claims.Username) {
		log.Warn().Str("subject", claims.SubjectID).Str("user", claims.Username).Msg("token username does not match stored user")
		return models.Identity{}, ErrSubjectMismatch
	}
	return p.identityOf(ctx, user), nil
}

func (p *permissionService) IdentityByID(ctx context.Context, userID string) models.Identity {
	user, err := p.users.FindByID(ctx, userID)
	if err != nil {
		return models.Anonymous()
	}
	return p.identityOf(ctx, user)
}

// identityOf builds the identity of user. Role is the first group; the
// permission map is that role's row of the group table.
func (p *permissionService) identityOf(ctx context.Context, user models.User) models.Identity {
	role := user.Role()

	perms, ok, err := p.groups.Get(ctx, role)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("role", role).Msg("group table unavailable, using built-in permissions")
		perms, ok = models.DefaultGroups()[role]
	}
	if !ok {
		perms = models.Permissions{}
	}

	groups := user.Clone().Groups
	if groups == nil {
		groups = []string{}
	}
	return models.Identity{
		UserID:        user.ID,
		Username:      user.Username,
		Role:          role,
		Groups:        groups,
		Permissions:   perms.Clone(),
		IsAdmin:       user.Admin(),
		Authenticated: true,
	}
}

func (p *permissionService) CheckRequest(identity models.Identity, method, path string) *models.Denial {
	return checkRequest(identity, method, path)
}

func (p *permissionService) IsPublicPath(path string) bool {
	return isPublicPath(path)
}
