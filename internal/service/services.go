// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The usgromana Authors

package service

import (
	"fmt"

	"github.com/simcop2387/usgromana/internal/config"
	"github.com/simcop2387/usgromana/internal/logger"
	"github.com/simcop2387/usgromana/internal/store"
)

type Services struct {
	TokenService      TokenService
	PermissionService PermissionService
	AuthService       AuthService
	AdminService      AdminService
	UserEnvService    UserEnvService
	WorkflowService   WorkflowService
	IPFilterService   IPFilterService
	LockoutService    LockoutService
	SafetyService     SafetyService
	AppInfoService    AppInfoService
}

func NewServices(storages *store.Storages, cfg config.StructuredConfig, classifier ClassifierFactory, logger *logger.Logger) (*Services, error) {
	tokens, err := NewTokenService(cfg.App, logger)
	if err != nil {
		return nil, fmt.Errorf("token service: %w", err)
	}
	safety, err := NewSafetyService(storages.UserRepository, classifier, cfg.Safety, cfg.Storage.OutputDir, logger)
	if err != nil {
		return nil, fmt.Errorf("safety service: %w", err)
	}
	appInfo, err := NewAppInfoService(cfg.App, logger)
	if err != nil {
		return nil, fmt.Errorf("app info service: %w", err)
	}
	ipFilter := NewIPFilterService(storages.IPListRepository, logger)

	return &Services{
		TokenService:      tokens,
		PermissionService: NewPermissionService(tokens, storages.UserRepository, storages.GroupRepository, logger),
		AuthService:       NewAuthService(storages.UserRepository, tokens, cfg.App, logger),
		AdminService:      NewAdminService(storages, safety, logger),
		UserEnvService:    NewUserEnvService(storages.UserRepository, storages.UserEnvStorage, logger),
		WorkflowService:   NewWorkflowService(storages.WorkflowStorage, logger),
		IPFilterService:   ipFilter,
		LockoutService:    NewLockoutService(ipFilter, storages.IPListRepository, cfg.Security, logger),
		SafetyService:     safety,
		AppInfoService:    appInfo,
	}, nil
}
