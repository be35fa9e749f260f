// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The usgromana Authors

package store

import (
	"github.com/simcop2387/usgromana/internal/config"
	"github.com/simcop2387/usgromana/internal/logger"
)

// Storages aggregates every repository used by the service layer.
type Storages struct {
	UserRepository   UserRepository
	GroupRepository  GroupRepository
	IPListRepository IPListRepository
	UserEnvStorage   UserEnvStorage
	WorkflowStorage  WorkflowStorage
}

// NewStorages builds the file-backed repositories described by cfg.
func NewStorages(cfg config.Storage, logger *logger.Logger) *Storages {
	env := NewUserEnvStorage(cfg.UsersRoot, cfg.OutputDir, logger)
	return &Storages{
		UserRepository:   NewUserRepository(cfg.UsersFile, logger),
		GroupRepository:  NewGroupRepository(cfg.GroupsFile, logger),
		IPListRepository: NewIPListRepository(cfg.WhitelistFile, cfg.BlacklistFile, logger),
		UserEnvStorage:   env,
		WorkflowStorage:  NewWorkflowStorage(env, cfg.WorkflowDirs, logger),
	}
}
