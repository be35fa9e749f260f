// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The usgromana Authors

package http

import (
	"github.com/simcop2387/usgromana/internal/adapter"
	"github.com/simcop2387/usgromana/internal/config"
	"github.com/simcop2387/usgromana/internal/logger"
	"github.com/simcop2387/usgromana/internal/queue"
	"github.com/simcop2387/usgromana/internal/service"
	"github.com/simcop2387/usgromana/internal/validators"
)

type Handler struct {
	services  *service.Services
	queue     queue.Queue
	executor  adapter.Executor
	validator validators.Validator
	cfg       config.StructuredConfig
	logger    *logger.Logger
}

// NewHandler builds the HTTP handler. executor may be nil, in which case
// logout never asks the executor to free memory.
func NewHandler(services *service.Services, q queue.Queue, executor adapter.Executor, cfg config.StructuredConfig, logger *logger.Logger) *Handler {
	return &Handler{
		services:  services,
		queue:     q,
		executor:  executor,
		validator: validators.NewAccountValidator(),
		cfg:       cfg,
		logger:    logger,
	}
}
