// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The usgromana Authors

package adapter

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"github.com/simcop2387/usgromana/internal/config"
	"github.com/simcop2387/usgromana/internal/logger"
	"github.com/simcop2387/usgromana/internal/utils"
	"github.com/simcop2387/usgromana/models"
)

// executeRequest is the body of POST /execute. The owner travels with the
// task so the engine can place outputs in the owner's folders.
type executeRequest struct {
	TaskID           int64           `json:"task_id"`
	Owner            string          `json:"user_id"`
	PromptID         string          `json:"prompt_id"`
	Number           float64         `json:"number"`
	Prompt           json.RawMessage `json:"prompt"`
	ExtraData        map[string]any  `json:"extra_data,omitempty"`
	OutputsToExecute []string        `json:"outputs_to_execute,omitempty"`
}

type httpExecutor struct {
	client *utils.HTTPClient

	logger *logger.Logger
}

// NewHTTPExecutor constructs an [Executor] talking to the engine at
// cfg.ExecutorURL.
//
// Returns an error if the URL is empty or cannot be parsed.
func NewHTTPExecutor(cfg config.Adapter, logger *logger.Logger) (Executor, error) {
	baseURL, err := normalizeBaseURL(cfg.ExecutorURL)
	if err != nil {
		return nil, fmt.Errorf("invalid executor address: %w", err)
	}
	return &httpExecutor{
		client: utils.NewHTTPClient(baseURL, cfg.RequestTimeout),
		logger: logger,
	}, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", ErrEmptyAddress
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

func (e *httpExecutor) Execute(ctx context.Context, task models.Task) (models.HistoryResult, error) {
	var result models.HistoryResult

	resp, err := e.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(executeRequest{
			TaskID:           task.ID,
			Owner:            task.Owner,
			PromptID:         task.Entry.PromptID,
			Number:           task.Entry.Number,
			Prompt:           task.Entry.Prompt,
			ExtraData:        task.Entry.ExtraData,
			OutputsToExecute: task.Entry.OutputsToExecute,
		}).
		SetResult(&result).
		Post("/execute")
	if err != nil {
		return models.HistoryResult{}, mapTransportError("execute request", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.HistoryResult{}, err
	}
	return result, nil
}

func (e *httpExecutor) FreeMemory(ctx context.Context, unloadModels, freeMemory bool) error {
	resp, err := e.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(map[string]bool{"unload_models": unloadModels, "free_memory": freeMemory}).
		Post("/free")
	if err != nil {
		return mapTransportError("free memory request", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return err
	}
	e.logger.Debug().
		Bool("unload_models", unloadModels).
		Bool("free_memory", freeMemory).
		Msg("engine memory freed")
	return nil
}
