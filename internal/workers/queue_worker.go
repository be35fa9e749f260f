// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The usgromana Authors

package workers

import (
	"context"
	"errors"
	"time"

	"github.com/simcop2387/usgromana/internal/adapter"
	"github.com/simcop2387/usgromana/internal/logger"
	"github.com/simcop2387/usgromana/internal/queue"
	"github.com/simcop2387/usgromana/models"
)

const (
	statusSuccess = "success"
	statusError   = "error"
)

// QueueWorker takes tasks from the queue one at a time, runs them on the
// execution engine and archives the result under the task's owner.
type QueueWorker struct {
	id          int
	queue       queue.Queue
	executor    adapter.Executor
	takeTimeout time.Duration

	logger *logger.Logger
}

func NewQueueWorker(id int, q queue.Queue, executor adapter.Executor, takeTimeout time.Duration, logger *logger.Logger) *QueueWorker {
	if takeTimeout <= 0 {
		takeTimeout = time.Second
	}
	return &QueueWorker{
		id:          id,
		queue:       q,
		executor:    executor,
		takeTimeout: takeTimeout,
		logger:      logger,
	}
}

func (w *QueueWorker) Run(ctx context.Context) error {
	log := w.logger.With().Int("worker", w.id).Logger()
	log.Info().Msg("queue worker started")

	for ctx.Err() == nil {
		task, ok := w.queue.Get(ctx, w.takeTimeout)
		if !ok {
			continue
		}
		w.process(ctx, task)
	}

	log.Info().Msg("queue worker stopped")
	return nil
}

// process never fails: an execution error is archived as an unsuccessful
// result so the task leaves the running set.
func (w *QueueWorker) process(ctx context.Context, task models.Task) {
	log := w.logger.With().
		Int("worker", w.id).
		Int64("task", task.ID).
		Str("prompt_id", task.Entry.PromptID).
		Str("owner", task.Owner).
		Logger()

	started := time.Now()
	result, err := w.executor.Execute(log.WithContext(ctx), task)
	if err != nil {
		if errors.Is(err, adapter.ErrUnavailable) {
			log.Warn().Err(err).Msg("execution engine unavailable")
		} else {
			log.Err(err).Msg("task execution failed")
		}
		result = failedResult(task, err)
	} else {
		if result.Status.StatusStr == "" {
			result.Status.StatusStr = statusSuccess
			result.Status.Completed = true
		}
		log.Info().Dur("took", time.Since(started)).Bool("completed", result.Status.Completed).Msg("task executed")
	}

	if err = w.queue.TaskDone(task.ID, result); err != nil {
		if errors.Is(err, queue.ErrUnknownTask) {
			log.Warn().Msg("task vanished before completion")
			return
		}
		log.Err(err).Msg("failed to archive task")
	}
}

func failedResult(task models.Task, err error) models.HistoryResult {
	return models.HistoryResult{
		Outputs: map[string]any{},
		Status: models.HistoryStatus{
			StatusStr: statusError,
			Completed: false,
			Messages: []any{
				[]any{"execution_error", map[string]any{
					"prompt_id":         task.Entry.PromptID,
					"exception_type":    exceptionType(err),
					"exception_message": err.Error(),
				}},
			},
		},
	}
}

func exceptionType(err error) string {
	switch {
	case errors.Is(err, adapter.ErrUnavailable):
		return "EngineUnavailable"
	case errors.Is(err, adapter.ErrUnauthorized):
		return "EngineUnauthorized"
	case errors.Is(err, adapter.ErrRejected):
		return "PromptRejected"
	default:
		return "ExecutionError"
	}
}
