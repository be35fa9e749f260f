// Package adapter provides the transport-layer clients for the external
// collaborators of the server: the execution engine and the content
// classifier.
//
// Both clients speak JSON over HTTP through resty. Failed round trips wrap
// [ErrUnavailable], [ErrRejected] or [ErrUnauthorized] so callers can tell an
// engine that is down from a request it refused.
package adapter

import (
	"context"

	"github.com/simcop2387/usgromana/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/executor_mock.go -package=mock

// Executor runs queued tasks on the execution engine.
type Executor interface {
	// Execute runs task for its owner and returns the engine's result.
	Execute(ctx context.Context, task models.Task) (models.HistoryResult, error)

	// FreeMemory asks the engine to release cached memory and, optionally,
	// to unload its models.
	FreeMemory(ctx context.Context, unloadModels, freeMemory bool) error
}
