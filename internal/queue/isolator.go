// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The usgromana Authors

package queue

import (
	"context"
	"time"

	"github.com/simcop2387/usgromana/internal/logger"
	"github.com/simcop2387/usgromana/internal/utils"
	"github.com/simcop2387/usgromana/models"
)

var _ Queue = (*Isolator)(nil)

// Isolator scopes a shared [PromptQueue] to the caller. The owner of every
// operation is the user id of the identity in ctx, or the fallback owner
// when ctx carries none.
type Isolator struct {
	queue         *PromptQueue
	identities    IdentityResolver
	fallbackOwner string

	logger *logger.Logger
}

func NewIsolator(queue *PromptQueue, identities IdentityResolver, fallbackOwner string, logger *logger.Logger) *Isolator {
	return &Isolator{
		queue:         queue,
		identities:    identities,
		fallbackOwner: fallbackOwner,
		logger:        logger,
	}
}

// Owner returns the owner id operations on ctx are scoped to.
func (i *Isolator) Owner(ctx context.Context) string {
	if identity, ok := utils.GetIdentityFromContext(ctx); ok && identity.UserID != "" {
		return identity.UserID
	}
	return i.fallbackOwner
}

// Put queues entry under the caller. The entry is dropped, and false
// returned, when the owner's current permissions deny running jobs. Owners
// without a user record are not checked.
func (i *Isolator) Put(ctx context.Context, entry models.QueueEntry) bool {
	owner := i.Owner(ctx)

	if i.identities != nil {
		identity := i.identities.IdentityByID(ctx, owner)
		if identity.Authenticated && !identity.Allowed(models.PermRun) {
			logger.FromContext(ctx).Warn().
				Str("user", identity.Username).
				Str("prompt_id", entry.PromptID).
				Str("code", models.CodeExecutionDenied).
				Msg("dropped queue entry of user without run permission")
			return false
		}
	}

	i.queue.Put(owner, entry)
	return true
}

func (i *Isolator) Get(ctx context.Context, timeout time.Duration) (models.Task, bool) {
	return i.queue.Get(ctx, timeout)
}

func (i *Isolator) TaskDone(taskID int64, result models.HistoryResult) error {
	return i.queue.TaskDone(taskID, result)
}

func (i *Isolator) CurrentQueue(ctx context.Context) (running, pending []models.QueueEntry) {
	return i.queue.Current(i.Owner(ctx))
}

func (i *Isolator) DeleteQueueItem(ctx context.Context, pred func(models.QueueEntry) bool) bool {
	return i.queue.DeleteItem(i.Owner(ctx), pred)
}

func (i *Isolator) WipeQueue(ctx context.Context) {
	i.queue.Wipe(i.Owner(ctx))
}

func (i *Isolator) History(ctx context.Context, query models.HistoryQuery) models.HistoryPage {
	return i.queue.History(i.Owner(ctx), query)
}

func (i *Isolator) DeleteHistoryItem(ctx context.Context, promptID string) bool {
	return i.queue.DeleteHistory(i.Owner(ctx), promptID)
}

func (i *Isolator) WipeHistory(ctx context.Context) {
	i.queue.WipeHistory(i.Owner(ctx))
}

func (i *Isolator) NextNumber(front bool) float64 {
	return i.queue.NextNumber(front)
}
