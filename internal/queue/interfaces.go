package queue

import (
	"context"
	"time"

	"github.com/simcop2387/usgromana/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/queue_mock.go -package=mock

// Queue is the caller-scoped queue interface handed to the HTTP layer and
// to the workers. Owner-scoped operations take the owner from ctx.
type Queue interface {
	Put(ctx context.Context, entry models.QueueEntry) bool
	Get(ctx context.Context, timeout time.Duration) (models.Task, bool)
	TaskDone(taskID int64, result models.HistoryResult) error
	CurrentQueue(ctx context.Context) (running, pending []models.QueueEntry)
	DeleteQueueItem(ctx context.Context, pred func(models.QueueEntry) bool) bool
	WipeQueue(ctx context.Context)
	History(ctx context.Context, query models.HistoryQuery) models.HistoryPage
	DeleteHistoryItem(ctx context.Context, promptID string) bool
	WipeHistory(ctx context.Context)
	NextNumber(front bool) float64
}

// IdentityResolver looks up the current identity of a user id.
type IdentityResolver interface {
	IdentityByID(ctx context.Context, userID string) models.Identity
}
