package workers

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/simcop2387/usgromana/internal/adapter"
	"github.com/simcop2387/usgromana/internal/config"
	"github.com/simcop2387/usgromana/internal/logger"
	"github.com/simcop2387/usgromana/internal/queue"
)

type Workers struct {
	workers []Worker
}

// NewWorkers returns cfg.Workers queue workers draining q into executor.
func NewWorkers(cfg config.Queue, q queue.Queue, executor adapter.Executor, logger *logger.Logger) *Workers {
	ws := make([]Worker, 0, cfg.Workers)
	for i := range cfg.Workers {
		ws = append(ws, NewQueueWorker(i, q, executor, cfg.TakeTimeout, logger))
	}
	return &Workers{workers: ws}
}

// Run blocks until every worker has returned. The first error cancels the
// others and is returned.
func (w *Workers) Run(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)
	for _, worker := range w.workers {
		g.Go(func() error {
			return worker.Run(ctx)
		})
	}
	return g.Wait()
}

func (w *Workers) Len() int {
	return len(w.workers)
}
