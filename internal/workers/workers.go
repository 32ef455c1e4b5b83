package workers

import (
	"context"
	"errors"
)

type Workers struct {
	workers []Worker
}

// NewWorkers groups workers so they can be started and stopped together.
func NewWorkers(workers ...Worker) *Workers {
	return &Workers{workers: workers}
}

// Run starts every worker in registration order.
func (w *Workers) Run() {
	for _, worker := range w.workers {
		worker.Run()
	}
}

// Stop stops every worker in reverse registration order.
func (w *Workers) Stop(ctx context.Context) error {
	var errs []error
	for i := len(w.workers) - 1; i >= 0; i-- {
		errs = append(errs, w.workers[i].Stop(ctx))
	}
	return errors.Join(errs...)
}
