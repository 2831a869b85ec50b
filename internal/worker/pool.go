// Package worker runs batches of tasks on a small fixed-size pool.
package worker

import (
	"context"
	"log/slog"
	"sync"
)

// DefaultWorkers is the pool size used when none is configured.
const DefaultWorkers = 3

// Task produces one string result, typically a completion for one chunk.
type Task func(ctx context.Context) (string, error)

// Pool runs task batches across a fixed number of goroutines.
type Pool struct {
	workers int
	logger  *slog.Logger
}

// NewPool creates a pool with the given number of workers.
func NewPool(workers int) *Pool {
	if workers <= 0 {
		workers = DefaultWorkers
	}
	return &Pool{
		workers: workers,
		logger:  slog.Default(),
	}
}

// Map runs all tasks on the pool and returns their results in submission
// order. A failed task logs its error and contributes no result; the other
// tasks keep running.
func (p *Pool) Map(ctx context.Context, tasks []Task) []string {
	if len(tasks) == 0 {
		return nil
	}

	type slot struct {
		value string
		ok    bool
	}
	slots := make([]slot, len(tasks))

	sem := make(chan struct{}, p.workers)
	var wg sync.WaitGroup

	for i, task := range tasks {
		wg.Add(1)
		go func(i int, task Task) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			value, err := task(ctx)
			if err != nil {
				p.logger.ErrorContext(ctx, "task failed", "index", i, "error", err)
				return
			}
			slots[i] = slot{value: value, ok: true}
		}(i, task)
	}
	wg.Wait()

	results := make([]string, 0, len(tasks))
	for _, s := range slots {
		if s.ok {
			results = append(results, s.value)
		}
	}
	return results
}
