// Package parallel runs independent conversion jobs on a bounded set of
// goroutines. Submission blocks once the queue is full, which keeps the
// number of documents held in memory proportional to the worker count.
package parallel

import (
	"context"
	"errors"
	"runtime"
	"sync"
)

// ErrPoolShutdown is returned when submitting to a pool that has been shut
// down.
var ErrPoolShutdown = errors.New("parallel: worker pool has been shut down")

// WorkerPool executes submitted tasks on a fixed number of goroutines.
type WorkerPool struct {
	maxWorkers int
	tasks      chan func()
	workers    sync.WaitGroup

	mu     sync.RWMutex
	closed bool
	once   sync.Once
}

// NewWorkerPool starts a pool of maxWorkers goroutines. A non-positive
// maxWorkers uses the number of CPUs.
func NewWorkerPool(maxWorkers int) *WorkerPool {
	if maxWorkers <= 0 {
		maxWorkers = runtime.NumCPU()
	}
	wp := &WorkerPool{
		maxWorkers: maxWorkers,
		tasks:      make(chan func(), maxWorkers*2),
	}
	wp.workers.Add(maxWorkers)
	for i := 0; i < maxWorkers; i++ {
		go wp.worker()
	}
	return wp
}

// Workers returns the number of goroutines serving the pool.
func (wp *WorkerPool) Workers() int { return wp.maxWorkers }

func (wp *WorkerPool) worker() {
	defer wp.workers.Done()
	for task := range wp.tasks {
		task()
	}
}

// Submit queues task, blocking while the queue is full. It fails with the
// context error if ctx ends first, or ErrPoolShutdown after Shutdown.
func (wp *WorkerPool) Submit(ctx context.Context, task func()) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	wp.mu.RLock()
	defer wp.mu.RUnlock()
	if wp.closed {
		return ErrPoolShutdown
	}
	select {
	case wp.tasks <- task:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Shutdown stops accepting tasks and waits until every queued task has run.
// It is safe to call more than once.
func (wp *WorkerPool) Shutdown() {
	wp.once.Do(func() {
		wp.mu.Lock()
		wp.closed = true
		close(wp.tasks)
		wp.mu.Unlock()
		wp.workers.Wait()
	})
}

// Map applies fn to every item on a pool of the given size and returns the
// results in input order. When ctx ends before every item is submitted, Map
// waits for the submitted ones, leaves the zero value in the remaining
// slots and returns the context error.
func Map[T, R any](ctx context.Context, workers int, items []T, fn func(context.Context, T) R) ([]R, error) {
	results := make([]R, len(items))
	if len(items) == 0 {
		return results, ctx.Err()
	}
	pool := NewWorkerPool(min(max(workers, 0), len(items)))
	defer pool.Shutdown()

	var (
		wg  sync.WaitGroup
		err error
	)
	for i, item := range items {
		i, item := i, item
		wg.Add(1)
		submitErr := pool.Submit(ctx, func() {
			defer wg.Done()
			results[i] = fn(ctx, item)
		})
		if submitErr != nil {
			wg.Done()
			err = submitErr
			break
		}
	}
	wg.Wait()
	return results, err
}
