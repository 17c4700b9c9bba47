package pool

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// WorkerPool is a generic worker pool for batch processing.
// It provides concurrent task processing with configurable worker count,
// context support, and fail-fast error handling.
//
// A WorkerPool holds only configuration, so one pool may run any number of Process calls,
// including concurrent ones.
//
// Type parameters:
//   - T: The input task type
//   - R: The result type
type WorkerPool[T any, R any] struct {
	conf *processorConfig[T, R]
}

// NewWorkerPool creates a new worker pool with the given options.
//
// Default configuration:
//   - workerCount: runtime.GOMAXPROCS(0) (number of logical CPUs)
//   - taskBuffer: equal to workerCount
//   - no CPU affinity, no hooks
//
// Type parameters:
//   - T: The input task type
//   - R: The result type produced by processing tasks
//
// Panics if a hook option does not match T and R.
//
// Example:
//
//	pool := NewWorkerPool[int, string](
//	    WithWorkerCount(10),
//	    WithTaskBuffer(20),
//	)
func NewWorkerPool[T any, R any](opts ...WorkerPoolOption) *WorkerPool[T, R] {
	return &WorkerPool[T, R]{
		conf: createConfig[T, R](opts...),
	}
}

// WorkerCount returns the configured number of workers.
func (wp *WorkerPool[T, R]) WorkerCount() int {
	return wp.conf.workerCount
}

// Process executes a batch of tasks concurrently using a pool of workers.
// It processes all tasks in the slice and returns when all tasks are complete or an error occurs.
//
// Parameters:
//   - ctx: Context for cancellation control
//   - tasks: Slice of tasks to process
//   - processFn: Function to process each task (func(context.Context, T) (R, error))
//
// Returns:
//   - results: Slice of all results in the same order as input tasks (nil on error)
//   - error: First error encountered, ctx.Err() on cancellation, or nil if all tasks succeeded
//
// Example:
//
//	tasks := []int{1, 2, 3, 4, 5}
//	results, err := pool.Process(ctx, tasks, func(ctx context.Context, n int) (string, error) {
//	    return fmt.Sprintf("processed %d", n), nil
//	})
func (wp *WorkerPool[T, R]) Process(
	ctx context.Context,
	tasks []T,
	processFn ProcessFunc[T, R],
) ([]R, error) {
	if processFn == nil {
		return nil, ErrNilProcessFunc
	}
	if len(tasks) == 0 {
		return []R{}, nil
	}

	g, ctx := errgroup.WithContext(ctx)

	taskChan := make(chan indexedTask[T], wp.conf.taskBuffer)
	results := make([]R, len(tasks))

	numWorkers := min(wp.conf.workerCount, len(tasks))
	for id := range numWorkers {
		g.Go(func() error {
			return worker(ctx, wp.conf, id, taskChan, results, processFn)
		})
	}

	g.Go(func() error {
		defer close(taskChan)
		for idx, task := range tasks {
			select {
			case taskChan <- indexedTask[T]{index: idx, task: task}:
			case <-ctx.Done():
				return ctx.Err()
			}
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
