// Package pool provides a small generic worker pool for CPU-bound batch work.
//
// The primary type is WorkerPool[T, R], a configurable pool of workers which process tasks of
// type T and return results of type R. Each worker writes its result into the slot of the task
// it processed, so results come back in input order without any locking.
//
// # Basic Usage
//
//	ctx := context.Background()
//	tasks := []int{1, 2, 3, 4}
//	pool := NewWorkerPool[int, int](WithWorkerCount(4))
//	results, err := pool.Process(ctx, tasks, func(ctx context.Context, t int) (int, error) {
//	    return t * 2, nil
//	})
//
// # Hooks
//
// Hooks observe task execution without changing it. They are typed; a hook whose types do not
// match the pool panics when the pool is built:
//
//	pool := NewWorkerPool[span, struct{}](
//	    WithOnTaskEnd(func(s span, _ struct{}, err error) {
//	        progress.Add(1)
//	    }),
//	)
//
// Hooks run on worker goroutines and must be safe for concurrent use.
//
// # Configuration Options
//
//   - WithWorkerCount(n): Set number of concurrent workers (default: GOMAXPROCS)
//   - WithTaskBuffer(n): Set task channel buffer size (default: worker count)
//   - WithCPUAffinity(enabled): Lock each worker to an OS thread pinned to one core
//   - WithBeforeTaskStart(fn): Called before each task starts
//   - WithOnTaskEnd(fn): Called after each task ends, with its result and error
//
// # Error Handling
//
// The pool uses fail-fast semantics: when any task returns an error, the shared context is
// cancelled, no further tasks start, and Process returns that error with no results. Panics
// inside a task are recovered and converted to errors wrapping ErrWorkerPanic, with the stack
// trace attached.
package pool
