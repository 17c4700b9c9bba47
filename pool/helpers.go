package pool

import (
	"errors"
	"fmt"
)

var (
	// ErrNilProcessFunc is returned by Process when no process function is given.
	ErrNilProcessFunc = errors.New("pool: nil process function")

	// ErrWorkerPanic wraps a panic recovered from a task.
	ErrWorkerPanic = errors.New("worker panic")
)

// checkfuncs validates user-supplied hook functions against the pool's task and result types
// and returns typed wrappers for the workers.
//
// Parameters:
//   - cfg: The worker pool configuration holding the untyped hooks and their recorded types
//   - expectedTaskType: String representation of the pool's task type
//   - expectedResultType: String representation of the pool's result type
//
// Returns:
//   - beforeTaskStart: Function to be called before each task starts (or nil if not configured)
//   - onTaskEnd: Function to be called after each task ends (or nil if not configured)
//
// Panics:
//
//	If any hook's type does not match the pool's types. The message names the offending option.
func checkfuncs[T any, R any](
	cfg *workerPoolConfig,
	expectedTaskType, expectedResultType string,
) (
	beforeTaskStart func(T),
	onTaskEnd func(T, R, error),
) {
	if cfg.beforeTaskStart != nil {
		if cfg.beforeTaskStartType != expectedTaskType {
			panic(fmt.Sprintf("WithBeforeTaskStart hook expects task type %s, but pool processes type %s",
				cfg.beforeTaskStartType, expectedTaskType))
		}
		beforeTaskStart = func(task T) {
			cfg.beforeTaskStart(task)
		}
	}

	if cfg.onTaskEnd != nil {
		if cfg.onTaskEndTaskType != expectedTaskType {
			panic(fmt.Sprintf("WithOnTaskEnd hook expects task type %s, but pool processes type %s",
				cfg.onTaskEndTaskType, expectedTaskType))
		}
		if cfg.onTaskEndResultType != expectedResultType {
			panic(fmt.Sprintf("WithOnTaskEnd hook expects result type %s, but pool produces type %s",
				cfg.onTaskEndResultType, expectedResultType))
		}
		onTaskEnd = func(task T, result R, err error) {
			cfg.onTaskEnd(task, result, err)
		}
	}

	return beforeTaskStart, onTaskEnd
}
