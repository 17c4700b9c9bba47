package pool

import (
	"context"
	"fmt"
	"runtime"

	"github.com/utkarsh5026/projsim/internal/cpu"
)

// worker pulls tasks until the channel closes or the context is cancelled, storing each result
// in its task's slot. It returns the first task error, which cancels the group.
func worker[T, R any](
	ctx context.Context,
	conf *processorConfig[T, R],
	workerID int,
	taskChan <-chan indexedTask[T],
	results []R,
	processFn ProcessFunc[T, R],
) error {
	if conf.pinWorkers {
		release := cpu.Pin(workerID)
		defer release()
	}

	for {
		select {
		case t, ok := <-taskChan:
			if !ok {
				return nil
			}

			if conf.beforeTaskStart != nil {
				conf.beforeTaskStart(t.task)
			}

			result, err := processWithRecovery(ctx, t.task, processFn)
			if conf.onTaskEnd != nil {
				conf.onTaskEnd(t.task, result, err)
			}
			if err != nil {
				return err
			}
			results[t.index] = result

		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// processWithRecovery executes a task with panic recovery.
// If a panic occurs, it's converted to an error to prevent crashing the worker.
func processWithRecovery[T, R any](
	ctx context.Context,
	task T,
	processFn ProcessFunc[T, R],
) (result R, err error) {
	defer func() {
		if r := recover(); r != nil {
			buf := make([]byte, 4096)
			n := runtime.Stack(buf, false)
			err = fmt.Errorf("%w: %v\nstack trace:\n%s", ErrWorkerPanic, r, buf[:n])
		}
	}()

	return processFn(ctx, task)
}
