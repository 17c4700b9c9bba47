package pool

import "context"

// ProcessFunc is a function type that defines how individual tasks are processed in the worker pool.
// It takes a context for cancellation control and a task of type T, returning a result of type R.
// If processing fails, it should return an error which halts further processing.
//
// Type parameters:
//   - T: The type of input task to be processed
//   - R: The type of result produced after processing
type ProcessFunc[T any, R any] func(ctx context.Context, task T) (R, error)

// indexedTask pairs a task with its position in the input slice.
type indexedTask[T any] struct {
	index int
	task  T
}
