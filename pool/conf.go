package pool

import (
	"reflect"
	"runtime"
)

// WorkerPoolOption is a functional option for configuring the worker pool.
type WorkerPoolOption func(*workerPoolConfig)

// workerPoolConfig collects untyped option values; createConfig turns it into a typed
// processorConfig once the pool's task and result types are known.
type workerPoolConfig struct {
	workerCount int
	taskBuffer  int
	pinWorkers  bool

	beforeTaskStart     func(any)
	beforeTaskStartType string

	onTaskEnd           func(any, any, error)
	onTaskEndTaskType   string
	onTaskEndResultType string
}

// processorConfig is the typed configuration shared by a pool's workers.
type processorConfig[T, R any] struct {
	workerCount     int
	taskBuffer      int
	pinWorkers      bool
	beforeTaskStart func(T)
	onTaskEnd       func(T, R, error)
}

// WithWorkerCount sets the number of concurrent workers.
// If not specified, defaults to runtime.GOMAXPROCS(0).
func WithWorkerCount(count int) WorkerPoolOption {
	return func(cfg *workerPoolConfig) {
		if count > 0 {
			cfg.workerCount = count
		}
	}
}

// WithTaskBuffer sets the buffer size for the task channel.
// A larger buffer can improve throughput but uses more memory.
// If not specified, defaults to the number of workers.
func WithTaskBuffer(size int) WorkerPoolOption {
	return func(cfg *workerPoolConfig) {
		if size >= 0 {
			cfg.taskBuffer = size
		}
	}
}

// WithCPUAffinity locks every worker goroutine to its own OS thread and, where the platform
// allows it, pins that thread to core workerID % NumCPU. It only pays off for long CPU-bound
// tasks; leave it off otherwise.
func WithCPUAffinity(enabled bool) WorkerPoolOption {
	return func(cfg *workerPoolConfig) {
		cfg.pinWorkers = enabled
	}
}

// WithBeforeTaskStart registers a hook called on the worker goroutine right before a task runs.
// T must match the pool's task type.
func WithBeforeTaskStart[T any](fn func(task T)) WorkerPoolOption {
	return func(cfg *workerPoolConfig) {
		if fn == nil {
			return
		}
		cfg.beforeTaskStartType = typeName[T]()
		cfg.beforeTaskStart = func(task any) {
			fn(task.(T))
		}
	}
}

// WithOnTaskEnd registers a hook called on the worker goroutine after a task finishes,
// whether it succeeded or not. T and R must match the pool's task and result types.
func WithOnTaskEnd[T, R any](fn func(task T, result R, err error)) WorkerPoolOption {
	return func(cfg *workerPoolConfig) {
		if fn == nil {
			return
		}
		cfg.onTaskEndTaskType = typeName[T]()
		cfg.onTaskEndResultType = typeName[R]()
		cfg.onTaskEnd = func(task, result any, err error) {
			r, _ := result.(R) // nil when R is an interface and the task failed
			fn(task.(T), r, err)
		}
	}
}

func typeName[T any]() string {
	return reflect.TypeFor[T]().String()
}

func createConfig[T, R any](opts ...WorkerPoolOption) *processorConfig[T, R] {
	cfg := &workerPoolConfig{
		workerCount: runtime.GOMAXPROCS(0),
		taskBuffer:  0, // Will be set to workerCount if not specified
	}

	for _, opt := range opts {
		opt(cfg)
	}

	if cfg.taskBuffer == 0 {
		cfg.taskBuffer = cfg.workerCount
	}

	beforeTaskStart, onTaskEnd := checkfuncs[T, R](cfg, typeName[T](), typeName[R]())

	return &processorConfig[T, R]{
		workerCount:     cfg.workerCount,
		taskBuffer:      cfg.taskBuffer,
		pinWorkers:      cfg.pinWorkers,
		beforeTaskStart: beforeTaskStart,
		onTaskEnd:       onTaskEnd,
	}
}
