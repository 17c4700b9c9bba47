package project

import (
	"context"
	"fmt"
	"math/rand/v2"
	"runtime"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/utkarsh5026/projsim/pool"
	"github.com/utkarsh5026/projsim/triangular"
)

// ProgressFunc receives the amount of work done so far and the total for the run.
// It is called from worker goroutines and must be safe for concurrent use.
type ProgressFunc func(done, total int)

// SimulatorOption is a functional option for configuring a Simulator.
type SimulatorOption func(*Simulator)

// Simulator runs Monte Carlo simulations of task graphs.
// A Simulator holds only configuration and may run several graphs concurrently.
type Simulator struct {
	workerCount int
	chunkSize   int
	pinWorkers  bool

	seed    uint64
	hasSeed bool

	logger   *zap.Logger
	progress ProgressFunc
}

// WithWorkerCount sets the number of concurrent workers.
// If not specified, defaults to runtime.GOMAXPROCS(0).
func WithWorkerCount(count int) SimulatorOption {
	return func(s *Simulator) {
		if count > 0 {
			s.workerCount = count
		}
	}
}

// WithChunkSize sets how many draws one evaluation unit covers.
// If not specified, defaults to DefaultChunkSize.
func WithChunkSize(size int) SimulatorOption {
	return func(s *Simulator) {
		if size > 0 {
			s.chunkSize = size
		}
	}
}

// WithSeed fixes the run seed. Without it every run draws a fresh seed, recorded in
// Result.Seed.
func WithSeed(seed uint64) SimulatorOption {
	return func(s *Simulator) {
		s.seed = seed
		s.hasSeed = true
	}
}

// WithLogger sets the logger. Runs log start and finish at Info and progress at Debug.
func WithLogger(logger *zap.Logger) SimulatorOption {
	return func(s *Simulator) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithProgress registers a progress callback.
//
// One unit of work is one sampled or evaluated draw: sampling a task adds n, evaluating a
// chunk adds its size. The total is (tasks+1)*n.
func WithProgress(fn ProgressFunc) SimulatorOption {
	return func(s *Simulator) {
		s.progress = fn
	}
}

// WithCPUAffinity pins simulation workers to CPU cores.
func WithCPUAffinity(enabled bool) SimulatorOption {
	return func(s *Simulator) {
		s.pinWorkers = enabled
	}
}

// NewSimulator creates a Simulator with the given options.
func NewSimulator(opts ...SimulatorOption) *Simulator {
	s := &Simulator{
		workerCount: runtime.GOMAXPROCS(0),
		chunkSize:   DefaultChunkSize,
		logger:      zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Run simulates n draws of g and returns the project duration and cost of each.
//
// Parameters:
//   - ctx: cancellation; a cancelled run returns ctx.Err() and no result
//   - g: the validated task graph
//   - overheadPerDay: project-wide cost per day of total duration, finite and >= 0
//   - n: number of draws, must be positive
//
// Every task is sampled from its own stream, derived from the run seed and the task ID, so a
// seeded run returns bit-identical batches whatever the worker count or chunk size.
//
// Example:
//
//	sim := NewSimulator(WithSeed(42))
//	res, err := sim.Run(ctx, graph, 450, 1_000_000)
func (s *Simulator) Run(ctx context.Context, g *Graph, overheadPerDay float64, n int) (*Result, error) {
	if g == nil {
		return nil, fmt.Errorf("%w: nil graph", ErrInvalidArgument)
	}
	if n <= 0 {
		return nil, fmt.Errorf("%w: sample count must be positive, got %d", ErrInvalidArgument, n)
	}
	if !validRate(overheadPerDay) {
		return nil, fmt.Errorf("%w: overhead per day must be a finite non-negative number, got %g",
			ErrInvalidArgument, overheadPerDay)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	seed := s.seed
	if !s.hasSeed {
		seed = rand.Uint64() // #nosec G404 -- simulation seed
	}

	log := s.logger.With(
		zap.String("graph", shortHash(g.Hash())),
		zap.Uint64("seed", seed),
	)
	log.Info("simulation started",
		zap.Int("tasks", g.Len()),
		zap.Int("samples", n),
		zap.Int("workers", s.workerCount),
	)

	start := time.Now()
	track := s.newTracker(log, (g.Len()+1)*n)

	dur, err := s.sample(ctx, g, seed, n, track)
	if err != nil {
		return nil, err
	}

	e := newEvaluation(g, dur, overheadPerDay, n)
	if err := s.evaluate(ctx, e, n, track); err != nil {
		return nil, err
	}

	res := &Result{
		Duration:  e.duration,
		Cost:      e.cost,
		N:         n,
		Seed:      seed,
		GraphHash: g.Hash(),
		Overhead:  overheadPerDay,
		Elapsed:   time.Since(start),
		taskIDs:   make([]string, g.Len()),
		tasks:     make(map[string]triangular.Batch, g.Len()),
	}
	for u, t := range g.tasks {
		res.taskIDs[u] = t.ID
		res.tasks[t.ID] = dur[u]
	}

	log.Info("simulation finished", zap.Duration("elapsed", res.Elapsed))
	return res, nil
}

// sample draws one duration batch per task, in parallel across tasks.
func (s *Simulator) sample(
	ctx context.Context,
	g *Graph,
	seed uint64,
	n int,
	track *tracker,
) ([]triangular.Batch, error) {
	wp := pool.NewWorkerPool[int, triangular.Batch](
		pool.WithWorkerCount(s.workerCount),
		pool.WithCPUAffinity(s.pinWorkers),
		pool.WithOnTaskEnd(func(_ int, _ triangular.Batch, err error) {
			if err == nil {
				track.add(n)
			}
		}),
	)

	indices := make([]int, g.Len())
	for i := range indices {
		indices[i] = i
	}

	return wp.Process(ctx, indices, func(ctx context.Context, u int) (triangular.Batch, error) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		t := g.tasks[u]
		b, err := triangular.Sample(taskSource(seed, t.ID), n, t.Duration)
		if err != nil {
			return nil, &TaskError{TaskID: t.ID, Err: err}
		}
		return b, nil
	})
}

// evaluate walks the graph over contiguous draw ranges, in parallel across ranges.
func (s *Simulator) evaluate(ctx context.Context, e *evaluation, n int, track *tracker) error {
	wp := pool.NewWorkerPool[span, int](
		pool.WithWorkerCount(s.workerCount),
		pool.WithCPUAffinity(s.pinWorkers),
		pool.WithOnTaskEnd(func(_ span, done int, err error) {
			if err == nil {
				track.add(done)
			}
		}),
	)

	_, err := wp.Process(ctx, splitRange(n, s.chunkSize), func(ctx context.Context, sp span) (int, error) {
		if err := ctx.Err(); err != nil {
			return 0, err
		}
		e.run(sp)
		return sp.size(), nil
	})
	return err
}

// tracker counts finished work for the progress callback and debug log.
type tracker struct {
	done  atomic.Int64
	total int

	fn        ProgressFunc
	log       *zap.Logger
	sometimes *rate.Sometimes
}

func (s *Simulator) newTracker(log *zap.Logger, total int) *tracker {
	return &tracker{
		total:     total,
		fn:        s.progress,
		log:       log,
		sometimes: &rate.Sometimes{First: 1, Interval: 250 * time.Millisecond},
	}
}

func (t *tracker) add(k int) {
	done := int(t.done.Add(int64(k)))
	if t.fn != nil {
		t.fn(done, t.total)
	}
	t.sometimes.Do(func() {
		t.log.Debug("simulation progress",
			zap.Int("done", done),
			zap.Int("total", t.total),
		)
	})
}

func shortHash(h string) string {
	if len(h) > 12 {
		return h[:12]
	}
	return h
}
