package project

import (
	"slices"
	"time"

	"github.com/utkarsh5026/projsim/triangular"
)

// Result holds the outcome of one simulation run. It is not modified after Run returns.
type Result struct {
	// Duration holds the project duration in days for every draw.
	Duration triangular.Batch

	// Cost holds the project cost for every draw, aligned with Duration.
	Cost triangular.Batch

	// N is the number of draws.
	N int

	// Seed is the run seed. Passing it to WithSeed reproduces the run exactly.
	Seed uint64

	// GraphHash is the Hash of the simulated graph.
	GraphHash string

	// Overhead is the project-wide cost per day used for Cost.
	Overhead float64

	// Elapsed is the wall time of the run.
	Elapsed time.Duration

	taskIDs []string
	tasks   map[string]triangular.Batch
}

// TaskDuration returns the sampled duration batch of one task. The batch is aligned with
// Duration and Cost and must not be modified.
func (r *Result) TaskDuration(id string) (triangular.Batch, bool) {
	b, ok := r.tasks[id]
	return b, ok
}

// TaskIDs returns the IDs of the simulated tasks in declaration order.
func (r *Result) TaskIDs() []string {
	return slices.Clone(r.taskIDs)
}
