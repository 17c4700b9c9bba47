package project

import (
	"fmt"
	"math"
	"slices"

	"github.com/utkarsh5026/projsim/triangular"
)

// Task is one unit of project work.
type Task struct {
	// ID identifies the task inside its graph.
	ID string

	// Duration is the distribution of the task's duration in days.
	Duration triangular.Params

	// CostPerDay is charged for every day the task takes. Must be finite and >= 0.
	CostPerDay float64

	// DependsOn lists the IDs of tasks that must finish before this one starts.
	DependsOn []string
}

func (t Task) validate() error {
	if err := t.Duration.Validate(); err != nil {
		return &TaskError{TaskID: t.ID, Err: err}
	}
	if !validRate(t.CostPerDay) {
		return &TaskError{TaskID: t.ID, Err: fmt.Errorf(
			"%w: cost per day must be a finite non-negative number, got %g", ErrInvalidArgument, t.CostPerDay)}
	}
	return nil
}

func (t Task) clone() Task {
	t.DependsOn = slices.Clone(t.DependsOn)
	return t
}

func validRate(r float64) bool {
	return r >= 0 && !math.IsInf(r, 1)
}
