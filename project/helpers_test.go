package project

import (
	"testing"

	"github.com/utkarsh5026/projsim/triangular"
)

// referenceTasks is the four-task project used throughout the tests:
// T1 and T2 run in parallel, T3 waits for both, T4 waits for T3.
func referenceTasks() []Task {
	return []Task{
		{ID: "T1", Duration: triangular.MustNew(10, 20, 40), CostPerDay: 75},
		{ID: "T2", Duration: triangular.MustNew(5, 10, 30), CostPerDay: 50},
		{ID: "T3", Duration: triangular.MustNew(14, 28, 60), CostPerDay: 250, DependsOn: []string{"T1", "T2"}},
		{ID: "T4", Duration: triangular.MustNew(40, 75, 150), CostPerDay: 150, DependsOn: []string{"T3"}},
	}
}

const referenceOverhead = 450

func mustGraph(t *testing.T, tasks []Task, opts ...GraphOption) *Graph {
	t.Helper()
	g, err := NewGraph(tasks, opts...)
	if err != nil {
		t.Fatalf("NewGraph() error = %v", err)
	}
	return g
}

func task(id string, deps ...string) Task {
	return Task{ID: id, Duration: triangular.MustNew(1, 2, 4), CostPerDay: 1, DependsOn: deps}
}

func mean(b triangular.Batch) float64 {
	var sum float64
	for _, v := range b {
		sum += v
	}
	return sum / float64(len(b))
}
