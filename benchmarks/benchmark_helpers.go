package benchmarks

import (
	"fmt"
	"testing"

	"github.com/utkarsh5026/projsim/project"
	"github.com/utkarsh5026/projsim/triangular"
)

// graphShape builds a benchmark task graph of roughly size tasks.
type graphShape struct {
	name  string
	build func(size int) []project.Task
}

func getGraphShapes() []graphShape {
	return []graphShape{
		{name: "Chain", build: chainTasks},
		{name: "Wide", build: wideTasks},
		{name: "Layered", build: layeredTasks},
	}
}

func benchTask(i int, deps ...string) project.Task {
	lo := float64(1 + i%7)
	return project.Task{
		ID:         taskID(i),
		Duration:   triangular.MustNew(lo, lo*2, lo*4),
		CostPerDay: float64(50 + i%5*25),
		DependsOn:  deps,
	}
}

func taskID(i int) string {
	return fmt.Sprintf("task-%03d", i)
}

// chainTasks is a single path: every task waits for the previous one.
func chainTasks(size int) []project.Task {
	tasks := make([]project.Task, size)
	for i := range tasks {
		if i == 0 {
			tasks[i] = benchTask(i)
		} else {
			tasks[i] = benchTask(i, taskID(i-1))
		}
	}
	return tasks
}

// wideTasks runs size-1 independent tasks that all feed one final task.
func wideTasks(size int) []project.Task {
	tasks := make([]project.Task, size)
	deps := make([]string, 0, size-1)
	for i := range size - 1 {
		tasks[i] = benchTask(i)
		deps = append(deps, taskID(i))
	}
	tasks[size-1] = benchTask(size-1, deps...)
	return tasks
}

// layeredTasks arranges tasks in layers of four; every task depends on the whole previous layer.
func layeredTasks(size int) []project.Task {
	const width = 4
	tasks := make([]project.Task, size)
	for i := range tasks {
		layer := i / width
		var deps []string
		if layer > 0 {
			for j := (layer - 1) * width; j < layer*width; j++ {
				deps = append(deps, taskID(j))
			}
		}
		tasks[i] = benchTask(i, deps...)
	}
	return tasks
}

func mustGraph(b *testing.B, tasks []project.Task) *project.Graph {
	b.Helper()
	g, err := project.NewGraph(tasks)
	if err != nil {
		b.Fatalf("NewGraph() error = %v", err)
	}
	return g
}

func referenceGraph(b *testing.B) *project.Graph {
	b.Helper()
	return mustGraph(b, []project.Task{
		{ID: "T1", Duration: triangular.MustNew(10, 20, 40), CostPerDay: 75},
		{ID: "T2", Duration: triangular.MustNew(5, 10, 30), CostPerDay: 50},
		{ID: "T3", Duration: triangular.MustNew(14, 28, 60), CostPerDay: 250, DependsOn: []string{"T1", "T2"}},
		{ID: "T4", Duration: triangular.MustNew(40, 75, 150), CostPerDay: 150, DependsOn: []string{"T3"}},
	})
}
