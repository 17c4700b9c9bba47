package project

import (
	"errors"
	"math"
	"slices"
	"strings"
	"testing"

	"github.com/utkarsh5026/projsim/triangular"
)

func TestNewGraph_Reference(t *testing.T) {
	g := mustGraph(t, referenceTasks())

	if g.Len() != 4 {
		t.Errorf("Len() = %d, want 4", g.Len())
	}

	tests := []struct {
		name string
		got  []string
		want []string
	}{
		{"topological order", g.TopologicalOrder(), []string{"T1", "T2", "T3", "T4"}},
		{"sources", g.Sources(), []string{"T1", "T2"}},
		{"sinks", g.Sinks(), []string{"T4"}},
		{"terminals", g.Terminals(), []string{"T4"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !slices.Equal(tt.got, tt.want) {
				t.Errorf("got %v, want %v", tt.got, tt.want)
			}
		})
	}

	levels := g.Levels()
	wantLevels := [][]string{{"T1", "T2"}, {"T3"}, {"T4"}}
	if len(levels) != len(wantLevels) {
		t.Fatalf("Levels() = %v, want %v", levels, wantLevels)
	}
	for i := range levels {
		if !slices.Equal(levels[i], wantLevels[i]) {
			t.Errorf("Levels()[%d] = %v, want %v", i, levels[i], wantLevels[i])
		}
	}

	if d, ok := g.Depth("T4"); !ok || d != 2 {
		t.Errorf("Depth(T4) = %d, %v, want 2, true", d, ok)
	}
	if _, ok := g.Depth("nope"); ok {
		t.Error("Depth(nope) reported ok")
	}
}

func TestNewGraph_TopologicalOrderFollowsDeclaration(t *testing.T) {
	// C is declared first but depends on B, so it must come after B while A keeps its place.
	g := mustGraph(t, []Task{task("C", "B"), task("A"), task("B"), task("D", "A")})

	want := []string{"A", "B", "C", "D"}
	if got := g.TopologicalOrder(); !slices.Equal(got, want) {
		t.Errorf("TopologicalOrder() = %v, want %v", got, want)
	}
}

func TestNewGraph_Errors(t *testing.T) {
	tests := []struct {
		name    string
		tasks   []Task
		opts    []GraphOption
		kind    error
		message string
	}{
		{
			name: "no tasks",
			kind: ErrInvalidGraph,
		},
		{
			name:  "empty id",
			tasks: []Task{task("")},
			kind:  ErrInvalidGraph,
		},
		{
			name:    "duplicate id",
			tasks:   []Task{task("A"), task("A")},
			kind:    ErrInvalidGraph,
			message: `"A"`,
		},
		{
			name:    "unknown dependency",
			tasks:   []Task{task("A", "missing")},
			kind:    ErrUnknownTask,
			message: "missing",
		},
		{
			name:  "duplicate dependency",
			tasks: []Task{task("A"), task("B", "A", "A")},
			kind:  ErrInvalidGraph,
		},
		{
			name:    "self dependency",
			tasks:   []Task{task("A", "A")},
			kind:    ErrCycle,
			message: "A -> A",
		},
		{
			name:    "two task cycle",
			tasks:   []Task{task("T1", "T2"), task("T2", "T1")},
			kind:    ErrCycle,
			message: "T1 -> T2 -> T1",
		},
		{
			name:    "cycle behind a valid prefix",
			tasks:   []Task{task("S"), task("A", "S", "C"), task("B", "A"), task("C", "B")},
			kind:    ErrCycle,
			message: "A -> B -> C -> A",
		},
		{
			name:    "unknown terminal",
			tasks:   []Task{task("A")},
			opts:    []GraphOption{WithTerminals("Z")},
			kind:    ErrUnknownTask,
			message: "Z",
		},
		{
			name:  "duplicate terminal",
			tasks: []Task{task("A")},
			opts:  []GraphOption{WithTerminals("A", "A")},
			kind:  ErrInvalidGraph,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, err := NewGraph(tt.tasks, tt.opts...)
			if err == nil {
				t.Fatalf("NewGraph() = %v, want error", g)
			}
			if !errors.Is(err, tt.kind) {
				t.Errorf("error = %v, want kind %v", err, tt.kind)
			}
			var ge *GraphError
			if !errors.As(err, &ge) {
				t.Errorf("error %T is not a *GraphError", err)
			}
			if tt.message != "" && !strings.Contains(err.Error(), tt.message) {
				t.Errorf("error %q does not mention %q", err.Error(), tt.message)
			}
		})
	}
}

func TestNewGraph_TaskErrors(t *testing.T) {
	bad := func(mutate func(*Task)) []Task {
		tasks := referenceTasks()
		mutate(&tasks[2])
		return tasks
	}

	tests := []struct {
		name  string
		tasks []Task
		kind  error
	}{
		{"zero duration params", bad(func(t *Task) { t.Duration = triangular.Params{} }), ErrInvalidParameters},
		{"negative rate", bad(func(t *Task) { t.CostPerDay = -1 }), ErrInvalidArgument},
		{"NaN rate", bad(func(t *Task) { t.CostPerDay = math.NaN() }), ErrInvalidArgument},
		{"infinite rate", bad(func(t *Task) { t.CostPerDay = math.Inf(1) }), ErrInvalidArgument},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewGraph(tt.tasks)
			if !errors.Is(err, tt.kind) {
				t.Fatalf("error = %v, want %v", err, tt.kind)
			}
			var te *TaskError
			if !errors.As(err, &te) {
				t.Fatalf("error %T is not a *TaskError", err)
			}
			if te.TaskID != "T3" {
				t.Errorf("TaskID = %q, want T3", te.TaskID)
			}
		})
	}
}

func TestNewGraph_DegenerateTriangle(t *testing.T) {
	_, err := triangular.New(5, 5, 5)
	if !errors.Is(err, ErrInvalidParameters) {
		t.Fatalf("New(5, 5, 5) error = %v, want ErrInvalidParameters", err)
	}
}

func TestGraph_IsolatedFromCaller(t *testing.T) {
	tasks := referenceTasks()
	g := mustGraph(t, tasks)

	tasks[2].DependsOn[0] = "T2"
	tasks[0].ID = "changed"

	got, ok := g.Task("T3")
	if !ok {
		t.Fatal("Task(T3) not found")
	}
	if !slices.Equal(got.DependsOn, []string{"T1", "T2"}) {
		t.Errorf("DependsOn = %v, caller mutation leaked", got.DependsOn)
	}

	got.DependsOn[0] = "X"
	all := g.Tasks()
	if all[2].DependsOn[0] != "T1" {
		t.Errorf("Tasks() returned shared slice")
	}
	if _, ok := g.Task("changed"); ok {
		t.Error("renamed caller task visible in graph")
	}
}

func TestGraph_WithTerminals(t *testing.T) {
	g := mustGraph(t, referenceTasks(), WithTerminals("T3", "T1"))
	want := []string{"T1", "T3"}
	if got := g.Terminals(); !slices.Equal(got, want) {
		t.Errorf("Terminals() = %v, want %v", got, want)
	}
}

func TestGraph_Hash(t *testing.T) {
	base := mustGraph(t, referenceTasks())

	reordered := referenceTasks()
	slices.Reverse(reordered)
	if got := mustGraph(t, reordered).Hash(); got != base.Hash() {
		t.Errorf("hash changed with declaration order: %s != %s", got, base.Hash())
	}

	changed := referenceTasks()
	changed[1].CostPerDay = 51
	if mustGraph(t, changed).Hash() == base.Hash() {
		t.Error("hash ignored cost rate")
	}

	if mustGraph(t, referenceTasks(), WithTerminals("T3")).Hash() == base.Hash() {
		t.Error("hash ignored terminals")
	}

	if len(base.Hash()) != 64 {
		t.Errorf("hash length = %d, want 64", len(base.Hash()))
	}
}
