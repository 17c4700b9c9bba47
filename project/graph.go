package project

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"hash"
	"math"
	"slices"
)

// Graph is an immutable, validated task precedence graph.
//
// It is safe for concurrent read access.
type Graph struct {
	tasks []Task // declaration order
	index map[string]int

	preds [][]int // by declaration index, sorted ascending
	succs [][]int // by declaration index, sorted ascending
	indeg []int

	order     []int // topological order
	depth     []int // longest path from any source, in edges
	terminals []int

	hash string
}

// GraphOption configures NewGraph.
type GraphOption func(*graphConfig)

type graphConfig struct {
	terminals []string
}

// WithTerminals designates the tasks whose finish marks project completion.
// When several are given the project ends when the last of them finishes. Without this option
// every sink (task nothing depends on) is terminal.
func WithTerminals(ids ...string) GraphOption {
	return func(cfg *graphConfig) {
		cfg.terminals = append(cfg.terminals, ids...)
	}
}

// NewGraph builds and validates a Graph. Tasks are copied, so later changes to the slice or
// to DependsOn do not affect the graph.
//
// Validation runs immediately and rejects:
//   - an empty task list, empty or duplicate task IDs
//   - malformed durations (ErrInvalidParameters) and invalid cost rates (ErrInvalidArgument),
//     both wrapped in a TaskError
//   - dependencies or terminals naming unknown tasks (ErrUnknownTask)
//   - duplicate dependencies or terminals
//   - any cycle, including self-dependencies (ErrCycle)
func NewGraph(tasks []Task, opts ...GraphOption) (*Graph, error) {
	cfg := &graphConfig{}
	for _, opt := range opts {
		opt(cfg)
	}

	if len(tasks) == 0 {
		return nil, invalidf("no tasks")
	}

	g := &Graph{
		tasks: make([]Task, 0, len(tasks)),
		index: make(map[string]int, len(tasks)),
	}
	for i, t := range tasks {
		if t.ID == "" {
			return nil, invalidf("task at position %d has no id", i)
		}
		if _, exists := g.index[t.ID]; exists {
			return nil, invalidf("duplicate task id: %q", t.ID)
		}
		if err := t.validate(); err != nil {
			return nil, err
		}
		g.index[t.ID] = i
		g.tasks = append(g.tasks, t.clone())
	}

	if err := g.link(); err != nil {
		return nil, err
	}
	if err := g.validateAcyclic(); err != nil {
		return nil, err
	}
	if err := g.resolveTerminals(cfg.terminals); err != nil {
		return nil, err
	}

	g.depth = g.computeDepth()
	g.hash = g.computeHash()
	return g, nil
}

// link maps dependency IDs to indices and fills the adjacency lists.
func (g *Graph) link() error {
	n := len(g.tasks)
	g.preds = make([][]int, n)
	g.succs = make([][]int, n)
	g.indeg = make([]int, n)

	for to, t := range g.tasks {
		for _, dep := range t.DependsOn {
			from, ok := g.index[dep]
			if !ok {
				return unknownf("task %q depends on unknown task %q", t.ID, dep)
			}
			if from == to {
				return cycleError([]string{t.ID, t.ID})
			}
			if slices.Contains(g.preds[to], from) {
				return invalidf("task %q lists dependency %q twice", t.ID, dep)
			}
			g.preds[to] = append(g.preds[to], from)
			g.succs[from] = append(g.succs[from], to)
			g.indeg[to]++
		}
	}

	for i := range n {
		slices.Sort(g.preds[i])
		slices.Sort(g.succs[i])
	}
	return nil
}

func (g *Graph) resolveTerminals(ids []string) error {
	if len(ids) == 0 {
		for i := range g.tasks {
			if len(g.succs[i]) == 0 {
				g.terminals = append(g.terminals, i)
			}
		}
		return nil
	}

	for _, id := range ids {
		i, ok := g.index[id]
		if !ok {
			return unknownf("terminal task %q not found", id)
		}
		if slices.Contains(g.terminals, i) {
			return invalidf("terminal task %q listed twice", id)
		}
		g.terminals = append(g.terminals, i)
	}
	slices.Sort(g.terminals)
	return nil
}

func (g *Graph) computeDepth() []int {
	depth := make([]int, len(g.tasks))
	for _, u := range g.order {
		for _, p := range g.preds[u] {
			depth[u] = max(depth[u], depth[p]+1)
		}
	}
	return depth
}

// computeHash fingerprints the graph content independently of declaration order.
func (g *Graph) computeHash() string {
	h := sha256.New()

	ids := g.sortedIDs()
	writeUint(h, uint64(len(ids)))
	for _, id := range ids {
		t := g.tasks[g.index[id]]
		writeString(h, t.ID)
		writeFloat(h, t.Duration.Min())
		writeFloat(h, t.Duration.Mode())
		writeFloat(h, t.Duration.Max())
		writeFloat(h, t.CostPerDay)

		deps := slices.Clone(t.DependsOn)
		slices.Sort(deps)
		writeUint(h, uint64(len(deps)))
		for _, d := range deps {
			writeString(h, d)
		}
	}

	terms := g.Terminals()
	slices.Sort(terms)
	writeUint(h, uint64(len(terms)))
	for _, id := range terms {
		writeString(h, id)
	}

	return hex.EncodeToString(h.Sum(nil))
}

func (g *Graph) sortedIDs() []string {
	ids := make([]string, len(g.tasks))
	for i, t := range g.tasks {
		ids[i] = t.ID
	}
	slices.Sort(ids)
	return ids
}

func writeUint(h hash.Hash, v uint64) {
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], v)
	h.Write(buf[:])
}

func writeFloat(h hash.Hash, v float64) {
	writeUint(h, math.Float64bits(v))
}

func writeString(h hash.Hash, s string) {
	writeUint(h, uint64(len(s)))
	h.Write([]byte(s))
}

// Len returns the number of tasks.
func (g *Graph) Len() int { return len(g.tasks) }

// Hash returns a hex SHA-256 fingerprint of the graph's tasks, dependencies and terminals.
// Two graphs with the same content have the same hash whatever their declaration order.
func (g *Graph) Hash() string { return g.hash }

// Task returns a copy of the task with the given ID.
func (g *Graph) Task(id string) (Task, bool) {
	i, ok := g.index[id]
	if !ok {
		return Task{}, false
	}
	return g.tasks[i].clone(), true
}

// Tasks returns copies of all tasks in declaration order.
func (g *Graph) Tasks() []Task {
	out := make([]Task, len(g.tasks))
	for i, t := range g.tasks {
		out[i] = t.clone()
	}
	return out
}

// TopologicalOrder returns task IDs so that every task follows all of its dependencies.
// Ties are broken by declaration order, so the result is deterministic.
func (g *Graph) TopologicalOrder() []string {
	return g.names(g.order)
}

// Levels groups task IDs by topological depth: level 0 holds tasks without dependencies and a
// task at level k has at least one dependency at level k-1. Tasks on one level never depend on
// each other.
func (g *Graph) Levels() [][]string {
	var levels [][]string
	for i, d := range g.depth {
		for len(levels) <= d {
			levels = append(levels, nil)
		}
		levels[d] = append(levels[d], g.tasks[i].ID)
	}
	return levels
}

// Depth returns the topological depth of a task.
func (g *Graph) Depth(id string) (int, bool) {
	i, ok := g.index[id]
	if !ok {
		return 0, false
	}
	return g.depth[i], true
}

// Sources returns the IDs of tasks without dependencies, in declaration order.
func (g *Graph) Sources() []string {
	var out []string
	for i, p := range g.preds {
		if len(p) == 0 {
			out = append(out, g.tasks[i].ID)
		}
	}
	return out
}

// Sinks returns the IDs of tasks no other task depends on, in declaration order.
func (g *Graph) Sinks() []string {
	var out []string
	for i, s := range g.succs {
		if len(s) == 0 {
			out = append(out, g.tasks[i].ID)
		}
	}
	return out
}

// Terminals returns the IDs of the tasks whose finish ends the project, in declaration order.
func (g *Graph) Terminals() []string {
	return g.names(g.terminals)
}

func (g *Graph) names(idx []int) []string {
	out := make([]string, len(idx))
	for i, u := range idx {
		out[i] = g.tasks[u].ID
	}
	return out
}
