package project

import "container/heap"

// validateAcyclic proves the graph has no cycles using Kahn's algorithm and stores the
// resulting topological order.
//
// If a cycle exists, it deterministically extracts one cycle path for error reporting.
func (g *Graph) validateAcyclic() error {
	order := g.topoOrderIndices()
	if len(order) == len(g.tasks) {
		g.order = order
		return nil
	}

	placed := make([]bool, len(g.tasks))
	for _, u := range order {
		placed[u] = true
	}
	return cycleError(g.findCycle(placed))
}

type intMinHeap []int

func (h intMinHeap) Len() int           { return len(h) }
func (h intMinHeap) Less(i, j int) bool { return h[i] < h[j] }
func (h intMinHeap) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }
func (h *intMinHeap) Push(x any)        { *h = append(*h, x.(int)) }
func (h *intMinHeap) Pop() any {
	old := *h
	n := len(old)
	x := old[n-1]
	*h = old[:n-1]
	return x
}

// topoOrderIndices returns a topological ordering of task indices.
//
// Determinism: the ready queue is a min-heap by declaration index.
func (g *Graph) topoOrderIndices() []int {
	indeg := make([]int, len(g.indeg))
	copy(indeg, g.indeg)

	ready := &intMinHeap{}
	for i, d := range indeg {
		if d == 0 {
			heap.Push(ready, i)
		}
	}

	out := make([]int, 0, len(indeg))
	for ready.Len() > 0 {
		n := heap.Pop(ready).(int)
		out = append(out, n)
		for _, m := range g.succs[n] {
			indeg[m]--
			if indeg[m] == 0 {
				heap.Push(ready, m)
			}
		}
	}
	return out
}

// findCycle walks the tasks Kahn's algorithm could not place and returns the first cycle found,
// as task IDs with the starting task repeated at the end.
func (g *Graph) findCycle(placed []bool) []string {
	const (
		unvisited = iota
		onStack
		done
	)
	state := make([]int, len(g.tasks))
	var stack []int

	var visit func(u int) []int
	visit = func(u int) []int {
		state[u] = onStack
		stack = append(stack, u)
		for _, v := range g.succs[u] {
			if placed[v] {
				continue
			}
			switch state[v] {
			case onStack:
				start := len(stack) - 1
				for stack[start] != v {
					start--
				}
				cycle := append([]int{}, stack[start:]...)
				return append(cycle, v)
			case unvisited:
				if cycle := visit(v); cycle != nil {
					return cycle
				}
			}
		}
		stack = stack[:len(stack)-1]
		state[u] = done
		return nil
	}

	for u := range g.tasks {
		if placed[u] || state[u] != unvisited {
			continue
		}
		if cycle := visit(u); cycle != nil {
			return g.names(cycle)
		}
	}
	return nil
}
