package project

// ExpectedDuration returns the critical-path length computed with every task at its mean
// duration. This deterministic figure is what a single-point plan would promise; the simulated
// mean duration is never below it, since the mean of a maximum is at least the maximum of the
// means.
func (g *Graph) ExpectedDuration() float64 {
	finish := g.meanFinish()
	return latest(finish, g.terminals)
}

// CriticalPath returns the task IDs, source first, of the longest chain under mean durations.
// Ties go to the earlier declared task.
func (g *Graph) CriticalPath() []string {
	finish := g.meanFinish()

	end := g.terminals[0]
	for _, t := range g.terminals[1:] {
		if finish[t] > finish[end] {
			end = t
		}
	}

	path := []int{end}
	for u := end; len(g.preds[u]) > 0; {
		next := g.preds[u][0]
		for _, p := range g.preds[u][1:] {
			if finish[p] > finish[next] {
				next = p
			}
		}
		path = append(path, next)
		u = next
	}

	ids := g.names(path)
	for i, j := 0, len(ids)-1; i < j; i, j = i+1, j-1 {
		ids[i], ids[j] = ids[j], ids[i]
	}
	return ids
}

func (g *Graph) meanFinish() []float64 {
	finish := make([]float64, len(g.tasks))
	for _, u := range g.order {
		start := 0.0
		if preds := g.preds[u]; len(preds) > 0 {
			start = latest(finish, preds)
		}
		finish[u] = start + g.tasks[u].Duration.Mean()
	}
	return finish
}

// latest returns the largest finish[i] over idx; idx must not be empty.
func latest(finish []float64, idx []int) float64 {
	m := finish[idx[0]]
	for _, i := range idx[1:] {
		m = max(m, finish[i])
	}
	return m
}
