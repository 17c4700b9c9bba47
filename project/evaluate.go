package project

import "github.com/utkarsh5026/projsim/triangular"

// DefaultChunkSize is the number of draws one evaluation unit covers.
const DefaultChunkSize = 16_384

// span is the half-open draw range [lo, hi).
type span struct {
	lo, hi int
}

func (s span) size() int { return s.hi - s.lo }

func splitRange(n, size int) []span {
	spans := make([]span, 0, (n+size-1)/size)
	for lo := 0; lo < n; lo += size {
		spans = append(spans, span{lo: lo, hi: min(lo+size, n)})
	}
	return spans
}

// evaluation holds the aligned batches of one run. Every span writes only its own range of
// each output batch, so spans run concurrently without locking.
type evaluation struct {
	g        *Graph
	overhead float64

	dur    []triangular.Batch // per task, declaration order
	finish []triangular.Batch // per task; a source's finish aliases its duration

	duration triangular.Batch
	cost     triangular.Batch
}

func newEvaluation(g *Graph, dur []triangular.Batch, overhead float64, n int) *evaluation {
	e := &evaluation{
		g:        g,
		overhead: overhead,
		dur:      dur,
		finish:   make([]triangular.Batch, len(dur)),
		duration: make(triangular.Batch, n),
		cost:     make(triangular.Batch, n),
	}
	for u := range dur {
		if len(g.preds[u]) == 0 {
			e.finish[u] = dur[u]
		} else {
			e.finish[u] = make(triangular.Batch, n)
		}
	}
	return e
}

// run evaluates the draws of s: finish times in topological order, then project duration
// and cost.
func (e *evaluation) run(s span) {
	lo, hi := s.lo, s.hi
	g := e.g

	for _, u := range g.order {
		preds := g.preds[u]
		if len(preds) == 0 {
			continue
		}
		f := e.finish[u]
		copy(f[lo:hi], e.finish[preds[0]][lo:hi])
		for _, p := range preds[1:] {
			fp := e.finish[p]
			for i := lo; i < hi; i++ {
				f[i] = max(f[i], fp[i])
			}
		}
		d := e.dur[u]
		for i := lo; i < hi; i++ {
			f[i] += d[i]
		}
	}

	out := e.duration
	copy(out[lo:hi], e.finish[g.terminals[0]][lo:hi])
	for _, t := range g.terminals[1:] {
		ft := e.finish[t]
		for i := lo; i < hi; i++ {
			out[i] = max(out[i], ft[i])
		}
	}

	// Explicit float64 conversions keep each product rounded on its own, so the sum is the
	// same on every platform.
	cost := e.cost
	for u, t := range g.tasks {
		d, rate := e.dur[u], t.CostPerDay
		for i := lo; i < hi; i++ {
			cost[i] += float64(d[i] * rate)
		}
	}
	for i := lo; i < hi; i++ {
		cost[i] += float64(out[i] * e.overhead)
	}
}
