package triangular

import (
	"fmt"
	"sort"
)

// Table is a discretized CDF of a triangular distribution searched numerically.
//
// It approximates Quantile with a resolution of (max-min)/(size-1) and costs a search per
// draw. It exists as an independent oracle for checking the closed-form inverse; do not use
// it to generate samples.
type Table struct {
	xs  []float64
	cdf []float64
}

// NewTable tabulates the CDF of p at size evenly spaced points over [min, max].
func NewTable(p Params, size int) (*Table, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if size < 2 {
		return nil, fmt.Errorf("%w: table size must be at least 2, got %d", ErrInvalidArgument, size)
	}

	step := (p.max - p.min) / float64(size-1)
	t := &Table{
		xs:  make([]float64, size),
		cdf: make([]float64, size),
	}
	for i := range size {
		x := p.min + float64(i)*step
		if i == size-1 {
			x = p.max
		}
		t.xs[i] = x
		t.cdf[i] = p.CDF(x)
	}
	return t, nil
}

// Step returns the spacing between tabulated points.
func (t *Table) Step() float64 {
	return t.xs[1] - t.xs[0]
}

// Quantile returns the first tabulated x whose CDF reaches u.
func (t *Table) Quantile(u float64) float64 {
	i := sort.SearchFloat64s(t.cdf, u)
	if i >= len(t.xs) {
		i = len(t.xs) - 1
	}
	return t.xs[i]
}
