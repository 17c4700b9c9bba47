package triangular

import (
	"testing"

	"pgregory.net/rapid"
)

// TestProperty_SamplesStayInRange checks that any valid triangle and count yields exactly n
// samples inside [min, max].
func TestProperty_SamplesStayInRange(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		lo := rapid.Float64Range(-1000, 1000).Draw(t, "min")
		rise := rapid.Float64Range(1e-3, 500).Draw(t, "rise")
		fall := rapid.Float64Range(1e-3, 500).Draw(t, "fall")
		n := rapid.IntRange(1, 300).Draw(t, "n")
		seed := rapid.Uint64().Draw(t, "seed")

		p, err := New(lo, lo+rise, lo+rise+fall)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		batch, err := Sample(NewSource(seed, 0), n, p)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(batch) != n {
			t.Fatalf("len = %d, want %d", len(batch), n)
		}
		for i, v := range batch {
			if v < p.Min() || v > p.Max() {
				t.Fatalf("sample %d = %v outside [%v, %v]", i, v, p.Min(), p.Max())
			}
		}
	})
}

func abs(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}

// TestProperty_QuantileMonotonic checks the inverse CDF never decreases.
func TestProperty_QuantileMonotonic(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		lo := rapid.Float64Range(-100, 100).Draw(t, "min")
		rise := rapid.Float64Range(1e-2, 50).Draw(t, "rise")
		fall := rapid.Float64Range(1e-2, 50).Draw(t, "fall")
		u1 := rapid.Float64Range(0, 1).Draw(t, "u1")
		u2 := rapid.Float64Range(0, 1).Draw(t, "u2")

		p := MustNew(lo, lo+rise, lo+rise+fall)
		if u1 > u2 {
			u1, u2 = u2, u1
		}
		// The two branches meet at the mode, where rounding may differ by a few ulps.
		tol := 1e-9 * max(1, abs(p.Max()), abs(p.Min()))
		if q1, q2 := p.Quantile(u1), p.Quantile(u2); q1 > q2+tol {
			t.Fatalf("Quantile(%v)=%v > Quantile(%v)=%v", u1, q1, u2, q2)
		}
	})
}
