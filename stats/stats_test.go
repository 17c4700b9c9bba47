package stats

import (
	"errors"
	"math"
	"testing"

	"github.com/utkarsh5026/projsim/triangular"
)

func uniformGrid(n int) []float64 {
	b := make([]float64, n)
	for i := range b {
		b[i] = float64(i + 1)
	}
	return b
}

func TestSummarize(t *testing.T) {
	b := uniformGrid(1000) // 1..1000

	s, err := Summarize(b)
	if err != nil {
		t.Fatalf("Summarize() error = %v", err)
	}

	if s.N != 1000 || s.Min != 1 || s.Max != 1000 {
		t.Errorf("N/Min/Max = %d/%v/%v", s.N, s.Min, s.Max)
	}
	if math.Abs(s.Mean-500.5) > 1e-9 {
		t.Errorf("Mean = %v, want 500.5", s.Mean)
	}
	// Sample standard deviation of 1..n is sqrt(n(n+1)/12).
	if want := math.Sqrt(1000 * 1001 / 12.0); math.Abs(s.StdDev-want) > 1e-9 {
		t.Errorf("StdDev = %v, want %v", s.StdDev, want)
	}

	tests := []struct {
		name string
		got  float64
		want float64
	}{
		{"P10", s.P10, 100},
		{"P50", s.P50, 500},
		{"P80", s.P80, 800},
		{"P90", s.P90, 900},
		{"P95", s.P95, 950},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if math.Abs(tt.got-tt.want) > 1 {
				t.Errorf("%s = %v, want about %v", tt.name, tt.got, tt.want)
			}
		})
	}
}

func TestSummarize_NegativeAndConstant(t *testing.T) {
	s, err := Summarize([]float64{-5, -5, -5})
	if err != nil {
		t.Fatalf("Summarize() error = %v", err)
	}
	if s.Mean != -5 || s.StdDev != 0 || s.P50 != -5 || s.P95 != -5 {
		t.Errorf("Summary = %+v", s)
	}

	s, err = Summarize([]float64{42})
	if err != nil {
		t.Fatalf("Summarize() error = %v", err)
	}
	if s.StdDev != 0 || s.P10 != 42 {
		t.Errorf("Summary = %+v", s)
	}
}

func TestSummarize_TriangularSamples(t *testing.T) {
	p := triangular.MustNew(40, 75, 150)
	b, err := triangular.Sample(triangular.NewSource(1, 0), 200_000, p)
	if err != nil {
		t.Fatalf("Sample() error = %v", err)
	}

	s, err := Summarize(b)
	if err != nil {
		t.Fatalf("Summarize() error = %v", err)
	}
	if math.Abs(s.Mean-p.Mean()) > 0.5 {
		t.Errorf("Mean = %v, want about %v", s.Mean, p.Mean())
	}
	if math.Abs(s.StdDev-math.Sqrt(p.Variance())) > 0.5 {
		t.Errorf("StdDev = %v, want about %v", s.StdDev, math.Sqrt(p.Variance()))
	}
	for _, q := range []struct {
		got float64
		u   float64
	}{{s.P10, 0.1}, {s.P50, 0.5}, {s.P90, 0.9}} {
		if want := p.Quantile(q.u); math.Abs(q.got-want) > 1 {
			t.Errorf("percentile %v = %v, want about %v", q.u, q.got, want)
		}
	}
}

func TestEmptyBatch(t *testing.T) {
	if _, err := Summarize(nil); !errors.Is(err, ErrEmpty) {
		t.Errorf("Summarize error = %v", err)
	}
	if _, err := ProbabilityAtMost(nil, 1); !errors.Is(err, ErrEmpty) {
		t.Errorf("ProbabilityAtMost error = %v", err)
	}
	if _, err := Quantile(nil, 0.5); !errors.Is(err, ErrEmpty) {
		t.Errorf("Quantile error = %v", err)
	}
	if _, err := Histogram(nil, 3); !errors.Is(err, ErrEmpty) {
		t.Errorf("Histogram error = %v", err)
	}
}

func TestProbabilityAtMost(t *testing.T) {
	b := uniformGrid(10)

	tests := []struct {
		x    float64
		want float64
	}{
		{0, 0},
		{1, 0.1},
		{5.5, 0.5},
		{10, 1},
		{100, 1},
	}
	for _, tt := range tests {
		got, err := ProbabilityAtMost(b, tt.x)
		if err != nil {
			t.Fatalf("ProbabilityAtMost(%v) error = %v", tt.x, err)
		}
		if got != tt.want {
			t.Errorf("ProbabilityAtMost(%v) = %v, want %v", tt.x, got, tt.want)
		}
	}
}

func TestQuantile(t *testing.T) {
	b := []float64{5, 1, 4, 2, 3}

	tests := []struct {
		q    float64
		want float64
	}{
		{0, 1},
		{0.2, 1},
		{0.21, 2},
		{0.5, 3},
		{1, 5},
	}
	for _, tt := range tests {
		got, err := Quantile(b, tt.q)
		if err != nil {
			t.Fatalf("Quantile(%v) error = %v", tt.q, err)
		}
		if got != tt.want {
			t.Errorf("Quantile(%v) = %v, want %v", tt.q, got, tt.want)
		}
	}

	if b[0] != 5 {
		t.Error("Quantile sorted the caller's batch")
	}

	for _, q := range []float64{-0.1, 1.1, math.NaN()} {
		if _, err := Quantile(b, q); !errors.Is(err, ErrInvalidArgument) {
			t.Errorf("Quantile(%v) error = %v, want ErrInvalidArgument", q, err)
		}
	}
}

func TestHistogram(t *testing.T) {
	bins, err := Histogram([]float64{0, 1, 2, 3, 4, 5, 6, 7, 8, 10}, 5)
	if err != nil {
		t.Fatalf("Histogram() error = %v", err)
	}

	wantCounts := []int{2, 2, 2, 2, 2}
	total := 0
	for i, bin := range bins {
		if bin.Count != wantCounts[i] {
			t.Errorf("bin %d count = %d, want %d", i, bin.Count, wantCounts[i])
		}
		if math.Abs(bin.Hi-bin.Lo-2) > 1e-12 {
			t.Errorf("bin %d width = %v, want 2", i, bin.Hi-bin.Lo)
		}
		total += bin.Count
	}
	if total != 10 {
		t.Errorf("total count = %d, want 10", total)
	}
	if bins[4].Hi != 10 {
		t.Errorf("last bin ends at %v, want 10", bins[4].Hi)
	}

	bins, err = Histogram([]float64{3, 3, 3}, 4)
	if err != nil {
		t.Fatalf("Histogram() error = %v", err)
	}
	if bins[0].Count != 3 {
		t.Errorf("constant batch: first bin count = %d, want 3", bins[0].Count)
	}

	if _, err := Histogram([]float64{1}, 0); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("Histogram(bins=0) error = %v", err)
	}
}
