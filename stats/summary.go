package stats

import (
	"errors"
	"fmt"
	"math"
	"slices"

	"github.com/HdrHistogram/hdrhistogram-go"
)

var (
	// ErrEmpty is returned for a batch without samples.
	ErrEmpty = errors.New("empty sample batch")

	// ErrInvalidArgument is returned for out-of-range arguments.
	ErrInvalidArgument = errors.New("invalid argument")
)

const (
	// scale converts sample offsets to histogram units: three decimal places.
	scale = 1000

	// significantFigures is the HDR histogram precision.
	significantFigures = 3
)

// Summary describes the empirical distribution of one batch.
type Summary struct {
	N      int
	Mean   float64
	StdDev float64
	Min    float64
	Max    float64
	P10    float64
	P50    float64
	P80    float64
	P90    float64
	P95    float64
}

// Summarize computes the summary of b. Mean, standard deviation and extremes are exact;
// percentiles are read from an HDR histogram.
func Summarize(b []float64) (Summary, error) {
	if len(b) == 0 {
		return Summary{}, ErrEmpty
	}

	s := Summary{
		N:   len(b),
		Min: slices.Min(b),
		Max: slices.Max(b),
	}
	s.Mean, s.StdDev = meanStdDev(b)

	h, err := newHistogram(b, s.Min, s.Max)
	if err != nil {
		return Summary{}, err
	}
	at := func(q float64) float64 {
		v := float64(h.ValueAtQuantile(q)-1)/scale + s.Min
		return math.Min(math.Max(v, s.Min), s.Max)
	}
	s.P10, s.P50, s.P80, s.P90, s.P95 = at(10), at(50), at(80), at(90), at(95)
	return s, nil
}

// newHistogram records b offset by min, so negative samples work and the histogram range
// only spans the data. Every value is shifted by one because HDR histograms start at 1.
func newHistogram(b []float64, lo, hi float64) (*hdrhistogram.Histogram, error) {
	highest := max(int64(math.Ceil((hi-lo)*scale))+2, 2)
	h := hdrhistogram.New(1, highest, significantFigures)
	for _, v := range b {
		if err := h.RecordValue(int64(math.Round((v-lo)*scale)) + 1); err != nil {
			return nil, fmt.Errorf("record %g: %w", v, err)
		}
	}
	return h, nil
}

// meanStdDev uses Welford's update; the standard deviation is the sample (n-1) one and zero
// for a single value.
func meanStdDev(b []float64) (mean, stddev float64) {
	var m2 float64
	for i, v := range b {
		delta := v - mean
		mean += delta / float64(i+1)
		m2 += delta * (v - mean)
	}
	if len(b) < 2 {
		return mean, 0
	}
	return mean, math.Sqrt(m2 / float64(len(b)-1))
}

// ProbabilityAtMost returns the fraction of samples less than or equal to x.
func ProbabilityAtMost(b []float64, x float64) (float64, error) {
	if len(b) == 0 {
		return 0, ErrEmpty
	}
	count := 0
	for _, v := range b {
		if v <= x {
			count++
		}
	}
	return float64(count) / float64(len(b)), nil
}

// Quantile returns the nearest-rank q-quantile of b, q in [0, 1].
// Quantile(b, 0) is the minimum and Quantile(b, 1) the maximum.
func Quantile(b []float64, q float64) (float64, error) {
	if len(b) == 0 {
		return 0, ErrEmpty
	}
	if !(q >= 0 && q <= 1) {
		return 0, fmt.Errorf("%w: quantile %g outside [0, 1]", ErrInvalidArgument, q)
	}

	sorted := slices.Clone(b)
	slices.Sort(sorted)

	rank := int(math.Ceil(q * float64(len(sorted))))
	return sorted[max(rank-1, 0)], nil
}
