package triangular

import (
	"fmt"
	"math/rand/v2"
)

// maxZeroRedraws bounds how often a Source returning exactly 0 is redrawn before the
// draw is taken at its limit (the minimum).
const maxZeroRedraws = 64

// Batch is an ordered sequence of samples of one random variable.
//
// Batches produced for the same simulation share their length, and position i of every
// batch belongs to the same simulated realization.
type Batch []float64

// Source produces uniform reals in [0, 1).
// *rand.Rand from math/rand/v2 satisfies it.
type Source interface {
	Float64() float64
}

// NewSource returns a PCG generator for the given seed and stream number.
//
// Distinct stream numbers under one seed give independent sequences; the same pair always
// reproduces the same sequence.
func NewSource(seed, stream uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, mix64(stream))) // #nosec G404 -- simulation, not crypto
}

// mix64 is the splitmix64 finalizer. It spreads consecutive stream numbers over the whole
// 64-bit space so neighbouring streams do not start from related PCG states.
func mix64(x uint64) uint64 {
	x += 0x9e3779b97f4a7c15
	x = (x ^ (x >> 30)) * 0xbf58476d1ce4e5b9
	x = (x ^ (x >> 27)) * 0x94d049bb133111eb
	return x ^ (x >> 31)
}

// Sample draws n samples of p from src by inverse-transform sampling.
//
// Parameters:
//   - src: uniform source; it is consumed sequentially, so sample i uses the i-th accepted draw
//   - n: number of samples, must be positive
//   - p: distribution parameters
//
// Returns:
//   - Batch: n samples in draw order, each within [min, max]
//   - error: ErrInvalidArgument for n <= 0 or a nil src, ErrInvalidParameters for a malformed p
//
// Example:
//
//	batch, err := Sample(NewSource(7, 0), 100_000, MustNew(10, 20, 40))
func Sample(src Source, n int, p Params) (Batch, error) {
	if n <= 0 {
		return nil, fmt.Errorf("%w: sample count must be positive, got %d", ErrInvalidArgument, n)
	}
	if src == nil {
		return nil, fmt.Errorf("%w: nil uniform source", ErrInvalidArgument)
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}

	out := make(Batch, n)
	fill(src, p.inverse(), out)
	return out, nil
}

func fill(src Source, f inverseCDF, out Batch) {
	for i := range out {
		out[i] = f.at(openUnit(src))
	}
}

// openUnit draws from src until the value is strictly positive.
// A source stuck at 0 yields 0 after maxZeroRedraws attempts, which the inverse CDF maps to
// the minimum.
func openUnit(src Source) float64 {
	for range maxZeroRedraws {
		if u := src.Float64(); u > 0 {
			return u
		}
	}
	return 0
}

// Sampler draws batches of one distribution from its own stream.
// A Sampler is not safe for concurrent use; give each goroutine its own.
type Sampler struct {
	params Params
	src    Source
}

// NewSampler binds p to src.
//
// Example:
//
//	s, err := NewSampler(MustNew(5, 10, 30), NewSource(1, 0))
//	first, _ := s.Sample(1000)
//	next, _ := s.Sample(1000) // continues the same stream
func NewSampler(p Params, src Source) (*Sampler, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if src == nil {
		return nil, fmt.Errorf("%w: nil uniform source", ErrInvalidArgument)
	}
	return &Sampler{params: p, src: src}, nil
}

// Params returns the sampler's distribution.
func (s *Sampler) Params() Params { return s.params }

// Sample draws the next n samples from the sampler's stream.
func (s *Sampler) Sample(n int) (Batch, error) {
	return Sample(s.src, n, s.params)
}
