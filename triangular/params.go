package triangular

import (
	"fmt"
	"math"
)

// Params holds the parameters of a triangular distribution.
//
// The zero value is not valid; build Params with New. Once built a Params never changes,
// so it can be shared freely between goroutines.
type Params struct {
	min  float64
	mode float64
	max  float64
}

// New returns the triangular parameters (min, mode, max).
//
// Parameters:
//   - lo: lower bound a (minimum)
//   - mode: most likely value c
//   - hi: upper bound b (maximum)
//
// Returns:
//   - Params: the validated parameters
//   - error: wraps ErrInvalidParameters unless a < c < b and all three are finite
//
// Example:
//
//	p, err := New(10, 20, 40)
func New(lo, mode, hi float64) (Params, error) {
	p := Params{min: lo, mode: mode, max: hi}
	if err := p.Validate(); err != nil {
		return Params{}, err
	}
	return p, nil
}

// MustNew is like New but panics on invalid parameters.
// It is meant for package-level fixtures and tests.
func MustNew(lo, mode, hi float64) Params {
	p, err := New(lo, mode, hi)
	if err != nil {
		panic(err)
	}
	return p
}

// Validate reports whether p satisfies min < mode < max with finite values.
func (p Params) Validate() error {
	for _, v := range [...]float64{p.min, p.mode, p.max} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: values must be finite, got min=%g mode=%g max=%g",
				ErrInvalidParameters, p.min, p.mode, p.max)
		}
	}
	if !(p.min < p.mode && p.mode < p.max) {
		return fmt.Errorf("%w: need min < mode < max, got min=%g mode=%g max=%g",
			ErrInvalidParameters, p.min, p.mode, p.max)
	}
	return nil
}

// Min returns the lower bound.
func (p Params) Min() float64 { return p.min }

// Mode returns the most likely value.
func (p Params) Mode() float64 { return p.mode }

// Max returns the upper bound.
func (p Params) Max() float64 { return p.max }

// String formats p as "Tri(min, mode, max)".
func (p Params) String() string {
	return fmt.Sprintf("Tri(%g, %g, %g)", p.min, p.mode, p.max)
}

// Split returns Fc = (mode-min)/(max-min), the CDF value at the mode.
// Uniform draws below Split map onto the rising edge, the rest onto the falling edge.
func (p Params) Split() float64 {
	return (p.mode - p.min) / (p.max - p.min)
}

// Mean returns (min+mode+max)/3.
func (p Params) Mean() float64 {
	return (p.min + p.mode + p.max) / 3
}

// Variance returns the distribution variance.
func (p Params) Variance() float64 {
	a, c, b := p.min, p.mode, p.max
	return (a*a + b*b + c*c - a*b - a*c - b*c) / 18
}

// PDF returns the density at x.
func (p Params) PDF(x float64) float64 {
	a, c, b := p.min, p.mode, p.max
	switch {
	case x < a || x > b:
		return 0
	case x < c:
		return 2 * (x - a) / ((b - a) * (c - a))
	case x == c:
		return 2 / (b - a)
	default:
		return 2 * (b - x) / ((b - a) * (b - c))
	}
}

// CDF returns P(X <= x).
func (p Params) CDF(x float64) float64 {
	a, c, b := p.min, p.mode, p.max
	switch {
	case x <= a:
		return 0
	case x < c:
		return (x - a) * (x - a) / ((b - a) * (c - a))
	case x == c:
		return p.Split()
	case x < b:
		return 1 - (b-x)*(b-x)/((b-a)*(b-c))
	default:
		return 1
	}
}

// Quantile returns the inverse CDF at u.
//
// For 0 < u < 1 the result lies strictly inside (min, max). Out-of-range inputs are clamped:
// u <= 0 yields min and u >= 1 yields max.
func (p Params) Quantile(u float64) float64 {
	return p.inverse().at(u)
}

// inverse precomputes the constants of the closed-form inverse CDF.
func (p Params) inverse() inverseCDF {
	width := p.max - p.min
	return inverseCDF{
		min:   p.min,
		max:   p.max,
		split: p.Split(),
		low:   width * (p.mode - p.min),
		high:  width * (p.max - p.mode),
	}
}

// inverseCDF evaluates the two branches of the triangular inverse CDF.
type inverseCDF struct {
	min, max  float64
	split     float64
	low, high float64
}

func (f inverseCDF) at(u float64) float64 {
	switch {
	case u <= 0:
		return f.min
	case u >= 1:
		return f.max
	case u < f.split:
		return f.min + math.Sqrt(u*f.low)
	default:
		return f.max - math.Sqrt((1-u)*f.high)
	}
}
