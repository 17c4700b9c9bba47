// Package triangular samples from triangular distributions by exact inverse-transform.
//
// A triangular distribution is described by its minimum, mode and maximum. Its CDF is made of
// two quadratic pieces joined at the mode, so the inverse CDF has a closed form and a sample
// costs one uniform draw and one square root.
//
// # Basic Usage
//
//	p, err := triangular.New(10, 20, 40) // min, mode, max
//	if err != nil {
//	    return err
//	}
//	batch, err := triangular.Sample(triangular.NewSource(42, 0), 1_000_000, p)
//
// # Streams
//
// Every random variable should draw from its own Source. NewSource derives a PCG generator
// from a seed and a stream number; distinct stream numbers under the same seed yield
// independent sequences, and the same (seed, stream) pair always yields the same sequence.
//
// # Boundaries
//
// Uniform draws are taken on the open interval (0, 1): a Source returning exactly 0 is
// redrawn. Quantile itself maps u <= 0 to the minimum and u >= 1 to the maximum, so no input
// ever produces NaN.
//
// # Errors
//
//   - ErrInvalidParameters: the parameters do not satisfy min < mode < max, or are not finite.
//   - ErrInvalidArgument: a non-positive sample count or a nil Source.
package triangular
