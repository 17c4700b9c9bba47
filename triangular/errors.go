package triangular

import "errors"

var (
	// ErrInvalidParameters reports a malformed triangle (min < mode < max does not hold).
	ErrInvalidParameters = errors.New("invalid triangular parameters")

	// ErrInvalidArgument reports a bad call argument such as a non-positive sample count.
	ErrInvalidArgument = errors.New("invalid argument")
)
