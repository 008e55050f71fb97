package returns

import (
	"errors"
	"fmt"
)

// ErrNoResult is matched by every error returned when a return cannot be
// computed from the inputs.
var ErrNoResult = errors.New("no result")

var (
	// ErrInsufficientData is returned when fewer than two flows or valuations are given.
	ErrInsufficientData = fmt.Errorf("%w: insufficient data", ErrNoResult)
	// ErrNonConvergence is returned when the rate solver does not settle on a value.
	ErrNonConvergence = fmt.Errorf("%w: no convergence", ErrNoResult)
	// ErrNumericOverflow is returned when a candidate rate leaves the domain of the discount function.
	ErrNumericOverflow = fmt.Errorf("%w: numeric overflow", ErrNoResult)
)
