package splitter

import "github.com/contribute-dao/weft/errors"

// x/splitter reserves 70 ~ 79.
var (
	// ErrOutOfBounds is returned when a fee parameter leaves its allowed
	// range.
	ErrOutOfBounds = errors.Register(70, "parameter out of bounds")
	// ErrBelowMinimumCaller is returned when the update caller does not
	// hold enough of the governed token.
	ErrBelowMinimumCaller = errors.Register(71, "caller holding below minimum")
)
