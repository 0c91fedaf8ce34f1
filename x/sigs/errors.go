package sigs

import "github.com/contribute-dao/weft/errors"

// x/sigs reserves 40 ~ 49.
var (
	// ErrInvalidSequence is returned when a signature carries a sequence
	// other than the next expected one for the signer.
	ErrInvalidSequence = errors.Register(40, "invalid sequence number")
)
