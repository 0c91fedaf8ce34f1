package cash

import "github.com/contribute-dao/weft/errors"

// x/cash reserves 30 ~ 39.
var (
	// ErrTransferRejected is returned when the source account balance or
	// the spender allowance cannot cover a transfer.
	ErrTransferRejected = errors.Register(30, "transfer rejected")
)
