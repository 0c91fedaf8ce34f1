package vault

import "github.com/contribute-dao/weft/errors"

// x/vault reserves 60 ~ 69.
var (
	ErrDuplicateAsset         = errors.Register(60, "asset already staked in vault")
	ErrInsufficientStake      = errors.Register(61, "insufficient stake")
	ErrInsufficientVaultFunds = errors.Register(62, "insufficient vault funds")
	ErrReentrant              = errors.Register(63, "reentrant vault call")
)
