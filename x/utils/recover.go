package utils

import (
	"github.com/contribute-dao/weft"
	"github.com/contribute-dao/weft/errors"
)

// Recovery fails the transaction with ErrPanic when the wrapped handler
// panics, instead of crashing the node. The panic is logged together with
// the message path.
type Recovery struct{}

var _ weft.Decorator = Recovery{}

func NewRecovery() Recovery {
	return Recovery{}
}

func (Recovery) Check(ctx weft.Context, db weft.KVStore, tx weft.Tx, next weft.Checker) (res *weft.CheckResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			res, err = nil, panicked(ctx, tx, r)
		}
	}()
	return next.Check(ctx, db, tx)
}

func (Recovery) Deliver(ctx weft.Context, db weft.KVStore, tx weft.Tx, next weft.Deliverer) (res *weft.DeliverResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			res, err = nil, panicked(ctx, tx, r)
		}
	}()
	return next.Deliver(ctx, db, tx)
}

func panicked(ctx weft.Context, tx weft.Tx, r interface{}) error {
	path := "(missing)"
	if tx != nil {
		path = weft.GetPath(tx)
	}
	weft.GetLogger(ctx).Error("handler panic", "path", path, "panic", r)
	return errors.Wrapf(errors.ErrPanic, "%v", r)
}
