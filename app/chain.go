package app

import (
	"reflect"

	"github.com/contribute-dao/weft"
)

// Decorators is an ordered list of decorators waiting for the handler they
// wrap. The first decorator runs first.
//
//	app.ChainDecorators(
//		utils.NewLogging(),
//		utils.NewRecovery(),
//		sigs.NewDecorator(),
//		utils.NewSavepoint().OnDeliver(),
//	).WithHandler(router)
type Decorators struct {
	chain []weft.Decorator
}

// ChainDecorators starts a chain. Nil decorators are skipped, which lets a
// caller leave out an optional step inline.
func ChainDecorators(chain ...weft.Decorator) Decorators {
	return Decorators{}.Chain(chain...)
}

// Chain returns a new chain with the decorators appended. The receiver is
// not modified.
func (d Decorators) Chain(chain ...weft.Decorator) Decorators {
	next := make([]weft.Decorator, 0, len(d.chain)+len(chain))
	next = append(next, d.chain...)
	for _, dec := range chain {
		if !isNilDecorator(dec) {
			next = append(next, dec)
		}
	}
	return Decorators{chain: next}
}

func isNilDecorator(d weft.Decorator) bool {
	if d == nil {
		return true
	}
	v := reflect.ValueOf(d)
	return v.Kind() == reflect.Ptr && v.IsNil()
}

// WithHandler returns the handler wrapped by the whole chain.
func (d Decorators) WithHandler(h weft.Handler) weft.Handler {
	for i := len(d.chain) - 1; i >= 0; i-- {
		h = step{decorator: d.chain[i], next: h}
	}
	return h
}

// step runs one decorator around the rest of the chain.
type step struct {
	decorator weft.Decorator
	next      weft.Handler
}

func (s step) Check(ctx weft.Context, db weft.KVStore, tx weft.Tx) (*weft.CheckResult, error) {
	return s.decorator.Check(ctx, db, tx, s.next)
}

func (s step) Deliver(ctx weft.Context, db weft.KVStore, tx weft.Tx) (*weft.DeliverResult, error) {
	return s.decorator.Deliver(ctx, db, tx, s.next)
}
