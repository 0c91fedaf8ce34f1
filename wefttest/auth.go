package wefttest

import (
	"context"

	"github.com/contribute-dao/weft"
)

// Auth authenticates a fixed set of conditions: all of Signers and, when
// set, Signer. Use Signer when a test has a single signer.
type Auth struct {
	Signer  weft.Condition
	Signers []weft.Condition
}

func (a *Auth) GetConditions(weft.Context) []weft.Condition {
	conds := make([]weft.Condition, 0, len(a.Signers)+1)
	conds = append(conds, a.Signers...)
	if a.Signer != nil {
		conds = append(conds, a.Signer)
	}
	return conds
}

func (a *Auth) HasAddress(ctx weft.Context, addr weft.Address) bool {
	return hasAddress(a.GetConditions(ctx), addr)
}

// CtxAuth authenticates the conditions stored in the context under Key.
// Two instances with different keys never see each other's conditions.
type CtxAuth struct {
	Key string
}

type ctxAuthKey string

// SetConditions returns a context in which the given conditions are
// authenticated.
func (a *CtxAuth) SetConditions(ctx weft.Context, conds ...weft.Condition) weft.Context {
	return context.WithValue(ctx, ctxAuthKey(a.Key), conds)
}

func (a *CtxAuth) GetConditions(ctx weft.Context) []weft.Condition {
	conds, _ := ctx.Value(ctxAuthKey(a.Key)).([]weft.Condition)
	return conds
}

func (a *CtxAuth) HasAddress(ctx weft.Context, addr weft.Address) bool {
	return hasAddress(a.GetConditions(ctx), addr)
}

func hasAddress(conds []weft.Condition, addr weft.Address) bool {
	for _, c := range conds {
		if addr.Equals(c.Address()) {
			return true
		}
	}
	return false
}
