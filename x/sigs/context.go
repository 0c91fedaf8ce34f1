package sigs

import (
	"context"

	"github.com/contribute-dao/weft"
	"github.com/contribute-dao/weft/x"
)

type signersKey struct{}

// Only the decorator of this package attaches signers.
func withSigners(ctx weft.Context, signers []weft.Condition) weft.Context {
	return context.WithValue(ctx, signersKey{}, signers)
}

// Authenticate exposes the keys that signed the transaction as
// permissions.
type Authenticate struct{}

var _ x.Authenticator = Authenticate{}

// GetConditions returns the conditions of all signers, if any.
func (Authenticate) GetConditions(ctx weft.Context) []weft.Condition {
	signers, _ := ctx.Value(signersKey{}).([]weft.Condition)
	return signers
}

func (a Authenticate) HasAddress(ctx weft.Context, addr weft.Address) bool {
	for _, cond := range a.GetConditions(ctx) {
		if addr.Equals(cond.Address()) {
			return true
		}
	}
	return false
}
