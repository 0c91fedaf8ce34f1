package x

import (
	"github.com/contribute-dao/weft"
	"github.com/contribute-dao/weft/errors"
)

// Authenticator tells a handler who authorized the transaction. Handlers
// receive it in their constructor and never depend on x/sigs directly.
type Authenticator interface {
	// GetConditions returns every condition satisfied by the
	// transaction. The first one is the main signer.
	GetConditions(weft.Context) []weft.Condition
	HasAddress(weft.Context, weft.Address) bool
}

// ChainAuth combines several authenticators. A condition satisfied by any
// of them is satisfied by the result.
func ChainAuth(impls ...Authenticator) Authenticator {
	return multiAuth(impls)
}

type multiAuth []Authenticator

func (m multiAuth) GetConditions(ctx weft.Context) []weft.Condition {
	var all []weft.Condition
	for _, a := range m {
		all = append(all, a.GetConditions(ctx)...)
	}
	return all
}

func (m multiAuth) HasAddress(ctx weft.Context, addr weft.Address) bool {
	for _, a := range m {
		if a.HasAddress(ctx, addr) {
			return true
		}
	}
	return false
}

// MainAddress returns the address of the first condition. Deposits,
// harvests and keeper rewards are all credited to it.
func MainAddress(ctx weft.Context, auth Authenticator) (weft.Address, error) {
	conds := auth.GetConditions(ctx)
	if len(conds) == 0 {
		return nil, errors.Wrap(errors.ErrUnauthorized, "no signer")
	}
	return conds[0].Address(), nil
}

// RequireAddress fails with ErrUnauthorized unless addr authorized the
// transaction. The role names addr in the error, for example "vault admin".
// An empty addr never matches.
func RequireAddress(ctx weft.Context, auth Authenticator, addr weft.Address, role string) error {
	switch {
	case len(addr) == 0:
		return errors.Wrapf(errors.ErrUnauthorized, "no %s configured", role)
	case !auth.HasAddress(ctx, addr):
		return errors.Wrapf(errors.ErrUnauthorized, "%s signature required", role)
	}
	return nil
}
