/*
Package sigs authenticates transactions by their ed25519 signatures.

Every key has a sequence that must be used by its next signature, which
protects against replays. The sequence starts at zero and is stored the
first time the key signs.
*/
package sigs

import (
	"github.com/contribute-dao/weft"
	"github.com/contribute-dao/weft/errors"
)

// Gas charged per verified signature.
const signatureVerifyCost = 500

// RegisterQuery exposes the signer accounts as "/auth".
func RegisterQuery(qr weft.QueryRouter) {
	NewBucket().Register("auth", qr)
}

// Decorator verifies the signatures of a transaction and passes the signers
// down in the context.
type Decorator struct {
	optional bool
}

var _ weft.Decorator = Decorator{}

// NewDecorator returns a decorator that rejects unsigned transactions.
func NewDecorator() Decorator {
	return Decorator{}
}

// AllowMissingSigs returns a copy of the decorator that lets unsigned
// transactions through with no signers.
func (d Decorator) AllowMissingSigs() Decorator {
	d.optional = true
	return d
}

func (d Decorator) Check(ctx weft.Context, store weft.KVStore, tx weft.Tx, next weft.Checker) (*weft.CheckResult, error) {
	ctx, signed, err := d.verify(ctx, store, tx)
	if err != nil {
		return nil, err
	}
	res, err := next.Check(ctx, store, tx)
	if err != nil {
		return nil, err
	}
	res.GasAllocated += int64(signed) * signatureVerifyCost
	return res, nil
}

func (d Decorator) Deliver(ctx weft.Context, store weft.KVStore, tx weft.Tx, next weft.Deliverer) (*weft.DeliverResult, error) {
	ctx, _, err := d.verify(ctx, store, tx)
	if err != nil {
		return nil, err
	}
	return next.Deliver(ctx, store, tx)
}

// verify returns the context with the signers attached and their count.
func (d Decorator) verify(ctx weft.Context, store weft.KVStore, tx weft.Tx) (weft.Context, int, error) {
	stx, ok := tx.(SignedTx)
	switch {
	case !ok && d.optional:
		return ctx, 0, nil
	case !ok:
		return nil, 0, errors.Wrap(errors.ErrUnauthorized, "transaction is not signed")
	}

	signers, err := VerifyTxSignatures(store, stx, weft.GetChainID(ctx))
	if err != nil {
		return nil, 0, errors.Wrap(err, "cannot verify signatures")
	}
	if len(signers) == 0 && !d.optional {
		return nil, 0, errors.Wrap(errors.ErrUnauthorized, "missing signature")
	}
	return withSigners(ctx, signers), len(signers), nil
}
