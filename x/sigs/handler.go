package sigs

import (
	"github.com/contribute-dao/weft"
	"github.com/contribute-dao/weft/errors"
	"github.com/contribute-dao/weft/orm"
	"github.com/contribute-dao/weft/x"
)

const bumpSequenceCost = 10

// RegisterRoutes registers the sequence management handlers.
func RegisterRoutes(r weft.Registry, auth x.Authenticator) {
	r.Handle(&BumpSequenceMsg{}, NewBumpSequenceHandler(auth))
}

// BumpSequenceHandler increments the sequence of the main signer.
type BumpSequenceHandler struct {
	auth   x.Authenticator
	bucket orm.ModelBucket
}

var _ weft.Handler = BumpSequenceHandler{}

// NewBumpSequenceHandler creates a handler for BumpSequenceMsg
func NewBumpSequenceHandler(auth x.Authenticator) BumpSequenceHandler {
	return BumpSequenceHandler{auth: auth, bucket: NewBucket()}
}

func (h BumpSequenceHandler) Check(ctx weft.Context, db weft.KVStore, tx weft.Tx) (*weft.CheckResult, error) {
	if _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &weft.CheckResult{GasAllocated: bumpSequenceCost}, nil
}

func (h BumpSequenceHandler) Deliver(ctx weft.Context, db weft.KVStore, tx weft.Tx) (*weft.DeliverResult, error) {
	msg, user, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	if err := user.bumpSequence(int64(msg.Increment)); err != nil {
		return nil, err
	}
	if err := h.bucket.Put(db, user.Pubkey.Address(), user); err != nil {
		return nil, errors.Wrap(err, "save user")
	}
	return &weft.DeliverResult{}, nil
}

func (h BumpSequenceHandler) validate(ctx weft.Context, db weft.KVStore, tx weft.Tx) (*BumpSequenceMsg, *UserData, error) {
	var msg BumpSequenceMsg
	if err := weft.LoadMsg(tx, &msg); err != nil {
		return nil, nil, errors.Wrap(err, "load msg")
	}
	signer, err := x.MainAddress(ctx, h.auth)
	if err != nil {
		return nil, nil, err
	}
	var user UserData
	if err := h.bucket.One(db, signer, &user); err != nil {
		return nil, nil, errors.Wrap(err, "signer has no sequence")
	}
	return &msg, &user, nil
}
