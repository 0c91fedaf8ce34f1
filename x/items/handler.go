package items

import (
	"github.com/contribute-dao/weft"
	"github.com/contribute-dao/weft/errors"
	"github.com/contribute-dao/weft/x"
)

const (
	transferTxCost    int64 = 100
	setApprovalTxCost int64 = 50
)

// RegisterRoutes will instantiate and register
// all handlers in this package
func RegisterRoutes(r weft.Registry, auth x.Authenticator, control Controller) {
	r.Handle(&TransferMsg{}, NewTransferHandler(auth, control))
	r.Handle(&SetApprovalMsg{}, NewSetApprovalHandler(auth, control))
}

// RegisterQuery will register the items buckets as "/collections",
// "/holdings" and "/operators"
func RegisterQuery(qr weft.QueryRouter) {
	NewCollectionBucket().Register("collections", qr)
	NewHoldingBucket().Register("holdings", qr)
	NewOperatorBucket().Register("operators", qr)
}

// TransferHandler moves items between accounts.
type TransferHandler struct {
	auth    x.Authenticator
	control Controller
}

var _ weft.Handler = TransferHandler{}

// NewTransferHandler creates a handler for TransferMsg
func NewTransferHandler(auth x.Authenticator, control Controller) TransferHandler {
	return TransferHandler{auth: auth, control: control}
}

func (h TransferHandler) Check(ctx weft.Context, db weft.KVStore, tx weft.Tx) (*weft.CheckResult, error) {
	var msg TransferMsg
	if err := weft.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	if _, err := x.MainAddress(ctx, h.auth); err != nil {
		return nil, err
	}
	return &weft.CheckResult{GasAllocated: transferTxCost * int64(len(msg.ClassIDs))}, nil
}

func (h TransferHandler) Deliver(ctx weft.Context, db weft.KVStore, tx weft.Tx) (*weft.DeliverResult, error) {
	var msg TransferMsg
	if err := weft.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	// The source signature is enough. Otherwise the main signer acts as
	// an operator and its approval is checked by the controller.
	operator := msg.Src
	if !h.auth.HasAddress(ctx, msg.Src) {
		signer, err := x.MainAddress(ctx, h.auth)
		if err != nil {
			return nil, err
		}
		operator = signer
	}
	if err := h.control.BatchTransfer(db, msg.Collection, operator, msg.Src, msg.Dest, msg.ClassIDs, msg.Counts); err != nil {
		return nil, err
	}
	return &weft.DeliverResult{}, nil
}

// SetApprovalHandler grants operator rights.
type SetApprovalHandler struct {
	auth    x.Authenticator
	control Controller
}

var _ weft.Handler = SetApprovalHandler{}

// NewSetApprovalHandler creates a handler for SetApprovalMsg
func NewSetApprovalHandler(auth x.Authenticator, control Controller) SetApprovalHandler {
	return SetApprovalHandler{auth: auth, control: control}
}

func (h SetApprovalHandler) Check(ctx weft.Context, db weft.KVStore, tx weft.Tx) (*weft.CheckResult, error) {
	if _, err := h.validate(ctx, tx); err != nil {
		return nil, err
	}
	return &weft.CheckResult{GasAllocated: setApprovalTxCost}, nil
}

func (h SetApprovalHandler) Deliver(ctx weft.Context, db weft.KVStore, tx weft.Tx) (*weft.DeliverResult, error) {
	msg, err := h.validate(ctx, tx)
	if err != nil {
		return nil, err
	}
	if err := h.control.SetApprovalForAll(db, msg.Collection, msg.Owner, msg.Operator, msg.Approved); err != nil {
		return nil, err
	}
	return &weft.DeliverResult{}, nil
}

func (h SetApprovalHandler) validate(ctx weft.Context, tx weft.Tx) (*SetApprovalMsg, error) {
	var msg SetApprovalMsg
	if err := weft.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	if err := x.RequireAddress(ctx, h.auth, msg.Owner, "owner"); err != nil {
		return nil, err
	}
	return &msg, nil
}
