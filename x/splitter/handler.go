package splitter

import (
	"github.com/contribute-dao/weft"
	"github.com/contribute-dao/weft/errors"
	"github.com/contribute-dao/weft/gconf"
	"github.com/contribute-dao/weft/x"
	"github.com/tendermint/tendermint/libs/log"
)

const (
	updateTxCost int64 = 200
	adminTxCost  int64 = 50
)

// RegisterRoutes will instantiate and register
// all handlers in this package
func RegisterRoutes(r weft.Registry, auth x.Authenticator, ctrl *Controller) {
	r.Handle(&UpdateMsg{}, &UpdateHandler{auth: auth, ctrl: ctrl})
	r.Handle(&SetTrigFeeBpsMsg{}, &SetTrigFeeBpsHandler{auth: auth, ctrl: ctrl})
	r.Handle(&SetTreasuryMsg{}, &SetTreasuryHandler{auth: auth, ctrl: ctrl})
	r.Handle(&UpdateConfigurationMsg{}, gconf.NewUpdateConfigurationHandler(confPkg, &Configuration{}, auth))
}

// RegisterQuery exposes the running totals under "/splitter".
func RegisterQuery(qr weft.QueryRouter) {
	NewStateBucket().Register("splitter", qr)
}

func logger(ctx weft.Context) log.Logger {
	return weft.GetLogger(ctx).With("module", "splitter")
}

func requireAdmin(ctx weft.Context, db weft.KVStore, auth x.Authenticator) error {
	conf, err := loadConf(db)
	if err != nil {
		return err
	}
	return x.RequireAddress(ctx, auth, conf.Admin, "splitter admin")
}

// UpdateHandler splits the fees on behalf of the signing keeper.
type UpdateHandler struct {
	auth x.Authenticator
	ctrl *Controller
}

var _ weft.Handler = (*UpdateHandler)(nil)

func (h *UpdateHandler) Check(ctx weft.Context, db weft.KVStore, tx weft.Tx) (*weft.CheckResult, error) {
	keeper, err := h.validate(ctx, tx)
	if err != nil {
		return nil, err
	}
	if err := h.ctrl.CanUpdate(db, keeper); err != nil {
		return nil, err
	}
	return &weft.CheckResult{GasAllocated: updateTxCost}, nil
}

func (h *UpdateHandler) Deliver(ctx weft.Context, db weft.KVStore, tx weft.Tx) (*weft.DeliverResult, error) {
	keeper, err := h.validate(ctx, tx)
	if err != nil {
		return nil, err
	}
	split, err := h.ctrl.Update(ctx, db, keeper)
	if err != nil {
		return nil, err
	}
	logger(ctx).Info("fees split",
		"keeper", keeper,
		"keeper_reward", split.Keeper,
		"hodler", split.Hodler,
		"trig", split.Trig,
		"nft", split.Nft,
		"lp", split.Lp,
		"treasury", split.Treasury)
	return &weft.DeliverResult{Data: []byte(split.Keeper.String())}, nil
}

func (h *UpdateHandler) validate(ctx weft.Context, tx weft.Tx) (weft.Address, error) {
	var msg UpdateMsg
	if err := weft.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	return x.MainAddress(ctx, h.auth)
}

// SetTrigFeeBpsHandler changes the trig vault share. Only the admin may call
// it.
type SetTrigFeeBpsHandler struct {
	auth x.Authenticator
	ctrl *Controller
}

var _ weft.Handler = (*SetTrigFeeBpsHandler)(nil)

func (h *SetTrigFeeBpsHandler) Check(ctx weft.Context, db weft.KVStore, tx weft.Tx) (*weft.CheckResult, error) {
	if _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &weft.CheckResult{GasAllocated: adminTxCost}, nil
}

func (h *SetTrigFeeBpsHandler) Deliver(ctx weft.Context, db weft.KVStore, tx weft.Tx) (*weft.DeliverResult, error) {
	msg, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	if err := h.ctrl.SetTrigFeeBps(db, msg.Bps); err != nil {
		return nil, err
	}
	logger(ctx).Info("trig fee set", "bps", msg.Bps)
	return &weft.DeliverResult{}, nil
}

func (h *SetTrigFeeBpsHandler) validate(ctx weft.Context, db weft.KVStore, tx weft.Tx) (*SetTrigFeeBpsMsg, error) {
	var msg SetTrigFeeBpsMsg
	if err := weft.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	if err := requireAdmin(ctx, db, h.auth); err != nil {
		return nil, err
	}
	return &msg, nil
}

// SetTreasuryHandler rotates the treasury address. Only the admin may call
// it.
type SetTreasuryHandler struct {
	auth x.Authenticator
	ctrl *Controller
}

var _ weft.Handler = (*SetTreasuryHandler)(nil)

func (h *SetTreasuryHandler) Check(ctx weft.Context, db weft.KVStore, tx weft.Tx) (*weft.CheckResult, error) {
	if _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &weft.CheckResult{GasAllocated: adminTxCost}, nil
}

func (h *SetTreasuryHandler) Deliver(ctx weft.Context, db weft.KVStore, tx weft.Tx) (*weft.DeliverResult, error) {
	msg, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	if err := h.ctrl.SetTreasury(db, msg.Treasury); err != nil {
		return nil, err
	}
	logger(ctx).Info("treasury set", "treasury", msg.Treasury)
	return &weft.DeliverResult{}, nil
}

func (h *SetTreasuryHandler) validate(ctx weft.Context, db weft.KVStore, tx weft.Tx) (*SetTreasuryMsg, error) {
	var msg SetTreasuryMsg
	if err := weft.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	if err := requireAdmin(ctx, db, h.auth); err != nil {
		return nil, err
	}
	return &msg, nil
}
