package vault

import (
	"github.com/contribute-dao/weft"
	"github.com/contribute-dao/weft/coin"
	"github.com/contribute-dao/weft/errors"
	"github.com/contribute-dao/weft/gconf"
	"github.com/contribute-dao/weft/orm"
	"github.com/contribute-dao/weft/x"
	"github.com/tendermint/tendermint/libs/log"
)

const (
	adminTxCost  int64 = 50
	settleTxCost int64 = 20
	moveTxCost   int64 = 100
)

// RegisterRoutes will instantiate and register
// all handlers in this package
func RegisterRoutes(r weft.Registry, auth x.Authenticator, ctrl *Controller) {
	r.Handle(&AddPoolMsg{}, &AddPoolHandler{auth: auth, ctrl: ctrl})
	r.Handle(&SetPoolPointsMsg{}, &SetPoolPointsHandler{auth: auth, ctrl: ctrl})
	r.Handle(&SettleMsg{}, &SettleHandler{ctrl: ctrl})
	r.Handle(&MassSettleMsg{}, &MassSettleHandler{ctrl: ctrl})
	r.Handle(&DepositMsg{}, &DepositHandler{auth: auth, ctrl: ctrl})
	r.Handle(&WithdrawMsg{}, &WithdrawHandler{auth: auth, ctrl: ctrl})
	r.Handle(&HarvestMsg{}, &HarvestHandler{auth: auth, ctrl: ctrl})
	r.Handle(&EmergencyWithdrawMsg{}, &EmergencyWithdrawHandler{auth: auth, ctrl: ctrl})
	r.Handle(&UpdateConfigurationMsg{}, gconf.NewUpdateConfigurationHandler(confPkg, &Configuration{}, auth))
}

// RegisterQuery will register the vault buckets as "/vaults", "/pools",
// "/stakes" and "/epochs"
func RegisterQuery(qr weft.QueryRouter) {
	NewStateBucket().Register("vaults", qr)
	NewPoolBucket().Register("pools", qr)
	NewStakeBucket().Register("stakes", qr)
	NewEpochBucket().Register("epochs", qr)
}

func logger(ctx weft.Context) log.Logger {
	return weft.GetLogger(ctx).With("module", "vault")
}

func requireAdmin(ctx weft.Context, db weft.KVStore, auth x.Authenticator) error {
	conf, err := loadConf(db)
	if err != nil {
		return err
	}
	return x.RequireAddress(ctx, auth, conf.Admin, "vault admin")
}

// AddPoolHandler appends pools. Only the admin may call it.
type AddPoolHandler struct {
	auth x.Authenticator
	ctrl *Controller
}

var _ weft.Handler = (*AddPoolHandler)(nil)

func (h *AddPoolHandler) Check(ctx weft.Context, db weft.KVStore, tx weft.Tx) (*weft.CheckResult, error) {
	if _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &weft.CheckResult{GasAllocated: adminTxCost}, nil
}

func (h *AddPoolHandler) Deliver(ctx weft.Context, db weft.KVStore, tx weft.Tx) (*weft.DeliverResult, error) {
	msg, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	id, err := h.ctrl.AddPool(ctx, db, msg.Vault, msg.Points, msg.Asset, msg.WithSettle)
	if err != nil {
		return nil, err
	}
	logger(ctx).Info("pool added", "vault", msg.Vault, "pool", id, "asset", msg.Asset.String(), "points", msg.Points)
	return &weft.DeliverResult{Data: orm.EncodeID(id)}, nil
}

func (h *AddPoolHandler) validate(ctx weft.Context, db weft.KVStore, tx weft.Tx) (*AddPoolMsg, error) {
	var msg AddPoolMsg
	if err := weft.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	if err := requireAdmin(ctx, db, h.auth); err != nil {
		return nil, err
	}
	return &msg, nil
}

// SetPoolPointsHandler changes pool weights. Only the admin may call it.
type SetPoolPointsHandler struct {
	auth x.Authenticator
	ctrl *Controller
}

var _ weft.Handler = (*SetPoolPointsHandler)(nil)

func (h *SetPoolPointsHandler) Check(ctx weft.Context, db weft.KVStore, tx weft.Tx) (*weft.CheckResult, error) {
	if _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &weft.CheckResult{GasAllocated: adminTxCost}, nil
}

func (h *SetPoolPointsHandler) Deliver(ctx weft.Context, db weft.KVStore, tx weft.Tx) (*weft.DeliverResult, error) {
	msg, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	if err := h.ctrl.SetPoolPoints(ctx, db, msg.Vault, msg.PoolID, msg.Points, msg.WithSettle); err != nil {
		return nil, err
	}
	logger(ctx).Info("pool points set", "vault", msg.Vault, "pool", msg.PoolID, "points", msg.Points)
	return &weft.DeliverResult{}, nil
}

func (h *SetPoolPointsHandler) validate(ctx weft.Context, db weft.KVStore, tx weft.Tx) (*SetPoolPointsMsg, error) {
	var msg SetPoolPointsMsg
	if err := weft.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	if err := requireAdmin(ctx, db, h.auth); err != nil {
		return nil, err
	}
	return &msg, nil
}

// SettleHandler settles a single pool. Anyone may call it.
type SettleHandler struct {
	ctrl *Controller
}

var _ weft.Handler = (*SettleHandler)(nil)

func (h *SettleHandler) Check(ctx weft.Context, db weft.KVStore, tx weft.Tx) (*weft.CheckResult, error) {
	var msg SettleMsg
	if err := weft.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	return &weft.CheckResult{GasAllocated: settleTxCost}, nil
}

func (h *SettleHandler) Deliver(ctx weft.Context, db weft.KVStore, tx weft.Tx) (*weft.DeliverResult, error) {
	var msg SettleMsg
	if err := weft.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	if err := h.ctrl.Settle(ctx, db, msg.Vault, msg.PoolID); err != nil {
		return nil, err
	}
	return &weft.DeliverResult{}, nil
}

// MassSettleHandler settles every pool of a vault. Anyone may call it.
type MassSettleHandler struct {
	ctrl *Controller
}

var _ weft.Handler = (*MassSettleHandler)(nil)

func (h *MassSettleHandler) Check(ctx weft.Context, db weft.KVStore, tx weft.Tx) (*weft.CheckResult, error) {
	var msg MassSettleMsg
	if err := weft.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	n, err := h.ctrl.PoolCount(db, msg.Vault)
	if err != nil {
		return nil, err
	}
	return &weft.CheckResult{GasAllocated: settleTxCost * int64(n+1)}, nil
}

func (h *MassSettleHandler) Deliver(ctx weft.Context, db weft.KVStore, tx weft.Tx) (*weft.DeliverResult, error) {
	var msg MassSettleMsg
	if err := weft.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	if err := h.ctrl.MassSettle(ctx, db, msg.Vault); err != nil {
		return nil, err
	}
	return &weft.DeliverResult{}, nil
}

// harvestResult returns the harvested reward as the deliver result data.
func harvestResult(harvested coin.Amount) *weft.DeliverResult {
	return &weft.DeliverResult{Data: []byte(harvested.String())}
}

// DepositHandler stakes principal of the main signer.
type DepositHandler struct {
	auth x.Authenticator
	ctrl *Controller
}

var _ weft.Handler = (*DepositHandler)(nil)

func (h *DepositHandler) Check(ctx weft.Context, db weft.KVStore, tx weft.Tx) (*weft.CheckResult, error) {
	var msg DepositMsg
	if err := weft.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	if _, err := x.MainAddress(ctx, h.auth); err != nil {
		return nil, err
	}
	return &weft.CheckResult{GasAllocated: moveTxCost}, nil
}

func (h *DepositHandler) Deliver(ctx weft.Context, db weft.KVStore, tx weft.Tx) (*weft.DeliverResult, error) {
	var msg DepositMsg
	if err := weft.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	staker, err := x.MainAddress(ctx, h.auth)
	if err != nil {
		return nil, err
	}
	harvested, err := h.ctrl.Deposit(ctx, db, msg.Vault, msg.PoolID, staker, msg.Amount)
	if err != nil {
		return nil, err
	}
	logger(ctx).Info("deposit", "vault", msg.Vault, "pool", msg.PoolID, "staker", staker, "amount", msg.Amount, "harvested", harvested)
	return harvestResult(harvested), nil
}

// WithdrawHandler returns principal of the main signer.
type WithdrawHandler struct {
	auth x.Authenticator
	ctrl *Controller
}

var _ weft.Handler = (*WithdrawHandler)(nil)

func (h *WithdrawHandler) Check(ctx weft.Context, db weft.KVStore, tx weft.Tx) (*weft.CheckResult, error) {
	var msg WithdrawMsg
	if err := weft.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	staker, err := x.MainAddress(ctx, h.auth)
	if err != nil {
		return nil, err
	}
	stake, err := h.ctrl.Stake(db, msg.Vault, msg.PoolID, staker)
	if err != nil {
		return nil, err
	}
	if stake.Amount.LT(msg.Amount) {
		return nil, errors.Wrapf(ErrInsufficientStake, "staked %s", stake.Amount)
	}
	return &weft.CheckResult{GasAllocated: moveTxCost}, nil
}

func (h *WithdrawHandler) Deliver(ctx weft.Context, db weft.KVStore, tx weft.Tx) (*weft.DeliverResult, error) {
	var msg WithdrawMsg
	if err := weft.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	staker, err := x.MainAddress(ctx, h.auth)
	if err != nil {
		return nil, err
	}
	harvested, err := h.ctrl.Withdraw(ctx, db, msg.Vault, msg.PoolID, staker, msg.Amount)
	if err != nil {
		return nil, err
	}
	logger(ctx).Info("withdraw", "vault", msg.Vault, "pool", msg.PoolID, "staker", staker, "amount", msg.Amount, "harvested", harvested)
	return harvestResult(harvested), nil
}

// HarvestHandler pays the pending reward of the main signer.
type HarvestHandler struct {
	auth x.Authenticator
	ctrl *Controller
}

var _ weft.Handler = (*HarvestHandler)(nil)

func (h *HarvestHandler) Check(ctx weft.Context, db weft.KVStore, tx weft.Tx) (*weft.CheckResult, error) {
	var msg HarvestMsg
	if err := weft.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	if _, err := x.MainAddress(ctx, h.auth); err != nil {
		return nil, err
	}
	return &weft.CheckResult{GasAllocated: moveTxCost}, nil
}

func (h *HarvestHandler) Deliver(ctx weft.Context, db weft.KVStore, tx weft.Tx) (*weft.DeliverResult, error) {
	var msg HarvestMsg
	if err := weft.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	staker, err := x.MainAddress(ctx, h.auth)
	if err != nil {
		return nil, err
	}
	harvested, err := h.ctrl.Harvest(ctx, db, msg.Vault, msg.PoolID, staker)
	if err != nil {
		return nil, err
	}
	logger(ctx).Info("harvest", "vault", msg.Vault, "pool", msg.PoolID, "staker", staker, "harvested", harvested)
	return harvestResult(harvested), nil
}

// EmergencyWithdrawHandler returns the whole principal of the main signer.
type EmergencyWithdrawHandler struct {
	auth x.Authenticator
	ctrl *Controller
}

var _ weft.Handler = (*EmergencyWithdrawHandler)(nil)

func (h *EmergencyWithdrawHandler) Check(ctx weft.Context, db weft.KVStore, tx weft.Tx) (*weft.CheckResult, error) {
	var msg EmergencyWithdrawMsg
	if err := weft.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	if _, err := x.MainAddress(ctx, h.auth); err != nil {
		return nil, err
	}
	return &weft.CheckResult{GasAllocated: moveTxCost}, nil
}

func (h *EmergencyWithdrawHandler) Deliver(ctx weft.Context, db weft.KVStore, tx weft.Tx) (*weft.DeliverResult, error) {
	var msg EmergencyWithdrawMsg
	if err := weft.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	staker, err := x.MainAddress(ctx, h.auth)
	if err != nil {
		return nil, err
	}
	returned, err := h.ctrl.EmergencyWithdraw(ctx, db, msg.Vault, msg.PoolID, staker)
	if err != nil {
		return nil, err
	}
	return &weft.DeliverResult{Data: []byte(returned.String())}, nil
}
