package splitter

import (
	"github.com/contribute-dao/weft"
	"github.com/contribute-dao/weft/coin"
	"github.com/contribute-dao/weft/errors"
	"github.com/contribute-dao/weft/gconf"
	"github.com/contribute-dao/weft/orm"
	"github.com/contribute-dao/weft/x/cash"
	"github.com/contribute-dao/weft/x/vault"
)

// Controller splits the collected fees.
type Controller struct {
	cash   cash.Controller
	states orm.ModelBucket
}

// NewController returns a controller moving tokens in the given ledger.
func NewController(c cash.Controller) *Controller {
	return &Controller{cash: c, states: NewStateBucket()}
}

// State returns the running totals.
func (c *Controller) State(db weft.ReadOnlyKVStore) (*State, error) {
	var st State
	switch err := c.states.One(db, stateKey, &st); {
	case err == nil:
		return &st, nil
	case errors.ErrNotFound.Is(err):
		return &State{}, nil
	default:
		return nil, err
	}
}

// Retained returns the hodler share withheld so far.
func (c *Controller) Retained(db weft.ReadOnlyKVStore) (coin.Amount, error) {
	st, err := c.State(db)
	if err != nil {
		return coin.Amount{}, err
	}
	return st.Retained, nil
}

// TrigFeeBps returns the share of the trig vault in basis points.
func (c *Controller) TrigFeeBps(db weft.ReadOnlyKVStore) (uint64, error) {
	conf, err := loadConf(db)
	if err != nil {
		return 0, err
	}
	return conf.TrigFeeBps, nil
}

// TreasuryFeeBps returns the treasury vault share in force at now.
func (c *Controller) TreasuryFeeBps(db weft.ReadOnlyKVStore, now weft.UnixTime) (uint64, error) {
	st, err := c.State(db)
	if err != nil {
		return 0, err
	}
	return TreasuryFeeBps(st.ScheduleAnchor, now), nil
}

// KeeperReward returns what an update would pay its caller now.
func (c *Controller) KeeperReward(db weft.ReadOnlyKVStore) (coin.Amount, error) {
	conf, err := loadConf(db)
	if err != nil {
		return coin.Amount{}, err
	}
	balance, err := c.cash.Balance(db, conf.Settlement, Account())
	if err != nil {
		return coin.Amount{}, err
	}
	return conf.KeeperReward.Reward(balance)
}

// Pending returns the collected fees waiting for the next update.
func (c *Controller) Pending(db weft.ReadOnlyKVStore) (coin.Amount, error) {
	conf, err := loadConf(db)
	if err != nil {
		return coin.Amount{}, err
	}
	return c.cash.Balance(db, conf.Settlement, Account())
}

// CanUpdate returns ErrBelowMinimumCaller if the caller does not hold enough
// of the governed token to call Update.
func (c *Controller) CanUpdate(db weft.ReadOnlyKVStore, caller weft.Address) error {
	conf, err := loadConf(db)
	if err != nil {
		return err
	}
	holding, err := c.cash.Balance(db, conf.GovernedToken, caller)
	if err != nil {
		return err
	}
	if holding.LT(conf.MinCallerHolding) {
		return errors.Wrapf(ErrBelowMinimumCaller, "holding %s %s", holding.Human(), conf.GovernedToken)
	}
	return nil
}

// SetTrigFeeBps changes the trig vault share. Authorization is the caller's
// responsibility.
func (c *Controller) SetTrigFeeBps(db weft.KVStore, v uint64) error {
	if err := validateTrigFeeBps(v); err != nil {
		return err
	}
	conf, err := loadConf(db)
	if err != nil {
		return err
	}
	conf.TrigFeeBps = v
	return gconf.Save(db, confPkg, conf)
}

// SetTreasury changes the treasury address. Authorization is the caller's
// responsibility.
func (c *Controller) SetTreasury(db weft.KVStore, treasury weft.Address) error {
	conf, err := loadConf(db)
	if err != nil {
		return err
	}
	conf.Treasury = treasury
	return gconf.Save(db, confPkg, conf)
}

// Update splits the whole balance of the fee account. The caller must hold
// the minimum amount of the governed token and receives the keeper reward.
func (c *Controller) Update(ctx weft.Context, db weft.KVStore, caller weft.Address) (*Split, error) {
	if err := c.CanUpdate(db, caller); err != nil {
		return nil, err
	}
	conf, err := loadConf(db)
	if err != nil {
		return nil, err
	}
	now, err := weft.BlockTime(ctx)
	if err != nil {
		return nil, err
	}

	st, err := c.State(db)
	if err != nil {
		return nil, err
	}

	amount, err := c.cash.Balance(db, conf.Settlement, Account())
	if err != nil {
		return nil, err
	}
	keeper, err := conf.KeeperReward.Reward(amount)
	if err != nil {
		return nil, err
	}
	treasuryBps := TreasuryFeeBps(st.ScheduleAnchor, weft.AsUnixTime(now))
	split, err := ComputeSplit(amount, keeper, conf.TrigFeeBps, treasuryBps)
	if err != nil {
		return nil, err
	}

	if st.Retained, err = st.Retained.Add(split.Hodler); err != nil {
		return nil, err
	}
	forwarded := amount.SubOrZero(split.Hodler).SubOrZero(split.Keeper)
	if st.Distributed, err = st.Distributed.Add(forwarded); err != nil {
		return nil, err
	}
	st.Updates++
	st.LastUpdate = weft.AsUnixTime(now)
	if err := c.states.Put(db, stateKey, st); err != nil {
		return nil, err
	}

	payouts := []struct {
		dest   weft.Address
		amount coin.Amount
	}{
		{caller, split.Keeper},
		{ReserveAccount(), split.Hodler},
		{vault.Account(conf.TrigVault), split.Trig},
		{vault.Account(conf.NftVault), split.Nft},
		{vault.Account(conf.LpVault), split.Lp},
		{conf.Treasury, split.Treasury},
	}
	for _, p := range payouts {
		if err := c.cash.Transfer(db, conf.Settlement, Account(), p.dest, p.amount); err != nil {
			return nil, errors.Wrapf(err, "pay %s", p.dest)
		}
	}
	return &split, nil
}
