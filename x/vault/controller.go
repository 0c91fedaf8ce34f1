package vault

import (
	"github.com/contribute-dao/weft"
	"github.com/contribute-dao/weft/coin"
	"github.com/contribute-dao/weft/errors"
	"github.com/contribute-dao/weft/orm"
	"github.com/contribute-dao/weft/x/cash"
	"github.com/contribute-dao/weft/x/items"
)

// Controller runs the pool accumulator of every vault. A vault is addressed
// by its name, each one owns its registry and income tracker.
type Controller struct {
	cash   cash.Controller
	items  items.Controller
	states orm.ModelBucket
	pools  orm.ModelBucket
	stakes orm.ModelBucket
	epochs orm.ModelBucket
	assets orm.UniqueIndex
}

// NewController returns a controller that keeps the settlement token and
// fungible principal in the cash ledger and counted principal in the items
// ledger.
func NewController(c cash.Controller, i items.Controller) *Controller {
	return &Controller{
		cash:   c,
		items:  i,
		states: NewStateBucket(),
		pools:  NewPoolBucket(),
		stakes: NewStakeBucket(),
		epochs: NewEpochBucket(),
		assets: orm.NewUniqueIndex("vaultasset"),
	}
}

// CreateVault declares a new vault. Income is counted from the given height.
// A positive epochLength enables epoch analytics with windows of that many
// blocks.
func (c *Controller) CreateVault(db weft.KVStore, name, settlement string, height, epochLength int64) error {
	switch err := c.states.Has(db, []byte(name)); {
	case err == nil:
		return errors.Wrapf(errors.ErrDuplicate, "vault %s", name)
	case !errors.ErrNotFound.Is(err):
		return err
	}
	st := State{
		Name:             name,
		Settlement:       settlement,
		InitialHeight:    height,
		EpochLength:      epochLength,
		EpochStartHeight: height,
	}
	return c.states.Put(db, []byte(name), &st)
}

// Vault returns the state of the named vault.
func (c *Controller) Vault(db weft.ReadOnlyKVStore, name string) (*State, error) {
	var st State
	if err := c.states.One(db, []byte(name), &st); err != nil {
		return nil, errors.Wrapf(err, "vault %s", name)
	}
	return &st, nil
}

// Pool returns a pool of the named vault.
func (c *Controller) Pool(db weft.ReadOnlyKVStore, vault string, id uint64) (*Pool, error) {
	var p Pool
	if err := c.pools.One(db, PoolKey(vault, id), &p); err != nil {
		return nil, errors.Wrapf(err, "pool %s/%d", vault, id)
	}
	return &p, nil
}

// Stake returns the stake of an account. An account that never deposited
// has a zero stake.
func (c *Controller) Stake(db weft.ReadOnlyKVStore, vault string, id uint64, staker weft.Address) (*Stake, error) {
	var s Stake
	switch err := c.stakes.One(db, StakeKey(vault, id, staker), &s); {
	case err == nil:
		return &s, nil
	case errors.ErrNotFound.Is(err):
		return &Stake{}, nil
	default:
		return nil, err
	}
}

// AddPool appends a pool to the vault registry and returns its id. The new
// pool only claims income that arrives after its creation.
func (c *Controller) AddPool(ctx weft.Context, db weft.KVStore, vault string, points uint64, asset Asset, withSettle bool) (uint64, error) {
	if err := asset.Validate(); err != nil {
		return 0, err
	}
	if withSettle {
		if err := c.MassSettle(ctx, db, vault); err != nil {
			return 0, err
		}
	}
	st, err := c.Vault(db, vault)
	if err != nil {
		return 0, err
	}
	if asset.Kind == Fungible && asset.Ticker == st.Settlement {
		return 0, errors.Wrap(errors.ErrInput, "settlement token cannot be staked")
	}
	id := st.PoolCount
	if err := c.assets.Insert(db, assetIndexKey(vault, asset), PoolKey(vault, id)); err != nil {
		if errors.ErrDuplicate.Is(err) {
			return 0, errors.Wrapf(ErrDuplicateAsset, "%s in vault %s", asset, vault)
		}
		return 0, err
	}
	if st.TotalPoints+points < st.TotalPoints {
		return 0, errors.Wrap(errors.ErrOverflow, "total points")
	}
	pool := Pool{
		Vault:        vault,
		ID:           id,
		Asset:        asset,
		Points:       points,
		IncomeMarker: st.TotalCumulativeIncome,
	}
	if err := c.pools.Put(db, PoolKey(vault, id), &pool); err != nil {
		return 0, err
	}
	st.PoolCount++
	st.TotalPoints += points
	if err := c.states.Put(db, []byte(vault), st); err != nil {
		return 0, err
	}
	return id, nil
}

// SetPoolPoints changes the weight of a pool. Income accrued before the
// change is not rebalanced.
func (c *Controller) SetPoolPoints(ctx weft.Context, db weft.KVStore, vault string, id uint64, points uint64, withSettle bool) error {
	if withSettle {
		if err := c.Settle(ctx, db, vault, id); err != nil {
			return err
		}
	}
	st, err := c.Vault(db, vault)
	if err != nil {
		return err
	}
	pool, err := c.Pool(db, vault, id)
	if err != nil {
		return err
	}
	total := st.TotalPoints - pool.Points
	if total+points < total {
		return errors.Wrap(errors.ErrOverflow, "total points")
	}
	st.TotalPoints = total + points
	pool.Points = points
	if err := c.pools.Put(db, PoolKey(vault, id), pool); err != nil {
		return err
	}
	return c.states.Put(db, []byte(vault), st)
}

// Settle folds new income into the vault and updates the accumulator of a
// single pool.
func (c *Controller) Settle(ctx weft.Context, db weft.KVStore, vault string, id uint64) error {
	st, err := c.Vault(db, vault)
	if err != nil {
		return err
	}
	pool, err := c.Pool(db, vault, id)
	if err != nil {
		return err
	}
	if err := c.fold(ctx, db, st); err != nil {
		return err
	}
	if err := settlePool(st, pool); err != nil {
		return err
	}
	if err := c.pools.Put(db, PoolKey(vault, id), pool); err != nil {
		return err
	}
	return c.states.Put(db, []byte(vault), st)
}

// MassSettle folds new income once and settles every pool of the vault in
// ascending id order.
func (c *Controller) MassSettle(ctx weft.Context, db weft.KVStore, vault string) error {
	st, err := c.Vault(db, vault)
	if err != nil {
		return err
	}
	if err := c.fold(ctx, db, st); err != nil {
		return err
	}
	for id := uint64(0); id < st.PoolCount; id++ {
		pool, err := c.Pool(db, vault, id)
		if err != nil {
			return err
		}
		if err := settlePool(st, pool); err != nil {
			return errors.Wrapf(err, "pool %d", id)
		}
		if err := c.pools.Put(db, PoolKey(vault, id), pool); err != nil {
			return err
		}
	}
	return c.states.Put(db, []byte(vault), st)
}

// fold observes the settlement balance of the vault account. Only an
// increase since the last observation counts as income.
func (c *Controller) fold(ctx weft.Context, db weft.KVStore, st *State) error {
	current, err := c.cash.Balance(db, st.Settlement, Account(st.Name))
	if err != nil {
		return errors.Wrap(err, "settlement balance")
	}
	if height, ok := weft.GetHeight(ctx); ok {
		if err := c.rollEpoch(db, st, height); err != nil {
			return err
		}
	}
	if st.LastObservedBalance.LT(current) {
		delta, err := current.Sub(st.LastObservedBalance)
		if err != nil {
			return err
		}
		total, err := st.TotalCumulativeIncome.Add(delta)
		if err != nil {
			return err
		}
		st.TotalCumulativeIncome = total
	}
	st.LastObservedBalance = current
	return nil
}

// settlePool moves the pool marker to the vault cumulative income and
// credits the pool share to its accumulator.
func settlePool(st *State, p *Pool) error {
	if p.IncomeMarker.Equals(st.TotalCumulativeIncome) {
		return nil
	}
	delta, err := st.TotalCumulativeIncome.Sub(p.IncomeMarker)
	if err != nil {
		return errors.Wrap(errors.ErrState, "pool marker ahead of vault income")
	}
	p.IncomeMarker = st.TotalCumulativeIncome
	if st.TotalPoints == 0 || p.Points == 0 {
		return nil
	}
	share, err := delta.MulDiv(coin.NewAmount(p.Points), coin.NewAmount(st.TotalPoints))
	if err != nil {
		return err
	}
	if p.TotalStaked.IsZero() {
		forfeited, err := st.Forfeited.Add(share)
		if err != nil {
			return err
		}
		st.Forfeited = forfeited
		return nil
	}
	inc, err := share.MulDiv(Precision, p.TotalStaked)
	if err != nil {
		return err
	}
	acc, err := p.AccRewardPerShare.Add(inc)
	if err != nil {
		return err
	}
	p.AccRewardPerShare = acc
	return nil
}

// accrued returns amount * acc / Precision.
func accrued(amount, acc coin.Amount) (coin.Amount, error) {
	return amount.MulDiv(acc, Precision)
}

// pendingOf returns what the stake may harvest at the given accumulator.
func pendingOf(s *Stake, acc coin.Amount) (coin.Amount, error) {
	total, err := accrued(s.Amount, acc)
	if err != nil {
		return coin.Amount{}, err
	}
	return total.SubOrZero(s.RewardDebt), nil
}

// PendingReward returns the reward an account may harvest, computed from
// the last settled accumulator of the pool. It does not settle.
func (c *Controller) PendingReward(db weft.ReadOnlyKVStore, vault string, id uint64, staker weft.Address) (coin.Amount, error) {
	pool, err := c.Pool(db, vault, id)
	if err != nil {
		return coin.Amount{}, err
	}
	stake, err := c.Stake(db, vault, id, staker)
	if err != nil {
		return coin.Amount{}, err
	}
	return pendingOf(stake, pool.AccRewardPerShare)
}

// Deposit settles the pool, pays the pending reward and stakes amount. A
// zero amount only harvests. It returns the harvested reward.
func (c *Controller) Deposit(ctx weft.Context, db weft.KVStore, vault string, id uint64, staker weft.Address, amount coin.Amount) (coin.Amount, error) {
	return c.move(ctx, db, vault, id, staker, amount, true)
}

// Withdraw settles the pool, pays the pending reward and returns amount of
// the principal. It returns the harvested reward.
func (c *Controller) Withdraw(ctx weft.Context, db weft.KVStore, vault string, id uint64, staker weft.Address, amount coin.Amount) (coin.Amount, error) {
	return c.move(ctx, db, vault, id, staker, amount, false)
}

// Harvest pays the pending reward without moving principal.
func (c *Controller) Harvest(ctx weft.Context, db weft.KVStore, vault string, id uint64, staker weft.Address) (coin.Amount, error) {
	return c.move(ctx, db, vault, id, staker, coin.Zero(), false)
}

func (c *Controller) move(ctx weft.Context, db weft.KVStore, vault string, id uint64, staker weft.Address, amount coin.Amount, deposit bool) (coin.Amount, error) {
	var harvested coin.Amount
	err := c.latched(db, vault, func() error {
		var err error
		harvested, err = c.transact(ctx, db, vault, id, staker, amount, deposit)
		return err
	})
	return harvested, err
}

func (c *Controller) transact(ctx weft.Context, db weft.KVStore, vault string, id uint64, staker weft.Address, amount coin.Amount, deposit bool) (coin.Amount, error) {
	if err := c.Settle(ctx, db, vault, id); err != nil {
		return coin.Amount{}, err
	}
	st, err := c.Vault(db, vault)
	if err != nil {
		return coin.Amount{}, err
	}
	pool, err := c.Pool(db, vault, id)
	if err != nil {
		return coin.Amount{}, err
	}
	stake, err := c.Stake(db, vault, id, staker)
	if err != nil {
		return coin.Amount{}, err
	}
	if !deposit && stake.Amount.LT(amount) {
		return coin.Amount{}, errors.Wrapf(ErrInsufficientStake, "staked %s, withdrawing %s", stake.Amount, amount)
	}

	pending, err := pendingOf(stake, pool.AccRewardPerShare)
	if err != nil {
		return coin.Amount{}, err
	}
	if pending.IsPositive() {
		if st.LastObservedBalance.LT(pending) {
			return coin.Amount{}, errors.Wrapf(ErrInsufficientVaultFunds, "holding %s, paying %s", st.LastObservedBalance, pending)
		}
		st.LastObservedBalance = st.LastObservedBalance.SubOrZero(pending)
	}

	if deposit {
		if stake.Amount, err = stake.Amount.Add(amount); err != nil {
			return coin.Amount{}, err
		}
		if pool.TotalStaked, err = pool.TotalStaked.Add(amount); err != nil {
			return coin.Amount{}, err
		}
	} else {
		if stake.Amount, err = stake.Amount.Sub(amount); err != nil {
			return coin.Amount{}, err
		}
		if pool.TotalStaked, err = pool.TotalStaked.Sub(amount); err != nil {
			return coin.Amount{}, errors.Wrap(errors.ErrState, "pool stake below account stake")
		}
	}
	if stake.RewardDebt, err = accrued(stake.Amount, pool.AccRewardPerShare); err != nil {
		return coin.Amount{}, err
	}

	// Every state change is stored before any asset moves.
	if err := c.stakes.Put(db, StakeKey(vault, id, staker), stake); err != nil {
		return coin.Amount{}, err
	}
	if err := c.pools.Put(db, PoolKey(vault, id), pool); err != nil {
		return coin.Amount{}, err
	}
	if err := c.states.Put(db, []byte(vault), st); err != nil {
		return coin.Amount{}, err
	}

	if pending.IsPositive() {
		if err := c.cash.Transfer(db, st.Settlement, Account(vault), staker, pending); err != nil {
			return coin.Amount{}, errors.Wrap(ErrInsufficientVaultFunds, err.Error())
		}
	}
	if amount.IsPositive() {
		cust, err := c.custodyOf(vault, pool.Asset)
		if err != nil {
			return coin.Amount{}, err
		}
		if deposit {
			err = cust.pull(db, staker, amount)
		} else {
			err = cust.push(db, staker, amount)
		}
		if err != nil {
			return coin.Amount{}, err
		}
	}
	return pending, nil
}

// EmergencyWithdraw returns the whole principal of the staker and forfeits
// the pending reward. The accumulator and the settlement balances are not
// touched. It returns the amount of principal returned.
func (c *Controller) EmergencyWithdraw(ctx weft.Context, db weft.KVStore, vault string, id uint64, staker weft.Address) (coin.Amount, error) {
	var returned coin.Amount
	err := c.latched(db, vault, func() error {
		var err error
		returned, err = c.emergencyWithdraw(db, vault, id, staker)
		return err
	})
	if err == nil {
		weft.GetLogger(ctx).Info("emergency withdraw", "vault", vault, "pool", id, "staker", staker, "amount", returned)
	}
	return returned, err
}

func (c *Controller) emergencyWithdraw(db weft.KVStore, vault string, id uint64, staker weft.Address) (coin.Amount, error) {
	pool, err := c.Pool(db, vault, id)
	if err != nil {
		return coin.Amount{}, err
	}
	stake, err := c.Stake(db, vault, id, staker)
	if err != nil {
		return coin.Amount{}, err
	}
	amount := stake.Amount
	if pool.TotalStaked, err = pool.TotalStaked.Sub(amount); err != nil {
		return coin.Amount{}, errors.Wrap(errors.ErrState, "pool stake below account stake")
	}
	stake.Amount = coin.Zero()
	stake.RewardDebt = coin.Zero()

	if err := c.stakes.Put(db, StakeKey(vault, id, staker), stake); err != nil {
		return coin.Amount{}, err
	}
	if err := c.pools.Put(db, PoolKey(vault, id), pool); err != nil {
		return coin.Amount{}, err
	}
	if amount.IsPositive() {
		cust, err := c.custodyOf(vault, pool.Asset)
		if err != nil {
			return coin.Amount{}, err
		}
		if err := cust.push(db, staker, amount); err != nil {
			return coin.Amount{}, err
		}
	}
	return amount, nil
}

// latched runs fn while the vault latch is set. The latch is released
// whatever fn returns.
func (c *Controller) latched(db weft.KVStore, vault string, fn func() error) (err error) {
	if err := c.enter(db, vault); err != nil {
		return err
	}
	defer func() {
		if exitErr := c.exit(db, vault); err == nil {
			err = exitErr
		}
	}()
	return fn()
}

// enter sets the latch of a vault. A vault that is already latched rejects
// the call.
func (c *Controller) enter(db weft.KVStore, vault string) error {
	st, err := c.Vault(db, vault)
	if err != nil {
		return err
	}
	if st.Locked {
		return errors.Wrapf(ErrReentrant, "vault %s", vault)
	}
	st.Locked = true
	return c.states.Put(db, []byte(vault), st)
}

func (c *Controller) exit(db weft.KVStore, vault string) error {
	st, err := c.Vault(db, vault)
	if err != nil {
		return err
	}
	st.Locked = false
	return c.states.Put(db, []byte(vault), st)
}

// PoolCount returns the number of pools ever added to the vault.
func (c *Controller) PoolCount(db weft.ReadOnlyKVStore, vault string) (uint64, error) {
	st, err := c.Vault(db, vault)
	if err != nil {
		return 0, err
	}
	return st.PoolCount, nil
}

// TotalCumulativeIncome returns the income folded into the vault so far.
func (c *Controller) TotalCumulativeIncome(db weft.ReadOnlyKVStore, vault string) (coin.Amount, error) {
	st, err := c.Vault(db, vault)
	if err != nil {
		return coin.Amount{}, err
	}
	return st.TotalCumulativeIncome, nil
}

// AverageIncomePerBlock returns the cumulative income divided by the number
// of blocks since the vault was created, or zero at the creation height.
func (c *Controller) AverageIncomePerBlock(db weft.ReadOnlyKVStore, vault string, height int64) (coin.Amount, error) {
	st, err := c.Vault(db, vault)
	if err != nil {
		return coin.Amount{}, err
	}
	if height <= st.InitialHeight {
		return coin.Zero(), nil
	}
	return st.TotalCumulativeIncome.QuoUint64(uint64(height - st.InitialHeight))
}
