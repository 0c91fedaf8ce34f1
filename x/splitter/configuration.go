package splitter

import (
	"github.com/contribute-dao/weft"
	"github.com/contribute-dao/weft/codec"
	"github.com/contribute-dao/weft/coin"
	"github.com/contribute-dao/weft/errors"
	"github.com/contribute-dao/weft/gconf"
	"github.com/contribute-dao/weft/x/vault"
)

const confPkg = "splitter"

const (
	// HodlerFeeBps is the share withheld from every update.
	HodlerFeeBps = 10
	// LpFeeBps is the part of the treasury vault share paid to the lp vault.
	LpFeeBps = 9000

	MinTrigFeeBps = 5000
	MaxTrigFeeBps = 9000

	// ScheduleInterval is the time in seconds a treasury tier stays in force.
	ScheduleInterval = 30 * 24 * 60 * 60
)

// treasurySchedule is the treasury vault share in basis points for each
// interval elapsed since the anchor.
var treasurySchedule = [...]uint64{9000, 9200, 9400, 9600, 9800}

// TreasurySchedule returns the treasury tiers in the order they apply.
func TreasurySchedule() []uint64 {
	return append([]uint64(nil), treasurySchedule[:]...)
}

// TreasuryFeeBps returns the schedule tier in force at now for a schedule
// started at anchor. Times before the anchor use the first tier, the last
// tier applies forever once reached.
func TreasuryFeeBps(anchor, now weft.UnixTime) uint64 {
	if now <= anchor {
		return treasurySchedule[0]
	}
	idx := int64(now-anchor) / ScheduleInterval
	if last := int64(len(treasurySchedule) - 1); idx > last {
		idx = last
	}
	return treasurySchedule[idx]
}

// KeeperRewardPolicy defines what the update caller is paid. The reward is
// Fixed plus Bps of the collected balance, capped at the balance.
type KeeperRewardPolicy struct {
	Fixed coin.Amount `json:"fixed"`
	Bps   uint64      `json:"bps"`
}

// Reward returns what is paid to the keeper out of the given balance.
func (p KeeperRewardPolicy) Reward(balance coin.Amount) (coin.Amount, error) {
	variable, err := balance.MulBps(p.Bps)
	if err != nil {
		return coin.Amount{}, err
	}
	total, err := variable.Add(p.Fixed)
	if err != nil {
		return coin.Amount{}, err
	}
	return coin.Min(total, balance), nil
}

// Configuration is the on-chain configuration of the fee splitter.
type Configuration struct {
	// Admin may change the fee ratios and the treasury.
	Admin weft.Address `json:"admin"`
	// Settlement is the ticker of the token being split.
	Settlement string `json:"settlement"`
	// GovernedToken and MinCallerHolding gate who may call update.
	GovernedToken    string      `json:"governed_token"`
	MinCallerHolding coin.Amount `json:"min_caller_holding"`

	// TrigFeeBps is the only fee ratio the admin may change.
	TrigFeeBps uint64 `json:"trig_fee_bps"`

	KeeperReward KeeperRewardPolicy `json:"keeper_reward"`

	Treasury  weft.Address `json:"treasury"`
	TrigVault string       `json:"trig_vault"`
	NftVault  string       `json:"nft_vault"`
	LpVault   string       `json:"lp_vault"`
}

var _ gconf.OwnedConfig = (*Configuration)(nil)

func (c *Configuration) Marshal() ([]byte, error)   { return codec.Marshal(c) }
func (c *Configuration) Unmarshal(raw []byte) error { return codec.Unmarshal(raw, c) }
func (c *Configuration) GetOwner() weft.Address     { return c.Admin }

func (c *Configuration) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Admin", c.Admin.Validate())
	errs = errors.AppendField(errs, "Treasury", c.Treasury.Validate())
	if !coin.IsCC(c.Settlement) {
		errs = errors.AppendField(errs, "Settlement", errors.ErrCurrency)
	}
	if !coin.IsCC(c.GovernedToken) {
		errs = errors.AppendField(errs, "GovernedToken", errors.ErrCurrency)
	}
	errs = errors.AppendField(errs, "TrigFeeBps", validateTrigFeeBps(c.TrigFeeBps))
	if c.KeeperReward.Bps > coin.BpsBase {
		errs = errors.AppendField(errs, "KeeperReward", ErrOutOfBounds)
	}
	if !vault.IsVaultName(c.TrigVault) {
		errs = errors.AppendField(errs, "TrigVault", errors.ErrInput)
	}
	if !vault.IsVaultName(c.NftVault) {
		errs = errors.AppendField(errs, "NftVault", errors.ErrInput)
	}
	if !vault.IsVaultName(c.LpVault) {
		errs = errors.AppendField(errs, "LpVault", errors.ErrInput)
	}
	return errs
}

func validateTrigFeeBps(v uint64) error {
	if v < MinTrigFeeBps || v > MaxTrigFeeBps {
		return errors.Wrapf(ErrOutOfBounds, "trig fee %d not in [%d, %d]", v, MinTrigFeeBps, MaxTrigFeeBps)
	}
	return nil
}

func loadConf(db gconf.ReadStore) (*Configuration, error) {
	var conf Configuration
	if err := gconf.Load(db, confPkg, &conf); err != nil {
		return nil, errors.Wrap(err, "load configuration")
	}
	return &conf, nil
}
