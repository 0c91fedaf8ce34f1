package vault

import (
	"encoding/binary"
	"regexp"

	"github.com/contribute-dao/weft"
	"github.com/contribute-dao/weft/codec"
	"github.com/contribute-dao/weft/coin"
	"github.com/contribute-dao/weft/errors"
	"github.com/contribute-dao/weft/orm"
)

// Precision scales the reward per staked unit accumulator.
var Precision = coin.NewAmount(1000000000000)

// IsVaultName is the RegExp to ensure valid vault names
var IsVaultName = regexp.MustCompile(`^[a-z][a-z0-9_]{1,15}$`).MatchString

// Account returns the address holding the settlement token and the staked
// principal of a vault.
func Account(vault string) weft.Address {
	return weft.NewCondition("vault", "account", []byte(vault)).Address()
}

// State is the income tracker and pool registry summary of a vault.
type State struct {
	Name string
	// Settlement is the ticker of the token distributed as rewards.
	Settlement            string
	LastObservedBalance   coin.Amount
	TotalCumulativeIncome coin.Amount
	// Forfeited is the income attributed to pools with nothing staked.
	Forfeited     coin.Amount
	InitialHeight int64
	TotalPoints   uint64
	PoolCount     uint64
	// Locked is set while a call that moves assets is in flight.
	Locked bool

	// EpochLength is zero when the vault keeps no epoch analytics.
	EpochLength      int64
	EpochIndex       uint64
	EpochStartHeight int64
	EpochStartIncome coin.Amount
}

var _ orm.Model = (*State)(nil)

func (s *State) Marshal() ([]byte, error)   { return codec.Marshal(s) }
func (s *State) Unmarshal(raw []byte) error { return codec.Unmarshal(raw, s) }

func (s *State) Validate() error {
	var errs error
	if !IsVaultName(s.Name) {
		errs = errors.AppendField(errs, "Name", errors.ErrInput)
	}
	if !coin.IsCC(s.Settlement) {
		errs = errors.AppendField(errs, "Settlement", errors.ErrCurrency)
	}
	if s.InitialHeight < 0 {
		errs = errors.AppendField(errs, "InitialHeight", errors.ErrInput)
	}
	if s.EpochLength < 0 {
		errs = errors.AppendField(errs, "EpochLength", errors.ErrInput)
	}
	if s.TotalCumulativeIncome.LT(s.EpochStartIncome) {
		errs = errors.AppendField(errs, "EpochStartIncome", errors.ErrState)
	}
	return errs
}

// Pool is a weighted claim on the vault income.
type Pool struct {
	Vault       string
	ID          uint64
	Asset       Asset
	Points      uint64
	TotalStaked coin.Amount
	// AccRewardPerShare is the income per staked unit, scaled by Precision.
	AccRewardPerShare coin.Amount
	// IncomeMarker is the cumulative income of the vault at the last
	// settlement of this pool.
	IncomeMarker coin.Amount
}

var _ orm.Model = (*Pool)(nil)

func (p *Pool) Marshal() ([]byte, error)   { return codec.Marshal(p) }
func (p *Pool) Unmarshal(raw []byte) error { return codec.Unmarshal(raw, p) }

func (p *Pool) Validate() error {
	var errs error
	if !IsVaultName(p.Vault) {
		errs = errors.AppendField(errs, "Vault", errors.ErrInput)
	}
	errs = errors.AppendField(errs, "Asset", p.Asset.Validate())
	return errs
}

// Stake is the principal of a single account in a pool.
type Stake struct {
	Amount     coin.Amount
	RewardDebt coin.Amount
}

var _ orm.Model = (*Stake)(nil)

func (s *Stake) Marshal() ([]byte, error)   { return codec.Marshal(s) }
func (s *Stake) Unmarshal(raw []byte) error { return codec.Unmarshal(raw, s) }
func (s *Stake) Validate() error            { return nil }

// Epoch is the income record of a closed analytics window.
type Epoch struct {
	Vault       string
	Index       uint64
	StartHeight int64
	EndHeight   int64
	Income      coin.Amount
}

var _ orm.Model = (*Epoch)(nil)

func (e *Epoch) Marshal() ([]byte, error)   { return codec.Marshal(e) }
func (e *Epoch) Unmarshal(raw []byte) error { return codec.Unmarshal(raw, e) }

func (e *Epoch) Validate() error {
	if e.EndHeight <= e.StartHeight {
		return errors.Wrap(errors.ErrState, "empty epoch")
	}
	return nil
}

// NewStateBucket returns the bucket of vault states, keyed by vault name.
func NewStateBucket() orm.ModelBucket {
	return orm.NewModelBucket("vaultst", &State{})
}

// NewPoolBucket returns the bucket of pools, keyed by PoolKey.
func NewPoolBucket() orm.ModelBucket {
	return orm.NewModelBucket("pool", &Pool{})
}

// NewStakeBucket returns the bucket of stakes, keyed by StakeKey.
func NewStakeBucket() orm.ModelBucket {
	return orm.NewModelBucket("stake", &Stake{})
}

// NewEpochBucket returns the bucket of closed epochs, keyed by EpochKey.
func NewEpochBucket() orm.ModelBucket {
	return orm.NewModelBucket("epoch", &Epoch{})
}

// PoolKey is the vault name and the big endian pool id. Pools of a vault
// iterate in ascending id order.
func PoolKey(vault string, id uint64) []byte {
	key := make([]byte, 0, len(vault)+9)
	key = append(key, vault...)
	key = append(key, '/')
	return appendUint64(key, id)
}

// StakeKey is the pool key followed by the staker address.
func StakeKey(vault string, id uint64, staker weft.Address) []byte {
	key := PoolKey(vault, id)
	key = append(key, '/')
	return append(key, staker...)
}

// EpochKey is the vault name and the big endian epoch index.
func EpochKey(vault string, index uint64) []byte {
	key := make([]byte, 0, len(vault)+9)
	key = append(key, vault...)
	key = append(key, '/')
	return appendUint64(key, index)
}

func appendUint64(b []byte, n uint64) []byte {
	var raw [8]byte
	binary.BigEndian.PutUint64(raw[:], n)
	return append(b, raw[:]...)
}

// assetIndexKey binds an asset to the vault that stakes it.
func assetIndexKey(vault string, a Asset) []byte {
	return []byte(vault + "/" + a.Key())
}
