package cash

import (
	"github.com/contribute-dao/weft"
	"github.com/contribute-dao/weft/codec"
	"github.com/contribute-dao/weft/coin"
	"github.com/contribute-dao/weft/errors"
	"github.com/contribute-dao/weft/orm"
)

// Token declares a fungible asset.
type Token struct {
	Ticker string
	Name   string
	Supply coin.Amount
}

var _ orm.Model = (*Token)(nil)

func (t *Token) Marshal() ([]byte, error)   { return codec.Marshal(t) }
func (t *Token) Unmarshal(raw []byte) error { return codec.Unmarshal(raw, t) }

func (t *Token) Validate() error {
	var errs error
	if !coin.IsCC(t.Ticker) {
		errs = errors.AppendField(errs, "Ticker", errors.ErrCurrency)
	}
	if len(t.Name) > maxNameLength {
		errs = errors.AppendField(errs, "Name", errors.Wrap(errors.ErrInput, "too long"))
	}
	return errs
}

// Balance is the amount of a token held by an address.
type Balance struct {
	Amount coin.Amount
}

var _ orm.Model = (*Balance)(nil)

func (b *Balance) Marshal() ([]byte, error)   { return codec.Marshal(b) }
func (b *Balance) Unmarshal(raw []byte) error { return codec.Unmarshal(raw, b) }
func (b *Balance) Validate() error            { return nil }

// Allowance is the amount of a token that a spender may still transfer out
// of the owner account.
type Allowance struct {
	Amount coin.Amount
}

var _ orm.Model = (*Allowance)(nil)

func (a *Allowance) Marshal() ([]byte, error)   { return codec.Marshal(a) }
func (a *Allowance) Unmarshal(raw []byte) error { return codec.Unmarshal(raw, a) }
func (a *Allowance) Validate() error            { return nil }

const maxNameLength = 64

// NewTokenBucket returns a bucket of all declared tokens, keyed by ticker.
func NewTokenBucket() orm.ModelBucket {
	return orm.NewModelBucket("token", &Token{})
}

// NewBalanceBucket returns a bucket keyed by BalanceKey.
func NewBalanceBucket() orm.ModelBucket {
	return orm.NewModelBucket("balance", &Balance{})
}

// NewAllowanceBucket returns a bucket keyed by AllowanceKey.
func NewAllowanceBucket() orm.ModelBucket {
	return orm.NewModelBucket("allowance", &Allowance{})
}

// BalanceKey is "<ticker>/<address>". Prefix queries by "<ticker>/" list all
// holders of a token.
func BalanceKey(ticker string, owner weft.Address) []byte {
	key := make([]byte, 0, len(ticker)+1+len(owner))
	key = append(key, ticker...)
	key = append(key, '/')
	return append(key, owner...)
}

// AllowanceKey is "<ticker>/<owner><spender>".
func AllowanceKey(ticker string, owner, spender weft.Address) []byte {
	return append(BalanceKey(ticker, owner), spender...)
}
