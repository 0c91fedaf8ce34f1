package coin

import (
	"encoding/json"
	"math/big"
	"strings"

	"cosmossdk.io/math"
	"github.com/contribute-dao/weft/errors"
	"github.com/shopspring/decimal"
)

const (
	// Decimals is the number of fractional digits of every token. One whole
	// token is 10^Decimals base units.
	Decimals = 18

	// MaxBits is the widest value an Amount can hold.
	MaxBits = 256

	// BpsBase is the denominator of all basis point values.
	BpsBase = 10000
)

var unit = new(big.Int).Exp(big.NewInt(10), big.NewInt(Decimals), nil)

// Amount is a non negative quantity of token base units. The zero value is a
// valid zero amount.
//
// Amount is immutable. All arithmetic returns a new value and never panics:
// operations that would leave the 256 bit range return ErrOverflow and
// subtractions below zero return ErrInsufficientAmount.
type Amount struct {
	v math.Uint
}

// NewAmount returns an amount of n base units.
func NewAmount(n uint64) Amount {
	return Amount{v: math.NewUint(n)}
}

// Zero returns a zero amount.
func Zero() Amount {
	return Amount{v: math.ZeroUint()}
}

// Whole returns an amount of n whole tokens.
func Whole(n uint64) Amount {
	i := new(big.Int).SetUint64(n)
	return Amount{v: math.NewUintFromBigInt(i.Mul(i, unit))}
}

// ParseAmount parses a decimal string of base units.
func ParseAmount(s string) (Amount, error) {
	i, ok := new(big.Int).SetString(strings.TrimSpace(s), 10)
	if !ok {
		return Amount{}, errors.Wrapf(errors.ErrAmount, "cannot parse %q", s)
	}
	return fromBig(i)
}

// ParseHuman parses a decimal number of whole tokens, for example "12.5",
// into an amount of base units. At most Decimals fractional digits are
// accepted.
func ParseHuman(s string) (Amount, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return Amount{}, errors.Wrapf(errors.ErrAmount, "cannot parse %q", s)
	}
	d = d.Shift(Decimals)
	if !d.IsInteger() {
		return Amount{}, errors.Wrapf(errors.ErrAmount, "more than %d decimals in %q", Decimals, s)
	}
	return fromBig(d.BigInt())
}

func fromBig(i *big.Int) (Amount, error) {
	if i.Sign() < 0 {
		return Amount{}, errors.Wrap(errors.ErrAmount, "negative amount")
	}
	if i.BitLen() > MaxBits {
		return Amount{}, errors.Wrap(errors.ErrOverflow, "amount out of range")
	}
	return Amount{v: math.NewUintFromBigInt(i)}, nil
}

func (a Amount) uint() math.Uint {
	if a.v == (math.Uint{}) {
		return math.ZeroUint()
	}
	return a.v
}

// BigInt returns a copy of the value as a big integer.
func (a Amount) BigInt() *big.Int {
	return a.uint().BigInt()
}

// IsZero returns true if the amount is zero.
func (a Amount) IsZero() bool {
	return a.uint().IsZero()
}

// IsPositive returns true if the amount is greater than zero.
func (a Amount) IsPositive() bool {
	return !a.IsZero()
}

// Equals returns true if both amounts hold the same value.
func (a Amount) Equals(b Amount) bool {
	return a.uint().Equal(b.uint())
}

// Compare returns -1, 0 or 1 when a is respectively less than, equal to or
// greater than b.
func (a Amount) Compare(b Amount) int {
	return a.BigInt().Cmp(b.BigInt())
}

// LT returns true if a < b.
func (a Amount) LT(b Amount) bool {
	return a.uint().LT(b.uint())
}

// GTE returns true if a >= b.
func (a Amount) GTE(b Amount) bool {
	return a.uint().GTE(b.uint())
}

// Add returns a + b.
func (a Amount) Add(b Amount) (Amount, error) {
	sum := a.BigInt()
	return fromBig(sum.Add(sum, b.BigInt()))
}

// Sub returns a - b. It fails with ErrInsufficientAmount when b is greater
// than a.
func (a Amount) Sub(b Amount) (Amount, error) {
	if a.LT(b) {
		return Amount{}, errors.Wrapf(errors.ErrInsufficientAmount, "%s is less than %s", a, b)
	}
	return Amount{v: a.uint().Sub(b.uint())}, nil
}

// SubOrZero returns a - b, or zero when b is greater than a.
func (a Amount) SubOrZero(b Amount) Amount {
	if a.LT(b) {
		return Zero()
	}
	return Amount{v: a.uint().Sub(b.uint())}
}

// MulDiv returns floor(a * num / den). The intermediate product is not
// limited in size, only the result must fit in the Amount range.
func (a Amount) MulDiv(num, den Amount) (Amount, error) {
	if den.IsZero() {
		return Amount{}, errors.Wrap(errors.ErrInput, "division by zero")
	}
	p := a.BigInt()
	p.Mul(p, num.BigInt())
	return fromBig(p.Quo(p, den.BigInt()))
}

// MulBps returns floor(a * bps / 10000).
func (a Amount) MulBps(bps uint64) (Amount, error) {
	return a.MulDiv(NewAmount(bps), NewAmount(BpsBase))
}

// QuoUint64 returns floor(a / n).
func (a Amount) QuoUint64(n uint64) (Amount, error) {
	if n == 0 {
		return Amount{}, errors.Wrap(errors.ErrInput, "division by zero")
	}
	return Amount{v: a.uint().QuoUint64(n)}, nil
}

// Min returns the smaller of the two amounts.
func Min(a, b Amount) Amount {
	if a.LT(b) {
		return a
	}
	return b
}

// String returns the number of base units.
func (a Amount) String() string {
	return a.uint().String()
}

// Human returns the amount expressed in whole tokens, for example "12.5".
func (a Amount) Human() string {
	return decimal.NewFromBigInt(a.BigInt(), -Decimals).String()
}

// MarshalAmino encodes the amount as a decimal string of base units.
func (a Amount) MarshalAmino() (string, error) {
	return a.String(), nil
}

// UnmarshalAmino is the inverse of MarshalAmino.
func (a *Amount) UnmarshalAmino(s string) error {
	if s == "" {
		*a = Zero()
		return nil
	}
	v, err := ParseAmount(s)
	if err != nil {
		return err
	}
	*a = v
	return nil
}

// MarshalJSON encodes the amount as a JSON string of base units, so that
// values beyond 2^53 survive JSON clients.
func (a Amount) MarshalJSON() ([]byte, error) {
	return json.Marshal(a.String())
}

// UnmarshalJSON accepts a string of base units, or a JSON number.
func (a *Amount) UnmarshalJSON(raw []byte) error {
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		var n json.Number
		if err := json.Unmarshal(raw, &n); err != nil {
			return errors.Wrap(errors.ErrAmount, "amount must be a string or a number")
		}
		s = n.String()
	}
	return a.UnmarshalAmino(s)
}
