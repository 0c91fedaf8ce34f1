/*
Package coin defines the token quantities handled by the ledgers and vaults.

An Amount is an unsigned 256 bit count of base units. Every token has 18
decimals, so Whole(1) is 10^18 base units. A Coin binds an Amount to the
ticker of the token it denominates.
*/
package coin

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/contribute-dao/weft/errors"
)

var (
	// IsCC is the RegExp to ensure valid currency codes
	IsCC = regexp.MustCompile(`^[A-Z][A-Z0-9]{1,11}$`).MatchString

	humanCoinFormatRx = regexp.MustCompile(`^\s*(\d+(?:\.\d+)?)\s*([A-Z][A-Z0-9]{1,11})\s*$`)
)

// Coin is an amount of a single token.
type Coin struct {
	Ticker string `json:"ticker"`
	Amount Amount `json:"amount"`
}

// NewCoin returns a coin of given ticker.
func NewCoin(amount Amount, ticker string) Coin {
	return Coin{Ticker: ticker, Amount: amount}
}

// WholeCoin returns a coin holding n whole tokens.
func WholeCoin(n uint64, ticker string) Coin {
	return NewCoin(Whole(n), ticker)
}

// Validate ensures the ticker is a valid currency code.
func (c Coin) Validate() error {
	if !IsCC(c.Ticker) {
		return errors.Wrapf(errors.ErrCurrency, "invalid ticker %q", c.Ticker)
	}
	return nil
}

// IsZero returns true if no tokens are held.
func (c Coin) IsZero() bool {
	return c.Amount.IsZero()
}

// SameType returns true if both coins are of the same token.
func (c Coin) SameType(o Coin) bool {
	return c.Ticker == o.Ticker
}

// Equals returns true if both coins hold the same amount of the same token.
func (c Coin) Equals(o Coin) bool {
	return c.SameType(o) && c.Amount.Equals(o.Amount)
}

// Add sums two coins of the same ticker.
func (c Coin) Add(o Coin) (Coin, error) {
	if !c.SameType(o) {
		return Coin{}, errors.Wrapf(errors.ErrCurrency, "adding %s to %s", o.Ticker, c.Ticker)
	}
	sum, err := c.Amount.Add(o.Amount)
	if err != nil {
		return Coin{}, err
	}
	return NewCoin(sum, c.Ticker), nil
}

// String provides a human readable representation of the coin, that can be
// parsed back with ParseHumanFormat.
func (c Coin) String() string {
	if c.Ticker == "" {
		return c.Amount.Human()
	}
	return c.Amount.Human() + " " + c.Ticker
}

// ParseHumanFormat parse a human readable coin representation. Accepted
// format is a string:
//
//	"<whole>[.<fractional>] <ticker>"
func ParseHumanFormat(h string) (Coin, error) {
	m := humanCoinFormatRx.FindStringSubmatch(h)
	if m == nil {
		return Coin{}, errors.Wrapf(errors.ErrInput, "invalid coin format %q", h)
	}
	amount, err := ParseHuman(m[1])
	if err != nil {
		return Coin{}, err
	}
	return NewCoin(amount, m[2]), nil
}

func (c *Coin) UnmarshalJSON(raw []byte) error {
	// Prioritize human readable format that is a string in format
	// "<whole>[.<fractional>] <ticker>"
	var human string
	if err := json.Unmarshal(raw, &human); err == nil {
		parsed, err := ParseHumanFormat(human)
		if err != nil {
			return err
		}
		*c = parsed
		return nil
	}

	var coin struct {
		Ticker string `json:"ticker"`
		Amount Amount `json:"amount"`
	}
	if err := json.Unmarshal(raw, &coin); err != nil {
		return errors.Wrap(errors.ErrInput, err.Error())
	}
	c.Ticker = coin.Ticker
	c.Amount = coin.Amount
	return nil
}

// Set updates this coin value to what is provided. This method implements
// flag.Value interface.
func (c *Coin) Set(raw string) error {
	val, err := ParseHumanFormat(raw)
	if err != nil {
		return err
	}
	*c = val
	return nil
}

// Coins is a list of coins of distinct tickers.
type Coins []Coin

// Validate requires every coin to be valid and tickers to be unique.
func (cs Coins) Validate() error {
	seen := make(map[string]struct{}, len(cs))
	for i, c := range cs {
		if err := c.Validate(); err != nil {
			return errors.Wrapf(err, "coin %d", i)
		}
		if _, ok := seen[c.Ticker]; ok {
			return errors.Wrapf(errors.ErrDuplicate, "ticker %s", c.Ticker)
		}
		seen[c.Ticker] = struct{}{}
	}
	return nil
}

func (cs Coins) String() string {
	parts := make([]string, len(cs))
	for i, c := range cs {
		parts[i] = c.String()
	}
	return fmt.Sprintf("[%s]", strings.Join(parts, ", "))
}
