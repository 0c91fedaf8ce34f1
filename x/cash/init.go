package cash

import (
	"github.com/contribute-dao/weft"
	"github.com/contribute-dao/weft/coin"
	"github.com/contribute-dao/weft/errors"
)

const optKey = "cash"

// GenesisToken declares a token in the genesis file.
type GenesisToken struct {
	Ticker string `json:"ticker"`
	Name   string `json:"name"`
}

// GenesisAccount is used to parse the json from genesis file.
// Coins are issued to the address, increasing the token supply.
type GenesisAccount struct {
	Address weft.Address `json:"address"`
	Coins   coin.Coins   `json:"coins"`
}

// Genesis is the "cash" section of the genesis file.
type Genesis struct {
	Tokens   []GenesisToken   `json:"tokens"`
	Accounts []GenesisAccount `json:"accounts"`
}

// Initializer fulfils the Initializer interface to load data from
// the genesis file
type Initializer struct{}

var _ weft.Initializer = Initializer{}

// FromGenesis will parse initial account info from genesis
// and save it to the database
func (Initializer) FromGenesis(opts weft.Options, params weft.GenesisParams, kv weft.KVStore) error {
	var gen Genesis
	if err := opts.ReadOptions(optKey, &gen); err != nil {
		return err
	}
	ctrl := NewController()
	for _, t := range gen.Tokens {
		if err := ctrl.DeclareToken(kv, t.Ticker, t.Name); err != nil {
			return errors.Wrapf(err, "token %s", t.Ticker)
		}
	}
	for _, acct := range gen.Accounts {
		if err := acct.Address.Validate(); err != nil {
			return errors.Wrap(err, "account address")
		}
		if err := acct.Coins.Validate(); err != nil {
			return errors.Wrapf(err, "account %s", acct.Address)
		}
		for _, c := range acct.Coins {
			if err := ctrl.Issue(kv, c.Ticker, acct.Address, c.Amount); err != nil {
				return errors.Wrapf(err, "issue %s to %s", c, acct.Address)
			}
		}
	}
	return nil
}
