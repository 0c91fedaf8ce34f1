package cash

import (
	"github.com/contribute-dao/weft"
	"github.com/contribute-dao/weft/coin"
	"github.com/contribute-dao/weft/errors"
	"github.com/contribute-dao/weft/orm"
)

// Controller is the fungible ledger used by other extensions. Anything that
// moves tokens out of an account must be authorized by the caller before
// reaching the controller.
type Controller interface {
	// Balance returns the amount of ticker held by owner. Unknown accounts
	// hold zero.
	Balance(db weft.ReadOnlyKVStore, ticker string, owner weft.Address) (coin.Amount, error)

	// Transfer moves amount from src to dest. It fails with
	// ErrTransferRejected if src cannot cover it.
	Transfer(db weft.KVStore, ticker string, src, dest weft.Address, amount coin.Amount) error

	// TransferFrom moves amount from src to dest on behalf of spender,
	// consuming the allowance src granted to spender.
	TransferFrom(db weft.KVStore, ticker string, spender, src, dest weft.Address, amount coin.Amount) error

	// Approve sets the amount spender may transfer out of the owner
	// account. It replaces any previous allowance.
	Approve(db weft.KVStore, ticker string, owner, spender weft.Address, amount coin.Amount) error

	// Allowance returns what spender may still transfer out of owner.
	Allowance(db weft.ReadOnlyKVStore, ticker string, owner, spender weft.Address) (coin.Amount, error)

	// Issue creates new tokens, credits them to dest and increases the
	// token supply.
	Issue(db weft.KVStore, ticker string, dest weft.Address, amount coin.Amount) error
}

// BaseController is the default implementation of Controller.
type BaseController struct {
	tokens     orm.ModelBucket
	balances   orm.ModelBucket
	allowances orm.ModelBucket
}

var _ Controller = BaseController{}

// NewController returns a controller that operates on the cash buckets.
func NewController() BaseController {
	return BaseController{
		tokens:     NewTokenBucket(),
		balances:   NewBalanceBucket(),
		allowances: NewAllowanceBucket(),
	}
}

// DeclareToken registers a new token with zero supply.
func (c BaseController) DeclareToken(db weft.KVStore, ticker, name string) error {
	switch err := c.tokens.Has(db, []byte(ticker)); {
	case err == nil:
		return errors.Wrapf(errors.ErrDuplicate, "token %s", ticker)
	case !errors.ErrNotFound.Is(err):
		return err
	}
	t := Token{Ticker: ticker, Name: name, Supply: coin.Zero()}
	return c.tokens.Put(db, []byte(ticker), &t)
}

// Token returns the declaration of given ticker.
func (c BaseController) Token(db weft.ReadOnlyKVStore, ticker string) (*Token, error) {
	var t Token
	if err := c.tokens.One(db, []byte(ticker), &t); err != nil {
		if errors.ErrNotFound.Is(err) {
			return nil, errors.Wrapf(errors.ErrCurrency, "unknown token %s", ticker)
		}
		return nil, err
	}
	return &t, nil
}

func (c BaseController) Balance(db weft.ReadOnlyKVStore, ticker string, owner weft.Address) (coin.Amount, error) {
	return c.load(db, c.balances, BalanceKey(ticker, owner), &Balance{})
}

func (c BaseController) Allowance(db weft.ReadOnlyKVStore, ticker string, owner, spender weft.Address) (coin.Amount, error) {
	return c.load(db, c.allowances, AllowanceKey(ticker, owner, spender), &Allowance{})
}

type amounted interface {
	orm.Model
	amount() *coin.Amount
}

func (b *Balance) amount() *coin.Amount   { return &b.Amount }
func (a *Allowance) amount() *coin.Amount { return &a.Amount }

func (c BaseController) load(db weft.ReadOnlyKVStore, b orm.ModelBucket, key []byte, dest amounted) (coin.Amount, error) {
	switch err := b.One(db, key, dest); {
	case err == nil:
		return *dest.amount(), nil
	case errors.ErrNotFound.Is(err):
		return coin.Zero(), nil
	default:
		return coin.Amount{}, err
	}
}

func (c BaseController) save(db weft.KVStore, b orm.ModelBucket, key []byte, m amounted) error {
	if m.amount().IsZero() {
		if err := b.Delete(db, key); err != nil && !errors.ErrNotFound.Is(err) {
			return err
		}
		return nil
	}
	return b.Put(db, key, m)
}

func (c BaseController) Transfer(db weft.KVStore, ticker string, src, dest weft.Address, amount coin.Amount) error {
	if _, err := c.Token(db, ticker); err != nil {
		return err
	}
	if amount.IsZero() {
		return nil
	}

	have, err := c.Balance(db, ticker, src)
	if err != nil {
		return errors.Wrap(err, "source balance")
	}
	left, err := have.Sub(amount)
	if err != nil {
		return errors.Wrapf(ErrTransferRejected, "balance %s cannot cover %s %s", have, amount, ticker)
	}
	if err := c.save(db, c.balances, BalanceKey(ticker, src), &Balance{Amount: left}); err != nil {
		return errors.Wrap(err, "save source balance")
	}

	// Destination is loaded after the source is saved, so that a transfer
	// to self is a no-op.
	got, err := c.Balance(db, ticker, dest)
	if err != nil {
		return errors.Wrap(err, "destination balance")
	}
	sum, err := got.Add(amount)
	if err != nil {
		return errors.Wrap(err, "destination balance")
	}
	if err := c.save(db, c.balances, BalanceKey(ticker, dest), &Balance{Amount: sum}); err != nil {
		return errors.Wrap(err, "save destination balance")
	}
	return nil
}

func (c BaseController) TransferFrom(db weft.KVStore, ticker string, spender, src, dest weft.Address, amount coin.Amount) error {
	if amount.IsZero() {
		return nil
	}
	allowed, err := c.Allowance(db, ticker, src, spender)
	if err != nil {
		return errors.Wrap(err, "allowance")
	}
	left, err := allowed.Sub(amount)
	if err != nil {
		return errors.Wrapf(ErrTransferRejected, "allowance %s cannot cover %s %s", allowed, amount, ticker)
	}
	if err := c.save(db, c.allowances, AllowanceKey(ticker, src, spender), &Allowance{Amount: left}); err != nil {
		return errors.Wrap(err, "save allowance")
	}
	return c.Transfer(db, ticker, src, dest, amount)
}

func (c BaseController) Approve(db weft.KVStore, ticker string, owner, spender weft.Address, amount coin.Amount) error {
	if _, err := c.Token(db, ticker); err != nil {
		return err
	}
	return c.save(db, c.allowances, AllowanceKey(ticker, owner, spender), &Allowance{Amount: amount})
}

func (c BaseController) Issue(db weft.KVStore, ticker string, dest weft.Address, amount coin.Amount) error {
	t, err := c.Token(db, ticker)
	if err != nil {
		return err
	}
	if t.Supply, err = t.Supply.Add(amount); err != nil {
		return errors.Wrap(err, "supply")
	}
	if err := c.tokens.Put(db, []byte(ticker), t); err != nil {
		return errors.Wrap(err, "save token")
	}

	have, err := c.Balance(db, ticker, dest)
	if err != nil {
		return err
	}
	sum, err := have.Add(amount)
	if err != nil {
		return errors.Wrap(err, "balance")
	}
	return c.save(db, c.balances, BalanceKey(ticker, dest), &Balance{Amount: sum})
}
