package vault

import (
	"github.com/contribute-dao/weft"
	"github.com/contribute-dao/weft/coin"
	"github.com/contribute-dao/weft/errors"
	"github.com/contribute-dao/weft/x/cash"
	"github.com/contribute-dao/weft/x/items"
)

// custody moves pool principal between stakers and the vault account.
type custody interface {
	// pull takes amount from the staker. The staker must have approved
	// the vault account in the underlying ledger.
	pull(db weft.KVStore, staker weft.Address, amount coin.Amount) error
	// push returns amount to the staker.
	push(db weft.KVStore, staker weft.Address, amount coin.Amount) error
}

func (c *Controller) custodyOf(vault string, a Asset) (custody, error) {
	account := Account(vault)
	switch a.Kind {
	case Fungible:
		return fungibleCustody{ledger: c.cash, ticker: a.Ticker, account: account}, nil
	case Counted:
		return countedCustody{ledger: c.items, asset: a, account: account}, nil
	}
	return nil, errors.Wrapf(errors.ErrInput, "unknown asset kind %d", a.Kind)
}

type fungibleCustody struct {
	ledger  cash.Controller
	ticker  string
	account weft.Address
}

func (f fungibleCustody) pull(db weft.KVStore, staker weft.Address, amount coin.Amount) error {
	return f.ledger.TransferFrom(db, f.ticker, f.account, staker, f.account, amount)
}

func (f fungibleCustody) push(db weft.KVStore, staker weft.Address, amount coin.Amount) error {
	return f.ledger.Transfer(db, f.ticker, f.account, staker, amount)
}

type countedCustody struct {
	ledger  items.Controller
	asset   Asset
	account weft.Address
}

func (c countedCustody) pull(db weft.KVStore, staker weft.Address, amount coin.Amount) error {
	n, err := units(amount)
	if err != nil {
		return err
	}
	return c.ledger.BatchTransfer(db, c.asset.Collection, c.account, staker, c.account,
		[]uint32{c.asset.ClassID}, []uint64{n})
}

func (c countedCustody) push(db weft.KVStore, staker weft.Address, amount coin.Amount) error {
	n, err := units(amount)
	if err != nil {
		return err
	}
	return c.ledger.BatchTransfer(db, c.asset.Collection, c.account, c.account, staker,
		[]uint32{c.asset.ClassID}, []uint64{n})
}

func units(amount coin.Amount) (uint64, error) {
	b := amount.BigInt()
	if !b.IsUint64() {
		return 0, errors.Wrap(errors.ErrOverflow, "item count out of range")
	}
	return b.Uint64(), nil
}
