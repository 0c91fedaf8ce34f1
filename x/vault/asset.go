package vault

import (
	"fmt"

	"github.com/contribute-dao/weft/coin"
	"github.com/contribute-dao/weft/errors"
	"github.com/contribute-dao/weft/x/items"
)

// AssetKind tells how a pool principal is held.
type AssetKind uint8

const (
	// Fungible principal is an amount of a cash token.
	Fungible AssetKind = 1
	// Counted principal is a number of units of one class of an item
	// collection.
	Counted AssetKind = 2
)

// Asset describes what is staked in a pool.
type Asset struct {
	Kind       AssetKind `json:"kind"`
	Ticker     string    `json:"ticker,omitempty"`
	Collection string    `json:"collection,omitempty"`
	ClassID    uint32    `json:"class,omitempty"`
}

// FungibleAsset returns a descriptor of a cash token.
func FungibleAsset(ticker string) Asset {
	return Asset{Kind: Fungible, Ticker: ticker}
}

// CountedAsset returns a descriptor of a single class of an item
// collection.
func CountedAsset(collection string, class uint32) Asset {
	return Asset{Kind: Counted, Collection: collection, ClassID: class}
}

func (a Asset) Validate() error {
	switch a.Kind {
	case Fungible:
		if !coin.IsCC(a.Ticker) {
			return errors.Wrapf(errors.ErrCurrency, "invalid ticker %q", a.Ticker)
		}
		if a.Collection != "" || a.ClassID != 0 {
			return errors.Wrap(errors.ErrInput, "fungible asset with item class")
		}
	case Counted:
		if !items.IsCollectionName(a.Collection) {
			return errors.Wrapf(errors.ErrInput, "invalid collection %q", a.Collection)
		}
		if a.Ticker != "" {
			return errors.Wrap(errors.ErrInput, "counted asset with ticker")
		}
	default:
		return errors.Wrapf(errors.ErrInput, "unknown asset kind %d", a.Kind)
	}
	return nil
}

// Key returns the identity of the asset within a vault.
func (a Asset) Key() string {
	if a.Kind == Counted {
		return fmt.Sprintf("c:%s/%d", a.Collection, a.ClassID)
	}
	return "f:" + a.Ticker
}

func (a Asset) String() string {
	if a.Kind == Counted {
		return fmt.Sprintf("%s#%d", a.Collection, a.ClassID)
	}
	return a.Ticker
}
