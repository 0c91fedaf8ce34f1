package items

import (
	"github.com/contribute-dao/weft"
	"github.com/contribute-dao/weft/errors"
)

const optKey = "items"

// GenesisHolding mints items to an owner.
type GenesisHolding struct {
	Owner weft.Address `json:"owner"`
	Class uint32       `json:"class"`
	Count uint64       `json:"count"`
}

// GenesisCollection declares a collection with its initial holdings.
type GenesisCollection struct {
	Name     string           `json:"name"`
	Classes  uint32           `json:"classes"`
	Holdings []GenesisHolding `json:"holdings"`
}

// Initializer fulfils the Initializer interface to load data from
// the genesis file
type Initializer struct{}

var _ weft.Initializer = Initializer{}

// FromGenesis declares collections and mints their initial holdings.
func (Initializer) FromGenesis(opts weft.Options, params weft.GenesisParams, kv weft.KVStore) error {
	var collections []GenesisCollection
	if err := opts.ReadOptions(optKey, &collections); err != nil {
		return err
	}
	ctrl := NewController()
	for _, col := range collections {
		if err := ctrl.DeclareCollection(kv, col.Name, col.Classes); err != nil {
			return errors.Wrapf(err, "collection %q", col.Name)
		}
		for _, h := range col.Holdings {
			if err := h.Owner.Validate(); err != nil {
				return errors.Wrap(err, "holding owner")
			}
			if err := ctrl.Mint(kv, col.Name, h.Owner, h.Class, h.Count); err != nil {
				return errors.Wrapf(err, "mint %s class %d", col.Name, h.Class)
			}
		}
	}
	return nil
}
