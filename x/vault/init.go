package vault

import (
	"context"

	"github.com/contribute-dao/weft"
	"github.com/contribute-dao/weft/errors"
	"github.com/contribute-dao/weft/gconf"
	"github.com/contribute-dao/weft/x/cash"
	"github.com/contribute-dao/weft/x/items"
)

const optKey = "vault"

// GenesisPool declares a pool. The asset kind may be omitted, it is then
// derived from which of ticker or collection is set.
type GenesisPool struct {
	Points uint64 `json:"points"`
	Asset  Asset  `json:"asset"`
}

// GenesisVault declares a vault and its initial pools.
type GenesisVault struct {
	Name        string        `json:"name"`
	Settlement  string        `json:"settlement"`
	EpochLength int64         `json:"epoch_length"`
	Pools       []GenesisPool `json:"pools"`
}

// Genesis is the "vault" section of the genesis file.
type Genesis struct {
	Vaults []GenesisVault `json:"vaults"`
}

// Initializer fulfils the Initializer interface to load data from
// the genesis file
type Initializer struct{}

var _ weft.Initializer = Initializer{}

// FromGenesis creates the vaults with their pools and stores the vault
// configuration found in the "conf" section.
func (Initializer) FromGenesis(opts weft.Options, params weft.GenesisParams, kv weft.KVStore) error {
	if err := gconf.InitConfig(kv, opts, confPkg, &Configuration{}); err != nil {
		return errors.Wrap(err, "init config")
	}
	var gen Genesis
	if err := opts.ReadOptions(optKey, &gen); err != nil {
		return err
	}

	ctrl := NewController(cash.NewController(), items.NewController())
	// Genesis pools are created before any income can arrive.
	ctx := weft.WithHeight(context.Background(), params.Height)
	for _, v := range gen.Vaults {
		if err := ctrl.CreateVault(kv, v.Name, v.Settlement, params.Height, v.EpochLength); err != nil {
			return errors.Wrapf(err, "vault %s", v.Name)
		}
		for i, p := range v.Pools {
			asset := p.Asset
			if asset.Kind == 0 {
				if asset.Collection != "" {
					asset.Kind = Counted
				} else {
					asset.Kind = Fungible
				}
			}
			if _, err := ctrl.AddPool(ctx, kv, v.Name, p.Points, asset, false); err != nil {
				return errors.Wrapf(err, "vault %s pool %d", v.Name, i)
			}
		}
	}
	return nil
}
