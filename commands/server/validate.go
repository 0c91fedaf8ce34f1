package server

import (
	"github.com/contribute-dao/weft"
	"github.com/contribute-dao/weft/app"
	"github.com/contribute-dao/weft/errors"
	"github.com/contribute-dao/weft/store"
	"github.com/tendermint/tendermint/libs/log"
)

// ValidateCmd loads every given genesis file into a throwaway store using
// the application initializer, so that a broken app_state is caught before
// the chain starts.
func ValidateCmd(ini weft.Initializer, logger log.Logger, args []string) error {
	if len(args) == 0 {
		return errors.Wrap(errors.ErrInput, "usage: validate <genesis file>...")
	}
	if err := ValidateGenesis(ini, args); err != nil {
		return err
	}
	logger.Info("Genesis is valid", "files", len(args))
	return nil
}

// ValidateGenesis runs the initializer against the app_state of each file.
func ValidateGenesis(ini weft.Initializer, genesisPaths []string) error {
	for _, path := range genesisPaths {
		if err := validateGenesis(ini, path); err != nil {
			return errors.Wrap(err, path)
		}
	}
	return nil
}

func validateGenesis(ini weft.Initializer, genesisPath string) error {
	gen, err := app.LoadGenesis(genesisPath)
	if err != nil {
		return err
	}
	if len(gen.AppState) == 0 {
		return errors.Wrap(errors.ErrEmpty, "app_state")
	}
	if !weft.IsValidChainID(gen.ChainID) {
		return errors.Wrapf(errors.ErrInput, "invalid chain id %q", gen.ChainID)
	}

	// Use in memory store because we want to discard the result.
	db := store.MemStore()

	if err := ini.FromGenesis(gen.AppState, weft.GenesisParams{}, db); err != nil {
		return errors.Wrap(err, "cannot initialize from genesis")
	}
	return nil
}
