package server

import (
	"encoding/json"
	"flag"
	"fmt"
	"io/ioutil"
	"os"
	"path/filepath"
	"time"

	"github.com/contribute-dao/weft"
	"github.com/contribute-dao/weft/app"
	"github.com/contribute-dao/weft/errors"
	cmn "github.com/tendermint/tendermint/libs/common"
	"github.com/tendermint/tendermint/libs/log"
)

const flagChainID = "chain-id"

// GenOptions can parse command-line and flag to
// generate default app_options for the genesis file.
// This is application-specific
type GenOptions func(args []string) (json.RawMessage, error)

// GenesisFile returns the location of the tendermint genesis file.
func GenesisFile(home string) string {
	return filepath.Join(home, "config", "genesis.json")
}

// InitCmd will initialize the genesis file and the node configuration.
//
// A genesis file created by `tendermint init` is kept and only its
// app_state is replaced. Otherwise a genesis without validators is
// created, with the chain id given by the -chain-id flag.
func InitCmd(gen GenOptions, logger log.Logger, home string, args []string) error {
	var chainID string
	initFlags := flag.NewFlagSet("init", flag.ContinueOnError)
	initFlags.StringVar(&chainID, flagChainID, "", "chain id of a new genesis file (default random)")
	if err := initFlags.Parse(args); err != nil {
		return errors.Wrap(errors.ErrInput, err.Error())
	}
	if chainID == "" {
		chainID = fmt.Sprintf("weft-%s", cmn.RandStr(6))
	}
	if !weft.IsValidChainID(chainID) {
		return errors.Wrapf(errors.ErrInput, "invalid chain id %q", chainID)
	}

	if _, err := os.Stat(filepath.Join(home, ConfigFile)); os.IsNotExist(err) {
		if err := WriteConfig(home, DefaultConfig()); err != nil {
			return err
		}
		logger.Info("Generated node config", "path", filepath.Join(home, ConfigFile))
	}

	genFile := GenesisFile(home)
	if fileExists(genFile) {
		logger.Info("Found genesis file", "path", genFile)
	} else {
		if err := writeGenesis(genFile, chainID); err != nil {
			return err
		}
		logger.Info("Generated genesis file", "path", genFile, "chain_id", chainID)
	}

	options, err := gen(initFlags.Args())
	if err != nil {
		return err
	}
	return app.AddGenesisOptions(genFile, options)
}

func writeGenesis(path, chainID string) error {
	doc := app.GenesisDoc{}
	var err error
	if doc["chain_id"], err = json.Marshal(chainID); err != nil {
		return errors.Wrap(err, "chain id")
	}
	if doc["genesis_time"], err = json.Marshal(time.Now().UTC()); err != nil {
		return errors.Wrap(err, "genesis time")
	}
	raw, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return errors.Wrap(err, "serialize genesis")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return errors.Wrap(err, "create config dir")
	}
	return ioutil.WriteFile(path, raw, 0600)
}

func fileExists(filePath string) bool {
	_, err := os.Stat(filePath)
	return !os.IsNotExist(err)
}
