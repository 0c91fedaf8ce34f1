package app

import (
	"encoding/json"
	"io/ioutil"

	"github.com/contribute-dao/weft"
	"github.com/contribute-dao/weft/errors"
)

// Genesis is the part of the tendermint genesis file the application reads.
type Genesis struct {
	ChainID  string       `json:"chain_id"`
	AppState weft.Options `json:"app_state"`
}

// LoadGenesis tries to load a given file into a Genesis struct
func LoadGenesis(filePath string) (Genesis, error) {
	var gen Genesis
	raw, err := ioutil.ReadFile(filePath)
	if err != nil {
		return gen, errors.Wrap(err, "loading genesis file")
	}
	if err := json.Unmarshal(raw, &gen); err != nil {
		return gen, errors.Wrap(errors.ErrInput, "unmarshaling genesis file: "+err.Error())
	}
	return gen, nil
}

// GenesisDoc involves some tendermint-specific structures we don't
// want to parse, so we just grab it into a raw object format,
// so we can add one field.
type GenesisDoc map[string]json.RawMessage

// AddGenesisOptions sets the app_state of the genesis file, keeping every
// other field untouched.
func AddGenesisOptions(filename string, options json.RawMessage) error {
	raw, err := ioutil.ReadFile(filename)
	if err != nil {
		return errors.Wrap(err, "read genesis")
	}
	var doc GenesisDoc
	if err := json.Unmarshal(raw, &doc); err != nil {
		return errors.Wrap(errors.ErrInput, "parse genesis: "+err.Error())
	}

	doc["app_state"] = options
	out, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return errors.Wrap(err, "serialize genesis")
	}
	return ioutil.WriteFile(filename, out, 0600)
}
