package app

import (
	"encoding/json"
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddGenesisOptions(t *testing.T) {
	dir, err := ioutil.TempDir("", "weft-genesis")
	require.NoError(t, err)
	defer os.RemoveAll(dir)

	path := filepath.Join(dir, "genesis.json")
	doc := `{"chain_id": "weft-testnet", "validators": [{"power": "10"}]}`
	require.NoError(t, ioutil.WriteFile(path, []byte(doc), 0600))

	require.NoError(t, AddGenesisOptions(path, json.RawMessage(`{"cash": {"tokens": []}}`)))

	gen, err := LoadGenesis(path)
	require.NoError(t, err)
	assert.Equal(t, "weft-testnet", gen.ChainID)
	assert.JSONEq(t, `{"tokens": []}`, string(gen.AppState["cash"]))

	var raw GenesisDoc
	content, err := ioutil.ReadFile(path)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(content, &raw))
	assert.JSONEq(t, `[{"power": "10"}]`, string(raw["validators"]))
}

func TestLoadGenesisMissingFile(t *testing.T) {
	_, err := LoadGenesis(filepath.Join(os.TempDir(), "weft-does-not-exist.json"))
	assert.Error(t, err)
}
