package server

import (
	"io/ioutil"
	"path/filepath"
	"testing"

	"github.com/contribute-dao/weft"
	"github.com/contribute-dao/weft/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tendermint/tendermint/libs/log"
)

type initFunc func(weft.Options, weft.GenesisParams, weft.KVStore) error

func (f initFunc) FromGenesis(opts weft.Options, params weft.GenesisParams, kv weft.KVStore) error {
	return f(opts, params, kv)
}

func TestValidateGenesis(t *testing.T) {
	ini := initFunc(func(opts weft.Options, _ weft.GenesisParams, kv weft.KVStore) error {
		var v struct {
			Value string `json:"value"`
		}
		if err := opts.ReadOptions("dummy", &v); err != nil {
			return err
		}
		if v.Value == "" {
			return errors.Wrap(errors.ErrEmpty, "value")
		}
		return kv.Set([]byte("dummy"), []byte(v.Value))
	})

	cases := map[string]struct {
		genesis string
		wantErr *errors.Error
	}{
		"valid": {
			genesis: `{"chain_id": "weft-local", "app_state": {"dummy": {"value": "x"}}}`,
		},
		"initializer fails": {
			genesis: `{"chain_id": "weft-local", "app_state": {"dummy": {}}}`,
			wantErr: errors.ErrEmpty,
		},
		"no app state": {
			genesis: `{"chain_id": "weft-local"}`,
			wantErr: errors.ErrEmpty,
		},
		"bad chain id": {
			genesis: `{"chain_id": "!", "app_state": {"dummy": {"value": "x"}}}`,
			wantErr: errors.ErrInput,
		},
		"not json": {
			genesis: `{`,
			wantErr: errors.ErrInput,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			home, cleanup := setupHome(t)
			defer cleanup()
			path := filepath.Join(home, "genesis.json")
			require.NoError(t, ioutil.WriteFile(path, []byte(tc.genesis), 0600))

			err := ValidateCmd(ini, log.NewNopLogger(), []string{path})
			if !tc.wantErr.Is(err) {
				t.Fatalf("unexpected error: %+v", err)
			}
		})
	}
}

func TestValidateRequiresFiles(t *testing.T) {
	err := ValidateCmd(initFunc(nil), log.NewNopLogger(), nil)
	assert.True(t, errors.ErrInput.Is(err))
}
