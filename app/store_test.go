package app

import (
	"context"
	"testing"
	"time"

	"github.com/contribute-dao/weft"
	"github.com/contribute-dao/weft/store/iavl"
	"github.com/contribute-dao/weft/wefttest/assert"
	abci "github.com/tendermint/tendermint/abci/types"
)

const dummyKey = "dummy"

// dummyInit stores the "dummy" option under the same key, along with the
// genesis time it was given.
type dummyInit struct {
	params weft.GenesisParams
}

func (d *dummyInit) FromGenesis(opts weft.Options, params weft.GenesisParams, kv weft.KVStore) error {
	d.params = params
	var value string
	if err := opts.ReadOptions(dummyKey, &value); err != nil {
		return err
	}
	return kv.Set([]byte(dummyKey), []byte(value))
}

func newStoreApp(t testing.TB, init weft.Initializer) *StoreApp {
	t.Helper()
	qr := weft.NewQueryRouter()
	qr.RegisterAll(RegisterQuery)
	return NewStoreApp("weft-test", iavl.NewCommitStore("", "weft"), qr, context.Background()).WithInit(init)
}

func TestInitChain(t *testing.T) {
	init := &dummyInit{}
	app := newStoreApp(t, init)
	genesisTime := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	app.InitChain(abci.RequestInitChain{
		ChainId:       "weft-testnet",
		Time:          genesisTime,
		AppStateBytes: []byte(`{"dummy": "spirit"}`),
	})
	assert.Equal(t, "weft-testnet", app.GetChainID())
	assert.Equal(t, weft.AsUnixTime(genesisTime), init.params.Time)

	val, err := app.DeliverStore().Get([]byte(dummyKey))
	assert.Nil(t, err)
	assert.Equal(t, []byte("spirit"), val)

	// Not visible to queries until committed.
	res := app.Query(abci.RequestQuery{Path: "/", Data: []byte(dummyKey)})
	assert.Equal(t, uint32(0), res.Code)
	var rs ResultSet
	assert.Nil(t, rs.Unmarshal(res.Value))
	assert.Equal(t, 0, len(rs.Results))

	commit := app.Commit()
	info := app.Info(abci.RequestInfo{})
	assert.Equal(t, int64(1), info.LastBlockHeight)
	assert.Equal(t, commit.Data, info.LastBlockAppHash)

	res = app.Query(abci.RequestQuery{Path: "/", Data: []byte(dummyKey)})
	assert.Nil(t, rs.Unmarshal(res.Value))
	assert.Equal(t, [][]byte{[]byte("spirit")}, rs.Results)

	assert.Panics(t, func() {
		app.InitChain(abci.RequestInitChain{
			ChainId:       "weft-other",
			AppStateBytes: []byte(`{}`),
		})
	})
}

func TestInitChainRequiresAppState(t *testing.T) {
	app := newStoreApp(t, &dummyInit{})
	assert.Panics(t, func() {
		app.InitChain(abci.RequestInitChain{ChainId: "weft-testnet"})
	})
	assert.Panics(t, func() {
		app.InitChain(abci.RequestInitChain{ChainId: "bad", AppStateBytes: []byte(`{}`)})
	})
}

func TestBeginBlockContext(t *testing.T) {
	app := newStoreApp(t, &dummyInit{})
	now := time.Date(2026, 3, 4, 5, 6, 7, 0, time.UTC)
	app.BeginBlock(abci.RequestBeginBlock{
		Header: abci.Header{Height: 42, Time: now},
	})

	ctx := app.BlockContext()
	height, ok := weft.GetHeight(ctx)
	assert.Equal(t, true, ok)
	assert.Equal(t, int64(42), height)
	ts, err := weft.BlockTime(ctx)
	assert.Nil(t, err)
	assert.Equal(t, now, ts)
}

func TestQueryUnknownPath(t *testing.T) {
	app := newStoreApp(t, &dummyInit{})
	res := app.Query(abci.RequestQuery{Path: "/vaults"})
	assert.Equal(t, uint32(3), res.Code)
}

func TestSplitPath(t *testing.T) {
	cases := map[string]struct {
		path, want, mod string
	}{
		"plain":  {path: "/pools", want: "/pools"},
		"prefix": {path: "/pools?prefix", want: "/pools", mod: "prefix"},
		"root":   {path: "/?prefix", want: "/", mod: "prefix"},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			path, mod := splitPath(tc.path)
			assert.Equal(t, tc.want, path)
			assert.Equal(t, tc.mod, mod)
		})
	}
}
