package app

import (
	"testing"

	"github.com/contribute-dao/weft"
	"github.com/contribute-dao/weft/errors"
	"github.com/contribute-dao/weft/wefttest/assert"
	abci "github.com/tendermint/tendermint/abci/types"
)

func TestResultSet(t *testing.T) {
	in := &ResultSet{Results: [][]byte{[]byte("a"), {}, make([]byte, 300)}}
	raw, err := in.Marshal()
	assert.Nil(t, err)

	var out ResultSet
	assert.Nil(t, out.Unmarshal(raw))
	assert.Equal(t, 3, len(out.Results))
	assert.Equal(t, []byte("a"), out.Results[0])
	assert.Equal(t, 300, len(out.Results[2]))

	assert.IsErr(t, errors.ErrInput, out.Unmarshal(raw[:len(raw)-1]))
	assert.IsErr(t, errors.ErrInput, out.Unmarshal([]byte{0x12, 0x00}))
}

func TestJoinResults(t *testing.T) {
	models := []weft.Model{weft.Pair([]byte("k1"), []byte("v1")), weft.Pair([]byte("k2"), []byte("v2"))}
	joined, err := JoinResults(ResultsFromKeys(models), ResultsFromValues(models))
	assert.Nil(t, err)
	assert.Equal(t, models, joined)

	_, err = JoinResults(ResultsFromKeys(models), &ResultSet{})
	assert.IsErr(t, errors.ErrInput, err)
}

func TestABCIStore(t *testing.T) {
	app := newStoreApp(t, &dummyInit{})
	app.InitChain(abci.RequestInitChain{ChainId: "weft-testnet", AppStateBytes: []byte(`{}`)})
	db := app.DeliverStore()
	assert.Nil(t, db.Set([]byte("pool:a"), []byte("1")))
	assert.Nil(t, db.Set([]byte("pool:b"), []byte("2")))
	assert.Nil(t, db.Set([]byte("stake:a"), []byte("3")))
	app.Commit()

	remote := NewABCIStore(app)

	val, err := remote.Get([]byte("pool:b"))
	assert.Nil(t, err)
	assert.Equal(t, []byte("2"), val)

	has, err := remote.Has([]byte("pool:c"))
	assert.Nil(t, err)
	assert.Equal(t, false, has)

	it, err := remote.Iterator([]byte("pool:"), prefixEnd([]byte("pool:")))
	assert.Nil(t, err)
	var keys []string
	for {
		key, _, err := it.Next()
		if errors.ErrIteratorDone.Is(err) {
			break
		}
		assert.Nil(t, err)
		keys = append(keys, string(key))
	}
	assert.Equal(t, []string{"pool:a", "pool:b"}, keys)

	_, err = remote.Iterator([]byte("pool:a"), []byte("pool:z"))
	assert.IsErr(t, errors.ErrInput, err)
}

func TestPrefixEnd(t *testing.T) {
	assert.Equal(t, []byte("pool;"), prefixEnd([]byte("pool:")))
	assert.Equal(t, []byte{0x02}, prefixEnd([]byte{0x01, 0xff}))
	assert.Equal(t, []byte(nil), prefixEnd([]byte{0xff, 0xff}))
}
