package app

import (
	"testing"
	"time"

	"github.com/contribute-dao/weft"
	"github.com/contribute-dao/weft/errors"
	"github.com/contribute-dao/weft/wefttest"
	"github.com/contribute-dao/weft/wefttest/assert"
	abci "github.com/tendermint/tendermint/abci/types"
)

// pathDecoder turns raw bytes into a transaction carrying a message with
// that route.
func pathDecoder(raw []byte) (weft.Tx, error) {
	if string(raw) == "panic" {
		panic("cannot decode")
	}
	if len(raw) == 0 {
		return nil, errors.Wrap(errors.ErrInput, "empty")
	}
	return &wefttest.Tx{Msg: &wefttest.Msg{RoutePath: string(raw)}}, nil
}

func TestBaseApp(t *testing.T) {
	handler := &wefttest.Handler{
		KeyValue:      [2][]byte{[]byte("counter"), []byte("1")},
		DeliverResult: weft.DeliverResult{Data: []byte("ok")},
		CheckResult:   weft.CheckResult{GasAllocated: 7},
	}
	rt := NewRouter()
	rt.Handle(&wefttest.Msg{RoutePath: "splitter/update"}, handler)

	store := newStoreApp(t, &dummyInit{})
	base := NewBaseApp(store, pathDecoder, rt, false)
	base.InitChain(abci.RequestInitChain{ChainId: "weft-testnet", AppStateBytes: []byte(`{}`)})
	base.BeginBlock(abci.RequestBeginBlock{Header: abci.Header{Height: 1, Time: time.Now()}})

	check := base.CheckTx([]byte("splitter/update"))
	assert.Equal(t, uint32(0), check.Code)
	assert.Equal(t, int64(7), check.GasWanted)

	deliver := base.DeliverTx([]byte("splitter/update"))
	assert.Equal(t, uint32(0), deliver.Code)
	assert.Equal(t, []byte("ok"), deliver.Data)
	assert.Equal(t, 2, handler.CallCount())

	missing := base.DeliverTx([]byte("vault/settle"))
	assert.Equal(t, errors.ErrNotFound.ABCICode(), missing.Code)

	broken := base.CheckTx([]byte("panic"))
	assert.Equal(t, errors.ErrPanic.ABCICode(), broken.Code)

	empty := base.DeliverTx(nil)
	assert.Equal(t, errors.ErrInput.ABCICode(), empty.Code)

	base.EndBlock(abci.RequestEndBlock{})
	base.Commit()

	val, err := base.StoreApp.store.committed.Get([]byte("counter"))
	assert.Nil(t, err)
	assert.Equal(t, []byte("1"), val)
}
