package app

import (
	"github.com/contribute-dao/weft"
	"github.com/contribute-dao/weft/errors"
	abci "github.com/tendermint/tendermint/abci/types"
)

// BaseApp runs transactions through the handler on top of the block and
// store management of StoreApp.
type BaseApp struct {
	*StoreApp
	decoder weft.TxDecoder
	handler weft.Handler
	// debug returns full error messages and stack traces to the client.
	debug bool
}

var _ abci.Application = BaseApp{}

func NewBaseApp(store *StoreApp, decoder weft.TxDecoder, handler weft.Handler, debug bool) BaseApp {
	return BaseApp{
		StoreApp: store,
		decoder:  decoder,
		handler:  handler,
		debug:    debug,
	}
}

// DeliverTx executes the transaction against the block state.
func (b BaseApp) DeliverTx(txBytes []byte) abci.ResponseDeliverTx {
	tx, err := b.decode(txBytes)
	if err != nil {
		return weft.DeliverTxError(err, b.debug)
	}
	res, err := b.handler.Deliver(b.txContext(tx, "deliver_tx"), b.DeliverStore(), tx)
	return weft.DeliverOrError(res, err, b.debug)
}

// CheckTx validates the transaction against the mempool state.
func (b BaseApp) CheckTx(txBytes []byte) abci.ResponseCheckTx {
	tx, err := b.decode(txBytes)
	if err != nil {
		return weft.CheckTxError(err, b.debug)
	}
	res, err := b.handler.Check(b.txContext(tx, "check_tx"), b.CheckStore(), tx)
	return weft.CheckOrError(res, err, b.debug)
}

func (b BaseApp) txContext(tx weft.Tx, call string) weft.Context {
	return weft.WithLogInfo(b.BlockContext(), "call", call, "path", weft.GetPath(tx))
}

// decode turns a decoder panic on malformed bytes into an error.
func (b BaseApp) decode(txBytes []byte) (tx weft.Tx, err error) {
	defer errors.Recover(&err)
	return b.decoder(txBytes)
}
