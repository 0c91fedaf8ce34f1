package weft

import (
	"github.com/contribute-dao/weft/errors"
	abci "github.com/tendermint/tendermint/abci/types"
	"github.com/tendermint/tendermint/libs/common"
)

// DeliverResult is the outcome of a successful DeliverTx. Failures are
// reported with an error instead.
type DeliverResult struct {
	// Data is the machine readable result, for example the harvested
	// amount of a vault call.
	Data []byte
	Log  string
	// Tags are indexed by tendermint and let clients search the
	// transaction history, see utils.ActionTagger.
	Tags []common.KVPair
}

func (d DeliverResult) ToABCI() abci.ResponseDeliverTx {
	return abci.ResponseDeliverTx{Data: d.Data, Log: d.Log, Tags: d.Tags}
}

// CheckResult is the outcome of a successful CheckTx.
type CheckResult struct {
	Data []byte
	Log  string
	// GasAllocated estimates the work of the transaction. Every handler
	// sets its own cost and decorators add to it.
	GasAllocated int64
}

func (c CheckResult) ToABCI() abci.ResponseCheckTx {
	return abci.ResponseCheckTx{Data: c.Data, Log: c.Log, GasWanted: c.GasAllocated}
}

// DeliverOrError returns the response of a DeliverTx, the error wins over
// the result.
func DeliverOrError(res *DeliverResult, err error, debug bool) abci.ResponseDeliverTx {
	if err != nil {
		return DeliverTxError(err, debug)
	}
	return res.ToABCI()
}

// CheckOrError returns the response of a CheckTx, the error wins over the
// result.
func CheckOrError(res *CheckResult, err error, debug bool) abci.ResponseCheckTx {
	if err != nil {
		return CheckTxError(err, debug)
	}
	return res.ToABCI()
}

// DeliverTxError returns the failed DeliverTx response for err. Outside of
// debug mode internal errors are redacted, see errors.ABCIInfo.
func DeliverTxError(err error, debug bool) abci.ResponseDeliverTx {
	code, log := abciInfo("cannot deliver tx", err, debug)
	return abci.ResponseDeliverTx{Code: code, Log: log}
}

// CheckTxError returns the failed CheckTx response for err.
func CheckTxError(err error, debug bool) abci.ResponseCheckTx {
	code, log := abciInfo("cannot check tx", err, debug)
	return abci.ResponseCheckTx{Code: code, Log: log}
}

// QueryError returns the failed query response for err.
func QueryError(err error, debug bool) abci.ResponseQuery {
	code, log := errors.ABCIInfo(err, debug)
	return abci.ResponseQuery{Code: code, Log: log}
}

func abciInfo(prefix string, err error, debug bool) (uint32, string) {
	code, log := errors.ABCIInfo(err, debug)
	if code != errors.SuccessABCICode {
		log = prefix + ": " + log
	}
	return code, log
}
