package client

import (
	"sync"
	"time"

	abci "github.com/tendermint/tendermint/abci/types"
	cmn "github.com/tendermint/tendermint/libs/common"
	"github.com/tendermint/tendermint/p2p"
	rpcclient "github.com/tendermint/tendermint/rpc/client"
	ctypes "github.com/tendermint/tendermint/rpc/core/types"
	tmtypes "github.com/tendermint/tendermint/types"
)

// AppConnection serves an in-process application as if it was a single
// validator node that produces one block for every accepted transaction.
// Useful for tests.
type AppConnection struct {
	mu      sync.Mutex
	app     abci.Application
	chainID string
	height  int64
	now     func() time.Time
}

var _ Conn = (*AppConnection)(nil)

// NewAppConnection wraps an application that already processed its genesis.
// Block time is read from now.
func NewAppConnection(app abci.Application, chainID string, now func() time.Time) *AppConnection {
	return &AppConnection{app: app, chainID: chainID, now: now}
}

func (c *AppConnection) Status() (*ctypes.ResultStatus, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return &ctypes.ResultStatus{
		NodeInfo: p2p.DefaultNodeInfo{Network: c.chainID},
		SyncInfo: ctypes.SyncInfo{LatestBlockHeight: c.height},
	}, nil
}

func (c *AppConnection) ABCIQueryWithOptions(path string, data cmn.HexBytes, opts rpcclient.ABCIQueryOptions) (*ctypes.ResultABCIQuery, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	res := c.app.Query(abci.RequestQuery{Path: path, Data: data, Height: opts.Height, Prove: opts.Prove})
	return &ctypes.ResultABCIQuery{Response: res}, nil
}

// BroadcastTxSync opens a new block, checks the transaction against it and,
// when it passes, delivers it in that block. The block is committed either
// way.
func (c *AppConnection) BroadcastTxSync(tx tmtypes.Tx) (*ctypes.ResultBroadcastTx, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.height++
	c.app.BeginBlock(abci.RequestBeginBlock{Header: abci.Header{
		ChainID: c.chainID,
		Height:  c.height,
		Time:    c.now(),
	}})
	check := c.app.CheckTx(tx)
	if check.Code == 0 {
		c.app.DeliverTx(tx)
	}
	c.app.EndBlock(abci.RequestEndBlock{Height: c.height})
	c.app.Commit()

	return &ctypes.ResultBroadcastTx{
		Code: check.Code,
		Data: check.Data,
		Log:  check.Log,
		Hash: tx.Hash(),
	}, nil
}
