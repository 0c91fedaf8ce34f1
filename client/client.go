/*
Package client gives access to a running weft node over the tendermint rpc.

Queries mirror the abci query interface exactly, so a Client can be wrapped
with app.NewABCIStore and read with the same buckets and controllers the
application uses.
*/
package client

import (
	"context"

	"github.com/contribute-dao/weft"
	"github.com/contribute-dao/weft/app"
	"github.com/contribute-dao/weft/errors"
	abci "github.com/tendermint/tendermint/abci/types"
	cmn "github.com/tendermint/tendermint/libs/common"
	rpcclient "github.com/tendermint/tendermint/rpc/client"
)

// TransactionID is the hash of a submitted transaction.
type TransactionID = cmn.HexBytes

// Status describes the node the client is connected to.
type Status struct {
	ChainID    string
	Height     int64
	CatchingUp bool
}

// Client reads application state and submits transactions through a
// tendermint rpc connection.
type Client struct {
	conn Conn
}

var _ app.Querier = (*Client)(nil)

// NewClient returns a client using the given connection.
func NewClient(conn Conn) *Client {
	return &Client{conn: conn}
}

// Status reports the chain id and sync state as seen by the node.
func (c *Client) Status(ctx context.Context) (*Status, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.Wrap(errors.ErrNetwork, err.Error())
	}
	status, err := c.conn.Status()
	if err != nil {
		return nil, errors.Wrapf(errors.ErrNetwork, "status: %s", err.Error())
	}
	return &Status{
		ChainID:    status.NodeInfo.Network,
		Height:     status.SyncInfo.LatestBlockHeight,
		CatchingUp: status.SyncInfo.CatchingUp,
	}, nil
}

// SubmitTx waits for the transaction to pass the mempool check and returns
// its hash. It does not wait for the block. A failed check is returned as
// the error it was raised with.
func (c *Client) SubmitTx(ctx context.Context, tx weft.Tx) (TransactionID, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.Wrap(errors.ErrNetwork, err.Error())
	}
	bz, err := tx.Marshal()
	if err != nil {
		return nil, errors.Wrapf(errors.ErrMsg, "serialize tx: %s", err.Error())
	}
	res, err := c.conn.BroadcastTxSync(bz)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrNetwork, "submit tx: %s", err.Error())
	}

	if res.Code != errors.SuccessABCICode {
		return nil, errors.ABCIError(res.Code, res.Log)
	}
	return res.Hash, nil
}

// Query forwards the request to the application of the node. Transport
// failures are reported as a network error code in the response.
func (c *Client) Query(query abci.RequestQuery) abci.ResponseQuery {
	opts := rpcclient.ABCIQueryOptions{Height: query.Height, Prove: query.Prove}
	res, err := c.conn.ABCIQueryWithOptions(query.Path, query.Data, opts)
	if err != nil {
		code, log := errors.ABCIInfo(errors.Wrap(errors.ErrNetwork, err.Error()), false)
		return abci.ResponseQuery{
			Code: code,
			Log:  log,
		}
	}
	return res.Response
}

// Store returns a read only view of the latest committed application state.
func (c *Client) Store() weft.ReadOnlyKVStore {
	return app.NewABCIStore(c)
}
