package client

import (
	cmn "github.com/tendermint/tendermint/libs/common"
	rpcclient "github.com/tendermint/tendermint/rpc/client"
	ctypes "github.com/tendermint/tendermint/rpc/core/types"
	tmtypes "github.com/tendermint/tendermint/types"
)

// Conn is the part of a tendermint rpc client used by Client. Both the http
// and the local tendermint clients satisfy it.
type Conn interface {
	Status() (*ctypes.ResultStatus, error)
	ABCIQueryWithOptions(path string, data cmn.HexBytes, opts rpcclient.ABCIQueryOptions) (*ctypes.ResultABCIQuery, error)
	BroadcastTxSync(tx tmtypes.Tx) (*ctypes.ResultBroadcastTx, error)
}

var _ Conn = (rpcclient.Client)(nil)

// NewHTTPConnection connects to the rpc endpoint of a remote node, for
// example "http://localhost:26657".
func NewHTTPConnection(remote string) rpcclient.Client {
	return rpcclient.NewHTTP(remote, "/websocket")
}
