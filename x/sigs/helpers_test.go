package sigs

import (
	"github.com/contribute-dao/weft/wefttest"
)

// StdTx is a signed transaction carrying a mock message.
type StdTx struct {
	wefttest.Tx
	Signatures []*StdSignature
}

var _ SignedTx = (*StdTx)(nil)

func NewStdTx(payload []byte) *StdTx {
	return &StdTx{Tx: wefttest.Tx{Msg: &wefttest.Msg{RoutePath: "test/mock", Serialized: payload}}}
}

func (tx *StdTx) GetSignatures() []*StdSignature {
	return tx.Signatures
}

func (tx *StdTx) GetSignBytes() ([]byte, error) {
	msg, err := tx.GetMsg()
	if err != nil {
		return nil, err
	}
	return msg.Marshal()
}
