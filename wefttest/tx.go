package wefttest

import "github.com/contribute-dao/weft"

// Tx is a transaction carrying a single message. Marshal returns the
// serialized form of the message.
type Tx struct {
	Msg weft.Msg
	// Err if set is returned by GetMsg.
	Err error
}

var _ weft.Tx = (*Tx)(nil)

func (tx *Tx) GetMsg() (weft.Msg, error) {
	return tx.Msg, tx.Err
}

func (tx *Tx) Marshal() ([]byte, error) {
	if tx.Msg == nil {
		return nil, nil
	}
	return tx.Msg.Marshal()
}

func (tx *Tx) Unmarshal(raw []byte) error {
	if tx.Msg == nil {
		tx.Msg = &Msg{}
	}
	return tx.Msg.Unmarshal(raw)
}

// Msg is routed by RoutePath. Its serialized form is Serialized and every
// method fails with Err when set.
type Msg struct {
	RoutePath  string
	Serialized []byte
	Err        error
}

var _ weft.Msg = (*Msg)(nil)

func (m *Msg) Path() string { return m.RoutePath }

func (m *Msg) Marshal() ([]byte, error) { return m.Serialized, m.Err }

func (m *Msg) Unmarshal(raw []byte) error {
	m.Serialized = raw
	return m.Err
}

func (m *Msg) Validate() error { return m.Err }
