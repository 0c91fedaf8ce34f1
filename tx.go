package weft

import (
	"reflect"

	"github.com/contribute-dao/weft/errors"
)

// Msg is a single requested state transition. It carries no
// authentication, that belongs to the Tx.
type Msg interface {
	Persistent

	// Path routes the message to its handler, for example "vault/deposit".
	Path() string

	// Validate checks the message on its own, without reading any state.
	Validate() error
}

// Persistent is anything stored or sent in binary form.
type Persistent interface {
	Marshal() ([]byte, error)
	Unmarshal([]byte) error
}

// Tx is a message together with whatever the decorators need to
// authorize it.
type Tx interface {
	Persistent
	GetMsg() (Msg, error)
}

// TxDecoder parses the raw bytes of a transaction.
type TxDecoder func(txBytes []byte) (Tx, error)

// GetPath returns the path of the transaction message, or "(missing)".
func GetPath(tx Tx) string {
	if msg, err := tx.GetMsg(); err == nil && msg != nil {
		return msg.Path()
	}
	return "(missing)"
}

// LoadMsg copies the transaction message into destination, which must
// point to a value of the same message type, and validates it.
func LoadMsg(tx Tx, destination interface{}) error {
	msg, err := tx.GetMsg()
	if err != nil {
		return errors.Wrap(err, "get message")
	}
	if msg == nil {
		return errors.Wrap(errors.ErrMsg, "no message")
	}

	src := reflect.Indirect(reflect.ValueOf(msg))
	dst := reflect.Indirect(reflect.ValueOf(destination))
	if src.Type() != dst.Type() || !dst.CanSet() {
		return errors.Wrapf(errors.ErrType, "cannot load %T into %T", msg, destination)
	}
	dst.Set(src)

	if err := msg.Validate(); err != nil {
		return errors.Wrap(err, "invalid message")
	}
	return nil
}
