/*
Package codec holds the binary and JSON codec shared by all state models and
transactions.

Every model and message is serialized with go-amino. Extensions register their
concrete message types under a stable name in an init function, so that a
transaction can carry any registered message in its polymorphic Msg field:

	func init() {
		codec.RegisterMsg(&DepositMsg{}, "vault/deposit")
	}
*/
package codec

import (
	"github.com/contribute-dao/weft"
	"github.com/contribute-dao/weft/errors"
	amino "github.com/tendermint/go-amino"
)

// Cdc is the codec instance used by the whole application.
var Cdc = amino.NewCodec()

func init() {
	Cdc.RegisterInterface((*weft.Msg)(nil), nil)
}

// RegisterMsg registers a concrete message type so that it can be encoded
// within a transaction. Use a pointer to the message as the prototype.
func RegisterMsg(prototype weft.Msg, name string) {
	Cdc.RegisterConcrete(prototype, name, nil)
}

// Marshal serializes given object using the binary encoding.
func Marshal(o interface{}) ([]byte, error) {
	bz, err := Cdc.MarshalBinaryBare(o)
	if err != nil {
		return nil, errors.Wrap(errors.ErrType, err.Error())
	}
	return bz, nil
}

// Unmarshal deserializes the binary representation into the object pointed
// by ptr.
func Unmarshal(bz []byte, ptr interface{}) error {
	if err := Cdc.UnmarshalBinaryBare(bz, ptr); err != nil {
		return errors.Wrap(errors.ErrType, err.Error())
	}
	return nil
}

// MarshalJSON returns the indented JSON representation of given object.
func MarshalJSON(o interface{}) ([]byte, error) {
	bz, err := Cdc.MarshalJSONIndent(o, "", "  ")
	if err != nil {
		return nil, errors.Wrap(errors.ErrType, err.Error())
	}
	return bz, nil
}

// UnmarshalJSON is the inverse of MarshalJSON.
func UnmarshalJSON(bz []byte, ptr interface{}) error {
	if err := Cdc.UnmarshalJSON(bz, ptr); err != nil {
		return errors.Wrap(errors.ErrInput, err.Error())
	}
	return nil
}
