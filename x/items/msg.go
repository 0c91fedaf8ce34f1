package items

import (
	"github.com/contribute-dao/weft"
	"github.com/contribute-dao/weft/codec"
	"github.com/contribute-dao/weft/errors"
)

func init() {
	codec.RegisterMsg(&TransferMsg{}, "items/transfer")
	codec.RegisterMsg(&SetApprovalMsg{}, "items/set_approval")
}

const maxBatchSize = 64

// TransferMsg moves items of one or more classes between two accounts. The
// transaction must be signed by the source or by an approved operator.
type TransferMsg struct {
	Collection string
	Src        weft.Address
	Dest       weft.Address
	ClassIDs   []uint32
	Counts     []uint64
}

var _ weft.Msg = (*TransferMsg)(nil)

// Path returns the routing path for this message
func (TransferMsg) Path() string {
	return "items/transfer"
}

func (m *TransferMsg) Marshal() ([]byte, error)   { return codec.Marshal(m) }
func (m *TransferMsg) Unmarshal(raw []byte) error { return codec.Unmarshal(raw, m) }

func (m *TransferMsg) Validate() error {
	var errs error
	if !IsCollectionName(m.Collection) {
		errs = errors.AppendField(errs, "Collection", errors.ErrInput)
	}
	errs = errors.AppendField(errs, "Src", m.Src.Validate())
	errs = errors.AppendField(errs, "Dest", m.Dest.Validate())
	switch n := len(m.ClassIDs); {
	case n == 0:
		errs = errors.AppendField(errs, "ClassIDs", errors.ErrEmpty)
	case n > maxBatchSize:
		errs = errors.AppendField(errs, "ClassIDs", errors.Wrap(errors.ErrInput, "batch too big"))
	case n != len(m.Counts):
		errs = errors.AppendField(errs, "Counts", errors.Wrap(errors.ErrInput, "one count per class required"))
	}
	return errs
}

// SetApprovalMsg grants or revokes operator rights over every item the owner
// holds in a collection.
type SetApprovalMsg struct {
	Collection string
	Owner      weft.Address
	Operator   weft.Address
	Approved   bool
}

var _ weft.Msg = (*SetApprovalMsg)(nil)

// Path returns the routing path for this message
func (SetApprovalMsg) Path() string {
	return "items/set_approval"
}

func (m *SetApprovalMsg) Marshal() ([]byte, error)   { return codec.Marshal(m) }
func (m *SetApprovalMsg) Unmarshal(raw []byte) error { return codec.Unmarshal(raw, m) }

func (m *SetApprovalMsg) Validate() error {
	var errs error
	if !IsCollectionName(m.Collection) {
		errs = errors.AppendField(errs, "Collection", errors.ErrInput)
	}
	errs = errors.AppendField(errs, "Owner", m.Owner.Validate())
	errs = errors.AppendField(errs, "Operator", m.Operator.Validate())
	if m.Owner.Equals(m.Operator) {
		errs = errors.AppendField(errs, "Operator", errors.Wrap(errors.ErrInput, "owner cannot be its own operator"))
	}
	return errs
}
