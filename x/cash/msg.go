package cash

import (
	"github.com/contribute-dao/weft"
	"github.com/contribute-dao/weft/codec"
	"github.com/contribute-dao/weft/coin"
	"github.com/contribute-dao/weft/errors"
)

func init() {
	codec.RegisterMsg(&SendMsg{}, "cash/send")
	codec.RegisterMsg(&ApproveMsg{}, "cash/approve")
}

const maxMemoSize int = 128

// SendMsg moves tokens from the source account, which must sign the
// transaction, to the destination.
type SendMsg struct {
	Src    weft.Address
	Dest   weft.Address
	Amount coin.Coin
	Memo   string
}

var _ weft.Msg = (*SendMsg)(nil)

// Path returns the routing path for this message
func (SendMsg) Path() string {
	return "cash/send"
}

func (m *SendMsg) Marshal() ([]byte, error)   { return codec.Marshal(m) }
func (m *SendMsg) Unmarshal(raw []byte) error { return codec.Unmarshal(raw, m) }

// Validate makes sure that this is sensible
func (m *SendMsg) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Src", m.Src.Validate())
	errs = errors.AppendField(errs, "Dest", m.Dest.Validate())
	errs = errors.AppendField(errs, "Amount", m.Amount.Validate())
	if m.Amount.IsZero() {
		errs = errors.AppendField(errs, "Amount", errors.Wrap(errors.ErrAmount, "must be positive"))
	}
	if len(m.Memo) > maxMemoSize {
		errs = errors.AppendField(errs, "Memo", errors.Wrap(errors.ErrInput, "too long"))
	}
	return errs
}

// ApproveMsg sets the allowance of a spender over the owner account. A zero
// amount revokes the allowance.
type ApproveMsg struct {
	Owner   weft.Address
	Spender weft.Address
	Amount  coin.Coin
}

var _ weft.Msg = (*ApproveMsg)(nil)

// Path returns the routing path for this message
func (ApproveMsg) Path() string {
	return "cash/approve"
}

func (m *ApproveMsg) Marshal() ([]byte, error)   { return codec.Marshal(m) }
func (m *ApproveMsg) Unmarshal(raw []byte) error { return codec.Unmarshal(raw, m) }

func (m *ApproveMsg) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Owner", m.Owner.Validate())
	errs = errors.AppendField(errs, "Spender", m.Spender.Validate())
	errs = errors.AppendField(errs, "Amount", m.Amount.Validate())
	return errs
}
