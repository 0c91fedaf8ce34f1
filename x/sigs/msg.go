package sigs

import (
	"github.com/contribute-dao/weft"
	"github.com/contribute-dao/weft/codec"
	"github.com/contribute-dao/weft/errors"
)

func init() {
	codec.RegisterMsg(&BumpSequenceMsg{}, "sigs/bump_sequence")
}

const (
	maxSequenceIncrement = 1000
	minSequenceIncrement = 1
)

// BumpSequenceMsg increments the sequence of the signer, invalidating every
// transaction signed for the skipped values.
type BumpSequenceMsg struct {
	Increment uint32
}

var _ weft.Msg = (*BumpSequenceMsg)(nil)

func (BumpSequenceMsg) Path() string {
	return "sigs/bump_sequence"
}

func (m *BumpSequenceMsg) Marshal() ([]byte, error)   { return codec.Marshal(m) }
func (m *BumpSequenceMsg) Unmarshal(raw []byte) error { return codec.Unmarshal(raw, m) }

func (m *BumpSequenceMsg) Validate() error {
	if m.Increment < minSequenceIncrement {
		return errors.Wrapf(errors.ErrMsg, "increment must be at least %d", minSequenceIncrement)
	}
	if m.Increment > maxSequenceIncrement {
		return errors.Wrapf(errors.ErrMsg, "increment must not be greater than %d", maxSequenceIncrement)
	}
	return nil
}
