package splitter

import (
	"github.com/contribute-dao/weft"
	"github.com/contribute-dao/weft/codec"
	"github.com/contribute-dao/weft/errors"
)

func init() {
	codec.RegisterMsg(&UpdateMsg{}, "splitter/update")
	codec.RegisterMsg(&SetTrigFeeBpsMsg{}, "splitter/set_trig_fee_bps")
	codec.RegisterMsg(&SetTreasuryMsg{}, "splitter/set_treasury")
	codec.RegisterMsg(&UpdateConfigurationMsg{}, "splitter/update_configuration")
}

// UpdateMsg splits the collected fees. The signer is the keeper.
type UpdateMsg struct{}

var _ weft.Msg = (*UpdateMsg)(nil)

func (UpdateMsg) Path() string                  { return "splitter/update" }
func (m *UpdateMsg) Marshal() ([]byte, error)   { return codec.Marshal(m) }
func (m *UpdateMsg) Unmarshal(raw []byte) error { return codec.Unmarshal(raw, m) }
func (m *UpdateMsg) Validate() error            { return nil }

// SetTrigFeeBpsMsg changes the trig vault share.
type SetTrigFeeBpsMsg struct {
	Bps uint64
}

var _ weft.Msg = (*SetTrigFeeBpsMsg)(nil)

func (SetTrigFeeBpsMsg) Path() string                  { return "splitter/set_trig_fee_bps" }
func (m *SetTrigFeeBpsMsg) Marshal() ([]byte, error)   { return codec.Marshal(m) }
func (m *SetTrigFeeBpsMsg) Unmarshal(raw []byte) error { return codec.Unmarshal(raw, m) }

func (m *SetTrigFeeBpsMsg) Validate() error {
	return errors.Field("Bps", validateTrigFeeBps(m.Bps), "out of bounds")
}

// SetTreasuryMsg rotates the treasury address.
type SetTreasuryMsg struct {
	Treasury weft.Address
}

var _ weft.Msg = (*SetTreasuryMsg)(nil)

func (SetTreasuryMsg) Path() string                  { return "splitter/set_treasury" }
func (m *SetTreasuryMsg) Marshal() ([]byte, error)   { return codec.Marshal(m) }
func (m *SetTreasuryMsg) Unmarshal(raw []byte) error { return codec.Unmarshal(raw, m) }

func (m *SetTreasuryMsg) Validate() error {
	return errors.AppendField(nil, "Treasury", m.Treasury.Validate())
}

// UpdateConfigurationMsg patches the splitter configuration.
type UpdateConfigurationMsg struct {
	Patch *Configuration
}

var _ weft.Msg = (*UpdateConfigurationMsg)(nil)

func (UpdateConfigurationMsg) Path() string                  { return "splitter/update_configuration" }
func (m *UpdateConfigurationMsg) Marshal() ([]byte, error)   { return codec.Marshal(m) }
func (m *UpdateConfigurationMsg) Unmarshal(raw []byte) error { return codec.Unmarshal(raw, m) }

func (m *UpdateConfigurationMsg) Validate() error {
	if m.Patch == nil {
		return errors.Wrap(errors.ErrEmpty, "patch")
	}
	return nil
}
