package vault

import (
	"github.com/contribute-dao/weft"
	"github.com/contribute-dao/weft/codec"
	"github.com/contribute-dao/weft/coin"
	"github.com/contribute-dao/weft/errors"
)

func init() {
	codec.RegisterMsg(&AddPoolMsg{}, "vault/add_pool")
	codec.RegisterMsg(&SetPoolPointsMsg{}, "vault/set_pool_points")
	codec.RegisterMsg(&SettleMsg{}, "vault/settle")
	codec.RegisterMsg(&MassSettleMsg{}, "vault/mass_settle")
	codec.RegisterMsg(&DepositMsg{}, "vault/deposit")
	codec.RegisterMsg(&WithdrawMsg{}, "vault/withdraw")
	codec.RegisterMsg(&HarvestMsg{}, "vault/harvest")
	codec.RegisterMsg(&EmergencyWithdrawMsg{}, "vault/emergency_withdraw")
	codec.RegisterMsg(&UpdateConfigurationMsg{}, "vault/update_configuration")
}

func validateVault(errs error, name string) error {
	if !IsVaultName(name) {
		return errors.AppendField(errs, "Vault", errors.Wrapf(errors.ErrInput, "invalid vault name %q", name))
	}
	return errs
}

// AddPoolMsg appends a pool to a vault.
type AddPoolMsg struct {
	Vault      string
	Points     uint64
	Asset      Asset
	WithSettle bool
}

var _ weft.Msg = (*AddPoolMsg)(nil)

func (AddPoolMsg) Path() string                  { return "vault/add_pool" }
func (m *AddPoolMsg) Marshal() ([]byte, error)   { return codec.Marshal(m) }
func (m *AddPoolMsg) Unmarshal(raw []byte) error { return codec.Unmarshal(raw, m) }

func (m *AddPoolMsg) Validate() error {
	errs := validateVault(nil, m.Vault)
	return errors.AppendField(errs, "Asset", m.Asset.Validate())
}

// SetPoolPointsMsg changes the weight of a pool.
type SetPoolPointsMsg struct {
	Vault      string
	PoolID     uint64
	Points     uint64
	WithSettle bool
}

var _ weft.Msg = (*SetPoolPointsMsg)(nil)

func (SetPoolPointsMsg) Path() string                  { return "vault/set_pool_points" }
func (m *SetPoolPointsMsg) Marshal() ([]byte, error)   { return codec.Marshal(m) }
func (m *SetPoolPointsMsg) Unmarshal(raw []byte) error { return codec.Unmarshal(raw, m) }
func (m *SetPoolPointsMsg) Validate() error            { return validateVault(nil, m.Vault) }

// SettleMsg folds new income and settles a single pool.
type SettleMsg struct {
	Vault  string
	PoolID uint64
}

var _ weft.Msg = (*SettleMsg)(nil)

func (SettleMsg) Path() string                  { return "vault/settle" }
func (m *SettleMsg) Marshal() ([]byte, error)   { return codec.Marshal(m) }
func (m *SettleMsg) Unmarshal(raw []byte) error { return codec.Unmarshal(raw, m) }
func (m *SettleMsg) Validate() error            { return validateVault(nil, m.Vault) }

// MassSettleMsg settles every pool of a vault.
type MassSettleMsg struct {
	Vault string
}

var _ weft.Msg = (*MassSettleMsg)(nil)

func (MassSettleMsg) Path() string                  { return "vault/mass_settle" }
func (m *MassSettleMsg) Marshal() ([]byte, error)   { return codec.Marshal(m) }
func (m *MassSettleMsg) Unmarshal(raw []byte) error { return codec.Unmarshal(raw, m) }
func (m *MassSettleMsg) Validate() error            { return validateVault(nil, m.Vault) }

// DepositMsg stakes principal of the signer in a pool.
type DepositMsg struct {
	Vault  string
	PoolID uint64
	Amount coin.Amount
}

var _ weft.Msg = (*DepositMsg)(nil)

func (DepositMsg) Path() string                  { return "vault/deposit" }
func (m *DepositMsg) Marshal() ([]byte, error)   { return codec.Marshal(m) }
func (m *DepositMsg) Unmarshal(raw []byte) error { return codec.Unmarshal(raw, m) }
func (m *DepositMsg) Validate() error            { return validateVault(nil, m.Vault) }

// WithdrawMsg returns principal of the signer from a pool.
type WithdrawMsg struct {
	Vault  string
	PoolID uint64
	Amount coin.Amount
}

var _ weft.Msg = (*WithdrawMsg)(nil)

func (WithdrawMsg) Path() string                  { return "vault/withdraw" }
func (m *WithdrawMsg) Marshal() ([]byte, error)   { return codec.Marshal(m) }
func (m *WithdrawMsg) Unmarshal(raw []byte) error { return codec.Unmarshal(raw, m) }
func (m *WithdrawMsg) Validate() error            { return validateVault(nil, m.Vault) }

// HarvestMsg pays the pending reward of the signer.
type HarvestMsg struct {
	Vault  string
	PoolID uint64
}

var _ weft.Msg = (*HarvestMsg)(nil)

func (HarvestMsg) Path() string                  { return "vault/harvest" }
func (m *HarvestMsg) Marshal() ([]byte, error)   { return codec.Marshal(m) }
func (m *HarvestMsg) Unmarshal(raw []byte) error { return codec.Unmarshal(raw, m) }
func (m *HarvestMsg) Validate() error            { return validateVault(nil, m.Vault) }

// EmergencyWithdrawMsg returns the whole principal of the signer and
// forfeits the pending reward.
type EmergencyWithdrawMsg struct {
	Vault  string
	PoolID uint64
}

var _ weft.Msg = (*EmergencyWithdrawMsg)(nil)

func (EmergencyWithdrawMsg) Path() string                  { return "vault/emergency_withdraw" }
func (m *EmergencyWithdrawMsg) Marshal() ([]byte, error)   { return codec.Marshal(m) }
func (m *EmergencyWithdrawMsg) Unmarshal(raw []byte) error { return codec.Unmarshal(raw, m) }
func (m *EmergencyWithdrawMsg) Validate() error            { return validateVault(nil, m.Vault) }

// UpdateConfigurationMsg patches the vault configuration.
type UpdateConfigurationMsg struct {
	Patch *Configuration
}

var _ weft.Msg = (*UpdateConfigurationMsg)(nil)

func (UpdateConfigurationMsg) Path() string                  { return "vault/update_configuration" }
func (m *UpdateConfigurationMsg) Marshal() ([]byte, error)   { return codec.Marshal(m) }
func (m *UpdateConfigurationMsg) Unmarshal(raw []byte) error { return codec.Unmarshal(raw, m) }

func (m *UpdateConfigurationMsg) Validate() error {
	if m.Patch == nil {
		return errors.Wrap(errors.ErrEmpty, "patch")
	}
	return nil
}
