package vault

import (
	"github.com/contribute-dao/weft"
	"github.com/contribute-dao/weft/codec"
	"github.com/contribute-dao/weft/errors"
	"github.com/contribute-dao/weft/gconf"
)

const confPkg = "vault"

// Configuration is the on-chain configuration of the vault extension.
type Configuration struct {
	// Admin may add pools and change their points.
	Admin weft.Address `json:"admin"`
}

var _ gconf.OwnedConfig = (*Configuration)(nil)

func (c *Configuration) Marshal() ([]byte, error)   { return codec.Marshal(c) }
func (c *Configuration) Unmarshal(raw []byte) error { return codec.Unmarshal(raw, c) }
func (c *Configuration) GetOwner() weft.Address     { return c.Admin }

func (c *Configuration) Validate() error {
	return errors.AppendField(nil, "Admin", c.Admin.Validate())
}

func loadConf(db gconf.ReadStore) (*Configuration, error) {
	var conf Configuration
	if err := gconf.Load(db, confPkg, &conf); err != nil {
		return nil, errors.Wrap(err, "load configuration")
	}
	return &conf, nil
}
