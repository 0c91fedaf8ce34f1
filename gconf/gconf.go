package gconf

import (
	"github.com/contribute-dao/weft"
	"github.com/contribute-dao/weft/errors"
)

// ReadStore is the part of a store Load needs. app.ABCIStore and every
// weft.KVStore satisfy it.
type ReadStore interface {
	Get([]byte) ([]byte, error)
}

type Store interface {
	ReadStore
	Set([]byte, []byte) error
}

// Configuration is a module configuration entity.
type Configuration interface {
	Marshal() ([]byte, error)
	Unmarshal([]byte) error
	Validate() error
}

// Key returns the database key holding the configuration of a module.
func Key(pkg string) []byte {
	return append([]byte("_c:"), pkg...)
}

// Save validates the configuration and stores it for the module. An
// invalid configuration is never written.
func Save(db Store, pkg string, conf Configuration) error {
	if err := conf.Validate(); err != nil {
		return errors.Wrapf(err, "%s configuration", pkg)
	}
	raw, err := conf.Marshal()
	if err != nil {
		return errors.Wrapf(err, "serialize %s configuration", pkg)
	}
	return db.Set(Key(pkg), raw)
}

// Load reads the configuration of a module into dst. ErrNotFound is
// returned when none was saved.
func Load(db ReadStore, pkg string, dst Configuration) error {
	raw, err := db.Get(Key(pkg))
	switch {
	case err != nil:
		return err
	case raw == nil:
		return errors.Wrapf(errors.ErrNotFound, "%s configuration", pkg)
	}
	if err := dst.Unmarshal(raw); err != nil {
		return errors.Wrapf(err, "decode %s configuration", pkg)
	}
	return nil
}

// InitConfig stores the genesis configuration of a module, found under
// "conf" and then the module name. A module without genesis configuration
// fails with ErrNotFound.
func InitConfig(db Store, opts weft.Options, pkg string, conf Configuration) error {
	var modules weft.Options
	if err := opts.ReadOptions("conf", &modules); err != nil {
		return err
	}
	if _, ok := modules[pkg]; !ok {
		return errors.Wrapf(errors.ErrNotFound, "no %s configuration in genesis", pkg)
	}
	if err := modules.ReadOptions(pkg, conf); err != nil {
		return err
	}
	return Save(db, pkg, conf)
}
