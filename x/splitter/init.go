package splitter

import (
	"github.com/contribute-dao/weft"
	"github.com/contribute-dao/weft/errors"
	"github.com/contribute-dao/weft/gconf"
)

// Initializer fulfils the Initializer interface to load data from
// the genesis file
type Initializer struct{}

var _ weft.Initializer = Initializer{}

// FromGenesis stores the splitter configuration found in the "conf" section
// and starts the running totals from zero. The treasury schedule starts at
// the genesis time.
func (Initializer) FromGenesis(opts weft.Options, params weft.GenesisParams, kv weft.KVStore) error {
	var conf Configuration
	if err := gconf.InitConfig(kv, opts, confPkg, &conf); err != nil {
		return errors.Wrap(err, "init config")
	}
	st := &State{LastUpdate: params.Time, ScheduleAnchor: params.Time}
	if err := NewStateBucket().Put(kv, stateKey, st); err != nil {
		return errors.Wrap(err, "save state")
	}
	return nil
}
