package weft

import (
	"encoding/json"

	"github.com/contribute-dao/weft/errors"
)

// Handler processes the messages routed to it. Check validates a
// transaction for the mempool and Deliver executes it.
type Handler interface {
	Checker
	Deliverer
}

type Checker interface {
	Check(ctx Context, store KVStore, tx Tx) (*CheckResult, error)
}

type Deliverer interface {
	Deliver(ctx Context, store KVStore, tx Tx) (*DeliverResult, error)
}

// Decorator runs before a handler and decides whether, and with which
// context, the next step is called. Signature checks, savepoints and panic
// recovery are decorators.
type Decorator interface {
	Check(ctx Context, store KVStore, tx Tx, next Checker) (*CheckResult, error)
	Deliver(ctx Context, store KVStore, tx Tx, next Deliverer) (*DeliverResult, error)
}

// Registry binds message paths to handlers. Each module exposes a
// RegisterRoutes function taking a Registry.
type Registry interface {
	Handle(m Msg, h Handler)
}

// Options is the application state of the genesis file, split by module.
type Options map[string]json.RawMessage

// ReadOptions decodes the section stored under key into obj. A missing
// section leaves obj untouched.
func (o Options) ReadOptions(key string, obj interface{}) error {
	raw, ok := o[key]
	if !ok || len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, obj); err != nil {
		return errors.Wrapf(errors.ErrInput, "options %q: %s", key, err)
	}
	return nil
}

// Initializer loads the genesis state of a module.
type Initializer interface {
	FromGenesis(Options, GenesisParams, KVStore) error
}

// GenesisParams carries the values of the genesis file that are not part
// of the application state.
type GenesisParams struct {
	Height int64
	Time   UnixTime
}

// ChainInitializers runs all initializers in order and stops at the first
// failure.
func ChainInitializers(inits ...Initializer) Initializer {
	return initializers(inits)
}

type initializers []Initializer

func (all initializers) FromGenesis(opts Options, params GenesisParams, kv KVStore) error {
	for _, init := range all {
		if err := init.FromGenesis(opts, params, kv); err != nil {
			return err
		}
	}
	return nil
}
