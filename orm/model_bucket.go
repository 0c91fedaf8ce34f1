package orm

import (
	"reflect"

	"github.com/contribute-dao/weft"
	"github.com/contribute-dao/weft/errors"
)

// Model is an entity a ModelBucket can store. It is validated before every
// write.
type Model interface {
	weft.Persistent
	Validate() error
}

// ModelBucket stores models of a single type. Every method taking a model
// fails with ErrType when it is of another type than the bucket prototype.
type ModelBucket interface {
	// One loads the model stored under key into dest, or fails with
	// ErrNotFound.
	One(db weft.ReadOnlyKVStore, key []byte, dest Model) error
	// Has returns nil if the key exists and ErrNotFound otherwise.
	Has(db weft.ReadOnlyKVStore, key []byte) error
	Put(db weft.KVStore, key []byte, m Model) error
	// Delete fails with ErrNotFound when there is nothing to delete.
	Delete(db weft.KVStore, key []byte) error
	// Iterate passes every model whose key starts with prefix to fn, in
	// key order. Each call gets a new model instance. An error returned by
	// fn stops the iteration and is returned.
	Iterate(db weft.ReadOnlyKVStore, prefix []byte, fn func(key []byte, m Model) error) error
	Register(name string, r weft.QueryRouter)
}

// NewModelBucket returns a bucket of models of the prototype type.
func NewModelBucket(name string, proto Model) ModelBucket {
	return &modelBucket{
		b:     NewBucket(name),
		model: reflect.TypeOf(proto),
	}
}

type modelBucket struct {
	b     Bucket
	model reflect.Type
}

func (mb *modelBucket) One(db weft.ReadOnlyKVStore, key []byte, dest Model) error {
	if t := reflect.TypeOf(dest); t != mb.model {
		return errors.Wrapf(errors.ErrType, "cannot load %s into %s", mb.model, t)
	}
	raw, err := mb.b.Get(db, key)
	if err != nil {
		return errors.Wrap(err, "load")
	}
	if raw == nil {
		return errors.Wrapf(errors.ErrNotFound, "%T not in the store", dest)
	}
	reflect.ValueOf(dest).Elem().Set(reflect.Zero(mb.model.Elem()))
	if err := dest.Unmarshal(raw); err != nil {
		return errors.Wrapf(err, "unmarshal %T", dest)
	}
	return nil
}

func (mb *modelBucket) Has(db weft.ReadOnlyKVStore, key []byte) error {
	ok, err := db.Has(mb.b.DBKey(key))
	if err != nil {
		return errors.Wrap(err, "has")
	}
	if !ok {
		return errors.Wrapf(errors.ErrNotFound, "%s not in the store", mb.model)
	}
	return nil
}

func (mb *modelBucket) Put(db weft.KVStore, key []byte, m Model) error {
	if t := reflect.TypeOf(m); t != mb.model {
		return errors.Wrapf(errors.ErrType, "cannot store %s in %s bucket", t, mb.model)
	}
	if len(key) == 0 {
		return errors.Wrap(errors.ErrEmpty, "key")
	}
	if err := m.Validate(); err != nil {
		return errors.Wrap(err, "invalid model")
	}
	raw, err := m.Marshal()
	if err != nil {
		return errors.Wrap(err, "serialize")
	}
	if err := mb.b.Set(db, key, raw); err != nil {
		return errors.Wrap(err, "store")
	}
	return nil
}

func (mb *modelBucket) Delete(db weft.KVStore, key []byte) error {
	if err := mb.Has(db, key); err != nil {
		return err
	}
	return mb.b.Delete(db, key)
}

func (mb *modelBucket) Iterate(db weft.ReadOnlyKVStore, prefix []byte, fn func(key []byte, m Model) error) error {
	return mb.b.Iterate(db, prefix, func(key, value []byte) error {
		m := reflect.New(mb.model.Elem()).Interface().(Model)
		if err := m.Unmarshal(value); err != nil {
			return errors.Wrapf(err, "unmarshal %T", m)
		}
		return fn(key, m)
	})
}

func (mb *modelBucket) Register(name string, r weft.QueryRouter) {
	mb.b.Register(name, r)
}

var _ ModelBucket = (*modelBucket)(nil)
