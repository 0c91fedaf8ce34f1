package orm

import (
	"bytes"

	"github.com/contribute-dao/weft"
	"github.com/contribute-dao/weft/errors"
)

const uniqueIdxPrefix = "_i."

// UniqueIndex maps an arbitrary value to exactly one primary key. It is
// maintained explicitly by the owner of the indexed bucket, using Insert when
// an entity is created and Delete when it is removed.
type UniqueIndex struct {
	name string
	id   []byte
}

// NewUniqueIndex returns an index stored under the "_i.<name>:" prefix.
func NewUniqueIndex(name string) UniqueIndex {
	if !isBucketName(name) {
		panic("Illegal index: " + name)
	}
	return UniqueIndex{
		name: name,
		id:   []byte(uniqueIdxPrefix + name + ":"),
	}
}

func (u UniqueIndex) dbKey(value []byte) []byte {
	out := make([]byte, len(u.id)+len(value))
	copy(out, u.id)
	copy(out[len(u.id):], value)
	return out
}

// Insert binds value to the primary key. It returns ErrDuplicate if the value
// is already bound to a different key.
func (u UniqueIndex) Insert(db weft.KVStore, value, primary []byte) error {
	key := u.dbKey(value)
	prev, err := db.Get(key)
	if err != nil {
		return errors.Wrap(err, "cannot read index")
	}
	if prev != nil && !bytes.Equal(prev, primary) {
		return errors.Wrapf(errors.ErrDuplicate, "%s index: value already indexed", u.name)
	}
	return db.Set(key, primary)
}

// Get returns the primary key bound to value or ErrNotFound.
func (u UniqueIndex) Get(db weft.ReadOnlyKVStore, value []byte) ([]byte, error) {
	primary, err := db.Get(u.dbKey(value))
	if err != nil {
		return nil, errors.Wrap(err, "cannot read index")
	}
	if primary == nil {
		return nil, errors.Wrapf(errors.ErrNotFound, "%s index", u.name)
	}
	return primary, nil
}

// Delete removes the binding of given value.
func (u UniqueIndex) Delete(db weft.KVStore, value []byte) error {
	return db.Delete(u.dbKey(value))
}

// Query handles key lookups from the QueryRouter.
func (u UniqueIndex) Query(db weft.ReadOnlyKVStore, mod string, data []byte) ([]weft.Model, error) {
	switch mod {
	case weft.KeyQueryMod:
		key := u.dbKey(data)
		value, err := db.Get(key)
		if err != nil || value == nil {
			return nil, err
		}
		return []weft.Model{weft.Pair(key, value)}, nil
	case weft.PrefixQueryMod:
		return queryPrefix(db, u.dbKey(data))
	default:
		return nil, errors.Wrapf(errors.ErrInput, "unknown mod: %s", mod)
	}
}

var _ weft.QueryHandler = UniqueIndex{}
