/*
Package orm stores typed models in prefixed sections of the key value store,
called buckets. A bucket holds one model type under the keys
"<bucket>:<key>" and can be exposed to abci queries by key or by key prefix.
*/
package orm

import (
	"fmt"
	"regexp"

	"github.com/contribute-dao/weft"
	"github.com/contribute-dao/weft/errors"
)

var isBucketName = regexp.MustCompile(`^[a-z_]{3,10}$`).MatchString

// Bucket gives raw access to the values under one prefix. Modules use it
// through a ModelBucket, which adds the (de)serialization.
type Bucket struct {
	prefix []byte
	name   string
}

var _ weft.QueryHandler = Bucket{}

// NewBucket panics unless the name has 3 to 10 lower case letters or
// underscores.
func NewBucket(name string) Bucket {
	if !isBucketName(name) {
		panic(fmt.Sprintf("invalid bucket name %q", name))
	}
	return Bucket{name: name, prefix: []byte(name + ":")}
}

// Register exposes the bucket to queries at "/<name>". An empty name uses
// the bucket name.
func (b Bucket) Register(name string, r weft.QueryRouter) {
	if name == "" {
		name = b.name
	}
	r.Register("/"+name, b)
}

// Query returns the value of a key, or with the prefix mod all values
// whose key starts with data. A missing key is an empty result.
func (b Bucket) Query(db weft.ReadOnlyKVStore, mod string, data []byte) ([]weft.Model, error) {
	key := b.DBKey(data)
	switch mod {
	case weft.KeyQueryMod:
		value, err := db.Get(key)
		if err != nil || value == nil {
			return nil, err
		}
		return []weft.Model{weft.Pair(key, value)}, nil
	case weft.PrefixQueryMod:
		return queryPrefix(db, key)
	}
	return nil, errors.Wrapf(errors.ErrInput, "unknown query mod %q", mod)
}

// DBKey returns the prefixed key. The result never shares memory with key
// or with the results of previous calls.
func (b Bucket) DBKey(key []byte) []byte {
	out := make([]byte, 0, len(b.prefix)+len(key))
	return append(append(out, b.prefix...), key...)
}

// Get returns the raw value stored under the key, or nil.
func (b Bucket) Get(db weft.ReadOnlyKVStore, key []byte) ([]byte, error) {
	return db.Get(b.DBKey(key))
}

// Set writes the raw value under the key.
func (b Bucket) Set(db weft.KVStore, key, value []byte) error {
	return db.Set(b.DBKey(key), value)
}

// Delete removes the key.
func (b Bucket) Delete(db weft.KVStore, key []byte) error {
	return db.Delete(b.DBKey(key))
}

// Iterate calls fn for every entry whose key starts with the given prefix, in
// ascending key order. Keys passed to fn have the bucket prefix stripped.
func (b Bucket) Iterate(db weft.ReadOnlyKVStore, prefix []byte, fn func(key, value []byte) error) error {
	start := b.DBKey(prefix)
	it, err := db.Iterator(start, prefixRange(start))
	if err != nil {
		return err
	}
	defer it.Release()

	for {
		key, value, err := it.Next()
		switch {
		case errors.ErrIteratorDone.Is(err):
			return nil
		case err != nil:
			return err
		}
		if err := fn(key[len(b.prefix):], value); err != nil {
			return err
		}
	}
}
