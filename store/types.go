/*
Package store implements the cache layers of the application state. A cache
wrap buffers the writes of a block or a transaction in a btree until they
are written to the parent store or discarded.
*/
package store

import "github.com/contribute-dao/weft"

type (
	ReadOnlyKVStore  = weft.ReadOnlyKVStore
	SetDeleter       = weft.SetDeleter
	KVStore          = weft.KVStore
	Batch            = weft.Batch
	Iterator         = weft.Iterator
	CacheableKVStore = weft.CacheableKVStore
	KVCacheWrap      = weft.KVCacheWrap
	CommitKVStore    = weft.CommitKVStore
	CommitID         = weft.CommitID
	Model            = weft.Model
)
