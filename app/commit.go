package app

import (
	"github.com/contribute-dao/weft"
	"github.com/contribute-dao/weft/errors"
)

// CommitStore keeps the two working copies of the committed state: one
// for the transactions of the current block and one for the mempool
// checks. Commit persists the block copy and drops the mempool one.
type CommitStore struct {
	committed weft.CommitKVStore
	deliver   weft.KVCacheWrap
	check     weft.KVCacheWrap
}

// NewCommitStore loads the latest version of the store.
func NewCommitStore(store weft.CommitKVStore) (*CommitStore, error) {
	if err := store.LoadLatestVersion(); err != nil {
		return nil, errors.Wrap(err, "load latest version")
	}
	return &CommitStore{
		committed: store,
		deliver:   store.CacheWrap(),
		check:     store.CacheWrap(),
	}, nil
}

// CommitInfo returns the height and hash of the last commit.
func (cs *CommitStore) CommitInfo() (weft.CommitID, error) {
	return cs.committed.LatestVersion()
}

func (cs *CommitStore) Commit() (weft.CommitID, error) {
	if err := cs.deliver.Write(); err != nil {
		return weft.CommitID{}, errors.Wrap(err, "write deliver cache")
	}
	cs.check.Discard()

	id, err := cs.committed.Commit()
	if err != nil {
		return id, errors.Wrap(err, "commit")
	}
	cs.deliver = cs.committed.CacheWrap()
	cs.check = cs.committed.CacheWrap()
	return id, nil
}

// CheckStore is used by CheckTx.
func (cs *CommitStore) CheckStore() weft.CacheableKVStore {
	return cs.check
}

// DeliverStore is used by InitChain and DeliverTx.
func (cs *CommitStore) DeliverStore() weft.CacheableKVStore {
	return cs.deliver
}

// chainIDKey lives under the _wf: prefix reserved for application data
// that no bucket can reach.
var chainIDKey = []byte("_wf:chainID")

func loadChainID(db weft.ReadOnlyKVStore) (string, error) {
	raw, err := db.Get(chainIDKey)
	if err != nil {
		return "", errors.Wrap(err, "load chain id")
	}
	return string(raw), nil
}

// saveChainID sets the chain id once, at genesis.
func saveChainID(db weft.KVStore, chainID string) error {
	if !weft.IsValidChainID(chainID) {
		return errors.Wrapf(errors.ErrInput, "chain id %q", chainID)
	}
	switch exists, err := db.Has(chainIDKey); {
	case err != nil:
		return errors.Wrap(err, "load chain id")
	case exists:
		return errors.Wrap(errors.ErrUnauthorized, "chain id is set at genesis only")
	}
	return errors.Wrap(db.Set(chainIDKey, []byte(chainID)), "save chain id")
}
