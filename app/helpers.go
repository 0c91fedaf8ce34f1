package app

import (
	"github.com/contribute-dao/weft"
	"github.com/contribute-dao/weft/errors"
	"github.com/contribute-dao/weft/store"
	abci "github.com/tendermint/tendermint/abci/types"
)

// RegisterQuery exposes the raw store under "/". Keys are full database
// keys, including the bucket prefix.
func RegisterQuery(qr weft.QueryRouter) {
	qr.Register("/", rawQuery{})
}

type rawQuery struct{}

func (rawQuery) Query(db weft.ReadOnlyKVStore, mod string, data []byte) ([]weft.Model, error) {
	switch mod {
	case weft.KeyQueryMod:
		value, err := db.Get(data)
		if err != nil {
			return nil, err
		}
		if value == nil {
			return nil, nil
		}
		return []weft.Model{weft.Pair(data, value)}, nil
	case weft.PrefixQueryMod:
		var end []byte
		if len(data) > 0 {
			end = prefixEnd(data)
		}
		it, err := db.Iterator(data, end)
		if err != nil {
			return nil, err
		}
		defer it.Release()
		var res []weft.Model
		for {
			key, value, err := it.Next()
			if errors.ErrIteratorDone.Is(err) {
				return res, nil
			}
			if err != nil {
				return nil, err
			}
			res = append(res, weft.Pair(key, value))
		}
	default:
		return nil, errors.Wrapf(errors.ErrInput, "unknown mod: %s", mod)
	}
}

// prefixEnd returns the first key after every key starting with prefix, or
// nil if there is none.
func prefixEnd(prefix []byte) []byte {
	end := make([]byte, len(prefix))
	copy(end, prefix)
	for i := len(end) - 1; i >= 0; i-- {
		end[i]++
		if end[i] != 0 {
			return end[:i+1]
		}
	}
	return nil
}

// Querier is anything that answers ABCI queries: the application itself or a
// node client.
type Querier interface {
	Query(abci.RequestQuery) abci.ResponseQuery
}

// ABCIStore exposes the raw "/" query of a Querier as a ReadOnlyKVStore, so
// that bucket code can read remote state.
type ABCIStore struct {
	q Querier
}

var _ weft.ReadOnlyKVStore = (*ABCIStore)(nil)

// NewABCIStore returns a store reading through the given querier.
func NewABCIStore(q Querier) *ABCIStore {
	return &ABCIStore{q: q}
}

// Get will query for exactly one value over the abci store.
func (a *ABCIStore) Get(key []byte) ([]byte, error) {
	query := a.q.Query(abci.RequestQuery{
		Path: "/",
		Data: key,
	})
	if query.Code != errors.SuccessABCICode {
		return nil, errors.Wrap(errors.ErrNetwork, query.Log)
	}
	var value ResultSet
	if err := value.Unmarshal(query.Value); err != nil {
		return nil, errors.Wrap(err, "unmarshal result set")
	}
	if len(value.Results) == 0 {
		return nil, nil
	}
	return value.Results[0], nil
}

// Has returns true if the given key in in the abci app store
func (a *ABCIStore) Has(key []byte) (bool, error) {
	v, err := a.Get(key)
	return len(v) > 0, err
}

// Iterator only supports prefix ranges, as this is all the query protocol
// can express. The end must be nil or the end of the prefix range of start.
func (a *ABCIStore) Iterator(start, end []byte) (weft.Iterator, error) {
	models, err := a.prefix(start, end)
	if err != nil {
		return nil, err
	}
	return store.NewSliceIterator(models), nil
}

// ReverseIterator is the same as Iterator, in descending key order.
func (a *ABCIStore) ReverseIterator(start, end []byte) (weft.Iterator, error) {
	models, err := a.prefix(start, end)
	if err != nil {
		return nil, err
	}
	for i, j := 0, len(models)-1; i < j; i, j = i+1, j-1 {
		models[i], models[j] = models[j], models[i]
	}
	return store.NewSliceIterator(models), nil
}

func (a *ABCIStore) prefix(start, end []byte) ([]weft.Model, error) {
	if start != nil && string(end) != string(prefixEnd(start)) {
		return nil, errors.Wrap(errors.ErrInput, "only prefix ranges are supported")
	}
	if start == nil && end != nil {
		return nil, errors.Wrap(errors.ErrInput, "only prefix ranges are supported")
	}
	query := a.q.Query(abci.RequestQuery{
		Path: "/?" + weft.PrefixQueryMod,
		Data: start,
	})
	if query.Code != errors.SuccessABCICode {
		return nil, errors.Wrap(errors.ErrNetwork, query.Log)
	}
	var k, v ResultSet
	if err := k.Unmarshal(query.Key); err != nil {
		return nil, errors.Wrap(err, "cannot unmarshal keys")
	}
	if err := v.Unmarshal(query.Value); err != nil {
		return nil, errors.Wrap(err, "cannot unmarshal values")
	}
	return JoinResults(&k, &v)
}
