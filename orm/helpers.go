package orm

import (
	"encoding/binary"

	"github.com/contribute-dao/weft"
	"github.com/contribute-dao/weft/errors"
)

// EncodeID returns the 8 byte big endian form of a numeric id. Encoded ids
// sort like the numbers, so they can be used in keys.
func EncodeID(id uint64) []byte {
	var bz [8]byte
	binary.BigEndian.PutUint64(bz[:], id)
	return bz[:]
}

// DecodeID is the inverse of EncodeID.
func DecodeID(bz []byte) (uint64, error) {
	if len(bz) != 8 {
		return 0, errors.Wrapf(errors.ErrInput, "id of %d bytes", len(bz))
	}
	return binary.BigEndian.Uint64(bz), nil
}

// ConsumeIterator reads all remaining pairs and releases the iterator.
func ConsumeIterator(itr weft.Iterator) ([]weft.Model, error) {
	defer itr.Release()

	var res []weft.Model
	for {
		key, value, err := itr.Next()
		if errors.ErrIteratorDone.Is(err) {
			return res, nil
		}
		if err != nil {
			return nil, err
		}
		res = append(res, weft.Pair(key, value))
	}
}

func queryPrefix(db weft.ReadOnlyKVStore, prefix []byte) ([]weft.Model, error) {
	itr, err := db.Iterator(prefix, prefixRange(prefix))
	if err != nil {
		return nil, err
	}
	return ConsumeIterator(itr)
}

// prefixRange returns the exclusive end of the key range sharing the
// prefix. It is nil, meaning open, for an empty prefix or one made of 0xFF
// bytes only.
func prefixRange(prefix []byte) []byte {
	end := append([]byte(nil), prefix...)
	for i := len(end) - 1; i >= 0; i-- {
		if end[i] < 0xFF {
			end[i]++
			return end[:i+1]
		}
	}
	return nil
}
