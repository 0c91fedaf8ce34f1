package app

import (
	"github.com/contribute-dao/weft"
	"github.com/contribute-dao/weft/errors"
	"github.com/gogo/protobuf/proto"
)

// ResultSet is the list of keys or values returned by a query. It is
// encoded as a protobuf message with a single repeated bytes field, so that
// any protobuf client can decode it.
type ResultSet struct {
	Results [][]byte
}

const resultsFieldTag = 1<<3 | 2 // field 1, length delimited

// Marshal encodes the result set.
func (r *ResultSet) Marshal() ([]byte, error) {
	var out []byte
	for _, res := range r.Results {
		out = append(out, proto.EncodeVarint(resultsFieldTag)...)
		out = append(out, proto.EncodeVarint(uint64(len(res)))...)
		out = append(out, res...)
	}
	return out, nil
}

// Unmarshal decodes a result set. Unknown fields are rejected.
func (r *ResultSet) Unmarshal(raw []byte) error {
	r.Results = nil
	for len(raw) > 0 {
		tag, n := proto.DecodeVarint(raw)
		if n == 0 {
			return errors.Wrap(errors.ErrInput, "truncated field tag")
		}
		if tag != resultsFieldTag {
			return errors.Wrapf(errors.ErrInput, "unexpected field tag %d", tag)
		}
		raw = raw[n:]
		size, n := proto.DecodeVarint(raw)
		if n == 0 || uint64(len(raw)-n) < size {
			return errors.Wrap(errors.ErrInput, "truncated result")
		}
		raw = raw[n:]
		res := make([]byte, size)
		copy(res, raw[:size])
		r.Results = append(r.Results, res)
		raw = raw[size:]
	}
	return nil
}

// ResultsFromKeys returns a ResultSet of all keys
// given a set of models
func ResultsFromKeys(models []weft.Model) *ResultSet {
	res := make([][]byte, len(models))
	for i, m := range models {
		res[i] = m.Key
	}
	return &ResultSet{Results: res}
}

// ResultsFromValues returns a ResultSet of all values
// given a set of models
func ResultsFromValues(models []weft.Model) *ResultSet {
	res := make([][]byte, len(models))
	for i, m := range models {
		res[i] = m.Value
	}
	return &ResultSet{Results: res}
}

// JoinResults inverts ResultsFromKeys and ResultsFromValues
// and makes then a consistent whole again
func JoinResults(keys, values *ResultSet) ([]weft.Model, error) {
	kref, vref := keys.Results, values.Results
	if len(kref) != len(vref) {
		return nil, errors.Wrapf(errors.ErrInput, "%d keys and %d values", len(kref), len(vref))
	}
	mods := make([]weft.Model, len(kref))
	for i := range mods {
		mods[i] = weft.Model{
			Key:   kref[i],
			Value: vref[i],
		}
	}
	return mods, nil
}

// UnmarshalOneResult will parse a resultset, and
// it if is not empty, unmarshal the first result into o
func UnmarshalOneResult(bz []byte, o weft.Persistent) error {
	var res ResultSet
	if err := res.Unmarshal(bz); err != nil {
		return err
	}
	if len(res.Results) == 0 {
		return errors.Wrap(errors.ErrNotFound, "empty result set")
	}
	return o.Unmarshal(res.Results[0])
}
