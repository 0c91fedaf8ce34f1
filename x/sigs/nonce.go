package sigs

import (
	"github.com/contribute-dao/weft"
	"github.com/contribute-dao/weft/errors"
)

// NextNonce returns the sequence the next signature of the address must
// use. A key that never signed starts at zero. The keeper reads it through
// the client store before every submission.
func NextNonce(db weft.ReadOnlyKVStore, signer weft.Address) (int64, error) {
	var user UserData
	err := NewBucket().One(db, signer, &user)
	switch {
	case errors.ErrNotFound.Is(err):
		return 0, nil
	case err != nil:
		return 0, errors.Wrap(err, "load signer")
	}
	return user.Sequence, nil
}
