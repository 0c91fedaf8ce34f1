/*
Package bech32 converts addresses to and from their human readable form,
for example weft1w3jhxapdwpshjmr0v9jqt9g3mh.
*/
package bech32

import (
	"github.com/btcsuite/btcutil/bech32"
	"github.com/contribute-dao/weft/errors"
)

// Decode returns the human readable prefix and the payload of an encoded
// string.
func Decode(enc string) (hrp string, payload []byte, err error) {
	hrp, words, err := bech32.Decode(enc)
	if err != nil {
		return "", nil, errors.Wrap(errors.ErrInput, err.Error())
	}
	if payload, err = bech32.ConvertBits(words, 5, 8, false); err != nil {
		return "", nil, errors.Wrap(errors.ErrInput, err.Error())
	}
	return hrp, payload, nil
}

// Encode returns the payload encoded with the given prefix.
func Encode(hrp string, payload []byte) (string, error) {
	words, err := bech32.ConvertBits(payload, 8, 5, true)
	if err != nil {
		return "", errors.Wrap(err, "convert bits")
	}
	enc, err := bech32.Encode(hrp, words)
	if err != nil {
		return "", errors.Wrap(errors.ErrInput, err.Error())
	}
	return enc, nil
}
