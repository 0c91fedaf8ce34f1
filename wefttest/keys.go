package wefttest

import (
	"github.com/contribute-dao/weft"
	"github.com/contribute-dao/weft/crypto"
)

// NewKey returns a random ed25519 key.
func NewKey() *crypto.PrivateKey {
	return crypto.GenPrivKeyEd25519()
}

// NewCondition returns the signature condition of a random key, which is
// as good as a fresh account for authorization tests.
func NewCondition() weft.Condition {
	return NewKey().PublicKey().Condition()
}
