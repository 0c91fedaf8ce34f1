package sigs

import (
	"crypto/sha512"
	"encoding/binary"

	"github.com/contribute-dao/weft"
	"github.com/contribute-dao/weft/crypto"
	"github.com/contribute-dao/weft/errors"
)

// signVersion prefixes every signed payload. A new version must use a new
// prefix so that old signatures cannot be replayed in the new format.
var signVersion = [4]byte{0, 0xCA, 0xFE, 0}

// BuildSignBytes returns the digest a key signs for a transaction. The
// digest is the sha512 of
//
//	version (4) | len(chain id) (1) | chain id | sequence (8, big endian) | tx
//
// so a signature is bound to one chain and one sequence value.
func BuildSignBytes(txBytes []byte, chainID string, seq int64) ([]byte, error) {
	if seq < 0 {
		return nil, errors.Wrap(ErrInvalidSequence, "negative")
	}
	if !weft.IsValidChainID(chainID) {
		return nil, errors.Wrapf(errors.ErrInput, "chain id %q", chainID)
	}

	h := sha512.New()
	h.Write(signVersion[:])
	h.Write([]byte{byte(len(chainID))})
	h.Write([]byte(chainID))
	var seqBytes [8]byte
	binary.BigEndian.PutUint64(seqBytes[:], uint64(seq))
	h.Write(seqBytes[:])
	h.Write(txBytes)
	return h.Sum(nil), nil
}

// SignTx signs the transaction for the given chain and sequence. The
// signature is not attached to the transaction.
func SignTx(signer crypto.Signer, tx SignedTx, chainID string, seq int64) (*StdSignature, error) {
	txBytes, err := tx.GetSignBytes()
	if err != nil {
		return nil, errors.Wrap(err, "sign bytes")
	}
	digest, err := BuildSignBytes(txBytes, chainID, seq)
	if err != nil {
		return nil, err
	}
	sig, err := signer.Sign(digest)
	if err != nil {
		return nil, errors.Wrap(err, "sign")
	}
	return &StdSignature{Pubkey: signer.PublicKey(), Signature: sig, Sequence: seq}, nil
}

// VerifyTxSignatures verifies every signature of the transaction and
// advances the sequence of each signer. The conditions of all signers are
// returned in signature order. Any invalid signature fails the whole
// transaction.
func VerifyTxSignatures(db weft.KVStore, tx SignedTx, chainID string) ([]weft.Condition, error) {
	txBytes, err := tx.GetSignBytes()
	if err != nil {
		return nil, errors.Wrap(err, "sign bytes")
	}
	sigs := tx.GetSignatures()
	signers := make([]weft.Condition, len(sigs))
	for i, sig := range sigs {
		if signers[i], err = VerifySignature(db, sig, txBytes, chainID); err != nil {
			return nil, errors.Wrapf(err, "signature %d", i)
		}
	}
	return signers, nil
}

// VerifySignature checks a single signature. The signature must be made
// for the next sequence of its key. On success the sequence is incremented
// and stored.
func VerifySignature(db weft.KVStore, sig *StdSignature, txBytes []byte, chainID string) (weft.Condition, error) {
	if err := sig.Validate(); err != nil {
		return nil, err
	}
	bucket := NewBucket()
	user, err := loadOrCreate(db, bucket, sig.Pubkey)
	if err != nil {
		return nil, err
	}

	digest, err := BuildSignBytes(txBytes, chainID, sig.Sequence)
	if err != nil {
		return nil, err
	}
	if !user.Pubkey.Verify(digest, sig.Signature) {
		return nil, errors.Wrap(errors.ErrUnauthorized, "invalid signature")
	}
	if err := user.CheckAndIncrementSequence(sig.Sequence); err != nil {
		return nil, err
	}
	if err := bucket.Put(db, user.Pubkey.Address(), user); err != nil {
		return nil, errors.Wrap(err, "save sequence")
	}
	return user.Pubkey.Condition(), nil
}
