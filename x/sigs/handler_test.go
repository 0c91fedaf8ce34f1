package sigs

import (
	"context"
	"testing"

	"github.com/contribute-dao/weft"
	"github.com/contribute-dao/weft/errors"
	"github.com/contribute-dao/weft/store"
	"github.com/contribute-dao/weft/wefttest"
	"github.com/contribute-dao/weft/wefttest/assert"
)

func TestBumpSequence(t *testing.T) {
	key := wefttest.NewKey()
	pub := key.PublicKey()

	cases := map[string]struct {
		existing *UserData
		msg      weft.Msg
		wantErr  *errors.Error
		wantSeq  int64
	}{
		"bump": {
			existing: &UserData{Pubkey: pub, Sequence: 4},
			msg:      &BumpSequenceMsg{Increment: 10},
			wantSeq:  14,
		},
		"unknown signer": {
			msg:     &BumpSequenceMsg{Increment: 10},
			wantErr: errors.ErrNotFound,
		},
		"increment too big": {
			existing: &UserData{Pubkey: pub, Sequence: 4},
			msg:      &BumpSequenceMsg{Increment: maxSequenceIncrement + 1},
			wantErr:  errors.ErrMsg,
			wantSeq:  4,
		},
		"overflow": {
			existing: &UserData{Pubkey: pub, Sequence: maxSequenceValue - 1},
			msg:      &BumpSequenceMsg{Increment: 2},
			wantErr:  errors.ErrOverflow,
			wantSeq:  maxSequenceValue - 1,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			db := store.MemStore()
			if tc.existing != nil {
				assert.Nil(t, NewBucket().Put(db, pub.Address(), tc.existing))
			}
			h := NewBumpSequenceHandler(&wefttest.Auth{Signer: pub.Condition()})
			_, err := h.Deliver(context.Background(), db, &wefttest.Tx{Msg: tc.msg})
			if !tc.wantErr.Is(err) {
				t.Fatalf("unexpected error: %+v", err)
			}
			if tc.existing == nil {
				return
			}
			seq, err := NextNonce(db, pub.Address())
			assert.Nil(t, err)
			assert.Equal(t, tc.wantSeq, seq)
		})
	}
}
