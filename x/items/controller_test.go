package items

import (
	"testing"

	"github.com/contribute-dao/weft"
	"github.com/contribute-dao/weft/errors"
	"github.com/contribute-dao/weft/store"
	"github.com/contribute-dao/weft/wefttest"
	"github.com/contribute-dao/weft/wefttest/assert"
	"github.com/contribute-dao/weft/x/cash"
)

func newCollection(t testing.TB, owner weft.Address) (BaseController, weft.CacheableKVStore) {
	t.Helper()
	db := store.MemStore()
	ctrl := NewController()
	assert.Nil(t, ctrl.DeclareCollection(db, "trig_nft", 8))
	assert.Nil(t, ctrl.Mint(db, "trig_nft", owner, 0, 5))
	assert.Nil(t, ctrl.Mint(db, "trig_nft", owner, 7, 2))
	return ctrl, db
}

func TestBatchTransfer(t *testing.T) {
	alice := wefttest.NewCondition().Address()
	bob := wefttest.NewCondition().Address()
	vault := wefttest.NewCondition().Address()

	cases := map[string]struct {
		approve  bool
		operator weft.Address
		classes  []uint32
		counts   []uint64
		wantErr  *errors.Error
		wantBob  []uint64
	}{
		"owner moves items": {
			operator: alice,
			classes:  []uint32{0, 7},
			counts:   []uint64{3, 2},
			wantBob:  []uint64{3, 2},
		},
		"approved operator moves items": {
			approve:  true,
			operator: vault,
			classes:  []uint32{0},
			counts:   []uint64{5},
			wantBob:  []uint64{5, 0},
		},
		"operator without approval": {
			operator: vault,
			classes:  []uint32{0},
			counts:   []uint64{1},
			wantErr:  cash.ErrTransferRejected,
			wantBob:  []uint64{0, 0},
		},
		"not enough items": {
			operator: alice,
			classes:  []uint32{7},
			counts:   []uint64{3},
			wantErr:  cash.ErrTransferRejected,
			wantBob:  []uint64{0, 0},
		},
		"unknown class": {
			operator: alice,
			classes:  []uint32{8},
			counts:   []uint64{1},
			wantErr:  errors.ErrInput,
			wantBob:  []uint64{0, 0},
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			ctrl, db := newCollection(t, alice)
			if tc.approve {
				assert.Nil(t, ctrl.SetApprovalForAll(db, "trig_nft", alice, vault, true))
			}
			err := ctrl.BatchTransfer(db, "trig_nft", tc.operator, alice, bob, tc.classes, tc.counts)
			if !tc.wantErr.Is(err) {
				t.Fatalf("unexpected error: %+v", err)
			}
			got, err := ctrl.BalanceBatch(db, "trig_nft", []weft.Address{bob, bob}, []uint32{0, 7})
			assert.Nil(t, err)
			assert.Equal(t, tc.wantBob, got)
		})
	}
}

func TestApprovalRevoke(t *testing.T) {
	alice := wefttest.NewCondition().Address()
	vault := wefttest.NewCondition().Address()
	ctrl, db := newCollection(t, alice)

	assert.Nil(t, ctrl.SetApprovalForAll(db, "trig_nft", alice, vault, true))
	ok, err := ctrl.IsApprovedForAll(db, "trig_nft", alice, vault)
	assert.Nil(t, err)
	assert.Equal(t, true, ok)

	assert.Nil(t, ctrl.SetApprovalForAll(db, "trig_nft", alice, vault, false))
	ok, err = ctrl.IsApprovedForAll(db, "trig_nft", alice, vault)
	assert.Nil(t, err)
	assert.Equal(t, false, ok)

	err = ctrl.SetApprovalForAll(db, "unknown", alice, vault, true)
	assert.IsErr(t, errors.ErrNotFound, err)
}

func TestMintSupply(t *testing.T) {
	alice := wefttest.NewCondition().Address()
	ctrl, db := newCollection(t, alice)

	col, err := ctrl.Collection(db, "trig_nft")
	assert.Nil(t, err)
	assert.Equal(t, []uint64{5, 0, 0, 0, 0, 0, 0, 2}, col.Supply)

	assert.IsErr(t, errors.ErrDuplicate, ctrl.DeclareCollection(db, "trig_nft", 2))
}
