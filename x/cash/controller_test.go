package cash

import (
	"testing"

	"github.com/contribute-dao/weft"
	"github.com/contribute-dao/weft/coin"
	"github.com/contribute-dao/weft/errors"
	"github.com/contribute-dao/weft/store"
	"github.com/contribute-dao/weft/wefttest"
	"github.com/contribute-dao/weft/wefttest/assert"
)

func newLedger(t testing.TB, funded weft.Address, amount coin.Amount) (BaseController, weft.KVStore) {
	t.Helper()
	db := store.MemStore()
	ctrl := NewController()
	assert.Nil(t, ctrl.DeclareToken(db, "TDAO", "Contribute DAO"))
	assert.Nil(t, ctrl.Issue(db, "TDAO", funded, amount))
	return ctrl, db
}

func assertBalance(t testing.TB, ctrl Controller, db weft.ReadOnlyKVStore, addr weft.Address, want coin.Amount) {
	t.Helper()
	got, err := ctrl.Balance(db, "TDAO", addr)
	assert.Nil(t, err)
	if !want.Equals(got) {
		t.Fatalf("want %s balance, got %s", want, got)
	}
}

func TestTransfer(t *testing.T) {
	alice := wefttest.NewCondition().Address()
	bob := wefttest.NewCondition().Address()

	cases := map[string]struct {
		src, dest weft.Address
		ticker    string
		amount    coin.Amount
		wantErr   *errors.Error
		wantAlice coin.Amount
		wantBob   coin.Amount
	}{
		"full balance": {
			src: alice, dest: bob, ticker: "TDAO",
			amount:    coin.Whole(10),
			wantAlice: coin.Zero(),
			wantBob:   coin.Whole(10),
		},
		"part of balance": {
			src: alice, dest: bob, ticker: "TDAO",
			amount:    coin.Whole(4),
			wantAlice: coin.Whole(6),
			wantBob:   coin.Whole(4),
		},
		"more than balance": {
			src: alice, dest: bob, ticker: "TDAO",
			amount:    coin.Whole(11),
			wantErr:   ErrTransferRejected,
			wantAlice: coin.Whole(10),
			wantBob:   coin.Zero(),
		},
		"empty account": {
			src: bob, dest: alice, ticker: "TDAO",
			amount:    coin.NewAmount(1),
			wantErr:   ErrTransferRejected,
			wantAlice: coin.Whole(10),
			wantBob:   coin.Zero(),
		},
		"to self": {
			src: alice, dest: alice, ticker: "TDAO",
			amount:    coin.Whole(3),
			wantAlice: coin.Whole(10),
			wantBob:   coin.Zero(),
		},
		"zero is a no-op": {
			src: bob, dest: alice, ticker: "TDAO",
			amount:    coin.Zero(),
			wantAlice: coin.Whole(10),
			wantBob:   coin.Zero(),
		},
		"unknown token": {
			src: alice, dest: bob, ticker: "NOPE",
			amount:    coin.Whole(1),
			wantErr:   errors.ErrCurrency,
			wantAlice: coin.Whole(10),
			wantBob:   coin.Zero(),
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			ctrl, db := newLedger(t, alice, coin.Whole(10))
			err := ctrl.Transfer(db, tc.ticker, tc.src, tc.dest, tc.amount)
			if !tc.wantErr.Is(err) {
				t.Fatalf("unexpected error: %+v", err)
			}
			assertBalance(t, ctrl, db, alice, tc.wantAlice)
			assertBalance(t, ctrl, db, bob, tc.wantBob)
		})
	}
}

func TestTransferFrom(t *testing.T) {
	alice := wefttest.NewCondition().Address()
	vault := wefttest.NewCondition().Address()

	ctrl, db := newLedger(t, alice, coin.Whole(10))

	// Without an allowance nothing can be pulled.
	err := ctrl.TransferFrom(db, "TDAO", vault, alice, vault, coin.Whole(1))
	assert.IsErr(t, ErrTransferRejected, err)

	assert.Nil(t, ctrl.Approve(db, "TDAO", alice, vault, coin.Whole(3)))
	assert.Nil(t, ctrl.TransferFrom(db, "TDAO", vault, alice, vault, coin.Whole(2)))
	assertBalance(t, ctrl, db, vault, coin.Whole(2))

	left, err := ctrl.Allowance(db, "TDAO", alice, vault)
	assert.Nil(t, err)
	assert.Equal(t, coin.Whole(1).String(), left.String())

	err = ctrl.TransferFrom(db, "TDAO", vault, alice, vault, coin.Whole(2))
	assert.IsErr(t, ErrTransferRejected, err)

	// Allowance is not enough when the balance is missing.
	assert.Nil(t, ctrl.Approve(db, "TDAO", alice, vault, coin.Whole(100)))
	err = ctrl.TransferFrom(db, "TDAO", vault, alice, vault, coin.Whole(50))
	assert.IsErr(t, ErrTransferRejected, err)
}

func TestIssue(t *testing.T) {
	alice := wefttest.NewCondition().Address()
	ctrl, db := newLedger(t, alice, coin.Whole(10))

	assert.Nil(t, ctrl.Issue(db, "TDAO", alice, coin.Whole(5)))
	assertBalance(t, ctrl, db, alice, coin.Whole(15))

	tok, err := ctrl.Token(db, "TDAO")
	assert.Nil(t, err)
	assert.Equal(t, coin.Whole(15).String(), tok.Supply.String())

	assert.IsErr(t, errors.ErrCurrency, ctrl.Issue(db, "NOPE", alice, coin.Whole(1)))
	assert.IsErr(t, errors.ErrDuplicate, ctrl.DeclareToken(db, "TDAO", "again"))
}
