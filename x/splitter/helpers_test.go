package splitter

import (
	"context"
	"testing"

	"github.com/contribute-dao/weft"
	"github.com/contribute-dao/weft/coin"
	"github.com/contribute-dao/weft/gconf"
	"github.com/contribute-dao/weft/store"
	"github.com/contribute-dao/weft/wefttest"
	"github.com/contribute-dao/weft/wefttest/assert"
	"github.com/contribute-dao/weft/x/cash"
)

// anchor is the genesis time of the test chain, 2026-01-01.
const anchor weft.UnixTime = 1767225600

type fixture struct {
	db   weft.CacheableKVStore
	cash cash.BaseController
	ctrl *Controller
	conf *Configuration
}

func testConfiguration() *Configuration {
	return &Configuration{
		Admin:            wefttest.NewCondition().Address(),
		Settlement:       "TDAO",
		GovernedToken:    "TRIG",
		MinCallerHolding: coin.Whole(1),
		TrigFeeBps:       5000,
		KeeperReward:     KeeperRewardPolicy{Bps: 10},
		Treasury:         wefttest.NewCondition().Address(),
		TrigVault:        "trig",
		NftVault:         "nft",
		LpVault:          "lp",
	}
}

func newFixture(t testing.TB) *fixture {
	t.Helper()
	f := &fixture{
		db:   store.MemStore(),
		cash: cash.NewController(),
		conf: testConfiguration(),
	}
	f.ctrl = NewController(f.cash)
	assert.Nil(t, f.cash.DeclareToken(f.db, "TDAO", "contribute dao"))
	assert.Nil(t, f.cash.DeclareToken(f.db, "TRIG", "trig"))
	assert.Nil(t, gconf.Save(f.db, confPkg, f.conf))
	st := &State{LastUpdate: anchor, ScheduleAnchor: anchor}
	assert.Nil(t, NewStateBucket().Put(f.db, stateKey, st))
	return f
}

func (f *fixture) ctxAt(ts weft.UnixTime) weft.Context {
	return weft.WithBlockTime(context.Background(), ts.Time())
}

// keeper returns an address holding the minimum amount of the governed
// token.
func (f *fixture) keeper(t testing.TB) weft.Condition {
	t.Helper()
	c := wefttest.NewCondition()
	assert.Nil(t, f.cash.Issue(f.db, "TRIG", c.Address(), coin.Whole(1)))
	return c
}

func (f *fixture) collect(t testing.TB, n uint64) {
	t.Helper()
	assert.Nil(t, f.cash.Issue(f.db, "TDAO", Account(), coin.NewAmount(n)))
}

func (f *fixture) balance(t testing.TB, owner weft.Address) string {
	t.Helper()
	b, err := f.cash.Balance(f.db, "TDAO", owner)
	assert.Nil(t, err)
	return b.String()
}
