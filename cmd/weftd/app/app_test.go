package app_test

import (
	"testing"
	"time"

	"github.com/contribute-dao/weft"
	weftApp "github.com/contribute-dao/weft/app"
	weftd "github.com/contribute-dao/weft/cmd/weftd/app"
	"github.com/contribute-dao/weft/coin"
	"github.com/contribute-dao/weft/crypto"
	"github.com/contribute-dao/weft/errors"
	"github.com/contribute-dao/weft/wefttest/assert"
	"github.com/contribute-dao/weft/x/cash"
	"github.com/contribute-dao/weft/x/sigs"
	"github.com/contribute-dao/weft/x/splitter"
	"github.com/contribute-dao/weft/x/vault"
	abci "github.com/tendermint/tendermint/abci/types"
	"github.com/tendermint/tendermint/libs/log"
)

const chainID = "weft-testnet"

var genesisTime = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

type testApp struct {
	abci.Application
	admin  *crypto.PrivateKey
	nonces map[string]int64
	height int64
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()
	admin := crypto.GenPrivKeyEd25519()
	state, err := weftd.GenInitOptions([]string{admin.PublicKey().Address().String()})
	assert.Nil(t, err)

	application, err := weftd.GenerateApp("", log.NewNopLogger(), true)
	assert.Nil(t, err)
	application.InitChain(abci.RequestInitChain{
		Time:          genesisTime,
		ChainId:       chainID,
		AppStateBytes: state,
	})
	application.Commit()
	return &testApp{Application: application, admin: admin, nonces: make(map[string]int64)}
}

// submit signs the message with the given key and runs it in a new block.
// Deliver is skipped when check fails.
func (a *testApp) submit(t *testing.T, key *crypto.PrivateKey, msg weft.Msg) (abci.ResponseCheckTx, abci.ResponseDeliverTx) {
	t.Helper()

	signer := key.PublicKey().Address().String()
	tx := weftd.NewTx(msg)
	sig, err := sigs.SignTx(key, tx, chainID, a.nonces[signer])
	assert.Nil(t, err)
	tx.Signatures = append(tx.Signatures, sig)

	txBytes, err := tx.Marshal()
	assert.Nil(t, err)

	a.height++
	header := abci.Header{
		ChainID: chainID,
		Height:  a.height,
		Time:    genesisTime.Add(time.Duration(a.height) * time.Minute),
	}
	a.BeginBlock(abci.RequestBeginBlock{Header: header})
	var dres abci.ResponseDeliverTx
	chres := a.CheckTx(txBytes)
	if chres.Code == 0 {
		dres = a.DeliverTx(txBytes)
		if dres.Code == 0 {
			a.nonces[signer]++
		}
	}
	a.EndBlock(abci.RequestEndBlock{})
	cres := a.Commit()
	assert.Equal(t, true, len(cres.Data) != 0)
	return chres, dres
}

// signAndCommit submits the message signed by the admin. Both check and
// deliver must pass.
func (a *testApp) signAndCommit(t *testing.T, msg weft.Msg) abci.ResponseDeliverTx {
	t.Helper()
	chres, dres := a.submit(t, a.admin, msg)
	if chres.Code != 0 {
		t.Fatalf("check failed: %d %s", chres.Code, chres.Log)
	}
	if dres.Code != 0 {
		t.Fatalf("deliver failed: %d %s", dres.Code, dres.Log)
	}
	return dres
}

func (a *testApp) query(t *testing.T, path string, key []byte, dest weft.Persistent) {
	t.Helper()
	res := a.Query(abci.RequestQuery{Path: path, Data: key})
	if res.Code != 0 {
		t.Fatalf("query %s failed: %d %s", path, res.Code, res.Log)
	}
	assert.Nil(t, weftApp.UnmarshalOneResult(res.Value, dest))
}

// balance returns zero for an account that was never credited.
func (a *testApp) balance(t *testing.T, ticker string, owner weft.Address) coin.Amount {
	t.Helper()
	res := a.Query(abci.RequestQuery{Path: "/balances", Data: cash.BalanceKey(ticker, owner)})
	assert.Equal(t, uint32(0), res.Code)
	var b cash.Balance
	if err := weftApp.UnmarshalOneResult(res.Value, &b); err != nil {
		if errors.ErrNotFound.Is(err) {
			return coin.Zero()
		}
		t.Fatalf("cannot decode balance: %s", err)
	}
	return b.Amount
}

func TestGenesisState(t *testing.T) {
	a := newTestApp(t)
	admin := a.admin.PublicKey().Address()

	assert.Equal(t, coin.Whole(1000000).String(), a.balance(t, weftd.SettlementTicker, admin).String())
	assert.Equal(t, coin.Whole(1000).String(), a.balance(t, weftd.GovernedTicker, admin).String())

	for _, name := range []string{weftd.TrigVault, weftd.NftVault, weftd.LpVault} {
		var st vault.State
		a.query(t, "/vaults", []byte(name), &st)
		assert.Equal(t, name, st.Name)
		assert.Equal(t, weftd.SettlementTicker, st.Settlement)
	}

	var nft vault.State
	a.query(t, "/vaults", []byte(weftd.NftVault), &nft)
	assert.Equal(t, uint64(8), nft.PoolCount)
	assert.Equal(t, uint64(2+10+34+84+180+280+360+50), nft.TotalPoints)

	var st splitter.State
	a.query(t, "/splitter", []byte("state"), &st)
	assert.Equal(t, weft.AsUnixTime(genesisTime), st.LastUpdate)
}

func TestFeesReachStakers(t *testing.T) {
	a := newTestApp(t)
	admin := a.admin.PublicKey().Address()

	a.signAndCommit(t, &cash.ApproveMsg{
		Owner:   admin,
		Spender: vault.Account(weftd.TrigVault),
		Amount:  coin.WholeCoin(500, weftd.GovernedTicker),
	})
	a.signAndCommit(t, &vault.DepositMsg{
		Vault:  weftd.TrigVault,
		PoolID: 0,
		Amount: coin.Whole(500),
	})
	assert.Equal(t, coin.Whole(500).String(), a.balance(t, weftd.GovernedTicker, vault.Account(weftd.TrigVault)).String())

	a.signAndCommit(t, &cash.SendMsg{
		Src:    admin,
		Dest:   splitter.Account(),
		Amount: coin.WholeCoin(1000, weftd.SettlementTicker),
	})

	dres := a.signAndCommit(t, &splitter.UpdateMsg{})
	// The keeper reward is 0.1% of the collected fees.
	assert.Equal(t, coin.Whole(1).String(), string(dres.Data))

	// Within the first 30 days the treasury vault takes 90% and the lp
	// vault 90% of that.
	want, err := splitter.ComputeSplit(coin.Whole(1000), coin.Whole(1), 5000, 9000)
	assert.Nil(t, err)
	assert.Equal(t, "499000500000000000000", want.Trig.String())
	assert.Equal(t, want.Lp.String(), a.balance(t, weftd.SettlementTicker, vault.Account(weftd.LpVault)).String())
	assert.Equal(t, want.Nft.String(), a.balance(t, weftd.SettlementTicker, vault.Account(weftd.NftVault)).String())

	var st splitter.State
	a.query(t, "/splitter", []byte("state"), &st)
	assert.Equal(t, uint64(1), st.Updates)
	assert.Equal(t, want.Hodler.String(), st.Retained.String())
	assert.Equal(t, true, a.balance(t, weftd.SettlementTicker, splitter.Account()).IsZero())

	// The only trig staker harvests the whole trig share.
	before := a.balance(t, weftd.SettlementTicker, admin)
	dres = a.signAndCommit(t, &vault.HarvestMsg{Vault: weftd.TrigVault, PoolID: 0})
	harvested, err := coin.ParseAmount(string(dres.Data))
	assert.Nil(t, err)
	assert.Equal(t, want.Trig.String(), harvested.String())
	assert.Equal(t, true, a.balance(t, weftd.SettlementTicker, vault.Account(weftd.TrigVault)).IsZero())

	after := a.balance(t, weftd.SettlementTicker, admin)
	total, err := before.Add(harvested)
	assert.Nil(t, err)
	assert.Equal(t, total.String(), after.String())
}

func TestUpdateRequiresSettlementToken(t *testing.T) {
	a := newTestApp(t)
	admin := a.admin.PublicKey().Address()
	holder := crypto.GenPrivKeyEd25519()

	a.signAndCommit(t, &cash.SendMsg{
		Src:    admin,
		Dest:   holder.PublicKey().Address(),
		Amount: coin.WholeCoin(100, weftd.GovernedTicker),
	})
	a.signAndCommit(t, &cash.SendMsg{
		Src:    admin,
		Dest:   splitter.Account(),
		Amount: coin.WholeCoin(1000, weftd.SettlementTicker),
	})

	chres, _ := a.submit(t, holder, &splitter.UpdateMsg{})
	assert.Equal(t, splitter.ErrBelowMinimumCaller.ABCICode(), chres.Code)
	assert.Equal(t, coin.Whole(1000).String(), a.balance(t, weftd.SettlementTicker, splitter.Account()).String())

	// One whole settlement token opens the gate.
	a.signAndCommit(t, &cash.SendMsg{
		Src:    admin,
		Dest:   holder.PublicKey().Address(),
		Amount: coin.WholeCoin(1, weftd.SettlementTicker),
	})
	chres, dres := a.submit(t, holder, &splitter.UpdateMsg{})
	assert.Equal(t, uint32(0), chres.Code)
	assert.Equal(t, uint32(0), dres.Code)
	assert.Equal(t, true, a.balance(t, weftd.SettlementTicker, splitter.Account()).IsZero())
}

func TestUnsignedTxRejected(t *testing.T) {
	a := newTestApp(t)

	txBytes, err := weftd.NewTx(&splitter.UpdateMsg{}).Marshal()
	assert.Nil(t, err)
	a.BeginBlock(abci.RequestBeginBlock{Header: abci.Header{
		ChainID: chainID,
		Height:  1,
		Time:    genesisTime.Add(time.Minute),
	}})
	res := a.CheckTx(txBytes)
	assert.Equal(t, true, res.Code != 0)
}
