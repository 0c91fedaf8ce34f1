package app

import (
	"encoding/json"
	"testing"

	"github.com/contribute-dao/weft"
	"github.com/contribute-dao/weft/coin"
	"github.com/contribute-dao/weft/crypto"
	"github.com/contribute-dao/weft/store"
	"github.com/contribute-dao/weft/wefttest"
	"github.com/contribute-dao/weft/wefttest/assert"
	"github.com/contribute-dao/weft/x/cash"
	"github.com/contribute-dao/weft/x/sigs"
	"github.com/contribute-dao/weft/x/splitter"
	"github.com/contribute-dao/weft/x/vault"
)

func TestDefaultGenesisLoads(t *testing.T) {
	admin := wefttest.NewCondition().Address()
	raw, err := GenInitOptions([]string{admin.String()})
	assert.Nil(t, err)

	var opts weft.Options
	assert.Nil(t, json.Unmarshal(raw, &opts))

	db := store.MemStore()
	params := weft.GenesisParams{Height: 0, Time: 1767225600}
	assert.Nil(t, Initializers().FromGenesis(opts, params, db))

	ledger := cash.NewController()
	ctrl := splitter.NewController(ledger)
	treasury, err := ctrl.TreasuryFeeBps(db, params.Time)
	assert.Nil(t, err)
	assert.Equal(t, uint64(9000), treasury)
	treasury, err = ctrl.TreasuryFeeBps(db, params.Time+4*splitter.ScheduleInterval)
	assert.Nil(t, err)
	assert.Equal(t, uint64(9800), treasury)

	trig, err := ctrl.TrigFeeBps(db)
	assert.Nil(t, err)
	assert.Equal(t, uint64(5000), trig)

	// The update gate is one whole settlement token, holding the governed
	// token is not enough.
	assert.Nil(t, ctrl.CanUpdate(db, admin))
	holder := wefttest.NewCondition().Address()
	assert.Nil(t, ledger.Issue(db, GovernedTicker, holder, coin.Whole(100)))
	assert.Nil(t, ledger.Issue(db, SettlementTicker, holder, coin.Whole(1).SubOrZero(coin.NewAmount(1))))
	assert.IsErr(t, splitter.ErrBelowMinimumCaller, ctrl.CanUpdate(db, holder))
	assert.Nil(t, ledger.Issue(db, SettlementTicker, holder, coin.NewAmount(1)))
	assert.Nil(t, ctrl.CanUpdate(db, holder))

	var lp vault.State
	assert.Nil(t, vault.NewStateBucket().One(db, []byte(LpVault), &lp))
	assert.Equal(t, uint64(1), lp.PoolCount)
}

func TestGenInitOptionsRejectsBadAddress(t *testing.T) {
	_, err := GenInitOptions([]string{"not an address"})
	assert.Equal(t, true, err != nil)
}

func TestTxSignBytesIgnoreSignatures(t *testing.T) {
	tx := NewTx(&splitter.UpdateMsg{})
	unsigned, err := tx.GetSignBytes()
	assert.Nil(t, err)

	sig, err := sigs.SignTx(crypto.GenPrivKeyEd25519(), tx, "weft-testnet", 0)
	assert.Nil(t, err)
	tx.Signatures = append(tx.Signatures, sig)
	signed, err := tx.GetSignBytes()
	assert.Nil(t, err)
	assert.Equal(t, unsigned, signed)
	assert.Equal(t, 1, len(tx.Signatures))

	raw, err := tx.Marshal()
	assert.Nil(t, err)
	decoded, err := TxDecoder(raw)
	assert.Nil(t, err)
	msg, err := decoded.GetMsg()
	assert.Nil(t, err)
	assert.Equal(t, "splitter/update", msg.Path())
}
