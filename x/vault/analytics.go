package vault

import (
	"github.com/contribute-dao/weft"
	"github.com/contribute-dao/weft/coin"
	"github.com/contribute-dao/weft/errors"
	"github.com/contribute-dao/weft/orm"
)

// rollEpoch closes the current epoch once the height passes its end. Blocks
// without any settlement are merged into the closed epoch, so a long quiet
// period produces a single record.
//
// It runs before new income is folded, so income observed at the first
// settlement of a window is attributed to that window.
func (c *Controller) rollEpoch(db weft.KVStore, st *State, height int64) error {
	if st.EpochLength <= 0 || height < st.EpochStartHeight+st.EpochLength {
		return nil
	}
	elapsed := (height - st.EpochStartHeight) / st.EpochLength
	end := st.EpochStartHeight + elapsed*st.EpochLength

	income, err := st.TotalCumulativeIncome.Sub(st.EpochStartIncome)
	if err != nil {
		return errors.Wrap(errors.ErrState, "epoch income")
	}
	epoch := Epoch{
		Vault:       st.Name,
		Index:       st.EpochIndex,
		StartHeight: st.EpochStartHeight,
		EndHeight:   end,
		Income:      income,
	}
	if err := c.epochs.Put(db, EpochKey(st.Name, st.EpochIndex), &epoch); err != nil {
		return errors.Wrap(err, "save epoch")
	}
	st.EpochIndex++
	st.EpochStartHeight = end
	st.EpochStartIncome = st.TotalCumulativeIncome
	return nil
}

// EpochAverageIncomePerBlock returns the income of the current epoch divided
// by the number of blocks elapsed in it. Vaults without epoch analytics
// return the since start average.
func (c *Controller) EpochAverageIncomePerBlock(db weft.ReadOnlyKVStore, vault string, height int64) (coin.Amount, error) {
	st, err := c.Vault(db, vault)
	if err != nil {
		return coin.Amount{}, err
	}
	if st.EpochLength <= 0 {
		return c.AverageIncomePerBlock(db, vault, height)
	}
	if height <= st.EpochStartHeight {
		return coin.Zero(), nil
	}
	income, err := st.TotalCumulativeIncome.Sub(st.EpochStartIncome)
	if err != nil {
		return coin.Amount{}, errors.Wrap(errors.ErrState, "epoch income")
	}
	return income.QuoUint64(uint64(height - st.EpochStartHeight))
}

// ClosedEpochs returns the records of every closed epoch of the vault in
// ascending order.
func (c *Controller) ClosedEpochs(db weft.ReadOnlyKVStore, vault string) ([]*Epoch, error) {
	var epochs []*Epoch
	err := c.epochs.Iterate(db, []byte(vault+"/"), func(key []byte, m orm.Model) error {
		epochs = append(epochs, m.(*Epoch))
		return nil
	})
	return epochs, err
}
