package splitter

import (
	"github.com/contribute-dao/weft/coin"
)

// Split is the distribution of a single update.
type Split struct {
	Keeper   coin.Amount
	Hodler   coin.Amount
	Trig     coin.Amount
	Nft      coin.Amount
	Lp       coin.Amount
	Treasury coin.Amount
}

// Total returns the sum of every share.
func (s Split) Total() (coin.Amount, error) {
	total := coin.Zero()
	for _, a := range []coin.Amount{s.Keeper, s.Hodler, s.Trig, s.Nft, s.Lp, s.Treasury} {
		var err error
		if total, err = total.Add(a); err != nil {
			return coin.Amount{}, err
		}
	}
	return total, nil
}

// ComputeSplit divides amount after paying the keeper. Every division
// floors, the rounding remainder of each step flows into the next share so
// that the shares always add up to amount. The lp vault receives LpFeeBps of
// the treasury vault share.
func ComputeSplit(amount, keeper coin.Amount, trigBps, treasuryBps uint64) (Split, error) {
	var s Split
	var err error
	s.Keeper = coin.Min(keeper, amount)
	rest := amount.SubOrZero(s.Keeper)

	if s.Hodler, err = rest.MulBps(HodlerFeeBps); err != nil {
		return Split{}, err
	}
	discounted := rest.SubOrZero(s.Hodler)

	if s.Trig, err = discounted.MulBps(trigBps); err != nil {
		return Split{}, err
	}
	remaining := discounted.SubOrZero(s.Trig)

	treasuryVault, err := remaining.MulBps(treasuryBps)
	if err != nil {
		return Split{}, err
	}
	s.Nft = remaining.SubOrZero(treasuryVault)

	if s.Lp, err = treasuryVault.MulBps(LpFeeBps); err != nil {
		return Split{}, err
	}
	s.Treasury = treasuryVault.SubOrZero(s.Lp)
	return s, nil
}
