/*
Package splitter routes the settlement token collected by the fee account to
the reward vaults and the treasury.

Anyone holding at least the configured amount of the governed token may
trigger an update. The caller is paid a keeper reward out of the collected
balance, the remainder is split five ways:

	hodler    0.10%, retained in a reserve account
	trig      TrigFeeBps of the rest
	nft       what remains after the treasury vault share
	lp        90% of the treasury vault share
	treasury  the rest of the treasury vault share

The treasury vault share grows from 90% to 98% in five tiers of 30 days,
counted from genesis. Only the trig share is adjustable, within [50%, 90%]. The
shares are plain transfers to the vault accounts, each vault attributes its
income on its next settlement.
*/
package splitter
