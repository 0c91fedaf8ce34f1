/*
Package vault implements reward vaults that distribute a settlement token to
weighted pools of stakers.

Each vault owns a registry of pools. A pool stakes either a fungible token
held in the cash ledger or the units of a single class of an item collection.
Income is never announced to the vault: every settlement first compares the
settlement token balance of the vault account with the last observed value
and folds any increase into the cumulative income counter. Each pool then
claims its share of the income that arrived since its last settlement,
proportional to its points, and converts it into a reward per staked unit.

A pool that has nothing staked when it is settled forfeits its share. The
forfeited total is recorded on the vault state and is never redistributed.
*/
package vault
