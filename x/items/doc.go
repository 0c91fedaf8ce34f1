/*
Package items implements a multi-class item ledger.

A collection holds any number of item classes, identified by a numeric class
ID. Items of the same class are interchangeable, so the ledger only keeps a
count per (collection, class, owner). An owner may approve an operator to move
all of its items of a collection, which is how the nft vault takes custody of
staked items.

Failed transfers are reported with cash.ErrTransferRejected, the same error the
fungible ledger uses, so that the vaults handle both ledgers alike.
*/
package items
