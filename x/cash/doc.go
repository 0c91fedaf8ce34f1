/*
Package cash implements the fungible token ledger.

Every token is declared by its ticker and carries a total supply. Balances and
allowances are kept per (ticker, address). An account owner can send tokens
directly or approve a spender, which later pulls tokens with TransferFrom. The
vaults rely on the latter to take custody of deposits.

Any failed transfer is reported as ErrTransferRejected, so that callers do not
need to know whether the balance or the allowance was insufficient.
*/
package cash
