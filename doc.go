/*
Package weft holds the types shared by every part of the chain: stores,
messages, transactions, handlers and the block context.

Block information travels in a context.Context. For every value there is a
setter and a getter, for example WithHeight and GetHeight. Setters of values
that must not change while a block is processed, such as the height or the
chain id, panic when the value is already present.

The modules live under x/. The reward vaults and the fee splitter are
assembled into an ABCI application in cmd/weftd and kept running by the
keeper in cmd/weftkeeper.
*/
package weft
