/*
Package x contains the extensions of the weft application.

Each sub-package implements a set of messages with their handlers, the models
they persist and the genesis initializer. The vault and splitter extensions
hold the reward accounting, while cash, items and sigs provide the ledgers
and the authentication they depend on.

Handlers never read signatures directly. They receive an Authenticator, so
that tests can plug in a mock and the application can chain several
authentication extensions together.
*/
package x
