/*
Package app links together all the various components
to construct the weftd app.
*/
package app

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/contribute-dao/weft"
	"github.com/contribute-dao/weft/app"
	"github.com/contribute-dao/weft/errors"
	"github.com/contribute-dao/weft/store/iavl"
	"github.com/contribute-dao/weft/x"
	"github.com/contribute-dao/weft/x/cash"
	"github.com/contribute-dao/weft/x/items"
	"github.com/contribute-dao/weft/x/sigs"
	"github.com/contribute-dao/weft/x/splitter"
	"github.com/contribute-dao/weft/x/utils"
	"github.com/contribute-dao/weft/x/vault"
)

// Authenticator returns the typical authentication,
// just using public key signatures
func Authenticator() x.Authenticator {
	return x.ChainAuth(sigs.Authenticate{})
}

// Chain returns a chain of decorators, to handle authentication,
// logging and recovery
func Chain() app.Decorators {
	return app.ChainDecorators(
		utils.NewLogging(),
		utils.NewRecovery(),
		utils.NewActionTagger(),
		// on CheckTx, bad tx don't affect state
		utils.NewSavepoint().OnCheck(),
		sigs.NewDecorator(),
		// on DeliverTx, bad tx will increment nonce even if the
		// message fails
		utils.NewSavepoint().OnDeliver(),
	)
}

// Router returns a router dispatching to every module of the application.
// All modules share a single ledger and a single item registry.
func Router(authFn x.Authenticator) *app.Router {
	r := app.NewRouter()

	ledger := cash.NewController()
	registry := items.NewController()

	cash.RegisterRoutes(r, authFn, ledger)
	items.RegisterRoutes(r, authFn, registry)
	sigs.RegisterRoutes(r, authFn)
	vault.RegisterRoutes(r, authFn, vault.NewController(ledger, registry))
	splitter.RegisterRoutes(r, authFn, splitter.NewController(ledger))
	return r
}

// QueryRouter returns a default query router,
// allowing access to "/", "/auth", "/cash", "/items", "/vault" and
// "/splitter" paths
func QueryRouter() weft.QueryRouter {
	r := weft.NewQueryRouter()
	r.RegisterAll(
		app.RegisterQuery,
		sigs.RegisterQuery,
		cash.RegisterQuery,
		items.RegisterQuery,
		vault.RegisterQuery,
		splitter.RegisterQuery,
	)
	return r
}

// Initializers returns the genesis loaders of all modules, in the order
// they must run. Vault and splitter configuration reference tokens and
// collections, so the ledgers go first.
func Initializers() weft.Initializer {
	return weft.ChainInitializers(
		cash.Initializer{},
		items.Initializer{},
		vault.Initializer{},
		splitter.Initializer{},
	)
}

// Stack wires up a standard router with a standard decorator
// chain. This can be passed into BaseApp.
func Stack() weft.Handler {
	authFn := Authenticator()
	return Chain().WithHandler(Router(authFn))
}

// Application constructs a basic ABCI application with
// the given arguments. If you are not sure what to use
// for the Handler, just use Stack().
func Application(name string, h weft.Handler, tx weft.TxDecoder, dbPath string, debug bool) (app.BaseApp, error) {
	kv, err := CommitKVStore(dbPath)
	if err != nil {
		return app.BaseApp{}, err
	}
	store := app.NewStoreApp(name, kv, QueryRouter(), context.Background())
	return app.NewBaseApp(store, tx, h, debug), nil
}

// CommitKVStore returns an initialized KVStore that persists
// the data to the named path.
func CommitKVStore(dbPath string) (weft.CommitKVStore, error) {
	// memory backed case, just for testing
	if dbPath == "" {
		return iavl.NewCommitStore("", "weft"), nil
	}

	path, err := filepath.Abs(dbPath)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrInput, "invalid database name %q", dbPath)
	}
	// Some external calls accidentally add a ".db", which is now removed
	path = strings.TrimSuffix(path, filepath.Ext(path))

	dir := filepath.Dir(path)
	name := filepath.Base(path)
	return iavl.NewCommitStore(dir, name), nil
}
