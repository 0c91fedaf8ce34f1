package app

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/contribute-dao/weft"
	"github.com/contribute-dao/weft/errors"
	abci "github.com/tendermint/tendermint/abci/types"
	"github.com/tendermint/tendermint/libs/log"
)

// StoreApp is the part of the ABCI application that owns the state: block
// lifecycle, genesis, commits and queries. BaseApp embeds it and adds
// transaction processing.
//
// Info, InitChain, BeginBlock, EndBlock and Commit carry no user input. A
// failure there means the node cannot continue, so they panic.
type StoreApp struct {
	logger log.Logger

	// name is reported by Info.
	name string

	store       *CommitStore
	initializer weft.Initializer
	queryRouter weft.QueryRouter

	// chainID is empty until InitChain runs for a new chain.
	chainID string

	// baseContext holds the values valid for the whole process, blockContext
	// adds the header of the current block to it.
	baseContext  weft.Context
	blockContext weft.Context
}

// NewStoreApp loads the latest committed state. It panics when the store
// cannot be read.
func NewStoreApp(name string, store weft.CommitKVStore, queryRouter weft.QueryRouter, baseContext weft.Context) *StoreApp {
	cs, err := NewCommitStore(store)
	must(err)
	s := &StoreApp{
		name:        name,
		store:       cs,
		queryRouter: queryRouter,
		baseContext: baseContext,
	}
	s.WithLogger(log.NewNopLogger())

	s.chainID, err = loadChainID(s.DeliverStore())
	must(err)
	if s.chainID != "" {
		s.baseContext = weft.WithChainID(s.baseContext, s.chainID)
	}

	info, err := s.store.CommitInfo()
	must(err)
	s.blockContext = weft.WithHeight(s.baseContext, info.Version)
	return s
}

func must(err error) {
	if err != nil {
		panic(err)
	}
}

func (s *StoreApp) GetChainID() string {
	return s.chainID
}

// WithInit sets the initializer that InitChain runs over the app_state of
// the genesis file.
func (s *StoreApp) WithInit(init weft.Initializer) *StoreApp {
	s.initializer = init
	return s
}

// WithLogger sets the logger of the application and of every handler
// context.
func (s *StoreApp) WithLogger(logger log.Logger) *StoreApp {
	s.baseContext = weft.WithLogger(s.baseContext, logger)
	s.logger = logger
	return s
}

func (s *StoreApp) Logger() log.Logger {
	return s.logger
}

// BlockContext is the context of the block being processed.
func (s *StoreApp) BlockContext() weft.Context {
	return s.blockContext
}

func (s *StoreApp) DeliverStore() weft.CacheableKVStore {
	return s.store.DeliverStore()
}

func (s *StoreApp) CheckStore() weft.CacheableKVStore {
	return s.store.CheckStore()
}

// Info reports the last committed height and app hash, so tendermint
// knows which blocks to replay.
func (s *StoreApp) Info(req abci.RequestInfo) abci.ResponseInfo {
	info, err := s.store.CommitInfo()
	must(err)
	s.logger.Info("Info synced", "height", info.Version, "hash", fmt.Sprintf("%X", info.Hash))
	return abci.ResponseInfo{
		Data:             s.name,
		Version:          weft.Version(),
		LastBlockHeight:  info.Version,
		LastBlockAppHash: info.Hash,
	}
}

// SetOption is not supported.
func (s *StoreApp) SetOption(abci.RequestSetOption) abci.ResponseSetOption {
	return abci.ResponseSetOption{Log: "Not Implemented"}
}

// InitChain stores the chain id and runs the initializer over the
// app_state. It is called once, when the chain starts from genesis.
func (s *StoreApp) InitChain(req abci.RequestInitChain) abci.ResponseInitChain {
	info, err := s.store.CommitInfo()
	must(err)
	params := weft.GenesisParams{
		Height: info.Version,
		Time:   weft.AsUnixTime(req.Time),
	}
	must(s.loadGenesis(req.AppStateBytes, params, req.ChainId))
	s.logger.Info("Genesis loaded", "chain_id", req.ChainId, "time", req.Time)
	return abci.ResponseInitChain{}
}

func (s *StoreApp) loadGenesis(appState []byte, params weft.GenesisParams, chainID string) error {
	if s.chainID != "" {
		return errors.Wrapf(errors.ErrState, "genesis already loaded for chain %s", s.chainID)
	}
	if len(appState) == 0 {
		return errors.Wrap(errors.ErrState, "app_state missing in genesis.json, run weftd init first")
	}
	var opts weft.Options
	if err := json.Unmarshal(appState, &opts); err != nil {
		return errors.Wrap(errors.ErrInput, err.Error())
	}
	if err := saveChainID(s.DeliverStore(), chainID); err != nil {
		return err
	}
	s.chainID = chainID
	s.baseContext = weft.WithChainID(s.baseContext, chainID)
	if s.initializer == nil {
		return nil
	}
	return s.initializer.FromGenesis(opts, params, s.DeliverStore())
}

// BeginBlock sets the height and time of the block for the following
// transactions.
func (s *StoreApp) BeginBlock(req abci.RequestBeginBlock) abci.ResponseBeginBlock {
	ctx := weft.WithHeight(s.baseContext, req.Header.GetHeight())
	s.blockContext = weft.WithBlockTime(ctx, req.Header.GetTime())
	return abci.ResponseBeginBlock{}
}

// EndBlock does not change the validator set.
func (s *StoreApp) EndBlock(abci.RequestEndBlock) abci.ResponseEndBlock {
	return abci.ResponseEndBlock{}
}

func (s *StoreApp) Commit() abci.ResponseCommit {
	id, err := s.store.Commit()
	must(err)
	s.logger.Debug("Commit synced", "height", id.Version, "hash", fmt.Sprintf("%X", id.Hash))
	return abci.ResponseCommit{Data: id.Hash}
}

// Query reads the last committed state. Height and Prove of the request
// are ignored.
//
// The path is "/" for raw keys or "/<bucket>" for models, optionally
// followed by "?prefix" for a prefix scan: "/stakes?prefix". Key and Value
// of the response are both ResultSet encoded, with one entry per model.
func (s *StoreApp) Query(req abci.RequestQuery) abci.ResponseQuery {
	path, mod := splitPath(req.Path)

	info, err := s.store.CommitInfo()
	if err != nil {
		return weft.QueryError(err, false)
	}
	db := s.store.committed.CacheWrap()
	defer db.Discard()

	models, err := s.queryRouter.Handler(path).Query(db, mod, req.Data)
	if err != nil {
		return weft.QueryError(err, false)
	}
	res := abci.ResponseQuery{Height: info.Version}
	if res.Key, err = ResultsFromKeys(models).Marshal(); err != nil {
		return weft.QueryError(err, false)
	}
	if res.Value, err = ResultsFromValues(models).Marshal(); err != nil {
		return weft.QueryError(err, false)
	}
	return res
}

// splitPath separates the query modifier after "?" from the path.
func splitPath(path string) (string, string) {
	if i := strings.IndexByte(path, '?'); i >= 0 {
		return path[:i], path[i+1:]
	}
	return path, ""
}
