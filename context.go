package weft

import (
	"context"
	"fmt"
	"regexp"
	"time"

	"github.com/contribute-dao/weft/errors"
	"github.com/tendermint/tendermint/libs/log"
)

// Context carries the block information down to the handlers. Values are
// attached by the application before a transaction is processed.
type Context = context.Context

type ctxKey uint8

const (
	heightKey ctxKey = iota + 1
	chainIDKey
	loggerKey
	blockTimeKey
)

// IsValidChainID reports whether the string can be used as a chain id.
var IsValidChainID = regexp.MustCompile(`^[a-zA-Z0-9_\-]{6,20}$`).MatchString

// setOnce attaches a value that lower layers must not replace.
func setOnce(ctx Context, key ctxKey, name string, val interface{}) Context {
	if ctx.Value(key) != nil {
		panic(name + " already set")
	}
	return context.WithValue(ctx, key, val)
}

// WithHeight attaches the height of the block being processed. It panics
// when the height is already set.
func WithHeight(ctx Context, height int64) Context {
	return setOnce(ctx, heightKey, "height", height)
}

// GetHeight returns the block height and false if none was attached.
func GetHeight(ctx Context) (int64, bool) {
	h, ok := ctx.Value(heightKey).(int64)
	return h, ok
}

// WithBlockTime attaches the block time in UTC.
func WithBlockTime(ctx Context, t time.Time) Context {
	return context.WithValue(ctx, blockTimeKey, t.UTC())
}

// BlockTime returns the time of the current block. A missing or zero block
// time is an error: every time based rule would silently misbehave with it.
func BlockTime(ctx Context) (time.Time, error) {
	t, ok := ctx.Value(blockTimeKey).(time.Time)
	switch {
	case !ok:
		return time.Time{}, errors.Wrap(errors.ErrHuman, "no block time in context")
	case t.IsZero():
		return time.Time{}, errors.Wrap(errors.ErrHuman, "zero block time in context")
	}
	return t, nil
}

// WithChainID attaches the chain id. It panics if the id was already set
// or is not valid.
func WithChainID(ctx Context, chainID string) Context {
	if !IsValidChainID(chainID) {
		panic(fmt.Sprintf("invalid chain id %q", chainID))
	}
	return setOnce(ctx, chainIDKey, "chain id", chainID)
}

// GetChainID returns the chain id. Every application context has one, so a
// missing id panics.
func GetChainID(ctx Context) string {
	id, ok := ctx.Value(chainIDKey).(string)
	if !ok {
		panic("no chain id in context")
	}
	return id
}

func WithLogger(ctx Context, logger log.Logger) Context {
	return context.WithValue(ctx, loggerKey, logger)
}

// WithLogInfo returns a context whose logger carries the key value pairs.
func WithLogInfo(ctx Context, keyvals ...interface{}) Context {
	return WithLogger(ctx, GetLogger(ctx).With(keyvals...))
}

// GetLogger returns the context logger, or a logger that discards
// everything.
func GetLogger(ctx Context) log.Logger {
	if l, ok := ctx.Value(loggerKey).(log.Logger); ok {
		return l
	}
	return log.NewNopLogger()
}
