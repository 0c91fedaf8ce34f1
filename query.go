package weft

import (
	"fmt"
	"regexp"

	"github.com/contribute-dao/weft/errors"
)

// Query modifiers, the part of a query path after "?".
const (
	// KeyQueryMod returns the model stored under the exact key.
	KeyQueryMod = ""
	// PrefixQueryMod returns all models whose key starts with the data.
	PrefixQueryMod = "prefix"
)

// Model is a key and its stored value, as returned by a query.
type Model struct {
	Key   []byte
	Value []byte
}

func Pair(key, value []byte) Model {
	return Model{Key: key, Value: value}
}

// QueryHandler answers the queries sent to one path, such as "/pools".
type QueryHandler interface {
	Query(db ReadOnlyKVStore, mod string, data []byte) ([]Model, error)
}

// QueryRegister adds the query handlers of a package to the router.
type QueryRegister func(QueryRouter)

// QueryRouter maps query paths to their handler. Paths are registered once,
// at startup.
type QueryRouter struct {
	routes map[string]QueryHandler
}

var isQueryPath = regexp.MustCompile(`^[a-zA-Z0-9_/]+$`).MatchString

func NewQueryRouter() QueryRouter {
	return QueryRouter{routes: make(map[string]QueryHandler)}
}

func (r QueryRouter) RegisterAll(regs ...QueryRegister) {
	for _, reg := range regs {
		reg(r)
	}
}

// Register panics on a malformed path or a path registered twice.
func (r QueryRouter) Register(path string, h QueryHandler) {
	if !isQueryPath(path) {
		panic(fmt.Sprintf("invalid query path %q", path))
	}
	if _, ok := r.routes[path]; ok {
		panic(fmt.Sprintf("query path %q registered twice", path))
	}
	r.routes[path] = h
}

// Handler never returns nil. An unknown path gets a handler that fails
// every query with ErrNotFound.
func (r QueryRouter) Handler(path string) QueryHandler {
	if h, ok := r.routes[path]; ok {
		return h
	}
	return unknownPath(path)
}

type unknownPath string

func (p unknownPath) Query(ReadOnlyKVStore, string, []byte) ([]Model, error) {
	return nil, errors.Wrapf(errors.ErrNotFound, "no query handler for %q", string(p))
}
