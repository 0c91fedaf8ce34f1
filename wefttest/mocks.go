package wefttest

import "github.com/contribute-dao/weft"

// calls counts how often a mock was checked and delivered.
type calls struct {
	check   int
	deliver int
}

func (c *calls) CheckCallCount() int   { return c.check }
func (c *calls) DeliverCallCount() int { return c.deliver }
func (c *calls) CallCount() int        { return c.check + c.deliver }

// Handler is a weft.Handler returning preset results. When KeyValue is set
// it is written to the store on every call, which lets tests observe
// whether a savepoint kept or dropped the handler writes.
type Handler struct {
	calls

	CheckResult weft.CheckResult
	CheckErr    error

	DeliverResult weft.DeliverResult
	DeliverErr    error

	KeyValue [2][]byte
}

var _ weft.Handler = (*Handler)(nil)

func (h *Handler) Check(ctx weft.Context, db weft.KVStore, tx weft.Tx) (*weft.CheckResult, error) {
	h.check++
	if err := h.write(db); err != nil {
		return nil, err
	}
	res := h.CheckResult
	return &res, h.CheckErr
}

func (h *Handler) Deliver(ctx weft.Context, db weft.KVStore, tx weft.Tx) (*weft.DeliverResult, error) {
	h.deliver++
	if err := h.write(db); err != nil {
		return nil, err
	}
	res := h.DeliverResult
	return &res, h.DeliverErr
}

func (h *Handler) write(db weft.KVStore) error {
	if h.KeyValue[0] == nil {
		return nil
	}
	return db.Set(h.KeyValue[0], h.KeyValue[1])
}

// Decorator calls the next handler unless CheckErr or DeliverErr is set,
// in which case it fails without calling it.
type Decorator struct {
	calls

	CheckErr   error
	DeliverErr error
}

var _ weft.Decorator = (*Decorator)(nil)

func (d *Decorator) Check(ctx weft.Context, db weft.KVStore, tx weft.Tx, next weft.Checker) (*weft.CheckResult, error) {
	d.check++
	if d.CheckErr != nil {
		return nil, d.CheckErr
	}
	return next.Check(ctx, db, tx)
}

func (d *Decorator) Deliver(ctx weft.Context, db weft.KVStore, tx weft.Tx, next weft.Deliverer) (*weft.DeliverResult, error) {
	d.deliver++
	if d.DeliverErr != nil {
		return nil, d.DeliverErr
	}
	return next.Deliver(ctx, db, tx)
}

// Decorate wraps a single decorator around the handler.
func Decorate(h weft.Handler, d weft.Decorator) weft.Handler {
	return decorated{handler: h, decorator: d}
}

type decorated struct {
	handler   weft.Handler
	decorator weft.Decorator
}

func (d decorated) Check(ctx weft.Context, db weft.KVStore, tx weft.Tx) (*weft.CheckResult, error) {
	return d.decorator.Check(ctx, db, tx, d.handler)
}

func (d decorated) Deliver(ctx weft.Context, db weft.KVStore, tx weft.Tx) (*weft.DeliverResult, error) {
	return d.decorator.Deliver(ctx, db, tx, d.handler)
}
