package utils

import (
	"time"

	"github.com/contribute-dao/weft"
)

// Logging writes one line per processed transaction with its message path
// and the handler duration in microseconds.
//
// Failed transactions are logged as errors. Successful checks are logged at
// debug level and successful deliveries at info level, so a node running
// with the default level reports every state change once.
type Logging struct{}

var _ weft.Decorator = Logging{}

func NewLogging() Logging {
	return Logging{}
}

func (Logging) Check(ctx weft.Context, db weft.KVStore, tx weft.Tx, next weft.Checker) (*weft.CheckResult, error) {
	start := time.Now()
	res, err := next.Check(ctx, db, tx)
	l := entry{path: weft.GetPath(tx), took: time.Since(start), err: err}
	if err == nil {
		l.msg = res.Log
	}
	l.write(ctx, true)
	return res, err
}

func (Logging) Deliver(ctx weft.Context, db weft.KVStore, tx weft.Tx, next weft.Deliverer) (*weft.DeliverResult, error) {
	start := time.Now()
	res, err := next.Deliver(ctx, db, tx)
	l := entry{path: weft.GetPath(tx), took: time.Since(start), err: err}
	if err == nil {
		l.msg = res.Log
	}
	l.write(ctx, false)
	return res, err
}

type entry struct {
	path string
	msg  string
	took time.Duration
	err  error
}

// write emits the entry even when msg is empty, the path and duration are
// still worth reporting.
func (e entry) write(ctx weft.Context, check bool) {
	logger := weft.GetLogger(ctx).With("path", e.path, "duration", e.took/time.Microsecond)
	switch {
	case e.err != nil:
		logger.Error(e.msg, "err", e.err)
	case check:
		logger.Debug(e.msg)
	default:
		logger.Info(e.msg)
	}
}
