package errors

import (
	"fmt"

	"github.com/pkg/errors"
)

// Root errors shared by all packages. Codes 8, 15 and 18 are free.
var (
	// ErrUnauthorized is returned when the transaction is not signed by
	// the account an operation requires, such as the admin of a vault.
	ErrUnauthorized = Register(2, "unauthorized")

	ErrNotFound = Register(3, "not found")

	// ErrMsg is returned for a message that fails validation or cannot be
	// routed.
	ErrMsg = Register(4, "invalid message")

	// ErrModel is returned for a model that fails validation before it is
	// saved.
	ErrModel = Register(5, "invalid model")

	// ErrDuplicate is returned when a unique key or index is taken.
	ErrDuplicate = Register(6, "duplicate")

	// ErrHuman marks a code path that must never be reached.
	ErrHuman = Register(7, "coding error")

	ErrEmpty = Register(9, "value is empty")

	// ErrState is returned when stored data breaks an invariant, for
	// example pool points that do not sum up to the vault total.
	ErrState = Register(10, "invalid state")

	ErrType = Register(11, "invalid type")

	// ErrInsufficientAmount is returned when a balance cannot cover a
	// transfer.
	ErrInsufficientAmount = Register(12, "insufficient amount")

	ErrAmount = Register(13, "invalid amount")

	// ErrInput is the catch-all for malformed input.
	ErrInput = Register(14, "invalid input")

	// ErrOverflow is returned when an amount does not fit in 256 bits.
	ErrOverflow = Register(16, "an operation cannot be completed due to value overflow")

	// ErrCurrency is returned for an invalid or unexpected ticker.
	ErrCurrency = Register(17, "invalid currency code")

	ErrDatabase = Register(19, "database")

	// ErrIteratorDone is returned by an exhausted iterator.
	ErrIteratorDone = Register(20, "iterator done")

	// ErrNetwork is returned when a remote node cannot answer a request.
	ErrNetwork = Register(21, "network")

	// ErrPanic is the root of a recovered panic. Its message is redacted
	// outside of debug mode.
	ErrPanic = Register(111222, "panic")
)

// Register declares a root error with its ABCI code. Codes are unique, a
// second registration of a code panics. Call it from package level var
// blocks only.
//
// Core errors use codes below 30. Extensions use their own range of ten:
// cash 30, sigs 40, vault 60, splitter 70, keeper 90.
func Register(code uint32, description string) *Error {
	if e, ok := usedCodes[code]; ok {
		panic(fmt.Sprintf("error with code %d is already registered: %q", code, e.desc))
	}
	err := &Error{code: code, desc: description}
	usedCodes[code] = err
	return err
}

// usedCodes maps every registered code to its error. Code 1 is reserved
// for errors that are not rooted in a registered one.
var usedCodes = map[uint32]*Error{
	internalABCICode: nil,
}

// Error is a root error. Every error returned by a handler should wrap one,
// so that clients can tell failures apart by their ABCI code.
type Error struct {
	code uint32
	desc string
}

func (e Error) Error() string { return e.desc }

func (e Error) ABCICode() uint32 { return e.code }

// New wraps the root error with a description. It is the same as
// Wrap(e, description).
func (e *Error) New(description string) error {
	return Wrap(e, description)
}

func (e *Error) Newf(description string, args ...interface{}) error {
	return e.New(fmt.Sprintf(description, args...))
}

// Is reports whether err is this root error or wraps it. A multi error
// matches when any of its members does. A nil root error matches only a
// nil err.
func (kind *Error) Is(err error) bool {
	if kind == nil {
		return errIsNil(err)
	}
	for err != nil {
		if err == kind {
			return true
		}
		if u, ok := err.(unpacker); ok {
			for _, member := range u.Unpack() {
				if kind.Is(member) {
					return true
				}
			}
		}
		c, ok := err.(causer)
		if !ok {
			return false
		}
		err = c.Cause()
	}
	return false
}

// Wrap adds a description to err. The first wrap records the stack trace.
// A nil err gives nil, so a function can end with
//
//	return errors.Wrap(err, "save stake")
//
// Errors without an ABCI code are reported as internal errors.
func Wrap(err error, description string) error {
	if err == nil {
		return nil
	}
	if stackTrace(err) == nil {
		err = errors.WithStack(err)
	}
	return &wrappedError{parent: err, msg: description}
}

func Wrapf(err error, format string, args ...interface{}) error {
	return Wrap(err, fmt.Sprintf(format, args...))
}

type wrappedError struct {
	msg    string
	parent error
}

func (e *wrappedError) Error() string {
	return e.msg + ": " + e.parent.Error()
}

func (e *wrappedError) Cause() error { return e.parent }

// Recover turns a panic into an ErrPanic assigned to err. It must be
// deferred directly:
//
//	defer errors.Recover(&err)
func Recover(err *error) {
	if r := recover(); r != nil {
		*err = Wrapf(ErrPanic, "%v", r)
	}
}

// WithType wraps err with the Go type of obj.
func WithType(err error, obj interface{}) error {
	return Wrap(err, fmt.Sprintf("%T", obj))
}

type causer interface {
	Cause() error
}

// unpacker groups several errors.
type unpacker interface {
	Unpack() []error
}
