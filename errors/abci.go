package errors

import (
	"errors"
	"fmt"
	"reflect"
)

// SuccessABCICode is the code of a transaction or query that did not fail.
const SuccessABCICode = 0

// Code 1 is shared by every error that is not rooted in a registered error.
// Outside of debug mode its message is replaced, it may leak internals.
const (
	internalABCICode uint32 = 1
	internalABCILog         = "internal error"
)

// ABCIInfo returns the code and log of an ABCI response for err. In debug
// mode the log carries the full stack trace.
func ABCIInfo(err error, debug bool) (uint32, string) {
	if errIsNil(err) {
		return SuccessABCICode, ""
	}
	code := abciCode(err)
	switch {
	case debug:
		return code, fmt.Sprintf("%+v", err)
	case code == internalABCICode:
		return code, internalABCILog
	default:
		return code, err.Error()
	}
}

// ABCIError recreates an error from the code and log of an ABCI response so
// that a client can test it with Is. Codes that are not registered in this
// process are returned as an internal error.
func ABCIError(code uint32, log string) error {
	if code == SuccessABCICode {
		return nil
	}
	if e := usedCodes[code]; e != nil {
		return Wrap(e, log)
	}
	return Wrap(&Error{code: internalABCICode, desc: internalABCILog}, fmt.Sprintf("code %d: %s", code, log))
}

// Redact replaces errors that are not rooted in a registered error, and
// panics, with a generic internal error. It returns err unchanged in debug
// mode.
func Redact(err error, debug bool) error {
	if debug || errIsNil(err) {
		return err
	}
	if ErrPanic.Is(err) || abciCode(err) == internalABCICode {
		return errors.New(internalABCILog)
	}
	return err
}

// abciCode returns the code of the first error in the cause chain that has
// one. A multi error reports the code of its first member.
func abciCode(err error) uint32 {
	if errIsNil(err) {
		return SuccessABCICode
	}
	for {
		if c, ok := err.(interface{ ABCICode() uint32 }); ok {
			return c.ABCICode()
		}
		c, ok := err.(causer)
		if !ok {
			return internalABCICode
		}
		err = c.Cause()
	}
}

// errIsNil also catches a nil pointer stored in the error interface.
func errIsNil(err error) bool {
	if err == nil {
		return true
	}
	v := reflect.ValueOf(err)
	return v.Kind() == reflect.Ptr && v.IsNil()
}
