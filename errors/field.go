package errors

import (
	"fmt"

	"github.com/pkg/errors"
)

// Field wraps err as the error of a single model field. It returns nil when
// err is nil, so validation can chain calls without checks.
//
// Name fields the Go way, with dots for nesting and indexes for sequences:
// Points, Asset.Ticker, Pools.2.Points.
func Field(name string, err error, description string, args ...interface{}) error {
	if isNilErr(err) {
		return nil
	}
	if stackTrace(err) == nil {
		err = errors.WithStack(err)
	}
	if len(args) > 0 {
		description = fmt.Sprintf(description, args...)
	}
	return &fieldError{parent: err, field: name, desc: description}
}

// AppendField adds the error of a field to errs. A nil fieldErr leaves errs
// unchanged.
func AppendField(errs error, name string, fieldErr error) error {
	return Append(errs, Field(name, fieldErr, ""))
}

type fieldError struct {
	parent error
	field  string
	desc   string
}

func (e *fieldError) Error() string {
	if e.desc == "" {
		return fmt.Sprintf("field %q: %s", e.field, e.parent)
	}
	return fmt.Sprintf("field %q: %s: %s", e.field, e.desc, e.parent)
}

func (e *fieldError) Cause() error { return e.parent }

func (e *fieldError) Field() string { return e.field }

// FieldErrors returns the errors created for the named field anywhere in
// the error tree. A match is not searched any deeper, so for a field
// wrapped twice under the same name only the outer error is returned.
func FieldErrors(err error, name string) []error {
	var found []error
	var walk func(error)
	walk = func(err error) {
		for !isNilErr(err) {
			if f, ok := err.(interface{ Field() string }); ok && f.Field() == name {
				found = append(found, err)
				return
			}
			switch e := err.(type) {
			case unpacker:
				for _, child := range e.Unpack() {
					walk(child)
				}
				return
			case causer:
				err = e.Cause()
			default:
				return
			}
		}
	}
	walk(err)
	return found
}
