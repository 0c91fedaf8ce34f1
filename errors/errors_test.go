package errors

import (
	stdlib "errors"
	"fmt"
	"testing"

	"github.com/pkg/errors"
)

func TestCause(t *testing.T) {
	closed := stdlib.New("store closed")

	cases := map[string]struct {
		err  error
		root error
	}{
		"root error":      {err: ErrNotFound, root: ErrNotFound},
		"wrapped twice":   {err: Wrap(Wrap(ErrNotFound, "pool 1"), "vault trig"), root: ErrNotFound},
		"field error":     {err: Field("Points", ErrAmount, "zero"), root: ErrAmount},
		"stdlib root":     {err: Wrap(closed, "load stake"), root: closed},
		"formatted wraps": {err: Wrapf(ErrCurrency, "ticker %q", "tdao"), root: ErrCurrency},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			if got := errors.Cause(tc.err); got != tc.root {
				t.Fatalf("want %v, got %v", tc.root, got)
			}
		})
	}
}

func TestErrorIs(t *testing.T) {
	cases := map[string]struct {
		kind   *Error
		err    error
		wantIs bool
	}{
		"same error":             {kind: ErrNotFound, err: ErrNotFound, wantIs: true},
		"other error":            {kind: ErrNotFound, err: ErrModel},
		"wrapped":                {kind: ErrNotFound, err: Wrap(ErrNotFound, "stake"), wantIs: true},
		"wrapped other":          {kind: ErrNotFound, err: Wrap(ErrOverflow, "acc")},
		"stdlib":                 {kind: ErrNotFound, err: fmt.Errorf("not found")},
		"wrapped stdlib":         {kind: ErrNotFound, err: Wrap(fmt.Errorf("not found"), "stake")},
		"nil kind and nil":       {wantIs: true},
		"nil kind and typed nil": {err: (*customError)(nil), wantIs: true},
		"nil kind and error":     {err: ErrNotFound},
		"kind and nil":           {kind: ErrNotFound},
		"group member":           {kind: ErrNotFound, err: Append(ErrState, ErrNotFound), wantIs: true},
		"wrapped group member":   {kind: ErrNotFound, err: Append(ErrState, Wrap(ErrNotFound, "pool")), wantIs: true},
		"wrapped group":          {kind: ErrAmount, err: Wrap(Append(ErrState, ErrAmount), "deposit"), wantIs: true},
		"group without member":   {kind: ErrNotFound, err: Append(ErrState, ErrModel)},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			if got := tc.kind.Is(tc.err); got != tc.wantIs {
				t.Fatalf("want %v, got %v", tc.wantIs, got)
			}
		})
	}
}

type customError struct{}

func (*customError) Error() string { return "custom error" }

func TestWrapEmpty(t *testing.T) {
	if err := Wrap(nil, "wrapping <nil>"); err != nil {
		t.Fatal(err)
	}
}

func TestAppend(t *testing.T) {
	if err := Append(nil, nil); err != nil {
		t.Fatalf("want nil, got %v", err)
	}
	if err := Append(nil, ErrState); err != ErrState {
		t.Fatalf("single error must be returned as it is, got %v", err)
	}

	err := Append(ErrState, Append(ErrEmpty, ErrModel))
	code, _ := ABCIInfo(err, false)
	if code != ErrState.code {
		t.Fatalf("want code of the first error, got %d", code)
	}
	for _, e := range []*Error{ErrState, ErrEmpty, ErrModel} {
		if !e.Is(err) {
			t.Errorf("%q is expected to be part of the group", e)
		}
	}
}

func TestRecover(t *testing.T) {
	fn := func() (err error) {
		defer Recover(&err)
		panic("boom")
	}
	if err := fn(); !ErrPanic.Is(err) {
		t.Fatalf("want panic error, got %v", err)
	}
}

func TestRegisterDuplicatedCodePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("registering a used code must panic")
		}
	}()
	Register(ErrNotFound.code, "again")
}
