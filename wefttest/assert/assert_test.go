package assert

import (
	"fmt"
	"testing"

	"github.com/contribute-dao/weft/errors"
)

// recorder is a Tester that remembers whether the assertion failed. Fatal
// does not stop the goroutine, the helpers return right after calling it.
type recorder struct {
	failed bool
}

func (r *recorder) Helper()                       {}
func (r *recorder) Fatal(...interface{})          { r.failed = true }
func (r *recorder) Fatalf(string, ...interface{}) { r.failed = true }

func (r *recorder) check(t *testing.T, wantFail bool) {
	t.Helper()
	if r.failed != wantFail {
		t.Fatalf("want failed=%v, got %v", wantFail, r.failed)
	}
}

func TestNil(t *testing.T) {
	var nilErr *errors.Error
	var nilSlice []byte

	cases := map[string]struct {
		value    interface{}
		wantFail bool
	}{
		"nil":             {value: nil},
		"typed nil":       {value: nilErr},
		"nil slice":       {value: nilSlice},
		"error":           {value: errors.ErrEmpty, wantFail: true},
		"number":          {value: 0, wantFail: true},
		"non empty slice": {value: []byte{1}, wantFail: true},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			var r recorder
			Nil(&r, tc.value)
			r.check(t, tc.wantFail)
		})
	}
}

func TestEqual(t *testing.T) {
	var r recorder
	Equal(&r, []uint64{2, 10, 34}, []uint64{2, 10, 34})
	r.check(t, false)

	Equal(&r, uint64(1), 1)
	r.check(t, true)
}

func TestPanics(t *testing.T) {
	var r recorder
	Panics(&r, func() { panic("boom") })
	r.check(t, false)

	Panics(&r, func() {})
	r.check(t, true)
}

func TestIsErr(t *testing.T) {
	cases := map[string]struct {
		want     error
		got      error
		wantFail bool
	}{
		"same error":      {want: errors.ErrEmpty, got: errors.ErrEmpty},
		"both nil":        {},
		"wrapped":         {want: errors.ErrEmpty, got: errors.Wrap(errors.ErrEmpty, "ticker")},
		"compared to nil": {got: errors.ErrEmpty, wantFail: true},
		"missing error":   {want: errors.ErrEmpty, wantFail: true},
		"other error":     {want: errors.ErrEmpty, got: errors.ErrAmount, wantFail: true},
		"foreign error":   {want: errors.ErrEmpty, got: fmt.Errorf("empty"), wantFail: true},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			var r recorder
			IsErr(&r, tc.want, tc.got)
			r.check(t, tc.wantFail)
		})
	}
}

func TestFieldError(t *testing.T) {
	cases := map[string]struct {
		err      error
		field    string
		want     *errors.Error
		wantFail bool
	}{
		"single error found": {
			err:   errors.Field("Points", errors.ErrAmount, "zero"),
			field: "Points",
			want:  errors.ErrAmount,
		},
		"no error expected": {
			err:   errors.Field("Points", errors.ErrAmount, "zero"),
			field: "Ticker",
		},
		"unexpected error": {
			err:      errors.Field("Points", errors.ErrAmount, "zero"),
			field:    "Points",
			wantFail: true,
		},
		"different error": {
			err:      errors.Field("Points", errors.ErrAmount, "zero"),
			field:    "Points",
			want:     errors.ErrEmpty,
			wantFail: true,
		},
		"error missing": {
			err:      errors.Field("Points", errors.ErrAmount, "zero"),
			field:    "Ticker",
			want:     errors.ErrAmount,
			wantFail: true,
		},
		"two errors for one field": {
			err: errors.Append(
				errors.Field("Points", errors.ErrAmount, "zero"),
				errors.Field("Points", errors.ErrEmpty, "missing"),
			),
			field:    "Points",
			want:     errors.ErrAmount,
			wantFail: true,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			var r recorder
			FieldError(&r, tc.err, tc.field, tc.want)
			r.check(t, tc.wantFail)
		})
	}
}
