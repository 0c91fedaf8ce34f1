package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStackTrace(t *testing.T) {
	const source = "errors/stacktrace_test.go"

	cases := map[string]struct {
		err  error
		want string
	}{
		"root error": {
			err:  Wrap(ErrDuplicate, "asset TRIG"),
			want: "asset TRIG: duplicate",
		},
		"root error new": {
			err:  ErrEmpty.New("ticker"),
			want: "ticker: value is empty",
		},
		"stdlib error": {
			err:  Wrap(stderrors.New("closed"), "read pool"),
			want: "read pool: closed",
		},
		"field error": {
			err:  Wrap(Field("Points", ErrAmount, "zero"), "pool 2"),
			want: `pool 2: field "Points": zero: invalid amount`,
		},
		"recovered panic": {
			err:  recovered(),
			want: "harvest: panic",
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			require.Equal(t, tc.want, tc.err.Error())
			require.NotNil(t, stackTrace(tc.err))

			full := fmt.Sprintf("%+v", tc.err)
			assert.Contains(t, full, source)
			assert.Contains(t, full, tc.want)

			short := fmt.Sprintf("%v", tc.err)
			assert.True(t, strings.HasPrefix(short, tc.want), short)
			assert.NotContains(t, short, "\n")
			// The location is the caller, not a function of this package.
			assert.Contains(t, short, source+":")
		})
	}
}

func TestStackTraceRecordedOnce(t *testing.T) {
	inner := Wrap(ErrAmount, "inner")
	outer := Wrap(inner, "outer")
	assert.Equal(t, stackTrace(inner), stackTrace(outer))
	assert.Nil(t, stackTrace(ErrAmount))
	assert.Nil(t, stackTrace(nil))
}

func recovered() (err error) {
	defer Recover(&err)
	panic("harvest")
}
