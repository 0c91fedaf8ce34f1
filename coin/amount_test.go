package coin

import (
	"encoding/json"
	"testing"

	"github.com/contribute-dao/weft/codec"
	"github.com/contribute-dao/weft/errors"
	"github.com/contribute-dao/weft/wefttest/assert"
)

func mustParse(t testing.TB, s string) Amount {
	t.Helper()
	a, err := ParseAmount(s)
	if err != nil {
		t.Fatalf("parse %q: %s", s, err)
	}
	return a
}

func TestAmountZeroValue(t *testing.T) {
	var a Amount
	assert.Equal(t, true, a.IsZero())
	assert.Equal(t, "0", a.String())
	assert.Equal(t, true, a.Equals(Zero()))

	sum, err := a.Add(NewAmount(5))
	assert.Nil(t, err)
	assert.Equal(t, "5", sum.String())
}

func TestAmountArithmetic(t *testing.T) {
	max := mustParse(t, "115792089237316195423570985008687907853269984665640564039457584007913129639935")

	cases := map[string]struct {
		fn      func() (Amount, error)
		want    string
		wantErr *errors.Error
	}{
		"add": {
			fn:   func() (Amount, error) { return NewAmount(7).Add(NewAmount(35)) },
			want: "42",
		},
		"add overflow": {
			fn:      func() (Amount, error) { return max.Add(NewAmount(1)) },
			wantErr: errors.ErrOverflow,
		},
		"sub": {
			fn:   func() (Amount, error) { return NewAmount(42).Sub(NewAmount(2)) },
			want: "40",
		},
		"sub below zero": {
			fn:      func() (Amount, error) { return NewAmount(1).Sub(NewAmount(2)) },
			wantErr: errors.ErrInsufficientAmount,
		},
		"mul div floors": {
			fn:   func() (Amount, error) { return NewAmount(100).MulDiv(NewAmount(1), NewAmount(3)) },
			want: "33",
		},
		"mul div wide intermediate": {
			fn:   func() (Amount, error) { return max.MulDiv(NewAmount(3), NewAmount(3)) },
			want: max.String(),
		},
		"mul div by zero": {
			fn:      func() (Amount, error) { return NewAmount(1).MulDiv(NewAmount(1), Zero()) },
			wantErr: errors.ErrInput,
		},
		"basis points": {
			fn:   func() (Amount, error) { return Whole(100).MulBps(10) },
			want: "100000000000000000",
		},
		"quo": {
			fn:   func() (Amount, error) { return NewAmount(10).QuoUint64(4) },
			want: "2",
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			got, err := tc.fn()
			if !tc.wantErr.Is(err) {
				t.Fatalf("unexpected error: %+v", err)
			}
			if tc.wantErr == nil {
				assert.Equal(t, tc.want, got.String())
			}
		})
	}
}

func TestAmountSubOrZero(t *testing.T) {
	assert.Equal(t, "0", NewAmount(3).SubOrZero(NewAmount(5)).String())
	assert.Equal(t, "2", NewAmount(5).SubOrZero(NewAmount(3)).String())
}

func TestParseHuman(t *testing.T) {
	cases := map[string]struct {
		raw     string
		want    Amount
		wantErr *errors.Error
	}{
		"whole": {
			raw:  "3",
			want: Whole(3),
		},
		"fraction": {
			raw:  "0.5",
			want: mustParse(t, "500000000000000000"),
		},
		"smallest unit": {
			raw:  "0.000000000000000001",
			want: NewAmount(1),
		},
		"too many decimals": {
			raw:     "0.0000000000000000001",
			wantErr: errors.ErrAmount,
		},
		"negative": {
			raw:     "-1",
			wantErr: errors.ErrAmount,
		},
		"garbage": {
			raw:     "one",
			wantErr: errors.ErrAmount,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			got, err := ParseHuman(tc.raw)
			if !tc.wantErr.Is(err) {
				t.Fatalf("unexpected error: %+v", err)
			}
			if tc.wantErr == nil {
				assert.Equal(t, tc.want.String(), got.String())
				back, err := ParseHuman(got.Human())
				assert.Nil(t, err)
				assert.Equal(t, got.String(), back.String())
			}
		})
	}
}

func TestAmountHuman(t *testing.T) {
	assert.Equal(t, "0", Zero().Human())
	assert.Equal(t, "12", Whole(12).Human())
	assert.Equal(t, "1.25", mustParse(t, "1250000000000000000").Human())
}

func TestAmountEncoding(t *testing.T) {
	type holder struct {
		A Amount
		B Amount
	}
	in := holder{A: Whole(1000000), B: Amount{}}

	raw, err := codec.Marshal(in)
	assert.Nil(t, err)
	var out holder
	assert.Nil(t, codec.Unmarshal(raw, &out))
	assert.Equal(t, true, in.A.Equals(out.A))
	assert.Equal(t, true, out.B.IsZero())

	js, err := json.Marshal(in)
	assert.Nil(t, err)
	assert.Equal(t, `{"A":"1000000000000000000000000","B":"0"}`, string(js))

	var fromNumber Amount
	assert.Nil(t, json.Unmarshal([]byte(`42`), &fromNumber))
	assert.Equal(t, "42", fromNumber.String())
}
