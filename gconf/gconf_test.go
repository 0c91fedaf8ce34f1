package gconf

import (
	"encoding/json"
	"testing"

	"github.com/contribute-dao/weft"
	"github.com/contribute-dao/weft/codec"
	"github.com/contribute-dao/weft/coin"
	"github.com/contribute-dao/weft/errors"
	"github.com/contribute-dao/weft/store"
	"github.com/contribute-dao/weft/wefttest"
	"github.com/contribute-dao/weft/wefttest/assert"
)

// feeConfig is shaped like the module configurations: an owner, a share in
// basis points, a label and a minimum amount.
type feeConfig struct {
	Admin   weft.Address `json:"admin"`
	FeeBps  int64        `json:"fee_bps"`
	Label   string       `json:"label"`
	Minimum coin.Coin    `json:"minimum"`
}

func (c *feeConfig) GetOwner() weft.Address     { return c.Admin }
func (c *feeConfig) Marshal() ([]byte, error)   { return codec.Marshal(c) }
func (c *feeConfig) Unmarshal(raw []byte) error { return codec.Unmarshal(raw, c) }

func (c *feeConfig) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Admin", c.Admin.Validate())
	if c.FeeBps < 0 || c.FeeBps > 10000 {
		errs = errors.AppendField(errs, "FeeBps", errors.ErrInput)
	}
	errs = errors.AppendField(errs, "Minimum", c.Minimum.Validate())
	return errs
}

func assertSameConfig(t *testing.T, want, got *feeConfig) {
	t.Helper()
	assert.Equal(t, want.Admin, got.Admin)
	assert.Equal(t, want.FeeBps, got.FeeBps)
	assert.Equal(t, want.Label, got.Label)
	if !want.Minimum.Equals(got.Minimum) {
		t.Fatalf("want minimum %s, got %s", want.Minimum, got.Minimum)
	}
}

func TestSaveLoad(t *testing.T) {
	admin := wefttest.NewCondition().Address()

	cases := map[string]struct {
		conf    *feeConfig
		wantErr *errors.Error
	}{
		"valid": {
			conf: &feeConfig{Admin: admin, FeeBps: 7000, Label: "trig", Minimum: coin.WholeCoin(1, "TRIG")},
		},
		"bad admin": {
			conf:    &feeConfig{Admin: weft.Address("short"), Minimum: coin.WholeCoin(1, "TRIG")},
			wantErr: errors.ErrInput,
		},
		"share above one": {
			conf:    &feeConfig{Admin: admin, FeeBps: 10001, Minimum: coin.WholeCoin(1, "TRIG")},
			wantErr: errors.ErrInput,
		},
		"no ticker": {
			conf:    &feeConfig{Admin: admin},
			wantErr: errors.ErrCurrency,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			db := store.MemStore()
			err := Save(db, "fees", tc.conf)
			if !tc.wantErr.Is(err) {
				t.Fatalf("unexpected error: %+v", err)
			}

			var got feeConfig
			err = Load(db, "fees", &got)
			if tc.wantErr != nil {
				assert.IsErr(t, errors.ErrNotFound, err)
				return
			}
			assert.Nil(t, err)
			assertSameConfig(t, tc.conf, &got)
		})
	}
}

func TestKeysArePerModule(t *testing.T) {
	admin := wefttest.NewCondition().Address()
	db := store.MemStore()
	assert.Nil(t, Save(db, "vault", &feeConfig{Admin: admin, FeeBps: 1, Minimum: coin.WholeCoin(1, "TDAO")}))
	assert.Nil(t, Save(db, "splitter", &feeConfig{Admin: admin, FeeBps: 2, Minimum: coin.WholeCoin(1, "TDAO")}))

	var v, s feeConfig
	assert.Nil(t, Load(db, "vault", &v))
	assert.Nil(t, Load(db, "splitter", &s))
	assert.Equal(t, int64(1), v.FeeBps)
	assert.Equal(t, int64(2), s.FeeBps)
	assert.Equal(t, "_c:vault", string(Key("vault")))
}

func TestInitConfig(t *testing.T) {
	admin := wefttest.NewCondition().Address()
	raw := `{"conf": {"fees": {
		"admin": "` + admin.String() + `",
		"fee_bps": 5000,
		"label": "lp",
		"minimum": "0.5 TRIG"
	}}}`

	var opts weft.Options
	if err := json.Unmarshal([]byte(raw), &opts); err != nil {
		t.Fatalf("genesis: %s", err)
	}

	db := store.MemStore()
	assert.Nil(t, InitConfig(db, opts, "fees", &feeConfig{}))

	minimum, err := coin.ParseHumanFormat("0.5 TRIG")
	assert.Nil(t, err)
	var got feeConfig
	assert.Nil(t, Load(db, "fees", &got))
	assertSameConfig(t, &feeConfig{Admin: admin, FeeBps: 5000, Label: "lp", Minimum: minimum}, &got)

	assert.IsErr(t, errors.ErrNotFound, InitConfig(db, opts, "vault", &feeConfig{}))
	assert.IsErr(t, errors.ErrNotFound, InitConfig(db, weft.Options{}, "fees", &feeConfig{}))
}
