package gconf

import (
	"context"
	"testing"

	"github.com/contribute-dao/weft"
	"github.com/contribute-dao/weft/codec"
	"github.com/contribute-dao/weft/coin"
	"github.com/contribute-dao/weft/errors"
	"github.com/contribute-dao/weft/store"
	"github.com/contribute-dao/weft/wefttest"
)

type updateFeesMsg struct {
	Patch *feeConfig
}

func (*updateFeesMsg) Path() string                 { return "fees/update_configuration" }
func (m *updateFeesMsg) Marshal() ([]byte, error)   { return codec.Marshal(m) }
func (m *updateFeesMsg) Unmarshal(raw []byte) error { return codec.Unmarshal(raw, m) }
func (m *updateFeesMsg) Validate() error {
	if m.Patch == nil {
		return errors.Wrap(errors.ErrEmpty, "patch")
	}
	return nil
}

// wrongPatchMsg carries a patch of another configuration type.
type wrongPatchMsg struct {
	Patch *struct{ Admin weft.Address }
}

func (*wrongPatchMsg) Path() string                 { return "fees/update_configuration" }
func (m *wrongPatchMsg) Marshal() ([]byte, error)   { return codec.Marshal(m) }
func (m *wrongPatchMsg) Unmarshal(raw []byte) error { return codec.Unmarshal(raw, m) }
func (m *wrongPatchMsg) Validate() error            { return nil }

func TestUpdateConfiguration(t *testing.T) {
	admin := wefttest.NewCondition()
	newAdmin := wefttest.NewCondition()
	initial := feeConfig{
		Admin:   admin.Address(),
		FeeBps:  7000,
		Label:   "trig",
		Minimum: coin.WholeCoin(1, "TRIG"),
	}

	cases := map[string]struct {
		stored  bool
		signer  weft.Condition
		msg     weft.Msg
		wantErr *errors.Error
		want    feeConfig
	}{
		"all fields": {
			stored: true,
			signer: admin,
			msg: &updateFeesMsg{Patch: &feeConfig{
				Admin:   newAdmin.Address(),
				FeeBps:  5000,
				Label:   "lp",
				Minimum: coin.WholeCoin(2, "TRIG"),
			}},
			want: feeConfig{
				Admin:   newAdmin.Address(),
				FeeBps:  5000,
				Label:   "lp",
				Minimum: coin.WholeCoin(2, "TRIG"),
			},
		},
		"zero fields are kept": {
			stored: true,
			signer: admin,
			msg:    &updateFeesMsg{Patch: &feeConfig{FeeBps: 6500}},
			want: feeConfig{
				Admin:   admin.Address(),
				FeeBps:  6500,
				Label:   "trig",
				Minimum: coin.WholeCoin(1, "TRIG"),
			},
		},
		"only the admin": {
			stored:  true,
			signer:  newAdmin,
			msg:     &updateFeesMsg{Patch: &feeConfig{FeeBps: 6500}},
			wantErr: errors.ErrUnauthorized,
		},
		"result must be valid": {
			stored:  true,
			signer:  admin,
			msg:     &updateFeesMsg{Patch: &feeConfig{FeeBps: 20000}},
			wantErr: errors.ErrInput,
		},
		"empty patch": {
			stored:  true,
			signer:  admin,
			msg:     &updateFeesMsg{},
			wantErr: errors.ErrEmpty,
		},
		"other patch type": {
			stored:  true,
			signer:  admin,
			msg:     &wrongPatchMsg{Patch: &struct{ Admin weft.Address }{Admin: newAdmin.Address()}},
			wantErr: errors.ErrMsg,
		},
		"nothing stored": {
			signer:  admin,
			msg:     &updateFeesMsg{Patch: &feeConfig{FeeBps: 6500}},
			wantErr: errors.ErrNotFound,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			db := store.MemStore()
			if tc.stored {
				conf := initial
				if err := Save(db, "fees", &conf); err != nil {
					t.Fatalf("save: %s", err)
				}
			}

			auth := &wefttest.CtxAuth{Key: "auth"}
			h := NewUpdateConfigurationHandler("fees", &feeConfig{}, auth)
			ctx := auth.SetConditions(context.Background(), tc.signer)
			tx := &wefttest.Tx{Msg: tc.msg}

			cache := db.CacheWrap()
			if _, err := h.Check(ctx, cache, tx); !tc.wantErr.Is(err) {
				t.Fatalf("unexpected check error: %+v", err)
			}
			cache.Discard()
			if _, err := h.Deliver(ctx, db, tx); !tc.wantErr.Is(err) {
				t.Fatalf("unexpected deliver error: %+v", err)
			}
			if tc.wantErr != nil {
				return
			}

			var got feeConfig
			if err := Load(db, "fees", &got); err != nil {
				t.Fatalf("load: %s", err)
			}
			assertSameConfig(t, &tc.want, &got)
		})
	}
}
