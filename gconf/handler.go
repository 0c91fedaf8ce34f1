package gconf

import (
	"reflect"

	"github.com/contribute-dao/weft"
	"github.com/contribute-dao/weft/errors"
	"github.com/contribute-dao/weft/x"
)

// OwnedConfig is a configuration that only its owner may change.
type OwnedConfig interface {
	Configuration
	GetOwner() weft.Address
}

// UpdateConfigurationHandler applies a patch to the stored configuration
// of a module. The message must have a Patch field holding a pointer to
// the configuration type. Every non zero field of the patch replaces the
// stored value.
type UpdateConfigurationHandler struct {
	pkg  string
	typ  reflect.Type
	auth x.Authenticator
}

var _ weft.Handler = UpdateConfigurationHandler{}

// NewUpdateConfigurationHandler returns the handler for the configuration
// of pkg. The prototype only declares the configuration type. The
// configuration must already exist: without it there is no owner who
// could sign the update.
func NewUpdateConfigurationHandler(pkg string, prototype OwnedConfig, auth x.Authenticator) UpdateConfigurationHandler {
	return UpdateConfigurationHandler{
		pkg:  pkg,
		typ:  reflect.TypeOf(prototype).Elem(),
		auth: auth,
	}
}

func (h UpdateConfigurationHandler) Check(ctx weft.Context, store weft.KVStore, tx weft.Tx) (*weft.CheckResult, error) {
	if _, err := h.update(ctx, store, tx); err != nil {
		return nil, err
	}
	return &weft.CheckResult{}, nil
}

func (h UpdateConfigurationHandler) Deliver(ctx weft.Context, store weft.KVStore, tx weft.Tx) (*weft.DeliverResult, error) {
	conf, err := h.update(ctx, store, tx)
	if err != nil {
		return nil, err
	}
	weft.GetLogger(ctx).Info("configuration updated", "package", h.pkg, "owner", conf.GetOwner())
	return &weft.DeliverResult{}, nil
}

func (h UpdateConfigurationHandler) update(ctx weft.Context, store weft.KVStore, tx weft.Tx) (OwnedConfig, error) {
	current := reflect.New(h.typ).Interface().(OwnedConfig)
	if err := Load(store, h.pkg, current); err != nil {
		return nil, errors.Wrap(err, "load configuration")
	}
	if err := x.RequireAddress(ctx, h.auth, current.GetOwner(), "owner"); err != nil {
		return nil, err
	}

	p, err := loadPatch(tx, h.typ)
	if err != nil {
		return nil, err
	}
	applyPatch(reflect.ValueOf(current).Elem(), p)

	if err := Save(store, h.pkg, current); err != nil {
		return nil, errors.Wrap(err, "save configuration")
	}
	return current, nil
}

// applyPatch copies every non zero field of p into dst. Both are structs
// of the same type.
func applyPatch(dst, p reflect.Value) {
	for i := 0; i < p.NumField(); i++ {
		if f := p.Field(i); !f.IsZero() {
			dst.Field(i).Set(f)
		}
	}
}

// loadPatch returns the struct the Patch field of the message points to.
func loadPatch(tx weft.Tx, typ reflect.Type) (reflect.Value, error) {
	var none reflect.Value
	msg, err := tx.GetMsg()
	switch {
	case err != nil:
		return none, errors.Wrap(err, "get message")
	case msg == nil:
		return none, errors.Wrap(errors.ErrMsg, "no message")
	}
	if err := msg.Validate(); err != nil {
		return none, errors.Wrap(err, "invalid message")
	}

	m := reflect.Indirect(reflect.ValueOf(msg))
	if m.Kind() != reflect.Struct {
		return none, errors.Wrapf(errors.ErrInput, "unsupported message %T", msg)
	}
	field := m.FieldByName("Patch")
	switch {
	case !field.IsValid():
		return none, errors.Wrapf(errors.ErrInput, "%T has no Patch field", msg)
	case field.Type() != reflect.PtrTo(typ):
		return none, errors.Wrapf(errors.ErrMsg, "patch of type %s, want *%s", field.Type(), typ)
	case field.IsNil():
		return none, errors.Wrap(errors.ErrState, "patch is required")
	}
	return field.Elem(), nil
}
