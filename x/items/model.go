package items

import (
	"encoding/binary"
	"regexp"

	"github.com/contribute-dao/weft"
	"github.com/contribute-dao/weft/codec"
	"github.com/contribute-dao/weft/errors"
	"github.com/contribute-dao/weft/orm"
)

// IsCollectionName validates collection names.
var IsCollectionName = regexp.MustCompile(`^[a-z0-9_]{3,16}$`).MatchString

// Collection declares a set of item classes.
type Collection struct {
	Name string
	// Classes is the number of classes. Valid class IDs are 0 to
	// Classes-1.
	Classes uint32
	// Supply holds the number of items minted per class.
	Supply []uint64
}

var _ orm.Model = (*Collection)(nil)

func (c *Collection) Marshal() ([]byte, error)   { return codec.Marshal(c) }
func (c *Collection) Unmarshal(raw []byte) error { return codec.Unmarshal(raw, c) }

func (c *Collection) Validate() error {
	var errs error
	if !IsCollectionName(c.Name) {
		errs = errors.AppendField(errs, "Name", errors.ErrInput)
	}
	if c.Classes == 0 {
		errs = errors.AppendField(errs, "Classes", errors.ErrEmpty)
	}
	if len(c.Supply) != int(c.Classes) {
		errs = errors.AppendField(errs, "Supply", errors.Wrap(errors.ErrModel, "one entry per class required"))
	}
	return errs
}

// Holding is the number of items of a class held by an owner.
type Holding struct {
	Count uint64
}

var _ orm.Model = (*Holding)(nil)

func (h *Holding) Marshal() ([]byte, error)   { return codec.Marshal(h) }
func (h *Holding) Unmarshal(raw []byte) error { return codec.Unmarshal(raw, h) }
func (h *Holding) Validate() error            { return nil }

// Operator marks an address allowed to move every item an owner holds in a
// collection.
type Operator struct {
	Approved bool
}

var _ orm.Model = (*Operator)(nil)

func (o *Operator) Marshal() ([]byte, error)   { return codec.Marshal(o) }
func (o *Operator) Unmarshal(raw []byte) error { return codec.Unmarshal(raw, o) }
func (o *Operator) Validate() error            { return nil }

// NewCollectionBucket returns a bucket of collections keyed by name.
func NewCollectionBucket() orm.ModelBucket {
	return orm.NewModelBucket("collection", &Collection{})
}

// NewHoldingBucket returns a bucket keyed by HoldingKey.
func NewHoldingBucket() orm.ModelBucket {
	return orm.NewModelBucket("holding", &Holding{})
}

// NewOperatorBucket returns a bucket keyed by OperatorKey.
func NewOperatorBucket() orm.ModelBucket {
	return orm.NewModelBucket("operator", &Operator{})
}

// HoldingKey is "<collection>/<class be32><owner>".
func HoldingKey(collection string, class uint32, owner weft.Address) []byte {
	key := make([]byte, 0, len(collection)+5+len(owner))
	key = append(key, collection...)
	key = append(key, '/')
	var c [4]byte
	binary.BigEndian.PutUint32(c[:], class)
	key = append(key, c[:]...)
	return append(key, owner...)
}

// OperatorKey is "<collection>/<owner><operator>".
func OperatorKey(collection string, owner, operator weft.Address) []byte {
	key := make([]byte, 0, len(collection)+1+len(owner)+len(operator))
	key = append(key, collection...)
	key = append(key, '/')
	key = append(key, owner...)
	return append(key, operator...)
}
