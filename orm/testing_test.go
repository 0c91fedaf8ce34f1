package orm

import (
	"github.com/contribute-dao/weft/codec"
	"github.com/contribute-dao/weft/errors"
)

// counter is a minimal model used by the tests of this package.
type counter struct {
	Count int64
}

func (c *counter) Marshal() ([]byte, error) {
	return codec.Marshal(c)
}

func (c *counter) Unmarshal(raw []byte) error {
	return codec.Unmarshal(raw, c)
}

func (c *counter) Validate() error {
	if c.Count < 0 {
		return errors.Wrap(errors.ErrModel, "negative count")
	}
	return nil
}

// other is a model of a different type than counter.
type other struct {
	Name string
}

func (o *other) Marshal() ([]byte, error)   { return codec.Marshal(o) }
func (o *other) Unmarshal(raw []byte) error { return codec.Unmarshal(raw, o) }
func (o *other) Validate() error            { return nil }
