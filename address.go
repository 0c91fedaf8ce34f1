package weft

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"strings"

	"github.com/contribute-dao/weft/crypto/bech32"
	"github.com/contribute-dao/weft/errors"
)

// AddressLength is fixed for the lifetime of a chain.
const AddressLength = 20

// AddressHRP is the prefix of bech32 encoded addresses.
const AddressHRP = "weft"

// Address is the truncated sha256 digest of a Condition. Accounts, vaults
// and the splitter are all identified by one.
type Address []byte

// NewAddress returns the address of data, nil for nil data.
func NewAddress(data []byte) Address {
	if data == nil {
		return nil
	}
	h := sha256.Sum256(data)
	return h[:AddressLength]
}

func (a Address) Equals(o Address) bool {
	return bytes.Equal(a, o)
}

func (a Address) Validate() error {
	if len(a) != AddressLength {
		return errors.ErrInput.Newf("address %X: want %d bytes", []byte(a), AddressLength)
	}
	return nil
}

// String is the upper case hex form, see Bech32 for the prefixed one.
func (a Address) String() string {
	if len(a) == 0 {
		return "(nil)"
	}
	return strings.ToUpper(hex.EncodeToString(a))
}

// Bech32 returns the "weft1..." form.
func (a Address) Bech32() string {
	enc, err := bech32.Encode(AddressHRP, a)
	if err != nil {
		return a.String()
	}
	return enc
}

// MarshalJSON writes the hex form.
func (a Address) MarshalJSON() ([]byte, error) {
	return json.Marshal(strings.ToUpper(hex.EncodeToString(a)))
}

// UnmarshalJSON accepts every form ParseAddress does. An empty string is a
// nil address.
func (a *Address) UnmarshalJSON(raw []byte) error {
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return errors.Wrap(errors.ErrInput, err.Error())
	}
	addr, err := parseAddress(s)
	if err != nil {
		return err
	}
	*a = addr
	return nil
}

// ParseAddress reads an address given as plain hex, with a "hex:",
// "bech32:" or "cond:" prefix, or as a bare "weft1..." string.
func ParseAddress(s string) (Address, error) {
	if s == "" {
		return nil, errors.Wrap(errors.ErrEmpty, "address")
	}
	return parseAddress(s)
}

func parseAddress(s string) (Address, error) {
	format, enc := "hex", s
	switch {
	case strings.HasPrefix(s, AddressHRP+"1"):
		format = "bech32"
	case strings.Contains(s, ":"):
		i := strings.IndexByte(s, ':')
		format, enc = s[:i], s[i+1:]
	}
	if enc == "" {
		return nil, nil
	}

	var addr Address
	switch format {
	case "hex":
		raw, err := hex.DecodeString(enc)
		if err != nil {
			return nil, errors.Wrap(errors.ErrInput, "hex address: "+err.Error())
		}
		addr = raw
	case "bech32":
		hrp, payload, err := bech32.Decode(enc)
		if err != nil {
			return nil, errors.Wrap(err, "bech32 address")
		}
		if hrp != AddressHRP {
			return nil, errors.Wrapf(errors.ErrInput, "unexpected address prefix %q", hrp)
		}
		addr = payload
	case "cond":
		var c Condition
		if err := c.parseString(enc); err != nil {
			return nil, err
		}
		if err := c.Validate(); err != nil {
			return nil, err
		}
		addr = c.Address()
	default:
		return nil, errors.ErrType.Newf("unknown address format %q", format)
	}
	if err := addr.Validate(); err != nil {
		return nil, err
	}
	return addr, nil
}
