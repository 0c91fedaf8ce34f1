package splitter

import (
	"github.com/contribute-dao/weft"
	"github.com/contribute-dao/weft/codec"
	"github.com/contribute-dao/weft/coin"
	"github.com/contribute-dao/weft/orm"
)

var stateKey = []byte("state")

// Account is the address collecting the fees to split.
func Account() weft.Address {
	return weft.NewCondition("splitter", "account", []byte("fees")).Address()
}

// ReserveAccount holds the retained hodler share.
func ReserveAccount() weft.Address {
	return weft.NewCondition("splitter", "reserve", []byte("hodler")).Address()
}

// State holds the running totals of the splitter.
type State struct {
	// Retained is the hodler share moved to the reserve account so far.
	Retained    coin.Amount
	Distributed coin.Amount
	Updates     uint64
	LastUpdate  weft.UnixTime
	// ScheduleAnchor is the start of the treasury schedule, set once at
	// genesis.
	ScheduleAnchor weft.UnixTime
}

var _ orm.Model = (*State)(nil)

func (s *State) Marshal() ([]byte, error)   { return codec.Marshal(s) }
func (s *State) Unmarshal(raw []byte) error { return codec.Unmarshal(raw, s) }
func (s *State) Validate() error            { return nil }

// NewStateBucket returns the bucket holding the single splitter state.
func NewStateBucket() orm.ModelBucket {
	return orm.NewModelBucket("splitst", &State{})
}
