package utils

import (
	"strings"

	"github.com/contribute-dao/weft"
	"github.com/tendermint/tendermint/libs/common"
)

// Tag keys set by ActionTagger.
const (
	ActionKey = "action"
	ModuleKey = "module"
)

// ActionTagger tags every delivered transaction with its message path and
// the module owning it, for example action=vault/deposit and module=vault.
// Clients subscribe to these tags to follow deposits or splitter updates.
type ActionTagger struct{}

var _ weft.Decorator = ActionTagger{}

func NewActionTagger() ActionTagger {
	return ActionTagger{}
}

func (ActionTagger) Check(ctx weft.Context, db weft.KVStore, tx weft.Tx, next weft.Checker) (*weft.CheckResult, error) {
	return next.Check(ctx, db, tx)
}

// Deliver tags successful results only.
func (ActionTagger) Deliver(ctx weft.Context, db weft.KVStore, tx weft.Tx, next weft.Deliverer) (*weft.DeliverResult, error) {
	msg, err := tx.GetMsg()
	if err != nil {
		return nil, err
	}
	res, err := next.Deliver(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	res.Tags = append(res.Tags, actionTags(msg.Path())...)
	return res, nil
}

func actionTags(path string) []common.KVPair {
	tags := []common.KVPair{{Key: []byte(ActionKey), Value: []byte(path)}}
	if module := strings.SplitN(path, "/", 2); len(module) == 2 && module[0] != "" {
		tags = append(tags, common.KVPair{Key: []byte(ModuleKey), Value: []byte(module[0])})
	}
	return tags
}
