package items

import (
	"github.com/contribute-dao/weft"
	"github.com/contribute-dao/weft/errors"
	"github.com/contribute-dao/weft/orm"
	"github.com/contribute-dao/weft/x/cash"
)

// Controller is the item ledger used by other extensions.
type Controller interface {
	// Balance returns the number of items of a class held by owner.
	Balance(db weft.ReadOnlyKVStore, collection string, class uint32, owner weft.Address) (uint64, error)

	// BalanceBatch returns the balance of each (owner, class) pair.
	BalanceBatch(db weft.ReadOnlyKVStore, collection string, owners []weft.Address, classes []uint32) ([]uint64, error)

	// BatchTransfer moves counts[i] items of classes[i] from src to dest.
	// The operator must be src or an operator approved by src. All or
	// nothing is transferred.
	BatchTransfer(db weft.KVStore, collection string, operator, src, dest weft.Address, classes []uint32, counts []uint64) error

	// SetApprovalForAll grants or revokes operator rights over every item
	// the owner holds in a collection.
	SetApprovalForAll(db weft.KVStore, collection string, owner, operator weft.Address, approved bool) error

	// IsApprovedForAll returns true if operator may move owner items.
	IsApprovedForAll(db weft.ReadOnlyKVStore, collection string, owner, operator weft.Address) (bool, error)
}

// BaseController is the default implementation of Controller.
type BaseController struct {
	collections orm.ModelBucket
	holdings    orm.ModelBucket
	operators   orm.ModelBucket
}

var _ Controller = BaseController{}

// NewController returns a controller that operates on the items buckets.
func NewController() BaseController {
	return BaseController{
		collections: NewCollectionBucket(),
		holdings:    NewHoldingBucket(),
		operators:   NewOperatorBucket(),
	}
}

// DeclareCollection creates an empty collection of given number of classes.
func (c BaseController) DeclareCollection(db weft.KVStore, name string, classes uint32) error {
	switch err := c.collections.Has(db, []byte(name)); {
	case err == nil:
		return errors.Wrapf(errors.ErrDuplicate, "collection %s", name)
	case !errors.ErrNotFound.Is(err):
		return err
	}
	col := Collection{Name: name, Classes: classes, Supply: make([]uint64, classes)}
	return c.collections.Put(db, []byte(name), &col)
}

// Collection returns the collection declaration.
func (c BaseController) Collection(db weft.ReadOnlyKVStore, name string) (*Collection, error) {
	var col Collection
	if err := c.collections.One(db, []byte(name), &col); err != nil {
		return nil, errors.Wrapf(err, "collection %s", name)
	}
	return &col, nil
}

func (c BaseController) checkClass(col *Collection, class uint32) error {
	if class >= col.Classes {
		return errors.Wrapf(errors.ErrInput, "class %d not in collection %s", class, col.Name)
	}
	return nil
}

// Mint creates count new items of a class owned by dest.
func (c BaseController) Mint(db weft.KVStore, collection string, dest weft.Address, class uint32, count uint64) error {
	col, err := c.Collection(db, collection)
	if err != nil {
		return err
	}
	if err := c.checkClass(col, class); err != nil {
		return err
	}
	if col.Supply[class]+count < col.Supply[class] {
		return errors.Wrap(errors.ErrOverflow, "supply")
	}
	col.Supply[class] += count
	if err := c.collections.Put(db, []byte(collection), col); err != nil {
		return errors.Wrap(err, "save collection")
	}
	have, err := c.Balance(db, collection, class, dest)
	if err != nil {
		return err
	}
	return c.setBalance(db, collection, class, dest, have+count)
}

func (c BaseController) Balance(db weft.ReadOnlyKVStore, collection string, class uint32, owner weft.Address) (uint64, error) {
	var h Holding
	switch err := c.holdings.One(db, HoldingKey(collection, class, owner), &h); {
	case err == nil:
		return h.Count, nil
	case errors.ErrNotFound.Is(err):
		return 0, nil
	default:
		return 0, err
	}
}

func (c BaseController) BalanceBatch(db weft.ReadOnlyKVStore, collection string, owners []weft.Address, classes []uint32) ([]uint64, error) {
	if len(owners) != len(classes) {
		return nil, errors.Wrap(errors.ErrInput, "owners and classes length mismatch")
	}
	res := make([]uint64, len(owners))
	for i := range owners {
		n, err := c.Balance(db, collection, classes[i], owners[i])
		if err != nil {
			return nil, err
		}
		res[i] = n
	}
	return res, nil
}

func (c BaseController) setBalance(db weft.KVStore, collection string, class uint32, owner weft.Address, count uint64) error {
	key := HoldingKey(collection, class, owner)
	if count == 0 {
		if err := c.holdings.Delete(db, key); err != nil && !errors.ErrNotFound.Is(err) {
			return err
		}
		return nil
	}
	return c.holdings.Put(db, key, &Holding{Count: count})
}

func (c BaseController) BatchTransfer(db weft.KVStore, collection string, operator, src, dest weft.Address, classes []uint32, counts []uint64) error {
	if len(classes) != len(counts) {
		return errors.Wrap(errors.ErrInput, "classes and counts length mismatch")
	}
	col, err := c.Collection(db, collection)
	if err != nil {
		return err
	}
	if !operator.Equals(src) {
		ok, err := c.IsApprovedForAll(db, collection, src, operator)
		if err != nil {
			return err
		}
		if !ok {
			return errors.Wrap(cash.ErrTransferRejected, "operator not approved")
		}
	}

	for i, class := range classes {
		if err := c.checkClass(col, class); err != nil {
			return err
		}
		if counts[i] == 0 {
			continue
		}
		have, err := c.Balance(db, collection, class, src)
		if err != nil {
			return err
		}
		if have < counts[i] {
			return errors.Wrapf(cash.ErrTransferRejected, "class %d: holding %d, transferring %d", class, have, counts[i])
		}
		if err := c.setBalance(db, collection, class, src, have-counts[i]); err != nil {
			return err
		}
		got, err := c.Balance(db, collection, class, dest)
		if err != nil {
			return err
		}
		if got+counts[i] < got {
			return errors.Wrap(errors.ErrOverflow, "destination holding")
		}
		if err := c.setBalance(db, collection, class, dest, got+counts[i]); err != nil {
			return err
		}
	}
	return nil
}

func (c BaseController) SetApprovalForAll(db weft.KVStore, collection string, owner, operator weft.Address, approved bool) error {
	if _, err := c.Collection(db, collection); err != nil {
		return err
	}
	key := OperatorKey(collection, owner, operator)
	if !approved {
		if err := c.operators.Delete(db, key); err != nil && !errors.ErrNotFound.Is(err) {
			return err
		}
		return nil
	}
	return c.operators.Put(db, key, &Operator{Approved: true})
}

func (c BaseController) IsApprovedForAll(db weft.ReadOnlyKVStore, collection string, owner, operator weft.Address) (bool, error) {
	var op Operator
	switch err := c.operators.One(db, OperatorKey(collection, owner, operator), &op); {
	case err == nil:
		return op.Approved, nil
	case errors.ErrNotFound.Is(err):
		return false, nil
	default:
		return false, err
	}
}
