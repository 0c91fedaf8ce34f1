package app

import (
	"context"
	"testing"

	"github.com/contribute-dao/weft/errors"
	"github.com/contribute-dao/weft/store"
	"github.com/contribute-dao/weft/wefttest"
	"github.com/contribute-dao/weft/x/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChain(t *testing.T) {
	d1 := &wefttest.Decorator{}
	d2 := &wefttest.Decorator{}
	h := &wefttest.Handler{}

	stack := ChainDecorators(
		d1,
		nil,
		utils.NewLogging(),
		utils.NewRecovery(),
		d2,
	).WithHandler(h)

	ctx := context.Background()
	db := store.MemStore()
	tx := &wefttest.Tx{Msg: &wefttest.Msg{RoutePath: "splitter/update"}}

	_, err := stack.Check(ctx, db, tx)
	require.NoError(t, err)
	_, err = stack.Deliver(ctx, db, tx)
	require.NoError(t, err)

	assert.Equal(t, 2, d1.CallCount())
	assert.Equal(t, 2, d2.CallCount())
	assert.Equal(t, 2, h.CallCount())
}

func TestChainStopsOnDecoratorError(t *testing.T) {
	d1 := &wefttest.Decorator{}
	d2 := &wefttest.Decorator{CheckErr: errors.ErrUnauthorized, DeliverErr: errors.ErrUnauthorized}
	h := &wefttest.Handler{}

	stack := ChainDecorators(d1).Chain(d2).WithHandler(h)

	ctx := context.Background()
	db := store.MemStore()
	tx := &wefttest.Tx{Msg: &wefttest.Msg{RoutePath: "splitter/update"}}

	_, err := stack.Check(ctx, db, tx)
	assert.True(t, errors.ErrUnauthorized.Is(err))
	_, err = stack.Deliver(ctx, db, tx)
	assert.True(t, errors.ErrUnauthorized.Is(err))

	assert.Equal(t, 2, d1.CallCount())
	assert.Equal(t, 2, d2.CallCount())
	assert.Equal(t, 0, h.CallCount())
}
