package orderstore_test

import (
	"context"
	"testing"

	"dispatch/internal/adapters/out/memory/orderstore"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/ports"
	"dispatch/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newOrder(t *testing.T) *order.Order {
	t.Helper()
	o, err := order.NewOrder(kernel.NewUUID(), kernel.NewUUID(), []string{"Pad Thai"}, 12.5)
	require.NoError(t, err)
	return o
}

func TestStore_Add(t *testing.T) {
	ctx := context.Background()

	t.Run("should store and enqueue a placed order", func(t *testing.T) {
		store := orderstore.NewStore()
		o := newOrder(t)

		require.NoError(t, store.Add(ctx, o))

		queued, err := store.QueuedCount(ctx)
		require.NoError(t, err)
		assert.Equal(t, 1, queued)

		got, err := store.Get(ctx, o.ID())
		require.NoError(t, err)
		assert.True(t, got.IsEqual(o))
	})

	t.Run("should reject duplicate order", func(t *testing.T) {
		store := orderstore.NewStore()
		o := newOrder(t)
		require.NoError(t, store.Add(ctx, o))

		err := store.Add(ctx, o)

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("should reject improperly constructed order", func(t *testing.T) {
		store := orderstore.NewStore()

		err := store.Add(ctx, &order.Order{})

		require.ErrorIs(t, err, order.ErrOrderIsNotConstructed)
	})
}

func TestStore_AcceptNext(t *testing.T) {
	ctx := context.Background()

	t.Run("should assign orders strictly first come first served", func(t *testing.T) {
		store := orderstore.NewStore()
		first := newOrder(t)
		second := newOrder(t)
		third := newOrder(t)
		for _, o := range []*order.Order{first, second, third} {
			require.NoError(t, store.Add(ctx, o))
		}

		accepted, err := store.AcceptNext(ctx, kernel.NewUUID())
		require.NoError(t, err)
		assert.True(t, accepted.IsEqual(first))

		accepted, err = store.AcceptNext(ctx, kernel.NewUUID())
		require.NoError(t, err)
		assert.True(t, accepted.IsEqual(second))

		accepted, err = store.AcceptNext(ctx, kernel.NewUUID())
		require.NoError(t, err)
		assert.True(t, accepted.IsEqual(third))
	})

	t.Run("should transition the order and record the driver", func(t *testing.T) {
		store := orderstore.NewStore()
		o := newOrder(t)
		require.NoError(t, store.Add(ctx, o))
		driverID := kernel.NewUUID()

		accepted, err := store.AcceptNext(ctx, driverID)

		require.NoError(t, err)
		assert.Equal(t, order.Accepted, accepted.Status())
		require.NotNil(t, accepted.Driver())
		assert.True(t, accepted.Driver().IsEqual(driverID))

		queued, err := store.QueuedCount(ctx)
		require.NoError(t, err)
		assert.Equal(t, 0, queued)
	})

	t.Run("should return ErrIntakeEmpty when nothing is queued", func(t *testing.T) {
		store := orderstore.NewStore()

		_, err := store.AcceptNext(ctx, kernel.NewUUID())

		require.ErrorIs(t, err, ports.ErrIntakeEmpty)
	})

	t.Run("should reject invalid driver id without dequeuing", func(t *testing.T) {
		store := orderstore.NewStore()
		require.NoError(t, store.Add(ctx, newOrder(t)))
		var invalidID kernel.UUID

		_, err := store.AcceptNext(ctx, invalidID)

		require.Error(t, err)
		queued, qErr := store.QueuedCount(ctx)
		require.NoError(t, qErr)
		assert.Equal(t, 1, queued)
	})
}

func TestStore_Get(t *testing.T) {
	ctx := context.Background()

	t.Run("should return ObjectNotFound for unknown id", func(t *testing.T) {
		store := orderstore.NewStore()

		_, err := store.Get(ctx, kernel.NewUUID())

		require.ErrorIs(t, err, errs.ErrObjectNotFound)
	})

	t.Run("should keep delivered orders forever", func(t *testing.T) {
		store := orderstore.NewStore()
		o := newOrder(t)
		require.NoError(t, store.Add(ctx, o))
		_, err := store.AcceptNext(ctx, kernel.NewUUID())
		require.NoError(t, err)
		require.NoError(t, o.Start())
		require.NoError(t, o.Deliver())

		got, err := store.Get(ctx, o.ID())

		require.NoError(t, err)
		assert.Equal(t, order.Delivered, got.Status())
	})
}

func TestStore_GetAll(t *testing.T) {
	ctx := context.Background()

	t.Run("should list orders in placement order", func(t *testing.T) {
		store := orderstore.NewStore()
		first := newOrder(t)
		second := newOrder(t)
		require.NoError(t, store.Add(ctx, first))
		require.NoError(t, store.Add(ctx, second))

		all, err := store.GetAll(ctx)

		require.NoError(t, err)
		require.Len(t, all, 2)
		assert.True(t, all[0].IsEqual(first))
		assert.True(t, all[1].IsEqual(second))
	})
}

func TestStore_CountByStatus(t *testing.T) {
	ctx := context.Background()

	store := orderstore.NewStore()
	placed := newOrder(t)
	accepted := newOrder(t)
	require.NoError(t, store.Add(ctx, accepted))
	require.NoError(t, store.Add(ctx, placed))
	_, err := store.AcceptNext(ctx, kernel.NewUUID())
	require.NoError(t, err)

	counts, err := store.CountByStatus(ctx)

	require.NoError(t, err)
	assert.Equal(t, 1, counts[order.Placed])
	assert.Equal(t, 1, counts[order.Accepted])
	assert.Equal(t, 0, counts[order.Delivered])
}
