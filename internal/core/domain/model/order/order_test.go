package order_test

import (
	"errors"
	"testing"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewOrder(t *testing.T) {
	validID := kernel.NewUUID()
	validCustomerID := kernel.NewUUID()
	validItems := []string{"Margherita Pizza", "Tiramisu"}
	validTotal := 18.0

	t.Run("should create valid order with all valid parameters", func(t *testing.T) {
		o, err := order.NewOrder(validID, validCustomerID, validItems, validTotal)

		require.NoError(t, err)
		assert.NotNil(t, o)
		require.NoError(t, o.Validate())
		assert.True(t, o.ID().IsEqual(validID))
		assert.True(t, o.CustomerID().IsEqual(validCustomerID))
		assert.Equal(t, validItems, o.Items())
		assert.InDelta(t, validTotal, o.TotalPrice(), 0.0001)
		assert.Equal(t, order.Placed, o.Status())
		assert.Nil(t, o.Driver())
		assert.WithinDuration(t, time.Now(), o.CreatedAt(), time.Second)
	})

	t.Run("should fail with invalid order UUID", func(t *testing.T) {
		var invalidID kernel.UUID

		o, err := order.NewOrder(invalidID, validCustomerID, validItems, validTotal)

		require.Error(t, err)
		assert.Nil(t, o)
		assert.Contains(t, err.Error(), "UUID must be created")
	})

	t.Run("should fail with invalid customer UUID", func(t *testing.T) {
		var invalidCustomerID kernel.UUID

		o, err := order.NewOrder(validID, invalidCustomerID, validItems, validTotal)

		require.Error(t, err)
		assert.Nil(t, o)
		assert.Contains(t, err.Error(), "customerId")
	})

	t.Run("should fail with no items", func(t *testing.T) {
		o, err := order.NewOrder(validID, validCustomerID, nil, validTotal)

		require.Error(t, err)
		assert.Nil(t, o)
		assert.True(t, errors.Is(err, order.ErrItemsAreRequired))
	})

	t.Run("should fail with negative total price", func(t *testing.T) {
		o, err := order.NewOrder(validID, validCustomerID, validItems, -1.50)

		require.Error(t, err)
		assert.Nil(t, o)
		assert.True(t, errors.Is(err, errs.ErrValueIsInvalid))
	})

	t.Run("should accept zero total price", func(t *testing.T) {
		o, err := order.NewOrder(validID, validCustomerID, validItems, 0)

		require.NoError(t, err)
		assert.InDelta(t, 0.0, o.TotalPrice(), 0.0001)
	})

	t.Run("should handle multiple validation errors", func(t *testing.T) {
		var invalidID kernel.UUID

		o, err := order.NewOrder(invalidID, validCustomerID, nil, -5)

		require.Error(t, err)
		assert.Nil(t, o)
		assert.Contains(t, err.Error(), "UUID must be created")
		assert.Contains(t, err.Error(), "items")
	})

	t.Run("should copy the items slice", func(t *testing.T) {
		items := []string{"Pad Thai"}
		o, err := order.NewOrder(validID, validCustomerID, items, validTotal)
		require.NoError(t, err)

		items[0] = "mutated"

		assert.Equal(t, []string{"Pad Thai"}, o.Items())
	})
}

func TestOrder_Validate(t *testing.T) {
	t.Run("should fail for nil order", func(t *testing.T) {
		var o *order.Order

		assert.ErrorIs(t, o.Validate(), order.ErrOrderIsNotConstructed)
	})

	t.Run("should fail for order created without constructor", func(t *testing.T) {
		o := &order.Order{}

		assert.ErrorIs(t, o.Validate(), order.ErrOrderIsNotConstructed)
	})
}

func TestOrder_Accept(t *testing.T) {
	newPlacedOrder := func(t *testing.T) *order.Order {
		t.Helper()
		o, err := order.NewOrder(kernel.NewUUID(), kernel.NewUUID(), []string{"Ramen Bowl"}, 14.0)
		require.NoError(t, err)
		return o
	}

	t.Run("should assign driver to placed order", func(t *testing.T) {
		o := newPlacedOrder(t)
		driverID := kernel.NewUUID()

		err := o.Accept(driverID)

		require.NoError(t, err)
		assert.Equal(t, order.Accepted, o.Status())
		require.NotNil(t, o.Driver())
		assert.True(t, o.Driver().IsEqual(driverID))
	})

	t.Run("should reject invalid driver UUID", func(t *testing.T) {
		o := newPlacedOrder(t)
		var invalidID kernel.UUID

		err := o.Accept(invalidID)

		require.Error(t, err)
		assert.Equal(t, order.Placed, o.Status())
		assert.Nil(t, o.Driver())
	})

	t.Run("should reject second acceptance", func(t *testing.T) {
		o := newPlacedOrder(t)
		firstDriver := kernel.NewUUID()
		require.NoError(t, o.Accept(firstDriver))

		err := o.Accept(kernel.NewUUID())

		require.Error(t, err)
		assert.True(t, errors.Is(err, errs.ErrValueIsInvalid))
		assert.True(t, o.Driver().IsEqual(firstDriver))
	})
}

func TestOrder_Lifecycle(t *testing.T) {
	t.Run("should walk full lifecycle keeping the driver", func(t *testing.T) {
		o, err := order.NewOrder(kernel.NewUUID(), kernel.NewUUID(), []string{"Green Curry"}, 13.5)
		require.NoError(t, err)
		driverID := kernel.NewUUID()

		require.NoError(t, o.Accept(driverID))
		require.NoError(t, o.Start())
		assert.Equal(t, order.InProgress, o.Status())

		require.NoError(t, o.Deliver())
		assert.Equal(t, order.Delivered, o.Status())
		require.NotNil(t, o.Driver())
		assert.True(t, o.Driver().IsEqual(driverID))
	})

	t.Run("should reject starting a placed order", func(t *testing.T) {
		o, err := order.NewOrder(kernel.NewUUID(), kernel.NewUUID(), []string{"Cheeseburger"}, 9.9)
		require.NoError(t, err)

		require.Error(t, o.Start())
		assert.Equal(t, order.Placed, o.Status())
	})

	t.Run("should reject delivering before start", func(t *testing.T) {
		o, err := order.NewOrder(kernel.NewUUID(), kernel.NewUUID(), []string{"Cheeseburger"}, 9.9)
		require.NoError(t, err)
		require.NoError(t, o.Accept(kernel.NewUUID()))

		require.Error(t, o.Deliver())
		assert.Equal(t, order.Accepted, o.Status())
	})

	t.Run("should reject any transition after delivery", func(t *testing.T) {
		o, err := order.NewOrder(kernel.NewUUID(), kernel.NewUUID(), []string{"Fish Tacos"}, 10.5)
		require.NoError(t, err)
		require.NoError(t, o.Accept(kernel.NewUUID()))
		require.NoError(t, o.Start())
		require.NoError(t, o.Deliver())

		require.Error(t, o.Start())
		require.Error(t, o.Deliver())
		assert.Equal(t, order.Delivered, o.Status())
	})
}

func TestRestoreOrder(t *testing.T) {
	id := kernel.NewUUID()
	customerID := kernel.NewUUID()
	driverID := kernel.NewUUID()
	items := []string{"Falafel Wrap"}
	createdAt := time.Now().Add(-time.Hour)

	t.Run("should restore placed order without driver", func(t *testing.T) {
		o, err := order.RestoreOrder(id, customerID, items, 8.9, createdAt, order.Placed, nil)

		require.NoError(t, err)
		assert.Equal(t, order.Placed, o.Status())
		assert.Nil(t, o.Driver())
		assert.Equal(t, createdAt, o.CreatedAt())
	})

	t.Run("should restore in-progress order with driver", func(t *testing.T) {
		o, err := order.RestoreOrder(id, customerID, items, 8.9, createdAt, order.InProgress, &driverID)

		require.NoError(t, err)
		assert.Equal(t, order.InProgress, o.Status())
		require.NotNil(t, o.Driver())
		assert.True(t, o.Driver().IsEqual(driverID))
	})

	t.Run("should reject placed order with driver", func(t *testing.T) {
		o, err := order.RestoreOrder(id, customerID, items, 8.9, createdAt, order.Placed, &driverID)

		require.Error(t, err)
		assert.Nil(t, o)
	})

	t.Run("should reject accepted order without driver", func(t *testing.T) {
		o, err := order.RestoreOrder(id, customerID, items, 8.9, createdAt, order.Accepted, nil)

		require.Error(t, err)
		assert.Nil(t, o)
	})

	t.Run("should reject unknown status", func(t *testing.T) {
		o, err := order.RestoreOrder(id, customerID, items, 8.9, createdAt, order.Unknown, nil)

		require.Error(t, err)
		assert.Nil(t, o)
	})
}

func TestOrder_IsEqual(t *testing.T) {
	id := kernel.NewUUID()

	first, err := order.NewOrder(id, kernel.NewUUID(), []string{"Ramen Bowl"}, 14.0)
	require.NoError(t, err)
	second, err := order.NewOrder(id, kernel.NewUUID(), []string{"Pad Thai"}, 12.5)
	require.NoError(t, err)
	third, err := order.NewOrder(kernel.NewUUID(), kernel.NewUUID(), []string{"Pad Thai"}, 12.5)
	require.NoError(t, err)

	assert.True(t, first.IsEqual(second))
	assert.False(t, first.IsEqual(third))
}
