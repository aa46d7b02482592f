package order_test

import (
	"testing"

	"sales/internal/core/domain/model/order"
	"sales/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustItems(t *testing.T) []order.Item {
	t.Helper()

	first, err := order.NewItem(1, 2)
	require.NoError(t, err)
	second, err := order.NewItem(2, 1)
	require.NoError(t, err)

	return []order.Item{first, second}
}

func TestNewItem(t *testing.T) {
	t.Run("creates_valid_item", func(t *testing.T) {
		item, err := order.NewItem(7, 3)
		require.NoError(t, err)
		assert.Equal(t, int64(7), item.ProductID())
		assert.Equal(t, 3, item.Quantity())
		require.NoError(t, item.Validate())
	})

	t.Run("rejects_zero_quantity", func(t *testing.T) {
		_, err := order.NewItem(7, 0)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("rejects_negative_quantity", func(t *testing.T) {
		_, err := order.NewItem(7, -1)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("zero_value_item_fails_validation", func(t *testing.T) {
		var item order.Item
		require.ErrorIs(t, item.Validate(), order.ErrItemIsNotConstructed)
	})
}

func TestNewOrder(t *testing.T) {
	t.Run("creates_pending_order_with_items_preserved", func(t *testing.T) {
		items := mustItems(t)

		o, err := order.NewOrder("Test Customer", items)
		require.NoError(t, err)

		assert.Equal(t, order.Pending, o.Status())
		assert.Equal(t, "Test Customer", o.CustomerName())
		assert.Equal(t, int64(0), o.ID())
		require.Len(t, o.Items(), 2)
		assert.Equal(t, int64(1), o.Items()[0].ProductID())
		assert.Equal(t, 2, o.Items()[0].Quantity())
		assert.Equal(t, int64(2), o.Items()[1].ProductID())
		assert.Equal(t, 1, o.Items()[1].Quantity())
		require.NoError(t, o.Validate())
	})

	t.Run("rejects_empty_customer_name", func(t *testing.T) {
		_, err := order.NewOrder("", mustItems(t))
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("rejects_empty_item_list", func(t *testing.T) {
		_, err := order.NewOrder("Test Customer", nil)
		require.ErrorIs(t, err, errs.ErrValueIsRequired)

		_, err = order.NewOrder("Test Customer", []order.Item{})
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("rejects_unconstructed_item", func(t *testing.T) {
		_, err := order.NewOrder("Test Customer", []order.Item{{}})
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("items_are_copied_on_read", func(t *testing.T) {
		o, err := order.NewOrder("Test Customer", mustItems(t))
		require.NoError(t, err)

		read := o.Items()
		replacement, err := order.NewItem(99, 9)
		require.NoError(t, err)
		read[0] = replacement

		assert.Equal(t, int64(1), o.Items()[0].ProductID())
	})

	t.Run("zero_value_order_fails_validation", func(t *testing.T) {
		var o order.Order
		require.ErrorIs(t, o.Validate(), order.ErrOrderIsNotConstructed)
	})
}

func TestOrder_MarkPersisted(t *testing.T) {
	t.Run("assigns_id_once", func(t *testing.T) {
		o, err := order.NewOrder("Test Customer", mustItems(t))
		require.NoError(t, err)

		require.NoError(t, o.MarkPersisted(42))
		assert.Equal(t, int64(42), o.ID())

		require.ErrorIs(t, o.MarkPersisted(43), order.ErrOrderIDAlreadyAssigned)
		assert.Equal(t, int64(42), o.ID())
	})

	t.Run("rejects_non_positive_id", func(t *testing.T) {
		o, err := order.NewOrder("Test Customer", mustItems(t))
		require.NoError(t, err)

		require.ErrorIs(t, o.MarkPersisted(0), errs.ErrValueIsInvalid)
		require.ErrorIs(t, o.MarkPersisted(-1), errs.ErrValueIsInvalid)
	})
}

func TestRestoreOrder(t *testing.T) {
	t.Run("restores_with_status_and_id", func(t *testing.T) {
		o, err := order.RestoreOrder(7, "Test Customer", mustItems(t), order.Confirmed)
		require.NoError(t, err)

		assert.Equal(t, int64(7), o.ID())
		assert.Equal(t, order.Confirmed, o.Status())
		require.NoError(t, o.Validate())
	})

	t.Run("rejects_invalid_status", func(t *testing.T) {
		_, err := order.RestoreOrder(7, "Test Customer", mustItems(t), order.Unknown)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("rejects_missing_id", func(t *testing.T) {
		_, err := order.RestoreOrder(0, "Test Customer", mustItems(t), order.Pending)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestOrder_ChangeStatus(t *testing.T) {
	t.Run("pending_to_confirmed", func(t *testing.T) {
		o, err := order.NewOrder("Test Customer", mustItems(t))
		require.NoError(t, err)

		require.NoError(t, o.ChangeStatus(order.Confirmed))
		assert.Equal(t, order.Confirmed, o.Status())
	})

	t.Run("confirmed_to_cancelled", func(t *testing.T) {
		o, err := order.NewOrder("Test Customer", mustItems(t))
		require.NoError(t, err)

		require.NoError(t, o.ChangeStatus(order.Confirmed))
		require.NoError(t, o.ChangeStatus(order.Cancelled))
		assert.Equal(t, order.Cancelled, o.Status())
	})

	t.Run("illegal_transition_leaves_order_unchanged", func(t *testing.T) {
		o, err := order.NewOrder("Test Customer", mustItems(t))
		require.NoError(t, err)
		require.NoError(t, o.ChangeStatus(order.Cancelled))

		err = o.ChangeStatus(order.Confirmed)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
		assert.Equal(t, order.Cancelled, o.Status())
	})
}

func TestOrder_IsEqual(t *testing.T) {
	t.Run("orders_with_same_id_are_equal", func(t *testing.T) {
		a, err := order.RestoreOrder(5, "A", mustItems(t), order.Pending)
		require.NoError(t, err)
		b, err := order.RestoreOrder(5, "B", mustItems(t), order.Confirmed)
		require.NoError(t, err)

		assert.True(t, a.IsEqual(b))
	})

	t.Run("unpersisted_orders_are_never_equal", func(t *testing.T) {
		a, err := order.NewOrder("A", mustItems(t))
		require.NoError(t, err)
		b, err := order.NewOrder("A", mustItems(t))
		require.NoError(t, err)

		assert.False(t, a.IsEqual(b))
		assert.False(t, a.IsEqual(nil))
	})
}
