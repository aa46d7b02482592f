package commands_test

import (
	"testing"

	"sales/internal/core/application/usecases/commands"
	"sales/internal/core/domain/model/order"
	"sales/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUpdateOrderStatusCommand(t *testing.T) {
	t.Run("creates_valid_command", func(t *testing.T) {
		cmd, err := commands.NewUpdateOrderStatusCommand(42, order.Confirmed)
		require.NoError(t, err)

		assert.Equal(t, int64(42), cmd.OrderID())
		assert.Equal(t, order.Confirmed, cmd.Status())
		require.NoError(t, cmd.Validate())
	})

	t.Run("rejects_non_positive_order_id", func(t *testing.T) {
		_, err := commands.NewUpdateOrderStatusCommand(0, order.Confirmed)
		require.ErrorIs(t, err, commands.ErrOrderIDIsRequired)

		_, err = commands.NewUpdateOrderStatusCommand(-1, order.Confirmed)
		require.ErrorIs(t, err, commands.ErrOrderIDIsRequired)
	})

	t.Run("rejects_invalid_status", func(t *testing.T) {
		_, err := commands.NewUpdateOrderStatusCommand(42, order.Unknown)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("unconstructed_command_fails_validation", func(t *testing.T) {
		cmd := commands.UpdateOrderStatusCommand{}
		require.ErrorIs(t, cmd.Validate(), commands.ErrUpdateOrderStatusCommandIsNotConstructed)
	})
}
