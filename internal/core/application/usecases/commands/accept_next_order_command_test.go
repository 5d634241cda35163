package commands_test

import (
	"testing"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAcceptNextOrderCommand(t *testing.T) {
	t.Run("should create valid command", func(t *testing.T) {
		driverID := kernel.NewUUID()

		cmd, err := commands.NewAcceptNextOrderCommand(driverID)

		require.NoError(t, err)
		require.NoError(t, cmd.Validate())
		assert.True(t, cmd.DriverID().IsEqual(driverID))
	})

	t.Run("should fail with invalid driver UUID", func(t *testing.T) {
		var invalidID kernel.UUID

		_, err := commands.NewAcceptNextOrderCommand(invalidID)

		require.Error(t, err)
	})

	t.Run("should reject zero-value command", func(t *testing.T) {
		var cmd commands.AcceptNextOrderCommand

		assert.ErrorIs(t, cmd.Validate(), commands.ErrAcceptNextOrderCommandIsNotConstructed)
	})
}
