package commands_test

import (
	"testing"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRateDriverCommand(t *testing.T) {
	validDriverID := kernel.NewUUID()

	t.Run("should create valid command", func(t *testing.T) {
		cmd, err := commands.NewRateDriverCommand(validDriverID, 4)

		require.NoError(t, err)
		require.NoError(t, cmd.Validate())
		assert.True(t, cmd.DriverID().IsEqual(validDriverID))
		assert.Equal(t, 4, cmd.Rating())
	})

	t.Run("should accept boundary ratings", func(t *testing.T) {
		_, err := commands.NewRateDriverCommand(validDriverID, 1)
		require.NoError(t, err)

		_, err = commands.NewRateDriverCommand(validDriverID, 5)
		require.NoError(t, err)
	})

	t.Run("should fail with rating below range", func(t *testing.T) {
		_, err := commands.NewRateDriverCommand(validDriverID, 0)

		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	})

	t.Run("should fail with rating above range", func(t *testing.T) {
		_, err := commands.NewRateDriverCommand(validDriverID, 6)

		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	})

	t.Run("should fail with invalid driver UUID", func(t *testing.T) {
		var invalidID kernel.UUID

		_, err := commands.NewRateDriverCommand(invalidID, 4)

		require.Error(t, err)
	})

	t.Run("should reject zero-value command", func(t *testing.T) {
		var cmd commands.RateDriverCommand

		assert.ErrorIs(t, cmd.Validate(), commands.ErrRateDriverCommandIsNotConstructed)
	})
}
