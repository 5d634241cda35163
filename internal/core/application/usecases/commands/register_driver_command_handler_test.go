package commands_test

import (
	"context"
	"testing"

	"dispatch/internal/core/application/usecases/commands"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRegisterDriverCommand(t *testing.T) {
	t.Run("should create valid command", func(t *testing.T) {
		cmd, err := commands.NewRegisterDriverCommand("Alice")

		require.NoError(t, err)
		require.NoError(t, cmd.Validate())
		assert.Equal(t, "Alice", cmd.Name())
	})

	t.Run("should fail with empty name", func(t *testing.T) {
		_, err := commands.NewRegisterDriverCommand("")

		require.ErrorIs(t, err, commands.ErrNameIsRequired)
	})

	t.Run("should reject zero-value command", func(t *testing.T) {
		var cmd commands.RegisterDriverCommand

		assert.ErrorIs(t, cmd.Validate(), commands.ErrRegisterDriverCommandIsNotConstructed)
	})
}

func TestRegisterDriverCommandHandler_Handle(t *testing.T) {
	ctx := context.Background()

	t.Run("should build the aggregate and register it", func(t *testing.T) {
		dispatcher := &fakeDispatcher{}
		handler := commands.NewRegisterDriverCommandHandler(dispatcher)
		cmd, err := commands.NewRegisterDriverCommand("Alice")
		require.NoError(t, err)

		driverID, err := handler.Handle(ctx, cmd)

		require.NoError(t, err)
		require.Len(t, dispatcher.registered, 1)
		registered := dispatcher.registered[0]
		assert.Equal(t, "Alice", registered.Name())
		assert.True(t, registered.ID().IsEqual(driverID))
		assert.True(t, registered.IsAvailable())
	})

	t.Run("should reject zero-value command before the dispatcher", func(t *testing.T) {
		dispatcher := &fakeDispatcher{}
		handler := commands.NewRegisterDriverCommandHandler(dispatcher)

		_, err := handler.Handle(ctx, commands.RegisterDriverCommand{})

		require.ErrorIs(t, err, commands.ErrRegisterDriverCommandIsNotConstructed)
		assert.Empty(t, dispatcher.registered)
	})
}
