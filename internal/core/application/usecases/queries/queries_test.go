package queries_test

import (
	"context"
	"testing"

	"dispatch/internal/core/application/usecases/queries"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetOrderHistoryQuery_Validate(t *testing.T) {
	t.Run("should accept constructed query", func(t *testing.T) {
		query := queries.NewGetOrderHistoryQuery()

		assert.NoError(t, query.Validate())
	})

	t.Run("should reject zero-value query", func(t *testing.T) {
		var query queries.GetOrderHistoryQuery

		assert.ErrorIs(t, query.Validate(), queries.ErrGetOrderHistoryQueryIsNotConstructed)
	})
}

func TestGetDriverLeaderboardQuery_Validate(t *testing.T) {
	t.Run("should accept constructed query", func(t *testing.T) {
		query := queries.NewGetDriverLeaderboardQuery()

		assert.NoError(t, query.Validate())
	})

	t.Run("should reject zero-value query", func(t *testing.T) {
		var query queries.GetDriverLeaderboardQuery

		assert.ErrorIs(t, query.Validate(), queries.ErrGetDriverLeaderboardQueryIsNotConstructed)
	})
}

func TestQueryHandlers_RejectUnvalidatedQuery(t *testing.T) {
	ctx := context.Background()

	t.Run("order history handler", func(t *testing.T) {
		handler := queries.NewGetOrderHistoryQueryHandler(nil)

		_, err := handler.Handle(ctx, queries.GetOrderHistoryQuery{})

		require.ErrorIs(t, err, queries.ErrGetOrderHistoryQueryIsNotConstructed)
	})

	t.Run("driver leaderboard handler", func(t *testing.T) {
		handler := queries.NewGetDriverLeaderboardQueryHandler(nil)

		_, err := handler.Handle(ctx, queries.GetDriverLeaderboardQuery{})

		require.ErrorIs(t, err, queries.ErrGetDriverLeaderboardQueryIsNotConstructed)
	})
}
