package queries

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var ErrGetDriverLeaderboardQueryIsNotConstructed = errors.New(
	"GetDriverLeaderboardQuery must be created via NewGetDriverLeaderboardQuery constructor",
)

// GetDriverLeaderboardQuery retrieves archived drivers ordered by average
// rating, best first. Matches the ordering the selection pool uses, so the
// leaderboard reflects who gets picked next.
type GetDriverLeaderboardQuery struct {
	guard guard.ConstructorGuard
}

// NewGetDriverLeaderboardQuery creates a query to retrieve the driver
// leaderboard. This is a parameterless query.
func NewGetDriverLeaderboardQuery() GetDriverLeaderboardQuery {
	return GetDriverLeaderboardQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetDriverLeaderboardQueryIsNotConstructed if validation fails.
func (q GetDriverLeaderboardQuery) Validate() error {
	return q.guard.Validate(ErrGetDriverLeaderboardQueryIsNotConstructed)
}

// GetDriverLeaderboardQueryResponse represents one driver in the leaderboard
// read model.
type GetDriverLeaderboardQueryResponse struct {
	ID          kernel.UUID
	Name        string
	Available   bool
	AvgRating   float64
	RatingCount int
}
