package queries

import (
	"context"

	"dispatch/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetDriverLeaderboardQueryHandler retrieves archived drivers from the
// database, best rated first.
// Uses direct SQL queries for optimal read performance in the CQRS pattern.
type GetDriverLeaderboardQueryHandler struct {
	db *gorm.DB
}

// NewGetDriverLeaderboardQueryHandler creates a handler for leaderboard
// queries. Requires a GORM database connection for query execution.
func NewGetDriverLeaderboardQueryHandler(db *gorm.DB) GetDriverLeaderboardQueryHandler {
	return GetDriverLeaderboardQueryHandler{db: db}
}

// Handle executes the query to retrieve all archived drivers ordered by
// average rating descending, with name as a stable secondary sort.
func (h GetDriverLeaderboardQueryHandler) Handle(
	ctx context.Context,
	query GetDriverLeaderboardQuery,
) ([]GetDriverLeaderboardQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}
	if h.db == nil {
		return nil, gorm.ErrInvalidDB
	}

	drivers := make([]GetDriverLeaderboardQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			name,
			available,
			avg_rating,
			rating_count
		FROM drivers
		ORDER BY avg_rating DESC, name
	`).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var record GetDriverLeaderboardQueryResponse
		var id uuid.UUID

		err = rows.Scan(
			&id,
			&record.Name,
			&record.Available,
			&record.AvgRating,
			&record.RatingCount,
		)
		if err != nil {
			return nil, err
		}

		driverID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		record.ID = driverID

		drivers = append(drivers, record)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return drivers, nil
}
