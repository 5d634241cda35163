package driver

import (
	"dispatch/internal/pkg/errs"
)

const (
	// ratingCapacity is the number of most recent ratings that contribute
	// to a driver's rolling average.
	ratingCapacity = 10
	// MinRating is the lowest accepted rating value.
	MinRating = 1
	// MaxRating is the highest accepted rating value.
	MaxRating = 5
	// emptySlot marks a rating slot that has never been written.
	emptySlot = -1
)

// RatingBuffer is a fixed-capacity circular buffer of the most recent driver
// ratings. Once the buffer is full, each new rating overwrites the oldest
// one, so the rolling average always reflects the last ratingCapacity
// ratings only.
//
// Empty slots never count toward the average: a driver with three ratings has
// an average over exactly those three.
type RatingBuffer struct {
	slots [ratingCapacity]int
	next  int
}

// NewRatingBuffer creates an empty rating buffer.
func NewRatingBuffer() *RatingBuffer {
	buffer := &RatingBuffer{}
	for i := range buffer.slots {
		buffer.slots[i] = emptySlot
	}
	return buffer
}

// Add records a rating, overwriting the oldest one when the buffer is full.
// Ratings outside [MinRating, MaxRating] are rejected with no state change.
func (b *RatingBuffer) Add(rating int) error {
	if rating < MinRating || rating > MaxRating {
		return errs.NewValueIsOutOfRangeError("rating", rating, MinRating, MaxRating)
	}

	b.slots[b.next] = rating
	b.next = (b.next + 1) % ratingCapacity
	return nil
}

// Average returns the arithmetic mean of the populated slots only.
// Returns 0.0 when no rating has been recorded yet.
func (b *RatingBuffer) Average() float64 {
	sum, count := 0, 0
	for _, rating := range b.slots {
		if rating == emptySlot {
			continue
		}
		sum += rating
		count++
	}

	if count == 0 {
		return 0.0
	}
	return float64(sum) / float64(count)
}

// Count returns the number of populated slots.
func (b *RatingBuffer) Count() int {
	count := 0
	for _, rating := range b.slots {
		if rating != emptySlot {
			count++
		}
	}
	return count
}
