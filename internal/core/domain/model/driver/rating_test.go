package driver_test

import (
	"errors"
	"testing"

	"dispatch/internal/core/domain/model/driver"
	"dispatch/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRatingBuffer_Add(t *testing.T) {
	t.Run("should accept ratings within range", func(t *testing.T) {
		buffer := driver.NewRatingBuffer()

		for rating := driver.MinRating; rating <= driver.MaxRating; rating++ {
			require.NoError(t, buffer.Add(rating))
		}

		assert.Equal(t, 5, buffer.Count())
	})

	t.Run("should reject rating below minimum", func(t *testing.T) {
		buffer := driver.NewRatingBuffer()

		err := buffer.Add(0)

		require.Error(t, err)
		assert.True(t, errors.Is(err, errs.ErrValueIsOutOfRange))
		assert.Equal(t, 0, buffer.Count())
	})

	t.Run("should reject rating above maximum", func(t *testing.T) {
		buffer := driver.NewRatingBuffer()

		err := buffer.Add(6)

		require.Error(t, err)
		assert.True(t, errors.Is(err, errs.ErrValueIsOutOfRange))
		assert.Equal(t, 0, buffer.Count())
	})
}

func TestRatingBuffer_Average(t *testing.T) {
	t.Run("should return zero for empty buffer", func(t *testing.T) {
		buffer := driver.NewRatingBuffer()

		assert.InDelta(t, 0.0, buffer.Average(), 0.0001)
	})

	t.Run("should average populated slots only", func(t *testing.T) {
		buffer := driver.NewRatingBuffer()
		require.NoError(t, buffer.Add(4))
		require.NoError(t, buffer.Add(5))
		require.NoError(t, buffer.Add(3))

		assert.InDelta(t, 4.0, buffer.Average(), 0.0001)
		assert.Equal(t, 3, buffer.Count())
	})

	t.Run("should keep only the most recent ratings once full", func(t *testing.T) {
		buffer := driver.NewRatingBuffer()

		// Ten 1s fill the buffer, then an 11th rating of 5 evicts the
		// oldest 1: average becomes (9*1 + 5) / 10.
		for i := 0; i < 10; i++ {
			require.NoError(t, buffer.Add(1))
		}
		require.NoError(t, buffer.Add(5))

		assert.Equal(t, 10, buffer.Count())
		assert.InDelta(t, 1.4, buffer.Average(), 0.0001)
	})

	t.Run("should roll over completely after capacity more ratings", func(t *testing.T) {
		buffer := driver.NewRatingBuffer()
		for i := 0; i < 10; i++ {
			require.NoError(t, buffer.Add(1))
		}

		for i := 0; i < 10; i++ {
			require.NoError(t, buffer.Add(5))
		}

		assert.InDelta(t, 5.0, buffer.Average(), 0.0001)
	})
}
