package storage

import (
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProductRowToDomain(t *testing.T) {
	t.Run("Regular", func(t *testing.T) {
		row := productRow{
			ID:            "1",
			Title:         "iPhone 15 Pro Max 256GB Natural Titanium",
			Price:         1199,
			OriginalPrice: 1299,
			Discount:      100,
			Currency:      "USD",
			Platform:      "Amazon",
			Rating:        sql.NullFloat64{Float64: 4.8, Valid: true},
			Reviews:       1234,
			Features:      `["A17 Pro chip", "5G"]`,
		}

		p, err := row.toDomain()
		require.NoError(t, err)

		assert.Equal(t, "1", p.ID)
		assert.Equal(t, 1199.0, p.Price)
		require.NotNil(t, p.Rating)
		assert.Equal(t, 4.8, *p.Rating)
		assert.Equal(t, []string{"A17 Pro chip", "5G"}, p.Features)
	})

	t.Run("NullRating", func(t *testing.T) {
		p, err := productRow{ID: "7", Features: "[]"}.toDomain()
		require.NoError(t, err)
		assert.Nil(t, p.Rating)
		assert.Zero(t, p.RatingOrZero())
	})

	t.Run("NullFeatures", func(t *testing.T) {
		p, err := productRow{ID: "8", Features: "null"}.toDomain()
		require.NoError(t, err)
		assert.Equal(t, []string{}, p.Features)
	})

	t.Run("BrokenFeatures", func(t *testing.T) {
		_, err := productRow{ID: "9", Features: "{A17,5G}"}.toDomain()
		require.Error(t, err)
	})
}
