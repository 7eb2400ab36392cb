package engine_test

import (
	"testing"

	"github.com/niksmo/pricecompare/internal/adapter/catalog"
	"github.com/niksmo/pricecompare/internal/core/domain"
	"github.com/niksmo/pricecompare/internal/core/engine"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr(v float64) *float64 {
	return &v
}

func ids(ps []domain.Product) []string {
	out := make([]string, len(ps))
	for i, p := range ps {
		out[i] = p.ID
	}
	return out
}

func TestSearch(t *testing.T) {
	products := catalog.MockProducts()

	t.Run("EmptyQueryReturnsAll", func(t *testing.T) {
		res := engine.Search(products, "", domain.SearchFilters{})
		assert.Equal(t, []string{"1", "2", "3", "4", "5", "6"}, ids(res.Products))
		assert.Equal(t, 6, res.Total)
		assert.Equal(t, []string{"Amazon", "eBay"}, res.Platforms)
	})

	t.Run("WhitespaceQueryReturnsAll", func(t *testing.T) {
		res := engine.Search(products, "   \t", domain.SearchFilters{})
		assert.Equal(t, 6, res.Total)
	})

	t.Run("TitleCaseInsensitive", func(t *testing.T) {
		res := engine.Search(products, "  IPHONE ", domain.SearchFilters{})
		assert.Equal(t, []string{"1"}, ids(res.Products))
		assert.Equal(t, []string{"Amazon"}, res.Platforms)
	})

	t.Run("MatchesFeatures", func(t *testing.T) {
		res := engine.Search(products, "camera", domain.SearchFilters{})
		assert.Equal(t, []string{"1", "2", "3"}, ids(res.Products))
	})

	t.Run("MatchesPlatform", func(t *testing.T) {
		res := engine.Search(products, "ebay", domain.SearchFilters{})
		assert.Equal(t, []string{"2", "5"}, ids(res.Products))
	})

	t.Run("NoMatch", func(t *testing.T) {
		res := engine.Search(products, "toaster", domain.SearchFilters{})
		assert.Empty(t, res.Products)
		assert.NotNil(t, res.Products)
		assert.Zero(t, res.Total)
		assert.Empty(t, res.Platforms)
	})

	t.Run("PriceRangeInclusive", func(t *testing.T) {
		res := engine.Search(products, "", domain.SearchFilters{
			MinPrice: ptr(1000),
			MaxPrice: ptr(1200),
		})
		require.Equal(t, []string{"1", "2"}, ids(res.Products))
		for _, p := range res.Products {
			assert.GreaterOrEqual(t, p.Price, 1000.0)
			assert.LessOrEqual(t, p.Price, 1200.0)
		}

		res = engine.Search(products, "", domain.SearchFilters{
			MinPrice: ptr(999),
			MaxPrice: ptr(999),
		})
		assert.Equal(t, []string{"3"}, ids(res.Products))
	})

	t.Run("PlatformFilter", func(t *testing.T) {
		res := engine.Search(products, "", domain.SearchFilters{
			Platforms: []string{"Amazon"},
		})
		assert.Equal(t, []string{"1", "3", "4", "6"}, ids(res.Products))
		assert.Equal(t, []string{"Amazon"}, res.Platforms)
	})

	t.Run("PlatformFilterIsExact", func(t *testing.T) {
		res := engine.Search(products, "", domain.SearchFilters{
			Platforms: []string{"amazon"},
		})
		assert.Empty(t, res.Products)
	})

	t.Run("MinRating", func(t *testing.T) {
		res := engine.Search(products, "", domain.SearchFilters{
			MinRating: ptr(4.8),
		})
		assert.Equal(t, []string{"1", "4", "6"}, ids(res.Products))
	})

	t.Run("AbsentRatingIsZero", func(t *testing.T) {
		ps := []domain.Product{{ID: "a"}, {ID: "b", Rating: ptr(0.5)}}

		res := engine.Search(ps, "", domain.SearchFilters{MinRating: ptr(0.1)})
		assert.Equal(t, []string{"b"}, ids(res.Products))

		res = engine.Search(ps, "", domain.SearchFilters{MinRating: ptr(0)})
		assert.Equal(t, []string{"a", "b"}, ids(res.Products))
	})

	t.Run("SortPriceDefaultAsc", func(t *testing.T) {
		res := engine.Search(products, "", domain.SearchFilters{
			SortBy: domain.SortByPrice,
		})
		assert.Equal(t, []string{"6", "5", "3", "2", "1", "4"}, ids(res.Products))
	})

	t.Run("SortPriceDesc", func(t *testing.T) {
		res := engine.Search(products, "", domain.SearchFilters{
			SortBy:    domain.SortByPrice,
			SortOrder: domain.SortOrderDesc,
		})
		assert.Equal(t, []string{"4", "1", "2", "3", "5", "6"}, ids(res.Products))
	})

	t.Run("SortRatingStable", func(t *testing.T) {
		res := engine.Search(products, "", domain.SearchFilters{
			SortBy:    domain.SortByRating,
			SortOrder: domain.SortOrderDesc,
		})
		// 1 and 6 share 4.8, 2 and 5 share 4.7
		assert.Equal(t, []string{"4", "1", "6", "2", "5", "3"}, ids(res.Products))
	})

	t.Run("SortDiscountStable", func(t *testing.T) {
		res := engine.Search(products, "", domain.SearchFilters{
			SortBy: domain.SortByDiscount,
		})
		assert.Equal(t, []string{"6", "5", "1", "3", "2", "4"}, ids(res.Products))
	})

	t.Run("UnknownSortByKeepsOrder", func(t *testing.T) {
		res := engine.Search(products, "", domain.SearchFilters{
			SortBy:    "relevance",
			SortOrder: domain.SortOrderDesc,
		})
		assert.Equal(t, []string{"1", "2", "3", "4", "5", "6"}, ids(res.Products))
	})

	t.Run("PlatformsFirstOccurrenceOrder", func(t *testing.T) {
		res := engine.Search(products, "", domain.SearchFilters{
			SortBy: domain.SortByPrice,
		})
		assert.Equal(t, []string{"Amazon", "eBay"}, res.Platforms)

		res = engine.Search(products, "", domain.SearchFilters{
			SortBy:    domain.SortByDiscount,
			SortOrder: domain.SortOrderDesc,
		})
		assert.Equal(t, []string{"Amazon", "eBay"}, res.Platforms)

		ps := []domain.Product{
			{ID: "a", Platform: "Demo", Price: 5},
			{ID: "b", Platform: "eBay", Price: 1},
			{ID: "c", Platform: "Demo", Price: 3},
		}
		res = engine.Search(ps, "", domain.SearchFilters{
			SortBy: domain.SortByPrice,
		})
		assert.Equal(t, []string{"b", "c", "a"}, ids(res.Products))
		assert.Equal(t, []string{"eBay", "Demo"}, res.Platforms)
	})

	t.Run("Idempotent", func(t *testing.T) {
		filters := domain.SearchFilters{
			MinPrice:  ptr(300),
			Platforms: []string{"Amazon", "eBay"},
			MinRating: ptr(4.7),
			SortBy:    domain.SortByPrice,
		}
		once := engine.Search(products, "pro", filters)
		twice := engine.Search(once.Products, "pro", filters)
		assert.Equal(t, ids(once.Products), ids(twice.Products))
	})

	t.Run("SourceNotMutated", func(t *testing.T) {
		src := catalog.MockProducts()
		before := ids(src)

		engine.Search(src, "pro", domain.SearchFilters{
			MinPrice:  ptr(1000),
			SortBy:    domain.SortByPrice,
			SortOrder: domain.SortOrderDesc,
		})

		assert.Equal(t, before, ids(src))
		assert.Equal(t, catalog.MockProducts(), src)
	})
}
