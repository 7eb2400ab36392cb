// Package engine filters and sorts an in-memory product list.
package engine

import (
	"slices"
	"strings"

	"github.com/niksmo/pricecompare/internal/core/domain"
)

// Result is the filtered, sorted view over the catalog.
type Result struct {
	Products  []domain.Product
	Total     int
	Platforms []string
}

// Search applies the text, price, platform and rating filters in that order
// and then sorts by filters.SortBy. The source slice is never mutated.
func Search(
	products []domain.Product, query string, filters domain.SearchFilters,
) Result {
	ps := slices.Clone(products)

	ps = filterByText(ps, query)
	ps = filterByPrice(ps, filters.MinPrice, filters.MaxPrice)
	ps = filterByPlatforms(ps, filters.Platforms)
	ps = filterByRating(ps, filters.MinRating)
	sortProducts(ps, filters.SortBy, filters.SortOrder)

	if ps == nil {
		ps = []domain.Product{}
	}

	return Result{
		Products:  ps,
		Total:     len(ps),
		Platforms: distinctPlatforms(ps),
	}
}

func filterByText(ps []domain.Product, query string) []domain.Product {
	term := strings.ToLower(strings.TrimSpace(query))
	if term == "" {
		return ps
	}
	return slices.DeleteFunc(ps, func(p domain.Product) bool {
		return !matchesText(p, term)
	})
}

func matchesText(p domain.Product, term string) bool {
	if strings.Contains(strings.ToLower(p.Title), term) {
		return true
	}
	for _, f := range p.Features {
		if strings.Contains(strings.ToLower(f), term) {
			return true
		}
	}
	return strings.Contains(strings.ToLower(p.Platform), term)
}

func filterByPrice(ps []domain.Product, minPrice, maxPrice *float64) []domain.Product {
	if minPrice == nil && maxPrice == nil {
		return ps
	}
	return slices.DeleteFunc(ps, func(p domain.Product) bool {
		if minPrice != nil && p.Price < *minPrice {
			return true
		}
		return maxPrice != nil && p.Price > *maxPrice
	})
}

func filterByPlatforms(ps []domain.Product, platforms []string) []domain.Product {
	if len(platforms) == 0 {
		return ps
	}
	return slices.DeleteFunc(ps, func(p domain.Product) bool {
		return !slices.Contains(platforms, p.Platform)
	})
}

func filterByRating(ps []domain.Product, minRating *float64) []domain.Product {
	if minRating == nil {
		return ps
	}
	return slices.DeleteFunc(ps, func(p domain.Product) bool {
		return p.RatingOrZero() < *minRating
	})
}

func sortProducts(ps []domain.Product, by domain.SortBy, order domain.SortOrder) {
	key := sortKey(by)
	if key == nil {
		return
	}
	slices.SortStableFunc(ps, func(a, b domain.Product) int {
		ka, kb := key(a), key(b)
		if order == domain.SortOrderDesc {
			ka, kb = kb, ka
		}
		switch {
		case ka < kb:
			return -1
		case ka > kb:
			return 1
		default:
			return 0
		}
	})
}

// sortKey returns nil for an unknown or empty sort field.
func sortKey(by domain.SortBy) func(domain.Product) float64 {
	switch by {
	case domain.SortByPrice:
		return func(p domain.Product) float64 { return p.Price }
	case domain.SortByRating:
		return domain.Product.RatingOrZero
	case domain.SortByDiscount:
		return func(p domain.Product) float64 { return p.Discount }
	default:
		return nil
	}
}

func distinctPlatforms(ps []domain.Product) []string {
	platforms := []string{}
	for _, p := range ps {
		if !slices.Contains(platforms, p.Platform) {
			platforms = append(platforms, p.Platform)
		}
	}
	return platforms
}
