// Package catalog provides the built-in mock product catalog.
package catalog

import (
	"context"
	"fmt"
	"slices"

	"github.com/niksmo/pricecompare/internal/core/domain"
	"github.com/niksmo/pricecompare/internal/core/port"
)

var _ port.ProductsCatalog = (*MemoryCatalog)(nil)

type MemoryCatalog struct {
	products    []domain.Product
	popular     []string
	suggestions []string
}

// NewMemoryCatalog returns catalog over ps. The slice is copied and
// treated as immutable afterwards.
func NewMemoryCatalog(ps []domain.Product) MemoryCatalog {
	return MemoryCatalog{
		products:    slices.Clone(ps),
		popular:     PopularSearches(),
		suggestions: Suggestions(),
	}
}

func (c MemoryCatalog) Products(ctx context.Context) ([]domain.Product, error) {
	const op = "MemoryCatalog.Products"

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return slices.Clone(c.products), nil
}

func (c MemoryCatalog) PopularSearches(ctx context.Context) ([]string, error) {
	const op = "MemoryCatalog.PopularSearches"

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return slices.Clone(c.popular), nil
}

func (c MemoryCatalog) Suggestions(ctx context.Context) ([]string, error) {
	const op = "MemoryCatalog.Suggestions"

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return slices.Clone(c.suggestions), nil
}
