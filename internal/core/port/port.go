package port

import (
	"context"
	"sync"

	"github.com/niksmo/pricecompare/internal/core/domain"
)

type (
	runnerContextWg interface {
		Run(context.Context, context.CancelFunc, *sync.WaitGroup)
	}

	closer interface {
		Close()
	}
)

type ProductsSearcher interface {
	SearchProducts(
		context.Context, string, domain.SearchFilters,
	) (domain.SearchResult, error)
}

type ProductDetailer interface {
	ProductDetails(
		ctx context.Context, productID string,
	) (domain.Product, []domain.PriceHistory, error)
}

type TrendingLister interface {
	TrendingProducts(context.Context) ([]domain.Product, error)
}

type TrendingBrowser interface {
	BrowseTrending(
		context.Context, domain.TrendingQuery,
	) (domain.ProductPage, error)
}

type PopularSearchesLister interface {
	PopularSearches(ctx context.Context, limit int) ([]string, error)
}

type SuggestionsLister interface {
	Suggestions(context.Context) ([]string, error)
}

type ProductsCatalog interface {
	Products(context.Context) ([]domain.Product, error)
	PopularSearches(context.Context) ([]string, error)
	Suggestions(context.Context) ([]string, error)
}

type SearchEventsProducer interface {
	ProduceSearchEvent(context.Context, domain.SearchEvent) error
}

type PopularQueriesReader interface {
	TopQueries(ctx context.Context, limit int) ([]domain.QueryCount, error)
}

type PopularSearchesProcessor interface {
	runnerContextWg
	closer
}

type PopularSearchesView interface {
	PopularQueriesReader
	runnerContextWg
}
