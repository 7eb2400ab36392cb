package service

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/niksmo/pricecompare/internal/core/domain"
	"github.com/niksmo/pricecompare/internal/core/engine"
	"github.com/niksmo/pricecompare/internal/core/port"
	"golang.org/x/sync/errgroup"
)

var (
	_ port.ProductsSearcher      = (*Service)(nil)
	_ port.ProductDetailer       = (*Service)(nil)
	_ port.TrendingLister        = (*Service)(nil)
	_ port.TrendingBrowser       = (*Service)(nil)
	_ port.PopularSearchesLister = (*Service)(nil)
	_ port.SuggestionsLister     = (*Service)(nil)
)

const (
	trendingLimit  = 3
	publishTimeout = 3 * time.Second
)

// Delays emulate marketplace latency. A caller cannot abort them.
type Delays struct {
	Search       time.Duration
	PriceHistory time.Duration
}

type Service struct {
	catalog       port.ProductsCatalog
	eventProducer port.SearchEventsProducer
	popularProc   port.PopularSearchesProcessor
	popularView   port.PopularSearchesView
	delays        Delays
	publishing    *sync.WaitGroup
	publishTTL    time.Duration
	now           func() time.Time
	sleep         func(time.Duration)
}

// New returns the application service. eventProducer, popularProc and
// popularView are optional and may be nil when analytics is disabled.
func New(
	catalog port.ProductsCatalog,
	eventProducer port.SearchEventsProducer,
	popularProc port.PopularSearchesProcessor,
	popularView port.PopularSearchesView,
	delays Delays,
) Service {
	return Service{
		catalog:       catalog,
		eventProducer: eventProducer,
		popularProc:   popularProc,
		popularView:   popularView,
		delays:        delays,
		publishing:    &sync.WaitGroup{},
		publishTTL:    publishTimeout,
		now:           time.Now,
		sleep:         time.Sleep,
	}
}

// Run runs the analytics components in separate goroutines.
//
// Blocks current goroutine while components is preparing to ready state.
func (s Service) Run(ctx context.Context, stopFn context.CancelFunc) {
	var wg sync.WaitGroup
	if s.popularProc != nil {
		wg.Add(1)
		go s.popularProc.Run(ctx, stopFn, &wg)
	}
	if s.popularView != nil {
		wg.Add(1)
		go s.popularView.Run(ctx, stopFn, &wg)
	}
	wg.Wait()
}

// Close waits for in-flight search events and stops the analytics processor.
func (s Service) Close() {
	s.publishing.Wait()
	if s.popularProc != nil {
		s.popularProc.Close()
	}
}

func (s Service) SearchProducts(
	ctx context.Context, query string, filters domain.SearchFilters,
) (domain.SearchResult, error) {
	const op = "Service.SearchProducts"

	start := s.now()

	res, err := s.search(ctx, query, filters)
	if err != nil {
		return domain.SearchResult{}, fmt.Errorf("%s: %w", op, err)
	}

	s.publishSearchEvent(ctx, res, s.now().Sub(start))

	return res, nil
}

func (s Service) search(
	ctx context.Context, query string, filters domain.SearchFilters,
) (domain.SearchResult, error) {
	s.sleep(s.delays.Search)

	if err := ctx.Err(); err != nil {
		return domain.SearchResult{}, err
	}

	ps, err := s.catalog.Products(ctx)
	if err != nil {
		return domain.SearchResult{}, err
	}

	res := engine.Search(ps, query, filters)
	return domain.SearchResult{
		Products:  res.Products,
		Total:     res.Total,
		Query:     query,
		Timestamp: s.now(),
		Platforms: res.Platforms,
	}, nil
}

// publishSearchEvent sends the event in background. The request never
// waits for the broker; delivery is bounded by publishTTL.
func (s Service) publishSearchEvent(
	ctx context.Context, res domain.SearchResult, elapsed time.Duration,
) {
	const op = "Service.publishSearchEvent"

	if s.eventProducer == nil {
		return
	}

	evt := domain.SearchEvent{
		ID:            uuid.NewString(),
		Query:         res.Query,
		TotalResults:  res.Total,
		ExecutionTime: elapsed,
		PlatformsUsed: res.Platforms,
		Timestamp:     res.Timestamp,
	}

	pubCtx, cancel := context.WithTimeout(
		context.WithoutCancel(ctx), s.publishTTL,
	)

	s.publishing.Add(1)
	go func() {
		defer s.publishing.Done()
		defer cancel()

		err := s.eventProducer.ProduceSearchEvent(pubCtx, evt)
		if err != nil {
			slog.Warn(
				"failed to publish search event",
				"op", op, "eventID", evt.ID, "err", err,
			)
		}
	}()
}

func (s Service) ProductDetails(
	ctx context.Context, productID string,
) (domain.Product, []domain.PriceHistory, error) {
	const op = "Service.ProductDetails"

	var (
		res     domain.SearchResult
		history []domain.PriceHistory
	)

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		res, err = s.search(gCtx, "", domain.SearchFilters{})
		return err
	})
	g.Go(func() (err error) {
		history, err = s.PriceHistory(gCtx, productID)
		return err
	})
	if err := g.Wait(); err != nil {
		return domain.Product{}, nil, fmt.Errorf("%s: %w", op, err)
	}

	for _, p := range res.Products {
		if p.ID == productID {
			return p, history, nil
		}
	}
	return domain.Product{}, nil, fmt.Errorf("%s: %w", op, domain.ErrProductNotFound)
}

// PriceHistory returns a mock 30-day history with a daily price drop.
func (s Service) PriceHistory(
	ctx context.Context, productID string,
) ([]domain.PriceHistory, error) {
	const (
		op        = "Service.PriceHistory"
		nPoints   = 30
		basePrice = 1199
		dailyDrop = 5
		day       = 24 * time.Hour
	)

	s.sleep(s.delays.PriceHistory)

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	now := s.now()
	prices := make([]domain.PricePoint, nPoints)
	for i := range prices {
		prices[i] = domain.PricePoint{
			Price:     float64(basePrice - i*dailyDrop),
			Currency:  "USD",
			Timestamp: now.Add(-time.Duration(i) * day),
		}
	}

	return []domain.PriceHistory{{
		ProductID:      productID,
		Platform:       "Amazon",
		Prices:         prices,
		LowestPrice:    899,
		HighestPrice:   1299,
		AveragePrice:   1049,
		PriceChange24h: -10,
		PriceChange7d:  -25,
	}}, nil
}

func (s Service) TrendingProducts(ctx context.Context) ([]domain.Product, error) {
	const op = "Service.TrendingProducts"

	ps, err := s.catalog.Products(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return ps[:min(trendingLimit, len(ps))], nil
}

// BrowseTrending filters trending products by category and platform and
// slices the result to the requested page.
func (s Service) BrowseTrending(
	ctx context.Context, q domain.TrendingQuery,
) (domain.ProductPage, error) {
	const op = "Service.BrowseTrending"

	ps, err := s.TrendingProducts(ctx)
	if err != nil {
		return domain.ProductPage{}, fmt.Errorf("%s: %w", op, err)
	}

	if category := strings.ToLower(q.Category); category != "" {
		ps = slices.DeleteFunc(ps, func(p domain.Product) bool {
			return !matchesCategory(p, category)
		})
	}

	if q.Platform != "" {
		ps = slices.DeleteFunc(ps, func(p domain.Product) bool {
			return !strings.EqualFold(p.Platform, q.Platform)
		})
	}

	offset := max(q.Offset, 0)
	limit := max(q.Limit, 0)
	start := min(offset, len(ps))
	end := start + min(limit, len(ps)-start)

	return domain.ProductPage{
		Products: ps[start:end],
		Total:    len(ps),
		HasMore:  end < len(ps),
		Offset:   offset,
		Limit:    limit,
	}, nil
}

func matchesCategory(p domain.Product, category string) bool {
	if strings.Contains(strings.ToLower(p.Category), category) {
		return true
	}
	for _, f := range p.Features {
		if strings.Contains(strings.ToLower(f), category) {
			return true
		}
	}
	return false
}

// PopularSearches returns searches ranked by the analytics view first,
// topped up with the curated catalog list.
func (s Service) PopularSearches(
	ctx context.Context, limit int,
) ([]string, error) {
	const op = "Service.PopularSearches"
	log := slog.With("op", op)

	curated, err := s.catalog.PopularSearches(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	var ranked []string
	if s.popularView != nil {
		counts, err := s.popularView.TopQueries(ctx, limit)
		if err != nil {
			log.Warn("failed to read popular queries", "err", err)
		}
		for _, c := range counts {
			ranked = append(ranked, c.Query)
		}
	}

	merged := mergeSearches(ranked, curated)
	limit = max(limit, 0)
	return merged[:min(limit, len(merged))], nil
}

func mergeSearches(lists ...[]string) []string {
	seen := make(map[string]struct{})
	merged := []string{}
	for _, list := range lists {
		for _, q := range list {
			key := strings.ToLower(strings.TrimSpace(q))
			if key == "" {
				continue
			}
			if _, ok := seen[key]; ok {
				continue
			}
			seen[key] = struct{}{}
			merged = append(merged, q)
		}
	}
	return merged
}

func (s Service) Suggestions(ctx context.Context) ([]string, error) {
	const op = "Service.Suggestions"

	ss, err := s.catalog.Suggestions(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return ss, nil
}
