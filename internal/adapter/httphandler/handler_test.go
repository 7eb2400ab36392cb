package httphandler_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/niksmo/pricecompare/internal/adapter/catalog"
	"github.com/niksmo/pricecompare/internal/adapter/httphandler"
	"github.com/niksmo/pricecompare/internal/core/domain"
	"github.com/niksmo/pricecompare/internal/core/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type envelope[T any] struct {
	Success       bool   `json:"success"`
	Data          T      `json:"data"`
	Error         string `json:"error"`
	Message       string `json:"message"`
	Timestamp     string `json:"timestamp"`
	ExecutionTime int64  `json:"executionTime"`
}

func newTestHandler(t *testing.T) http.Handler {
	t.Helper()

	s := service.New(
		catalog.NewMemoryCatalog(catalog.MockProducts()),
		nil, nil, nil,
		service.Delays{},
	)

	mux := http.NewServeMux()
	httphandler.RegisterSearch(mux, s, s)
	httphandler.RegisterProducts(mux, s, s, s)
	return httphandler.AllowJSON(mux)
}

func do(
	t *testing.T, h http.Handler, method, target, body string,
) *httptest.ResponseRecorder {
	t.Helper()

	var r *http.Request
	if body == "" {
		r = httptest.NewRequest(method, target, nil)
	} else {
		r = httptest.NewRequest(method, target, strings.NewReader(body))
		r.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, r)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) envelope[T] {
	t.Helper()

	var env envelope[T]
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&env))
	return env
}

func productIDs(ps []httphandler.Product) []string {
	out := make([]string, len(ps))
	for i, p := range ps {
		out[i] = p.ID
	}
	return out
}

func TestGetSearch(t *testing.T) {
	h := newTestHandler(t)

	t.Run("PriceRange", func(t *testing.T) {
		rec := do(t, h, http.MethodGet, "/api/search?q=a&minPrice=1000&maxPrice=1200", "")
		require.Equal(t, http.StatusOK, rec.Code)

		env := decode[httphandler.SearchResult](t, rec)
		assert.True(t, env.Success)
		assert.NotEmpty(t, env.Timestamp)
		assert.Equal(t, "a", env.Data.Query)
		for _, p := range env.Data.Products {
			assert.GreaterOrEqual(t, p.Price, 1000.0)
			assert.LessOrEqual(t, p.Price, 1200.0)
		}
		assert.Equal(t, len(env.Data.Products), env.Data.Total)
	})

	t.Run("QueryAlias", func(t *testing.T) {
		rec := do(t, h, http.MethodGet, "/api/search?query=iphone", "")
		require.Equal(t, http.StatusOK, rec.Code)

		env := decode[httphandler.SearchResult](t, rec)
		assert.Equal(t, []string{"1"}, productIDs(env.Data.Products))
	})

	t.Run("PlatformsAndSort", func(t *testing.T) {
		rec := do(t, h, http.MethodGet,
			"/api/search?q=%20&platforms=Amazon&sortBy=price&sortOrder=desc", "")
		require.Equal(t, http.StatusOK, rec.Code)

		env := decode[httphandler.SearchResult](t, rec)
		assert.Equal(t, []string{"4", "1", "3", "6"}, productIDs(env.Data.Products))
		assert.Equal(t, []string{"Amazon"}, env.Data.Platforms)
	})

	t.Run("MultiplePlatforms", func(t *testing.T) {
		rec := do(t, h, http.MethodGet, "/api/search?q=pro&platforms=eBay,%20Demo", "")
		require.Equal(t, http.StatusOK, rec.Code)

		env := decode[httphandler.SearchResult](t, rec)
		assert.Empty(t, env.Data.Products)
		assert.Equal(t, []string{}, env.Data.Platforms)
	})

	t.Run("NoQuery", func(t *testing.T) {
		rec := do(t, h, http.MethodGet, "/api/search", "")
		require.Equal(t, http.StatusOK, rec.Code)

		env := decode[httphandler.SearchResult](t, rec)
		assert.True(t, env.Success)
		assert.Empty(t, env.Data.Products)
		assert.Zero(t, env.Data.Total)
		assert.Empty(t, env.Data.Query)
	})

	t.Run("MalformedNumber", func(t *testing.T) {
		rec := do(t, h, http.MethodGet, "/api/search?q=pro&minPrice=cheap", "")
		require.Equal(t, http.StatusBadRequest, rec.Code)

		env := decode[any](t, rec)
		assert.False(t, env.Success)
		assert.Contains(t, env.Error, "minPrice")
	})

	t.Run("NaNRejected", func(t *testing.T) {
		rec := do(t, h, http.MethodGet, "/api/search?q=pro&minRating=NaN", "")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestPostSearch(t *testing.T) {
	h := newTestHandler(t)

	t.Run("WithFilters", func(t *testing.T) {
		body := `{"query":"  pro ","filters":{"minRating":4.7,"sortBy":"rating"}}`
		rec := do(t, h, http.MethodPost, "/api/search", body)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "no-cache, no-store, must-revalidate", rec.Header().Get("Cache-Control"))
		assert.Equal(t, "no-cache", rec.Header().Get("Pragma"))
		assert.Equal(t, "0", rec.Header().Get("Expires"))

		env := decode[httphandler.SearchResult](t, rec)
		assert.True(t, env.Success)
		assert.Equal(t, "pro", env.Data.Query)
		// "pro" matches 1 (A17 Pro chip), 3 (Pixel 8 Pro), 4 (MacBook Pro)
		assert.Equal(t, []string{"1", "4"}, productIDs(env.Data.Products))
	})

	t.Run("MissingQuery", func(t *testing.T) {
		rec := do(t, h, http.MethodPost, "/api/search", `{"filters":{}}`)
		require.Equal(t, http.StatusBadRequest, rec.Code)

		env := decode[any](t, rec)
		assert.False(t, env.Success)
		assert.Equal(t, "Search query is required", env.Error)
	})

	t.Run("BlankQuery", func(t *testing.T) {
		rec := do(t, h, http.MethodPost, "/api/search", `{"query":"   "}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("InvalidJSON", func(t *testing.T) {
		rec := do(t, h, http.MethodPost, "/api/search", `{"query":`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("WrongMediaType", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodPost, "/api/search", strings.NewReader(`{"query":"pro"}`))
		r.Header.Set("Content-Type", "text/plain")
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, r)
		assert.Equal(t, http.StatusUnsupportedMediaType, rec.Code)
	})

	t.Run("MediaTypeWithCharset", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodPost, "/api/search", strings.NewReader(`{"query":"pro"}`))
		r.Header.Set("Content-Type", "application/json; charset=utf-8")
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, r)
		assert.Equal(t, http.StatusOK, rec.Code)
	})
}

func TestOptionsSearch(t *testing.T) {
	h := newTestHandler(t)

	rec := do(t, h, http.MethodOptions, "/api/search", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Suggestions []string        `json:"suggestions"`
		Features    map[string]bool `json:"features"`
		Platforms   []string        `json:"platforms"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Len(t, body.Suggestions, 10)
	assert.False(t, body.Features["priceAlerts"])
	assert.Equal(t, []string{"Amazon", "eBay", "Demo"}, body.Platforms)
}

func TestGetProducts(t *testing.T) {
	h := newTestHandler(t)

	t.Run("ByID", func(t *testing.T) {
		rec := do(t, h, http.MethodGet, "/api/products?id=5", "")
		require.Equal(t, http.StatusOK, rec.Code)

		env := decode[httphandler.ProductDetails](t, rec)
		assert.True(t, env.Success)
		assert.Equal(t, "Sony WH-1000XM5 Wireless Headphones", env.Data.Product.Title)
		require.Len(t, env.Data.PriceHistory, 1)
		assert.Len(t, env.Data.PriceHistory[0].Prices, 30)
		assert.Equal(t, "5", env.Data.PriceHistory[0].ProductID)
	})

	t.Run("UnknownID", func(t *testing.T) {
		rec := do(t, h, http.MethodGet, "/api/products?id=nope", "")
		require.Equal(t, http.StatusNotFound, rec.Code)

		env := decode[any](t, rec)
		assert.False(t, env.Success)
		assert.Equal(t, "Product not found", env.Error)
	})

	t.Run("TrendingDefaults", func(t *testing.T) {
		rec := do(t, h, http.MethodGet, "/api/products", "")
		require.Equal(t, http.StatusOK, rec.Code)

		env := decode[httphandler.ProductPage](t, rec)
		assert.Equal(t, []string{"1", "2", "3"}, productIDs(env.Data.Products))
		assert.Equal(t, 3, env.Data.Total)
		assert.False(t, env.Data.HasMore)
		assert.Equal(t, 20, env.Data.Limit)
		assert.Zero(t, env.Data.Offset)
	})

	t.Run("TrendingFiltered", func(t *testing.T) {
		rec := do(t, h, http.MethodGet, "/api/products?platform=ebay", "")
		require.Equal(t, http.StatusOK, rec.Code)

		env := decode[httphandler.ProductPage](t, rec)
		assert.Equal(t, []string{"2"}, productIDs(env.Data.Products))
	})

	t.Run("TrendingPaginated", func(t *testing.T) {
		rec := do(t, h, http.MethodGet, "/api/products?limit=2&offset=0", "")
		require.Equal(t, http.StatusOK, rec.Code)

		env := decode[httphandler.ProductPage](t, rec)
		assert.Equal(t, []string{"1", "2"}, productIDs(env.Data.Products))
		assert.True(t, env.Data.HasMore)
	})

	t.Run("MalformedLimit", func(t *testing.T) {
		rec := do(t, h, http.MethodGet, "/api/products?limit=ten", "")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestPostProducts(t *testing.T) {
	h := newTestHandler(t)

	t.Run("Trending", func(t *testing.T) {
		rec := do(t, h, http.MethodPost, "/api/products", `{"action":"trending","limit":2}`)
		require.Equal(t, http.StatusOK, rec.Code)

		env := decode[httphandler.TrendingList](t, rec)
		assert.Equal(t, []string{"1", "2"}, productIDs(env.Data.Products))
		assert.Equal(t, 3, env.Data.Total)
	})

	t.Run("PopularDefaultLimit", func(t *testing.T) {
		rec := do(t, h, http.MethodPost, "/api/products", `{"action":"popular"}`)
		require.Equal(t, http.StatusOK, rec.Code)

		env := decode[httphandler.PopularList](t, rec)
		assert.Len(t, env.Data.Searches, 8)
		assert.Equal(t, "iPhone 15 Pro Max", env.Data.Searches[0])
	})

	t.Run("InvalidAction", func(t *testing.T) {
		rec := do(t, h, http.MethodPost, "/api/products", `{"action":"delete"}`)
		require.Equal(t, http.StatusBadRequest, rec.Code)

		env := decode[any](t, rec)
		assert.Equal(t, "Invalid action", env.Error)
	})
}

func TestOptionsProducts(t *testing.T) {
	h := newTestHandler(t)

	rec := do(t, h, http.MethodOptions, "/api/products", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Status  string `json:"status"`
		Version string `json:"version"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, "healthy", body.Status)
	assert.Equal(t, "1.0.0", body.Version)
}

type MockSearcher struct {
	mock.Mock
}

func (m *MockSearcher) SearchProducts(
	ctx context.Context, query string, filters domain.SearchFilters,
) (domain.SearchResult, error) {
	args := m.Called(ctx, query, filters)
	res, _ := args.Get(0).(domain.SearchResult)
	return res, args.Error(1)
}

func (m *MockSearcher) Suggestions(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	ss, _ := args.Get(0).([]string)
	return ss, args.Error(1)
}

func TestSearchInternalError(t *testing.T) {
	searcher := new(MockSearcher)
	searcher.On("SearchProducts", mock.Anything, "pro", mock.Anything).
		Return(nil, errors.New("boom"))

	mux := http.NewServeMux()
	httphandler.RegisterSearch(mux, searcher, searcher)

	rec := do(t, mux, http.MethodGet, "/api/search?q=pro", "")
	require.Equal(t, http.StatusInternalServerError, rec.Code)

	env := decode[any](t, rec)
	assert.False(t, env.Success)
	assert.Equal(t, "Internal server error", env.Error)
	searcher.AssertExpectations(t)
}

func TestSearchFiltersForwarded(t *testing.T) {
	minPrice := 10.0
	want := domain.SearchFilters{
		MinPrice:  &minPrice,
		Platforms: []string{"Amazon", "eBay"},
		SortBy:    "relevance",
		SortOrder: domain.SortOrderAsc,
	}

	searcher := new(MockSearcher)
	searcher.On("SearchProducts", mock.Anything, "tv", want).
		Return(domain.SearchResult{Query: "tv"}, nil)

	mux := http.NewServeMux()
	httphandler.RegisterSearch(mux, searcher, searcher)

	rec := do(t, mux, http.MethodGet,
		"/api/search?q=tv&minPrice=10&platforms=Amazon,eBay,&sortBy=relevance&sortOrder=asc", "")
	require.Equal(t, http.StatusOK, rec.Code)

	env := decode[httphandler.SearchResult](t, rec)
	assert.Equal(t, []httphandler.Product{}, env.Data.Products)
	assert.Equal(t, []string{}, env.Data.Platforms)
	searcher.AssertExpectations(t)
}
