package httphandler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/niksmo/pricecompare/internal/core/domain"
	"github.com/niksmo/pricecompare/internal/core/port"
)

// GET /api/search?q=&minPrice=&maxPrice=&platforms=&minRating=&sortBy=&sortOrder= (200 OK, 400 Bad request)
// POST /api/search JSON {"query", "filters"} (200 OK, 400 Bad request)
// OPTIONS /api/search (200 OK)

type SearchHandler struct {
	searcher    port.ProductsSearcher
	suggestions port.SuggestionsLister
}

func RegisterSearch(
	mux *http.ServeMux,
	searcher port.ProductsSearcher,
	suggestions port.SuggestionsLister,
) {
	h := SearchHandler{searcher, suggestions}
	mux.HandleFunc("GET /api/search", h.GetSearch)
	mux.HandleFunc("POST /api/search", h.PostSearch)
	mux.HandleFunc("OPTIONS /api/search", h.OptionsSearch)
}

func (h SearchHandler) GetSearch(w http.ResponseWriter, r *http.Request) {
	const op = "SearchHandler.GetSearch"
	log := slog.With("op", op)
	started := time.Now()

	params := r.URL.Query()
	query := params.Get("q")
	if query == "" {
		query = params.Get("query")
	}

	filters, err := parseSearchFilters(params)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		log.Warn("invalid search params", "err", err)
		return
	}

	if query == "" {
		writeData(w, SearchResult{
			Products:  []Product{},
			Timestamp: time.Now(),
			Platforms: []string{},
		}, started)
		return
	}

	res, err := h.searcher.SearchProducts(r.Context(), query, filters)
	if err != nil {
		writeInternalError(w)
		log.Error("failed to search products", "err", err)
		return
	}

	writeData(w, toSearchResult(res), started)
	log.Info("search served", "query", query, "total", res.Total)
}

func (h SearchHandler) PostSearch(w http.ResponseWriter, r *http.Request) {
	const op = "SearchHandler.PostSearch"
	log := slog.With("op", op)
	started := time.Now()

	var req SearchRequest
	err := json.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON data")
		log.Warn("failed to parse JSON", "err", err)
		return
	}

	query := strings.TrimSpace(req.Query)
	if query == "" {
		writeError(w, http.StatusBadRequest, "Search query is required")
		return
	}

	var filters domain.SearchFilters
	if req.Filters != nil {
		filters = req.Filters.toDomain()
	}

	res, err := h.searcher.SearchProducts(r.Context(), query, filters)
	if err != nil {
		writeInternalError(w)
		log.Error("failed to search products", "err", err)
		return
	}

	setNoCache(w)
	writeData(w, toSearchResult(res), started)
	log.Info("search served", "query", query, "total", res.Total)
}

type searchCapabilities struct {
	Suggestions []string        `json:"suggestions"`
	Features    map[string]bool `json:"features"`
	Platforms   []string        `json:"platforms"`
	Currencies  []string        `json:"currencies"`
	Languages   []string        `json:"languages"`
}

func (h SearchHandler) OptionsSearch(w http.ResponseWriter, r *http.Request) {
	const op = "SearchHandler.OptionsSearch"
	log := slog.With("op", op)

	suggestions, err := h.suggestions.Suggestions(r.Context())
	if err != nil {
		writeInternalError(w)
		log.Error("failed to list suggestions", "err", err)
		return
	}

	writeJSON(w, http.StatusOK, searchCapabilities{
		Suggestions: suggestions,
		Features: map[string]bool{
			"priceComparison": true,
			"priceTracking":   true,
			"priceAlerts":     false,
			"reviews":         true,
			"filtering":       true,
			"sorting":         true,
		},
		Platforms:  []string{"Amazon", "eBay", "Demo"},
		Currencies: []string{"USD", "EUR", "GBP"},
		Languages:  []string{"en", "ka", "ru"},
	})
}
