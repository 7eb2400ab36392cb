package httphandler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/niksmo/pricecompare/internal/core/domain"
	"github.com/niksmo/pricecompare/internal/core/port"
)

// GET /api/products?id= (200 OK, 404 Not found)
// GET /api/products?category=&platform=&limit=&offset= (200 OK, 400 Bad request)
// POST /api/products JSON {"action": "trending"|"popular", "limit"} (200 OK, 400 Bad request)
// OPTIONS /api/products health (200 OK)

const (
	defaultPageLimit   = 20
	defaultActionLimit = 10
	apiVersion         = "1.0.0"
)

type ProductsHandler struct {
	detailer port.ProductDetailer
	trending port.TrendingBrowser
	popular  port.PopularSearchesLister
}

func RegisterProducts(
	mux *http.ServeMux,
	detailer port.ProductDetailer,
	trending port.TrendingBrowser,
	popular port.PopularSearchesLister,
) {
	h := ProductsHandler{detailer, trending, popular}
	mux.HandleFunc("GET /api/products", h.GetProducts)
	mux.HandleFunc("POST /api/products", h.PostProducts)
	mux.HandleFunc("OPTIONS /api/products", h.OptionsProducts)
}

func (h ProductsHandler) GetProducts(w http.ResponseWriter, r *http.Request) {
	params := r.URL.Query()
	if id := params.Get("id"); id != "" {
		h.getProduct(w, r, id)
		return
	}
	h.getTrending(w, r)
}

func (h ProductsHandler) getProduct(
	w http.ResponseWriter, r *http.Request, id string,
) {
	const op = "ProductsHandler.getProduct"
	log := slog.With("op", op, "productID", id)
	started := time.Now()

	p, history, err := h.detailer.ProductDetails(r.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrProductNotFound) {
			writeError(w, http.StatusNotFound, "Product not found")
			log.Info("product not found")
			return
		}
		writeInternalError(w)
		log.Error("failed to get product details", "err", err)
		return
	}

	writeData(w, ProductDetails{
		Product:      toProduct(p),
		PriceHistory: toPriceHistory(history),
	}, started)
}

func (h ProductsHandler) getTrending(w http.ResponseWriter, r *http.Request) {
	const op = "ProductsHandler.getTrending"
	log := slog.With("op", op)
	started := time.Now()

	params := r.URL.Query()

	limit, err := parseInt(params, "limit", defaultPageLimit)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	offset, err := parseInt(params, "offset", 0)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	page, err := h.trending.BrowseTrending(r.Context(), domain.TrendingQuery{
		Category: params.Get("category"),
		Platform: params.Get("platform"),
		Limit:    limit,
		Offset:   offset,
	})
	if err != nil {
		writeInternalError(w)
		log.Error("failed to browse trending products", "err", err)
		return
	}

	writeData(w, ProductPage{
		Products: toProducts(page.Products),
		Total:    page.Total,
		HasMore:  page.HasMore,
		Offset:   page.Offset,
		Limit:    page.Limit,
	}, started)
}

func (h ProductsHandler) PostProducts(w http.ResponseWriter, r *http.Request) {
	const op = "ProductsHandler.PostProducts"
	log := slog.With("op", op)
	started := time.Now()

	var req ProductsActionRequest
	err := json.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON data")
		log.Warn("failed to parse JSON", "err", err)
		return
	}

	limit := defaultActionLimit
	if req.Limit != nil {
		limit = max(*req.Limit, 0)
	}

	switch req.Action {
	case "trending":
		page, err := h.trending.BrowseTrending(
			r.Context(), domain.TrendingQuery{Limit: limit},
		)
		if err != nil {
			writeInternalError(w)
			log.Error("failed to list trending products", "err", err)
			return
		}
		writeData(w, TrendingList{
			Products: toProducts(page.Products),
			Total:    page.Total,
		}, started)
	case "popular":
		searches, err := h.popular.PopularSearches(r.Context(), limit)
		if err != nil {
			writeInternalError(w)
			log.Error("failed to list popular searches", "err", err)
			return
		}
		writeData(w, PopularList{Searches: searches}, started)
	default:
		writeError(w, http.StatusBadRequest, "Invalid action")
		log.Warn("invalid action", "action", req.Action)
	}
}

type health struct {
	Status    string          `json:"status"`
	Timestamp time.Time       `json:"timestamp"`
	Version   string          `json:"version"`
	Features  map[string]bool `json:"features"`
}

func (h ProductsHandler) OptionsProducts(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, health{
		Status:    "healthy",
		Timestamp: time.Now(),
		Version:   apiVersion,
		Features: map[string]bool{
			"search":       true,
			"trending":     true,
			"popular":      true,
			"priceHistory": true,
			"filters":      true,
		},
	})
}
