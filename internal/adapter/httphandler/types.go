package httphandler

import (
	"time"

	"github.com/niksmo/pricecompare/internal/core/domain"
)

type (
	Product struct {
		ID            string   `json:"id"`
		Title         string   `json:"title"`
		Description   string   `json:"description,omitempty"`
		Price         float64  `json:"price"`
		OriginalPrice float64  `json:"originalPrice,omitempty"`
		Discount      float64  `json:"discount,omitempty"`
		Currency      string   `json:"currency"`
		Platform      string   `json:"platform"`
		Image         string   `json:"image"`
		URL           string   `json:"url"`
		Rating        *float64 `json:"rating,omitempty"`
		Reviews       int      `json:"reviews,omitempty"`
		Availability  string   `json:"availability"`
		Shipping      string   `json:"shipping,omitempty"`
		Features      []string `json:"features"`
		Category      string   `json:"category,omitempty"`
	}

	PricePoint struct {
		Price     float64   `json:"price"`
		Currency  string    `json:"currency"`
		Timestamp time.Time `json:"timestamp"`
	}

	PriceHistory struct {
		ProductID      string       `json:"productId"`
		Platform       string       `json:"platform"`
		Prices         []PricePoint `json:"prices"`
		LowestPrice    float64      `json:"lowestPrice"`
		HighestPrice   float64      `json:"highestPrice"`
		AveragePrice   float64      `json:"averagePrice"`
		PriceChange24h float64      `json:"priceChange24h"`
		PriceChange7d  float64      `json:"priceChange7d"`
	}
)

type SearchFilters struct {
	MinPrice  *float64 `json:"minPrice"`
	MaxPrice  *float64 `json:"maxPrice"`
	Platforms []string `json:"platforms"`
	MinRating *float64 `json:"minRating"`
	SortBy    string   `json:"sortBy"`
	SortOrder string   `json:"sortOrder"`
}

type SearchRequest struct {
	Query   string         `json:"query"`
	Filters *SearchFilters `json:"filters"`
}

type SearchResult struct {
	Products  []Product `json:"products"`
	Total     int       `json:"total"`
	Query     string    `json:"query"`
	Timestamp time.Time `json:"timestamp"`
	Platforms []string  `json:"platforms"`
}

type ProductDetails struct {
	Product      Product        `json:"product"`
	PriceHistory []PriceHistory `json:"priceHistory"`
}

type ProductPage struct {
	Products []Product `json:"products"`
	Total    int       `json:"total"`
	HasMore  bool      `json:"hasMore"`
	Offset   int       `json:"offset"`
	Limit    int       `json:"limit"`
}

type ProductsActionRequest struct {
	Action string `json:"action"`
	Limit  *int   `json:"limit"`
}

type TrendingList struct {
	Products []Product `json:"products"`
	Total    int       `json:"total"`
}

type PopularList struct {
	Searches []string `json:"searches"`
}

func toProduct(p domain.Product) Product {
	features := p.Features
	if features == nil {
		features = []string{}
	}
	return Product{
		ID:            p.ID,
		Title:         p.Title,
		Description:   p.Description,
		Price:         p.Price,
		OriginalPrice: p.OriginalPrice,
		Discount:      p.Discount,
		Currency:      p.Currency,
		Platform:      p.Platform,
		Image:         p.Image,
		URL:           p.URL,
		Rating:        p.Rating,
		Reviews:       p.Reviews,
		Availability:  p.Availability,
		Shipping:      p.Shipping,
		Features:      features,
		Category:      p.Category,
	}
}

func toProducts(ps []domain.Product) []Product {
	out := make([]Product, len(ps))
	for i, p := range ps {
		out[i] = toProduct(p)
	}
	return out
}

func toPriceHistory(hs []domain.PriceHistory) []PriceHistory {
	out := make([]PriceHistory, len(hs))
	for i, h := range hs {
		out[i] = PriceHistory{
			ProductID:      h.ProductID,
			Platform:       h.Platform,
			LowestPrice:    h.LowestPrice,
			HighestPrice:   h.HighestPrice,
			AveragePrice:   h.AveragePrice,
			PriceChange24h: h.PriceChange24h,
			PriceChange7d:  h.PriceChange7d,
		}
		out[i].Prices = make([]PricePoint, len(h.Prices))
		for j, pp := range h.Prices {
			out[i].Prices[j] = PricePoint{
				Price:     pp.Price,
				Currency:  pp.Currency,
				Timestamp: pp.Timestamp,
			}
		}
	}
	return out
}

func (f SearchFilters) toDomain() domain.SearchFilters {
	return domain.SearchFilters{
		MinPrice:  f.MinPrice,
		MaxPrice:  f.MaxPrice,
		Platforms: f.Platforms,
		MinRating: f.MinRating,
		SortBy:    domain.SortBy(f.SortBy),
		SortOrder: domain.SortOrder(f.SortOrder),
	}
}

func toSearchResult(res domain.SearchResult) SearchResult {
	platforms := res.Platforms
	if platforms == nil {
		platforms = []string{}
	}
	return SearchResult{
		Products:  toProducts(res.Products),
		Total:     res.Total,
		Query:     res.Query,
		Timestamp: res.Timestamp,
		Platforms: platforms,
	}
}
