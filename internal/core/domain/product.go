package domain

import "time"

type (
	Product struct {
		ID            string
		Title         string
		Description   string
		Price         float64
		OriginalPrice float64
		Discount      float64
		Currency      string
		Platform      string
		Image         string
		URL           string
		Rating        *float64
		Reviews       int
		Availability  string
		Shipping      string
		Features      []string
		Category      string
	}

	PricePoint struct {
		Price     float64
		Currency  string
		Timestamp time.Time
	}

	PriceHistory struct {
		ProductID      string
		Platform       string
		Prices         []PricePoint
		LowestPrice    float64
		HighestPrice   float64
		AveragePrice   float64
		PriceChange24h float64
		PriceChange7d  float64
	}
)

// RatingOrZero returns the product rating, treating absent rating as 0.
func (p Product) RatingOrZero() float64 {
	if p.Rating == nil {
		return 0
	}
	return *p.Rating
}
