package domain

import "time"

type SortBy string

const (
	SortByPrice    SortBy = "price"
	SortByRating   SortBy = "rating"
	SortByDiscount SortBy = "discount"
)

type SortOrder string

const (
	SortOrderAsc  SortOrder = "asc"
	SortOrderDesc SortOrder = "desc"
)

// SearchFilters holds optional constraints. Nil pointers mean "not set".
type SearchFilters struct {
	MinPrice  *float64
	MaxPrice  *float64
	Platforms []string
	MinRating *float64
	SortBy    SortBy
	SortOrder SortOrder
}

type SearchResult struct {
	Products  []Product
	Total     int
	Query     string
	Timestamp time.Time
	Platforms []string
}

// SearchEvent is emitted after every served search.
type SearchEvent struct {
	ID            string
	Query         string
	TotalResults  int
	ExecutionTime time.Duration
	PlatformsUsed []string
	Timestamp     time.Time
}

type QueryCount struct {
	Query string
	Count int64
}

// TrendingQuery selects a page of trending products.
type TrendingQuery struct {
	Category string
	Platform string
	Limit    int
	Offset   int
}

type ProductPage struct {
	Products []Product
	Total    int
	HasMore  bool
	Offset   int
	Limit    int
}
