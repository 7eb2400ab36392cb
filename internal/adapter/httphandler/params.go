package httphandler

import (
	"errors"
	"fmt"
	"math"
	"net/url"
	"strconv"
	"strings"

	"github.com/niksmo/pricecompare/internal/core/domain"
)

var ErrInvalidParam = errors.New("invalid parameter")

// parseSearchFilters reads filters from the query string. Empty values
// are treated as unset.
func parseSearchFilters(q url.Values) (domain.SearchFilters, error) {
	var (
		f   domain.SearchFilters
		err error
	)

	if f.MinPrice, err = parseOptFloat(q, "minPrice"); err != nil {
		return domain.SearchFilters{}, err
	}
	if f.MaxPrice, err = parseOptFloat(q, "maxPrice"); err != nil {
		return domain.SearchFilters{}, err
	}
	if f.MinRating, err = parseOptFloat(q, "minRating"); err != nil {
		return domain.SearchFilters{}, err
	}

	f.Platforms = splitList(q.Get("platforms"))
	f.SortBy = domain.SortBy(q.Get("sortBy"))
	f.SortOrder = domain.SortOrder(q.Get("sortOrder"))
	return f, nil
}

func parseOptFloat(q url.Values, name string) (*float64, error) {
	raw := strings.TrimSpace(q.Get(name))
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return nil, fmt.Errorf("%w: %s must be a number", ErrInvalidParam, name)
	}
	return &v, nil
}

func parseInt(q url.Values, name string, def int) (int, error) {
	raw := strings.TrimSpace(q.Get(name))
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be an integer", ErrInvalidParam, name)
	}
	return max(v, 0), nil
}

func splitList(raw string) []string {
	var out []string
	for _, s := range strings.Split(raw, ",") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
