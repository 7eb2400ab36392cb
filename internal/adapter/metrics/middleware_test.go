package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestPathLabel(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"/", "root"},
		{"/metrics", "metrics"},
		{"/api/search", "api_search"},
		{"/api/search/", "api_search"},
		{"/api/products", "api_products"},
		{"/api/products/42/history", "other"},
		{"/a1/b1", "other"},
		{"/a2/b2", "other"},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, pathLabel(tt.path))
		})
	}
}

func TestMiddleware(t *testing.T) {
	h := Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))

	counter := RequestTotal.WithLabelValues(http.MethodGet, "api_search", "418")
	before := testutil.ToFloat64(counter)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/search", nil))

	assert.Equal(t, http.StatusTeapot, rec.Code)
	assert.Equal(t, before+1, testutil.ToFloat64(counter))
}

func TestMiddlewareUnknownPaths(t *testing.T) {
	h := Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))

	other := RequestTotal.WithLabelValues(http.MethodGet, "other", "404")
	before := testutil.ToFloat64(other)
	series := testutil.CollectAndCount(RequestTotal)

	for _, p := range []string{"/a1/b1", "/a2/b2", "/a3/b3"} {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, p, nil))
	}

	assert.Equal(t, before+3, testutil.ToFloat64(other))
	assert.Equal(t, series, testutil.CollectAndCount(RequestTotal))
}
