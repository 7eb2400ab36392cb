package metrics

import (
	"net/http"
	"strconv"
	"strings"
	"time"
)

func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		path := pathLabel(r.URL.Path)
		rec := &responseRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		status := strconv.Itoa(rec.status)
		RequestTotal.WithLabelValues(r.Method, path, status).Inc()
		RequestDuration.WithLabelValues(r.Method, path).Observe(time.Since(start).Seconds())
	})
}

// pathLabel maps a request path to one of the served routes so clients
// cannot grow label cardinality.
func pathLabel(p string) string {
	switch strings.TrimSuffix(p, "/") {
	case "":
		return "root"
	case "/api/search":
		return "api_search"
	case "/api/products":
		return "api_products"
	case "/metrics":
		return "metrics"
	default:
		return "other"
	}
}

type responseRecorder struct {
	http.ResponseWriter
	status int
}

func (r *responseRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}
