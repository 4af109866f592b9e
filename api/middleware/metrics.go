package middleware

import (
	"net/http"
	"time"

	"github.com/angelmondragon/catalogo-industrial-backend/pkg/metrics"
)

// Metrics records request counts and latency keyed by the chi route pattern so
// ids in the path do not explode label cardinality.
func Metrics(m *metrics.HTTPMetrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if m == nil {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			rec := &statusRecorder{ResponseWriter: w}
			start := time.Now()
			next.ServeHTTP(rec, r)

			route := routePattern(r)
			if route == r.URL.Path && rec.statusOrOK() == http.StatusNotFound {
				route = "unmatched"
			}
			m.ObserveRequest(route, r.Method, rec.statusOrOK(), time.Since(start))
		})
	}
}
