// Package middleware holds the HTTP middleware of the API server.
package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/stayscope/listing-intelligence/internal/infrastructure/monitoring/logging"
)

// HTTPObserver receives one record per handled request.  Implemented by the
// prometheus metrics; nil disables observation.
type HTTPObserver interface {
	ObserveHTTP(route, status string, elapsed time.Duration)
}

// RequestLogger logs one structured line per request and feeds the observer.
func RequestLogger(logger logging.Logger, observer HTTPObserver) func(http.Handler) http.Handler {
	log := logger.Named("http")
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()

			next.ServeHTTP(ww, r)

			elapsed := time.Since(start)
			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			log.Info("request handled",
				logging.String("method", r.Method),
				logging.String("path", r.URL.Path),
				logging.Int("status", status),
				logging.Duration("elapsed", elapsed),
				logging.Int("bytes", ww.BytesWritten()),
			)
			if observer != nil {
				observer.ObserveHTTP(routePattern(r), strconv.Itoa(status), elapsed)
			}
		})
	}
}

// routePattern returns the chi route template so metric labels stay low
// cardinality; unmatched requests fall back to a fixed label.
func routePattern(r *http.Request) string {
	if rctx := chi.RouteContext(r.Context()); rctx != nil {
		if p := rctx.RoutePattern(); p != "" {
			return p
		}
	}
	return "unmatched"
}
