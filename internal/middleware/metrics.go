package middleware

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/plazonkr-creator/github-actions-demo-day2/internal/metrics"
)

// UnmatchedRoute labels requests that matched no registered route, keeping
// the route label's cardinality bounded by the route table.
const UnmatchedRoute = "unmatched"

// Metrics records duration and count for every request under its chi route
// pattern. Recording is deferred so it also happens when a handler panics.
func Metrics(recorder metrics.Recorder) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			wrapped := newStatusRecorder(w)

			defer func() {
				status := wrapped.status
				if rvr := recover(); rvr != nil {
					recorder.ObserveRequest(r.Method, routePattern(r), http.StatusInternalServerError, time.Since(start))
					panic(rvr)
				}
				recorder.ObserveRequest(r.Method, routePattern(r), status, time.Since(start))
			}()

			next.ServeHTTP(wrapped, r)
		})
	}
}

// Connections tracks in-flight requests in the active connections gauge.
func Connections(recorder metrics.Recorder) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			recorder.IncActiveConnections()
			defer recorder.DecActiveConnections()

			next.ServeHTTP(w, r)
		})
	}
}

func routePattern(r *http.Request) string {
	rctx := chi.RouteContext(r.Context())
	if rctx == nil {
		return UnmatchedRoute
	}
	if pattern := rctx.RoutePattern(); pattern != "" {
		return pattern
	}
	return UnmatchedRoute
}
