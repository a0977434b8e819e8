package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/durabrake/financial-dashboard/internal/domain"
)

type RequestObserver interface {
	ObserveRequest(method, route string, status int, duration time.Duration)
}

// MetricsMiddleware reports every request to observer under a bounded route
// label.
func MetricsMiddleware(observer RequestObserver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			lrw := newLoggingResponseWriter(w)
			started := time.Now()

			next.ServeHTTP(lrw, r)

			observer.ObserveRequest(r.Method, RouteLabel(r.URL.Path), lrw.statusCode, time.Since(started))
		})
	}
}

// RouteLabel replaces period segments so that "/v1/periods/25.12/dashboard"
// becomes "/v1/periods/:period/dashboard".
func RouteLabel(path string) string {
	segments := strings.Split(strings.Trim(path, "/"), "/")
	if len(segments) > 4 {
		segments = append(segments[:4], "*")
	}
	for i, s := range segments {
		if _, err := domain.ParsePeriod(s); err == nil {
			segments[i] = ":period"
		}
	}
	return "/" + strings.Join(segments, "/")
}
