package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"time"
)

const defaultDeadline = 30 * time.Second

// Deadline returns a middleware that bounds the request context by duration.
// Handlers observe the deadline through r.Context(); the middleware does not
// write a response itself. Non-positive durations fall back to 30s.
func Deadline(duration time.Duration) func(http.Handler) http.Handler {
	if duration <= 0 {
		slog.Warn("middleware: duration must be positive, using default",
			"provided", duration, "default", defaultDeadline)

		duration = defaultDeadline
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, cancel := context.WithTimeout(r.Context(), duration)
			defer cancel()

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
