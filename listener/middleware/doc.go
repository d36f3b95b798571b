// Package middleware provides net/http middleware used by the configuration API:
// request IDs, request logging, panic recovery, rate limiting and request deadlines.
//
// Every constructor returns func(http.Handler) http.Handler, so the middleware
// plugs into chi routers and plain handlers alike. Middleware that logs takes
// its *slog.Logger explicitly; a nil logger falls back to slog.Default().
package middleware
