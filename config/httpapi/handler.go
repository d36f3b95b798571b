package httpapi

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/0xalexb/hjarta-config/config"
	"github.com/0xalexb/hjarta-config/listener/middleware"
)

const (
	// DefaultReloadTimeout bounds a reload triggered over HTTP.
	DefaultReloadTimeout = 30 * time.Second

	// DefaultReloadRate is the number of reloads per second accepted over HTTP.
	DefaultReloadRate = 1.0

	// DefaultReloadBurst is the number of reloads accepted back to back.
	DefaultReloadBurst = 3
)

// Option configures a Handler.
type Option func(*Handler)

// WithLogger sets the logger for request logging and error reporting.
func WithLogger(logger *slog.Logger) Option {
	return func(h *Handler) {
		if logger != nil {
			h.logger = logger
		}
	}
}

// WithMetrics serves gatherer at /metrics.
func WithMetrics(gatherer prometheus.Gatherer) Option {
	return func(h *Handler) {
		h.gatherer = gatherer
	}
}

// WithReloadTimeout bounds the reload endpoint.
func WithReloadTimeout(timeout time.Duration) Option {
	return func(h *Handler) {
		h.reloadTimeout = timeout
	}
}

// WithReloadRateLimit limits how often the reload endpoint may be called.
func WithReloadRateLimit(requestsPerSecond float64, burst int) Option {
	return func(h *Handler) {
		h.reloadRate = requestsPerSecond
		h.reloadBurst = burst
	}
}

// Handler serves a configuration root.
type Handler struct {
	root   *config.Root
	logger *slog.Logger

	gatherer      prometheus.Gatherer
	reloadTimeout time.Duration
	reloadRate    float64
	reloadBurst   int
}

// NewHandler creates a Handler for root.
func NewHandler(root *config.Root, opts ...Option) (*Handler, error) {
	if root == nil {
		return nil, fmt.Errorf("%w: root must not be nil", config.ErrMisconfigured)
	}

	h := &Handler{
		root:          root,
		logger:        slog.Default(),
		reloadTimeout: DefaultReloadTimeout,
		reloadRate:    DefaultReloadRate,
		reloadBurst:   DefaultReloadBurst,
	}

	for _, apply := range opts {
		apply(h)
	}

	return h, nil
}

// Router returns the routes wrapped in request-id, logging and recovery middleware.
func (h *Handler) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID())
	r.Use(middleware.Logging(h.logger))
	r.Use(middleware.Recovery(h.logger))

	r.Route("/api/configuration", func(r chi.Router) {
		r.Get("/all", h.handleAll)
		r.Get("/value/{key}", h.handleValue)
		r.Get("/section/{name}", h.handleSection)

		r.With(
			middleware.RateLimit(h.reloadRate, h.reloadBurst),
			middleware.Deadline(h.reloadTimeout),
		).Post("/reload", h.handleReload)
	})

	if h.gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(h.gatherer, promhttp.HandlerOpts{
			ErrorLog: slog.NewLogLogger(h.logger.Handler(), slog.LevelError),
		}))
	}

	return r
}

func (h *Handler) handleAll(w http.ResponseWriter, _ *http.Request) {
	writeJSON(h.logger, w, http.StatusOK, h.root.All().Nullable())
}

func (h *Handler) handleValue(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "key")

	value, ok := h.root.Value(key)
	if !ok {
		handleError(h.logger, w, fmt.Errorf("%w: %s", config.ErrKeyNotFound, key))

		return
	}

	writeJSON(h.logger, w, http.StatusOK, ValueResponse{Key: key, Value: value})
}

func (h *Handler) handleSection(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	tree, ok := h.root.Section(name).Tree()
	if !ok {
		handleError(h.logger, w, fmt.Errorf("%w: %s", config.ErrKeyNotFound, name))

		return
	}

	writeJSON(h.logger, w, http.StatusOK, SectionResponse{Path: name, Value: tree})
}

func (h *Handler) handleReload(w http.ResponseWriter, r *http.Request) {
	err := h.root.Reload(r.Context())
	if err != nil {
		handleError(h.logger, w, err)

		return
	}

	providers := h.root.Providers()
	names := make([]string, 0, len(providers))

	for _, provider := range providers {
		names = append(names, provider.Name())
	}

	writeJSON(h.logger, w, http.StatusOK, ReloadResponse{Status: "reloaded", Providers: names})
}
