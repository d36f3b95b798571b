package listener

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"sync"
)

// Server manages an HTTP server lifecycle.
type Server struct {
	name       string
	config     Config
	server     *http.Server
	logger     *slog.Logger
	onServeErr func()

	mu       sync.Mutex
	listener net.Listener
}

// NewServer creates a new Server with the given name, handler, and config.
// It sets config defaults, validates the config, and creates the underlying http.Server.
// The onServeErr callback, if non-nil, is called when the background Serve goroutine encounters a fatal error.
// A nil logger uses slog.Default().
func NewServer(name string, handler http.Handler, cfg Config, logger *slog.Logger, onServeErr func()) (*Server, error) {
	if name == "" {
		return nil, ErrEmptyName
	}

	if handler == nil {
		return nil, ErrNilHandler
	}

	cfg.SetDefaults()

	err := cfg.Validate()
	if err != nil {
		return nil, err
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &Server{
		name:   name,
		config: cfg,
		logger: logger.With(slog.String("listener", name)),
		server: &http.Server{ //nolint:exhaustruct // only relevant fields needed
			Addr:              cfg.Address,
			Handler:           handler,
			ReadHeaderTimeout: cfg.ReadHeaderTimeout,
			WriteTimeout:      cfg.WriteTimeout,
			ErrorLog:          slog.NewLogLogger(logger.Handler(), slog.LevelWarn),
		},
		onServeErr: onServeErr,
	}, nil
}

// Addr returns the address the server listens on, or the configured address before Start.
func (s *Server) Addr() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.listener != nil {
		return s.listener.Addr().String()
	}

	return s.config.Address
}

// Start begins listening on TCP and serves HTTP requests in a background goroutine.
func (s *Server) Start(ctx context.Context) error {
	listenCfg := net.ListenConfig{} //nolint:exhaustruct // zero-value defaults are fine

	listener, err := listenCfg.Listen(ctx, "tcp", s.server.Addr)
	if err != nil {
		s.logger.Error("failed to listen", slog.String("address", s.server.Addr), slog.Any("error", err))

		return fmt.Errorf("%w: %w", ErrListenFailed, err)
	}

	s.mu.Lock()
	s.listener = listener
	s.mu.Unlock()

	s.logger.Info("starting HTTP listener", slog.String("address", listener.Addr().String()))

	go func() {
		serveErr := s.server.Serve(listener)
		if serveErr != nil && !errors.Is(serveErr, http.ErrServerClosed) {
			s.logger.Error("HTTP listener error", slog.Any("error", serveErr))

			if s.onServeErr != nil {
				s.onServeErr()
			}
		}
	}()

	return nil
}

// Stop gracefully shuts down the HTTP server.
func (s *Server) Stop(ctx context.Context) error {
	s.logger.Info("stopping HTTP listener")

	err := s.server.Shutdown(ctx)
	if err != nil {
		s.logger.Error("shutdown failed", slog.Any("error", err))

		return fmt.Errorf("%w: %w", ErrShutdownFailed, err)
	}

	return nil
}
