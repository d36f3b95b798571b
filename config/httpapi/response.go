package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/0xalexb/hjarta-config/config"
)

// ErrorResponse is the JSON body of every error reply.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// ValueResponse is the body of a single-key lookup.
type ValueResponse struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// SectionResponse is the body of a section lookup.
type SectionResponse struct {
	Path  string `json:"path"`
	Value any    `json:"value"`
}

// ReloadResponse is the body of a successful reload.
type ReloadResponse struct {
	Status    string   `json:"status"`
	Providers []string `json:"providers"`
}

func writeJSON(logger *slog.Logger, w http.ResponseWriter, code int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)

	err := json.NewEncoder(w).Encode(data)
	if err != nil {
		logger.Error("failed to encode response", slog.Any("error", err))
	}
}

func writeError(logger *slog.Logger, w http.ResponseWriter, code int, errCode, message string) {
	writeJSON(logger, w, code, ErrorResponse{Error: errCode, Message: message})
}

// handleError maps engine errors to status codes.
func handleError(logger *slog.Logger, w http.ResponseWriter, err error) {
	var fetchErr *config.FetchError

	switch {
	case errors.Is(err, config.ErrKeyNotFound):
		writeError(logger, w, http.StatusNotFound, "not_found", err.Error())
	case errors.Is(err, config.ErrProviderClosed):
		writeError(logger, w, http.StatusServiceUnavailable, "closed", err.Error())
	case errors.Is(err, context.DeadlineExceeded):
		writeError(logger, w, http.StatusGatewayTimeout, "timeout", "reload did not finish in time")
	case errors.As(err, &fetchErr):
		logger.Warn("reload failed", slog.Any("error", err))
		writeError(logger, w, http.StatusBadGateway, "reload_failed", err.Error())
	default:
		logger.Error("request error", slog.Any("error", err))
		writeError(logger, w, http.StatusInternalServerError, "internal_error", "Internal server error")
	}
}
