// Package listener provides a named HTTP listener bound to the Fx lifecycle.
package listener

import (
	"errors"
	"time"
)

// DefaultAddress is the default address for the HTTP listener.
const DefaultAddress = ":8080"

// DefaultReadHeaderTimeout is the default timeout for reading request headers.
const DefaultReadHeaderTimeout = 10 * time.Second

// ErrEmptyAddress is returned when the address is empty.
var ErrEmptyAddress = errors.New("address must not be empty")

// ErrInvalidTimeout is returned for a negative timeout.
var ErrInvalidTimeout = errors.New("timeout must not be negative")

// ErrListenFailed is returned when the server fails to listen on the configured address.
var ErrListenFailed = errors.New("failed to listen")

// ErrShutdownFailed is returned when the server fails to shut down gracefully.
var ErrShutdownFailed = errors.New("shutdown failed")

// ErrEmptyName is returned when the listener name is empty.
var ErrEmptyName = errors.New("listener name must not be empty")

// ErrNilHandler is returned when a nil http.Handler is provided.
var ErrNilHandler = errors.New("handler must not be nil")

// Config holds the configuration for an HTTP listener. It can be bound from a
// configuration section, e.g. "Listeners:api".
type Config struct {
	Address           string
	ReadHeaderTimeout time.Duration
	WriteTimeout      time.Duration
}

// SetDefaults fills the address and header timeout when they are unset.
func (c *Config) SetDefaults() bool {
	changed := false

	if c.Address == "" {
		c.Address = DefaultAddress
		changed = true
	}

	if c.ReadHeaderTimeout == 0 {
		c.ReadHeaderTimeout = DefaultReadHeaderTimeout
		changed = true
	}

	return changed
}

// Validate validates the Config.
func (c *Config) Validate() error {
	if c.Address == "" {
		return ErrEmptyAddress
	}

	if c.ReadHeaderTimeout < 0 || c.WriteTimeout < 0 {
		return ErrInvalidTimeout
	}

	return nil
}
