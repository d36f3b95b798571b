package config

import (
	"errors"
	"fmt"
)

// ErrMisconfigured is wrapped by every setup-time error. Such errors abort
// construction before a provider or root is usable.
var ErrMisconfigured = errors.New("misconfigured")

// ErrEmptyName is returned when a provider is created without a name.
var ErrEmptyName = fmt.Errorf("%w: provider name must not be empty", ErrMisconfigured)

// ErrNilSource is returned when a provider is created without a source.
var ErrNilSource = fmt.Errorf("%w: source must not be nil", ErrMisconfigured)

// ErrNilProvider is returned when a nil provider is registered.
var ErrNilProvider = fmt.Errorf("%w: provider must not be nil", ErrMisconfigured)

// ErrInvalidInterval is returned for a negative reload interval.
var ErrInvalidInterval = fmt.Errorf("%w: reload interval must not be negative", ErrMisconfigured)

// ErrNilTarget is returned when binding into a nil target.
var ErrNilTarget = fmt.Errorf("%w: bind target must not be nil", ErrMisconfigured)

// ErrProviderClosed is returned when loading or reloading a closed provider.
var ErrProviderClosed = errors.New("provider closed")

// ErrKeyNotFound reports a key that no provider holds.
var ErrKeyNotFound = errors.New("key not found")

// FetchError reports a source that failed to produce data during a load or reload.
// The provider keeps its previous data.
type FetchError struct {
	Provider string
	Err      error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("provider %q: fetch failed: %v", e.Provider, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}
