package config

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/0xalexb/hjarta-config/config/flat"
)

// BuilderOption configures a Builder.
type BuilderOption func(*Builder)

// WithRootLogger sets the logger used by the root.
func WithRootLogger(logger *slog.Logger) BuilderOption {
	return func(b *Builder) {
		if logger != nil {
			b.logger = logger
		}
	}
}

// Builder collects providers in registration order.
type Builder struct {
	providers []Provider
	logger    *slog.Logger
}

// NewBuilder creates an empty Builder.
func NewBuilder(opts ...BuilderOption) *Builder {
	builder := &Builder{logger: slog.Default()}

	for _, apply := range opts {
		apply(builder)
	}

	return builder
}

// Add appends providers. Providers added later override earlier ones.
func (b *Builder) Add(providers ...Provider) *Builder {
	b.providers = append(b.providers, providers...)

	return b
}

// Build loads every provider in registration order and returns the composed root.
// If any provider fails to load, the providers loaded so far are closed and the
// error is returned.
func (b *Builder) Build(ctx context.Context) (*Root, error) {
	for i, provider := range b.providers {
		if provider == nil {
			return nil, fmt.Errorf("provider #%d: %w", i, ErrNilProvider)
		}
	}

	providers := make([]Provider, len(b.providers))
	copy(providers, b.providers)

	for i, provider := range providers {
		err := provider.Load(ctx)
		if err != nil {
			for _, loaded := range providers[:i+1] {
				_ = loaded.Close()
			}

			return nil, fmt.Errorf("load provider %q: %w", provider.Name(), err)
		}
	}

	root := &Root{
		providers: providers,
		logger:    b.logger,
	}

	for _, provider := range providers {
		root.subscriptions = append(root.subscriptions, OnChange(provider.ChangeToken, root.notifier.Notify))
	}

	b.logger.Debug("configuration built", slog.Int("providers", len(providers)))

	return root, nil
}

// Root is the ordered composition of providers. Lookups scan providers from the
// last registered to the first and never block on provider reloads.
type Root struct {
	providers     []Provider
	logger        *slog.Logger
	notifier      Notifier
	subscriptions []func()
	closeOnce     sync.Once
}

// Get returns the value of key from the last provider that holds it. A provider
// holding a null value for key still wins over earlier providers. The boolean is
// false when no provider holds key.
func (r *Root) Get(key string) (flat.Value, bool) {
	for i := len(r.providers) - 1; i >= 0; i-- {
		value, ok := r.providers[i].Data().Lookup(key)
		if ok {
			return value, true
		}
	}

	return flat.Value{}, false
}

// Value returns the string stored at key. It returns false when the key is
// absent or holds null.
func (r *Root) Value(key string) (string, bool) {
	value, ok := r.Get(key)
	if !ok || !value.Valid {
		return "", false
	}

	return value.String, true
}

// All returns the merged view of every provider, later providers overriding earlier ones.
func (r *Root) All() flat.Mapping {
	builder := flat.NewBuilder()

	for _, provider := range r.providers {
		builder.Merge(provider.Data(), "")
	}

	return builder.Mapping()
}

// Section returns the subtree addressed by path.
func (r *Root) Section(path string) *Section {
	return &Section{root: r, path: path}
}

// Providers returns the providers in registration order.
func (r *Root) Providers() []Provider {
	providers := make([]Provider, len(r.providers))
	copy(providers, r.providers)

	return providers
}

// Reload reloads every provider. A failing provider does not stop the others;
// all failures are joined into the returned error.
func (r *Root) Reload(ctx context.Context) error {
	var errs []error

	for _, provider := range r.providers {
		err := provider.Reload(ctx)
		if err != nil {
			r.logger.Warn("provider reload failed", slog.String("provider", provider.Name()), slog.Any("error", err))
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}

// ChangeToken returns a token fired when any provider reloads.
func (r *Root) ChangeToken() *ChangeToken {
	return r.notifier.Token()
}

// Close unsubscribes from the providers and closes them.
func (r *Root) Close() error {
	var errs []error

	r.closeOnce.Do(func() {
		for _, unsubscribe := range r.subscriptions {
			unsubscribe()
		}

		for _, provider := range r.providers {
			err := provider.Close()
			if err != nil {
				errs = append(errs, fmt.Errorf("close provider %q: %w", provider.Name(), err))
			}
		}
	})

	return errors.Join(errs...)
}

type shutdowner interface {
	Shutdown(ctx context.Context) error
}

// Shutdown closes the root and waits for background reload loops to exit.
func (r *Root) Shutdown(ctx context.Context) error {
	errs := []error{r.Close()}

	for _, provider := range r.providers {
		s, ok := provider.(shutdowner)
		if !ok {
			continue
		}

		errs = append(errs, s.Shutdown(ctx))
	}

	return errors.Join(errs...)
}
