package pushed

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/0xalexb/hjarta-config/config"
	"github.com/0xalexb/hjarta-config/config/flat"
)

// ErrDuplicateProvider is returned when a registry already has a live provider.
var ErrDuplicateProvider = fmt.Errorf("%w: registry already has a live provider", config.ErrMisconfigured)

// ErrEmptySectionName is returned when pushed settings have a blank section name.
var ErrEmptySectionName = fmt.Errorf("%w: settings section name must not be empty", config.ErrMisconfigured)

// Settings is a unit of pushed configuration. The fields it declares are
// stored under SectionName.
type Settings interface {
	flat.Fielder
	SectionName() string
}

// Registry owns the latest pushed settings and the provider serving them.
type Registry struct {
	mu       sync.Mutex
	settings []Settings
	active   *config.SourceProvider
	logger   *slog.Logger
}

// RegistryOption configures a Registry.
type RegistryOption func(*Registry)

// WithLogger sets the registry logger.
func WithLogger(logger *slog.Logger) RegistryOption {
	return func(r *Registry) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// NewRegistry creates an empty registry.
func NewRegistry(opts ...RegistryOption) *Registry {
	registry := &Registry{logger: slog.Default()}

	for _, apply := range opts {
		apply(registry)
	}

	return registry
}

// NewProvider creates the registry's provider. It fails with ErrDuplicateProvider
// while another provider of this registry is open.
func (r *Registry) NewProvider(name string, opts ...config.ProviderOption) (*config.SourceProvider, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.active != nil {
		return nil, fmt.Errorf("%w: %q is still open", ErrDuplicateProvider, r.active.Name())
	}

	var provider *config.SourceProvider

	opts = append(opts, config.WithCloseHook(func() {
		r.release(provider)
	}))

	provider, err := config.NewProvider(name, config.SourceFunc(r.load), opts...)
	if err != nil {
		return nil, err
	}

	r.active = provider

	return provider, nil
}

func (r *Registry) release(provider *config.SourceProvider) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.active == provider {
		r.active = nil
	}
}

// SetData replaces the pushed settings and reloads the live provider, if any.
// Without a live provider the settings are kept for the next provider's load.
func (r *Registry) SetData(ctx context.Context, settings ...Settings) error {
	for _, s := range settings {
		if s == nil || strings.TrimSpace(s.SectionName()) == "" {
			return ErrEmptySectionName
		}
	}

	stored := make([]Settings, len(settings))
	copy(stored, settings)

	r.mu.Lock()
	r.settings = stored
	active := r.active
	r.mu.Unlock()

	r.logger.Debug("settings pushed", slog.Int("sections", len(stored)))

	return reload(ctx, active)
}

// ClearData drops the pushed settings and reloads the live provider, if any.
func (r *Registry) ClearData(ctx context.Context) error {
	r.mu.Lock()
	r.settings = nil
	active := r.active
	r.mu.Unlock()

	r.logger.Debug("pushed settings cleared")

	return reload(ctx, active)
}

func reload(ctx context.Context, provider *config.SourceProvider) error {
	if provider == nil {
		return nil
	}

	err := provider.Reload(ctx)
	if err != nil {
		return fmt.Errorf("reload pushed settings: %w", err)
	}

	return nil
}

// load flattens the pushed settings, each under its own section name.
// Later settings win when two share a path.
func (r *Registry) load(_ context.Context) (flat.Mapping, error) {
	r.mu.Lock()
	settings := r.settings
	r.mu.Unlock()

	builder := flat.NewBuilder()

	for _, s := range settings {
		flat.FlattenInto(builder, s, s.SectionName())
	}

	return builder.Mapping(), nil
}
