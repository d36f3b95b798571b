package config

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/0xalexb/hjarta-config/config/flat"
	"github.com/0xalexb/hjarta-config/config/reload"
)

// Source produces a complete flat snapshot every time it is loaded.
// Load is called with the provider's lock held, so a Source never sees
// concurrent calls from the same provider.
type Source interface {
	Load(ctx context.Context) (flat.Mapping, error)
}

// SourceFunc adapts a function to the Source interface.
type SourceFunc func(ctx context.Context) (flat.Mapping, error)

// Load calls f.
func (f SourceFunc) Load(ctx context.Context) (flat.Mapping, error) {
	return f(ctx)
}

// Provider owns one flat mapping, reloads it on demand and signals changes.
type Provider interface {
	// Name identifies the provider in logs, metrics and errors.
	Name() string
	// Load performs the initial fetch and blocks until Data is populated.
	Load(ctx context.Context) error
	// Reload fetches a fresh snapshot, replaces Data wholesale and fires the change token.
	Reload(ctx context.Context) error
	// Data returns the currently installed snapshot.
	Data() flat.Mapping
	// ChangeToken returns the token fired by the next successful reload.
	ChangeToken() *ChangeToken
	// Close stops periodic reloads. It is idempotent.
	Close() error
}

// ReloadObserver is notified after every load attempt of a SourceProvider.
type ReloadObserver interface {
	ObserveReload(provider string, duration time.Duration, err error)
}

// ProviderOption configures a SourceProvider.
type ProviderOption func(*SourceProvider)

// WithReloadInterval enables periodic reloads. The first periodic reload runs
// one interval after the initial load. Zero disables periodic reloads.
func WithReloadInterval(interval time.Duration) ProviderOption {
	return func(p *SourceProvider) {
		p.interval = interval
	}
}

// WithLogger sets the provider logger.
func WithLogger(logger *slog.Logger) ProviderOption {
	return func(p *SourceProvider) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// WithOptional lets the initial load fail without aborting the build.
// The provider then starts with an empty snapshot.
func WithOptional() ProviderOption {
	return func(p *SourceProvider) {
		p.optional = true
	}
}

// WithObserver registers an observer for load and reload attempts.
func WithObserver(observer ReloadObserver) ProviderOption {
	return func(p *SourceProvider) {
		if observer != nil {
			p.observers = append(p.observers, observer)
		}
	}
}

// WithCloseHook registers fn to run once when the provider is closed.
func WithCloseHook(fn func()) ProviderOption {
	return func(p *SourceProvider) {
		if fn != nil {
			p.closeHooks = append(p.closeHooks, fn)
		}
	}
}

// SourceProvider is the Provider implementation shared by every source kind.
//
// Load, Reload and Close are serialized by one lock; Data and ChangeToken never
// take it. Each reload installs a brand-new immutable mapping, so readers always
// see one complete snapshot.
type SourceProvider struct {
	name       string
	source     Source
	logger     *slog.Logger
	interval   time.Duration
	optional   bool
	observers  []ReloadObserver
	closeHooks []func()

	mu        sync.Mutex
	loaded    bool
	data      atomic.Pointer[flat.Mapping]
	notifier  Notifier
	closed    atomic.Bool
	closeOnce sync.Once
	scheduler *reload.Scheduler
}

// NewProvider creates a provider for source. Setup errors wrap ErrMisconfigured.
func NewProvider(name string, source Source, opts ...ProviderOption) (*SourceProvider, error) {
	if name == "" {
		return nil, ErrEmptyName
	}

	if source == nil {
		return nil, ErrNilSource
	}

	provider := &SourceProvider{
		name:   name,
		source: source,
		logger: slog.Default(),
	}

	for _, apply := range opts {
		apply(provider)
	}

	if provider.interval < 0 {
		return nil, fmt.Errorf("%w: %s", ErrInvalidInterval, provider.interval)
	}

	if provider.interval > 0 {
		scheduler, err := reload.New(name, provider.interval, provider.Reload, reload.WithLogger(provider.logger))
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrMisconfigured, err)
		}

		provider.scheduler = scheduler
	}

	return provider, nil
}

// Name returns the provider name.
func (p *SourceProvider) Name() string {
	return p.name
}

// Data returns the installed snapshot, empty before the first load.
func (p *SourceProvider) Data() flat.Mapping {
	data := p.data.Load()
	if data == nil {
		return flat.Mapping{}
	}

	return *data
}

// ChangeToken returns the token fired by the next successful reload.
func (p *SourceProvider) ChangeToken() *ChangeToken {
	return p.notifier.Token()
}

// Scheduler returns the periodic reload scheduler, nil when periodic reload is disabled.
func (p *SourceProvider) Scheduler() *reload.Scheduler {
	return p.scheduler
}

// Load performs the initial fetch. Calling Load on a loaded provider reloads it.
// Periodic reloads, when enabled, start after the initial fetch succeeds.
func (p *SourceProvider) Load(ctx context.Context) error {
	p.mu.Lock()

	if p.closed.Load() {
		p.mu.Unlock()

		return ErrProviderClosed
	}

	if p.loaded {
		err := p.reloadLocked(ctx)
		p.mu.Unlock()

		if err != nil {
			return err
		}

		return p.startScheduler(ctx)
	}

	data, err := p.fetch(ctx)
	if err != nil {
		if !p.optional {
			p.mu.Unlock()

			return err
		}

		p.logger.Warn("optional provider failed to load, starting empty",
			slog.String("provider", p.name), slog.Any("error", err))

		data = flat.Mapping{}
	}

	p.data.Store(&data)
	p.loaded = true
	p.mu.Unlock()

	p.logger.Debug("provider loaded", slog.String("provider", p.name), slog.Int("keys", data.Len()))

	return p.startScheduler(ctx)
}

// startScheduler starts periodic reloads. It runs on every successful Load,
// including one that follows an early Reload, and is a no-op once running.
func (p *SourceProvider) startScheduler(ctx context.Context) error {
	if p.scheduler == nil {
		return nil
	}

	err := p.scheduler.Start(ctx)
	if err != nil && !errors.Is(err, reload.ErrStopped) {
		return fmt.Errorf("start periodic reload for %q: %w", p.name, err)
	}

	return nil
}

// Reload fetches a fresh snapshot and fires the change token once.
// On failure the previous snapshot stays installed and a *FetchError is returned.
// Change callbacks run before Reload releases the provider lock.
func (p *SourceProvider) Reload(ctx context.Context) error {
	if p.closed.Load() {
		return ErrProviderClosed
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	return p.reloadLocked(ctx)
}

func (p *SourceProvider) reloadLocked(ctx context.Context) error {
	if p.closed.Load() {
		return ErrProviderClosed
	}

	data, err := p.fetch(ctx)
	if err != nil {
		return err
	}

	if p.closed.Load() {
		return ErrProviderClosed
	}

	p.data.Store(&data)
	p.loaded = true

	p.logger.Debug("provider reloaded", slog.String("provider", p.name), slog.Int("keys", data.Len()))

	p.notifier.Notify()

	return nil
}

func (p *SourceProvider) fetch(ctx context.Context) (flat.Mapping, error) {
	start := time.Now()

	data, err := p.source.Load(ctx)
	if err != nil {
		err = &FetchError{Provider: p.name, Err: err}
	}

	duration := time.Since(start)
	for _, observer := range p.observers {
		observer.ObserveReload(p.name, duration, err)
	}

	return data, err
}

// Close stops periodic reloads and runs close hooks. A reload already in
// flight is discarded. Close does not wait for the reload loop to exit, so it
// may be called from change callbacks; use Shutdown to wait.
func (p *SourceProvider) Close() error {
	p.closeOnce.Do(func() {
		p.closed.Store(true)

		if p.scheduler != nil {
			p.scheduler.Cancel()
		}

		for _, hook := range p.closeHooks {
			hook()
		}

		p.logger.Debug("provider closed", slog.String("provider", p.name))
	})

	return nil
}

// Shutdown closes the provider and waits for its reload loop to exit.
func (p *SourceProvider) Shutdown(ctx context.Context) error {
	err := p.Close()
	if err != nil {
		return err
	}

	if p.scheduler == nil {
		return nil
	}

	err = p.scheduler.Stop(ctx)
	if err != nil {
		return fmt.Errorf("shutdown provider %q: %w", p.name, err)
	}

	return nil
}
