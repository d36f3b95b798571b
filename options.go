package hjarta

import (
	"io"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/fx"

	"github.com/0xalexb/hjarta-config/config"
	"github.com/0xalexb/hjarta-config/config/httpapi"
	"github.com/0xalexb/hjarta-config/listener"
)

// Options holds configuration settings for the application.
type Options struct {
	Modules   []fx.Option
	Providers []config.Provider
	Gatherer  prometheus.Gatherer
	LogLevel  string
	LogFormat string
	LogOutput io.Writer
}

// Option defines a function type for applying configuration options.
type Option func(*Options)

// WithModules adds Fx modules to the application.
func WithModules(modules ...fx.Option) Option {
	return func(opts *Options) {
		opts.Modules = append(opts.Modules, modules...)
	}
}

// WithConfiguration registers configuration providers. Later providers
// override earlier ones; calling it again appends after the existing ones.
// The resulting *config.Root is available for injection.
func WithConfiguration(providers ...config.Provider) Option {
	return func(opts *Options) {
		opts.Providers = append(opts.Providers, providers...)
	}
}

// WithHTTPListener adds a named HTTP listener module to the application.
// The name is used as both the Fx module name and the DI named tag for http.Handler and Config.
// When options are provided (e.g., WithAddress), Config is supplied to DI automatically.
// Call multiple times with different names to create multiple listeners.
func WithHTTPListener(name string, opts ...listener.Option) Option {
	return func(o *Options) {
		o.Modules = append(o.Modules, listener.NewModule(name, opts...))
	}
}

// WithConfigurationAPI serves the configuration HTTP API on the named listener.
// The listener itself is added with WithHTTPListener.
func WithConfigurationAPI(listenerName string, opts ...httpapi.Option) Option {
	return func(o *Options) {
		o.Modules = append(o.Modules, httpapi.NewModule(listenerName, opts...))
	}
}

// WithMetrics makes gatherer available for injection; the configuration API
// serves it at /metrics.
func WithMetrics(gatherer prometheus.Gatherer) Option {
	return func(opts *Options) {
		opts.Gatherer = gatherer
	}
}

// WithLogLevel sets the log level for the application.
// Valid levels are: "debug", "info", "warn", "error".
// If not set or invalid, defaults to "info".
func WithLogLevel(level string) Option {
	return func(opts *Options) {
		opts.LogLevel = level
	}
}

// WithLogFormat selects "json" (default) or "text" log output.
func WithLogFormat(format string) Option {
	return func(opts *Options) {
		opts.LogFormat = format
	}
}

// WithLogOutput redirects application logs, which go to stderr by default.
func WithLogOutput(w io.Writer) Option {
	return func(opts *Options) {
		opts.LogOutput = w
	}
}
