package listener

import (
	"fmt"
	"log/slog"
	"net/http"

	"go.uber.org/fx"

	"github.com/0xalexb/hjarta-config/config"
)

// NewModule creates an Fx module for a named HTTP listener.
// The name is used as both the module name and the DI named tag for http.Handler and Config.
// If any options are passed, the module supplies Config to DI from those options.
// Otherwise, Config must be provided externally, e.g. by FromConfiguration.
//
//nolint:ireturn // fx.Option is the standard return type for Fx modules
func NewModule(name string, opts ...Option) fx.Option {
	if name == "" {
		return fx.Error(ErrEmptyName)
	}

	var cfg Config

	for _, apply := range opts {
		apply(&cfg)
	}

	nameTag := fmt.Sprintf(`name:"%s"`, name)

	var moduleOpts []fx.Option

	if len(opts) > 0 {
		moduleOpts = append(moduleOpts, fx.Supply(
			fx.Annotate(cfg, fx.ResultTags(nameTag)),
		))
	}

	moduleOpts = append(moduleOpts, fx.Invoke(
		fx.Annotate(
			func(
				lifecycle fx.Lifecycle,
				shutdowner fx.Shutdowner,
				handler http.Handler,
				listenerCfg Config,
				logger *slog.Logger,
			) error {
				srv, err := NewServer(name, handler, listenerCfg, logger, func() {
					shutdownErr := shutdowner.Shutdown()
					if shutdownErr != nil {
						slog.Error("failed to trigger shutdown", "name", name, "error", shutdownErr)
					}
				})
				if err != nil {
					return err
				}

				lifecycle.Append(fx.Hook{
					OnStart: srv.Start,
					OnStop:  srv.Stop,
				})

				return nil
			},
			fx.ParamTags("", "", nameTag, nameTag, `optional:"true"`),
		),
	))

	return fx.Module(name, moduleOpts...)
}

// FromConfiguration provides the named listener Config by binding the
// configuration section at path, e.g. "Listeners:api".
//
//nolint:ireturn // fx.Option is the standard return type for Fx modules
func FromConfiguration(name, path string) fx.Option {
	return fx.Provide(
		fx.Annotate(
			func(root *config.Root) (Config, error) {
				cfg, err := config.Bind(root, path, &Config{})
				if err != nil {
					return Config{}, fmt.Errorf("listener %q: %w", name, err)
				}

				return *cfg, nil
			},
			fx.ResultTags(fmt.Sprintf(`name:"%s"`, name)),
		),
	)
}
