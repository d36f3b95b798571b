package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
	"go.uber.org/fx"

	hjarta "github.com/0xalexb/hjarta-config"
	"github.com/0xalexb/hjarta-config/config/httpapi"
	"github.com/0xalexb/hjarta-config/config/metrics"
	"github.com/0xalexb/hjarta-config/config/reload"
	"github.com/0xalexb/hjarta-config/listener"
	"github.com/0xalexb/hjarta-config/settings"
)

const apiListener = "api"

func (c *cli) newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the merged configuration over HTTP",
		Long: `Serve the merged configuration under /api/configuration and Prometheus
metrics under /metrics until interrupted.`,
		RunE: c.runServe,
	}

	cmd.Flags().String("addr", "", "listen address (default: :8080, env: HJARTA_SERVER_ADDRESS)")
	cmd.Flags().Duration("reload-timeout", 0, "timeout for POST /api/configuration/reload (env: HJARTA_SERVER_RELOAD_TIMEOUT)")

	_ = c.v.BindPFlag("server.address", cmd.Flags().Lookup("addr"))
	_ = c.v.BindPFlag("server.reload_timeout", cmd.Flags().Lookup("reload-timeout"))

	return cmd
}

func (c *cli) runServe(cmd *cobra.Command, _ []string) error {
	app, err := c.newServeApp(cmd.Context(), cmd.ErrOrStderr())
	if err != nil {
		return err
	}

	app.Run()

	return nil
}

func (c *cli) newServeApp(ctx context.Context, logOutput io.Writer) (*hjarta.App, error) {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	collector, err := metrics.New(registry)
	if err != nil {
		return nil, fmt.Errorf("metrics: %w", err)
	}

	built, err := c.buildLayers(ctx, collector)
	if err != nil {
		return nil, err
	}

	opts := []hjarta.Option{
		hjarta.WithLogLevel(c.cfg.Log.Level),
		hjarta.WithLogFormat(c.cfg.Log.Format),
		hjarta.WithLogOutput(logOutput),
		hjarta.WithConfiguration(built.providers...),
		hjarta.WithMetrics(registry),
		hjarta.WithHTTPListener(apiListener, listener.WithAddress(c.cfg.Server.Address)),
		hjarta.WithConfigurationAPI(apiListener,
			httpapi.WithReloadTimeout(c.cfg.Server.ReloadTimeout),
		),
	}

	if built.publisher != nil && c.cfg.ReloadInterval > 0 {
		module, moduleErr := c.republishModule(built.publisher)
		if moduleErr != nil {
			built.close()

			return nil, moduleErr
		}

		opts = append(opts, hjarta.WithModules(module))
	}

	app := hjarta.NewApp(opts...)

	err = app.Err()
	if err != nil {
		built.close()

		return nil, fmt.Errorf("build app: %w", err)
	}

	return app, nil
}

// republishModule pushes a new sample generation every reload interval while the app runs.
//
//nolint:ireturn // fx.Option is the standard return type for Fx modules
func (c *cli) republishModule(publisher *settings.Publisher) (fx.Option, error) {
	scheduler, err := reload.New("samples", c.cfg.ReloadInterval, func(ctx context.Context) error {
		count, pubErr := publisher.Publish(ctx)
		if pubErr != nil {
			return pubErr //nolint:wrapcheck // already wrapped by Publish
		}

		c.logger.Debug("sample settings republished", slog.Int("load_count", count))

		return nil
	}, reload.WithLogger(c.logger))
	if err != nil {
		return nil, fmt.Errorf("samples scheduler: %w", err)
	}

	return fx.Module("samples",
		fx.Invoke(func(lc fx.Lifecycle) {
			lc.Append(fx.Hook{
				OnStart: scheduler.Start,
				OnStop:  scheduler.Stop,
			})
		}),
	), nil
}
