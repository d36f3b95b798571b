package main

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"slices"
	"strings"

	"github.com/0xalexb/hjarta-config/config"
	filefetcher "github.com/0xalexb/hjarta-config/config/fetcher/file"
	jsonparser "github.com/0xalexb/hjarta-config/config/parser/json"
	yamlparser "github.com/0xalexb/hjarta-config/config/parser/yaml"
	"github.com/0xalexb/hjarta-config/config/source/document"
	"github.com/0xalexb/hjarta-config/config/source/memory"
	"github.com/0xalexb/hjarta-config/config/source/object"
	"github.com/0xalexb/hjarta-config/config/source/pushed"
	"github.com/0xalexb/hjarta-config/config/source/rows"
	"github.com/0xalexb/hjarta-config/settings"
)

// layers are the providers of one invocation, lowest precedence first.
type layers struct {
	providers []config.Provider
	publisher *settings.Publisher
}

func (l *layers) add(provider config.Provider) {
	l.providers = append(l.providers, provider)
}

// close releases providers that were never handed to a root.
func (l *layers) close() {
	for _, provider := range l.providers {
		_ = provider.Close()
	}
}

func (c *cli) providerOptions(observer config.ReloadObserver) []config.ProviderOption {
	opts := []config.ProviderOption{
		config.WithLogger(c.logger),
		config.WithReloadInterval(c.cfg.ReloadInterval),
	}

	if observer != nil {
		opts = append(opts, config.WithObserver(observer))
	}

	return opts
}

//nolint:cyclop,funlen // one block per layer
func (c *cli) buildLayers(ctx context.Context, observer config.ReloadObserver) (*layers, error) {
	result := &layers{}
	opts := c.providerOptions(observer)

	defaults, err := config.NewProvider("defaults", object.Static(settings.Defaults()), config.WithLogger(c.logger))
	if err != nil {
		return nil, err //nolint:wrapcheck // misconfiguration sentinels are descriptive
	}

	result.add(defaults)

	for _, path := range c.cfg.Files {
		provider, fileErr := newFileProvider(path, opts)
		if fileErr != nil {
			result.close()

			return nil, fileErr
		}

		result.add(provider)
	}

	if c.cfg.Database.Type != "none" {
		provider, dbErr := c.newDatabaseProvider(ctx, opts)
		if dbErr != nil {
			result.close()

			return nil, dbErr
		}

		result.add(provider)
	}

	if c.cfg.Samples {
		registry := pushed.NewRegistry(pushed.WithLogger(c.logger))

		provider, pushErr := registry.NewProvider("samples", config.WithLogger(c.logger))
		if pushErr != nil {
			result.close()

			return nil, pushErr //nolint:wrapcheck // misconfiguration sentinels are descriptive
		}

		result.add(provider)
		result.publisher = settings.NewPublisher(registry)

		// Published before the first load, so the provider starts with data.
		_, pushErr = result.publisher.Publish(ctx)
		if pushErr != nil {
			result.close()

			return nil, pushErr //nolint:wrapcheck // already wrapped by Publish
		}
	}

	if len(c.cfg.Overrides) > 0 {
		provider, setErr := config.NewProvider("overrides", memory.New(c.cfg.Overrides), config.WithLogger(c.logger))
		if setErr != nil {
			result.close()

			return nil, setErr //nolint:wrapcheck // misconfiguration sentinels are descriptive
		}

		result.add(provider)
	}

	c.logger.Debug("configuration layers ready", slog.Int("providers", len(result.providers)))

	return result, nil
}

func newFileProvider(path string, opts []config.ProviderOption) (*config.SourceProvider, error) {
	var parser config.Parser

	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		parser = jsonparser.NewParser()
	case ".yaml", ".yml":
		parser = yamlparser.NewParser()
	default:
		return nil, fmt.Errorf("%w: unsupported settings file %q", config.ErrMisconfigured, path)
	}

	fetcher, err := filefetcher.NewFetcher(path)()
	if err != nil {
		return nil, fmt.Errorf("settings file: %w", err)
	}

	source, err := document.New(fetcher, parser)
	if err != nil {
		return nil, fmt.Errorf("settings file %q: %w", path, err)
	}

	provider, err := config.NewProvider("file:"+path, source, opts...)
	if err != nil {
		return nil, fmt.Errorf("settings file %q: %w", path, err)
	}

	return provider, nil
}

func (c *cli) newDatabaseProvider(ctx context.Context, opts []config.ProviderOption) (*config.SourceProvider, error) {
	st, err := openStore(ctx, c.cfg.Database)
	if err != nil {
		return nil, err
	}

	reader, err := rows.FromReader(st, rows.WithLogger(c.logger))
	if err != nil {
		_ = st.Close()

		return nil, fmt.Errorf("database rows: %w", err)
	}

	source, err := rows.NewSource(reader)
	if err != nil {
		_ = st.Close()

		return nil, fmt.Errorf("database rows: %w", err)
	}

	opts = append(slices.Clip(opts), config.WithCloseHook(func() {
		closeErr := st.Close()
		if closeErr != nil {
			c.logger.Warn("failed to close database store", slog.Any("error", closeErr))
		}
	}))

	provider, err := config.NewProvider("database:"+c.cfg.Database.Type, source, opts...)
	if err != nil {
		_ = st.Close()

		return nil, fmt.Errorf("database rows: %w", err)
	}

	return provider, nil
}

// buildRoot loads every layer into a root outside of Fx, for one-shot commands.
func (c *cli) buildRoot(ctx context.Context) (*config.Root, error) {
	built, err := c.buildLayers(ctx, nil)
	if err != nil {
		return nil, err
	}

	root, err := config.NewBuilder(config.WithRootLogger(c.logger)).Add(built.providers...).Build(ctx)
	if err != nil {
		built.close()

		return nil, fmt.Errorf("build configuration: %w", err)
	}

	return root, nil
}
