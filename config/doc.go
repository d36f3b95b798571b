// Package config composes configuration from ordered providers into one flat,
// override-respecting view that can be reloaded while it is being read.
//
// Every provider owns a flat mapping of colon-delimited paths to optional
// string values. A Root scans providers from the last registered to the first,
// so later providers override earlier ones:
//
//	root, err := config.NewBuilder().
//		Add(defaults, fromFile, pushed).
//		Build(ctx)
//
//	name, ok := root.Value("General:AppName")
//
// Providers reload manually through Reload, periodically when created with
// WithReloadInterval, or when an external push triggers them. Each reload
// installs a new immutable snapshot and fires the provider's ChangeToken.
// The Root aggregates those tokens into its own ChangeToken:
//
//	stop := config.OnChange(root.ChangeToken, func() {
//		slog.Info("configuration changed")
//	})
//	defer stop()
//
// Sections hydrate structures using the Validator and Defaulter interfaces:
//
//	general, err := config.Bind(root, "General", &GeneralSettings{})
//
// Sources live under config/source, parsers under config/parser and fetchers
// under config/fetcher.
package config
