// Package pushed provides a provider whose data is pushed by the application
// through a Registry instead of being fetched.
//
// A Registry holds the latest pushed settings and at most one live provider.
// SetData stores new settings and reloads that provider, so the change reaches
// the composed configuration without a handle to the provider itself:
//
//	registry := pushed.NewRegistry()
//	provider, err := registry.NewProvider("pushed")
//	root, err := config.NewBuilder().Add(fileProvider, provider).Build(ctx)
//
//	err = registry.SetData(ctx, GeneralSettings{AppName: "pushed"})
//
// Every Settings value declares its entries through flat.Fielder and is
// flattened under its SectionName.
//
// Creating a second provider while the first is still open fails with
// ErrDuplicateProvider. Closing the provider frees the registry.
package pushed
