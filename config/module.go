package config

import (
	"context"
	"log/slog"
	"time"

	"go.uber.org/fx"
)

// DefaultLoadTimeout bounds the initial load of all providers during Fx startup.
const DefaultLoadTimeout = 30 * time.Second

type moduleParams struct {
	fx.In

	Lifecycle fx.Lifecycle
	Logger    *slog.Logger `optional:"true"`
}

// NewModule creates an Fx module that builds a *Root from providers, in
// registration order, and shuts it down when the application stops.
//
//nolint:ireturn // fx.Option is the standard return type for Fx modules
func NewModule(providers ...Provider) fx.Option {
	return fx.Module("config",
		fx.Provide(func(params moduleParams) (*Root, error) {
			ctx, cancel := context.WithTimeout(context.Background(), DefaultLoadTimeout)
			defer cancel()

			root, err := NewBuilder(WithRootLogger(params.Logger)).Add(providers...).Build(ctx)
			if err != nil {
				return nil, err
			}

			params.Lifecycle.Append(fx.Hook{
				OnStop: root.Shutdown,
			})

			return root, nil
		}),
	)
}
