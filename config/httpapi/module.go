package httpapi

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/fx"

	"github.com/0xalexb/hjarta-config/config"
)

type moduleParams struct {
	fx.In

	Root     *config.Root
	Logger   *slog.Logger        `optional:"true"`
	Gatherer prometheus.Gatherer `optional:"true"`
}

// NewModule provides the configuration API as an http.Handler named after the
// listener that serves it, so it pairs with listener.NewModule(name).
//
//nolint:ireturn // fx.Option is the standard return type for Fx modules
func NewModule(name string, opts ...Option) fx.Option {
	return fx.Module("httpapi",
		fx.Provide(
			fx.Annotate(
				func(params moduleParams) (http.Handler, error) {
					all := append([]Option{WithLogger(params.Logger)}, opts...)
					if params.Gatherer != nil {
						all = append(all, WithMetrics(params.Gatherer))
					}

					handler, err := NewHandler(params.Root, all...)
					if err != nil {
						return nil, err
					}

					return handler.Router(), nil
				},
				fx.ResultTags(fmt.Sprintf(`name:"%s"`, name)),
			),
		),
	)
}
