package object

import (
	"context"
	"fmt"

	"github.com/0xalexb/hjarta-config/config"
	"github.com/0xalexb/hjarta-config/config/flat"
)

// ErrNilFactory is returned when no settings factory is given.
var ErrNilFactory = fmt.Errorf("%w: settings factory must not be nil", config.ErrMisconfigured)

// Factory produces the current settings value.
type Factory func(ctx context.Context) (any, error)

// Option configures a Source.
type Option func(*Source)

// WithPrefix places the flattened entries under prefix.
func WithPrefix(prefix string) Option {
	return func(s *Source) {
		s.prefix = prefix
	}
}

// Source calls its factory on every load and flattens the result. Values
// implementing flat.Fielder declare their members; maps, slices and scalars
// are walked structurally.
type Source struct {
	factory Factory
	prefix  string
}

// New creates a source around factory.
func New(factory Factory, opts ...Option) (*Source, error) {
	if factory == nil {
		return nil, ErrNilFactory
	}

	source := &Source{factory: factory}

	for _, apply := range opts {
		apply(source)
	}

	return source, nil
}

// Static creates a source that always flattens value.
func Static(value any, opts ...Option) *Source {
	source, _ := New(func(context.Context) (any, error) { return value, nil }, opts...)

	return source
}

// Load produces and flattens the current settings value.
func (s *Source) Load(ctx context.Context) (flat.Mapping, error) {
	value, err := s.factory(ctx)
	if err != nil {
		return flat.Mapping{}, fmt.Errorf("settings factory: %w", err)
	}

	return flat.Flatten(value, s.prefix), nil
}
