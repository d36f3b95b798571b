package config

import (
	"fmt"
	"log/slog"
	"reflect"
	"sync"

	"github.com/go-playground/validator/v10"
)

var structValidator = sync.OnceValue(func() *validator.Validate {
	return validator.New(validator.WithRequiredStructEnabled())
})

// Bind hydrates target from the section at path, sets defaults, and validates it.
// Defaults run after hydration so SetDefaults only fills what the configuration
// left empty. Struct targets are also checked against their `validate` tags.
func Bind[T any](root *Root, path string, target *T) (*T, error) {
	if target == nil {
		return nil, ErrNilTarget
	}

	err := root.Section(path).Bind(target)
	if err != nil {
		return nil, fmt.Errorf("binding error: %w", err)
	}

	targetDefaulter, isDefaulter := any(target).(Defaulter)
	if isDefaulter {
		changed := targetDefaulter.SetDefaults()
		if changed {
			root.logger.Info("defaults applied", slog.String("path", path))
		}
	}

	if reflect.TypeFor[T]().Kind() == reflect.Struct {
		err = structValidator().Struct(target)
		if err != nil {
			return nil, fmt.Errorf("validating error: %w", err)
		}
	}

	targetValidatable, isValidatable := any(target).(Validator)
	if isValidatable {
		err = targetValidatable.Validate()
		if err != nil {
			return nil, fmt.Errorf("validating error: %w", err)
		}
	}

	return target, nil
}

// Provide returns an Fx constructor that binds the section at path into a new T.
func Provide[T any](path string) func(*Root) (*T, error) {
	return func(root *Root) (*T, error) {
		return Bind(root, path, new(T))
	}
}
