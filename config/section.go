package config

import (
	"fmt"

	"github.com/go-viper/mapstructure/v2"

	"github.com/0xalexb/hjarta-config/config/flat"
)

// Section is a view of the entries stored under a common path prefix.
// It reads through to the root, so it always reflects the latest reloads.
type Section struct {
	root *Root
	path string
}

// Path returns the full path of the section.
func (s *Section) Path() string {
	return s.path
}

// Key returns the last segment of the section path.
func (s *Section) Key() string {
	segments := flat.Split(s.path)
	if len(segments) == 0 {
		return ""
	}

	return segments[len(segments)-1]
}

// Get returns the value stored at key relative to the section.
func (s *Section) Get(key string) (flat.Value, bool) {
	return s.root.Get(flat.Join(s.path, key))
}

// Value returns the string stored at the section path itself.
func (s *Section) Value() (string, bool) {
	return s.root.Value(s.path)
}

// Exists reports whether any entry is stored at or below the section path.
func (s *Section) Exists() bool {
	_, ok := flat.Unflatten(s.root.All(), s.path)

	return ok
}

// Entries returns the entries below the section with the section path stripped.
func (s *Section) Entries() flat.Mapping {
	return s.root.All().Section(s.path)
}

// Tree rebuilds the nested value stored under the section.
func (s *Section) Tree() (any, bool) {
	return flat.Unflatten(s.root.All(), s.path)
}

// Section returns a child section.
func (s *Section) Section(key string) *Section {
	return &Section{root: s.root, path: flat.Join(s.path, key)}
}

// Bind hydrates target from the section. Field names match path segments
// case-insensitively; the `config` struct tag overrides the name. Strings are
// converted to the target field types, so "True" binds to a bool and "8h0m0s"
// to a time.Duration. A missing section leaves target untouched.
func (s *Section) Bind(target any) error {
	if target == nil {
		return ErrNilTarget
	}

	tree, ok := s.Tree()
	if !ok {
		return nil
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           target,
		TagName:          "config",
		WeaklyTypedInput: true,
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.TextUnmarshallerHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
	})
	if err != nil {
		return fmt.Errorf("%w: %w", ErrMisconfigured, err)
	}

	err = decoder.Decode(tree)
	if err != nil {
		return fmt.Errorf("bind section %q: %w", s.path, err)
	}

	return nil
}
