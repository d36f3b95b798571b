package memory

import (
	"context"
	"sync"

	"github.com/0xalexb/hjarta-config/config/flat"
)

// Source serves a flat key/value map. The map is copied on construction and
// on Set, so callers may keep mutating their own map.
type Source struct {
	mu   sync.RWMutex
	data flat.Mapping
}

// New creates a source from flat string values.
func New(values map[string]string) *Source {
	return &Source{data: flat.FromStrings(values)}
}

// NewNullable creates a source from flat values where nil marks an explicit null.
func NewNullable(values map[string]*string) *Source {
	return &Source{data: flat.FromNullable(values)}
}

// Load returns the current snapshot.
func (s *Source) Load(_ context.Context) (flat.Mapping, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.data, nil
}

// Set replaces the served values. The change becomes visible on the next load.
func (s *Source) Set(values map[string]string) {
	data := flat.FromStrings(values)

	s.mu.Lock()
	s.data = data
	s.mu.Unlock()
}
