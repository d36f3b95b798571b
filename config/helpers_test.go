package config_test

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/0xalexb/hjarta-config/config/flat"
)

// switchSource serves whatever mapping was set last and counts loads.
type switchSource struct {
	mu    sync.Mutex
	data  flat.Mapping
	err   error
	loads atomic.Int32
}

func newSwitchSource(values map[string]string) *switchSource {
	return &switchSource{data: flat.FromStrings(values)}
}

func (s *switchSource) Load(_ context.Context) (flat.Mapping, error) {
	s.loads.Add(1)

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.err != nil {
		return flat.Mapping{}, s.err
	}

	return s.data, nil
}

func (s *switchSource) set(values map[string]string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.data = flat.FromStrings(values)
	s.err = nil
}

func (s *switchSource) fail(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.err = err
}
