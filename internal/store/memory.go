package store

import (
	"context"
	"sort"
	"sync"
)

// MemoryPaneStore is an in-process PaneStore, used when no store path is configured.
type MemoryPaneStore struct {
	mu sync.Mutex
	m  map[string]string
}

func NewMemoryPaneStore() *MemoryPaneStore {
	return &MemoryPaneStore{m: map[string]string{}}
}

func (s *MemoryPaneStore) Get(_ context.Context, key string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.m[key]
	return v, ok, nil
}

func (s *MemoryPaneStore) Set(_ context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.m == nil {
		s.m = map[string]string{}
	}
	s.m[key] = value
	return nil
}

func (s *MemoryPaneStore) Keys(context.Context) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, 0, len(s.m))
	for k := range s.m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out, nil
}
