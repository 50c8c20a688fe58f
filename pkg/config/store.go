package config

import (
	"maps"
	"sync"
)

// Configuration answers setting lookups. Implementations must return the
// current value on every call so live changes apply to the next read.
type Configuration interface {
	Get(key string, def bool) bool
}

// Store holds the live settings for a workspace.
type Store struct {
	mu       sync.RWMutex
	settings map[string]any
}

var _ Configuration = (*Store)(nil)

func NewStore(initial map[string]any) *Store {
	s := &Store{settings: make(map[string]any, len(initial))}
	maps.Copy(s.settings, initial)
	return s
}

// Get returns the boolean stored under key, or def when the key is missing or
// holds something else.
func (s *Store) Get(key string, def bool) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.settings[key].(bool)
	if !ok {
		return def
	}
	return v
}

func (s *Store) Set(key string, value any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.settings[key] = value
}

// Update merges a workspace/didChangeConfiguration payload. Settings may be
// flat or nested under SettingsSection; anything else is ignored.
func (s *Store) Update(settings any) {
	m, ok := settings.(map[string]any)
	if !ok {
		return
	}
	if section, ok := m[SettingsSection].(map[string]any); ok {
		m = section
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	maps.Copy(s.settings, m)
}
