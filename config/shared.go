// ABOUTME: Thread-safe holder for the live configuration
// ABOUTME: The TUI writes it on parameter changes and reloads; background work reads it

package config

import "sync"

// SharedConfig guards a Config shared between goroutines
type SharedConfig struct {
	mu     sync.RWMutex
	config Config
}

// NewSharedConfig returns a holder initialized with cfg
func NewSharedConfig(cfg Config) *SharedConfig {
	return &SharedConfig{config: cfg}
}

// Get returns a copy of the current config
func (s *SharedConfig) Get() Config {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.config
}

// Update replaces the current config
func (s *SharedConfig) Update(cfg Config) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.config = cfg
}
