package config

import (
	"log/slog"
	"os"
	"sync"
	"time"
)

// Store keeps the last good configuration and picks up edits made to the file
// while the program runs.
type Store struct {
	path   string
	logger *slog.Logger

	mu      sync.Mutex
	current *Config
	modTime time.Time
}

// NewStore loads the configuration at path. Unreadable or invalid files fall
// back to the defaults; the cause is logged.
func NewStore(path string, logger *slog.Logger) *Store {
	s := &Store{
		path:    path,
		logger:  logger,
		current: DefaultConfig(),
	}

	if info, err := os.Stat(path); err == nil {
		s.modTime = info.ModTime()
	}

	cfg, err := Load(path)
	if err != nil {
		logger.Warn("using default configuration", "path", path, "err", err)
		return s
	}
	s.current = cfg
	return s
}

// Path returns the file backing the store.
func (s *Store) Path() string {
	return s.path
}

// Current returns the configuration in effect, reloading it first if the file
// changed since the last call.
func (s *Store) Current() *Config {
	s.mu.Lock()
	defer s.mu.Unlock()

	info, err := os.Stat(s.path)
	if err != nil || info.ModTime().Equal(s.modTime) {
		return s.current
	}
	s.modTime = info.ModTime()

	cfg, err := Load(s.path)
	if err != nil {
		s.logger.Warn("ignoring config change", "path", s.path, "err", err)
		return s.current
	}

	s.logger.Info("configuration reloaded", "path", s.path)
	s.current = cfg
	return s.current
}

// Save persists cfg and makes it the current configuration.
func (s *Store) Save(cfg *Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := Save(s.path, cfg); err != nil {
		return err
	}
	if info, err := os.Stat(s.path); err == nil {
		s.modTime = info.ModTime()
	}
	copied := *cfg
	s.current = &copied
	return nil
}
