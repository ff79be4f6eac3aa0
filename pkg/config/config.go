package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const appName = "idle-reminder"

// Config holds the persisted settings for idle-reminder
type Config struct {
	// Polling and thresholds, all in seconds
	CheckInterval           int `json:"check_interval" yaml:"check_interval"`
	NotifyLockedThreshold   int `json:"notify_locked_threshold" yaml:"notify_locked_threshold"`
	NotifyUnlockedThreshold int `json:"notify_unlocked_threshold" yaml:"notify_unlocked_threshold"`

	// Reminder sound
	SoundFilePath   string `json:"sound_file_path" yaml:"sound_file_path"`
	PlaySoundOnLock bool   `json:"play_sound_on_lock" yaml:"play_sound_on_lock"`

	// Behavior flags
	ResetUsageOnResume bool `json:"reset_usage_on_resume" yaml:"reset_usage_on_resume"`

	// Rate limiting and batching
	MaxNotificationsPerMinute int `json:"max_notifications_per_minute" yaml:"max_notifications_per_minute"`
	NotificationBatchWindow   int `json:"notification_batch_window" yaml:"notification_batch_window"`
}

// maxSeconds is the largest second count a time.Duration can hold.
const maxSeconds = math.MaxInt64 / int64(time.Second)

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		CheckInterval:             30,
		NotifyLockedThreshold:     1800,
		NotifyUnlockedThreshold:   7200,
		SoundFilePath:             "./sound.mp3",
		MaxNotificationsPerMinute: 6,
		NotificationBatchWindow:   1,
	}
}

// Interval returns the poll period.
func (c *Config) Interval() time.Duration {
	return time.Duration(c.CheckInterval) * time.Second
}

// LockedThreshold returns the idle duration after which the user counts as away.
func (c *Config) LockedThreshold() time.Duration {
	return time.Duration(c.NotifyLockedThreshold) * time.Second
}

// UnlockedThreshold returns the continuous use after which a break reminder fires.
func (c *Config) UnlockedThreshold() time.Duration {
	return time.Duration(c.NotifyUnlockedThreshold) * time.Second
}

// BatchWindow returns how long notifications are collected before one toast is shown.
func (c *Config) BatchWindow() time.Duration {
	return time.Duration(c.NotificationBatchWindow) * time.Second
}

// SoundPath resolves the sound file against the directory of the config file.
// An empty SoundFilePath stays empty.
func (c *Config) SoundPath(configPath string) string {
	if c.SoundFilePath == "" || filepath.IsAbs(c.SoundFilePath) {
		return c.SoundFilePath
	}
	return filepath.Join(filepath.Dir(configPath), c.SoundFilePath)
}

// Validate validates the configuration
func (c *Config) Validate() error {
	for _, f := range []struct {
		key       string
		value     int
		allowZero bool
	}{
		{"check_interval", c.CheckInterval, false},
		{"notify_locked_threshold", c.NotifyLockedThreshold, false},
		{"notify_unlocked_threshold", c.NotifyUnlockedThreshold, false},
		{"notification_batch_window", c.NotificationBatchWindow, true},
	} {
		if err := validateSeconds(f.key, f.value, f.allowZero); err != nil {
			return err
		}
	}

	if c.MaxNotificationsPerMinute < 0 {
		return fmt.Errorf("max_notifications_per_minute must be non-negative")
	}

	return nil
}

// validateSeconds rejects values that are out of range or would overflow a time.Duration.
func validateSeconds(key string, value int, allowZero bool) error {
	switch {
	case value < 0 || (value == 0 && !allowZero):
		if allowZero {
			return fmt.Errorf("%s must be non-negative", key)
		}
		return fmt.Errorf("%s must be positive", key)
	case int64(value) > maxSeconds:
		return fmt.Errorf("%s must be at most %d seconds", key, maxSeconds)
	}
	return nil
}

// DefaultPath returns the config file path
func DefaultPath() string {
	// Check for explicit config path
	if path := os.Getenv("IDLE_REMINDER_CONFIG"); path != "" {
		return path
	}

	// Check XDG config directory
	if xdgConfig := os.Getenv("XDG_CONFIG_HOME"); xdgConfig != "" {
		return filepath.Join(xdgConfig, appName, "config.json")
	}

	// Fall back to the platform config directory
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, appName, "config.json")
	}

	return "config.json"
}

// Load reads the configuration at path. A missing file yields the defaults.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	// #nosec G304 - The config file path comes from trusted sources (flag, env var or standard locations)
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := decode(path, data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Save replaces the file at path with cfg. The record is written to a
// temporary file first and renamed into place.
func Save(path string, cfg *Config) error {
	data, err := encode(path, cfg)
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("failed to write config: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("failed to replace config file: %w", err)
	}
	return nil
}

func isYAML(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	}
	return false
}

func decode(path string, data []byte, cfg *Config) error {
	if isYAML(path) {
		return yaml.Unmarshal(data, cfg)
	}
	return json.Unmarshal(data, cfg)
}

func encode(path string, cfg *Config) ([]byte, error) {
	if isYAML(path) {
		var buf bytes.Buffer
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(4)
		if err := enc.Encode(cfg); err != nil {
			return nil, err
		}
		if err := enc.Close(); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	}

	data, err := json.MarshalIndent(cfg, "", "    ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}
