// Package testutil holds test doubles shared by the package tests.
package testutil

import (
	"errors"
	"sync"
	"time"

	"github.com/Veraticus/idle-reminder/pkg/config"
	"github.com/Veraticus/idle-reminder/pkg/notification"
)

// ErrScriptExhausted is returned by MockIdleSource once its script has run out
// and no fallback value was set.
var ErrScriptExhausted = errors.New("idle script exhausted")

// MockNotifier is a thread-safe mock implementation of notification.Notifier for testing
type MockNotifier struct {
	mu            sync.Mutex
	notifications []notification.Notification
	attempts      []notification.Notification
	sendErr       error
}

// NewMockNotifier creates a new mock notifier
func NewMockNotifier() *MockNotifier {
	return &MockNotifier{}
}

// Send implements the Notifier interface
func (m *MockNotifier) Send(n notification.Notification) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.attempts = append(m.attempts, n)
	if m.sendErr != nil {
		return m.sendErr
	}

	m.notifications = append(m.notifications, n)
	return nil
}

// GetNotifications returns a copy of successfully sent notifications
func (m *MockNotifier) GetNotifications() []notification.Notification {
	m.mu.Lock()
	defer m.mu.Unlock()

	result := make([]notification.Notification, len(m.notifications))
	copy(result, m.notifications)
	return result
}

// GetAttempts returns a copy of all attempted sends, including failures
func (m *MockNotifier) GetAttempts() []notification.Notification {
	m.mu.Lock()
	defer m.mu.Unlock()

	result := make([]notification.Notification, len(m.attempts))
	copy(result, m.attempts)
	return result
}

// Kinds returns the kinds of all attempted sends in order
func (m *MockNotifier) Kinds() []notification.Kind {
	m.mu.Lock()
	defer m.mu.Unlock()

	kinds := make([]notification.Kind, 0, len(m.attempts))
	for _, n := range m.attempts {
		kinds = append(kinds, n.Kind)
	}
	return kinds
}

// SetError sets the error to return on Send calls
func (m *MockNotifier) SetError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sendErr = err
}

// Clear resets the mock state
func (m *MockNotifier) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.notifications = nil
	m.attempts = nil
	m.sendErr = nil
}

// IdleSample is one scripted answer of a MockIdleSource.
type IdleSample struct {
	Idle time.Duration
	Err  error
}

// MockIdleSource answers IdleDuration from a script, then from a fixed value.
type MockIdleSource struct {
	mu        sync.Mutex
	script    []IdleSample
	idle      time.Duration
	hasIdle   bool
	callCount int
}

// NewMockIdleSource creates a source that always reports idle.
func NewMockIdleSource(idle time.Duration) *MockIdleSource {
	return &MockIdleSource{idle: idle, hasIdle: true}
}

// NewScriptedIdleSource creates a source that replays samples in order.
func NewScriptedIdleSource(samples ...IdleSample) *MockIdleSource {
	return &MockIdleSource{script: samples}
}

// IdleDuration implements the IdleSource interface
func (m *MockIdleSource) IdleDuration() (time.Duration, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.callCount++

	if len(m.script) > 0 {
		next := m.script[0]
		m.script = m.script[1:]
		return next.Idle, next.Err
	}
	if !m.hasIdle {
		return 0, ErrScriptExhausted
	}
	return m.idle, nil
}

// SetIdle sets the value reported once the script is used up.
func (m *MockIdleSource) SetIdle(idle time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.idle = idle
	m.hasIdle = true
}

// GetCallCount returns how many times IdleDuration was called
func (m *MockIdleSource) GetCallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.callCount
}

// MockSoundPlayer counts Play and Close calls.
type MockSoundPlayer struct {
	mu         sync.Mutex
	playErr    error
	playCount  int
	closeCount int
}

// NewMockSoundPlayer creates a new mock sound player
func NewMockSoundPlayer() *MockSoundPlayer {
	return &MockSoundPlayer{}
}

// Play implements the SoundPlayer interface
func (m *MockSoundPlayer) Play() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.playCount++
	return m.playErr
}

// Close implements the SoundPlayer interface
func (m *MockSoundPlayer) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closeCount++
	return nil
}

// SetError sets the error to return on Play calls
func (m *MockSoundPlayer) SetError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.playErr = err
}

// GetPlayCount returns how many times Play was called
func (m *MockSoundPlayer) GetPlayCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.playCount
}

// GetCloseCount returns how many times Close was called
func (m *MockSoundPlayer) GetCloseCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.closeCount
}

// MockTitleSink records titles and tooltips.
type MockTitleSink struct {
	mu       sync.Mutex
	titles   []string
	tooltips []string
}

// NewMockTitleSink creates a new mock title sink
func NewMockTitleSink() *MockTitleSink {
	return &MockTitleSink{}
}

// SetTitle implements the TitleSink interface
func (m *MockTitleSink) SetTitle(title string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.titles = append(m.titles, title)
}

// SetTooltip implements the TitleSink interface
func (m *MockTitleSink) SetTooltip(tooltip string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tooltips = append(m.tooltips, tooltip)
}

// GetTitles returns a copy of all titles set
func (m *MockTitleSink) GetTitles() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.titles...)
}

// GetTooltips returns a copy of all tooltips set
func (m *MockTitleSink) GetTooltips() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.tooltips...)
}

// LastTitle returns the most recent title, or "" if none was set
func (m *MockTitleSink) LastTitle() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.titles) == 0 {
		return ""
	}
	return m.titles[len(m.titles)-1]
}

// StatusUpdate is one call recorded by MockStatusSink.
type StatusUpdate struct {
	Away      bool
	Usage     time.Duration
	NextCheck time.Duration
}

// MockStatusSink records monitor status updates.
type MockStatusSink struct {
	mu      sync.Mutex
	updates []StatusUpdate
}

// NewMockStatusSink creates a new mock status sink
func NewMockStatusSink() *MockStatusSink {
	return &MockStatusSink{}
}

// Update records a status update
func (m *MockStatusSink) Update(away bool, usage, nextCheck time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.updates = append(m.updates, StatusUpdate{Away: away, Usage: usage, NextCheck: nextCheck})
}

// GetUpdates returns a copy of all recorded updates
func (m *MockStatusSink) GetUpdates() []StatusUpdate {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]StatusUpdate(nil), m.updates...)
}

// StaticConfig serves the same configuration on every call.
type StaticConfig struct {
	mu  sync.Mutex
	cfg *config.Config
}

// NewStaticConfig wraps cfg; nil means defaults.
func NewStaticConfig(cfg *config.Config) *StaticConfig {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	return &StaticConfig{cfg: cfg}
}

// Current returns the wrapped configuration
func (s *StaticConfig) Current() *config.Config {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cfg
}

// Set swaps the configuration, as a reload would.
func (s *StaticConfig) Set(cfg *config.Config) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cfg = cfg
}

// FakeClock is a manually advanced clock.
type FakeClock struct {
	mu  sync.Mutex
	now time.Time
}

// NewFakeClock creates a clock stopped at start
func NewFakeClock(start time.Time) *FakeClock {
	return &FakeClock{now: start}
}

// Now returns the current fake time
func (c *FakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Advance moves the clock forward by d
func (c *FakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// MockRateLimiter is a mock implementation of interfaces.RateLimiter for testing
type MockRateLimiter struct {
	mu          sync.Mutex
	allowResult bool
	allowCount  int
	resetCount  int
}

// NewMockRateLimiter creates a new mock rate limiter
func NewMockRateLimiter(allowResult bool) *MockRateLimiter {
	return &MockRateLimiter{
		allowResult: allowResult,
	}
}

// Allow implements the RateLimiter interface
func (m *MockRateLimiter) Allow() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.allowCount++
	return m.allowResult
}

// Reset implements the RateLimiter interface
func (m *MockRateLimiter) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.resetCount++
}

// SetAllowResult sets the result that Allow() will return
func (m *MockRateLimiter) SetAllowResult(allow bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.allowResult = allow
}

// GetAllowCount returns how many times Allow was called
func (m *MockRateLimiter) GetAllowCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.allowCount
}

// GetResetCount returns how many times Reset was called
func (m *MockRateLimiter) GetResetCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.resetCount
}
