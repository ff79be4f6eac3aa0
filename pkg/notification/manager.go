package notification

import (
	"log/slog"
	"sync"

	"github.com/Veraticus/idle-reminder/pkg/interfaces"
)

// Manager gates notifications through the rate limiter and reports delivery
// status. Failed sends are not retried.
type Manager struct {
	notifier    Notifier
	rateLimiter interfaces.RateLimiter
	reporter    interfaces.StatusReporter
	logger      *slog.Logger

	mu sync.Mutex
}

// NewManager creates a new notification manager. rateLimiter may be nil.
func NewManager(notifier Notifier, rateLimiter interfaces.RateLimiter, logger *slog.Logger) *Manager {
	return &Manager{
		notifier:    notifier,
		rateLimiter: rateLimiter,
		logger:      logger,
	}
}

// SetStatusReporter connects a status reporter to the manager
func (m *Manager) SetStatusReporter(reporter interfaces.StatusReporter) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.reporter = reporter
}

// Send delivers a notification unless the rate limit is exhausted
func (m *Manager) Send(notification Notification) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.rateLimiter != nil && !m.rateLimiter.Allow() {
		m.logger.Warn("notification dropped by rate limit", "title", notification.Title)
		return nil
	}

	if m.reporter != nil {
		m.reporter.ReportSending()
	}

	err := m.notifier.Send(notification)

	if m.reporter != nil {
		if err != nil {
			m.reporter.ReportFailure()
		} else {
			m.reporter.ReportSuccess()
		}
	}

	if err == nil {
		m.logger.Debug("notification sent", "title", notification.Title, "kind", notification.Kind)
	}
	return err
}
