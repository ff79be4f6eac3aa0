// Package monitor runs the polling loop that turns idle-time samples into
// away/resume notifications and break reminders.
package monitor

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/Veraticus/idle-reminder/pkg/config"
	"github.com/Veraticus/idle-reminder/pkg/interfaces"
	"github.com/Veraticus/idle-reminder/pkg/notification"
)

// Options holds the collaborators of a Monitor. Sound and Status may be nil.
type Options struct {
	Configs  ConfigSource
	Source   interfaces.IdleSource
	Notifier notification.Notifier
	Sound    interfaces.SoundPlayer
	Status   StatusSink
	Logger   *slog.Logger
}

// Monitor polls the idle source at the configured interval and fires
// notifications on threshold crossings.
type Monitor struct {
	configs  ConfigSource
	source   interfaces.IdleSource
	notifier notification.Notifier
	sound    interfaces.SoundPlayer
	status   StatusSink
	logger   *slog.Logger

	now   func() time.Time
	after func(time.Duration) <-chan time.Time

	mu         sync.Mutex
	state      State
	usageStart time.Time
}

// New creates a monitor in the active state with the usage counter starting now.
func New(opts Options) *Monitor {
	m := &Monitor{
		configs:  opts.Configs,
		source:   opts.Source,
		notifier: opts.Notifier,
		sound:    opts.Sound,
		status:   opts.Status,
		logger:   opts.Logger,
		now:      time.Now,
		after:    time.After,
		state:    StateActive,
	}
	m.usageStart = m.now()
	return m
}

// Run polls until ctx is cancelled. Cancellation is a clean stop and returns nil.
func (m *Monitor) Run(ctx context.Context) error {
	cfg := m.configs.Current()
	m.logger.Info("monitor started",
		"interval", cfg.Interval(),
		"lockedThreshold", cfg.LockedThreshold(),
		"unlockedThreshold", cfg.UnlockedThreshold(),
	)

	for ctx.Err() == nil {
		m.safePoll()

		select {
		case <-ctx.Done():
		case <-m.after(m.configs.Current().Interval()):
		}
	}

	m.logger.Info("monitor stopped")
	return nil
}

// safePoll runs one cycle; a panic in a collaborator is logged and the loop goes on.
func (m *Monitor) safePoll() {
	defer func() {
		if r := recover(); r != nil {
			m.logger.Error("poll cycle failed", "err", fmt.Errorf("panic: %v", r))
		}
	}()
	m.Poll()
}

// Poll runs a single probe, compare and dispatch cycle.
func (m *Monitor) Poll() {
	cfg := m.configs.Current()
	now := m.now()

	idle, err := m.source.IdleDuration()
	if err != nil {
		m.logger.Warn("idle time unavailable, skipping cycle", "err", err)
	} else {
		for _, n := range m.evaluate(cfg, now, idle) {
			m.dispatch(cfg, n)
		}
	}

	m.publish(cfg, now)
}

// evaluate applies the state machine to one idle sample.
func (m *Monitor) evaluate(cfg *config.Config, now time.Time, idle time.Duration) []notification.Notification {
	m.mu.Lock()
	defer m.mu.Unlock()

	var out []notification.Notification

	if idle >= cfg.LockedThreshold() {
		if m.state == StateActive {
			m.state = StateAway
			out = append(out, buildNotification(notification.KindStopped, cfg, now))
		}
		m.logger.Debug("poll", "state", m.state, "idle", idle, "usage", now.Sub(m.usageStart))
		return out
	}

	if m.state == StateAway {
		m.state = StateActive
		out = append(out, buildNotification(notification.KindResumed, cfg, now))
		if cfg.ResetUsageOnResume {
			m.usageStart = now
		}
	}

	if now.Sub(m.usageStart) >= cfg.UnlockedThreshold() {
		out = append(out, buildNotification(notification.KindBreak, cfg, now))
		m.usageStart = now
	}

	m.logger.Debug("poll", "state", m.state, "idle", idle, "usage", now.Sub(m.usageStart))
	return out
}

// dispatch plays the sound where the policy asks for it and sends the notification.
// Failures are logged; nothing is retried.
func (m *Monitor) dispatch(cfg *config.Config, n notification.Notification) {
	m.logger.Info("threshold crossed", "kind", n.Kind)

	playSound := n.Kind == notification.KindBreak ||
		(n.Kind == notification.KindStopped && cfg.PlaySoundOnLock)
	if playSound && m.sound != nil {
		if err := m.sound.Play(); err != nil {
			m.logger.Warn("failed to play sound", "err", err)
		}
	}

	if err := m.notifier.Send(n); err != nil {
		m.logger.Warn("failed to send notification", "kind", n.Kind, "err", err)
	}
}

// publish pushes the current state to the status sink.
func (m *Monitor) publish(cfg *config.Config, now time.Time) {
	if m.status == nil {
		return
	}

	m.mu.Lock()
	away := m.state == StateAway
	usage := now.Sub(m.usageStart)
	m.mu.Unlock()

	m.status.Update(away, usage, cfg.Interval())
}

// ResetUsage restarts the continuous-use counter.
func (m *Monitor) ResetUsage() {
	now := m.now()

	m.mu.Lock()
	m.usageStart = now
	m.mu.Unlock()

	m.logger.Info("usage timer reset")
	m.publish(m.configs.Current(), now)
}

// State returns the current state.
func (m *Monitor) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// Usage returns the continuous-use time counted so far.
func (m *Monitor) Usage() time.Duration {
	now := m.now()
	m.mu.Lock()
	defer m.mu.Unlock()
	return now.Sub(m.usageStart)
}
