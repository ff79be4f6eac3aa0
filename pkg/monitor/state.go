package monitor

import (
	"fmt"
	"time"

	"github.com/Veraticus/idle-reminder/pkg/config"
	"github.com/Veraticus/idle-reminder/pkg/notification"
)

// State is the monitor's view of the user.
type State int

const (
	// StateActive means the user has touched keyboard or mouse within the locked threshold.
	StateActive State = iota
	// StateAway means the idle time reached the locked threshold.
	StateAway
)

func (s State) String() string {
	switch s {
	case StateActive:
		return "active"
	case StateAway:
		return "away"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// ConfigSource supplies the configuration in effect for a poll.
type ConfigSource interface {
	Current() *config.Config
}

// StatusSink receives the monitor state after every poll.
type StatusSink interface {
	Update(away bool, usage, nextCheck time.Duration)
}

// buildNotification returns the text for a threshold crossing.
func buildNotification(kind notification.Kind, cfg *config.Config, now time.Time) notification.Notification {
	n := notification.Notification{Kind: kind, Time: now}

	switch kind {
	case notification.KindStopped:
		n.Title = "Computer idle"
		n.Message = fmt.Sprintf("The computer has not been used for %s.", humanize(cfg.LockedThreshold()))
	case notification.KindResumed:
		n.Title = "Welcome back"
		n.Message = "You have started using the computer again."
	case notification.KindBreak:
		n.Title = "Time for a break"
		n.Message = fmt.Sprintf("You have been using the computer for %s. Please take a break.", humanize(cfg.UnlockedThreshold()))
	}
	return n
}

// humanize renders whole hours or minutes in words, anything else as a Go duration.
func humanize(d time.Duration) string {
	switch {
	case d >= time.Hour && d%time.Hour == 0:
		return plural(int(d/time.Hour), "hour")
	case d >= time.Minute && d%time.Minute == 0:
		return plural(int(d/time.Minute), "minute")
	default:
		return d.String()
	}
}

func plural(n int, unit string) string {
	if n == 1 {
		return "1 " + unit
	}
	return fmt.Sprintf("%d %ss", n, unit)
}
