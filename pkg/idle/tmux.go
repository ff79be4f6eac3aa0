package idle

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"
)

// errNotInTmux is returned when the process is not running under tmux.
var errNotInTmux = errors.New("not in a tmux session")

// TmuxIdleSource derives idle time from the most recent keypress of any
// client attached to the tmux server. It covers terminal-only sessions where
// no display server reports input.
type TmuxIdleSource struct {
	getenv      func(string) string
	cmdExecutor func(name string, args ...string) ([]byte, error)
	now         func() time.Time
}

// NewTmuxIdleSource creates a tmux idle source.
func NewTmuxIdleSource() *TmuxIdleSource {
	return &TmuxIdleSource{
		getenv:      os.Getenv,
		cmdExecutor: defaultCmdExecutor,
		now:         time.Now,
	}
}

// IdleDuration returns the time since the last client activity.
func (s *TmuxIdleSource) IdleDuration() (time.Duration, error) {
	if s.getenv("TMUX") == "" {
		return 0, errNotInTmux
	}

	output, err := s.cmdExecutor("tmux", "list-clients", "-F", "#{client_activity}")
	if err != nil {
		return 0, fmt.Errorf("failed to list tmux clients: %w", err)
	}
	return idleSinceActivity(output, s.now())
}

// idleSinceActivity takes one epoch-seconds timestamp per line and returns
// the time elapsed since the latest of them.
func idleSinceActivity(output []byte, now time.Time) (time.Duration, error) {
	var latest time.Time
	for _, line := range bytes.Split(bytes.TrimSpace(output), []byte("\n")) {
		secs, err := strconv.ParseInt(string(bytes.TrimSpace(line)), 10, 64)
		if err != nil {
			continue
		}
		if t := time.Unix(secs, 0); t.After(latest) {
			latest = t
		}
	}

	if latest.IsZero() {
		return 0, fmt.Errorf("no tmux client activity found")
	}

	// Clock skew between tmux and us
	if idle := now.Sub(latest); idle > 0 {
		return idle, nil
	}
	return 0, nil
}
