package status

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/Veraticus/idle-reminder/pkg/interfaces"
)

// Status represents the current notification status
type Status int

const (
	StatusIdle Status = iota
	StatusSending
	StatusSuccess
	StatusFailed
)

// Indicator renders the monitor state into the tray title and tooltip
type Indicator struct {
	mu       sync.Mutex
	sink     interfaces.TitleSink
	status   Status
	lastSent time.Time
	now      func() time.Time

	// Monitor state from the last poll
	away      bool
	usage     time.Duration
	nextCheck time.Duration

	// Last text pushed to the sink
	title   string
	tooltip string
}

// NewIndicator creates a new status indicator. A nil sink disables drawing.
func NewIndicator(sink interfaces.TitleSink) *Indicator {
	return &Indicator{
		status: StatusIdle,
		sink:   sink,
		now:    time.Now,
	}
}

// Ensure Indicator implements StatusReporter
var _ interfaces.StatusReporter = (*Indicator)(nil)

// SetStatus updates the notification status
func (i *Indicator) SetStatus(status Status) {
	i.mu.Lock()
	defer i.mu.Unlock()

	i.status = status
	if status == StatusSuccess {
		i.lastSent = i.now()
	}
	i.draw()
}

// Update records the monitor state after a poll
func (i *Indicator) Update(away bool, usage, nextCheck time.Duration) {
	i.mu.Lock()
	defer i.mu.Unlock()

	i.away = away
	i.usage = usage
	i.nextCheck = nextCheck
	i.draw()
}

// ReportSending reports that a notification is being sent
func (i *Indicator) ReportSending() { i.SetStatus(StatusSending) }

// ReportSuccess reports that a notification was sent successfully
func (i *Indicator) ReportSuccess() { i.SetStatus(StatusSuccess) }

// ReportFailure reports that a notification failed to send
func (i *Indicator) ReportFailure() { i.SetStatus(StatusFailed) }

// Title returns the current title text
func (i *Indicator) Title() string {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.titleText()
}

// Tooltip returns the current tooltip text
func (i *Indicator) Tooltip() string {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.tooltipText()
}

// draw pushes changed text to the sink. Callers hold i.mu.
func (i *Indicator) draw() {
	if i.sink == nil {
		return
	}

	if title := i.titleText(); title != i.title {
		i.title = title
		i.sink.SetTitle(title)
	}
	if tooltip := i.tooltipText(); tooltip != i.tooltip {
		i.tooltip = tooltip
		i.sink.SetTooltip(tooltip)
	}
}

func (i *Indicator) titleText() string {
	state := "Active"
	if i.away {
		state = "Away"
	}
	return fmt.Sprintf("%s - used %s", state, FormatUsage(i.usage))
}

func (i *Indicator) tooltipText() string {
	lines := []string{
		i.titleText(),
		"next check in " + FormatCountdown(i.nextCheck),
	}

	switch i.status {
	case StatusSending:
		lines = append(lines, "sending notification")
	case StatusSuccess:
		lines = append(lines, "last notification at "+i.lastSent.Format("15:04"))
	case StatusFailed:
		lines = append(lines, "last notification failed")
	}

	return strings.Join(lines, "\n")
}

// FormatUsage renders a usage duration as hours and minutes, e.g. "1h 5m".
func FormatUsage(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	hours := int(d / time.Hour)
	minutes := int(d/time.Minute) % 60
	return fmt.Sprintf("%dh %dm", hours, minutes)
}

// FormatCountdown renders the time until the next poll, e.g. "30s" or "2m 5s".
func FormatCountdown(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	d = d.Round(time.Second)
	if d < time.Minute {
		return fmt.Sprintf("%ds", int(d/time.Second))
	}
	return fmt.Sprintf("%dm %ds", int(d/time.Minute), int(d/time.Second)%60)
}
