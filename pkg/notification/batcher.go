package notification

import (
	"log/slog"
	"strings"
	"sync"
	"time"
)

// Batcher groups notifications raised within a window and delivers them as
// one, so a resume and a break reminder from the same poll show a single toast.
type Batcher struct {
	window time.Duration
	next   Notifier
	logger *slog.Logger

	mu      sync.Mutex
	pending []Notification
	timer   *time.Timer
}

// NewBatcher creates a batcher in front of next. A zero window disables batching.
func NewBatcher(window time.Duration, next Notifier, logger *slog.Logger) *Batcher {
	return &Batcher{
		window: window,
		next:   next,
		logger: logger,
	}
}

// Send queues the notification. Delivery errors of a batch are logged, since
// the caller has already moved on by then.
func (b *Batcher) Send(n Notification) error {
	if b.window <= 0 {
		return b.next.Send(n)
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	b.pending = append(b.pending, n)

	// Start timer if not already running
	if b.timer == nil {
		b.timer = time.AfterFunc(b.window, b.flush)
	}
	return nil
}

// flush sends all pending notifications
func (b *Batcher) flush() {
	b.mu.Lock()
	toSend := b.pending
	b.pending = nil
	b.timer = nil
	b.mu.Unlock()

	if len(toSend) == 0 {
		return
	}

	if len(toSend) > 1 {
		b.logger.Debug("merging notifications", "count", len(toSend))
	}
	if err := b.next.Send(Merge(toSend)); err != nil {
		b.logger.Warn("failed to send notification", "err", err)
	}
}

// Flush immediately sends any pending notifications
func (b *Batcher) Flush() {
	b.mu.Lock()
	if b.timer != nil {
		b.timer.Stop()
	}
	b.mu.Unlock()

	b.flush()
}

// Merge combines notifications into one. Titles and messages are joined in
// order; kind and time come from the last one.
func Merge(ns []Notification) Notification {
	if len(ns) == 1 {
		return ns[0]
	}

	titles := make([]string, 0, len(ns))
	messages := make([]string, 0, len(ns))
	for _, n := range ns {
		titles = append(titles, n.Title)
		messages = append(messages, n.Message)
	}

	last := ns[len(ns)-1]
	return Notification{
		Title:   strings.Join(titles, " / "),
		Message: strings.Join(messages, "\n"),
		Time:    last.Time,
		Kind:    last.Kind,
	}
}
