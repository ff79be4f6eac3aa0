// Package notification provides notification functionality.
package notification

import "time"

// Kind identifies which threshold crossing produced a notification.
type Kind string

const (
	KindStopped Kind = "stopped"
	KindResumed Kind = "resumed"
	KindBreak   Kind = "break"
)

// Notification represents a notification to be sent.
type Notification struct {
	Title   string
	Message string
	Time    time.Time
	Kind    Kind
}

// Notifier sends notifications.
type Notifier interface {
	Send(notification Notification) error
}
