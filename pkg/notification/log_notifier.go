package notification

import "log/slog"

// LogNotifier writes notifications to a logger instead of the desktop
type LogNotifier struct {
	Logger *slog.Logger
}

var _ Notifier = &LogNotifier{}

// Send logs the notification
func (n *LogNotifier) Send(notification Notification) error {
	n.Logger.Info(notification.Title,
		"message", notification.Message,
		"kind", notification.Kind,
	)
	return nil
}
