package notification

import (
	"fmt"

	"github.com/gen2brain/beeep"
)

// DesktopNotifier shows notifications as native toasts/balloons.
type DesktopNotifier struct {
	iconPath string
	notify   func(title, message, icon string) error
}

// NewDesktopNotifier creates a desktop notifier. iconPath may be empty.
func NewDesktopNotifier(iconPath string) *DesktopNotifier {
	return &DesktopNotifier{
		iconPath: iconPath,
		notify: func(title, message, icon string) error {
			return beeep.Notify(title, message, icon)
		},
	}
}

// Send displays the notification
func (n *DesktopNotifier) Send(notification Notification) error {
	if err := n.notify(notification.Title, notification.Message, n.iconPath); err != nil {
		return fmt.Errorf("desktop notification failed: %w", err)
	}
	return nil
}
