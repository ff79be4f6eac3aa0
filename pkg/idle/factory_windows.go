//go:build windows
// +build windows

package idle

import (
	"github.com/Veraticus/idle-reminder/pkg/interfaces"
)

// newPlatformSource creates a Windows-specific idle source.
func newPlatformSource() interfaces.IdleSource {
	return NewWindowsIdleSource()
}
