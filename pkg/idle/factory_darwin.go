//go:build darwin
// +build darwin

package idle

import (
	"github.com/Veraticus/idle-reminder/pkg/interfaces"
)

// newPlatformSource creates a macOS-specific idle source.
func newPlatformSource() interfaces.IdleSource {
	return NewDarwinIdleSource()
}
