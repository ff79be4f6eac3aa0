//go:build !linux && !darwin && !windows
// +build !linux,!darwin,!windows

package idle

import (
	"github.com/Veraticus/idle-reminder/pkg/interfaces"
)

// newPlatformSource creates a source for unsupported platforms.
func newPlatformSource() interfaces.IdleSource {
	return unavailableSource{}
}
