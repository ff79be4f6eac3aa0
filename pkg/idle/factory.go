// Package idle reports how long the user has been away from keyboard and mouse,
// using whatever input-tracking facility the operating system provides.
package idle

import (
	"errors"
	"os/exec"
	"time"

	"github.com/Veraticus/idle-reminder/pkg/interfaces"
)

// ErrUnavailable is returned when the platform offers no way to read the idle time.
var ErrUnavailable = errors.New("idle time is not available on this system")

// NewSource creates a platform-appropriate idle source.
// It returns:
// - LinuxIdleSource on Linux systems (D-Bus idle monitors, then xprintidle)
// - DarwinIdleSource on macOS systems (using ioreg)
// - WindowsIdleSource on Windows systems (GetLastInputInfo)
// - a source that always fails with ErrUnavailable elsewhere.
func NewSource() interfaces.IdleSource {
	return newPlatformSource()
}

// unavailableSource is used on platforms without an idle counter.
type unavailableSource struct{}

// IdleDuration always fails.
func (unavailableSource) IdleDuration() (time.Duration, error) {
	return 0, ErrUnavailable
}

// defaultCmdExecutor executes a command and returns its output.
func defaultCmdExecutor(name string, args ...string) ([]byte, error) {
	cmd := exec.Command(name, args...)
	return cmd.Output()
}
