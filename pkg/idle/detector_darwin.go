//go:build darwin
// +build darwin

package idle

import (
	"fmt"
	"time"
)

// DarwinIdleSource implements idle detection for macOS systems.
// It uses ioreg to query the HID system idle time.
type DarwinIdleSource struct {
	cmdExecutor func(name string, args ...string) ([]byte, error)
}

// NewDarwinIdleSource creates a new Darwin (macOS) idle source.
func NewDarwinIdleSource() *DarwinIdleSource {
	return &DarwinIdleSource{
		cmdExecutor: defaultCmdExecutor,
	}
}

// IdleDuration retrieves the system idle time using ioreg.
func (d *DarwinIdleSource) IdleDuration() (time.Duration, error) {
	output, err := d.cmdExecutor("ioreg", "-c", "IOHIDSystem", "-d", "4")
	if err != nil {
		return 0, fmt.Errorf("%w: failed to execute ioreg: %w", ErrUnavailable, err)
	}

	idle, err := parseHIDIdleTime(output)
	if err != nil {
		return 0, fmt.Errorf("failed to parse HIDIdleTime: %w", err)
	}
	return idle, nil
}
