//go:build windows
// +build windows

package idle

import (
	"fmt"
	"time"
	"unsafe"

	"golang.org/x/sys/windows"
)

var (
	user32   = windows.NewLazySystemDLL("user32.dll")
	kernel32 = windows.NewLazySystemDLL("kernel32.dll")

	procGetLastInputInfo = user32.NewProc("GetLastInputInfo")
	procGetTickCount     = kernel32.NewProc("GetTickCount")
)

// lastInputInfo mirrors the Win32 LASTINPUTINFO structure.
type lastInputInfo struct {
	cbSize uint32
	dwTime uint32
}

// WindowsIdleSource implements idle detection with GetLastInputInfo.
type WindowsIdleSource struct{}

// NewWindowsIdleSource creates a new Windows idle source.
func NewWindowsIdleSource() *WindowsIdleSource {
	return &WindowsIdleSource{}
}

// IdleDuration returns the time since the last input event in this session.
func (w *WindowsIdleSource) IdleDuration() (time.Duration, error) {
	if err := procGetLastInputInfo.Find(); err != nil {
		return 0, fmt.Errorf("%w: %w", ErrUnavailable, err)
	}

	info := lastInputInfo{cbSize: uint32(unsafe.Sizeof(lastInputInfo{}))}
	r, _, err := procGetLastInputInfo.Call(uintptr(unsafe.Pointer(&info))) // #nosec G103 -- Required for the Win32 call
	if r == 0 {
		return 0, fmt.Errorf("GetLastInputInfo failed: %w", err)
	}

	tick, _, _ := procGetTickCount.Call()

	// Both counters wrap after ~49.7 days; uint32 arithmetic keeps the difference right.
	return time.Duration(uint32(tick)-info.dwTime) * time.Millisecond, nil
}
