//go:build linux
// +build linux

package idle

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/godbus/dbus/v5"
)

// sessionConn is the part of *dbus.Conn the source uses.
type sessionConn interface {
	Object(dest string, path dbus.ObjectPath) dbus.BusObject
	Close() error
}

func connectSessionBus() (sessionConn, error) {
	conn, err := dbus.ConnectSessionBus()
	if err != nil {
		return nil, err
	}
	return conn, nil
}

// busCaller invokes a D-Bus method on the session bus and stores the reply in out.
type busCaller func(dest string, path dbus.ObjectPath, method string, out any) error

// LinuxIdleSource implements idle detection for Linux desktops.
// It asks the GNOME and freedesktop idle monitors over D-Bus first and falls
// back to the xprintidle command on plain X11 sessions, then to tmux client
// activity when there is no display at all.
type LinuxIdleSource struct {
	callBus     busCaller
	cmdExecutor func(name string, args ...string) ([]byte, error)
	tmux        *TmuxIdleSource
	connect     func() (sessionConn, error)

	mu   sync.Mutex
	conn sessionConn
}

// NewLinuxIdleSource creates a new Linux idle source.
func NewLinuxIdleSource() *LinuxIdleSource {
	s := &LinuxIdleSource{
		cmdExecutor: defaultCmdExecutor,
		tmux:        NewTmuxIdleSource(),
		connect:     connectSessionBus,
	}
	s.callBus = s.sessionBusCall
	return s
}

// IdleDuration returns the time since the last keyboard or mouse input.
func (s *LinuxIdleSource) IdleDuration() (time.Duration, error) {
	var errs []error

	// Mutter reports milliseconds as uint64
	var mutter uint64
	err := s.callBus("org.gnome.Mutter.IdleMonitor", "/org/gnome/Mutter/IdleMonitor/Core",
		"org.gnome.Mutter.IdleMonitor.GetIdletime", &mutter)
	if err == nil {
		return time.Duration(mutter) * time.Millisecond, nil
	}
	errs = append(errs, fmt.Errorf("mutter: %w", err))

	// KDE and other freedesktop screensavers report milliseconds as uint32
	var screensaver uint32
	err = s.callBus("org.freedesktop.ScreenSaver", "/org/freedesktop/ScreenSaver",
		"org.freedesktop.ScreenSaver.GetSessionIdleTime", &screensaver)
	if err == nil {
		return time.Duration(screensaver) * time.Millisecond, nil
	}
	errs = append(errs, fmt.Errorf("screensaver: %w", err))

	output, err := s.cmdExecutor("xprintidle")
	if err == nil {
		return parseMillis(output)
	}
	errs = append(errs, fmt.Errorf("xprintidle: %w", err))

	if s.tmux != nil {
		idle, err := s.tmux.IdleDuration()
		if err == nil {
			return idle, nil
		}
		errs = append(errs, fmt.Errorf("tmux: %w", err))
	}

	return 0, fmt.Errorf("%w: %w", ErrUnavailable, errors.Join(errs...))
}

// Close releases the session bus connection.
func (s *LinuxIdleSource) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.conn == nil {
		return nil
	}
	err := s.conn.Close()
	s.conn = nil
	return err
}

// sessionBusCall is the default busCaller. The connection is opened lazily and
// reused across polls. Any failure other than an error reply from the remote
// service drops it, so the next poll reconnects.
func (s *LinuxIdleSource) sessionBusCall(dest string, path dbus.ObjectPath, method string, out any) error {
	s.mu.Lock()
	if s.conn == nil {
		conn, err := s.connect()
		if err != nil {
			s.mu.Unlock()
			return fmt.Errorf("failed to connect to session bus: %w", err)
		}
		s.conn = conn
	}
	conn := s.conn
	s.mu.Unlock()

	err := conn.Object(dest, path).Call(method, 0).Store(out)
	if err == nil {
		return nil
	}

	var reply dbus.Error
	if !errors.As(err, &reply) {
		s.mu.Lock()
		if s.conn == conn {
			_ = conn.Close()
			s.conn = nil
		}
		s.mu.Unlock()
	}
	return err
}
