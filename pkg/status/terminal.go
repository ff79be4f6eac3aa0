package status

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"golang.org/x/term"
)

// TerminalSink draws the title on the last line of a terminal. It stands in
// for the tray icon when running headless.
type TerminalSink struct {
	mu      sync.Mutex
	writer  io.Writer
	enabled bool
}

// NewTerminalSink creates a sink for f, enabled only when f is a terminal.
func NewTerminalSink(f *os.File) *TerminalSink {
	return NewWriterSink(f, term.IsTerminal(int(f.Fd())))
}

// NewWriterSink creates a sink that writes to w when enabled.
func NewWriterSink(w io.Writer, enabled bool) *TerminalSink {
	return &TerminalSink{writer: w, enabled: enabled}
}

// SetTitle redraws the status line.
func (s *TerminalSink) SetTitle(title string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.enabled {
		return
	}

	// \0337 saves the cursor, \033[999;1H jumps to the last line (clamped by
	// the terminal), \033[2K clears it, \0338 restores the cursor.
	_, _ = fmt.Fprintf(s.writer, "\0337\033[999;1H\033[2K%s\0338", strings.ReplaceAll(title, "\n", " "))
}

// SetTooltip is a no-op; a terminal has nowhere to hover.
func (s *TerminalSink) SetTooltip(string) {}

// Clear removes the status line
func (s *TerminalSink) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.enabled {
		return nil
	}

	_, err := fmt.Fprint(s.writer, "\0337\033[999;1H\033[2K\0338")
	return err
}
