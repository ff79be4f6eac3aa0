// Package settings lets the user change the configuration by opening the
// config file in the desktop's default editor. Saved edits are picked up by
// config.Store on the next poll.
package settings

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"os/exec"
	"runtime"

	"github.com/Veraticus/idle-reminder/pkg/config"
)

// ConfigFile is the configuration the editor opens.
type ConfigFile interface {
	Path() string
	Current() *config.Config
	Save(cfg *config.Config) error
}

// startFunc launches a command without waiting for it.
type startFunc func(name string, args ...string) error

// Editor opens the configuration file for editing.
type Editor struct {
	file   ConfigFile
	logger *slog.Logger
	goos   string
	start  startFunc
}

// NewEditor creates an editor for file.
func NewEditor(file ConfigFile, logger *slog.Logger) *Editor {
	return &Editor{
		file:   file,
		logger: logger,
		goos:   runtime.GOOS,
		start:  startDetached,
	}
}

// EnsureFile writes the configuration in effect when no file exists yet, so
// the user always edits a complete record.
func (e *Editor) EnsureFile() error {
	path := e.file.Path()

	_, err := os.Stat(path)
	if err == nil {
		return nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to stat config file: %w", err)
	}

	if err := e.file.Save(e.file.Current()); err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	e.logger.Info("created config file", "path", path)
	return nil
}

// Open launches the default application for the config file and returns
// once it has started.
func (e *Editor) Open() error {
	if err := e.EnsureFile(); err != nil {
		return err
	}

	name, args := openCommand(e.goos, e.file.Path())
	e.logger.Debug("opening settings", "command", name, "args", args)

	if err := e.start(name, args...); err != nil {
		return fmt.Errorf("failed to launch %s: %w", name, err)
	}
	return nil
}

// openCommand returns the command that opens path with its associated application.
func openCommand(goos, path string) (string, []string) {
	switch goos {
	case "windows":
		return "rundll32", []string{"url.dll,FileProtocolHandler", path}
	case "darwin":
		return "open", []string{"-t", path}
	default:
		return "xdg-open", []string{path}
	}
}

func startDetached(name string, args ...string) error {
	// #nosec G204 - The command is one of a fixed set of openers
	cmd := exec.Command(name, args...)
	if err := cmd.Start(); err != nil {
		return err
	}
	go func() { _ = cmd.Wait() }()
	return nil
}
