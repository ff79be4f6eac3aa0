package main

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/Veraticus/idle-reminder/pkg/config"
	"github.com/Veraticus/idle-reminder/pkg/idle"
	"github.com/Veraticus/idle-reminder/pkg/interfaces"
	"github.com/Veraticus/idle-reminder/pkg/monitor"
	"github.com/Veraticus/idle-reminder/pkg/notification"
	"github.com/Veraticus/idle-reminder/pkg/settings"
	"github.com/Veraticus/idle-reminder/pkg/sound"
	"github.com/Veraticus/idle-reminder/pkg/status"
	"github.com/Veraticus/idle-reminder/pkg/tray"
)

// Dependencies holds all the dependencies for the application
type Dependencies struct {
	Options             config.Options
	Store               *config.Store
	IdleSource          interfaces.IdleSource
	Notifier            notification.Notifier
	RateLimiter         interfaces.RateLimiter
	NotificationManager *notification.Manager
	Batcher             *notification.Batcher
	Sound               interfaces.SoundPlayer
	Settings            *settings.Editor
	Tray                *tray.Tray
	Terminal            *status.TerminalSink
	StatusIndicator     *status.Indicator
	Monitor             *monitor.Monitor

	logger *slog.Logger
	closed bool
}

// NewDependencies creates all dependencies for the given options
func NewDependencies(opts config.Options, logger *slog.Logger) (*Dependencies, error) {
	deps := &Dependencies{
		Options: opts,
		logger:  logger,
	}

	deps.Store = config.NewStore(opts.Path, logger)
	cfg := deps.Store.Current()
	deps.Settings = settings.NewEditor(deps.Store, logger)

	// Status goes to the tray icon, or to the terminal when headless
	var sink interfaces.TitleSink
	if opts.Headless {
		deps.Terminal = status.NewTerminalSink(os.Stderr)
		sink = deps.Terminal
	} else {
		t, err := tray.New(logger, tray.Actions{
			OpenSettings: deps.Settings.Open,
			ResetUsage:   deps.resetUsage,
		})
		if err != nil {
			return nil, err
		}
		deps.Tray = t
		sink = t
	}
	deps.StatusIndicator = status.NewIndicator(sink)

	// Create notification components
	if opts.Quiet {
		deps.Notifier = &notification.LogNotifier{Logger: logger}
	} else {
		deps.Notifier = notification.NewDesktopNotifier(writeIcon(logger))
	}
	deps.RateLimiter = notification.NewPerMinuteRateLimiter(cfg.MaxNotificationsPerMinute)
	deps.NotificationManager = notification.NewManager(deps.Notifier, deps.RateLimiter, logger)
	deps.NotificationManager.SetStatusReporter(deps.StatusIndicator)
	deps.Batcher = notification.NewBatcher(cfg.BatchWindow(), deps.NotificationManager, logger)

	deps.IdleSource = idle.NewSource()
	if opts.Quiet {
		deps.Sound = sound.NopPlayer{}
	} else {
		deps.Sound = sound.New(cfg.SoundPath(opts.Path), logger)
	}

	deps.Monitor = monitor.New(monitor.Options{
		Configs:  deps.Store,
		Source:   deps.IdleSource,
		Notifier: deps.Batcher,
		Sound:    deps.Sound,
		Status:   deps.StatusIndicator,
		Logger:   logger,
	})

	return deps, nil
}

func (d *Dependencies) resetUsage() {
	if d.Monitor != nil {
		d.Monitor.ResetUsage()
	}
}

// Close delivers pending notifications and releases the audio device and
// the idle source connection
func (d *Dependencies) Close() {
	if d.closed {
		return
	}
	d.closed = true

	if d.Batcher != nil {
		d.Batcher.Flush()
	}

	if d.Sound != nil {
		if err := d.Sound.Close(); err != nil {
			d.logger.Warn("failed to close audio", "err", err)
		}
	}

	if c, ok := d.IdleSource.(io.Closer); ok {
		_ = c.Close()
	}

	if d.Terminal != nil {
		_ = d.Terminal.Clear() // Best effort
	}
}

// writeIcon stores the tray icon where the notification daemon can read it.
// Notifications go out without an icon if that fails.
func writeIcon(logger *slog.Logger) string {
	data, err := tray.IconPNG()
	if err != nil {
		logger.Debug("no notification icon", "err", err)
		return ""
	}

	dir, err := os.UserCacheDir()
	if err != nil {
		logger.Debug("no notification icon", "err", err)
		return ""
	}

	path := filepath.Join(dir, "idle-reminder", "icon.png")
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		logger.Debug("no notification icon", "err", err)
		return ""
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		logger.Debug("no notification icon", "err", err)
		return ""
	}
	return path
}

// Application represents the main application
type Application struct {
	deps *Dependencies
}

// NewApplication creates a new application with the given dependencies
func NewApplication(deps *Dependencies) *Application {
	return &Application{
		deps: deps,
	}
}

// Run polls until ctx is cancelled or Exit is chosen from the tray menu
func (a *Application) Run(ctx context.Context) error {
	a.deps.logger.Info("idle-reminder started",
		"config", a.deps.Store.Path(),
		"headless", a.deps.Options.Headless,
		"quiet", a.deps.Options.Quiet,
	)

	if a.deps.Tray == nil {
		return a.deps.Monitor.Run(ctx)
	}
	return a.deps.Tray.Run(ctx, a.deps.Monitor.Run)
}
