// Package tray shows the status icon and its menu. The icon is scoped to Run:
// it appears when Run starts and is removed when Run returns.
package tray

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"fyne.io/systray"

	"github.com/Veraticus/idle-reminder/pkg/interfaces"
)

// ErrUnavailable is returned by Run when the tray never became ready.
var ErrUnavailable = errors.New("system tray unavailable")

// Actions are the callbacks behind the menu entries. Exit is handled by the tray itself.
type Actions struct {
	OpenSettings func() error
	ResetUsage   func()
}

// menuChannels carries the click channels of the menu entries.
type menuChannels struct {
	settings <-chan struct{}
	reset    <-chan struct{}
	exit     <-chan struct{}
}

// backend is the subset of systray the tray drives.
type backend struct {
	run        func(onReady, onExit func())
	quit       func()
	setIcon    func([]byte)
	setTitle   func(string)
	setTooltip func(string)
	menu       func() menuChannels
}

var systrayBackend = backend{
	run:        systray.Run,
	quit:       systray.Quit,
	setIcon:    systray.SetIcon,
	setTitle:   systray.SetTitle,
	setTooltip: systray.SetTooltip,
	menu:       systrayMenu,
}

func systrayMenu() menuChannels {
	settings := systray.AddMenuItem("Settings", "Edit the configuration file")
	reset := systray.AddMenuItem("Reset usage timer", "Start counting continuous use from now")
	systray.AddSeparator()
	exit := systray.AddMenuItem("Exit", "Quit idle-reminder")

	return menuChannels{
		settings: settings.ClickedCh,
		reset:    reset.ClickedCh,
		exit:     exit.ClickedCh,
	}
}

// Tray owns the status icon. It implements interfaces.TitleSink.
type Tray struct {
	logger  *slog.Logger
	actions Actions
	icon    []byte
	backend backend

	mu      sync.Mutex
	ready   bool
	title   string
	tooltip string
}

var _ interfaces.TitleSink = (*Tray)(nil)

// New prepares a tray icon. Nothing is shown until Run.
func New(logger *slog.Logger, actions Actions) (*Tray, error) {
	icon, err := IconPNG()
	if err != nil {
		return nil, err
	}

	return &Tray{
		logger:  logger,
		actions: actions,
		icon:    platformIcon(icon),
		backend: systrayBackend,
		title:   "idle-reminder",
	}, nil
}

// Run shows the icon and runs body on its own goroutine with a context that
// is cancelled when Exit is chosen. It blocks on the calling goroutine, which
// must be the main one on macOS, until body has returned and the icon is gone.
func (t *Tray) Run(ctx context.Context, body func(context.Context) error) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var bodyErr error
	done := make(chan struct{})

	onReady := func() {
		t.backend.setIcon(t.icon)
		menu := t.backend.menu()
		t.markReady()
		t.logger.Debug("tray ready")

		go t.handleMenu(ctx, menu, cancel)
		go func() {
			defer close(done)
			defer t.backend.quit()
			bodyErr = body(ctx)
		}()
	}
	onExit := func() {
		t.logger.Debug("tray removed")
	}

	t.backend.run(onReady, onExit)

	if !t.isReady() {
		return ErrUnavailable
	}

	cancel()
	<-done
	return bodyErr
}

// handleMenu dispatches menu clicks until ctx is done or Exit is chosen.
func (t *Tray) handleMenu(ctx context.Context, menu menuChannels, exit func()) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-menu.settings:
			if t.actions.OpenSettings == nil {
				continue
			}
			go func() {
				if err := t.actions.OpenSettings(); err != nil {
					t.logger.Warn("failed to open settings", "err", err)
				}
			}()
		case <-menu.reset:
			if t.actions.ResetUsage != nil {
				t.actions.ResetUsage()
			}
		case <-menu.exit:
			t.logger.Info("exit requested from tray")
			exit()
			return
		}
	}
}

func (t *Tray) markReady() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.ready = true
	t.backend.setTitle(t.title)
	t.backend.setTooltip(t.tooltip)
}

func (t *Tray) isReady() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.ready
}

// SetTitle sets the text next to the icon. Before the tray is ready the
// text is kept and applied once it is.
func (t *Tray) SetTitle(title string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.title = title
	if t.ready {
		t.backend.setTitle(title)
	}
}

// SetTooltip sets the hover text of the icon.
func (t *Tray) SetTooltip(tooltip string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.tooltip = tooltip
	if t.ready {
		t.backend.setTooltip(tooltip)
	}
}
