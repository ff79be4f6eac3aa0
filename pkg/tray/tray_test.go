package tray

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// fakeBackend stands in for the OS tray.
type fakeBackend struct {
	neverReady bool

	mu       sync.Mutex
	icon     []byte
	titles   []string
	tooltips []string
	exited   bool

	quitCh   chan struct{}
	quitOnce sync.Once

	settingsCh chan struct{}
	resetCh    chan struct{}
	exitCh     chan struct{}
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{
		quitCh:     make(chan struct{}),
		settingsCh: make(chan struct{}),
		resetCh:    make(chan struct{}),
		exitCh:     make(chan struct{}),
	}
}

func (f *fakeBackend) backend() backend {
	return backend{
		run: func(onReady, onExit func()) {
			if !f.neverReady {
				onReady()
				<-f.quitCh
			}
			f.mu.Lock()
			f.exited = true
			f.mu.Unlock()
			onExit()
		},
		quit: func() { f.quitOnce.Do(func() { close(f.quitCh) }) },
		setIcon: func(b []byte) {
			f.mu.Lock()
			defer f.mu.Unlock()
			f.icon = b
		},
		setTitle: func(s string) {
			f.mu.Lock()
			defer f.mu.Unlock()
			f.titles = append(f.titles, s)
		},
		setTooltip: func(s string) {
			f.mu.Lock()
			defer f.mu.Unlock()
			f.tooltips = append(f.tooltips, s)
		},
		menu: func() menuChannels {
			return menuChannels{settings: f.settingsCh, reset: f.resetCh, exit: f.exitCh}
		},
	}
}

func (f *fakeBackend) getTitles() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.titles...)
}

func newTestTray(t *testing.T, fb *fakeBackend, actions Actions) *Tray {
	t.Helper()
	tr, err := New(discardLogger(), actions)
	require.NoError(t, err)
	tr.backend = fb.backend()
	return tr
}

func runAsync(tr *Tray, ctx context.Context, body func(context.Context) error) <-chan error {
	done := make(chan error, 1)
	go func() { done <- tr.Run(ctx, body) }()
	return done
}

func waitErr(t *testing.T, done <-chan error) error {
	t.Helper()
	select {
	case err := <-done:
		return err
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return")
		return nil
	}
}

func TestTray_RunReturnsBodyError(t *testing.T) {
	fb := newFakeBackend()
	tr := newTestTray(t, fb, Actions{})

	bodyErr := errors.New("monitor failed")
	err := tr.Run(context.Background(), func(context.Context) error { return bodyErr })

	assert.ErrorIs(t, err, bodyErr)
	assert.True(t, fb.exited, "icon removed when body returns")
	assert.NotEmpty(t, fb.icon)
}

func TestTray_ExitMenuCancelsBody(t *testing.T) {
	fb := newFakeBackend()
	tr := newTestTray(t, fb, Actions{})

	started := make(chan struct{})
	done := runAsync(tr, context.Background(), func(ctx context.Context) error {
		close(started)
		<-ctx.Done()
		return nil
	})

	<-started
	fb.exitCh <- struct{}{}

	assert.NoError(t, waitErr(t, done))
}

func TestTray_ParentCancellation(t *testing.T) {
	fb := newFakeBackend()
	tr := newTestTray(t, fb, Actions{})

	ctx, cancel := context.WithCancel(context.Background())
	started := make(chan struct{})
	done := runAsync(tr, ctx, func(ctx context.Context) error {
		close(started)
		<-ctx.Done()
		return nil
	})

	<-started
	cancel()

	assert.NoError(t, waitErr(t, done))
}

func TestTray_NeverReady(t *testing.T) {
	fb := newFakeBackend()
	fb.neverReady = true
	tr := newTestTray(t, fb, Actions{})

	var called atomic.Bool
	err := tr.Run(context.Background(), func(context.Context) error {
		called.Store(true)
		return nil
	})

	assert.ErrorIs(t, err, ErrUnavailable)
	assert.False(t, called.Load())
}

func TestTray_TitleBeforeAndAfterReady(t *testing.T) {
	fb := newFakeBackend()
	tr := newTestTray(t, fb, Actions{})

	tr.SetTitle("Active - used 0h 0m")
	tr.SetTooltip("next check in 30s")
	assert.Empty(t, fb.getTitles(), "nothing reaches the OS before ready")

	err := tr.Run(context.Background(), func(context.Context) error {
		tr.SetTitle("Away - used 0h 1m")
		return nil
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"Active - used 0h 0m", "Away - used 0h 1m"}, fb.getTitles())
	assert.Equal(t, []string{"next check in 30s"}, fb.tooltips)
}

func TestTray_HandleMenu(t *testing.T) {
	settingsOpened := make(chan struct{}, 2)
	var resets atomic.Int32

	fb := newFakeBackend()
	tr := newTestTray(t, fb, Actions{
		OpenSettings: func() error {
			settingsOpened <- struct{}{}
			return errors.New("no editor")
		},
		ResetUsage: func() { resets.Add(1) },
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var exits atomic.Int32
	done := make(chan struct{})
	go func() {
		tr.handleMenu(ctx, fb.backend().menu(), func() { exits.Add(1) })
		close(done)
	}()

	fb.settingsCh <- struct{}{}
	fb.resetCh <- struct{}{}
	fb.resetCh <- struct{}{}
	fb.settingsCh <- struct{}{}

	for i := 0; i < 2; i++ {
		select {
		case <-settingsOpened:
		case <-time.After(time.Second):
			t.Fatal("settings action not invoked")
		}
	}

	fb.exitCh <- struct{}{}
	<-done

	assert.Equal(t, int32(2), resets.Load())
	assert.Equal(t, int32(1), exits.Load())
}

func TestTray_HandleMenuWithoutActions(t *testing.T) {
	fb := newFakeBackend()
	tr := newTestTray(t, fb, Actions{})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		tr.handleMenu(ctx, fb.backend().menu(), func() {})
		close(done)
	}()

	fb.settingsCh <- struct{}{}
	fb.resetCh <- struct{}{}
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("handleMenu did not stop on cancellation")
	}
}
