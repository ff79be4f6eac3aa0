package settings

import (
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/idle-reminder/pkg/config"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type startCall struct {
	name string
	args []string
}

func newTestEditor(t *testing.T, path, goos string, startErr error) (*Editor, *[]startCall) {
	t.Helper()
	var calls []startCall
	e := NewEditor(config.NewStore(path, discardLogger()), discardLogger())
	e.goos = goos
	e.start = func(name string, args ...string) error {
		calls = append(calls, startCall{name: name, args: args})
		return startErr
	}
	return e, &calls
}

func TestOpenCommand(t *testing.T) {
	tests := []struct {
		goos     string
		wantName string
		wantArgs []string
	}{
		{goos: "linux", wantName: "xdg-open", wantArgs: []string{"/cfg/config.json"}},
		{goos: "freebsd", wantName: "xdg-open", wantArgs: []string{"/cfg/config.json"}},
		{goos: "darwin", wantName: "open", wantArgs: []string{"-t", "/cfg/config.json"}},
		{goos: "windows", wantName: "rundll32", wantArgs: []string{"url.dll,FileProtocolHandler", "/cfg/config.json"}},
	}

	for _, tt := range tests {
		t.Run(tt.goos, func(t *testing.T) {
			name, args := openCommand(tt.goos, "/cfg/config.json")
			assert.Equal(t, tt.wantName, name)
			assert.Equal(t, tt.wantArgs, args)
		})
	}
}

func TestEditor_OpenCreatesMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.json")
	e, calls := newTestEditor(t, path, "linux", nil)

	require.NoError(t, e.Open())

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, config.DefaultConfig(), cfg)

	require.Len(t, *calls, 1)
	assert.Equal(t, startCall{name: "xdg-open", args: []string{path}}, (*calls)[0])
}

func TestEditor_OpenKeepsExistingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	original := []byte("{\"check_interval\": 5}\n")
	require.NoError(t, os.WriteFile(path, original, 0o600))

	e, calls := newTestEditor(t, path, "darwin", nil)
	require.NoError(t, e.Open())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, original, data, "existing file is not rewritten")
	assert.Len(t, *calls, 1)
}

func TestEditor_OpenLaunchFailure(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	e, _ := newTestEditor(t, path, "linux", errors.New("executable file not found"))

	err := e.Open()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to launch xdg-open")
	assert.FileExists(t, path)
}

func TestEditor_EnsureFileUnwritable(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "blocker")
	require.NoError(t, os.WriteFile(blocker, nil, 0o600))

	// A regular file where a directory is expected cannot be created under.
	e, calls := newTestEditor(t, filepath.Join(blocker, "config.json"), "linux", nil)

	assert.Error(t, e.Open())
	assert.Empty(t, *calls)
}
