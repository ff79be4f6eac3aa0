// Package sound loads the reminder sound into memory and plays it without
// blocking the caller.
package sound

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/flac"
	"github.com/gopxl/beep/v2/mp3"
	"github.com/gopxl/beep/v2/vorbis"
	"github.com/gopxl/beep/v2/wav"
)

// ErrUnsupportedFormat is returned for files whose extension has no decoder.
var ErrUnsupportedFormat = errors.New("unsupported audio format")

// Clip is a fully decoded sound held in memory.
type Clip struct {
	format beep.Format
	buffer *beep.Buffer
}

// Format returns the sample format of the clip.
func (c *Clip) Format() beep.Format {
	return c.format
}

// Len returns the number of samples in the clip.
func (c *Clip) Len() int {
	return c.buffer.Len()
}

// Duration returns the playing time of the clip.
func (c *Clip) Duration() time.Duration {
	return c.format.SampleRate.D(c.buffer.Len())
}

// Streamer returns a fresh streamer over the whole clip.
func (c *Clip) Streamer() beep.StreamSeeker {
	return c.buffer.Streamer(0, c.buffer.Len())
}

// Load reads the file at path into memory and decodes it.
func Load(path string) (*Clip, error) {
	// #nosec G304 - The sound file path comes from the user's own configuration
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read sound file: %w", err)
	}
	return Decode(filepath.Ext(path), data)
}

// Decode decodes data according to the file extension ext (".mp3", ".wav",
// ".ogg" or ".flac").
func Decode(ext string, data []byte) (*Clip, error) {
	var (
		streamer beep.StreamSeekCloser
		format   beep.Format
		err      error
	)

	switch strings.ToLower(ext) {
	case ".mp3":
		streamer, format, err = mp3.Decode(io.NopCloser(bytes.NewReader(data)))
	case ".wav":
		streamer, format, err = wav.Decode(bytes.NewReader(data))
	case ".ogg":
		streamer, format, err = vorbis.Decode(io.NopCloser(bytes.NewReader(data)))
	case ".flac":
		streamer, format, err = flac.Decode(bytes.NewReader(data))
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to decode sound: %w", err)
	}
	defer func() { _ = streamer.Close() }()

	buffer := beep.NewBuffer(format)
	buffer.Append(streamer)
	if err := streamer.Err(); err != nil {
		return nil, fmt.Errorf("failed to decode sound: %w", err)
	}
	if buffer.Len() == 0 {
		return nil, fmt.Errorf("failed to decode sound: no samples")
	}

	return &Clip{format: format, buffer: buffer}, nil
}
