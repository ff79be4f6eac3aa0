package sound

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/gen2brain/beeep"
	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/speaker"

	"github.com/Veraticus/idle-reminder/pkg/interfaces"
)

// New picks a player for the configured sound file. An empty path uses the
// system beep. A file that cannot be loaded disables sound for the session.
func New(path string, logger *slog.Logger) interfaces.SoundPlayer {
	if path == "" {
		return NewBeepPlayer(logger)
	}

	clip, err := Load(path)
	if err != nil {
		logger.Warn("sound disabled", "path", path, "err", err)
		return NopPlayer{}
	}

	logger.Debug("sound loaded", "path", path, "duration", clip.Duration(), "sampleRate", clip.Format().SampleRate)
	return NewSpeakerPlayer(clip)
}

// speakerBackend is the subset of the speaker package a SpeakerPlayer uses.
type speakerBackend struct {
	init  func(beep.SampleRate, int) error
	play  func(...beep.Streamer)
	close func()
}

var defaultSpeaker = speakerBackend{
	init:  speaker.Init,
	play:  speaker.Play,
	close: speaker.Close,
}

// SpeakerPlayer plays a clip on the default audio device.
type SpeakerPlayer struct {
	clip    *Clip
	backend speakerBackend

	mu      sync.Mutex
	started bool
	closed  bool
}

// NewSpeakerPlayer creates a player for clip. The audio device is opened on
// the first Play.
func NewSpeakerPlayer(clip *Clip) *SpeakerPlayer {
	return &SpeakerPlayer{clip: clip, backend: defaultSpeaker}
}

// Play starts the clip and returns immediately.
func (p *SpeakerPlayer) Play() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return fmt.Errorf("player is closed")
	}

	if !p.started {
		sr := p.clip.Format().SampleRate
		if err := p.backend.init(sr, sr.N(time.Second/10)); err != nil {
			return fmt.Errorf("failed to open audio device: %w", err)
		}
		p.started = true
	}

	p.backend.play(p.clip.Streamer())
	return nil
}

// Close releases the audio device.
func (p *SpeakerPlayer) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.started && !p.closed {
		p.backend.close()
	}
	p.closed = true
	return nil
}

// BeepPlayer sounds the system beep.
type BeepPlayer struct {
	logger *slog.Logger
	beep   func(freq float64, duration int) error
	wg     sync.WaitGroup
}

// NewBeepPlayer creates a player using the system beep.
func NewBeepPlayer(logger *slog.Logger) *BeepPlayer {
	return &BeepPlayer{logger: logger, beep: beeep.Beep}
}

// Play beeps on a separate goroutine.
func (p *BeepPlayer) Play() error {
	p.wg.Add(1)
	go func() {
		defer p.wg.Done()
		if err := p.beep(beeep.DefaultFreq, beeep.DefaultDuration); err != nil {
			p.logger.Warn("system beep failed", "err", err)
		}
	}()
	return nil
}

// Close waits for a beep in progress.
func (p *BeepPlayer) Close() error {
	p.wg.Wait()
	return nil
}

// NopPlayer plays nothing.
type NopPlayer struct{}

// Play does nothing.
func (NopPlayer) Play() error { return nil }

// Close does nothing.
func (NopPlayer) Close() error { return nil }
