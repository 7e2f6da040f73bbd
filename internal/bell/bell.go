// Package bell sounds the terminal bell through the system audio device.
package bell

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/dshills/vtconsole/internal/logging"
)

// Config describes the bell tone.
type Config struct {
	Frequency  float64
	Duration   time.Duration
	Volume     float64
	SampleRate int
}

// DefaultConfig returns an 800 Hz tone of 100 ms.
func DefaultConfig() Config {
	return Config{
		Frequency:  800,
		Duration:   100 * time.Millisecond,
		Volume:     0.3,
		SampleRate: 44100,
	}
}

// Bell plays a short tone per Ring. Rings that arrive while a tone is still
// playing are dropped.
type Bell struct {
	mu          sync.Mutex
	cfg         Config
	sr          beep.SampleRate
	log         *logging.Logger
	mixer       *beep.Mixer
	initialized bool

	playing atomic.Bool
	rings   atomic.Uint64
}

// New creates a bell. No audio device is opened until Init.
func New(cfg Config, log *logging.Logger) *Bell {
	if cfg.SampleRate <= 0 {
		cfg.SampleRate = DefaultConfig().SampleRate
	}
	return &Bell{
		cfg:   cfg,
		sr:    beep.SampleRate(cfg.SampleRate),
		log:   logging.OrNop(log).WithComponent("bell"),
		mixer: &beep.Mixer{},
	}
}

// Init opens the speaker. Until it succeeds Ring only counts.
func (b *Bell) Init() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.initialized {
		return nil
	}

	if err := speaker.Init(b.sr, b.sr.N(100*time.Millisecond)); err != nil {
		return err
	}

	speaker.Play(b.mixer)
	b.initialized = true
	b.log.Debug("speaker ready at %d Hz", b.cfg.SampleRate)
	return nil
}

// Close silences any playing tone.
func (b *Bell) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.initialized {
		return
	}
	speaker.Lock()
	b.mixer.Clear()
	speaker.Unlock()
	b.playing.Store(false)
	b.initialized = false
}

// SetConfig replaces the tone used by later rings.
func (b *Bell) SetConfig(cfg Config) {
	b.mu.Lock()
	defer b.mu.Unlock()
	cfg.SampleRate = b.cfg.SampleRate
	b.cfg = cfg
}

// Ring starts the tone. It does not wait for playback.
func (b *Bell) Ring() {
	b.rings.Add(1)

	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.initialized || !b.playing.CompareAndSwap(false, true) {
		return
	}

	s := b.stream()
	speaker.Lock()
	b.mixer.Add(s)
	speaker.Unlock()
}

// stream builds the tone for one ring, clearing the playing flag at its end.
func (b *Bell) stream() beep.Streamer {
	t := NewTone(b.cfg.Frequency, b.cfg.Duration, b.sr)
	return beep.Seq(withVolume(t, b.cfg.Volume), beep.Callback(func() {
		b.playing.Store(false)
	}))
}

// Rings returns how many times Ring has been called.
func (b *Bell) Rings() uint64 {
	return b.rings.Load()
}
