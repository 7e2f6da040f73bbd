package bell

import (
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
)

// fade is the ramp applied at both ends of a tone to avoid clicks.
const fade = 5 * time.Millisecond

// tone is a sine wave of fixed length with linear fade in and out.
type tone struct {
	step     float64
	phase    float64
	position int
	total    int
	ramp     int
}

// NewTone returns a sine tone of freq Hz lasting d at sample rate sr.
func NewTone(freq float64, d time.Duration, sr beep.SampleRate) beep.Streamer {
	total := sr.N(d)
	ramp := sr.N(fade)
	if ramp*2 > total {
		ramp = total / 2
	}
	return &tone{
		step:  freq / float64(sr),
		total: total,
		ramp:  ramp,
	}
}

func (t *tone) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if t.position >= t.total {
			return i, i > 0
		}

		val := math.Sin(2*math.Pi*t.phase) * t.gain()
		samples[i][0] = val
		samples[i][1] = val

		t.phase += t.step
		t.phase -= math.Floor(t.phase)
		t.position++
	}
	return len(samples), true
}

func (t *tone) gain() float64 {
	if t.ramp == 0 {
		return 1
	}
	if t.position < t.ramp {
		return float64(t.position) / float64(t.ramp)
	}
	if left := t.total - t.position; left < t.ramp {
		return float64(left) / float64(t.ramp)
	}
	return 1
}

func (t *tone) Err() error { return nil }

// withVolume scales s by vol in [0, 1].
func withVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol), Silent: false}
}
