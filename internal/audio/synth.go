// Package audio synthesises the game's sound effects and plays them by
// piping raw PCM to whatever command line player the host has installed.
package audio

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
)

// SampleRate is the rate every buffer is rendered at and the backend is fed.
const SampleRate = beep.SampleRate(44100)

// ErrBadSound is returned for a sound description that cannot be rendered.
var ErrBadSound = errors.New("audio: invalid sound")

// Buffer is mono float64 samples in [-1, 1].
type Buffer []float64

// Duration returns the playing time of the buffer.
func (b Buffer) Duration() time.Duration {
	return SampleRate.D(len(b))
}

// SoundSpec describes a short synthesised effect. A non-zero NextFreq
// appends a second note of the same length, used for chimes.
type SoundSpec struct {
	Wave       string  `yaml:"wave"`        // sine, square, saw or noise
	Freq       float64 `yaml:"freq"`        // Hz
	DurationMS int     `yaml:"duration_ms"` // Length of one note
	AttackMS   int     `yaml:"attack_ms"`
	ReleaseMS  int     `yaml:"release_ms"`
	Volume     float64 `yaml:"volume"` // 0..1
	NextFreq   float64 `yaml:"next_freq,omitempty"`
}

func ms(n int) time.Duration {
	return time.Duration(n) * time.Millisecond
}

// Synthesize renders spec into a buffer scaled by master volume.
func Synthesize(spec SoundSpec, master float64) (Buffer, error) {
	if spec.DurationMS <= 0 {
		return nil, fmt.Errorf("%w: duration must be positive", ErrBadSound)
	}

	first, err := note(spec, spec.Freq)
	if err != nil {
		return nil, err
	}
	stream := first
	if spec.NextFreq > 0 {
		second, err := note(spec, spec.NextFreq)
		if err != nil {
			return nil, err
		}
		stream = beep.Seq(first, second)
	}

	return render(newVolume(stream, spec.Volume*master)), nil
}

// note builds one enveloped tone of spec's length at freq.
func note(spec SoundSpec, freq float64) (beep.Streamer, error) {
	dur := ms(spec.DurationMS)

	var osc beep.Streamer
	switch spec.Wave {
	case "", "sine":
		sine, err := generators.SineTone(SampleRate, freq)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrBadSound, err)
		}
		osc = sine
	case "square", "saw", "noise":
		if freq <= 0 && spec.Wave != "noise" {
			return nil, fmt.Errorf("%w: frequency must be positive", ErrBadSound)
		}
		osc = &oscillator{freq: freq, wave: spec.Wave}
	default:
		return nil, fmt.Errorf("%w: unknown wave %q", ErrBadSound, spec.Wave)
	}

	return newEnvelope(beep.Take(SampleRate.N(dur), osc), dur, ms(spec.AttackMS), ms(spec.ReleaseMS)), nil
}

// render drains a finite streamer into a mono buffer.
func render(s beep.Streamer) Buffer {
	var out Buffer
	chunk := make([][2]float64, 512)
	for {
		n, ok := s.Stream(chunk)
		for i := 0; i < n; i++ {
			out = append(out, chunk[i][0])
		}
		if !ok || n == 0 {
			return out
		}
	}
}

// oscillator produces the waveforms beep's generators don't cover.
// It never ends on its own; callers bound it with beep.Take.
type oscillator struct {
	freq  float64
	phase float64
	wave  string
}

func (o *oscillator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		var val float64
		switch o.wave {
		case "square":
			if o.phase < 0.5 {
				val = 1.0
			} else {
				val = -1.0
			}
		case "saw":
			val = 2.0 * (o.phase - 0.5)
		case "noise":
			val = rand.Float64()*2 - 1 //#nosec G404 -- audio noise, not security
		}
		samples[i][0] = val
		samples[i][1] = val

		o.phase += o.freq / float64(SampleRate)
		o.phase -= math.Floor(o.phase)
	}
	return len(samples), true
}

func (o *oscillator) Err() error { return nil }

// envelope applies a linear attack and release to a stream.
type envelope struct {
	streamer     beep.Streamer
	position     int
	attack       int
	releaseStart int
	release      int
	total        int
}

func newEnvelope(s beep.Streamer, duration, attack, release time.Duration) beep.Streamer {
	total := SampleRate.N(duration)
	att := SampleRate.N(attack)
	rel := SampleRate.N(release)
	start := total - rel
	if start < att {
		start = att
	}
	return &envelope{
		streamer:     s,
		attack:       att,
		releaseStart: start,
		release:      rel,
		total:        total,
	}
}

func (e *envelope) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = e.streamer.Stream(samples)
	for i := 0; i < n; i++ {
		vol := 1.0
		if e.position < e.attack && e.attack > 0 {
			vol = float64(e.position) / float64(e.attack)
		} else if e.position >= e.releaseStart && e.release > 0 {
			vol = math.Max(0, float64(e.total-e.position)/float64(e.release))
		}
		samples[i][0] *= vol
		samples[i][1] *= vol
		e.position++
	}
	return n, ok
}

func (e *envelope) Err() error { return e.streamer.Err() }

// newVolume wraps s in a linear gain. Zero or less is silence since
// log2(0) is -Inf.
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol)}
}
