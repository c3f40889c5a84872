package audio

import (
	"math"
	"math/rand"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
)

// SampleRate is the output rate of every generated effect.
const SampleRate = beep.SampleRate(44100)

// Wave is an oscillator shape.
type Wave int

const (
	WaveSine Wave = iota
	WaveSquare
	WaveSaw
	WaveNoise
)

// oscillator generates a fixed-length raw wave, optionally sweeping its pitch.
type oscillator struct {
	freq     float64
	sweep    float64 // Hz added per second
	phase    float64
	position int
	length   int
	wave     Wave
	rate     beep.SampleRate
	noise    *rand.Rand
}

// NewOscillator creates a wave of the given shape and duration.
func NewOscillator(freq float64, d time.Duration, wave Wave, rate beep.SampleRate) beep.Streamer {
	return newSweep(freq, 0, d, wave, rate)
}

func newSweep(freq, sweep float64, d time.Duration, wave Wave, rate beep.SampleRate) *oscillator {
	return &oscillator{
		freq:   freq,
		sweep:  sweep,
		length: rate.N(d),
		wave:   wave,
		rate:   rate,
		noise:  rand.New(rand.NewSource(int64(freq) + 1)), // same noise every play
	}
}

func (o *oscillator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if o.position >= o.length {
			return i, i > 0
		}

		var val float64
		switch o.wave {
		case WaveSine:
			val = math.Sin(2 * math.Pi * o.phase)
		case WaveSquare:
			val = 1
			if o.phase >= 0.5 {
				val = -1
			}
		case WaveSaw:
			val = 2 * (o.phase - 0.5)
		case WaveNoise:
			val = o.noise.Float64()*2 - 1
		}
		samples[i][0] = val
		samples[i][1] = val

		t := float64(o.position) / float64(o.rate)
		o.phase += (o.freq + o.sweep*t) / float64(o.rate)
		o.phase -= math.Floor(o.phase)
		o.position++
	}
	return len(samples), true
}

func (o *oscillator) Err() error { return nil }

// envelope applies a linear attack and release to a stream.
type envelope struct {
	streamer beep.Streamer
	position int
	attack   int
	release  int
	total    int
}

// NewEnvelope shapes s with an attack ramp and a release fade.
func NewEnvelope(s beep.Streamer, d, attack, release time.Duration, rate beep.SampleRate) beep.Streamer {
	return &envelope{
		streamer: s,
		attack:   rate.N(attack),
		release:  rate.N(release),
		total:    rate.N(d),
	}
}

func (e *envelope) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = e.streamer.Stream(samples)
	for i := range n {
		if e.position >= e.total {
			return i, i > 0
		}
		vol := 1.0
		if e.position < e.attack {
			vol = float64(e.position) / float64(e.attack)
		}
		if left := e.total - e.position; left < e.release {
			vol = math.Min(vol, float64(left)/float64(e.release))
		}
		samples[i][0] *= vol
		samples[i][1] *= vol
		e.position++
	}
	return n, ok
}

func (e *envelope) Err() error { return e.streamer.Err() }

// newVolume scales s linearly; zero or less is silent.
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol)}
}

// tone is one shaped note of an effect.
func tone(freq, sweep float64, d time.Duration, wave Wave) beep.Streamer {
	osc := newSweep(freq, sweep, d, wave, SampleRate)
	return NewEnvelope(osc, d, 5*time.Millisecond, d/2, SampleRate)
}

// Effect builds the streamer for a sound at the given master volume.
// Unknown sounds return nil.
func Effect(s Sound, volume float64) beep.Streamer {
	var st beep.Streamer
	switch s {
	case SoundBombPlaced:
		st = tone(220, 0, 60*time.Millisecond, WaveSquare)
	case SoundExplosion:
		d := 450 * time.Millisecond
		st = beep.Take(SampleRate.N(d), beep.Mix(
			newVolume(tone(0, 0, d, WaveNoise), 0.7),
			newVolume(tone(90, -120, d, WaveSine), 0.5),
		))
	case SoundEnemyKilled:
		st = tone(660, -900, 150*time.Millisecond, WaveSaw)
	case SoundPlayerHit:
		st = tone(300, -500, 400*time.Millisecond, WaveSquare)
	case SoundDoorRevealed:
		st = beep.Seq(
			tone(523.25, 0, 90*time.Millisecond, WaveSine),
			tone(783.99, 0, 140*time.Millisecond, WaveSine),
		)
	case SoundLevelComplete:
		st = beep.Seq(
			tone(523.25, 0, 100*time.Millisecond, WaveSquare),
			tone(659.25, 0, 100*time.Millisecond, WaveSquare),
			tone(783.99, 0, 100*time.Millisecond, WaveSquare),
			tone(1046.5, 0, 250*time.Millisecond, WaveSquare),
		)
	case SoundGameOver:
		st = beep.Seq(
			tone(392, 0, 200*time.Millisecond, WaveSaw),
			tone(311.13, 0, 200*time.Millisecond, WaveSaw),
			tone(261.63, -60, 500*time.Millisecond, WaveSaw),
		)
	default:
		return nil
	}
	return newVolume(st, volume*0.4)
}
