package audio

import (
	"testing"
	"time"

	"github.com/gopxl/beep"

	"github.com/vovakirdan/tui-bomber/internal/games/bomberman"
)

func drain(s beep.Streamer) int {
	buf := make([][2]float64, 512)
	total := 0
	for {
		n, ok := s.Stream(buf)
		total += n
		if !ok || n == 0 {
			return total
		}
	}
}

func TestOscillatorLength(t *testing.T) {
	rate := beep.SampleRate(44100)
	osc := NewOscillator(440, 100*time.Millisecond, WaveSine, rate)

	if got := drain(osc); got != rate.N(100*time.Millisecond) {
		t.Errorf("drain() = %d samples, expected %d", got, rate.N(100*time.Millisecond))
	}
	if osc.Err() != nil {
		t.Errorf("Err() = %v, expected nil", osc.Err())
	}
}

func TestOscillatorRange(t *testing.T) {
	waves := []Wave{WaveSine, WaveSquare, WaveSaw, WaveNoise}

	for _, w := range waves {
		osc := NewOscillator(330, 20*time.Millisecond, w, SampleRate)
		samples := make([][2]float64, 200)
		n, ok := osc.Stream(samples)
		if !ok || n != 200 {
			t.Errorf("wave %d: Stream() = %d, %v", w, n, ok)
		}
		for i := range n {
			if v := samples[i][0]; v < -1 || v > 1 {
				t.Errorf("wave %d: sample %d out of range: %f", w, i, v)
			}
		}
	}
}

func TestEnvelopeFadesOut(t *testing.T) {
	d := 50 * time.Millisecond
	osc := NewOscillator(200, d, WaveSquare, SampleRate)
	env := NewEnvelope(osc, d, 0, d, SampleRate)

	samples := make([][2]float64, SampleRate.N(d))
	n, _ := env.Stream(samples)
	if n == 0 {
		t.Fatal("envelope produced no samples")
	}
	first, last := samples[0][0], samples[n-1][0]
	if abs(last) >= abs(first) {
		t.Errorf("envelope did not fade: first=%f last=%f", first, last)
	}
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}

func TestEffects(t *testing.T) {
	sounds := []Sound{
		SoundBombPlaced,
		SoundExplosion,
		SoundEnemyKilled,
		SoundPlayerHit,
		SoundDoorRevealed,
		SoundLevelComplete,
		SoundGameOver,
	}
	for _, s := range sounds {
		st := Effect(s, 1)
		if st == nil {
			t.Errorf("Effect(%d) = nil", s)
			continue
		}
		if n := drain(st); n == 0 || n > SampleRate.N(2*time.Second) {
			t.Errorf("Effect(%d) played %d samples", s, n)
		}
	}
	if Effect(SoundNone, 1) != nil {
		t.Error("Effect(SoundNone) should be nil")
	}
}

func TestSoundFor(t *testing.T) {
	tests := []struct {
		kind bomberman.EventKind
		want Sound
	}{
		{bomberman.EventBombPlaced, SoundBombPlaced},
		{bomberman.EventExplosion, SoundExplosion},
		{bomberman.EventLevelComplete, SoundLevelComplete},
		{bomberman.EventGameOver, SoundGameOver},
		{bomberman.EventPaused, SoundNone},
		{bomberman.EventLevelStarted, SoundNone},
	}
	for _, tt := range tests {
		if got := SoundFor(tt.kind); got != tt.want {
			t.Errorf("SoundFor(%s) = %d, expected %d", tt.kind, got, tt.want)
		}
	}
}

func TestPlayerNotify(t *testing.T) {
	p := NewPlayer(0.8, nil)
	var played int
	p.out = func(beep.Streamer) bool {
		played++
		return true
	}

	p.Notify(bomberman.Event{Kind: bomberman.EventExplosion})
	p.Notify(bomberman.Event{Kind: bomberman.EventPaused})
	if played != 1 {
		t.Errorf("played %d sounds, expected 1", played)
	}

	if on := p.ToggleMute(); on {
		t.Error("ToggleMute() should report sound off")
	}
	p.Notify(bomberman.Event{Kind: bomberman.EventGameOver})
	if played != 1 {
		t.Error("muted player should not play")
	}

	p.SetMuted(false)
	if !p.Play(SoundGameOver) || played != 2 {
		t.Errorf("Play() after unmute: played=%d", played)
	}
}

func TestPlayerSilentWithoutDevice(t *testing.T) {
	p := NewPlayer(1, nil)
	if p.Play(SoundExplosion) {
		t.Error("Play() without an initialized speaker should return false")
	}
	p.Close()
}

func TestPlayQueueDoesNotWait(t *testing.T) {
	q := newPlayQueue(2)
	release := make(chan struct{})
	added := make(chan struct{}, 8)
	q.start(func(beep.Streamer) {
		added <- struct{}{}
		<-release
	})

	if !q.push(beep.Silence(1)) {
		t.Fatal("push() to an empty queue = false, expected true")
	}
	select {
	case <-added:
	case <-time.After(time.Second):
		t.Fatal("queue did not hand the stream over")
	}

	// The consumer is stuck; two fit in the buffer and the rest drop.
	done := make(chan []bool)
	go func() {
		var got []bool
		for range 4 {
			got = append(got, q.push(beep.Silence(1)))
		}
		done <- got
	}()
	select {
	case got := <-done:
		want := []bool{true, true, false, false}
		for i := range want {
			if got[i] != want[i] {
				t.Errorf("push() #%d = %v, expected %v", i, got[i], want[i])
			}
		}
	case <-time.After(time.Second):
		t.Fatal("push() waited for a busy consumer")
	}
	if n := q.dropped.Load(); n != 2 {
		t.Errorf("dropped = %d, expected 2", n)
	}

	close(release)
	for range 2 {
		select {
		case <-added:
		case <-time.After(time.Second):
			t.Fatal("queued streams were not drained")
		}
	}

	q.close()
	q.close()
	if q.push(beep.Silence(1)) {
		t.Error("push() after close = true, expected false")
	}
}
