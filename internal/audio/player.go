// Package audio plays synthesized sound effects for simulation events.
package audio

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/vovakirdan/tui-bomber/internal/games/bomberman"
)

// Sound identifies one effect.
type Sound int

const (
	SoundNone Sound = iota
	SoundBombPlaced
	SoundExplosion
	SoundEnemyKilled
	SoundPlayerHit
	SoundDoorRevealed
	SoundLevelComplete
	SoundGameOver
)

// SoundFor maps a simulation event to its effect.
func SoundFor(kind bomberman.EventKind) Sound {
	switch kind {
	case bomberman.EventBombPlaced:
		return SoundBombPlaced
	case bomberman.EventExplosion:
		return SoundExplosion
	case bomberman.EventEnemyKilled:
		return SoundEnemyKilled
	case bomberman.EventPlayerHit:
		return SoundPlayerHit
	case bomberman.EventDoorRevealed:
		return SoundDoorRevealed
	case bomberman.EventLevelComplete:
		return SoundLevelComplete
	case bomberman.EventGameOver:
		return SoundGameOver
	default:
		return SoundNone
	}
}

// queueSize bounds the sounds waiting for the speaker goroutine.
const queueSize = 32

// playQueue hands streams to a goroutine that adds them to the mixer.
// push never waits; a full queue drops the sound.
type playQueue struct {
	streams chan beep.Streamer
	stop    chan struct{}
	stopped atomic.Bool
	dropped atomic.Uint64
}

func newPlayQueue(size int) *playQueue {
	return &playQueue{
		streams: make(chan beep.Streamer, size),
		stop:    make(chan struct{}),
	}
}

func (q *playQueue) start(add func(beep.Streamer)) {
	go q.loop(add)
}

func (q *playQueue) loop(add func(beep.Streamer)) {
	for {
		select {
		case <-q.stop:
			return
		case s := <-q.streams:
			add(s)
		}
	}
}

func (q *playQueue) push(s beep.Streamer) bool {
	if q.stopped.Load() {
		return false
	}
	select {
	case q.streams <- s:
		return true
	default:
		q.dropped.Add(1)
		return false
	}
}

func (q *playQueue) close() {
	if q.stopped.CompareAndSwap(false, true) {
		close(q.stop)
	}
}

// Player is a bomberman.Listener that plays effects through the speaker.
// Notify does not wait for the speaker or for playback; without an audio
// device it stays silent.
type Player struct {
	mu     sync.Mutex
	mixer  *beep.Mixer
	queue  *playQueue
	out    func(beep.Streamer) bool // nil until Init succeeds
	volume float64
	muted  atomic.Bool
	log    *log.Logger
}

// NewPlayer creates a player at the given master volume in [0, 1].
func NewPlayer(volume float64, logger *log.Logger) *Player {
	return &Player{
		mixer:  &beep.Mixer{},
		volume: volume,
		log:    logger,
	}
}

// Init opens the speaker. A missing device leaves the player silent and is
// reported once.
func (p *Player) Init() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.out != nil {
		return nil
	}
	if err := speaker.Init(SampleRate, SampleRate.N(50*time.Millisecond)); err != nil {
		if p.log != nil {
			p.log.Warn("audio disabled", "err", err)
		}
		return err
	}
	speaker.Play(p.mixer)
	p.queue = newPlayQueue(queueSize)
	p.queue.start(func(s beep.Streamer) {
		speaker.Lock()
		p.mixer.Add(s)
		speaker.Unlock()
	})
	p.out = p.queue.push
	return nil
}

// Close stops playback.
func (p *Player) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.out == nil {
		return
	}
	p.queue.close()
	speaker.Clear()
	p.out = nil
}

// Notify implements bomberman.Listener.
func (p *Player) Notify(ev bomberman.Event) {
	p.Play(SoundFor(ev.Kind))
}

// Play queues a sound. Returns false if nothing was queued, including when
// the queue is full.
func (p *Player) Play(s Sound) bool {
	if s == SoundNone || p.muted.Load() {
		return false
	}
	p.mu.Lock()
	out := p.out
	p.mu.Unlock()
	if out == nil {
		return false
	}
	st := Effect(s, p.volume)
	if st == nil {
		return false
	}
	return out(st)
}

// ToggleMute flips mute and returns true if sound is now on.
func (p *Player) ToggleMute() bool {
	muted := !p.muted.Load()
	p.muted.Store(muted)
	return !muted
}

// SetMuted sets the mute state.
func (p *Player) SetMuted(muted bool) {
	p.muted.Store(muted)
}

// Muted reports whether sound is off.
func (p *Player) Muted() bool {
	return p.muted.Load()
}
