package bomberman

import "github.com/vovakirdan/tui-bomber/internal/core"

// EventKind classifies simulation events.
type EventKind uint8

const (
	EventLevelStarted EventKind = iota
	EventBombPlaced
	EventExplosion
	EventBlockDestroyed
	EventEnemyKilled
	EventPlayerHit
	EventDoorRevealed
	EventLevelComplete
	EventGameOver
	EventPaused
	EventResumed
)

func (k EventKind) String() string {
	switch k {
	case EventLevelStarted:
		return "level-started"
	case EventBombPlaced:
		return "bomb-placed"
	case EventExplosion:
		return "explosion"
	case EventBlockDestroyed:
		return "block-destroyed"
	case EventEnemyKilled:
		return "enemy-killed"
	case EventPlayerHit:
		return "player-hit"
	case EventDoorRevealed:
		return "door-revealed"
	case EventLevelComplete:
		return "level-complete"
	case EventGameOver:
		return "game-over"
	case EventPaused:
		return "paused"
	case EventResumed:
		return "resumed"
	default:
		return "unknown"
	}
}

// EndReason is why a run ended.
type EndReason uint8

const (
	EndNone EndReason = iota
	EndLives
	EndTime
)

func (r EndReason) String() string {
	switch r {
	case EndLives:
		return "lives"
	case EndTime:
		return "time"
	default:
		return ""
	}
}

// Message is the headline shown on the game-over overlay.
func (r EndReason) Message() string {
	switch r {
	case EndLives:
		return "Game Over!"
	case EndTime:
		return "Time's up!"
	default:
		return ""
	}
}

// Event is emitted for every state change an adapter may care about.
type Event struct {
	Kind   EventKind
	Pos    core.Point
	Points int // score awarded by this event
	Level  int
	Score  int // session score after the event
	Reason EndReason
}

// Listener is notified synchronously from Tick and the action methods.
// Implementations must not block.
type Listener interface {
	Notify(Event)
}

// ListenerFunc adapts a function to Listener.
type ListenerFunc func(Event)

// Notify calls f(e).
func (f ListenerFunc) Notify(e Event) {
	f(e)
}
