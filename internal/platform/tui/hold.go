package tui

import (
	"time"

	"github.com/vovakirdan/tui-bomber/internal/core"
)

// directions are the actions tracked by holdTracker.
var directions = [...]core.Action{core.ActionUp, core.ActionDown, core.ActionLeft, core.ActionRight}

// holdTracker turns the press-only key stream of a terminal into press and
// release pairs. A direction counts as held while the terminal keeps
// auto-repeating it; once no repeat arrives within the window it is released.
type holdTracker struct {
	window time.Duration
	held   map[core.Action]time.Duration // remaining time before release
}

func newHoldTracker(window time.Duration) *holdTracker {
	return &holdTracker{
		window: window,
		held:   make(map[core.Action]time.Duration, len(directions)),
	}
}

// SetWindow changes the repeat window for presses that follow.
func (h *holdTracker) SetWindow(window time.Duration) {
	h.window = window
}

// Press records a direction press and writes it into frame. Pressing a new
// direction releases the other held ones.
func (h *holdTracker) Press(a core.Action, frame *core.InputFrame) {
	if !a.IsDirection() {
		return
	}
	for _, other := range directions {
		if other == a {
			continue
		}
		if _, ok := h.held[other]; ok {
			delete(h.held, other)
			frame.Release(other)
		}
	}
	h.held[a] = h.window
	frame.Set(a)
}

// Advance ages the held directions by dt and releases the expired ones.
func (h *holdTracker) Advance(dt time.Duration, frame *core.InputFrame) {
	for _, a := range directions {
		left, ok := h.held[a]
		if !ok {
			continue
		}
		left -= dt
		if left <= 0 {
			delete(h.held, a)
			frame.Release(a)
			continue
		}
		h.held[a] = left
	}
}

// ReleaseAll releases every held direction.
func (h *holdTracker) ReleaseAll(frame *core.InputFrame) {
	for _, a := range directions {
		if _, ok := h.held[a]; ok {
			delete(h.held, a)
			frame.Release(a)
		}
	}
}

// Held reports whether a is currently held.
func (h *holdTracker) Held(a core.Action) bool {
	_, ok := h.held[a]
	return ok
}
