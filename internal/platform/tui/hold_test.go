package tui

import (
	"testing"
	"time"

	"github.com/vovakirdan/tui-bomber/internal/core"
)

func TestHoldTrackerReleasesAfterWindow(t *testing.T) {
	h := newHoldTracker(100 * time.Millisecond)
	frame := core.NewInputFrame()

	h.Press(core.ActionRight, &frame)
	if !frame.Has(core.ActionRight) {
		t.Fatal("Press() did not set the action")
	}
	frame.Clear()

	h.Advance(60*time.Millisecond, &frame)
	if frame.WasReleased(core.ActionRight) {
		t.Error("released before the window elapsed")
	}

	// A key repeat restarts the window
	h.Press(core.ActionRight, &frame)
	frame.Clear()
	h.Advance(60*time.Millisecond, &frame)
	if frame.WasReleased(core.ActionRight) || !h.Held(core.ActionRight) {
		t.Error("repeat did not extend the hold")
	}

	h.Advance(50*time.Millisecond, &frame)
	if !frame.WasReleased(core.ActionRight) {
		t.Error("WasReleased(Right) = false after the window, expected true")
	}
	if h.Held(core.ActionRight) {
		t.Error("Held(Right) = true after release")
	}
}

func TestHoldTrackerNewDirectionReleasesOthers(t *testing.T) {
	h := newHoldTracker(time.Second)
	frame := core.NewInputFrame()

	h.Press(core.ActionUp, &frame)
	frame.Clear()
	h.Press(core.ActionLeft, &frame)

	if !frame.WasReleased(core.ActionUp) {
		t.Error("WasReleased(Up) = false, expected true")
	}
	if !frame.Has(core.ActionLeft) || !h.Held(core.ActionLeft) {
		t.Error("Left is not held after pressing it")
	}
	if h.Held(core.ActionUp) {
		t.Error("Up is still held")
	}
}

func TestHoldTrackerIgnoresNonDirections(t *testing.T) {
	h := newHoldTracker(time.Second)
	frame := core.NewInputFrame()

	h.Press(core.ActionBomb, &frame)
	if !frame.Empty() {
		t.Error("Press(Bomb) changed the frame")
	}
	if h.Held(core.ActionBomb) {
		t.Error("Held(Bomb) = true, expected false")
	}
}

func TestHoldTrackerReleaseAll(t *testing.T) {
	h := newHoldTracker(time.Second)
	frame := core.NewInputFrame()

	h.Press(core.ActionDown, &frame)
	frame.Clear()
	h.ReleaseAll(&frame)

	if !frame.WasReleased(core.ActionDown) {
		t.Error("WasReleased(Down) = false, expected true")
	}
	frame.Clear()
	h.ReleaseAll(&frame)
	if !frame.Empty() {
		t.Error("second ReleaseAll() released again")
	}
}
