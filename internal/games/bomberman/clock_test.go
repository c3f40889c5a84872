package bomberman

import (
	"testing"
	"time"
)

func TestClockAdvance(t *testing.T) {
	var c Clock

	if got := c.Advance(0); got != 0 || c.Frame() != 0 {
		t.Errorf("Advance(0) = %d at frame %d, expected no-op", got, c.Frame())
	}

	seconds := 0
	for range 20 {
		seconds += c.Advance(50 * time.Millisecond)
	}
	if seconds != 1 {
		t.Errorf("20 x 50ms elapsed %d seconds, expected 1", seconds)
	}
	if c.Now() != time.Second {
		t.Errorf("Now() = %v, expected 1s", c.Now())
	}
	if c.Frame() != 20 {
		t.Errorf("Frame() = %d, expected 20", c.Frame())
	}
}

func TestClockCapsFrameDelta(t *testing.T) {
	var c Clock
	c.Advance(5 * time.Second)

	if c.Now() != MaxFrameDelta {
		t.Errorf("Now() = %v after a stalled frame, expected %v", c.Now(), MaxFrameDelta)
	}
}

func TestTimer(t *testing.T) {
	var tm Timer
	if tm.Done(time.Hour) {
		t.Error("unarmed timer should never be done")
	}

	tm.Arm(100*time.Millisecond, 300*time.Millisecond)
	tests := []struct {
		now      time.Duration
		done     bool
		progress float64
	}{
		{100 * time.Millisecond, false, 0},
		{250 * time.Millisecond, false, 0.5},
		{400 * time.Millisecond, true, 1},
		{900 * time.Millisecond, true, 1},
	}
	for _, tt := range tests {
		if got := tm.Done(tt.now); got != tt.done {
			t.Errorf("Done(%v) = %v, expected %v", tt.now, got, tt.done)
		}
		if got := tm.Progress(tt.now); got != tt.progress {
			t.Errorf("Progress(%v) = %v, expected %v", tt.now, got, tt.progress)
		}
	}
}

func TestTimerSuspendResume(t *testing.T) {
	var tm Timer
	tm.Arm(0, time.Second)

	if !tm.Suspend(400 * time.Millisecond) {
		t.Fatal("Suspend() on a running timer should return true")
	}
	if tm.Suspend(500 * time.Millisecond) {
		t.Error("second Suspend() should return false")
	}
	if tm.Done(10 * time.Second) {
		t.Error("suspended timer should not fire")
	}
	if got := tm.Remaining(10 * time.Second); got != 600*time.Millisecond {
		t.Errorf("Remaining() while suspended = %v, expected 600ms", got)
	}

	if !tm.Resume(2 * time.Second) {
		t.Fatal("Resume() on a suspended timer should return true")
	}
	if tm.Done(2500 * time.Millisecond) {
		t.Error("timer fired early after resume")
	}
	if !tm.Done(2600 * time.Millisecond) {
		t.Error("timer should fire 600ms after resume")
	}

	var idle Timer
	if idle.Suspend(0) || idle.Resume(0) {
		t.Error("unarmed timer should not suspend or resume")
	}
}

func TestTimerFrame(t *testing.T) {
	var tm Timer
	tm.Arm(0, 0)

	tests := []struct {
		now  time.Duration
		loop bool
		want int
	}{
		{0, true, 0},
		{250 * time.Millisecond, true, 2},
		{450 * time.Millisecond, true, 0},
		{450 * time.Millisecond, false, 3},
		{5 * time.Second, false, 3},
	}
	for _, tt := range tests {
		if got := tm.Frame(tt.now, 100*time.Millisecond, 4, tt.loop); got != tt.want {
			t.Errorf("Frame(%v, loop=%v) = %d, expected %d", tt.now, tt.loop, got, tt.want)
		}
	}
}
