package bomberman

import "time"

// MaxFrameDelta caps a single frame so a stalled terminal does not make the
// simulation jump several steps at once.
const MaxFrameDelta = 100 * time.Millisecond

// Clock is the session's simulation clock. It only advances while the level
// is running, so every timer measured against it freezes during a pause.
type Clock struct {
	now    time.Duration
	frame  uint64
	second time.Duration // accumulator for the 1-second countdown
}

// Now returns the current simulation time.
func (c *Clock) Now() time.Duration {
	return c.now
}

// Frame returns the number of frames advanced since the level started.
func (c *Clock) Frame() uint64 {
	return c.frame
}

// Advance moves the clock forward by dt and returns how many whole seconds
// of countdown elapsed during this frame.
func (c *Clock) Advance(dt time.Duration) int {
	if dt <= 0 {
		return 0
	}
	if dt > MaxFrameDelta {
		dt = MaxFrameDelta
	}
	c.now += dt
	c.frame++
	c.second += dt

	seconds := 0
	for c.second >= time.Second {
		c.second -= time.Second
		seconds++
	}
	return seconds
}

// Reset rewinds the clock for a new level.
func (c *Clock) Reset() {
	*c = Clock{}
}

// Timer is a countdown measured on the session clock.
// A zero Duration makes an open-ended timer used for looping animations.
type Timer struct {
	Start    time.Duration
	Duration time.Duration

	armed     bool
	suspended bool
	elapsed   time.Duration // progress frozen by Suspend
}

// Arm starts the timer at now.
func (t *Timer) Arm(now, d time.Duration) {
	*t = Timer{Start: now, Duration: d, armed: true}
}

// Disarm stops the timer.
func (t *Timer) Disarm() {
	*t = Timer{}
}

// Armed reports whether the timer is running or suspended.
func (t *Timer) Armed() bool {
	return t.armed
}

// Suspended reports whether the timer is frozen by a pause.
func (t *Timer) Suspended() bool {
	return t.suspended
}

// Elapsed returns how long the timer has been running.
func (t *Timer) Elapsed(now time.Duration) time.Duration {
	if !t.armed {
		return 0
	}
	if t.suspended {
		return t.elapsed
	}
	return max(now-t.Start, 0)
}

// Remaining returns the time left before the timer fires.
func (t *Timer) Remaining(now time.Duration) time.Duration {
	if !t.armed || t.Duration == 0 {
		return 0
	}
	return max(t.Duration-t.Elapsed(now), 0)
}

// Progress returns completion in [0, 1].
func (t *Timer) Progress(now time.Duration) float64 {
	if !t.armed || t.Duration <= 0 {
		return 0
	}
	p := float64(t.Elapsed(now)) / float64(t.Duration)
	if p > 1 {
		return 1
	}
	return p
}

// Done reports whether a running timer has reached its duration.
// Suspended and open-ended timers are never done.
func (t *Timer) Done(now time.Duration) bool {
	return t.armed && !t.suspended && t.Duration > 0 && t.Elapsed(now) >= t.Duration
}

// Frame maps elapsed time to an animation frame index.
// Looping timers wrap; bounded ones stop on the last frame.
func (t *Timer) Frame(now, frameDelay time.Duration, frames int, loop bool) int {
	if !t.armed || frames <= 0 || frameDelay <= 0 {
		return 0
	}
	f := int(t.Elapsed(now) / frameDelay)
	if loop {
		return f % frames
	}
	return min(f, frames-1)
}

// Suspend freezes the timer's progress. Returns false if it was not running.
func (t *Timer) Suspend(now time.Duration) bool {
	if !t.armed || t.suspended {
		return false
	}
	t.elapsed = t.Elapsed(now)
	t.suspended = true
	return true
}

// Resume continues a suspended timer from where it stopped.
func (t *Timer) Resume(now time.Duration) bool {
	if !t.armed || !t.suspended {
		return false
	}
	t.Start = now - t.elapsed
	t.suspended = false
	t.elapsed = 0
	return true
}
