package bomberman

import (
	"time"

	"github.com/vovakirdan/tui-bomber/internal/config"
	"github.com/vovakirdan/tui-bomber/internal/core"
)

// Character is the player-controlled entity.
type Character struct {
	Entity

	cfg   config.PlayerConfig
	spawn core.Point

	held     Direction // direction key currently held, DirNone if none
	lastMove time.Duration
	hasMoved bool

	invincible Timer
	respawn    Timer
}

func newCharacter(cfg config.PlayerConfig, spawn core.Point, now time.Duration) *Character {
	return &Character{
		Entity: newEntity(PlayerID, spawn, now),
		cfg:    cfg,
		spawn:  spawn,
	}
}

// Held returns the direction key currently held.
func (c *Character) Held() Direction {
	return c.held
}

// Invincible reports whether damage is ignored right now.
// A dying character cannot be hit again.
func (c *Character) Invincible() bool {
	return c.Life != Alive || c.invincible.Armed()
}

// press records a held direction and tries to start a step.
func (c *Character) press(now time.Duration, dir Direction, b board) error {
	if c.Life != Alive {
		return rejectf("character is %s", c.Life)
	}
	c.held = dir
	if c.MoveState() == Moving {
		// Picked up when the current step completes.
		return nil
	}
	return c.tryMove(now, dir, b)
}

// release clears the held direction if it matches.
func (c *Character) release(dir Direction) {
	if c.held == dir {
		c.held = DirNone
	}
}

func (c *Character) tryMove(now time.Duration, dir Direction, b board) error {
	if c.hasMoved && now-c.lastMove < c.cfg.Debounce() {
		return rejectf("move debounced")
	}
	c.Facing = dir
	dx, dy := dir.Delta()
	target := c.Pos.Add(dx, dy)
	if !b.walkable(target, false) {
		return rejectf("cell %v is blocked", target)
	}
	c.startStep(now, dir, c.cfg.Step())
	c.lastMove = now
	c.hasMoved = true
	return nil
}

// update advances movement and invincibility. Returns true when a step committed.
func (c *Character) update(now time.Duration, b board) bool {
	if !c.active || c.Life != Alive {
		return false
	}
	if c.invincible.Done(now) {
		c.invincible.Disarm()
	}

	committed := c.advanceStep(now)
	if c.MoveState() == Idle && c.held != DirNone {
		_ = c.tryMove(now, c.held, b) // rejected moves retry next frame
	}
	return committed
}

// die starts the death animation. The session owns lives and respawn.
func (c *Character) die(now time.Duration) error {
	if err := c.beginDying(now, c.cfg.Death()); err != nil {
		return err
	}
	c.held = DirNone
	c.invincible.Disarm()
	return nil
}

// ResetPosition returns the character to its spawn cell alive, idle and
// invincible for the configured grace period.
func (c *Character) ResetPosition(now time.Duration) {
	c.Pos = c.spawn
	c.Life = Alive
	c.Facing = DirDown
	c.held = DirNone
	c.cancelStep()
	c.death.Disarm()
	c.respawn.Disarm()
	c.anim.Arm(now, 0)
	c.invincible.Disarm()
	if c.cfg.Invincible() > 0 {
		c.invincible.Arm(now, c.cfg.Invincible())
	}
}

// Frame returns the sprite frame index for the display adapter.
func (c *Character) Frame(now time.Duration) int {
	switch {
	case c.Life != Alive:
		return c.death.Frame(now, c.cfg.Death()/time.Duration(c.cfg.DeathFrames), c.cfg.DeathFrames, false)
	case c.MoveState() == Moving:
		return c.anim.Frame(now, c.cfg.WalkFrame(), c.cfg.WalkFrames, true)
	default:
		return 0
	}
}

func (c *Character) suspend(now time.Duration) {
	c.Entity.suspend(now, &c.invincible, &c.respawn)
}

func (c *Character) resume(now time.Duration) {
	c.Entity.resume(now, &c.invincible, &c.respawn)
}
