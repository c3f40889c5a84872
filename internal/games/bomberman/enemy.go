package bomberman

import (
	"math/rand"
	"time"

	"github.com/vovakirdan/tui-bomber/internal/config"
	"github.com/vovakirdan/tui-bomber/internal/core"
)

// Enemy roams the grid with a random walk.
type Enemy struct {
	Entity

	cfg   config.EnemyConfig
	think Timer // retry delay after a rejected move
	wake  Timer // start delay at level start
}

func newEnemy(id EntityID, pos core.Point, cfg config.EnemyConfig, now time.Duration) *Enemy {
	e := &Enemy{
		Entity: newEntity(id, pos, now),
		cfg:    cfg,
	}
	if cfg.StartDelay() > 0 {
		e.wake.Arm(now, cfg.StartDelay())
	}
	return e
}

// update advances the random walk. Returns true when a step committed.
func (e *Enemy) update(now time.Duration, rng *rand.Rand, b board) bool {
	if !e.active || e.Life != Alive {
		return false
	}
	if e.wake.Armed() {
		if !e.wake.Done(now) {
			return false
		}
		e.wake.Disarm()
	}

	committed := e.advanceStep(now)
	if e.MoveState() == Moving {
		return committed
	}
	if e.think.Armed() {
		if !e.think.Done(now) {
			return committed
		}
		e.think.Disarm()
	}

	dir := Directions[rng.Intn(len(Directions))]
	dx, dy := dir.Delta()
	if b.walkable(e.Pos.Add(dx, dy), true) {
		e.startStep(now, dir, e.cfg.Step())
	} else if e.cfg.Think() > 0 {
		e.think.Arm(now, e.cfg.Think())
	}
	return committed
}

// kill starts the death animation; killing a dying or dead enemy is a no-op.
func (e *Enemy) kill(now time.Duration) error {
	if err := e.beginDying(now, e.cfg.Death()); err != nil {
		return err
	}
	e.think.Disarm()
	e.wake.Disarm()
	return nil
}

// finishDying moves a dying enemy to Dead once its animation has played.
func (e *Enemy) finishDying(now time.Duration) bool {
	if e.Life != Dying || !e.death.Done(now) {
		return false
	}
	e.Life = Dead
	e.active = false
	return true
}

// Frame returns the sprite frame index for the display adapter.
func (e *Enemy) Frame(now time.Duration) int {
	if e.Life != Alive {
		return e.death.Frame(now, e.cfg.Death()/time.Duration(e.cfg.DeathFrames), e.cfg.DeathFrames, false)
	}
	return e.anim.Frame(now, e.cfg.WalkFrame(), e.cfg.WalkFrames, true)
}

func (e *Enemy) suspend(now time.Duration) {
	e.Entity.suspend(now, &e.think, &e.wake)
}

func (e *Enemy) resume(now time.Duration) {
	e.Entity.resume(now, &e.think, &e.wake)
}
