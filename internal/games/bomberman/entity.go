package bomberman

import (
	"time"

	"github.com/vovakirdan/tui-bomber/internal/core"
)

// Direction is one of the four axis directions.
type Direction uint8

const (
	DirNone Direction = iota
	DirUp
	DirDown
	DirLeft
	DirRight
)

// Directions lists the four axis directions in scan order.
var Directions = [4]Direction{DirUp, DirDown, DirLeft, DirRight}

// Delta returns the grid offset of one step in this direction.
func (d Direction) Delta() (dx, dy int) {
	switch d {
	case DirUp:
		return 0, -1
	case DirDown:
		return 0, 1
	case DirLeft:
		return -1, 0
	case DirRight:
		return 1, 0
	default:
		return 0, 0
	}
}

// Valid reports whether d is one of the four axis directions.
func (d Direction) Valid() bool {
	return d >= DirUp && d <= DirRight
}

func (d Direction) String() string {
	switch d {
	case DirUp:
		return "up"
	case DirDown:
		return "down"
	case DirLeft:
		return "left"
	case DirRight:
		return "right"
	default:
		return "none"
	}
}

// DirectionOf maps a movement action to its direction.
func DirectionOf(a core.Action) Direction {
	switch a {
	case core.ActionUp:
		return DirUp
	case core.ActionDown:
		return DirDown
	case core.ActionLeft:
		return DirLeft
	case core.ActionRight:
		return DirRight
	default:
		return DirNone
	}
}

// EntityID identifies the character or an enemy within a session.
type EntityID int

// PlayerID is the character's id; enemies are numbered after it.
const PlayerID EntityID = 1

// LifeState is the life cycle of an entity.
type LifeState uint8

const (
	Alive LifeState = iota
	Dying
	Dead
)

func (l LifeState) String() string {
	switch l {
	case Alive:
		return "alive"
	case Dying:
		return "dying"
	default:
		return "dead"
	}
}

// MoveState is Idle or Moving.
type MoveState uint8

const (
	Idle MoveState = iota
	Moving
)

// board answers passability questions for movement.
type board interface {
	walkable(p core.Point, enemy bool) bool
}

// Entity is the state shared by the character and enemies.
// Pos is authoritative and only changes when a step completes.
type Entity struct {
	ID     EntityID
	Pos    core.Point
	Facing Direction
	Life   LifeState

	heading Direction // DirNone while idle
	step    Timer
	death   Timer
	anim    Timer // open-ended walk cycle

	active    bool // advanced by the frame loop
	suspended bool // frozen by a pause, re-armed on resume
}

func newEntity(id EntityID, pos core.Point, now time.Duration) Entity {
	e := Entity{ID: id, Pos: pos, Facing: DirDown, active: true}
	e.anim.Arm(now, 0)
	return e
}

// MoveState returns whether the entity is between cells.
func (e *Entity) MoveState() MoveState {
	if e.heading == DirNone {
		return Idle
	}
	return Moving
}

// Heading returns the direction of the step in progress, or DirNone.
func (e *Entity) Heading() Direction {
	return e.heading
}

// Active reports whether the frame loop currently advances this entity.
func (e *Entity) Active() bool {
	return e.active
}

// Target returns the cell the entity is stepping into, or Pos when idle.
func (e *Entity) Target() core.Point {
	dx, dy := e.heading.Delta()
	return e.Pos.Add(dx, dy)
}

// RenderPos returns the interpolated position in cell units.
func (e *Entity) RenderPos(now time.Duration) core.Vec {
	v := core.VecOf(e.Pos)
	if e.heading == DirNone {
		return v
	}
	p := e.step.Progress(now)
	dx, dy := e.heading.Delta()
	return core.Vec{X: v.X + float64(dx)*p, Y: v.Y + float64(dy)*p}
}

func (e *Entity) startStep(now time.Duration, dir Direction, d time.Duration) {
	e.heading = dir
	e.Facing = dir
	e.step.Arm(now, d)
}

// advanceStep commits the step once its duration has elapsed.
func (e *Entity) advanceStep(now time.Duration) bool {
	if e.heading == DirNone || !e.step.Done(now) {
		return false
	}
	e.Pos = e.Target()
	e.heading = DirNone
	e.step.Disarm()
	return true
}

func (e *Entity) cancelStep() {
	e.heading = DirNone
	e.step.Disarm()
}

// beginDying moves an alive entity into its death animation.
func (e *Entity) beginDying(now, d time.Duration) error {
	if e.Life != Alive {
		return ErrDoubleTransition
	}
	e.Life = Dying
	e.cancelStep()
	e.death.Arm(now, d)
	return nil
}

func (e *Entity) timers() []*Timer {
	return []*Timer{&e.step, &e.death, &e.anim}
}

// suspend freezes every in-flight timer and marks the entity inactive.
func (e *Entity) suspend(now time.Duration, extra ...*Timer) {
	if !e.active {
		return
	}
	for _, t := range append(e.timers(), extra...) {
		t.Suspend(now)
	}
	e.active = false
	e.suspended = true
}

// resume re-arms exactly what suspend froze. Dead entities stay inactive.
func (e *Entity) resume(now time.Duration, extra ...*Timer) {
	if !e.suspended {
		return
	}
	e.suspended = false
	if e.Life == Dead {
		return
	}
	for _, t := range append(e.timers(), extra...) {
		t.Resume(now)
	}
	e.active = true
}
