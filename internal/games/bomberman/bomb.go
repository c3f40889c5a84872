package bomberman

import (
	"time"

	"github.com/vovakirdan/tui-bomber/internal/config"
	"github.com/vovakirdan/tui-bomber/internal/core"
)

// BombState is the bomb life cycle: Ticking -> Exploding -> Removed.
type BombState uint8

const (
	BombTicking BombState = iota
	BombExploding
	BombRemoved
)

func (s BombState) String() string {
	switch s {
	case BombTicking:
		return "ticking"
	case BombExploding:
		return "exploding"
	default:
		return "removed"
	}
}

// BlastPart tells the display adapter which flame sprite a blast cell uses.
type BlastPart uint8

const (
	BlastCenter BlastPart = iota
	BlastArm
	BlastEnd
)

// BlastCell is one cell of a blast set.
type BlastCell struct {
	Pos  core.Point
	Part BlastPart
	Dir  Direction // DirNone for the center
}

// Bomb is a placed bomb.
type Bomb struct {
	ID    int
	Pos   core.Point
	Owner EntityID
	Range int
	State BombState
	Blast []BlastCell // computed on detonation

	cfg       config.BombConfig
	fuse      Timer
	explosion Timer

	active    bool
	suspended bool
}

func newBomb(id int, pos core.Point, owner EntityID, cfg config.BombConfig, now time.Duration) *Bomb {
	b := &Bomb{
		ID:     id,
		Pos:    pos,
		Owner:  owner,
		Range:  cfg.Range,
		State:  BombTicking,
		cfg:    cfg,
		active: true,
	}
	b.fuse.Arm(now, cfg.Fuse())
	return b
}

// Live reports whether the bomb still occupies its cell.
func (b *Bomb) Live() bool {
	return b.State != BombRemoved
}

// FuseLeft returns the time until detonation.
func (b *Bomb) FuseLeft(now time.Duration) time.Duration {
	if b.State != BombTicking {
		return 0
	}
	return b.fuse.Remaining(now)
}

// Frame returns the sprite frame: ticking frames loop, explosion frames play once.
func (b *Bomb) Frame(now time.Duration) int {
	switch b.State {
	case BombTicking:
		return b.fuse.Frame(now, b.cfg.TickFrame(), b.cfg.TickFrames, true)
	case BombExploding:
		return b.explosion.Frame(now, b.cfg.ExplosionFrame(), b.cfg.ExplosionFrames, false)
	default:
		return 0
	}
}

// ignite moves a ticking bomb into Exploding. The state check is the
// re-entrancy guard: a bomb detonates at most once.
func (b *Bomb) ignite(now time.Duration, g *Grid) error {
	if b.State != BombTicking {
		return ErrDoubleTransition
	}
	b.State = BombExploding
	b.fuse.Disarm()
	b.explosion.Arm(now, b.cfg.Explosion())
	b.Blast = BlastSet(g, b.Pos, b.Range)
	return nil
}

// finish moves an exploding bomb to Removed once its animation has played.
func (b *Bomb) finish(now time.Duration) bool {
	if !b.active || b.State != BombExploding || !b.explosion.Done(now) {
		return false
	}
	b.State = BombRemoved
	b.explosion.Disarm()
	b.active = false
	return true
}

func (b *Bomb) suspend(now time.Duration) {
	if !b.active {
		return
	}
	b.fuse.Suspend(now)
	b.explosion.Suspend(now)
	b.active = false
	b.suspended = true
}

func (b *Bomb) resume(now time.Duration) {
	if !b.suspended {
		return
	}
	b.suspended = false
	if b.State == BombRemoved {
		return
	}
	b.fuse.Resume(now)
	b.explosion.Resume(now)
	b.active = true
}

// BlastSet computes the cells hit by a bomb at origin. Each arm walks outward
// up to rng cells; a durable wall (or the grid edge) stops it before the wall,
// a breakable is included as the last cell of the arm.
func BlastSet(g *Grid, origin core.Point, rng int) []BlastCell {
	cells := []BlastCell{{Pos: origin, Part: BlastCenter}}
	for _, dir := range Directions {
		dx, dy := dir.Delta()
		first := len(cells)
		for i := 1; i <= rng; i++ {
			p := origin.Add(dx*i, dy*i)
			k := g.Cell(p)
			if k == CellDurableWall || k == CellOutOfBounds {
				break
			}
			cells = append(cells, BlastCell{Pos: p, Part: BlastArm, Dir: dir})
			if k == CellBreakable {
				break
			}
		}
		if len(cells) > first {
			cells[len(cells)-1].Part = BlastEnd
		}
	}
	return cells
}
