package bomberman

import (
	"math"
	"time"

	"github.com/vovakirdan/tui-bomber/internal/core"
)

// EntityView is the read-only state of one entity for the display adapter.
type EntityView struct {
	ID         EntityID
	Cell       core.Point
	Render     core.Vec // interpolated position in cell units
	Life       LifeState
	Heading    Direction
	Facing     Direction
	Frame      int
	Invincible bool
}

// BombView is the read-only state of one bomb.
type BombView struct {
	ID       int
	Pos      core.Point
	State    BombState
	Frame    int
	FuseLeft time.Duration
}

// Snapshot is a value copy of everything the display adapter draws.
// It is regenerated every frame and never aliases session state.
type Snapshot struct {
	Frame   uint64
	Now     time.Duration
	Cols    int
	Rows    int
	Cells   []CellKind // row-major
	Door    core.Point
	HasDoor bool

	DoorExposed  bool
	DoorRevealed bool

	Character EntityView
	Enemies   []EntityView
	Bombs     []BombView
	Blast     []BlastCell // explosion overlay of every exploding bomb

	HUD HUD
}

// Cell returns the terrain at (x, y) from the snapshot.
func (snap *Snapshot) Cell(x, y int) CellKind {
	if x < 0 || y < 0 || x >= snap.Cols || y >= snap.Rows {
		return CellOutOfBounds
	}
	return snap.Cells[y*snap.Cols+x]
}

// Snapshot returns the current state for rendering.
func (s *Session) Snapshot() Snapshot {
	now := s.clock.Now()
	door, hasDoor := s.grid.Door()
	c := s.character

	snap := Snapshot{
		Frame:        s.clock.Frame(),
		Now:          now,
		Cols:         s.grid.Cols(),
		Rows:         s.grid.Rows(),
		Cells:        s.grid.Cells(),
		Door:         door,
		HasDoor:      hasDoor,
		DoorExposed:  s.grid.DoorExposed(),
		DoorRevealed: s.grid.DoorRevealed(),
		Character: EntityView{
			ID:         c.ID,
			Cell:       c.Pos,
			Render:     c.RenderPos(now),
			Life:       c.Life,
			Heading:    c.Heading(),
			Facing:     c.Facing,
			Frame:      c.Frame(now),
			Invincible: c.invincible.Armed(),
		},
		Enemies: make([]EntityView, 0, len(s.enemies)),
		Bombs:   make([]BombView, 0, len(s.bombs)),
		HUD:     s.HUD(),
	}

	for _, e := range s.enemies {
		snap.Enemies = append(snap.Enemies, EntityView{
			ID:      e.ID,
			Cell:    e.Pos,
			Render:  e.RenderPos(now),
			Life:    e.Life,
			Heading: e.Heading(),
			Facing:  e.Facing,
			Frame:   e.Frame(now),
		})
	}
	for _, b := range s.bombs {
		snap.Bombs = append(snap.Bombs, BombView{
			ID:       b.ID,
			Pos:      b.Pos,
			State:    b.State,
			Frame:    b.Frame(now),
			FuseLeft: b.FuseLeft(now),
		})
		if b.State == BombExploding {
			snap.Blast = append(snap.Blast, b.Blast...)
		}
	}
	return snap
}

// Hash returns a simple hash of the snapshot for determinism testing.
func (snap *Snapshot) Hash() uint64 {
	h := snap.Frame
	h = h*31 + uint64(snap.Now)            //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.Cols*snap.Rows) //#nosec G115 -- hash computation
	for _, k := range snap.Cells {
		h = h*31 + uint64(k)
	}
	h = h*31 + boolBit(snap.DoorExposed)
	h = h*31 + boolBit(snap.DoorRevealed)

	h = hashEntity(h, snap.Character)
	for _, e := range snap.Enemies {
		h = hashEntity(h, e)
	}
	for _, b := range snap.Bombs {
		h = h*31 + uint64(b.ID)    //#nosec G115 -- hash computation
		h = h*31 + uint64(b.Pos.X) //#nosec G115 -- hash computation
		h = h*31 + uint64(b.Pos.Y) //#nosec G115 -- hash computation
		h = h*31 + uint64(b.State)
		h = h*31 + uint64(b.Frame)    //#nosec G115 -- hash computation
		h = h*31 + uint64(b.FuseLeft) //#nosec G115 -- hash computation
	}
	for _, c := range snap.Blast {
		h = h*31 + uint64(c.Pos.X) //#nosec G115 -- hash computation
		h = h*31 + uint64(c.Pos.Y) //#nosec G115 -- hash computation
		h = h*31 + uint64(c.Part)
	}

	h = h*31 + uint64(snap.HUD.Lives)    //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.HUD.Score)    //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.HUD.TimeLeft) //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.HUD.Level)    //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.HUD.Phase)
	h = h*31 + boolBit(snap.HUD.Paused)
	return h
}

func hashEntity(h uint64, e EntityView) uint64 {
	h = h*31 + uint64(e.ID)     //#nosec G115 -- hash computation
	h = h*31 + uint64(e.Cell.X) //#nosec G115 -- hash computation
	h = h*31 + uint64(e.Cell.Y) //#nosec G115 -- hash computation
	h = h*31 + math.Float64bits(e.Render.X)
	h = h*31 + math.Float64bits(e.Render.Y)
	h = h*31 + uint64(e.Life)
	h = h*31 + uint64(e.Heading)
	h = h*31 + uint64(e.Frame) //#nosec G115 -- hash computation
	h = h*31 + boolBit(e.Invincible)
	return h
}

func boolBit(b bool) uint64 {
	if b {
		return 1
	}
	return 0
}
