package bomberman

import (
	"fmt"
	"math/rand"

	"github.com/vovakirdan/tui-bomber/internal/core"
)

// CellKind is the terrain of one grid cell.
type CellKind uint8

const (
	CellFloor CellKind = iota
	CellDurableWall
	CellBreakable
	CellDoor        // door exposed by a blast; see Grid.DoorRevealed
	CellOutOfBounds // returned for coordinates outside the grid
)

func (k CellKind) String() string {
	switch k {
	case CellFloor:
		return "Floor"
	case CellDurableWall:
		return "DurableWall"
	case CellBreakable:
		return "Breakable"
	case CellDoor:
		return "Door"
	case CellOutOfBounds:
		return "OutOfBounds"
	default:
		return "Unknown"
	}
}

// SpawnCell is where the character starts every level.
var SpawnCell = core.Pt(1, 1)

// spawnRegion must stay open so the character can always escape its first bomb.
var spawnRegion = [...]core.Point{core.Pt(1, 1), core.Pt(2, 1), core.Pt(1, 2)}

// IsSpawnCell reports whether p belongs to the character spawn region.
func IsSpawnCell(p core.Point) bool {
	for _, s := range spawnRegion {
		if s == p {
			return true
		}
	}
	return false
}

// Grid is the terrain of one level. X is the column, Y is the row.
type Grid struct {
	cols, rows int
	cells      []CellKind

	door     core.Point
	hasDoor  bool
	revealed bool
}

// NewGrid lays out durable walls on the border and on every cell whose
// coordinates are both even. Everything else starts as floor.
func NewGrid(rows, cols int) (*Grid, error) {
	if rows < 5 || cols < 5 {
		return nil, &ConfigError{Field: "grid", Reason: fmt.Sprintf("%dx%d is smaller than 5x5", cols, rows)}
	}

	g := &Grid{
		cols:  cols,
		rows:  rows,
		cells: make([]CellKind, rows*cols),
	}
	for y := range rows {
		for x := range cols {
			if isDurable(x, y, cols, rows) {
				g.cells[y*cols+x] = CellDurableWall
			}
		}
	}
	return g, nil
}

func isDurable(x, y, cols, rows int) bool {
	border := x == 0 || y == 0 || x == cols-1 || y == rows-1
	return border || (x%2 == 0 && y%2 == 0)
}

// Rows returns the grid height.
func (g *Grid) Rows() int { return g.rows }

// Cols returns the grid width.
func (g *Grid) Cols() int { return g.cols }

// InBounds reports whether p lies inside the grid.
func (g *Grid) InBounds(p core.Point) bool {
	return p.X >= 0 && p.Y >= 0 && p.X < g.cols && p.Y < g.rows
}

// Cell returns the terrain at p, or CellOutOfBounds.
func (g *Grid) Cell(p core.Point) CellKind {
	if !g.InBounds(p) {
		return CellOutOfBounds
	}
	return g.cells[p.Y*g.cols+p.X]
}

func (g *Grid) set(p core.Point, k CellKind) {
	if g.InBounds(p) {
		g.cells[p.Y*g.cols+p.X] = k
	}
}

// OpenCells returns every floor cell in row-major order, skipping the spawn region.
func (g *Grid) OpenCells() []core.Point {
	var open []core.Point
	for y := range g.rows {
		for x := range g.cols {
			p := core.Pt(x, y)
			if g.Cell(p) == CellFloor && !IsSpawnCell(p) {
				open = append(open, p)
			}
		}
	}
	return open
}

// PlaceBreakables marks count distinct open cells as breakable and hides the
// door under the placement at doorIndex. Placement is rejection sampling with
// a bounded number of draws; leftovers are filled from the remaining pool so
// the call always terminates.
func (g *Grid) PlaceBreakables(rng *rand.Rand, count, doorIndex int) ([]core.Point, error) {
	pool := g.OpenCells()
	if count > len(pool) {
		return nil, &ConfigError{
			Field:  "grid.breakables",
			Reason: fmt.Sprintf("%d breakables requested but only %d open cells", count, len(pool)),
		}
	}
	if count > 0 && (doorIndex < 0 || doorIndex >= count) {
		return nil, &ConfigError{
			Field:  "grid.door_index",
			Reason: fmt.Sprintf("door index %d outside %d placements", doorIndex, count),
		}
	}

	chosen := make(map[core.Point]bool, count)
	placed := make([]core.Point, 0, count)

	for attempts := count * 16; len(placed) < count && attempts > 0; attempts-- {
		p := core.Pt(rng.Intn(g.cols), rng.Intn(g.rows))
		if chosen[p] || IsSpawnCell(p) || g.Cell(p) != CellFloor {
			continue
		}
		chosen[p] = true
		placed = append(placed, p)
	}
	if len(placed) < count {
		rng.Shuffle(len(pool), func(i, j int) { pool[i], pool[j] = pool[j], pool[i] })
		for _, p := range pool {
			if len(placed) == count {
				break
			}
			if !chosen[p] {
				chosen[p] = true
				placed = append(placed, p)
			}
		}
	}

	for _, p := range placed {
		g.set(p, CellBreakable)
	}
	g.hasDoor = count > 0
	g.revealed = false
	if g.hasDoor {
		g.door = placed[doorIndex]
	}
	return placed, nil
}

// Break turns a breakable cell into floor, or into the door cell if it hides
// the door. Breaking anything else is rejected without changing the grid.
func (g *Grid) Break(p core.Point) (CellKind, error) {
	switch k := g.Cell(p); k {
	case CellBreakable:
		next := CellFloor
		if g.hasDoor && p == g.door {
			next = CellDoor
		}
		g.set(p, next)
		return next, nil
	case CellFloor, CellDoor:
		return k, ErrDoubleTransition
	default:
		return k, rejectf("cannot break %s at %v", k, p)
	}
}

// Door returns the door cell, if the level has one.
func (g *Grid) Door() (core.Point, bool) {
	return g.door, g.hasDoor
}

// DoorExposed reports whether the breakable hiding the door is gone.
func (g *Grid) DoorExposed() bool {
	return g.hasDoor && g.Cell(g.door) == CellDoor
}

// DoorRevealed reports whether the door is open for the character.
func (g *Grid) DoorRevealed() bool {
	return g.revealed
}

// RevealDoor opens the door. Returns false if it was already open or absent.
func (g *Grid) RevealDoor() bool {
	if !g.hasDoor || g.revealed {
		return false
	}
	g.revealed = true
	return true
}

// Cells returns a copy of the terrain in row-major order.
func (g *Grid) Cells() []CellKind {
	out := make([]CellKind, len(g.cells))
	copy(out, g.cells)
	return out
}
