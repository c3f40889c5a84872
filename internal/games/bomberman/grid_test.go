package bomberman

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/vovakirdan/tui-bomber/internal/core"
)

func TestNewGridWalls(t *testing.T) {
	sizes := []struct{ rows, cols int }{
		{5, 5},
		{11, 13},
		{7, 15},
		{6, 8},
	}

	for _, sz := range sizes {
		g, err := NewGrid(sz.rows, sz.cols)
		if err != nil {
			t.Fatalf("NewGrid(%d, %d) error: %v", sz.rows, sz.cols, err)
		}
		for y := range sz.rows {
			for x := range sz.cols {
				border := x == 0 || y == 0 || x == sz.cols-1 || y == sz.rows-1
				pillar := x%2 == 0 && y%2 == 0
				want := CellFloor
				if border || pillar {
					want = CellDurableWall
				}
				if got := g.Cell(core.Pt(x, y)); got != want {
					t.Errorf("%dx%d: Cell(%d,%d) = %s, expected %s", sz.cols, sz.rows, x, y, got, want)
				}
			}
		}
	}
}

func TestNewGridTooSmall(t *testing.T) {
	_, err := NewGrid(4, 9)
	if !errors.Is(err, ErrConfiguration) {
		t.Errorf("NewGrid(4, 9) error = %v, expected configuration error", err)
	}
}

func TestGridOutOfBounds(t *testing.T) {
	g, _ := NewGrid(11, 13)

	for _, p := range []core.Point{core.Pt(-1, 0), core.Pt(0, -1), core.Pt(13, 5), core.Pt(5, 11)} {
		if got := g.Cell(p); got != CellOutOfBounds {
			t.Errorf("Cell(%v) = %s, expected out-of-bounds", p, got)
		}
	}
}

func TestOpenCellsSkipsSpawn(t *testing.T) {
	g, _ := NewGrid(11, 13)
	open := g.OpenCells()

	// 11x9 interior minus 20 pillars minus the spawn region
	if len(open) != 76 {
		t.Errorf("len(OpenCells()) = %d, expected 76", len(open))
	}
	for _, p := range open {
		if IsSpawnCell(p) {
			t.Errorf("OpenCells() contains spawn cell %v", p)
		}
	}
}

func TestPlaceBreakables(t *testing.T) {
	counts := []int{1, 10, 30, 60, 76}

	for _, count := range counts {
		g, _ := NewGrid(11, 13)
		rng := rand.New(rand.NewSource(int64(count)))

		placed, err := g.PlaceBreakables(rng, count, 0)
		if err != nil {
			t.Fatalf("PlaceBreakables(%d) error: %v", count, err)
		}
		if len(placed) != count {
			t.Errorf("PlaceBreakables(%d) placed %d", count, len(placed))
		}

		seen := make(map[core.Point]bool)
		for _, p := range placed {
			if seen[p] {
				t.Errorf("PlaceBreakables(%d) placed %v twice", count, p)
			}
			seen[p] = true
			if IsSpawnCell(p) {
				t.Errorf("PlaceBreakables(%d) placed spawn cell %v", count, p)
			}
			if x, y := p.X, p.Y; x%2 == 0 && y%2 == 0 {
				t.Errorf("PlaceBreakables(%d) placed on pillar %v", count, p)
			}
		}

		breakables := 0
		for _, k := range g.Cells() {
			if k == CellBreakable {
				breakables++
			}
		}
		if breakables != count {
			t.Errorf("grid has %d breakables, expected %d", breakables, count)
		}
	}
}

func TestPlaceBreakablesTooMany(t *testing.T) {
	g, _ := NewGrid(11, 13)
	before := g.Cells()

	_, err := g.PlaceBreakables(rand.New(rand.NewSource(1)), 77, 0)
	if !errors.Is(err, ErrConfiguration) {
		t.Fatalf("PlaceBreakables(77) error = %v, expected configuration error", err)
	}

	after := g.Cells()
	for i := range before {
		if before[i] != after[i] {
			t.Fatalf("failed placement changed cell %d", i)
		}
	}
}

func TestPlaceBreakablesDoorIndex(t *testing.T) {
	g, _ := NewGrid(11, 13)
	placed, err := g.PlaceBreakables(rand.New(rand.NewSource(3)), 10, 5)
	if err != nil {
		t.Fatalf("PlaceBreakables error: %v", err)
	}

	door, ok := g.Door()
	if !ok {
		t.Fatal("Door() reported no door")
	}
	if door != placed[5] {
		t.Errorf("Door() = %v, expected sixth placement %v", door, placed[5])
	}
	if g.DoorExposed() || g.DoorRevealed() {
		t.Error("door should start hidden")
	}

	if _, err := g.PlaceBreakables(rand.New(rand.NewSource(3)), 4, 4); !errors.Is(err, ErrConfiguration) {
		t.Errorf("door index outside placements: error = %v, expected configuration error", err)
	}
}

func TestBreak(t *testing.T) {
	g, _ := NewGrid(11, 13)
	placed, _ := g.PlaceBreakables(rand.New(rand.NewSource(9)), 8, 2)
	door, _ := g.Door()

	var plain core.Point
	for _, p := range placed {
		if p != door {
			plain = p
			break
		}
	}

	got, err := g.Break(plain)
	if err != nil || got != CellFloor {
		t.Errorf("Break(breakable) = %s, %v; expected floor, nil", got, err)
	}
	if _, err := g.Break(plain); !errors.Is(err, ErrDoubleTransition) {
		t.Errorf("Break(floor) error = %v, expected double transition", err)
	}

	got, err = g.Break(door)
	if err != nil || got != CellDoor {
		t.Errorf("Break(door cell) = %s, %v; expected door, nil", got, err)
	}
	if !g.DoorExposed() {
		t.Error("door should be exposed after its block breaks")
	}
	if g.DoorRevealed() {
		t.Error("breaking the block must not reveal the door by itself")
	}
	if _, err := g.Break(door); !errors.Is(err, ErrDoubleTransition) {
		t.Errorf("Break(door) error = %v, expected double transition", err)
	}

	if _, err := g.Break(core.Pt(0, 0)); !errors.Is(err, ErrInvalidPlacement) {
		t.Errorf("Break(wall) error = %v, expected invalid placement", err)
	}
	if g.Cell(core.Pt(0, 0)) != CellDurableWall {
		t.Error("Break(wall) changed the wall")
	}
}

func TestRevealDoor(t *testing.T) {
	g, _ := NewGrid(5, 5)
	if g.RevealDoor() {
		t.Error("RevealDoor() on a grid without door should return false")
	}

	g.PlaceBreakables(rand.New(rand.NewSource(1)), 3, 0)
	if !g.RevealDoor() {
		t.Error("first RevealDoor() should return true")
	}
	if g.RevealDoor() {
		t.Error("second RevealDoor() should return false")
	}
}

func TestSpawnEnemies(t *testing.T) {
	g, _ := NewGrid(11, 13)
	rng := rand.New(rand.NewSource(5))
	occupied := map[core.Point]bool{core.Pt(7, 1): true}

	spawns, err := SpawnEnemies(g, rng, 6, occupied)
	if err != nil {
		t.Fatalf("SpawnEnemies error: %v", err)
	}
	if len(spawns) != 6 {
		t.Fatalf("len(spawns) = %d, expected 6", len(spawns))
	}

	seen := make(map[core.Point]bool)
	for _, p := range spawns {
		if p == core.Pt(7, 1) {
			t.Errorf("SpawnEnemies reused occupied cell %v", p)
		}
		if seen[p] {
			t.Errorf("SpawnEnemies picked %v twice", p)
		}
		seen[p] = true
		if p.X < g.Cols()/2 {
			t.Errorf("spawn %v is in the left half", p)
		}
		if g.Cell(p) != CellFloor {
			t.Errorf("spawn %v is %s", p, g.Cell(p))
		}
		if !occupied[p] {
			t.Errorf("spawn %v not recorded in occupied set", p)
		}
	}

	if _, err := SpawnEnemies(g, rng, 100, occupied); !errors.Is(err, ErrConfiguration) {
		t.Errorf("SpawnEnemies(100) error = %v, expected configuration error", err)
	}
}
