package bomberman

import (
	"fmt"
	"math/rand"

	"github.com/vovakirdan/tui-bomber/internal/core"
)

// SpawnEnemies picks count distinct floor cells in the right half of the grid.
// occupied is the per-level set of cells already taken; chosen cells are added
// to it so later spawns in the same level cannot reuse them.
func SpawnEnemies(g *Grid, rng *rand.Rand, count int, occupied map[core.Point]bool) ([]core.Point, error) {
	var pool []core.Point
	for y := 1; y < g.Rows()-1; y++ {
		for x := g.Cols() / 2; x < g.Cols()-1; x++ {
			p := core.Pt(x, y)
			if g.Cell(p) == CellFloor && !IsSpawnCell(p) && !occupied[p] {
				pool = append(pool, p)
			}
		}
	}
	if count > len(pool) {
		return nil, &ConfigError{
			Field:  "enemies.count",
			Reason: fmt.Sprintf("%d enemies requested but only %d free cells in spawn area", count, len(pool)),
		}
	}

	rng.Shuffle(len(pool), func(i, j int) { pool[i], pool[j] = pool[j], pool[i] })
	picked := pool[:count:count]
	for _, p := range picked {
		occupied[p] = true
	}
	return picked, nil
}
