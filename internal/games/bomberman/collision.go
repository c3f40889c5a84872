package bomberman

import (
	"time"

	"github.com/vovakirdan/tui-bomber/internal/core"
)

// Collides reports whether two rendered positions are closer than radius,
// measured center to center in cell units.
func Collides(a, b core.Vec, radius float64) bool {
	return a.Dist(b) < radius
}

// detectCollisions applies at most one hit per frame when a living enemy
// touches the character.
func (s *Session) detectCollisions(now time.Duration) {
	c := s.character
	if c.Invincible() {
		return
	}
	pos := c.RenderPos(now)
	for _, e := range s.enemies {
		if e.Life != Alive {
			continue
		}
		if Collides(pos, e.RenderPos(now), s.cfg.Rules.CollisionRadius) {
			s.log.Debug("enemy contact", "enemy", e.ID, "cell", c.Pos)
			s.hitCharacter(now)
			return
		}
	}
}

// checkWin completes the level when every enemy is dead, the door is
// revealed and the character stands on it.
func (s *Session) checkWin(now time.Duration) {
	if s.phase != PhasePlaying {
		return
	}
	s.revealDoorIfClear()

	door, ok := s.grid.Door()
	if !ok || !s.grid.DoorRevealed() || s.livingEnemies() > 0 {
		return
	}
	c := s.character
	if c.Life == Alive && c.Pos == door && s.grid.Cell(door) == CellDoor {
		s.completeLevel(now)
	}
}
