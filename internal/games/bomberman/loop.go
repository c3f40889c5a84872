package bomberman

import "time"

// TickResult reports what happened during one frame.
type TickResult struct {
	Events []Event
	HUD    HUD
}

// Tick advances the simulation by one frame of length dt and returns the
// events emitted since the previous Tick, including those raised by actions.
//
// Per frame: step commits and enemy walks, then bomb fuses and explosions,
// then collisions and the win check, then the 1-second countdown. While
// paused, or outside of play, nothing advances.
func (s *Session) Tick(dt time.Duration) TickResult {
	if s.phase == PhasePlaying && !s.paused {
		s.step(dt)
	}
	events := s.events
	s.events = nil
	return TickResult{Events: events, HUD: s.HUD()}
}

func (s *Session) step(dt time.Duration) {
	seconds := s.clock.Advance(dt)
	now := s.clock.Now()

	s.updateCharacter(now)
	for _, e := range s.enemies {
		e.update(now, s.rng, s)
	}
	s.updateBombs(now)
	s.reapEnemies(now)

	if s.phase == PhasePlaying {
		s.detectCollisions(now)
		s.checkWin(now)
	}
	s.countdown(seconds)
}

func (s *Session) updateCharacter(now time.Duration) {
	c := s.character
	if !c.active {
		return
	}
	if c.Life == Dying && c.respawn.Done(now) {
		c.ResetPosition(now)
		s.log.Debug("player respawned", "cell", c.Pos)
		return
	}
	c.update(now, s)
}

func (s *Session) updateBombs(now time.Duration) {
	for _, b := range s.bombs {
		if b.active && b.State == BombTicking && b.fuse.Done(now) {
			_ = s.detonate(b, now)
		}
	}
	kept := s.bombs[:0]
	for _, b := range s.bombs {
		b.finish(now)
		if b.State != BombRemoved {
			kept = append(kept, b)
		}
	}
	clear(s.bombs[len(kept):])
	s.bombs = kept
}

// reapEnemies drops enemies whose death animation has finished.
func (s *Session) reapEnemies(now time.Duration) {
	kept := s.enemies[:0]
	for _, e := range s.enemies {
		if e.active {
			e.finishDying(now)
		}
		if e.Life != Dead {
			kept = append(kept, e)
		}
	}
	clear(s.enemies[len(kept):])
	s.enemies = kept
}

func (s *Session) countdown(seconds int) {
	for range seconds {
		if s.phase != PhasePlaying {
			return
		}
		s.timeLeft--
		if s.timeLeft <= 0 {
			s.timeLeft = 0
			s.endGame(EndTime)
		}
	}
}

// RequestPauseToggle pauses or resumes the level.
func (s *Session) RequestPauseToggle() error {
	if s.phase != PhasePlaying {
		return rejectf("cannot pause while %s", s.phase)
	}
	if s.paused {
		s.Resume()
	} else {
		s.Pause()
	}
	return nil
}

// Pause suspends the character, every enemy and every live bomb.
func (s *Session) Pause() {
	if s.paused || s.phase != PhasePlaying {
		return
	}
	now := s.clock.Now()
	s.paused = true
	s.character.suspend(now)
	for _, e := range s.enemies {
		e.suspend(now)
	}
	for _, b := range s.bombs {
		b.suspend(now)
	}
	s.log.Debug("paused", "at", now)
	s.emit(Event{Kind: EventPaused})
}

// Resume re-arms exactly the entities and bombs that Pause suspended.
func (s *Session) Resume() {
	if !s.paused {
		return
	}
	now := s.clock.Now()
	s.paused = false
	s.character.resume(now)
	for _, e := range s.enemies {
		e.resume(now)
	}
	for _, b := range s.bombs {
		b.resume(now)
	}
	s.log.Debug("resumed", "at", now)
	s.emit(Event{Kind: EventResumed})
}
