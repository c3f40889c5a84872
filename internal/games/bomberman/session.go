// Package bomberman implements the real-time simulation of a grid arcade game:
// terrain, a character and roaming enemies, bombs with chained blasts, and a
// pause-safe frame loop. The package has no terminal dependencies; Game adapts
// a Session to the platform's Reset/Step/Render contract.
package bomberman

import (
	"errors"
	"io"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-bomber/internal/config"
	"github.com/vovakirdan/tui-bomber/internal/core"
)

// Phase is the level lifecycle.
type Phase uint8

const (
	PhasePlaying Phase = iota
	PhaseLevelComplete
	PhaseGameOver
)

func (p Phase) String() string {
	switch p {
	case PhasePlaying:
		return "playing"
	case PhaseLevelComplete:
		return "level-complete"
	default:
		return "game-over"
	}
}

// Session owns one run: terrain, entities, bombs, score, lives, time and level.
// It is not safe for concurrent use; drive it from a single loop.
type Session struct {
	cfg        config.BombermanConfig
	pending    *config.BombermanConfig // applied at the next level start
	difficulty *config.DifficultyManager

	rng      *rand.Rand
	log      *log.Logger
	listener Listener

	clock     Clock
	grid      *Grid
	character *Character
	enemies   []*Enemy
	bombs     []*Bomb
	nextBomb  int

	level    int
	lives    int
	score    int
	timeLeft int
	phase    Phase
	paused   bool
	reason   EndReason

	events []Event
}

// Option configures a Session.
type Option func(*Session)

// WithLogger sets the session logger. The default discards everything.
func WithLogger(l *log.Logger) Option {
	return func(s *Session) {
		if l != nil {
			s.log = l
		}
	}
}

// WithListener registers the adapter notified of every event.
func WithListener(l Listener) Option {
	return func(s *Session) {
		s.listener = l
	}
}

// WithSeed seeds the random source used for terrain, spawns and enemy walks.
func WithSeed(seed int64) Option {
	return func(s *Session) {
		s.rng = rand.New(rand.NewSource(seed))
	}
}

// NewSession validates cfg and starts level 1.
func NewSession(cfg config.BombermanConfig, opts ...Option) (*Session, error) {
	s := &Session{
		rng: rand.New(rand.NewSource(1)),
		log: log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(s)
	}
	if err := s.applyConfig(cfg); err != nil {
		return nil, err
	}

	s.level = 1
	s.lives = cfg.Player.Lives
	if err := s.startLevel(); err != nil {
		return nil, err
	}
	return s, nil
}

func validateConfig(cfg config.BombermanConfig) error {
	if err := cfg.Validate(); err != nil {
		var fe *config.FieldError
		if errors.As(err, &fe) {
			return &ConfigError{Field: fe.Field, Reason: fe.Reason}
		}
		return &ConfigError{Field: "config", Reason: err.Error()}
	}
	return nil
}

func (s *Session) applyConfig(cfg config.BombermanConfig) error {
	if err := validateConfig(cfg); err != nil {
		return err
	}
	s.cfg = cfg
	s.difficulty = config.NewDifficultyManager(cfg)
	return nil
}

// SetConfig validates cfg and schedules it for the next level start.
// The running level is never changed.
func (s *Session) SetConfig(cfg config.BombermanConfig) error {
	if err := validateConfig(cfg); err != nil {
		return err
	}
	s.pending = &cfg
	s.log.Info("configuration queued for next level")
	return nil
}

// startLevel builds the current level. Nothing is committed unless every
// construction step succeeds.
func (s *Session) startLevel() error {
	cfg := s.upcomingConfig()
	dm := config.NewDifficultyManager(cfg)

	grid, err := NewGrid(cfg.Grid.Rows, cfg.Grid.Cols)
	if err != nil {
		return s.levelError(err)
	}
	if _, err := grid.PlaceBreakables(s.rng, cfg.Grid.Breakables, cfg.Grid.DoorIndex); err != nil {
		return s.levelError(err)
	}
	occupied := make(map[core.Point]bool)
	spawns, err := SpawnEnemies(grid, s.rng, dm.Enemies(s.level), occupied)
	if err != nil {
		return s.levelError(err)
	}

	if s.pending != nil {
		s.cfg = cfg
		s.difficulty = dm
		s.pending = nil
	}
	s.clock.Reset()
	s.grid = grid
	s.bombs = nil
	s.character = newCharacter(cfg.Player, SpawnCell, 0)
	s.enemies = make([]*Enemy, len(spawns))
	for i, p := range spawns {
		s.enemies[i] = newEnemy(PlayerID+1+EntityID(i), p, cfg.Enemies, 0)
	}
	s.timeLeft = s.difficulty.TimeLimit(s.level)
	s.phase = PhasePlaying
	s.paused = false
	s.reason = EndNone

	s.log.Info("level started", "level", s.level, "enemies", len(s.enemies), "time", s.timeLeft)
	s.emit(Event{Kind: EventLevelStarted, Level: s.level})
	return nil
}

// upcomingConfig is the configuration the next level start will use.
func (s *Session) upcomingConfig() config.BombermanConfig {
	if s.pending != nil {
		return *s.pending
	}
	return s.cfg
}

func (s *Session) levelError(err error) error {
	s.log.Error("level construction failed", "level", s.level, "err", err)
	return err
}

// NextLevel advances to the next level after a level is complete.
// Lives and score carry over.
func (s *Session) NextLevel() error {
	if s.phase != PhaseLevelComplete {
		return rejectf("level %d is not complete", s.level)
	}
	s.level++
	if err := s.startLevel(); err != nil {
		s.level--
		return err
	}
	return nil
}

// RestartLevel rebuilds the current level with full lives, keeping score and level.
func (s *Session) RestartLevel() error {
	if s.phase == PhaseGameOver {
		return rejectf("run is over")
	}
	lives := s.lives
	s.lives = s.upcomingConfig().Player.Lives
	if err := s.startLevel(); err != nil {
		s.lives = lives
		return err
	}
	return nil
}

// NewRun resets level, score and lives and starts level 1.
func (s *Session) NewRun() error {
	level, score, lives := s.level, s.score, s.lives
	s.level, s.score = 1, 0
	s.lives = s.upcomingConfig().Player.Lives
	if err := s.startLevel(); err != nil {
		s.level, s.score, s.lives = level, score, lives
		return err
	}
	return nil
}

// RequestMove starts or continues movement of the character in dir.
func (s *Session) RequestMove(id EntityID, dir Direction) error {
	if err := s.checkActor(id); err != nil {
		return err
	}
	if !dir.Valid() {
		return rejectf("invalid direction %d", dir)
	}
	err := s.character.press(s.clock.Now(), dir, s)
	if err != nil {
		s.log.Debug("move rejected", "dir", dir, "err", err)
	}
	return err
}

// RequestMoveRelease stops continuous movement in dir. Releases are accepted
// while paused so keys never stick.
func (s *Session) RequestMoveRelease(id EntityID, dir Direction) error {
	if id != PlayerID {
		return rejectf("entity %d is not player-controlled", id)
	}
	s.character.release(dir)
	return nil
}

// RequestBombPlacement drops a bomb on the character's cell.
func (s *Session) RequestBombPlacement(id EntityID) error {
	if err := s.checkActor(id); err != nil {
		return err
	}
	c := s.character
	if c.Life != Alive {
		return rejectf("character is %s", c.Life)
	}
	if s.activeBombs(id) >= s.cfg.Bombs.MaxBombs {
		return rejectf("bomb limit %d reached", s.cfg.Bombs.MaxBombs)
	}
	if s.bombAt(c.Pos) != nil {
		return rejectf("cell %v already has a bomb", c.Pos)
	}

	s.nextBomb++
	b := newBomb(s.nextBomb, c.Pos, id, s.cfg.Bombs, s.clock.Now())
	s.bombs = append(s.bombs, b)
	s.log.Debug("bomb placed", "id", b.ID, "cell", b.Pos)
	s.emit(Event{Kind: EventBombPlaced, Pos: b.Pos})
	return nil
}

// Detonate forces a ticking bomb to explode now, as if its fuse had run out.
func (s *Session) Detonate(bombID int) error {
	for _, b := range s.bombs {
		if b.ID == bombID {
			return s.detonate(b, s.clock.Now())
		}
	}
	return rejectf("no bomb %d", bombID)
}

func (s *Session) checkActor(id EntityID) error {
	if id != PlayerID {
		return rejectf("entity %d is not player-controlled", id)
	}
	if s.phase != PhasePlaying {
		return rejectf("session is %s", s.phase)
	}
	if s.paused {
		return rejectf("session is paused")
	}
	return nil
}

// walkable implements board. Enemies only walk on floor; the character may
// also enter the door cell.
func (s *Session) walkable(p core.Point, enemy bool) bool {
	switch s.grid.Cell(p) {
	case CellFloor:
	case CellDoor:
		if enemy {
			return false
		}
	default:
		return false
	}
	return s.bombAt(p) == nil
}

func (s *Session) bombAt(p core.Point) *Bomb {
	for _, b := range s.bombs {
		if b.Live() && b.Pos == p {
			return b
		}
	}
	return nil
}

func (s *Session) activeBombs(owner EntityID) int {
	n := 0
	for _, b := range s.bombs {
		if b.Owner == owner && b.Live() {
			n++
		}
	}
	return n
}

func (s *Session) livingEnemies() int {
	n := 0
	for _, e := range s.enemies {
		if e.Life == Alive {
			n++
		}
	}
	return n
}

// detonate explodes b and resolves damage over its blast set, then chains
// into other ticking bombs the blast reached.
func (s *Session) detonate(b *Bomb, now time.Duration) error {
	if err := b.ignite(now, s.grid); err != nil {
		return err
	}
	s.log.Debug("bomb exploded", "id", b.ID, "cells", len(b.Blast))
	s.emit(Event{Kind: EventExplosion, Pos: b.Pos})

	for _, cell := range b.Blast {
		s.damage(cell.Pos, now)
	}
	if !s.cfg.Bombs.ChainReaction {
		return nil
	}
	for _, cell := range b.Blast {
		for _, other := range s.bombs {
			if other != b && other.Pos == cell.Pos && other.State == BombTicking {
				_ = s.detonate(other, now)
			}
		}
	}
	return nil
}

// damage applies one blast cell to the character, enemies and terrain.
// Every branch is idempotent under overlapping arms.
func (s *Session) damage(p core.Point, now time.Duration) {
	if c := s.character; c.Pos == p && !c.Invincible() {
		s.hitCharacter(now)
	}

	for _, e := range s.enemies {
		if e.Pos != p {
			continue
		}
		if err := e.kill(now); err != nil {
			continue
		}
		s.award(s.cfg.Rules.EnemyPoints)
		s.log.Debug("enemy killed", "enemy", e.ID, "cell", p)
		s.emit(Event{Kind: EventEnemyKilled, Pos: p, Points: s.cfg.Rules.EnemyPoints})
		s.revealDoorIfClear()
	}

	if s.grid.Cell(p) == CellBreakable {
		if _, err := s.grid.Break(p); err == nil {
			s.award(s.cfg.Rules.BlockPoints)
			s.emit(Event{Kind: EventBlockDestroyed, Pos: p, Points: s.cfg.Rules.BlockPoints})
			s.revealDoorIfClear()
		}
	}
}

// hitCharacter costs one life and either schedules a respawn or ends the run.
func (s *Session) hitCharacter(now time.Duration) {
	c := s.character
	if c.Invincible() || s.phase != PhasePlaying {
		return
	}
	if err := c.die(now); err != nil {
		return
	}
	s.lives--
	s.log.Info("player hit", "lives", s.lives, "cell", c.Pos)
	s.emit(Event{Kind: EventPlayerHit, Pos: c.Pos})

	if s.lives <= 0 {
		s.lives = 0
		s.endGame(EndLives)
		return
	}
	c.respawn.Arm(now, s.cfg.Player.Respawn())
}

// revealDoorIfClear reveals the door once no enemy is alive.
func (s *Session) revealDoorIfClear() {
	if s.livingEnemies() > 0 {
		return
	}
	if s.grid.RevealDoor() {
		door, _ := s.grid.Door()
		s.log.Debug("door revealed", "cell", door)
		s.emit(Event{Kind: EventDoorRevealed, Pos: door})
	}
}

func (s *Session) completeLevel(now time.Duration) {
	if s.phase != PhasePlaying {
		return
	}
	bonus := s.timeLeft * s.cfg.Rules.TimeBonus
	s.award(bonus)
	s.phase = PhaseLevelComplete
	s.log.Info("level complete", "level", s.level, "bonus", bonus, "score", s.score, "at", now)
	s.emit(Event{Kind: EventLevelComplete, Level: s.level, Points: bonus})
}

// endGame ends the run once; the score is frozen from here on.
func (s *Session) endGame(reason EndReason) {
	if s.phase == PhaseGameOver {
		return
	}
	s.phase = PhaseGameOver
	s.paused = false
	s.reason = reason
	s.log.Info("game over", "reason", reason, "score", s.score, "level", s.level)
	s.emit(Event{Kind: EventGameOver, Level: s.level, Reason: reason})
}

// award adds points while the level is being played.
func (s *Session) award(points int) {
	if s.phase == PhasePlaying {
		s.score += points
	}
}

func (s *Session) emit(ev Event) {
	ev.Score = s.score
	if ev.Level == 0 {
		ev.Level = s.level
	}
	s.events = append(s.events, ev)
	if s.listener != nil {
		s.listener.Notify(ev)
	}
}

// Phase returns the current lifecycle phase.
func (s *Session) Phase() Phase { return s.phase }

// Paused reports whether the session is paused.
func (s *Session) Paused() bool { return s.paused }

// Over reports whether the run has ended.
func (s *Session) Over() bool { return s.phase == PhaseGameOver }

// Reason returns why the run ended.
func (s *Session) Reason() EndReason { return s.reason }

// Level returns the current level number.
func (s *Session) Level() int { return s.level }

// Lives returns the remaining lives.
func (s *Session) Lives() int { return s.lives }

// Score returns the current score.
func (s *Session) Score() int { return s.score }

// TimeLeft returns the remaining seconds on the level countdown.
func (s *Session) TimeLeft() int { return s.timeLeft }

// Now returns the simulation time of the current level.
func (s *Session) Now() time.Duration { return s.clock.Now() }

// Config returns the configuration of the running level.
func (s *Session) Config() config.BombermanConfig { return s.cfg }

// HUD is the read-only view the score display consumes.
type HUD struct {
	Lives     int
	Score     int
	TimeLeft  int
	Level     int
	MaxBombs  int
	BombRange int
	Enemies   int
	Phase     Phase
	Paused    bool
	Reason    EndReason
}

// HUD returns the current session summary.
func (s *Session) HUD() HUD {
	return HUD{
		Lives:     s.lives,
		Score:     s.score,
		TimeLeft:  s.timeLeft,
		Level:     s.level,
		MaxBombs:  s.cfg.Bombs.MaxBombs,
		BombRange: s.cfg.Bombs.Range,
		Enemies:   s.livingEnemies(),
		Phase:     s.phase,
		Paused:    s.paused,
		Reason:    s.reason,
	}
}
