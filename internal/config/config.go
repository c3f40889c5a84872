// Package config provides YAML-based game configuration loading, difficulty
// presets, level scaling and hot reload for the bomber game.
package config

import (
	"fmt"
	"time"
)

// BombermanConfig contains all tunables of the simulation.
// Durations are stored as integer milliseconds in YAML.
type BombermanConfig struct {
	Grid       GridConfig       `yaml:"grid"`
	Player     PlayerConfig     `yaml:"player"`
	Enemies    EnemyConfig      `yaml:"enemies"`
	Bombs      BombConfig       `yaml:"bombs"`
	Rules      RulesConfig      `yaml:"rules"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// GridConfig defines the board layout.
type GridConfig struct {
	Rows       int `yaml:"rows"`
	Cols       int `yaml:"cols"`
	Breakables int `yaml:"breakables"`
	DoorIndex  int `yaml:"door_index"` // index among the placed breakables hiding the door
}

// PlayerConfig defines the character.
type PlayerConfig struct {
	Lives        int `yaml:"lives"`
	StepMS       int `yaml:"step_ms"`
	DebounceMS   int `yaml:"debounce_ms"`
	RespawnMS    int `yaml:"respawn_ms"`
	InvincibleMS int `yaml:"invincible_ms"`
	DeathMS      int `yaml:"death_ms"`
	DeathFrames  int `yaml:"death_frames"`
	WalkFrameMS  int `yaml:"walk_frame_ms"`
	WalkFrames   int `yaml:"walk_frames"`
	HoldWindowMS int `yaml:"hold_window_ms"` // terminal key-repeat window before a release is synthesized
}

// EnemyConfig defines the roaming enemies.
type EnemyConfig struct {
	Count        int `yaml:"count"`
	StepMS       int `yaml:"step_ms"`
	ThinkMS      int `yaml:"think_ms"` // random walk retry interval
	StartDelayMS int `yaml:"start_delay_ms"`
	DeathMS      int `yaml:"death_ms"`
	DeathFrames  int `yaml:"death_frames"`
	WalkFrameMS  int `yaml:"walk_frame_ms"`
	WalkFrames   int `yaml:"walk_frames"`
}

// BombConfig defines bombs and explosions.
type BombConfig struct {
	MaxBombs         int  `yaml:"max_bombs"`
	Range            int  `yaml:"range"`
	FuseMS           int  `yaml:"fuse_ms"`
	TickFrames       int  `yaml:"tick_frames"`
	TickFrameMS      int  `yaml:"tick_frame_ms"`
	ExplosionFrames  int  `yaml:"explosion_frames"`
	ExplosionFrameMS int  `yaml:"explosion_frame_ms"`
	ChainReaction    bool `yaml:"chain_reaction"`
}

// RulesConfig defines scoring, timing and collision rules.
type RulesConfig struct {
	TimeLimit       int     `yaml:"time_limit"` // seconds for level 1
	EnemyPoints     int     `yaml:"enemy_points"`
	BlockPoints     int     `yaml:"block_points"`
	TimeBonus       int     `yaml:"time_bonus"` // points per remaining second on level complete
	CollisionRadius float64 `yaml:"collision_radius"`
	ContinueDelayMS int     `yaml:"continue_delay_ms"` // auto-continue after level complete
}

// DifficultyConfig defines the linear level scaling.
type DifficultyConfig struct {
	Enabled      bool `yaml:"enabled"`
	EnemyEvery   int  `yaml:"enemy_every"`    // one extra enemy every N levels
	MaxEnemies   int  `yaml:"max_enemies"`    // cap on enemies per level
	TimePerLevel int  `yaml:"time_per_level"` // extra seconds per level
}

func ms(v int) time.Duration {
	return time.Duration(v) * time.Millisecond
}

// Step returns the character step duration.
func (p PlayerConfig) Step() time.Duration { return ms(p.StepMS) }

// Debounce returns the minimum time between accepted move commands.
func (p PlayerConfig) Debounce() time.Duration { return ms(p.DebounceMS) }

// Respawn returns the delay between a hit and the respawn.
func (p PlayerConfig) Respawn() time.Duration { return ms(p.RespawnMS) }

// Invincible returns the post-respawn grace period.
func (p PlayerConfig) Invincible() time.Duration { return ms(p.InvincibleMS) }

// Death returns the death animation duration.
func (p PlayerConfig) Death() time.Duration { return ms(p.DeathMS) }

// WalkFrame returns the walk sprite frame delay.
func (p PlayerConfig) WalkFrame() time.Duration { return ms(p.WalkFrameMS) }

// HoldWindow returns how long a direction counts as held without a repeat.
func (p PlayerConfig) HoldWindow() time.Duration { return ms(p.HoldWindowMS) }

// Step returns the enemy step duration.
func (e EnemyConfig) Step() time.Duration { return ms(e.StepMS) }

// Think returns the random walk retry interval.
func (e EnemyConfig) Think() time.Duration { return ms(e.ThinkMS) }

// StartDelay returns the delay before enemies start moving on a new level.
func (e EnemyConfig) StartDelay() time.Duration { return ms(e.StartDelayMS) }

// Death returns the enemy death animation duration.
func (e EnemyConfig) Death() time.Duration { return ms(e.DeathMS) }

// WalkFrame returns the enemy walk sprite frame delay.
func (e EnemyConfig) WalkFrame() time.Duration { return ms(e.WalkFrameMS) }

// Fuse returns the time between placement and detonation.
func (b BombConfig) Fuse() time.Duration { return ms(b.FuseMS) }

// TickFrame returns the ticking sprite frame delay.
func (b BombConfig) TickFrame() time.Duration { return ms(b.TickFrameMS) }

// ExplosionFrame returns the explosion sprite frame delay.
func (b BombConfig) ExplosionFrame() time.Duration { return ms(b.ExplosionFrameMS) }

// Explosion returns the full explosion duration (frames × frame delay).
func (b BombConfig) Explosion() time.Duration {
	return time.Duration(b.ExplosionFrames) * ms(b.ExplosionFrameMS)
}

// ContinueDelay returns the auto-continue delay after a level is complete.
func (r RulesConfig) ContinueDelay() time.Duration { return ms(r.ContinueDelayMS) }

// FieldError reports an invalid configuration value.
type FieldError struct {
	Field  string
	Reason string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("config: %s: %s", e.Field, e.Reason)
}

// Validate checks the configuration for values the simulation cannot run with.
func (c BombermanConfig) Validate() error {
	positive := []struct {
		field string
		value int
	}{
		{"player.lives", c.Player.Lives},
		{"player.step_ms", c.Player.StepMS},
		{"player.death_ms", c.Player.DeathMS},
		{"player.death_frames", c.Player.DeathFrames},
		{"player.walk_frame_ms", c.Player.WalkFrameMS},
		{"player.walk_frames", c.Player.WalkFrames},
		{"enemies.step_ms", c.Enemies.StepMS},
		{"enemies.death_ms", c.Enemies.DeathMS},
		{"enemies.death_frames", c.Enemies.DeathFrames},
		{"enemies.walk_frame_ms", c.Enemies.WalkFrameMS},
		{"enemies.walk_frames", c.Enemies.WalkFrames},
		{"bombs.max_bombs", c.Bombs.MaxBombs},
		{"bombs.range", c.Bombs.Range},
		{"bombs.fuse_ms", c.Bombs.FuseMS},
		{"bombs.tick_frames", c.Bombs.TickFrames},
		{"bombs.tick_frame_ms", c.Bombs.TickFrameMS},
		{"bombs.explosion_frames", c.Bombs.ExplosionFrames},
		{"bombs.explosion_frame_ms", c.Bombs.ExplosionFrameMS},
		{"grid.breakables", c.Grid.Breakables},
		{"rules.time_limit", c.Rules.TimeLimit},
	}
	for _, p := range positive {
		if p.value <= 0 {
			return &FieldError{Field: p.field, Reason: fmt.Sprintf("must be positive, got %d", p.value)}
		}
	}

	nonNegative := []struct {
		field string
		value int
	}{
		{"player.debounce_ms", c.Player.DebounceMS},
		{"player.respawn_ms", c.Player.RespawnMS},
		{"player.invincible_ms", c.Player.InvincibleMS},
		{"player.hold_window_ms", c.Player.HoldWindowMS},
		{"enemies.count", c.Enemies.Count},
		{"enemies.think_ms", c.Enemies.ThinkMS},
		{"enemies.start_delay_ms", c.Enemies.StartDelayMS},
		{"rules.enemy_points", c.Rules.EnemyPoints},
		{"rules.block_points", c.Rules.BlockPoints},
		{"rules.time_bonus", c.Rules.TimeBonus},
		{"rules.continue_delay_ms", c.Rules.ContinueDelayMS},
		{"difficulty.enemy_every", c.Difficulty.EnemyEvery},
		{"difficulty.max_enemies", c.Difficulty.MaxEnemies},
		{"difficulty.time_per_level", c.Difficulty.TimePerLevel},
	}
	for _, p := range nonNegative {
		if p.value < 0 {
			return &FieldError{Field: p.field, Reason: fmt.Sprintf("must not be negative, got %d", p.value)}
		}
	}

	if c.Grid.Rows < 5 || c.Grid.Rows%2 == 0 {
		return &FieldError{Field: "grid.rows", Reason: fmt.Sprintf("must be odd and at least 5, got %d", c.Grid.Rows)}
	}
	if c.Grid.Cols < 5 || c.Grid.Cols%2 == 0 {
		return &FieldError{Field: "grid.cols", Reason: fmt.Sprintf("must be odd and at least 5, got %d", c.Grid.Cols)}
	}
	if c.Grid.DoorIndex < 0 || c.Grid.DoorIndex >= c.Grid.Breakables {
		return &FieldError{
			Field:  "grid.door_index",
			Reason: fmt.Sprintf("must be in [0, %d), got %d", c.Grid.Breakables, c.Grid.DoorIndex),
		}
	}
	if c.Rules.CollisionRadius <= 0 || c.Rules.CollisionRadius > 1 {
		return &FieldError{
			Field:  "rules.collision_radius",
			Reason: fmt.Sprintf("must be in (0, 1], got %g", c.Rules.CollisionRadius),
		}
	}
	return nil
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset converts a flag value into a preset.
func ParsePreset(s string) (DifficultyPreset, error) {
	switch p := DifficultyPreset(s); p {
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return p, nil
	case "":
		return DifficultyNormal, nil
	default:
		return "", fmt.Errorf("config: unknown difficulty %q (easy, normal, hard, fixed)", s)
	}
}

// ApplyPreset modifies the config based on a difficulty preset.
func ApplyPreset(cfg *BombermanConfig, preset DifficultyPreset) {
	if preset == DifficultyFixed {
		cfg.Difficulty.Enabled = false
		return
	}
	cfg.Difficulty.Enabled = true

	switch preset {
	case DifficultyEasy:
		cfg.Player.Lives = 5
		cfg.Enemies.Count = 3
		cfg.Rules.TimeLimit = 180
	case DifficultyHard:
		cfg.Player.Lives = 2
		cfg.Enemies.Count = 7
		cfg.Enemies.StepMS = 450
		cfg.Bombs.FuseMS = 2500
		cfg.Rules.TimeLimit = 90
	}
}
