package config

import (
	_ "embed"
)

//go:embed defaults/bomberman.yaml
var defaultBombermanYAML []byte

// DefaultBombermanConfig returns the hardcoded default configuration.
// It mirrors defaults/bomberman.yaml and is used when the embed cannot be parsed.
func DefaultBombermanConfig() BombermanConfig {
	return BombermanConfig{
		Grid: GridConfig{
			Rows:       11,
			Cols:       13,
			Breakables: 30,
			DoorIndex:  5, // 6th placement hides the door
		},
		Player: PlayerConfig{
			Lives:        3,
			StepMS:       400,
			DebounceMS:   17,
			RespawnMS:    1000,
			InvincibleMS: 1500,
			DeathMS:      1200,
			DeathFrames:  4,
			WalkFrameMS:  100,
			WalkFrames:   4,
			HoldWindowMS: 180,
		},
		Enemies: EnemyConfig{
			Count:        5,
			StepMS:       600,
			ThinkMS:      50,
			StartDelayMS: 1000,
			DeathMS:      1000,
			DeathFrames:  8,
			WalkFrameMS:  200,
			WalkFrames:   3,
		},
		Bombs: BombConfig{
			MaxBombs:         1,
			Range:            1,
			FuseMS:           3000,
			TickFrames:       3,
			TickFrameMS:      200,
			ExplosionFrames:  4,
			ExplosionFrameMS: 200,
			ChainReaction:    true,
		},
		Rules: RulesConfig{
			TimeLimit:       120,
			EnemyPoints:     100,
			BlockPoints:     10,
			TimeBonus:       10,
			CollisionRadius: 0.6,
			ContinueDelayMS: 3000,
		},
		Difficulty: DifficultyConfig{
			Enabled:      true,
			EnemyEvery:   2,
			MaxEnemies:   12,
			TimePerLevel: 30,
		},
	}
}

// DefaultYAML returns the embedded default YAML.
func DefaultYAML() []byte {
	return defaultBombermanYAML
}
