package config

import (
	"errors"
	"testing"

	"gopkg.in/yaml.v3"
)

func TestEmbeddedDefaultsMatchHardcoded(t *testing.T) {
	var cfg BombermanConfig
	if err := yaml.Unmarshal(DefaultYAML(), &cfg); err != nil {
		t.Fatalf("embedded default does not parse: %v", err)
	}
	if cfg != DefaultBombermanConfig() {
		t.Errorf("embedded defaults = %+v, expected %+v", cfg, DefaultBombermanConfig())
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() on defaults = %v, expected nil", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*BombermanConfig)
		field  string
	}{
		{"even rows", func(c *BombermanConfig) { c.Grid.Rows = 10 }, "grid.rows"},
		{"tiny cols", func(c *BombermanConfig) { c.Grid.Cols = 3 }, "grid.cols"},
		{"no breakables", func(c *BombermanConfig) { c.Grid.Breakables = 0 }, "grid.breakables"},
		{"door index too large", func(c *BombermanConfig) { c.Grid.DoorIndex = 30 }, "grid.door_index"},
		{"zero lives", func(c *BombermanConfig) { c.Player.Lives = 0 }, "player.lives"},
		{"zero fuse", func(c *BombermanConfig) { c.Bombs.FuseMS = 0 }, "bombs.fuse_ms"},
		{"negative enemies", func(c *BombermanConfig) { c.Enemies.Count = -1 }, "enemies.count"},
		{"collision radius too big", func(c *BombermanConfig) { c.Rules.CollisionRadius = 1.5 }, "rules.collision_radius"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultBombermanConfig()
			tc.mutate(&cfg)

			err := cfg.Validate()
			var fe *FieldError
			if !errors.As(err, &fe) {
				t.Fatalf("Validate() = %v, expected *FieldError", err)
			}
			if fe.Field != tc.field {
				t.Errorf("Validate() field = %q, expected %q", fe.Field, tc.field)
			}
		})
	}
}

func TestParsePreset(t *testing.T) {
	tests := []struct {
		in       string
		expected DifficultyPreset
		wantErr  bool
	}{
		{"", DifficultyNormal, false},
		{"easy", DifficultyEasy, false},
		{"hard", DifficultyHard, false},
		{"fixed", DifficultyFixed, false},
		{"nightmare", "", true},
	}

	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			p, err := ParsePreset(tc.in)
			if (err != nil) != tc.wantErr {
				t.Fatalf("ParsePreset(%q) error = %v, wantErr %v", tc.in, err, tc.wantErr)
			}
			if p != tc.expected {
				t.Errorf("ParsePreset(%q) = %q, expected %q", tc.in, p, tc.expected)
			}
		})
	}
}

func TestApplyPreset(t *testing.T) {
	easy := DefaultBombermanConfig()
	ApplyPreset(&easy, DifficultyEasy)
	if easy.Player.Lives != 5 || easy.Enemies.Count != 3 || easy.Rules.TimeLimit != 180 {
		t.Errorf("easy preset = lives %d enemies %d time %d", easy.Player.Lives, easy.Enemies.Count, easy.Rules.TimeLimit)
	}

	hard := DefaultBombermanConfig()
	ApplyPreset(&hard, DifficultyHard)
	if hard.Player.Lives != 2 || hard.Bombs.FuseMS != 2500 {
		t.Errorf("hard preset = lives %d fuse %d", hard.Player.Lives, hard.Bombs.FuseMS)
	}
	if err := hard.Validate(); err != nil {
		t.Errorf("hard preset Validate() = %v", err)
	}

	fixed := DefaultBombermanConfig()
	ApplyPreset(&fixed, DifficultyFixed)
	if fixed.Difficulty.Enabled {
		t.Error("fixed preset should disable level scaling")
	}

	normal := DefaultBombermanConfig()
	ApplyPreset(&normal, DifficultyNormal)
	if normal != DefaultBombermanConfig() {
		t.Error("normal preset should not change the defaults")
	}
}

func TestDurationAccessors(t *testing.T) {
	cfg := DefaultBombermanConfig()

	if cfg.Bombs.Fuse().Milliseconds() != 3000 {
		t.Errorf("Fuse() = %v, expected 3s", cfg.Bombs.Fuse())
	}
	if cfg.Bombs.Explosion().Milliseconds() != 800 {
		t.Errorf("Explosion() = %v, expected 800ms", cfg.Bombs.Explosion())
	}
	if cfg.Player.Step().Milliseconds() != 400 {
		t.Errorf("Step() = %v, expected 400ms", cfg.Player.Step())
	}
}
