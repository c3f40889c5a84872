package config

import "testing"

func TestDifficultyEnemies(t *testing.T) {
	dm := NewDifficultyManager(DefaultBombermanConfig())

	tests := []struct {
		level    int
		expected int
	}{
		{1, 5},
		{2, 6},
		{3, 6},
		{4, 7},
		{40, 12}, // capped
	}

	for _, tc := range tests {
		if got := dm.Enemies(tc.level); got != tc.expected {
			t.Errorf("Enemies(%d) = %d, expected %d", tc.level, got, tc.expected)
		}
	}
}

func TestDifficultyTimeLimit(t *testing.T) {
	dm := NewDifficultyManager(DefaultBombermanConfig())

	tests := []struct {
		level    int
		expected int
	}{
		{1, 120},
		{2, 180},
		{3, 210},
	}

	for _, tc := range tests {
		if got := dm.TimeLimit(tc.level); got != tc.expected {
			t.Errorf("TimeLimit(%d) = %d, expected %d", tc.level, got, tc.expected)
		}
	}
}

func TestDifficultyDisabled(t *testing.T) {
	cfg := DefaultBombermanConfig()
	ApplyPreset(&cfg, DifficultyFixed)
	dm := NewDifficultyManager(cfg)

	if dm.IsEnabled() {
		t.Error("IsEnabled() = true, expected false")
	}
	if dm.Enemies(6) != cfg.Enemies.Count {
		t.Errorf("Enemies(6) = %d, expected base %d", dm.Enemies(6), cfg.Enemies.Count)
	}
	if dm.TimeLimit(6) != cfg.Rules.TimeLimit {
		t.Errorf("TimeLimit(6) = %d, expected base %d", dm.TimeLimit(6), cfg.Rules.TimeLimit)
	}

	dm.SetEnabled(true)
	if dm.Enemies(2) != cfg.Enemies.Count+1 {
		t.Errorf("Enemies(2) after SetEnabled = %d", dm.Enemies(2))
	}
}
