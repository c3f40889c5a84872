package config

// DifficultyManager derives per-level parameters from the base configuration.
// Scaling is linear: more enemies every few levels and more time per level.
type DifficultyManager struct {
	cfg       DifficultyConfig
	baseCount int
	baseTime  int
}

// NewDifficultyManager creates a new difficulty manager.
func NewDifficultyManager(cfg BombermanConfig) *DifficultyManager {
	return &DifficultyManager{
		cfg:       cfg.Difficulty,
		baseCount: cfg.Enemies.Count,
		baseTime:  cfg.Rules.TimeLimit,
	}
}

// SetEnabled enables or disables level scaling.
func (d *DifficultyManager) SetEnabled(enabled bool) {
	d.cfg.Enabled = enabled
}

// IsEnabled returns whether level scaling is active.
func (d *DifficultyManager) IsEnabled() bool {
	return d.cfg.Enabled
}

// Enemies returns the number of enemies spawned on the given level.
func (d *DifficultyManager) Enemies(level int) int {
	if !d.cfg.Enabled || d.cfg.EnemyEvery <= 0 || level <= 1 {
		return d.baseCount
	}
	n := d.baseCount + level/d.cfg.EnemyEvery
	if d.cfg.MaxEnemies > 0 && n > d.cfg.MaxEnemies {
		n = max(d.cfg.MaxEnemies, d.baseCount)
	}
	return n
}

// TimeLimit returns the countdown in seconds for the given level.
// Level 1 uses the base limit; later levels get the per-level bonus times the level number.
func (d *DifficultyManager) TimeLimit(level int) int {
	if !d.cfg.Enabled || level <= 1 {
		return d.baseTime
	}
	return d.baseTime + level*d.cfg.TimePerLevel
}
