package core

// RuntimeConfig contains configuration passed to a game at initialization.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Simulation ticks per second (default 60)
	Seed     int64 // RNG seed for deterministic gameplay
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     0, // 0 means use current time in platform layer
	}
}

// GameState is the summary the platform reads after every step.
type GameState struct {
	Score    int  // Current score
	Level    int  // Current level, starting at 1
	Lives    int  // Remaining lives
	GameOver bool // Whether the run has ended
	Paused   bool // Whether the game is paused
	Reason   string
}

// StepResult is returned by Game.Step() after each simulation tick.
type StepResult struct {
	State GameState
}
