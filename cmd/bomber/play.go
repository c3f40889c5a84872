package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-bomber/internal/config"
	"github.com/vovakirdan/tui-bomber/internal/games/bomberman"
	"github.com/vovakirdan/tui-bomber/internal/registry"
)

var playCmd = &cobra.Command{
	Use:   "play [mode]",
	Short: "Play a mode directly",
	Long: `Start playing without the menu.

The mode is picked by id (see 'bomber list') or by --difficulty.

Controls:
  Arrows/WASD/HJKL - Move (hold to keep walking)
  Space/X          - Place a bomb
  P/Esc            - Pause
  R                - Restart level (paused), new run (game over)
  Enter            - Next level
  M                - Toggle sound
  Ctrl+S           - Save a screenshot to ~/.bomber/screenshots
  Q/Ctrl+C         - Quit

Difficulty options:
  easy   - 5 lives, 3 enemies, 3 minutes per level
  normal - The config as written, scaling with the level
  hard   - 2 lives, 7 fast enemies, short fuses, 90 seconds
  fixed  - No scaling between levels

Examples:
  bomber play
  bomber play bomberman_hard
  bomber play --difficulty easy --seed 42
  bomber play --config ./bomberman.yaml --watch`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPlay,
}

func init() {
	addSessionFlags(playCmd)
}

// resolveMode picks the mode from the argument or the --difficulty flag.
func resolveMode(args []string) (string, error) {
	if len(args) > 0 {
		if !registry.Exists(args[0]) {
			return "", fmt.Errorf("unknown mode %q, run 'bomber list' to see available modes", args[0])
		}
		return args[0], nil
	}
	preset, err := config.ParsePreset(flagDifficulty)
	if err != nil {
		return "", err
	}
	return bomberman.ModeID(preset), nil
}

func runPlay(_ *cobra.Command, args []string) error {
	gameID, err := resolveMode(args)
	if err != nil {
		return err
	}

	e, err := openEnv()
	if err != nil {
		return err
	}
	defer e.Close()

	game, err := registry.Create(gameID, e.cfg)
	if err != nil {
		return fmt.Errorf("cannot create game: %w", err)
	}

	if _, err := e.play(game); err != nil {
		return fmt.Errorf("error running game: %w", err)
	}
	return nil
}
