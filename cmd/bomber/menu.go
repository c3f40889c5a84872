package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-bomber/internal/platform/tui"
	"github.com/vovakirdan/tui-bomber/internal/registry"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Pick a difficulty mode interactively",
	Long: `Start bomber in interactive menu mode.

Use arrow keys or j/k to navigate, Enter to play, Tab for high scores.
Press B from the pause or game over screen to come back to the menu.

Examples:
  bomber menu
  bomber menu --fps 30
  bomber menu --db ./scores.db`,
	RunE: runMenu,
}

func init() {
	addSessionFlags(menuCmd)
}

func runMenu(_ *cobra.Command, _ []string) error {
	e, err := openEnv()
	if err != nil {
		return err
	}
	defer e.Close()

	for {
		menuResult, err := tui.RunMenu(e.store, e.runtime)
		if err != nil {
			return err
		}

		// Keep any size changes
		e.runtime.ScreenW = menuResult.Config.ScreenW
		e.runtime.ScreenH = menuResult.Config.ScreenH

		if menuResult.Quit {
			return nil
		}

		if menuResult.WantsScoreboard {
			goBack, sbErr := tui.RunScoreboard(e.store, e.runtime.ScreenW, e.runtime.ScreenH, menuResult.GameID)
			if sbErr != nil {
				return sbErr
			}
			if goBack {
				continue
			}
			return nil
		}

		game, err := registry.Create(menuResult.GameID, e.cfg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
			continue
		}

		backToMenu, err := e.play(game)
		if err != nil {
			return fmt.Errorf("error running game: %w", err)
		}
		if !backToMenu {
			return nil
		}
	}
}
