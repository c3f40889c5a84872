// bomber is a real-time bomb-laying maze game for the terminal.
//
// Usage:
//
//	bomber                   - Start the menu (same as 'bomber menu')
//	bomber list              - List difficulty modes
//	bomber play              - Play directly, skipping the menu
//	bomber menu              - Pick a mode interactively
//	bomber serve             - Start SSH server for remote play
//	bomber scores [mode]     - Show high scores for a mode
//	bomber config            - Print, check or install the game config
//
// Global flags:
//
//	--fps <rate>      - Set tick rate (default: 60)
//	--seed <value>    - Set RNG seed for reproducible gameplay
//	--db <path>       - Set database path (default: ~/.bomber/scores.db)
//	--config <path>   - Use a specific config file
//	--log-file <path> - Write logs to a file
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	// Import modes to register them
	_ "github.com/vovakirdan/tui-bomber/internal/games/bomberman"
	"github.com/vovakirdan/tui-bomber/internal/storage"
)

var (
	// Global flags
	flagFPS     int
	flagSeed    int64
	flagDBPath  string
	flagConfig  string
	flagLogFile string
	flagDebug   bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "bomber",
	Short: "Bomber - lay bombs, clear the maze, find the door",
	Long: `Bomber is a real-time maze game for the terminal.

Blow up the bricks, destroy every enemy, then walk onto the hidden door
before the clock runs out.

Available commands:
  list     - Show the difficulty modes
  play     - Play a mode directly
  menu     - Interactive mode picker (default)
  serve    - Start SSH server for remote play
  scores   - View high scores
  config   - Print, check or install the game config

Examples:
  bomber
  bomber play --difficulty hard
  bomber play --config ./bomberman.yaml --watch
  bomber serve --ssh :2222
  bomber scores bomberman_easy`,
	SilenceUsage: true,
	RunE:         runMenu,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", storage.DefaultPath, "Path to scores database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to game config YAML")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file (the terminal is owned by the game)")
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false, "Log debug messages")

	addSessionFlags(rootCmd)

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(configCmd)
}
