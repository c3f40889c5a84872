package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-bomber/internal/registry"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the difficulty modes",
	Long:  `Shows every mode registered with the game, with the id used by play and scores.`,
	Run:   runList,
}

func runList(cmd *cobra.Command, _ []string) {
	modes := registry.List()
	out := cmd.OutOrStdout()

	if len(modes) == 0 {
		fmt.Fprintln(out, "No modes available.")
		return
	}

	fmt.Fprintln(out, "Available modes:")
	fmt.Fprintln(out)

	maxIDLen := 2 // "ID" header
	for _, g := range modes {
		maxIDLen = max(maxIDLen, len(g.ID))
	}

	fmt.Fprintf(out, "  %-*s  %s\n", maxIDLen, "ID", "Title")
	fmt.Fprintf(out, "  %-*s  %s\n", maxIDLen, "--", "-----")
	for _, g := range modes {
		fmt.Fprintf(out, "  %-*s  %s\n", maxIDLen, g.ID, g.Title)
	}

	fmt.Fprintln(out)
	fmt.Fprintln(out, "Run 'bomber play <id>' to play a mode.")
}
