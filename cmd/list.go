package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"cricmetrics/internal/storage"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all stored matches",
	Args:  cobra.NoArgs,
	RunE:  runList,
}

func runList(cmd *cobra.Command, args []string) error {
	db, err := storage.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	defer db.Close()

	matches, err := db.ListMatches()
	if err != nil {
		return fmt.Errorf("list matches: %w", err)
	}
	if len(matches) == 0 {
		fmt.Fprintln(os.Stdout, "No matches stored yet. Run 'cricmetrics ingest <file-or-dir>' to add some.")
		return nil
	}

	fmt.Fprintf(os.Stdout, "%-14s  %-10s  %6s  %-28s  %-28s  %-10s  %s\n",
		"ID", "DATE", "SEASON", "TEAM1", "TEAM2", "STAGE", "WINNER")
	fmt.Fprintf(os.Stdout, "%-14s  %-10s  %6s  %-28s  %-28s  %-10s  %s\n",
		"──────────────", "──────────", "──────", "────────────────────────────",
		"────────────────────────────", "──────────", "──────")
	for _, m := range matches {
		winner := m.Winner
		if winner == "" {
			winner = "—"
		}
		fmt.Fprintf(os.Stdout, "%-14s  %-10s  %6d  %-28s  %-28s  %-10s  %s\n",
			shortID(m.MatchID), m.MatchDate, m.Season, m.Team1, m.Team2, m.Stage, winner)
	}
	return nil
}
