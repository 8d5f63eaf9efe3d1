package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"cricmetrics/internal/report"
	"cricmetrics/internal/storage"
)

var showFocus string

var showCmd = &cobra.Command{
	Use:   "show <match-id-prefix>",
	Short: "Show the scorecards of a stored match",
	Args:  cobra.ExactArgs(1),
	RunE:  runShow,
}

func init() {
	showCmd.Flags().StringVar(&showFocus, "player", "", "mark this player's rows")
}

func runShow(cmd *cobra.Command, args []string) error {
	rs, err := loadRuleset()
	if err != nil {
		return err
	}

	db, err := storage.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	defer db.Close()

	match, err := db.GetMatchByPrefix(args[0])
	if err != nil {
		return fmt.Errorf("find match: %w", err)
	}
	if match == nil {
		return fmt.Errorf("no match found with ID prefix %q", args[0])
	}

	aggs, err := db.GetMatchAggregates(match.MatchID)
	if err != nil {
		return fmt.Errorf("query aggregates: %w", err)
	}

	report.PrintMatchSummary(os.Stdout, *match)
	report.PrintBattingScorecard(os.Stdout, aggs, showFocus)
	report.PrintBowlingScorecard(os.Stdout, aggs, rs.Format.BallsPerOver, showFocus)
	return nil
}
