package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"cricmetrics/internal/aggregator"
	"cricmetrics/internal/classify"
	"cricmetrics/internal/metrics"
	"cricmetrics/internal/report"
	"cricmetrics/internal/storage"
)

var playerCmd = &cobra.Command{
	Use:   "player <name>",
	Short: "Season profile, metric vector and classification for one player",
	Args:  cobra.ExactArgs(1),
	RunE:  runPlayer,
}

func runPlayer(cmd *cobra.Command, args []string) error {
	name := args[0]

	rs, err := loadRuleset()
	if err != nil {
		return err
	}

	db, err := storage.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	defer db.Close()

	matches, err := db.GetPlayerMatchAggregates(name)
	if err != nil {
		return fmt.Errorf("query aggregates: %w", err)
	}
	if len(matches) == 0 {
		return fmt.Errorf("no stored matches for player %q", name)
	}

	profile := aggregator.BuildSeasonProfile(name, matches)
	vector := metrics.Compute(name, "season", matches, profile, rs)
	result := classify.Classify(vector, profile, rs)

	report.PrintMetricVector(os.Stdout, vector)

	fmt.Fprintln(os.Stdout, "\nPhase splits:")
	report.PrintPhaseTable(os.Stdout, profile, rs.Format.BallsPerOver)

	fmt.Fprintln(os.Stdout, "\nClassification:")
	report.PrintClassificationTable(os.Stdout, []classify.Result{result}, "")
	return nil
}
