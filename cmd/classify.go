package cmd

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"cricmetrics/internal/aggregator"
	"cricmetrics/internal/classify"
	"cricmetrics/internal/metrics"
	"cricmetrics/internal/report"
	"cricmetrics/internal/storage"
)

var classifyQualifiedOnly bool

var classifyCmd = &cobra.Command{
	Use:   "classify",
	Short: "Classify every stored player under the active ruleset",
	Args:  cobra.NoArgs,
	RunE:  runClassify,
}

func init() {
	classifyCmd.Flags().BoolVar(&classifyQualifiedOnly, "qualified-only", false,
		"hide players below the minimum sample sizes")
}

func runClassify(cmd *cobra.Command, args []string) error {
	rs, err := loadRuleset()
	if err != nil {
		return err
	}

	db, err := storage.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	defer db.Close()

	players, err := db.ListPlayers()
	if err != nil {
		return fmt.Errorf("list players: %w", err)
	}
	if len(players) == 0 {
		fmt.Fprintln(os.Stdout, "No players stored yet. Run 'cricmetrics ingest' first.")
		return nil
	}

	var results []classify.Result
	for _, name := range players {
		matches, err := db.GetPlayerMatchAggregates(name)
		if err != nil {
			return fmt.Errorf("query aggregates for %s: %w", name, err)
		}
		profile := aggregator.BuildSeasonProfile(name, matches)
		vector := metrics.Compute(name, "season", matches, profile, rs)
		result := classify.Classify(vector, profile, rs)

		if err := db.UpsertClassification(result); err != nil {
			return fmt.Errorf("store classification for %s: %w", name, err)
		}
		if classifyQualifiedOnly && !result.Batting.Qualified && !result.Bowling.Qualified {
			continue
		}
		results = append(results, result)
	}

	logrus.Infof("classified %d players under ruleset %s", len(players), rs.Version)
	report.PrintClassificationTable(os.Stdout, results, "")
	return nil
}
