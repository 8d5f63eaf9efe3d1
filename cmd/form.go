package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"cricmetrics/internal/form"
	"cricmetrics/internal/metrics"
	"cricmetrics/internal/model"
	"cricmetrics/internal/report"
	"cricmetrics/internal/storage"
)

var (
	formMetric string
	formWindow int
)

var formCmd = &cobra.Command{
	Use:   "form <player>",
	Short: "Rolling form, consistency and trend for one player",
	Long: `Tracks a single per-match metric across a player's stored matches in
chronological order: rolling mean and consistency index per window, plus a
trend verdict comparing the latest window against the one before it.

Supported metrics: runs, strike_rate, boundary_pct, dot_pct,
wickets, economy, dot_ball_pct.`,
	Args: cobra.ExactArgs(1),
	RunE: runForm,
}

func init() {
	formCmd.Flags().StringVar(&formMetric, "metric", "runs", "per-match metric to track")
	formCmd.Flags().IntVar(&formWindow, "window", 0, "rolling window size (default from ruleset)")
}

func runForm(cmd *cobra.Command, args []string) error {
	name := args[0]

	rs, err := loadRuleset()
	if err != nil {
		return err
	}
	window := formWindow
	if window == 0 {
		window = rs.Form.Window
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

	series := model.FormSeries{Player: name, Metric: formMetric}
	for _, m := range matches {
		v := metrics.MatchValue(m, formMetric, rs.Format.BallsPerOver)
		if !v.Valid {
			continue
		}
		series.Points = append(series.Points, model.FormPoint{
			MatchID:   m.MatchID,
			MatchDate: m.MatchDate,
			Value:     v.Value,
		})
	}
	if len(series.Points) == 0 {
		return fmt.Errorf("metric %q has no defined values for %s (unknown metric, or no innings in that role)",
			formMetric, name)
	}

	windows, err := form.Rolling(series, window)
	if err != nil {
		return err
	}
	trend := form.DetectTrend(series, window, rs.Form.TrendDelta, metrics.HigherIsBetter(formMetric))

	report.PrintFormTable(os.Stdout, series, windows, trend)
	return nil
}
