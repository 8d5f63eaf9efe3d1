package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"cricmetrics/internal/report"
	"cricmetrics/internal/storage"
	"cricmetrics/internal/team"
)

var (
	teamSeason   int
	teamVenueMin int
)

var teamCmd = &cobra.Command{
	Use:   "team <name>",
	Short: "Win/loss record, venue splits and toss impact for one team",
	Long: `Summarises a team's stored results: overall win/loss record with average
and highest innings totals, its top run scorers, per-venue win percentages and
how often winning the toss converted into winning the match.`,
	Args: cobra.ExactArgs(1),
	RunE: runTeam,
}

func init() {
	teamCmd.Flags().IntVar(&teamSeason, "season", 0, "restrict to one season (default: all)")
	teamCmd.Flags().IntVar(&teamVenueMin, "venue-min", 3, "minimum matches at a venue to include it")
}

func runTeam(cmd *cobra.Command, args []string) error {
	name := args[0]

	db, err := storage.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	defer db.Close()

	matches, err := db.GetTeamMatches(name, teamSeason)
	if err != nil {
		return fmt.Errorf("query matches: %w", err)
	}
	if len(matches) == 0 {
		return fmt.Errorf("no stored matches for team %q", name)
	}

	totals, err := db.GetTeamInningsTotals(name, teamSeason)
	if err != nil {
		return fmt.Errorf("query innings totals: %w", err)
	}
	batsmen, err := db.GetTeamTopBatsmen(name, teamSeason, 5)
	if err != nil {
		return fmt.Errorf("query top batsmen: %w", err)
	}

	rec := team.BuildRecord(name, matches)
	report.PrintTeamProfile(os.Stdout, rec, team.SummarizeTotals(totals), team.TossRecord(name, matches))

	if len(batsmen) > 0 {
		fmt.Fprintln(os.Stdout, "\nTop run scorers:")
		report.PrintTeamBatsmen(os.Stdout, batsmen)
	}

	if venues := team.ByVenue(name, matches, teamVenueMin); len(venues) > 0 {
		fmt.Fprintln(os.Stdout, "\nVenue record:")
		report.PrintTeamVenues(os.Stdout, venues)
	}
	return nil
}
