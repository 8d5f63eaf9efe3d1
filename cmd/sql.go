package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
	"github.com/spf13/cobra"

	"cricmetrics/internal/storage"
)

var sqlCmd = &cobra.Command{
	Use:   "sql <query>",
	Short: "Run a raw SQL query against the analytics database",
	Long: `Run an arbitrary SQL query against the analytics database and print results as a table.

Schema overview:
  matches(match_id, season, match_date, venue, city, team1, team2, toss_winner,
    toss_decision, winner, result_type, result_margin, player_of_match, stage)
  player_match_stats(match_id, player, team, position, not_out, team_won,
    bat_innings, runs, balls, fours, sixes, bat_dots, dismissals, fifties, hundreds,
    pp_runs/mid_runs/death_runs and the other phase splits,
    bowl_innings, balls_bowled, runs_conceded, wickets, bowl_dots, wides, noballs, ...)
  classifications(player, ruleset_version, batting_qualified, batting_archetype,
    bowling_qualified, bowling_archetype, impact_score)`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSQL,
}

func runSQL(cmd *cobra.Command, args []string) error {
	query := strings.Join(args, " ")
	db, err := storage.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open db: %w", err)
	}
	defer db.Close()

	cols, rows, err := db.QueryRaw(query)
	if err != nil {
		return err
	}
	if len(rows) == 0 {
		fmt.Println("(no rows)")
		return nil
	}

	table := tablewriter.NewTable(os.Stdout, tablewriter.WithConfig(tablewriter.Config{
		Row:    tw.CellConfig{Alignment: tw.CellAlignment{Global: tw.AlignRight}},
		Header: tw.CellConfig{Alignment: tw.CellAlignment{Global: tw.AlignCenter}},
	}))

	colsAny := make([]any, len(cols))
	for i, c := range cols {
		colsAny[i] = c
	}
	table.Header(colsAny...)

	for _, row := range rows {
		rowAny := make([]any, len(row))
		for i, v := range row {
			rowAny[i] = v
		}
		table.Append(rowAny...)
	}
	table.Render()
	fmt.Fprintf(os.Stdout, "\n(%d rows)\n", len(rows))
	return nil
}
