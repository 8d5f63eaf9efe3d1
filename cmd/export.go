package cmd

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/goccy/go-json"
	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"cricmetrics/internal/aggregator"
	"cricmetrics/internal/classify"
	"cricmetrics/internal/config"
	"cricmetrics/internal/metrics"
	"cricmetrics/internal/model"
	"cricmetrics/internal/storage"
)

var (
	exportOut    string
	exportFormat string
)

// exportEntry is one player's feature vector in the export file. Undefined
// metrics serialize as null (JSON) or an empty cell (CSV), never as zero.
type exportEntry struct {
	Player           string              `json:"player"`
	Matches          int                 `json:"matches"`
	RulesetVersion   string              `json:"ruleset_version"`
	BattingArchetype string              `json:"batting_archetype"`
	BowlingArchetype string              `json:"bowling_archetype"`
	Metrics          map[string]*float64 `json:"metrics"`
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export per-player feature vectors as JSON or CSV",
	Long: `Computes the season metric vector and classification for every stored
player and writes them as a machine-readable dataset, one row per player.

Example:
  cricmetrics export --format csv --out players.csv
  cricmetrics export --out players.json`,
	Args: cobra.NoArgs,
	RunE: runExport,
}

func init() {
	exportCmd.Flags().StringVar(&exportOut, "out", "", "output file path (default: stdout)")
	exportCmd.Flags().StringVar(&exportFormat, "format", "json", "output format: json or csv")
}

func runExport(cmd *cobra.Command, args []string) error {
	if exportFormat != "json" && exportFormat != "csv" {
		return fmt.Errorf("unknown format %q: want json or csv", exportFormat)
	}

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
		return fmt.Errorf("no players stored yet")
	}

	entries := make([]exportEntry, 0, len(players))
	var names []string
	for _, name := range players {
		matches, err := db.GetPlayerMatchAggregates(name)
		if err != nil {
			return fmt.Errorf("query aggregates for %s: %w", name, err)
		}
		profile := aggregator.BuildSeasonProfile(name, matches)
		vector := metrics.Compute(name, "season", matches, profile, rs)
		result := classify.Classify(vector, profile, rs)

		if names == nil {
			names = lo.Map(vector.Metrics, func(m model.Metric, _ int) string { return m.Name })
		}
		entries = append(entries, exportEntry{
			Player:           name,
			Matches:          profile.Matches,
			RulesetVersion:   rs.Version,
			BattingArchetype: result.Batting.Archetype.String(),
			BowlingArchetype: result.Bowling.Archetype.String(),
			Metrics: lo.Associate(vector.Metrics, func(m model.Metric) (string, *float64) {
				if !m.Stat.Valid {
					return m.Name, nil
				}
				v := m.Stat.Value
				return m.Name, &v
			}),
		})
	}

	out := io.Writer(os.Stdout)
	if exportOut != "" {
		f, err := os.Create(exportOut)
		if err != nil {
			return fmt.Errorf("create output: %w", err)
		}
		defer f.Close()
		out = f
	}

	switch exportFormat {
	case "csv":
		err = writeCSV(out, entries, names)
	default:
		err = writeJSON(out, entries, rs)
	}
	if err != nil {
		return err
	}
	if exportOut != "" {
		fmt.Fprintf(os.Stderr, "Wrote %d players to %s\n", len(entries), exportOut)
	}
	return nil
}

func writeJSON(w io.Writer, entries []exportEntry, rs *config.Ruleset) error {
	doc := map[string]any{
		"ruleset_version": rs.Version,
		"impact_version":  rs.Impact.Version,
		"players":         entries,
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}

func writeCSV(w io.Writer, entries []exportEntry, names []string) error {
	cw := csv.NewWriter(w)
	header := append([]string{"player", "matches", "ruleset_version",
		"batting_archetype", "bowling_archetype"}, names...)
	if err := cw.Write(header); err != nil {
		return err
	}
	for _, e := range entries {
		row := []string{e.Player, strconv.Itoa(e.Matches), e.RulesetVersion,
			e.BattingArchetype, e.BowlingArchetype}
		for _, name := range names {
			v := e.Metrics[name]
			if v == nil {
				row = append(row, "")
			} else {
				row = append(row, strconv.FormatFloat(*v, 'f', 4, 64))
			}
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
