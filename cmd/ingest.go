package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"cricmetrics/internal/aggregator"
	"cricmetrics/internal/config"
	"cricmetrics/internal/ingest"
	"cricmetrics/internal/report"
	"cricmetrics/internal/storage"
)

var ingestFocus string

var ingestCmd = &cobra.Command{
	Use:   "ingest <file-or-dir> [...]",
	Short: "Parse Cricsheet match files and store per-player aggregates",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runIngest,
}

func init() {
	ingestCmd.Flags().StringVar(&ingestFocus, "player", "", "mark this player's rows in the scorecard output")
}

func runIngest(cmd *cobra.Command, args []string) error {
	rs, err := loadRuleset()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return fmt.Errorf("create db dir: %w", err)
	}
	db, err := storage.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	defer db.Close()

	files, err := expandArgs(args)
	if err != nil {
		return err
	}

	var stored, skipped, failed int
	for _, path := range files {
		switch err := ingestOne(db, rs, path, len(files) == 1); {
		case err == nil:
			stored++
		case err == errAlreadyStored:
			skipped++
		default:
			failed++
			logrus.Warnf("%s: %v", path, err)
		}
	}

	fmt.Fprintf(os.Stdout, "Ingested %d matches (%d already stored, %d failed) from %d files.\n",
		stored, skipped, failed, len(files))
	return nil
}

var errAlreadyStored = fmt.Errorf("match already stored")

func ingestOne(db *storage.DB, rs *config.Ruleset, path string, showCards bool) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	raw, err := ingest.ParseMatch(data)
	if err != nil {
		return err
	}

	exists, err := db.MatchExists(raw.Info.MatchID)
	if err != nil {
		return fmt.Errorf("check match: %w", err)
	}
	if exists {
		logrus.Debugf("%s already stored, skipping", shortID(raw.Info.MatchID))
		return errAlreadyStored
	}

	aggs, verrs, err := aggregator.Aggregate(raw, rs.Format)
	if err != nil {
		return fmt.Errorf("aggregate: %w", err)
	}
	for _, ve := range verrs {
		logrus.Warnf("skipped delivery: %v", ve)
	}

	if err := db.InsertMatch(raw.Info); err != nil {
		return fmt.Errorf("insert match: %w", err)
	}
	if err := db.InsertPlayerMatchAggregates(aggs); err != nil {
		return fmt.Errorf("insert player aggregates: %w", err)
	}

	if showCards {
		report.PrintMatchSummary(os.Stdout, raw.Info)
		report.PrintBattingScorecard(os.Stdout, aggs, ingestFocus)
		report.PrintBowlingScorecard(os.Stdout, aggs, rs.Format.BallsPerOver, ingestFocus)
	} else {
		logrus.Infof("stored %s vs %s (%s)", raw.Info.Team1, raw.Info.Team2, raw.Info.MatchDate)
	}
	return nil
}

// expandArgs resolves file and directory arguments to a flat list of .json
// match files.
func expandArgs(args []string) ([]string, error) {
	var files []string
	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			files = append(files, arg)
			continue
		}
		entries, err := os.ReadDir(arg)
		if err != nil {
			return nil, err
		}
		for _, e := range entries {
			if !e.IsDir() && strings.HasSuffix(e.Name(), ".json") {
				files = append(files, filepath.Join(arg, e.Name()))
			}
		}
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no match files found")
	}
	return files, nil
}

func shortID(id string) string {
	if len(id) > 12 {
		return id[:12]
	}
	return id
}
