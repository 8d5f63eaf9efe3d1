package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"cricmetrics/internal/config"
)

var (
	dbPath      string
	rulesetPath string
	verbose     bool
)

var rootCmd = &cobra.Command{
	Use:   "cricmetrics",
	Short: "T20 cricket player analytics tool",
	Long: "Ingest ball-by-ball match data, compute per-player metrics,\n" +
		"classify playing styles and track form across a season.",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logrus.SetOutput(os.Stderr)
		logrus.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
		if verbose {
			logrus.SetLevel(logrus.DebugLevel)
		}
	},
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	defaultDB := filepath.Join(mustUserHome(), ".cricmetrics", "cricmetrics.db")
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", defaultDB, "path to SQLite database")
	rootCmd.PersistentFlags().StringVar(&rulesetPath, "ruleset", "", "path to a YAML ruleset overriding the built-in defaults")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	rootCmd.AddCommand(fetchCmd)
	rootCmd.AddCommand(ingestCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(playerCmd)
	rootCmd.AddCommand(teamCmd)
	rootCmd.AddCommand(classifyCmd)
	rootCmd.AddCommand(formCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(askCmd)
	rootCmd.AddCommand(sqlCmd)
	rootCmd.AddCommand(dropCmd)
}

func mustUserHome() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return home
}

// loadRuleset layers the built-in defaults with the --ruleset file and any
// CRICMETRICS_* environment overrides. A broken ruleset aborts the command.
func loadRuleset() (*config.Ruleset, error) {
	rs, err := config.Load(rulesetPath)
	if err != nil {
		return nil, err
	}
	logrus.Debugf("ruleset %s loaded (impact %s)", rs.Version, rs.Impact.Version)
	return rs, nil
}
