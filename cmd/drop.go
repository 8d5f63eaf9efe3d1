package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"cricmetrics/internal/storage"
)

var dropForce bool

// dropCmd deletes the analytics database file.
var dropCmd = &cobra.Command{
	Use:   "drop",
	Short: "Delete the analytics database",
	Long:  "Permanently delete the SQLite analytics database. All stored matches and classifications will be lost. Re-ingest your match files afterwards to rebuild.",
	Args:  cobra.NoArgs,
	RunE:  runDrop,
}

func init() {
	dropCmd.Flags().BoolVarP(&dropForce, "force", "f", false, "skip confirmation prompt")
}

func runDrop(cmd *cobra.Command, args []string) error {
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		fmt.Fprintln(os.Stdout, "Database does not exist, nothing to drop.")
		return nil
	}

	if !dropForce {
		if db, err := storage.Open(dbPath); err == nil {
			if m, p, c, err := db.Counts(); err == nil {
				fmt.Fprintf(os.Stderr, "Database holds %d matches, %d player rows, %d classifications.\n", m, p, c)
			}
			db.Close()
		}
		fmt.Fprintf(os.Stderr, "This will permanently delete: %s\n", dbPath)
		fmt.Fprintf(os.Stderr, "Re-run with --force to confirm.\n")
		return nil
	}

	if err := os.Remove(dbPath); err != nil {
		return fmt.Errorf("remove database: %w", err)
	}
	fmt.Fprintf(os.Stdout, "Deleted: %s\n", dbPath)
	return nil
}
