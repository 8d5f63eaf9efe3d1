package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"cricmetrics/internal/cricsheet"
)

var (
	fetchURL  string
	fetchDest string
)

var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Download a Cricsheet match archive and unpack it locally",
	Args:  cobra.NoArgs,
	RunE:  runFetch,
}

func init() {
	fetchCmd.Flags().StringVar(&fetchURL, "url", cricsheet.DefaultArchiveURL, "archive URL to download")
	fetchCmd.Flags().StringVar(&fetchDest, "dest", "", "directory to unpack match files into (default ~/.cricmetrics/matches)")
}

func runFetch(cmd *cobra.Command, args []string) error {
	dest := fetchDest
	if dest == "" {
		dest = filepath.Join(mustUserHome(), ".cricmetrics", "matches")
	}

	logrus.Infof("downloading %s", fetchURL)
	client := cricsheet.NewClient()
	archive, err := client.DownloadArchive(cmd.Context(), fetchURL)
	if err != nil {
		return err
	}
	logrus.Debugf("archive size: %d bytes", len(archive))

	paths, err := cricsheet.ExtractMatches(archive, dest)
	if err != nil {
		return err
	}

	fmt.Fprintf(os.Stdout, "Unpacked %d match files into %s\n", len(paths), dest)
	fmt.Fprintf(os.Stdout, "Run 'cricmetrics ingest %s' to load them.\n", dest)
	return nil
}
