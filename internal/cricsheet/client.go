// Package cricsheet downloads ball-by-ball match archives from cricsheet.org.
package cricsheet

import (
	"archive/zip"
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// DefaultArchiveURL is the Cricsheet bundle of all IPL matches in JSON form.
const DefaultArchiveURL = "https://cricsheet.org/downloads/ipl_json.zip"

// Client fetches match archives over HTTP.
type Client struct {
	httpClient *http.Client
}

func NewClient() *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 5 * time.Minute},
	}
}

// DownloadArchive fetches the zip archive at url. Cricsheet archives run to
// tens of megabytes, so the whole body is buffered in memory and handed to
// ExtractMatches.
func (c *Client) DownloadArchive(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("cricsheet: fetch %s: %w", url, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound:
		return nil, fmt.Errorf("cricsheet: archive not found at %s, check the competition slug", url)
	case http.StatusTooManyRequests, http.StatusServiceUnavailable:
		return nil, fmt.Errorf("cricsheet: rate limited (HTTP %d), wait a moment and retry", resp.StatusCode)
	default:
		return nil, fmt.Errorf("cricsheet: HTTP %d fetching %s", resp.StatusCode, url)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("cricsheet: read archive body: %w", err)
	}
	return data, nil
}

// ExtractMatches unpacks every .json entry of the archive into destDir and
// returns the written paths. Entries already present on disk are overwritten;
// the README and other non-match entries are skipped.
func ExtractMatches(archive []byte, destDir string) ([]string, error) {
	zr, err := zip.NewReader(bytes.NewReader(archive), int64(len(archive)))
	if err != nil {
		return nil, fmt.Errorf("cricsheet: open archive: %w", err)
	}
	if err := os.MkdirAll(destDir, 0o755); err != nil {
		return nil, err
	}

	var paths []string
	for _, f := range zr.File {
		name := filepath.Base(f.Name)
		if !strings.HasSuffix(name, ".json") {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return nil, fmt.Errorf("cricsheet: open entry %s: %w", f.Name, err)
		}
		data, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			return nil, fmt.Errorf("cricsheet: read entry %s: %w", f.Name, err)
		}
		dest := filepath.Join(destDir, name)
		if err := os.WriteFile(dest, data, 0o644); err != nil {
			return nil, err
		}
		paths = append(paths, dest)
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("cricsheet: archive contains no match files")
	}
	return paths, nil
}
