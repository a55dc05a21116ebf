// Package gateways implements adapters for network, filesystem and external tools.
package gateways

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/mkrail/winmedia/internal/domain/entities"
)

// Downloader streams remote artifacts to local files
type Downloader struct {
	httpClient *http.Client
	userAgent  string
}

// NewDownloader creates a new downloader. The client carries no overall
// timeout: evaluation media runs to several gigabytes and cancellation is
// handled through the request context.
func NewDownloader() *Downloader {
	return &Downloader{
		httpClient: &http.Client{},
		userAgent:  "winmedia/1.0",
	}
}

// Download streams the artifact at url to dest, overwriting any existing
// file. When the server reports a Content-Length the write must account for
// every byte, otherwise the transfer counts as interrupted.
func (d *Downloader) Download(ctx context.Context, url, dest string) (*entities.DownloadResult, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &entities.FetchError{URL: url, Err: err}
	}
	req.Header.Set("User-Agent", d.userAgent)

	resp, err := d.httpClient.Do(req)
	if err != nil {
		return nil, &entities.FetchError{URL: url, Err: err}
	}
	//nolint:errcheck // Defer close on HTTP response body
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &entities.FetchError{URL: url, Err: fmt.Errorf("HTTP %d: %s", resp.StatusCode, resp.Status)}
	}

	if dir := filepath.Dir(dest); dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return nil, fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	//nolint:gosec // G304: dest is the operator-chosen download destination
	out, err := os.Create(dest)
	if err != nil {
		return nil, fmt.Errorf("failed to create file: %w", err)
	}
	//nolint:errcheck // Defer close on file being written
	defer out.Close()

	progress := newProgressWriter(filepath.Base(dest), resp.ContentLength)
	written, err := io.Copy(io.MultiWriter(out, progress), resp.Body)
	if err != nil {
		return nil, &entities.FetchError{URL: url, Err: err}
	}

	if resp.ContentLength > 0 && written != resp.ContentLength {
		return nil, &entities.FetchError{
			URL: url,
			Err: fmt.Errorf("short download: got %d of %d bytes", written, resp.ContentLength),
		}
	}

	progress.finish()
	return &entities.DownloadResult{Path: dest, Size: written}, nil
}

// DownloadIfMissing reuses an existing file at dest instead of downloading
// again, so an interrupted conversion can be retried without refetching
// multi-gigabyte media.
func (d *Downloader) DownloadIfMissing(ctx context.Context, url, dest string) (*entities.DownloadResult, error) {
	if info, err := os.Stat(dest); err == nil && info.Mode().IsRegular() {
		fmt.Fprintf(os.Stderr, "%s already exists, skipping download\n", filepath.Base(dest))
		return &entities.DownloadResult{Path: dest, Size: info.Size(), Skipped: true}, nil
	}

	return d.Download(ctx, url, dest)
}

// progressWriter reports transfer progress on stderr at most every two
// seconds to keep multi-gigabyte downloads observable without flooding logs
type progressWriter struct {
	name    string
	total   int64
	written int64
	last    time.Time
}

func newProgressWriter(name string, total int64) *progressWriter {
	return &progressWriter{name: name, total: total, last: time.Now()}
}

func (p *progressWriter) Write(b []byte) (int, error) {
	p.written += int64(len(b))
	if time.Since(p.last) >= 2*time.Second {
		p.last = time.Now()
		if p.total > 0 {
			fmt.Fprintf(os.Stderr, "%s: %.1f%% (%.2f/%.2f GB)\r",
				p.name,
				float64(p.written)/float64(p.total)*100,
				gigabytes(p.written), gigabytes(p.total))
		} else {
			fmt.Fprintf(os.Stderr, "%s: %.2f GB\r", p.name, gigabytes(p.written))
		}
	}
	return len(b), nil
}

func (p *progressWriter) finish() {
	fmt.Fprintf(os.Stderr, "Downloaded %s (%d bytes)\n", p.name, p.written)
}

func gigabytes(n int64) float64 {
	return float64(n) / (1024 * 1024 * 1024)
}
