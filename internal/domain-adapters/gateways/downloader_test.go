package gateways

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mkrail/winmedia/internal/domain/entities"
)

func TestDownloader_Download(t *testing.T) {
	body := []byte("pretend this is installation media")
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write(body)
	}))
	defer srv.Close()

	dest := filepath.Join(t.TempDir(), "win.iso")
	d := NewDownloader()

	result, err := d.Download(context.Background(), srv.URL+"/win.iso", dest)
	if err != nil {
		t.Fatalf("Download() error: %v", err)
	}
	if result.Size != int64(len(body)) {
		t.Errorf("Size = %d, want %d", result.Size, len(body))
	}
	if result.Skipped {
		t.Error("Skipped = true for a fresh download")
	}

	got, err := os.ReadFile(dest)
	if err != nil {
		t.Fatalf("Failed to read downloaded file: %v", err)
	}
	if string(got) != string(body) {
		t.Errorf("Downloaded content = %q, want %q", got, body)
	}
}

func TestDownloader_Download_HTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	d := NewDownloader()
	_, err := d.Download(context.Background(), srv.URL+"/missing.iso", filepath.Join(t.TempDir(), "out.iso"))
	if err == nil {
		t.Fatal("Expected error for 404 response")
	}

	var fetchErr *entities.FetchError
	if !errors.As(err, &fetchErr) {
		t.Fatalf("Expected *entities.FetchError, got %T: %v", err, err)
	}
}

func TestDownloader_Download_InterruptedTransfer(t *testing.T) {
	// Declares a large body but writes only a fragment, so the server
	// closes the connection mid-transfer.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Length", "1048576")
		_, _ = w.Write([]byte("only a fragment of the promised body"))
	}))
	defer srv.Close()

	oldStderr := os.Stderr
	r, pipeW, err := os.Pipe()
	if err != nil {
		t.Fatal(err)
	}
	os.Stderr = pipeW

	d := NewDownloader()
	_, downloadErr := d.Download(context.Background(), srv.URL+"/win.esd", filepath.Join(t.TempDir(), "win.esd"))

	_ = pipeW.Close()
	os.Stderr = oldStderr
	captured, _ := io.ReadAll(r)

	if downloadErr == nil {
		t.Fatal("Expected error for interrupted transfer")
	}
	var fetchErr *entities.FetchError
	if !errors.As(downloadErr, &fetchErr) {
		t.Fatalf("Expected *entities.FetchError, got %T: %v", downloadErr, downloadErr)
	}
	if strings.Contains(string(captured), "Downloaded") {
		t.Errorf("Interrupted transfer logged a success line: %q", captured)
	}
}

func TestDownloader_Download_OverwritesExisting(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("new content"))
	}))
	defer srv.Close()

	dest := filepath.Join(t.TempDir(), "win.iso")
	if err := os.WriteFile(dest, []byte("stale partial download"), 0600); err != nil {
		t.Fatal(err)
	}

	d := NewDownloader()
	if _, err := d.Download(context.Background(), srv.URL, dest); err != nil {
		t.Fatalf("Download() error: %v", err)
	}

	got, _ := os.ReadFile(dest)
	if string(got) != "new content" {
		t.Errorf("Content = %q, want %q", got, "new content")
	}
}

func TestDownloader_Download_CreatesParentDirectory(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("data"))
	}))
	defer srv.Close()

	dest := filepath.Join(t.TempDir(), "media", "output", "win.esd")
	d := NewDownloader()

	if _, err := d.Download(context.Background(), srv.URL, dest); err != nil {
		t.Fatalf("Download() error: %v", err)
	}
	if _, err := os.Stat(dest); err != nil {
		t.Errorf("Expected file at %s: %v", dest, err)
	}
}

func TestDownloader_DownloadIfMissing_SkipsExisting(t *testing.T) {
	requests := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		requests++
		_, _ = w.Write([]byte("data"))
	}))
	defer srv.Close()

	dest := filepath.Join(t.TempDir(), "win.esd")
	existing := []byte("already downloaded media")
	if err := os.WriteFile(dest, existing, 0600); err != nil {
		t.Fatal(err)
	}

	d := NewDownloader()
	result, err := d.DownloadIfMissing(context.Background(), srv.URL, dest)
	if err != nil {
		t.Fatalf("DownloadIfMissing() error: %v", err)
	}
	if !result.Skipped {
		t.Error("Skipped = false, want true for existing file")
	}
	if result.Size != int64(len(existing)) {
		t.Errorf("Size = %d, want %d", result.Size, len(existing))
	}
	if requests != 0 {
		t.Errorf("Server received %d requests, want 0", requests)
	}
}

func TestDownloader_DownloadIfMissing_FetchesWhenAbsent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("fresh"))
	}))
	defer srv.Close()

	dest := filepath.Join(t.TempDir(), "win.esd")
	d := NewDownloader()

	result, err := d.DownloadIfMissing(context.Background(), srv.URL, dest)
	if err != nil {
		t.Fatalf("DownloadIfMissing() error: %v", err)
	}
	if result.Skipped {
		t.Error("Skipped = true, want false when file is absent")
	}
}
