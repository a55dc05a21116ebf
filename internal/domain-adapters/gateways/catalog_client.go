package gateways

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/mkrail/winmedia/internal/domain/entities"
	catalogxml "github.com/mkrail/winmedia/internal/external-adapters/xml"
)

// CatalogClient retrieves the Microsoft product catalog and turns it into
// CatalogEntry records. The catalog ships as a CAB archive wrapping a single
// XML document.
type CatalogClient struct {
	httpClient *http.Client
	converter  *Converter
	runner     *ToolRunner
	parser     *catalogxml.CatalogParser
}

// NewCatalogClient creates a catalog client that unpacks the CAB through the
// given converter
func NewCatalogClient(converter *Converter) *CatalogClient {
	return &CatalogClient{
		httpClient: &http.Client{
			Timeout: 2 * time.Minute, // the catalog CAB is around a megabyte
		},
		converter: converter,
		runner:    NewToolRunner(),
		parser:    catalogxml.NewCatalogParser(),
	}
}

// FetchEntries downloads the catalog CAB from catalogURL, extracts the named
// document and parses it. Network failures surface as *entities.FetchError,
// extraction and parse failures as *entities.ParseError.
func (c *CatalogClient) FetchEntries(ctx context.Context, catalogURL, document string) ([]entities.CatalogEntry, error) {
	cabPath, err := c.downloadCatalog(ctx, catalogURL)
	if err != nil {
		return nil, err
	}
	//nolint:errcheck // Best effort temp file cleanup
	defer os.Remove(cabPath)

	data, err := c.extractDocument(ctx, cabPath, document)
	if err != nil {
		return nil, err
	}

	return c.parser.Parse(data)
}

func (c *CatalogClient) downloadCatalog(ctx context.Context, catalogURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, catalogURL, nil)
	if err != nil {
		return "", &entities.FetchError{URL: catalogURL, Err: err}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", &entities.FetchError{URL: catalogURL, Err: err}
	}
	//nolint:errcheck // Defer close on HTTP response body
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", &entities.FetchError{URL: catalogURL, Err: fmt.Errorf("HTTP %d: %s", resp.StatusCode, resp.Status)}
	}

	tmp, err := os.CreateTemp("", "winmedia-catalog-*.cab")
	if err != nil {
		return "", fmt.Errorf("failed to create temp file: %w", err)
	}

	if _, err := io.Copy(tmp, resp.Body); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
		return "", &entities.FetchError{URL: catalogURL, Err: err}
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())
		return "", fmt.Errorf("failed to close temp file: %w", err)
	}

	return tmp.Name(), nil
}

// extractDocument tries cabextract first, then tar (which understands CAB on
// some platforms), then 7z, and finally scans the raw CAB bytes for the
// embedded XML span. The raw scan works because the catalog CAB stores its
// single XML member uncompressed.
func (c *CatalogClient) extractDocument(ctx context.Context, cabPath, document string) ([]byte, error) {
	tmpDir, err := os.MkdirTemp("", "winmedia-catalog-")
	if err != nil {
		return nil, fmt.Errorf("failed to create temp dir: %w", err)
	}
	//nolint:errcheck // Best effort temp dir cleanup
	defer os.RemoveAll(tmpDir)

	if err := c.converter.Unpack(ctx, cabPath, tmpDir); err == nil {
		if data, err := os.ReadFile(filepath.Join(tmpDir, document)); err == nil {
			return data, nil
		}
	}

	if _, err := c.runner.Run(ctx, RunConfig{
		Tool: "tar",
		Args: []string{"xf", cabPath, document},
		Dir:  tmpDir,
	}); err == nil {
		if data, err := os.ReadFile(filepath.Join(tmpDir, document)); err == nil {
			return data, nil
		}
	}

	if _, err := c.runner.Run(ctx, RunConfig{
		Tool: "7z",
		Args: []string{"e", "-y", "-o" + tmpDir, cabPath, document},
	}); err == nil {
		if data, err := os.ReadFile(filepath.Join(tmpDir, document)); err == nil {
			return data, nil
		}
	}

	if data, ok := scanForXML(cabPath); ok {
		return data, nil
	}

	return nil, &entities.ParseError{
		Source: cabPath,
		Err:    fmt.Errorf("could not extract %s from catalog CAB, install cabextract", document),
	}
}

func scanForXML(cabPath string) ([]byte, bool) {
	raw, err := os.ReadFile(cabPath)
	if err != nil {
		return nil, false
	}

	start := bytes.Index(raw, []byte("<?xml"))
	if start < 0 {
		return nil, false
	}

	endTag := []byte("</Products>")
	end := bytes.Index(raw[start:], endTag)
	if end < 0 {
		return nil, false
	}

	return raw[start : start+end+len(endTag)], true
}
