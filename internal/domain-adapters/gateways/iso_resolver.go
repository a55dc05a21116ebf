package gateways

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"regexp"
	"strings"
	"time"

	"github.com/mkrail/winmedia/internal/domain/entities"
)

var (
	isoURLPattern = regexp.MustCompile(`https://[^"]+\.iso`)
	linkIDPattern = regexp.MustCompile(`LinkID=(\d+)`)
)

// ISOResolver locates a direct ISO download URL by probing the vendor's
// evaluation center endpoints and known CDN layouts. Each probe is cheap and
// bounded; the resolver walks the chain in order and stops at the first hit.
type ISOResolver struct {
	httpClient *http.Client
}

// NewISOResolver creates a resolver with a short per-probe timeout
func NewISOResolver() *ISOResolver {
	return &ISOResolver{
		httpClient: &http.Client{Timeout: 5 * time.Second},
	}
}

// Resolve returns a download URL for the configured ISO source. It scans the
// API endpoints for ISO URLs and fwlink LinkIDs, then probes mirror bases
// against the known file names, and finally falls back to the configured
// evaluation link. Only a fully exhausted chain with no fallback is an error.
func (r *ISOResolver) Resolve(ctx context.Context, cfg entities.ISOSourceConfig) (string, error) {
	for _, endpoint := range cfg.Endpoints {
		if url, ok := r.probeEndpoint(ctx, endpoint); ok {
			return url, nil
		}
	}

	if len(cfg.MirrorBases) > 0 {
		fmt.Fprintln(os.Stderr, "Checking known CDN patterns...")
	}
	for _, base := range cfg.MirrorBases {
		for _, name := range cfg.FileNames {
			candidate := base + name
			if r.headOK(ctx, candidate) {
				fmt.Fprintf(os.Stderr, "Found working ISO URL: %s\n", candidate)
				return candidate, nil
			}
		}
	}

	if cfg.FallbackURL != "" {
		fmt.Fprintln(os.Stderr, "Using fallback evaluation ISO link")
		return cfg.FallbackURL, nil
	}

	return "", &entities.FetchError{
		URL: "iso-resolver",
		Err: fmt.Errorf("no ISO URL found and no fallback configured"),
	}
}

// probeEndpoint fetches one API endpoint and scans the body for a direct ISO
// URL, or for fwlink LinkIDs whose redirect target ends up at an ISO.
func (r *ISOResolver) probeEndpoint(ctx context.Context, endpoint string) (string, bool) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return "", false
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Requested-With", "XMLHttpRequest")

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return "", false
	}
	//nolint:errcheck // Defer close on HTTP response body
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return "", false
	}
	content := string(body)

	if match := isoURLPattern.FindString(content); match != "" {
		fmt.Fprintf(os.Stderr, "Found ISO URL in API: %s\n", match)
		return match, true
	}

	for _, groups := range linkIDPattern.FindAllStringSubmatch(content, -1) {
		linkID := groups[1]
		fmt.Fprintf(os.Stderr, "Testing LinkID %s...\n", linkID)

		fwlink := "https://go.microsoft.com/fwlink/?LinkID=" + linkID
		if r.redirectsToISO(ctx, fwlink) {
			fmt.Fprintf(os.Stderr, "Found working LinkID: %s\n", linkID)
			return fwlink, true
		}
	}

	return "", false
}

// redirectsToISO issues a HEAD request and reports whether the final URL
// after redirects points at an ISO file
func (r *ISOResolver) redirectsToISO(ctx context.Context, url string) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, url, nil)
	if err != nil {
		return false
	}

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return false
	}
	//nolint:errcheck // Defer close on HTTP response body
	defer resp.Body.Close()

	return resp.StatusCode == http.StatusOK &&
		strings.Contains(resp.Request.URL.String(), ".iso")
}

func (r *ISOResolver) headOK(ctx context.Context, url string) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, url, nil)
	if err != nil {
		return false
	}

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return false
	}
	//nolint:errcheck // Defer close on HTTP response body
	defer resp.Body.Close()

	return resp.StatusCode == http.StatusOK
}
