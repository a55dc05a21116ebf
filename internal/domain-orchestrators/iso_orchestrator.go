// Package orchestrators coordinates the media fetch pipelines across gateways.
package orchestrators

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/mkrail/winmedia/internal/domain/entities"
	"github.com/mkrail/winmedia/internal/domain/interfaces"
)

// ISOResolver interface for locating a direct ISO download URL
type ISOResolver interface {
	Resolve(ctx context.Context, cfg entities.ISOSourceConfig) (string, error)
}

// MediaDownloader interface for streaming media artifacts to disk
type MediaDownloader interface {
	Download(ctx context.Context, url, dest string) (*entities.DownloadResult, error)
	DownloadIfMissing(ctx context.Context, url, dest string) (*entities.DownloadResult, error)
}

// SignatureVerifier interface for detached GPG signature checks
type SignatureVerifier interface {
	VerifyArtifact(ctx context.Context, path string, sec entities.SecurityConfig) error
}

// ISOOrchestrator coordinates the direct ISO pipeline: resolve a download
// URL, stream the image, optionally verify its signature.
type ISOOrchestrator struct {
	resolver   ISOResolver
	downloader MediaDownloader
	signatures SignatureVerifier
	logger     interfaces.Logger
	outputDir  string
}

// ISOOrchestratorConfig holds configuration for the orchestrator
type ISOOrchestratorConfig struct {
	OutputDir string
}

// NewISOOrchestrator creates a new ISO orchestrator
func NewISOOrchestrator(
	resolver ISOResolver,
	downloader MediaDownloader,
	signatures SignatureVerifier,
	logger interfaces.Logger,
	config ISOOrchestratorConfig,
) *ISOOrchestrator {
	outputDir := config.OutputDir
	if outputDir == "" {
		outputDir = "."
	}
	if logger == nil {
		logger = &interfaces.NoOpLogger{}
	}

	return &ISOOrchestrator{
		resolver:   resolver,
		downloader: downloader,
		signatures: signatures,
		logger:     logger,
		outputDir:  outputDir,
	}
}

// ISOResult contains the result of an ISO fetch operation
type ISOResult struct {
	Recipe           *entities.MediaRecipe
	URL              string
	Download         *entities.DownloadResult
	ResolveDuration  time.Duration
	DownloadDuration time.Duration
	TotalDuration    time.Duration
	Success          bool
	Error            error
}

// FetchISO executes the complete ISO pipeline for a recipe
func (o *ISOOrchestrator) FetchISO(ctx context.Context, recipe *entities.MediaRecipe) (*ISOResult, error) {
	startTime := time.Now()
	result := &ISOResult{Recipe: recipe}

	// Step 1: Resolve a download URL
	o.logger.Info("Searching for bootable Windows ISOs", interfaces.F("recipe", recipe.Name))
	resolveStart := time.Now()
	url, err := o.resolver.Resolve(ctx, recipe.ISO)
	if err != nil {
		result.Error = fmt.Errorf("failed to resolve ISO URL: %w", err)
		return result, result.Error
	}
	result.URL = url
	result.ResolveDuration = time.Since(resolveStart)

	// Step 2: Download the image
	fileName := recipe.Output.ISOFile
	if fileName == "" {
		fileName = "win.iso"
	}
	dest := filepath.Join(o.outputDir, fileName)
	o.logger.Info("Downloading ISO", interfaces.F("url", url), interfaces.F("dest", dest))

	downloadStart := time.Now()
	download, err := o.downloader.Download(ctx, url, dest)
	if err != nil {
		result.Error = fmt.Errorf("failed to download ISO: %w", err)
		return result, result.Error
	}
	result.Download = download
	result.DownloadDuration = time.Since(downloadStart)

	// Step 3: Signature verification (if enabled)
	if recipe.Security.VerifySignature {
		if err := o.signatures.VerifyArtifact(ctx, download.Path, recipe.Security); err != nil {
			result.Error = fmt.Errorf("signature verification failed: %w", err)
			return result, result.Error
		}
		o.logger.Info("Signature verified", interfaces.F("file", download.Path))
	}

	result.Success = true
	result.TotalDuration = time.Since(startTime)
	return result, nil
}

// GetSummary returns a human-readable summary of the fetch
func (r *ISOResult) GetSummary() string {
	if !r.Success {
		return fmt.Sprintf("ISO fetch failed: %v", r.Error)
	}

	return fmt.Sprintf(`ISO ready!
File: %s
Size: %d bytes
Source: %s
Resolve: %v
Download: %v
Total: %v`,
		r.Download.Path,
		r.Download.Size,
		r.URL,
		r.ResolveDuration,
		r.DownloadDuration,
		r.TotalDuration,
	)
}
