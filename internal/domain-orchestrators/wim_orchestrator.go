package orchestrators

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/mkrail/winmedia/internal/domain/entities"
	"github.com/mkrail/winmedia/internal/domain/interfaces"
	"github.com/mkrail/winmedia/internal/domain/services"
)

// CatalogFetcher interface for retrieving product catalog entries
type CatalogFetcher interface {
	FetchEntries(ctx context.Context, catalogURL, document string) ([]entities.CatalogEntry, error)
}

// ChecksumVerifier interface for checking published digests
type ChecksumVerifier interface {
	Verify(path, expected string) error
}

// MediaConverter interface for external tool preflight and ESD conversion
type MediaConverter interface {
	CheckTools() error
	ExportWIM(ctx context.Context, esdPath, wimPath string) error
}

// WIMOrchestrator coordinates the catalog pipeline: verify tools, fetch the
// product catalog, pick an edition, download the ESD, verify it and export a
// WIM. Tool preflight runs before any network work so a missing converter
// never wastes a multi-gigabyte download.
type WIMOrchestrator struct {
	catalog    CatalogFetcher
	selector   *services.SelectionService
	downloader MediaDownloader
	checksums  ChecksumVerifier
	signatures SignatureVerifier
	converter  MediaConverter
	logger     interfaces.Logger
	outputDir  string
}

// WIMOrchestratorConfig holds configuration for the orchestrator
type WIMOrchestratorConfig struct {
	OutputDir string
}

// NewWIMOrchestrator creates a new WIM orchestrator
func NewWIMOrchestrator(
	catalog CatalogFetcher,
	selector *services.SelectionService,
	downloader MediaDownloader,
	checksums ChecksumVerifier,
	signatures SignatureVerifier,
	converter MediaConverter,
	logger interfaces.Logger,
	config WIMOrchestratorConfig,
) *WIMOrchestrator {
	outputDir := config.OutputDir
	if outputDir == "" {
		outputDir = "."
	}
	if logger == nil {
		logger = &interfaces.NoOpLogger{}
	}

	return &WIMOrchestrator{
		catalog:    catalog,
		selector:   selector,
		downloader: downloader,
		checksums:  checksums,
		signatures: signatures,
		converter:  converter,
		logger:     logger,
		outputDir:  outputDir,
	}
}

// WIMResult contains the result of a WIM build operation
type WIMResult struct {
	Recipe           *entities.MediaRecipe
	Entry            *entities.CatalogEntry
	Matched          int
	Download         *entities.DownloadResult
	WIMPath          string
	CatalogDuration  time.Duration
	DownloadDuration time.Duration
	ConvertDuration  time.Duration
	TotalDuration    time.Duration
	Success          bool
	Error            error
}

// BuildWIM executes the complete catalog pipeline for a recipe
func (o *WIMOrchestrator) BuildWIM(ctx context.Context, recipe *entities.MediaRecipe) (*WIMResult, error) {
	startTime := time.Now()
	result := &WIMResult{Recipe: recipe}

	// Step 1: Tool preflight, before any network work
	if err := o.converter.CheckTools(); err != nil {
		result.Error = fmt.Errorf("tool preflight failed: %w", err)
		return result, result.Error
	}

	// Step 2: Fetch the product catalog
	o.logger.Info("Fetching product catalog", interfaces.F("url", recipe.Catalog.URL))
	catalogStart := time.Now()
	catalogEntries, err := o.catalog.FetchEntries(ctx, recipe.Catalog.URL, recipe.Catalog.Document)
	if err != nil {
		result.Error = fmt.Errorf("failed to fetch catalog: %w", err)
		return result, result.Error
	}
	result.CatalogDuration = time.Since(catalogStart)
	o.logger.Info("Catalog loaded", interfaces.F("entries", len(catalogEntries)))

	// Step 3: Select an edition
	entry, matched, err := o.selector.Select(catalogEntries, recipe.Selection)
	if err != nil {
		result.Error = err
		return result, result.Error
	}
	result.Entry = entry
	result.Matched = matched
	if matched > 1 {
		o.logger.Warn("Multiple catalog entries matched, using first in catalog order",
			interfaces.F("matched", matched), interfaces.F("file", entry.FileName))
	}
	o.logger.Info("Selected media",
		interfaces.F("file", entry.FileName),
		interfaces.F("edition", entry.Edition),
		interfaces.F("language", entry.LanguageCode),
		interfaces.F("arch", entry.Architecture))

	// Step 4: Download the ESD, reusing an existing file
	esdFile := recipe.Output.ESDFile
	if esdFile == "" {
		esdFile = "win.esd"
	}
	esdPath := filepath.Join(o.outputDir, esdFile)

	downloadStart := time.Now()
	download, err := o.downloader.DownloadIfMissing(ctx, entry.URL, esdPath)
	if err != nil {
		result.Error = fmt.Errorf("failed to download ESD: %w", err)
		return result, result.Error
	}
	result.Download = download
	result.DownloadDuration = time.Since(downloadStart)

	// Step 5: Checksum against the catalog-published hash
	if recipe.Security.VerifyChecksum {
		if entry.SHA1 == "" {
			o.logger.Warn("Catalog entry has no SHA1, skipping checksum", interfaces.F("file", entry.FileName))
		} else {
			o.logger.Info("Verifying checksum", interfaces.F("file", download.Path))
			if err := o.checksums.Verify(download.Path, entry.SHA1); err != nil {
				result.Error = fmt.Errorf("checksum verification failed: %w", err)
				return result, result.Error
			}
		}
	}

	// Step 6: Signature verification (if enabled)
	if recipe.Security.VerifySignature {
		if err := o.signatures.VerifyArtifact(ctx, download.Path, recipe.Security); err != nil {
			result.Error = fmt.Errorf("signature verification failed: %w", err)
			return result, result.Error
		}
		o.logger.Info("Signature verified", interfaces.F("file", download.Path))
	}

	// Step 7: Export the WIM
	wimFile := recipe.Output.WIMFile
	if wimFile == "" {
		wimFile = "win.wim"
	}
	wimPath := filepath.Join(o.outputDir, wimFile)
	o.logger.Info("Converting ESD to WIM", interfaces.F("esd", download.Path), interfaces.F("wim", wimPath))

	convertStart := time.Now()
	if err := o.converter.ExportWIM(ctx, download.Path, wimPath); err != nil {
		result.Error = fmt.Errorf("conversion failed: %w", err)
		return result, result.Error
	}
	result.WIMPath = wimPath
	result.ConvertDuration = time.Since(convertStart)

	result.Success = true
	result.TotalDuration = time.Since(startTime)
	return result, nil
}

// GetSummary returns a human-readable summary of the build
func (r *WIMResult) GetSummary() string {
	if !r.Success {
		return fmt.Sprintf("WIM build failed: %v", r.Error)
	}

	summary := fmt.Sprintf(`WIM ready!
File: %s
Source: %s (%s, %s, %s)
Catalog: %v
Download: %v
Convert: %v
Total: %v`,
		r.WIMPath,
		r.Entry.FileName,
		r.Entry.Edition,
		r.Entry.LanguageCode,
		r.Entry.Architecture,
		r.CatalogDuration,
		r.DownloadDuration,
		r.ConvertDuration,
		r.TotalDuration,
	)

	if r.Download != nil && r.Download.Skipped {
		summary += "\n(reused existing ESD download)"
	}

	return summary
}
