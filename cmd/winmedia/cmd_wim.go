package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/mkrail/winmedia/internal/domain-adapters/gateways"
	orchestrators "github.com/mkrail/winmedia/internal/domain-orchestrators"
	"github.com/mkrail/winmedia/internal/domain/entities"
	"github.com/mkrail/winmedia/internal/domain/interfaces"
	"github.com/mkrail/winmedia/internal/domain/services"
)

func runWIM(ctx context.Context, args []string) {
	fs := flag.NewFlagSet("wim", flag.ExitOnError)
	var (
		recipeName = fs.String("recipe", "", "Named recipe from the recipes directory (default: built-in Enterprise N recipe)")
		recipesDir = fs.String("recipes-dir", "recipes", "Path to recipes directory")
		outputDir  = fs.String("output-dir", ".", "Output directory for downloaded and converted media")

		// Selection overrides
		language = fs.String("language", "", "Override language code (e.g., en-us)")
		edition  = fs.String("edition", "", "Override edition (e.g., EnterpriseN, Professional)")
		arch     = fs.String("arch", "", "Override architecture (e.g., x64, ARM64)")
	)

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: winmedia wim [options]

Build a WIM image from the Microsoft product catalog: download the catalog,
pick an edition, fetch its ESD and convert it with wimlib-imagex.

Requires cabextract (or tar) and wimlib-imagex on PATH.

Examples:
  winmedia wim                                  # Built-in Enterprise N recipe
  winmedia wim --edition Professional --language de-de
  winmedia wim --recipe win11-pro --output-dir /srv/images

Options:
`)
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing flags: %v\n", err)
		os.Exit(1)
	}

	recipe, err := loadRecipe(ctx, *recipesDir, *recipeName, entities.DefaultESDRecipe())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if recipe.MediaType != entities.MediaTypeESD {
		fmt.Fprintf(os.Stderr, "Error: recipe %s is not an ESD recipe (media_type: %s)\n", recipe.Name, recipe.MediaType)
		os.Exit(1)
	}

	// Command-line selection overrides win over the recipe
	if *language != "" {
		recipe.Selection.Language = *language
	}
	if *edition != "" {
		recipe.Selection.Edition = *edition
	}
	if *arch != "" {
		recipe.Selection.Architecture = *arch
	}

	converter := gateways.NewConverter(recipe.Convert)
	orch := orchestrators.NewWIMOrchestrator(
		gateways.NewCatalogClient(converter),
		services.NewSelectionService(),
		gateways.NewDownloader(),
		gateways.NewChecksumVerifier(),
		gateways.NewSignatureVerifier(),
		converter,
		&interfaces.StderrLogger{},
		orchestrators.WIMOrchestratorConfig{OutputDir: *outputDir},
	)

	result, err := orch.BuildWIM(ctx, recipe)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Println(result.GetSummary())
}
