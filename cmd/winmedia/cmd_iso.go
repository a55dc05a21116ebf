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
)

func runISO(ctx context.Context, args []string) {
	fs := flag.NewFlagSet("iso", flag.ExitOnError)
	var (
		recipeName = fs.String("recipe", "", "Named recipe from the recipes directory (default: built-in evaluation ISO)")
		recipesDir = fs.String("recipes-dir", "recipes", "Path to recipes directory")
		outputDir  = fs.String("output-dir", ".", "Output directory for downloaded media")
	)

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: winmedia iso [options]

Download a bootable Windows evaluation ISO from Microsoft's CDN.

Examples:
  winmedia iso                                  # Built-in evaluation ISO recipe
  winmedia iso --output-dir /srv/images
  winmedia iso --recipe win10-enterprise-eval   # Recipe from recipes/

Options:
`)
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing flags: %v\n", err)
		os.Exit(1)
	}

	recipe, err := loadRecipe(ctx, *recipesDir, *recipeName, entities.DefaultISORecipe())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if recipe.MediaType != entities.MediaTypeISO {
		fmt.Fprintf(os.Stderr, "Error: recipe %s is not an ISO recipe (media_type: %s)\n", recipe.Name, recipe.MediaType)
		os.Exit(1)
	}

	orch := orchestrators.NewISOOrchestrator(
		gateways.NewISOResolver(),
		gateways.NewDownloader(),
		gateways.NewSignatureVerifier(),
		&interfaces.StderrLogger{},
		orchestrators.ISOOrchestratorConfig{OutputDir: *outputDir},
	)

	result, err := orch.FetchISO(ctx, recipe)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Println(result.GetSummary())
}
