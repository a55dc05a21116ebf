// Package main provides the winmedia CLI for fetching Windows installation media.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/mkrail/winmedia/internal/domain/entities"
	"github.com/mkrail/winmedia/internal/domain/interfaces/repositories"
	"github.com/mkrail/winmedia/internal/external-adapters/yaml"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	ctx := context.Background()
	command := os.Args[1]

	// Dispatch to subcommand
	switch command {
	case "iso":
		runISO(ctx, os.Args[2:])
	case "wim":
		runWIM(ctx, os.Args[2:])
	case "list":
		runList(ctx, os.Args[2:])
	case "catalog":
		runCatalog(ctx, os.Args[2:])
	case "verify":
		runVerify(ctx, os.Args[2:])
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`winmedia - Windows installation media fetcher

Usage:
  winmedia <command> [options]

Commands:
  iso      Download a bootable Windows evaluation ISO
  wim      Build a WIM from the Microsoft product catalog (ESD pipeline)
  list     List available media recipes
  catalog  Show product catalog entries matching the selection
  verify   Verify checksums and signatures of downloaded media

Use "winmedia <command> --help" for more information about a command.`)
}

// loadRecipe resolves the recipe to run: a named recipe from the recipes
// directory, or the built-in default when no name is given
func loadRecipe(ctx context.Context, recipesDir, name string, builtin *entities.MediaRecipe) (*entities.MediaRecipe, error) {
	if name == "" {
		return builtin, nil
	}

	var repo repositories.MediaRecipeRepository = yaml.NewRecipeRepository(recipesDir)
	return repo.GetRecipe(ctx, name)
}
