package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/mkrail/winmedia/internal/domain/entities"
	"github.com/mkrail/winmedia/internal/domain/interfaces/repositories"
	"github.com/mkrail/winmedia/internal/external-adapters/yaml"
)

func runList(ctx context.Context, args []string) {
	fs := flag.NewFlagSet("list", flag.ExitOnError)
	var (
		recipesDir = fs.String("recipes-dir", "recipes", "Path to recipes directory")
		mediaType  = fs.String("type", "", "Filter by media type (iso or esd)")
	)

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: winmedia list [options]

List available media recipes.

Options:
`)
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing flags: %v\n", err)
		os.Exit(1)
	}

	var repo repositories.MediaRecipeRepository = yaml.NewRecipeRepository(*recipesDir)

	var recipes []*entities.MediaRecipe
	var err error
	if *mediaType != "" {
		recipes, err = repo.GetRecipesByType(ctx, *mediaType)
	} else {
		recipes, err = repo.ListRecipes(ctx)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if len(recipes) == 0 {
		fmt.Println("No recipes found.")
		return
	}

	fmt.Printf("Available recipes (%d):\n\n", len(recipes))
	for _, recipe := range recipes {
		fmt.Printf("  %-28s [%s] %s\n", recipe.Name, recipe.MediaType, recipe.Description)
	}
}
