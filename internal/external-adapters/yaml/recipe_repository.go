package yaml

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mkrail/winmedia/internal/domain/entities"
)

// RecipeRepository implements repositories.MediaRecipeRepository using YAML files
type RecipeRepository struct {
	recipesDir string
	parser     *RecipeParser
}

// NewRecipeRepository creates a new YAML-based recipe repository
func NewRecipeRepository(recipesDir string) *RecipeRepository {
	return &RecipeRepository{
		recipesDir: recipesDir,
		parser:     NewRecipeParser(),
	}
}

// GetRecipe retrieves a media recipe by name
func (r *RecipeRepository) GetRecipe(_ context.Context, name string) (*entities.MediaRecipe, error) {
	filePath := filepath.Join(r.recipesDir, name+".yml")

	// Check if file exists
	if _, err := os.Stat(filePath); os.IsNotExist(err) {
		return nil, fmt.Errorf("recipe not found: %s", name)
	}

	return r.parser.ParseFile(filePath)
}

// ListRecipes returns all available media recipes
func (r *RecipeRepository) ListRecipes(_ context.Context) ([]*entities.MediaRecipe, error) {
	entries, err := os.ReadDir(r.recipesDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read recipes directory: %w", err)
	}

	recipes := make([]*entities.MediaRecipe, 0)
	for _, entry := range entries {
		// Skip non-YAML files
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".yml") {
			continue
		}

		filePath := filepath.Join(r.recipesDir, entry.Name())
		recipe, err := r.parser.ParseFile(filePath)
		if err != nil {
			// Log warning but continue processing other files
			fmt.Fprintf(os.Stderr, "Warning: failed to parse %s: %v\n", entry.Name(), err)
			continue
		}

		recipes = append(recipes, recipe)
	}

	return recipes, nil
}

// GetRecipesByType returns recipes of a given media type ("iso" or "esd")
func (r *RecipeRepository) GetRecipesByType(ctx context.Context, mediaType string) ([]*entities.MediaRecipe, error) {
	all, err := r.ListRecipes(ctx)
	if err != nil {
		return nil, err
	}

	filtered := make([]*entities.MediaRecipe, 0)
	for _, recipe := range all {
		if recipe.MediaType == mediaType {
			filtered = append(filtered, recipe)
		}
	}

	return filtered, nil
}
