// Package repositories defines interfaces for data access layers.
package repositories

import (
	"context"

	"github.com/mkrail/winmedia/internal/domain/entities"
)

// MediaRecipeRepository defines the interface for accessing media recipes
type MediaRecipeRepository interface {
	// GetRecipe retrieves a media recipe by name
	GetRecipe(ctx context.Context, name string) (*entities.MediaRecipe, error)

	// ListRecipes returns all available media recipes
	ListRecipes(ctx context.Context) ([]*entities.MediaRecipe, error)

	// GetRecipesByType returns recipes of a given media type ("iso" or "esd")
	GetRecipesByType(ctx context.Context, mediaType string) ([]*entities.MediaRecipe, error)
}
