package yaml

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func writeRecipe(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0600); err != nil {
		t.Fatalf("Failed to write recipe: %v", err)
	}
}

func TestRecipeRepository_GetRecipe(t *testing.T) {
	tmpDir := t.TempDir()
	writeRecipe(t, tmpDir, "win-esd.yml", `name: win-esd
media_type: esd
catalog:
  url: https://example.com/catalog.cab
`)

	repo := NewRecipeRepository(tmpDir)

	recipe, err := repo.GetRecipe(context.Background(), "win-esd")
	if err != nil {
		t.Fatalf("GetRecipe() error = %v", err)
	}
	if recipe.Name != "win-esd" {
		t.Errorf("Name = %v, want win-esd", recipe.Name)
	}

	t.Run("missing recipe", func(t *testing.T) {
		_, err := repo.GetRecipe(context.Background(), "nope")
		if err == nil {
			t.Error("GetRecipe() should fail for unknown recipe")
		}
	})
}

func TestRecipeRepository_ListRecipes(t *testing.T) {
	tmpDir := t.TempDir()
	writeRecipe(t, tmpDir, "a-iso.yml", "name: a-iso\nmedia_type: iso\n")
	writeRecipe(t, tmpDir, "b-esd.yml", "name: b-esd\nmedia_type: esd\ncatalog:\n  url: https://example.com/c.cab\n")
	writeRecipe(t, tmpDir, "broken.yml", "name: [")
	writeRecipe(t, tmpDir, "notes.txt", "not a recipe")

	repo := NewRecipeRepository(tmpDir)

	recipes, err := repo.ListRecipes(context.Background())
	if err != nil {
		t.Fatalf("ListRecipes() error = %v", err)
	}

	// broken.yml and notes.txt are skipped
	if len(recipes) != 2 {
		t.Fatalf("ListRecipes() returned %d recipes, want 2", len(recipes))
	}
}

func TestRecipeRepository_GetRecipesByType(t *testing.T) {
	tmpDir := t.TempDir()
	writeRecipe(t, tmpDir, "a-iso.yml", "name: a-iso\nmedia_type: iso\n")
	writeRecipe(t, tmpDir, "b-esd.yml", "name: b-esd\nmedia_type: esd\ncatalog:\n  url: https://example.com/c.cab\n")

	repo := NewRecipeRepository(tmpDir)

	isoRecipes, err := repo.GetRecipesByType(context.Background(), "iso")
	if err != nil {
		t.Fatalf("GetRecipesByType() error = %v", err)
	}
	if len(isoRecipes) != 1 || isoRecipes[0].Name != "a-iso" {
		t.Errorf("GetRecipesByType(iso) = %v recipes, want just a-iso", len(isoRecipes))
	}
}

func TestRecipeRepository_MissingDir(t *testing.T) {
	repo := NewRecipeRepository("/nonexistent/recipes")

	if _, err := repo.ListRecipes(context.Background()); err == nil {
		t.Error("ListRecipes() should fail for missing directory")
	}
}
