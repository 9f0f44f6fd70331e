package repository

import (
	"fmt"
	"time"

	"kyn/internal/database"
	"kyn/internal/models"
)

// RecipeRepository handles database operations for family recipes
type RecipeRepository struct {
	db *database.DB
}

// NewRecipeRepository creates a new recipe repository
func NewRecipeRepository(db *database.DB) *RecipeRepository {
	return &RecipeRepository{db: db}
}

// CreateRecipe inserts a recipe
func (r *RecipeRepository) CreateRecipe(rec *models.Recipe) (*models.Recipe, error) {
	query := "INSERT INTO recipes (family_id, author_id, title, description, ingredients, steps, image_url) VALUES (?, ?, ?, ?, ?, ?, ?)"
	id, err := r.db.ExecReturningID(query, rec.FamilyID, rec.AuthorID, rec.Title, rec.Description, rec.Ingredients, rec.Steps, rec.ImageURL)
	if err != nil {
		return nil, fmt.Errorf("failed to create recipe: %w", err)
	}

	created := *rec
	created.ID = id
	created.CreatedAt = time.Now()
	return &created, nil
}

// ListRecipes retrieves a family's recipes, newest first
func (r *RecipeRepository) ListRecipes(familyID int64) ([]models.Recipe, error) {
	query := `
		SELECT id, family_id, author_id, title, description, ingredients, steps, image_url, created_at
		FROM recipes
		WHERE family_id = ?
		ORDER BY created_at DESC
	`
	rows, err := r.db.Query(query, familyID)
	if err != nil {
		return nil, fmt.Errorf("failed to query recipes: %w", err)
	}
	defer rows.Close()

	var recipes []models.Recipe
	for rows.Next() {
		var rec models.Recipe
		if err := rows.Scan(&rec.ID, &rec.FamilyID, &rec.AuthorID, &rec.Title, &rec.Description,
			&rec.Ingredients, &rec.Steps, &rec.ImageURL, &rec.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan recipe: %w", err)
		}
		recipes = append(recipes, rec)
	}

	return recipes, rows.Err()
}
