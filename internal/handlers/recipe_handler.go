package handlers

import (
	"net/http"
	"strings"

	"kyn/internal/models"
	"kyn/internal/realtime"
	"kyn/internal/repository"
)

type RecipeHandler struct {
	familyScope
	recipeRepo *repository.RecipeRepository
}

func NewRecipeHandler(recipeRepo *repository.RecipeRepository, familyRepo *repository.FamilyRepository, hub *realtime.Hub) *RecipeHandler {
	return &RecipeHandler{
		familyScope: familyScope{familyRepo: familyRepo, hub: hub},
		recipeRepo:  recipeRepo,
	}
}

func (h *RecipeHandler) Create(w http.ResponseWriter, r *http.Request) {
	profile, familyID, ok := h.resolve(w, r)
	if !ok {
		return
	}

	var req struct {
		Title       string  `json:"title"`
		Description *string `json:"description"`
		Ingredients *string `json:"ingredients"`
		Steps       *string `json:"steps"`
		ImageURL    *string `json:"imageUrl"`
	}
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "validation_error", "invalid request body")
		return
	}
	if strings.TrimSpace(req.Title) == "" {
		respondError(w, http.StatusBadRequest, "validation_error", "recipe title is required")
		return
	}

	recipe := &models.Recipe{
		FamilyID:    familyID,
		AuthorID:    profile.ID,
		Title:       req.Title,
		Description: req.Description,
		Ingredients: req.Ingredients,
		Steps:       req.Steps,
		ImageURL:    req.ImageURL,
	}
	recipe, err := h.recipeRepo.CreateRecipe(recipe)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	h.notify("recipes", "insert", familyID, recipe.ID, profile.ID)
	writeJSON(w, http.StatusCreated, recipe)
}

func (h *RecipeHandler) List(w http.ResponseWriter, r *http.Request) {
	_, familyID, ok := h.resolve(w, r)
	if !ok {
		return
	}

	recipes, err := h.recipeRepo.ListRecipes(familyID)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, recipes)
}
