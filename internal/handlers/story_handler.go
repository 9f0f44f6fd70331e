package handlers

import (
	"net/http"
	"strings"

	"kyn/internal/realtime"
	"kyn/internal/repository"
)

type StoryHandler struct {
	familyScope
	storyRepo *repository.StoryRepository
}

func NewStoryHandler(storyRepo *repository.StoryRepository, familyRepo *repository.FamilyRepository, hub *realtime.Hub) *StoryHandler {
	return &StoryHandler{
		familyScope: familyScope{familyRepo: familyRepo, hub: hub},
		storyRepo:   storyRepo,
	}
}

func (h *StoryHandler) Create(w http.ResponseWriter, r *http.Request) {
	profile, familyID, ok := h.resolve(w, r)
	if !ok {
		return
	}

	var req struct {
		Title   string `json:"title"`
		Content string `json:"content"`
	}
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "validation_error", "invalid request body")
		return
	}
	if strings.TrimSpace(req.Title) == "" || strings.TrimSpace(req.Content) == "" {
		respondError(w, http.StatusBadRequest, "validation_error", "story title and content are required")
		return
	}

	story, err := h.storyRepo.CreateStory(familyID, profile.ID, req.Title, req.Content)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	h.notify("family_stories", "insert", familyID, story.ID, profile.ID)
	writeJSON(w, http.StatusCreated, story)
}

func (h *StoryHandler) List(w http.ResponseWriter, r *http.Request) {
	_, familyID, ok := h.resolve(w, r)
	if !ok {
		return
	}

	stories, err := h.storyRepo.ListStories(familyID)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, stories)
}
