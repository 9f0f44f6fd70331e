package handlers

import (
	"net/http"
	"strings"

	"kyn/internal/realtime"
	"kyn/internal/repository"
)

type FeedHandler struct {
	familyScope
	feedRepo *repository.FeedRepository
}

func NewFeedHandler(feedRepo *repository.FeedRepository, familyRepo *repository.FamilyRepository, hub *realtime.Hub) *FeedHandler {
	return &FeedHandler{
		familyScope: familyScope{familyRepo: familyRepo, hub: hub},
		feedRepo:    feedRepo,
	}
}

func (h *FeedHandler) CreatePost(w http.ResponseWriter, r *http.Request) {
	profile, familyID, ok := h.resolve(w, r)
	if !ok {
		return
	}

	var req struct {
		Content string `json:"content"`
	}
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "validation_error", "invalid request body")
		return
	}
	if strings.TrimSpace(req.Content) == "" {
		respondError(w, http.StatusBadRequest, "validation_error", "post content is required")
		return
	}

	post, err := h.feedRepo.CreatePost(familyID, profile.ID, req.Content)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	h.notify("posts", "insert", familyID, post.ID, profile.ID)
	writeJSON(w, http.StatusCreated, post)
}

func (h *FeedHandler) ListPosts(w http.ResponseWriter, r *http.Request) {
	_, familyID, ok := h.resolve(w, r)
	if !ok {
		return
	}

	posts, err := h.feedRepo.ListPosts(familyID)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, posts)
}

func (h *FeedHandler) CreateComment(w http.ResponseWriter, r *http.Request) {
	profile, familyID, ok := h.resolve(w, r)
	if !ok {
		return
	}

	postID, err := pathID(r, "postID")
	if err != nil {
		respondError(w, http.StatusBadRequest, "validation_error", "invalid post id")
		return
	}

	var req struct {
		Content string `json:"content"`
	}
	if err := decodeJSON(r, &req); err != nil || strings.TrimSpace(req.Content) == "" {
		respondError(w, http.StatusBadRequest, "validation_error", "comment content is required")
		return
	}

	// comments only attach to posts inside the caller's family
	post, err := h.feedRepo.GetPost(familyID, postID)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	if post == nil {
		respondError(w, http.StatusNotFound, "post_not_found", "post not found")
		return
	}

	comment, err := h.feedRepo.CreateComment(postID, profile.ID, req.Content)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	h.notify("comments", "insert", familyID, comment.ID, profile.ID)
	writeJSON(w, http.StatusCreated, comment)
}

func (h *FeedHandler) ListComments(w http.ResponseWriter, r *http.Request) {
	_, familyID, ok := h.resolve(w, r)
	if !ok {
		return
	}

	postID, err := pathID(r, "postID")
	if err != nil {
		respondError(w, http.StatusBadRequest, "validation_error", "invalid post id")
		return
	}

	post, err := h.feedRepo.GetPost(familyID, postID)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	if post == nil {
		respondError(w, http.StatusNotFound, "post_not_found", "post not found")
		return
	}

	comments, err := h.feedRepo.ListComments(postID)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, comments)
}
