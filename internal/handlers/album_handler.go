package handlers

import (
	"net/http"
	"strings"

	"kyn/internal/realtime"
	"kyn/internal/repository"
)

type AlbumHandler struct {
	familyScope
	albumRepo *repository.AlbumRepository
}

func NewAlbumHandler(albumRepo *repository.AlbumRepository, familyRepo *repository.FamilyRepository, hub *realtime.Hub) *AlbumHandler {
	return &AlbumHandler{
		familyScope: familyScope{familyRepo: familyRepo, hub: hub},
		albumRepo:   albumRepo,
	}
}

func (h *AlbumHandler) Create(w http.ResponseWriter, r *http.Request) {
	profile, familyID, ok := h.resolve(w, r)
	if !ok {
		return
	}

	var req struct {
		Title    string  `json:"title"`
		CoverURL *string `json:"coverUrl"`
	}
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "validation_error", "invalid request body")
		return
	}
	if strings.TrimSpace(req.Title) == "" {
		respondError(w, http.StatusBadRequest, "validation_error", "album title is required")
		return
	}

	album, err := h.albumRepo.CreateAlbum(familyID, req.Title, req.CoverURL)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	h.notify("albums", "insert", familyID, album.ID, profile.ID)
	writeJSON(w, http.StatusCreated, album)
}

func (h *AlbumHandler) List(w http.ResponseWriter, r *http.Request) {
	_, familyID, ok := h.resolve(w, r)
	if !ok {
		return
	}

	albums, err := h.albumRepo.ListAlbums(familyID)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, albums)
}

func (h *AlbumHandler) AddMedia(w http.ResponseWriter, r *http.Request) {
	profile, familyID, ok := h.resolve(w, r)
	if !ok {
		return
	}

	albumID, err := pathID(r, "albumID")
	if err != nil {
		respondError(w, http.StatusBadRequest, "validation_error", "invalid album id")
		return
	}

	var req struct {
		URL string `json:"url"`
	}
	if err := decodeJSON(r, &req); err != nil || strings.TrimSpace(req.URL) == "" {
		respondError(w, http.StatusBadRequest, "validation_error", "media url is required")
		return
	}

	belongs, err := h.albumRepo.AlbumBelongsToFamily(albumID, familyID)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	if !belongs {
		respondError(w, http.StatusNotFound, "album_not_found", "album not found")
		return
	}

	item, err := h.albumRepo.AddMedia(albumID, req.URL, profile.ID)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	h.notify("media", "insert", familyID, item.ID, profile.ID)
	writeJSON(w, http.StatusCreated, item)
}

func (h *AlbumHandler) ListMedia(w http.ResponseWriter, r *http.Request) {
	_, familyID, ok := h.resolve(w, r)
	if !ok {
		return
	}

	albumID, err := pathID(r, "albumID")
	if err != nil {
		respondError(w, http.StatusBadRequest, "validation_error", "invalid album id")
		return
	}

	belongs, err := h.albumRepo.AlbumBelongsToFamily(albumID, familyID)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	if !belongs {
		respondError(w, http.StatusNotFound, "album_not_found", "album not found")
		return
	}

	items, err := h.albumRepo.ListMedia(albumID)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}
