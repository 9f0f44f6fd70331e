package handlers

import (
	"net/http"

	"kyn/internal/service"
)

// SelectionHandler handles the active-family switcher endpoints
type SelectionHandler struct {
	switcher *service.Switcher
}

// NewSelectionHandler creates a new selection handler
func NewSelectionHandler(switcher *service.Switcher) *SelectionHandler {
	return &SelectionHandler{switcher: switcher}
}

// Get resolves the caller's active family
func (h *SelectionHandler) Get(w http.ResponseWriter, r *http.Request) {
	profile := GetProfileFromContext(r.Context())

	selected, err := h.switcher.Selected(profile.ID)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, selected)
}

type selectFamilyRequest struct {
	FamilyID int64 `json:"familyId"`
}

// Set switches the caller's active family
func (h *SelectionHandler) Set(w http.ResponseWriter, r *http.Request) {
	profile := GetProfileFromContext(r.Context())

	var req selectFamilyRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "validation_error", "invalid request body")
		return
	}

	selected, err := h.switcher.Select(profile.ID, req.FamilyID)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, selected)
}

// Clear drops the caller's stored selection
func (h *SelectionHandler) Clear(w http.ResponseWriter, r *http.Request) {
	profile := GetProfileFromContext(r.Context())

	if err := h.switcher.ClearSelection(profile.ID); err != nil {
		respondServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
