package handlers

import (
	"net/http"

	"kyn/internal/service"
)

// InviteHandler handles invite generation and the join flow
type InviteHandler struct {
	inviteService *service.InviteService
}

// NewInviteHandler creates a new invite handler
func NewInviteHandler(inviteService *service.InviteService) *InviteHandler {
	return &InviteHandler{inviteService: inviteService}
}

// GeneratePassword issues a fresh shareable family password,
// invalidating the previous one
func (h *InviteHandler) GeneratePassword(w http.ResponseWriter, r *http.Request) {
	profile := GetProfileFromContext(r.Context())
	familyID, err := pathID(r, "familyID")
	if err != nil {
		respondError(w, http.StatusBadRequest, "validation_error", "invalid family id")
		return
	}

	password, err := h.inviteService.GeneratePassword(profile.ID, familyID)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]string{"password": password})
}

// GenerateLink issues a single-use invite link valid for one hour
func (h *InviteHandler) GenerateLink(w http.ResponseWriter, r *http.Request) {
	profile := GetProfileFromContext(r.Context())
	familyID, err := pathID(r, "familyID")
	if err != nil {
		respondError(w, http.StatusBadRequest, "validation_error", "invalid family id")
		return
	}

	invite, joinURL, err := h.inviteService.GenerateInviteLink(profile.ID, familyID)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"token":     invite.Token,
		"expiresAt": invite.ExpiresAt,
		"joinUrl":   joinURL,
	})
}

type joinRequest struct {
	Password string `json:"password,omitempty"`
	FamilyID int64  `json:"familyId,omitempty"`
	Token    string `json:"token,omitempty"`
}

// Join works both invite flows: a shared password, or the family+token
// pair from a join link
func (h *InviteHandler) Join(w http.ResponseWriter, r *http.Request) {
	profile := GetProfileFromContext(r.Context())

	var req joinRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "validation_error", "invalid request body")
		return
	}

	switch {
	case req.Token != "" && req.FamilyID != 0:
		family, err := h.inviteService.JoinByToken(profile.ID, req.FamilyID, req.Token)
		if err != nil {
			respondServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, family)
	case req.Password != "":
		family, err := h.inviteService.JoinByPassword(profile.ID, req.Password)
		if err != nil {
			respondServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, family)
	default:
		respondError(w, http.StatusBadRequest, "validation_error", "provide a password, or a familyId and token")
	}
}
