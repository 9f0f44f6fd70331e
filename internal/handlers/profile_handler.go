package handlers

import (
	"net/http"

	"kyn/internal/service"
)

// ProfileHandler handles profile endpoints
type ProfileHandler struct {
	profileService *service.ProfileService
}

// NewProfileHandler creates a new profile handler
func NewProfileHandler(profileService *service.ProfileService) *ProfileHandler {
	return &ProfileHandler{profileService: profileService}
}

// Get returns the caller's profile
func (h *ProfileHandler) Get(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, GetProfileFromContext(r.Context()))
}

type upsertProfileRequest struct {
	FullName  string  `json:"fullName"`
	AvatarURL *string `json:"avatarUrl"`
}

// Upsert onboards accounts that have no profile yet and updates the
// display fields on those that do
func (h *ProfileHandler) Upsert(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())

	var req upsertProfileRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "validation_error", "invalid request body")
		return
	}

	profile, err := h.profileService.EnsureProfile(user.ID, user.Email, req.FullName)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	if profile.FullName != req.FullName || req.AvatarURL != nil {
		profile, err = h.profileService.UpdateProfile(profile.ID, req.FullName, req.AvatarURL)
		if err != nil {
			respondServiceError(w, err)
			return
		}
	}

	writeJSON(w, http.StatusOK, profile)
}
