package handlers

import (
	"net/http"

	"kyn/internal/service"
)

// FamilyHandler handles family and membership endpoints
type FamilyHandler struct {
	familyService *service.FamilyService
}

// NewFamilyHandler creates a new family handler
func NewFamilyHandler(familyService *service.FamilyService) *FamilyHandler {
	return &FamilyHandler{familyService: familyService}
}

type createFamilyRequest struct {
	Name string `json:"name"`
}

// Create makes a new family with the caller as admin
func (h *FamilyHandler) Create(w http.ResponseWriter, r *http.Request) {
	profile := GetProfileFromContext(r.Context())

	var req createFamilyRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "validation_error", "invalid request body")
		return
	}

	family, err := h.familyService.CreateFamily(profile.ID, req.Name)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, family)
}

// List returns every family the caller belongs to, with roles
func (h *FamilyHandler) List(w http.ResponseWriter, r *http.Request) {
	profile := GetProfileFromContext(r.Context())

	memberships, err := h.familyService.ListMemberships(profile.ID)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, memberships)
}

// Members returns a family's member list
func (h *FamilyHandler) Members(w http.ResponseWriter, r *http.Request) {
	profile := GetProfileFromContext(r.Context())
	familyID, err := pathID(r, "familyID")
	if err != nil {
		respondError(w, http.StatusBadRequest, "validation_error", "invalid family id")
		return
	}

	members, err := h.familyService.ListMembers(profile.ID, familyID)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	// the messaging page wants co-members only
	if r.URL.Query().Get("excludeSelf") == "true" {
		filtered := members[:0]
		for _, m := range members {
			if m.ProfileID != profile.ID {
				filtered = append(filtered, m)
			}
		}
		members = filtered
	}

	writeJSON(w, http.StatusOK, members)
}

type inviteEmailRequest struct {
	Email string `json:"email"`
}

// InviteByEmail enrolls an existing account into the family
func (h *FamilyHandler) InviteByEmail(w http.ResponseWriter, r *http.Request) {
	profile := GetProfileFromContext(r.Context())
	familyID, err := pathID(r, "familyID")
	if err != nil {
		respondError(w, http.StatusBadRequest, "validation_error", "invalid family id")
		return
	}

	var req inviteEmailRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "validation_error", "invalid request body")
		return
	}

	member, err := h.familyService.InviteByEmail(r.Context(), profile.ID, familyID, req.Email)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, member)
}

// Tree returns the family tree built from parent links
func (h *FamilyHandler) Tree(w http.ResponseWriter, r *http.Request) {
	profile := GetProfileFromContext(r.Context())
	familyID, err := pathID(r, "familyID")
	if err != nil {
		respondError(w, http.StatusBadRequest, "validation_error", "invalid family id")
		return
	}

	roots, err := h.familyService.BuildTree(profile.ID, familyID)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, roots)
}

type setParentRequest struct {
	ParentMemberID *int64 `json:"parentMemberId"`
}

// SetMemberParent links a member under another member in the tree
func (h *FamilyHandler) SetMemberParent(w http.ResponseWriter, r *http.Request) {
	profile := GetProfileFromContext(r.Context())
	familyID, err := pathID(r, "familyID")
	if err != nil {
		respondError(w, http.StatusBadRequest, "validation_error", "invalid family id")
		return
	}
	memberID, err := pathID(r, "memberID")
	if err != nil {
		respondError(w, http.StatusBadRequest, "validation_error", "invalid member id")
		return
	}

	var req setParentRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "validation_error", "invalid request body")
		return
	}

	if err := h.familyService.SetMemberParent(profile.ID, familyID, memberID, req.ParentMemberID); err != nil {
		respondServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
