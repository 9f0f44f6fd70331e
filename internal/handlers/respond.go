package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"kyn/internal/repository"
	"kyn/internal/service"
	"kyn/internal/validation"
)

// apiError is the JSON error envelope returned to the SPA
type apiError struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("Failed to encode response: %v", err)
	}
}

func respondError(w http.ResponseWriter, status int, code, message string) {
	var e apiError
	e.Error.Code = code
	e.Error.Message = message
	writeJSON(w, status, e)
}

// respondServiceError maps service-level errors onto the API error
// codes. Anything unmapped becomes operation_failed and is logged.
func respondServiceError(w http.ResponseWriter, err error) {
	var verr validation.ValidationError
	if errors.As(err, &verr) {
		respondError(w, http.StatusBadRequest, "validation_error", verr.Error())
		return
	}

	switch {
	case errors.Is(err, service.ErrInvalidCredentials):
		respondError(w, http.StatusUnauthorized, "invalid_credentials", err.Error())
	case errors.Is(err, service.ErrEmailTaken):
		respondError(w, http.StatusConflict, "email_taken", err.Error())
	case errors.Is(err, service.ErrSessionNotFound), errors.Is(err, service.ErrSessionExpired):
		respondError(w, http.StatusUnauthorized, "not_authenticated", "authentication required")
	case errors.Is(err, service.ErrProfileNotFound):
		respondError(w, http.StatusNotFound, "profile_not_found", err.Error())
	case errors.Is(err, service.ErrAlreadyCreatedFamily):
		respondError(w, http.StatusConflict, "already_created_family", err.Error())
	case errors.Is(err, service.ErrDuplicateFamilyName):
		respondError(w, http.StatusConflict, "duplicate_family_name", err.Error())
	case errors.Is(err, service.ErrAlreadyMember):
		respondError(w, http.StatusConflict, "already_member", err.Error())
	case errors.Is(err, service.ErrNotFamilyMember):
		respondError(w, http.StatusForbidden, "not_family_member", err.Error())
	case errors.Is(err, service.ErrUserNotFound):
		respondError(w, http.StatusNotFound, "user_not_found", err.Error())
	case errors.Is(err, service.ErrInvalidInvite):
		respondError(w, http.StatusBadRequest, "invalid_invite", err.Error())
	case errors.Is(err, service.ErrInviteUsed):
		respondError(w, http.StatusBadRequest, "invalid_or_expired_invite", err.Error())
	case errors.Is(err, service.ErrInviteExpired):
		respondError(w, http.StatusGone, "invite_expired", err.Error())
	case errors.Is(err, service.ErrAmbiguousInvite):
		respondError(w, http.StatusConflict, "multiple_families_found", err.Error())
	case errors.Is(err, service.ErrNoFamilies):
		respondError(w, http.StatusNotFound, "no_families", err.Error())
	case errors.Is(err, repository.ErrNotFound):
		respondError(w, http.StatusNotFound, "not_found", err.Error())
	default:
		log.Printf("Unhandled service error: %v", err)
		respondError(w, http.StatusInternalServerError, "operation_failed", "something went wrong")
	}
}

// decodeJSON reads a JSON request body, rejecting unknown fields
func decodeJSON(r *http.Request, v interface{}) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}
