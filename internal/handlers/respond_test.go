package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"kyn/internal/service"
	"kyn/internal/validation"
)

func TestRespondServiceError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"invalid credentials", service.ErrInvalidCredentials, http.StatusUnauthorized, "invalid_credentials"},
		{"email taken", service.ErrEmailTaken, http.StatusConflict, "email_taken"},
		{"one family per creator", service.ErrAlreadyCreatedFamily, http.StatusConflict, "already_created_family"},
		{"duplicate family name", service.ErrDuplicateFamilyName, http.StatusConflict, "duplicate_family_name"},
		{"not a member", service.ErrNotFamilyMember, http.StatusForbidden, "not_family_member"},
		{"used invite", service.ErrInviteUsed, http.StatusBadRequest, "invalid_or_expired_invite"},
		{"expired invite", service.ErrInviteExpired, http.StatusGone, "invite_expired"},
		{"ambiguous password", service.ErrAmbiguousInvite, http.StatusConflict, "multiple_families_found"},
		{"validation", validation.ValidationError{Field: "email", Message: "invalid email"}, http.StatusBadRequest, "validation_error"},
		{"wrapped error", errors.New("database exploded"), http.StatusInternalServerError, "operation_failed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			respondServiceError(rec, tt.err)

			if rec.Code != tt.wantStatus {
				t.Errorf("expected status %d, got %d", tt.wantStatus, rec.Code)
			}

			var body apiError
			if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
				t.Fatalf("failed to decode body: %v", err)
			}
			if body.Error.Code != tt.wantCode {
				t.Errorf("expected code %s, got %s", tt.wantCode, body.Error.Code)
			}
		})
	}
}
