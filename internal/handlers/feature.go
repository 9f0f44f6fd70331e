package handlers

import (
	"net/http"

	"kyn/internal/models"
	"kyn/internal/realtime"
	"kyn/internal/repository"
)

// familyScope is embedded by every feature handler: it resolves the
// family from the path, enforces membership, and publishes realtime
// events after writes.
type familyScope struct {
	familyRepo *repository.FamilyRepository
	hub        *realtime.Hub
}

// resolve parses {familyID} and verifies the caller belongs to it.
// On failure the response is already written.
func (s *familyScope) resolve(w http.ResponseWriter, r *http.Request) (*models.Profile, int64, bool) {
	profile := GetProfileFromContext(r.Context())

	familyID, err := pathID(r, "familyID")
	if err != nil {
		respondError(w, http.StatusBadRequest, "validation_error", "invalid family id")
		return nil, 0, false
	}

	isMember, err := s.familyRepo.IsFamilyMember(profile.ID, familyID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "operation_failed", "something went wrong")
		return nil, 0, false
	}
	if !isMember {
		respondError(w, http.StatusForbidden, "not_family_member", "not a member of this family")
		return nil, 0, false
	}

	return profile, familyID, true
}

// notify fans a change event out to the family's open sockets
func (s *familyScope) notify(table, action string, familyID, rowID, actorProfileID int64) {
	if s.hub == nil {
		return
	}
	s.hub.Publish(realtime.Event{
		Table:          table,
		Action:         action,
		FamilyID:       familyID,
		RowID:          rowID,
		ActorProfileID: actorProfileID,
	})
}
