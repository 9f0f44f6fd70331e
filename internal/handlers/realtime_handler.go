package handlers

import (
	"net/http"

	"github.com/gorilla/websocket"

	"kyn/internal/realtime"
	"kyn/internal/repository"
	"kyn/internal/security"
)

// RealtimeHandler issues short-lived connection tickets and upgrades
// websocket connections. Browsers cannot set headers on websocket
// dials, so auth is a signed ticket in the query string instead of the
// session cookie.
type RealtimeHandler struct {
	familyScope
	secret   string
	upgrader *websocket.Upgrader
}

func NewRealtimeHandler(familyRepo *repository.FamilyRepository, hub *realtime.Hub, secret, clientOrigin string) *RealtimeHandler {
	return &RealtimeHandler{
		familyScope: familyScope{familyRepo: familyRepo, hub: hub},
		secret:      secret,
		upgrader: &websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				return origin == "" || origin == clientOrigin
			},
		},
	}
}

// Ticket mints a ticket for the caller, valid for one family
func (h *RealtimeHandler) Ticket(w http.ResponseWriter, r *http.Request) {
	profile := GetProfileFromContext(r.Context())

	var req struct {
		FamilyID int64 `json:"familyId"`
	}
	if err := decodeJSON(r, &req); err != nil || req.FamilyID == 0 {
		respondError(w, http.StatusBadRequest, "validation_error", "familyId is required")
		return
	}

	isMember, err := h.familyRepo.IsFamilyMember(profile.ID, req.FamilyID)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	if !isMember {
		respondError(w, http.StatusForbidden, "not_family_member", "not a member of this family")
		return
	}

	ticket, err := security.MintRealtimeTicket(h.secret, profile.ID, req.FamilyID)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]string{"ticket": ticket})
}

// Connect upgrades the request to a websocket fed by the family's
// event stream. The ticket in the query string carries the identity.
func (h *RealtimeHandler) Connect(w http.ResponseWriter, r *http.Request) {
	ticket := r.URL.Query().Get("ticket")
	if ticket == "" {
		respondError(w, http.StatusUnauthorized, "not_authenticated", "ticket is required")
		return
	}

	profileID, familyID, err := security.VerifyRealtimeTicket(h.secret, ticket)
	if err != nil {
		respondError(w, http.StatusUnauthorized, "invalid_ticket", "ticket is invalid or expired")
		return
	}

	// the ticket was minted against a membership check, but that was up
	// to thirty seconds ago
	isMember, err := h.familyRepo.IsFamilyMember(profileID, familyID)
	if err != nil || !isMember {
		respondError(w, http.StatusForbidden, "not_family_member", "not a member of this family")
		return
	}

	realtime.ServeConn(h.hub, h.upgrader, w, r, familyID, profileID)
}
