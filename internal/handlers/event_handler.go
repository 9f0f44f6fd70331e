package handlers

import (
	"net/http"
	"strings"
	"time"

	"kyn/internal/realtime"
	"kyn/internal/repository"
)

var rsvpStatuses = map[string]bool{
	"going":     true,
	"maybe":     true,
	"not_going": true,
}

type EventHandler struct {
	familyScope
	eventRepo *repository.EventRepository
}

func NewEventHandler(eventRepo *repository.EventRepository, familyRepo *repository.FamilyRepository, hub *realtime.Hub) *EventHandler {
	return &EventHandler{
		familyScope: familyScope{familyRepo: familyRepo, hub: hub},
		eventRepo:   eventRepo,
	}
}

func (h *EventHandler) Create(w http.ResponseWriter, r *http.Request) {
	profile, familyID, ok := h.resolve(w, r)
	if !ok {
		return
	}

	var req struct {
		Title       string  `json:"title"`
		Description *string `json:"description"`
		Location    *string `json:"location"`
		EventDate   string  `json:"eventDate"` // RFC 3339
	}
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "validation_error", "invalid request body")
		return
	}
	if strings.TrimSpace(req.Title) == "" {
		respondError(w, http.StatusBadRequest, "validation_error", "event title is required")
		return
	}
	eventDate, err := time.Parse(time.RFC3339, req.EventDate)
	if err != nil {
		respondError(w, http.StatusBadRequest, "validation_error", "eventDate must be RFC 3339")
		return
	}

	event, err := h.eventRepo.CreateEvent(familyID, req.Title, req.Description, req.Location, eventDate)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	h.notify("events", "insert", familyID, event.ID, profile.ID)
	writeJSON(w, http.StatusCreated, event)
}

func (h *EventHandler) List(w http.ResponseWriter, r *http.Request) {
	_, familyID, ok := h.resolve(w, r)
	if !ok {
		return
	}

	events, err := h.eventRepo.ListEvents(familyID)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, events)
}

// RSVP records or replaces the caller's response to an event
func (h *EventHandler) RSVP(w http.ResponseWriter, r *http.Request) {
	profile, familyID, ok := h.resolve(w, r)
	if !ok {
		return
	}

	eventID, err := pathID(r, "eventID")
	if err != nil {
		respondError(w, http.StatusBadRequest, "validation_error", "invalid event id")
		return
	}

	var req struct {
		Status string `json:"status"`
	}
	if err := decodeJSON(r, &req); err != nil || !rsvpStatuses[req.Status] {
		respondError(w, http.StatusBadRequest, "validation_error", "status must be going, maybe, or not_going")
		return
	}

	belongs, err := h.eventRepo.EventBelongsToFamily(eventID, familyID)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	if !belongs {
		respondError(w, http.StatusNotFound, "event_not_found", "event not found")
		return
	}

	if err := h.eventRepo.UpsertRSVP(eventID, profile.ID, req.Status); err != nil {
		respondServiceError(w, err)
		return
	}

	h.notify("event_rsvps", "update", familyID, eventID, profile.ID)
	w.WriteHeader(http.StatusNoContent)
}

func (h *EventHandler) ListRSVPs(w http.ResponseWriter, r *http.Request) {
	_, familyID, ok := h.resolve(w, r)
	if !ok {
		return
	}

	eventID, err := pathID(r, "eventID")
	if err != nil {
		respondError(w, http.StatusBadRequest, "validation_error", "invalid event id")
		return
	}

	belongs, err := h.eventRepo.EventBelongsToFamily(eventID, familyID)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	if !belongs {
		respondError(w, http.StatusNotFound, "event_not_found", "event not found")
		return
	}

	rsvps, err := h.eventRepo.ListRSVPs(eventID)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rsvps)
}
