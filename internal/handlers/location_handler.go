package handlers

import (
	"net/http"
	"strings"

	"kyn/internal/realtime"
	"kyn/internal/repository"
)

type LocationHandler struct {
	familyScope
	locationRepo *repository.LocationRepository
}

func NewLocationHandler(locationRepo *repository.LocationRepository, familyRepo *repository.FamilyRepository, hub *realtime.Hub) *LocationHandler {
	return &LocationHandler{
		familyScope:  familyScope{familyRepo: familyRepo, hub: hub},
		locationRepo: locationRepo,
	}
}

func (h *LocationHandler) Create(w http.ResponseWriter, r *http.Request) {
	profile, familyID, ok := h.resolve(w, r)
	if !ok {
		return
	}

	var req struct {
		Label     string  `json:"label"`
		Latitude  float64 `json:"latitude"`
		Longitude float64 `json:"longitude"`
	}
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "validation_error", "invalid request body")
		return
	}
	if strings.TrimSpace(req.Label) == "" {
		respondError(w, http.StatusBadRequest, "validation_error", "location label is required")
		return
	}
	if req.Latitude < -90 || req.Latitude > 90 || req.Longitude < -180 || req.Longitude > 180 {
		respondError(w, http.StatusBadRequest, "validation_error", "coordinates are out of range")
		return
	}

	location, err := h.locationRepo.CreateLocation(familyID, req.Label, req.Latitude, req.Longitude)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	h.notify("family_locations", "insert", familyID, location.ID, profile.ID)
	writeJSON(w, http.StatusCreated, location)
}

func (h *LocationHandler) List(w http.ResponseWriter, r *http.Request) {
	_, familyID, ok := h.resolve(w, r)
	if !ok {
		return
	}

	locations, err := h.locationRepo.ListLocations(familyID)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, locations)
}

func (h *LocationHandler) Delete(w http.ResponseWriter, r *http.Request) {
	profile, familyID, ok := h.resolve(w, r)
	if !ok {
		return
	}

	locationID, err := pathID(r, "locationID")
	if err != nil {
		respondError(w, http.StatusBadRequest, "validation_error", "invalid location id")
		return
	}

	if err := h.locationRepo.DeleteLocation(familyID, locationID); err != nil {
		respondServiceError(w, err)
		return
	}

	h.notify("family_locations", "update", familyID, locationID, profile.ID)
	w.WriteHeader(http.StatusNoContent)
}
