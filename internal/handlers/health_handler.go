package handlers

import (
	"net/http"
	"strings"
	"time"

	"kyn/internal/models"
	"kyn/internal/realtime"
	"kyn/internal/repository"
)

const dateLayout = "2006-01-02"

type HealthHandler struct {
	familyScope
	healthRepo *repository.HealthRepository
}

func NewHealthHandler(healthRepo *repository.HealthRepository, familyRepo *repository.FamilyRepository, hub *realtime.Hub) *HealthHandler {
	return &HealthHandler{
		familyScope: familyScope{familyRepo: familyRepo, hub: hub},
		healthRepo:  healthRepo,
	}
}

// LogEntry records the caller's wellness numbers for a day,
// replacing any earlier entry for the same day.
func (h *HealthHandler) LogEntry(w http.ResponseWriter, r *http.Request) {
	profile, familyID, ok := h.resolve(w, r)
	if !ok {
		return
	}

	var req struct {
		Date       string  `json:"date"`
		Steps      int     `json:"steps"`
		Calories   int     `json:"calories"`
		SleepHours float64 `json:"sleepHours"`
		Notes      *string `json:"notes"`
	}
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "validation_error", "invalid request body")
		return
	}
	if _, err := time.Parse(dateLayout, req.Date); err != nil {
		respondError(w, http.StatusBadRequest, "validation_error", "date must be YYYY-MM-DD")
		return
	}
	if req.Steps < 0 || req.Calories < 0 || req.SleepHours < 0 {
		respondError(w, http.StatusBadRequest, "validation_error", "values cannot be negative")
		return
	}

	entry := &models.HealthLog{
		FamilyID:   familyID,
		ProfileID:  profile.ID,
		Date:       req.Date,
		Steps:      req.Steps,
		Calories:   req.Calories,
		SleepHours: req.SleepHours,
		Notes:      req.Notes,
	}
	if err := h.healthRepo.UpsertLog(entry); err != nil {
		respondServiceError(w, err)
		return
	}

	h.notify("family_health_logs", "update", familyID, entry.ID, profile.ID)
	writeJSON(w, http.StatusCreated, entry)
}

func (h *HealthHandler) ListLogs(w http.ResponseWriter, r *http.Request) {
	_, familyID, ok := h.resolve(w, r)
	if !ok {
		return
	}

	logs, err := h.healthRepo.ListLogs(familyID)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, logs)
}

func (h *HealthHandler) CreateChallenge(w http.ResponseWriter, r *http.Request) {
	profile, familyID, ok := h.resolve(w, r)
	if !ok {
		return
	}

	var req struct {
		Title       string  `json:"title"`
		Description *string `json:"description"`
		StartDate   string  `json:"startDate"`
		EndDate     string  `json:"endDate"`
	}
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "validation_error", "invalid request body")
		return
	}
	if strings.TrimSpace(req.Title) == "" {
		respondError(w, http.StatusBadRequest, "validation_error", "challenge title is required")
		return
	}
	start, err := time.Parse(dateLayout, req.StartDate)
	if err != nil {
		respondError(w, http.StatusBadRequest, "validation_error", "startDate must be YYYY-MM-DD")
		return
	}
	end, err := time.Parse(dateLayout, req.EndDate)
	if err != nil {
		respondError(w, http.StatusBadRequest, "validation_error", "endDate must be YYYY-MM-DD")
		return
	}
	if end.Before(start) {
		respondError(w, http.StatusBadRequest, "validation_error", "endDate cannot be before startDate")
		return
	}

	challenge, err := h.healthRepo.CreateChallenge(familyID, req.Title, req.Description, req.StartDate, req.EndDate, profile.ID)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	h.notify("family_fitness_challenges", "insert", familyID, challenge.ID, profile.ID)
	writeJSON(w, http.StatusCreated, challenge)
}

func (h *HealthHandler) ListChallenges(w http.ResponseWriter, r *http.Request) {
	_, familyID, ok := h.resolve(w, r)
	if !ok {
		return
	}

	challenges, err := h.healthRepo.ListChallenges(familyID)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, challenges)
}

func (h *HealthHandler) CreateMedicalRecord(w http.ResponseWriter, r *http.Request) {
	profile, familyID, ok := h.resolve(w, r)
	if !ok {
		return
	}

	var req struct {
		Relation    string  `json:"relation"`
		Condition   string  `json:"condition"`
		Notes       *string `json:"notes"`
		DiagnosedAt *string `json:"diagnosedAt"`
	}
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "validation_error", "invalid request body")
		return
	}
	if strings.TrimSpace(req.Relation) == "" || strings.TrimSpace(req.Condition) == "" {
		respondError(w, http.StatusBadRequest, "validation_error", "relation and condition are required")
		return
	}
	if req.DiagnosedAt != nil {
		if _, err := time.Parse(dateLayout, *req.DiagnosedAt); err != nil {
			respondError(w, http.StatusBadRequest, "validation_error", "diagnosedAt must be YYYY-MM-DD")
			return
		}
	}

	rec := &models.MedicalRecord{
		FamilyID:    familyID,
		ProfileID:   profile.ID,
		Relation:    req.Relation,
		Condition:   req.Condition,
		Notes:       req.Notes,
		DiagnosedAt: req.DiagnosedAt,
	}
	rec, err := h.healthRepo.CreateMedicalRecord(rec)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	h.notify("family_medical_history", "insert", familyID, rec.ID, profile.ID)
	writeJSON(w, http.StatusCreated, rec)
}

func (h *HealthHandler) ListMedicalRecords(w http.ResponseWriter, r *http.Request) {
	_, familyID, ok := h.resolve(w, r)
	if !ok {
		return
	}

	records, err := h.healthRepo.ListMedicalRecords(familyID)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, records)
}
