package handlers

import (
	"net/http"
	"strings"

	"kyn/internal/models"
	"kyn/internal/realtime"
	"kyn/internal/repository"
)

type PollHandler struct {
	familyScope
	pollRepo *repository.PollRepository
}

func NewPollHandler(pollRepo *repository.PollRepository, familyRepo *repository.FamilyRepository, hub *realtime.Hub) *PollHandler {
	return &PollHandler{
		familyScope: familyScope{familyRepo: familyRepo, hub: hub},
		pollRepo:    pollRepo,
	}
}

func (h *PollHandler) Create(w http.ResponseWriter, r *http.Request) {
	profile, familyID, ok := h.resolve(w, r)
	if !ok {
		return
	}

	var req struct {
		Question string   `json:"question"`
		Options  []string `json:"options"`
	}
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "validation_error", "invalid request body")
		return
	}
	if strings.TrimSpace(req.Question) == "" {
		respondError(w, http.StatusBadRequest, "validation_error", "poll question is required")
		return
	}
	if len(req.Options) < 2 {
		respondError(w, http.StatusBadRequest, "validation_error", "a poll needs at least two options")
		return
	}
	for _, opt := range req.Options {
		if strings.TrimSpace(opt) == "" {
			respondError(w, http.StatusBadRequest, "validation_error", "poll options cannot be empty")
			return
		}
	}

	poll, err := h.pollRepo.CreatePoll(familyID, req.Question, req.Options)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	h.notify("polls", "insert", familyID, poll.ID, profile.ID)
	writeJSON(w, http.StatusCreated, poll)
}

func (h *PollHandler) List(w http.ResponseWriter, r *http.Request) {
	_, familyID, ok := h.resolve(w, r)
	if !ok {
		return
	}

	polls, err := h.pollRepo.ListPolls(familyID)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, polls)
}

// Vote records the caller's choice; re-voting replaces the earlier one
func (h *PollHandler) Vote(w http.ResponseWriter, r *http.Request) {
	profile, familyID, ok := h.resolve(w, r)
	if !ok {
		return
	}

	pollID, err := pathID(r, "pollID")
	if err != nil {
		respondError(w, http.StatusBadRequest, "validation_error", "invalid poll id")
		return
	}

	var req struct {
		OptionIndex int `json:"optionIndex"`
	}
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "validation_error", "invalid request body")
		return
	}

	poll, err := h.pollRepo.GetPoll(familyID, pollID)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	if poll == nil {
		respondError(w, http.StatusNotFound, "poll_not_found", "poll not found")
		return
	}
	if req.OptionIndex < 0 || req.OptionIndex >= len(poll.Options) {
		respondError(w, http.StatusBadRequest, "validation_error", "optionIndex is out of range")
		return
	}

	if err := h.pollRepo.UpsertVote(pollID, profile.ID, req.OptionIndex); err != nil {
		respondServiceError(w, err)
		return
	}

	h.notify("poll_votes", "update", familyID, pollID, profile.ID)
	w.WriteHeader(http.StatusNoContent)
}

// Results returns the poll with a vote tally per option
func (h *PollHandler) Results(w http.ResponseWriter, r *http.Request) {
	_, familyID, ok := h.resolve(w, r)
	if !ok {
		return
	}

	pollID, err := pathID(r, "pollID")
	if err != nil {
		respondError(w, http.StatusBadRequest, "validation_error", "invalid poll id")
		return
	}

	poll, err := h.pollRepo.GetPoll(familyID, pollID)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	if poll == nil {
		respondError(w, http.StatusNotFound, "poll_not_found", "poll not found")
		return
	}

	counts, err := h.pollRepo.CountVotes(pollID, len(poll.Options))
	if err != nil {
		respondServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, models.PollResult{Poll: *poll, Counts: counts})
}
