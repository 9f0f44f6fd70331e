package handlers

import (
	"net/http"
	"strings"

	"kyn/internal/realtime"
	"kyn/internal/repository"
)

type TriviaHandler struct {
	familyScope
	triviaRepo *repository.TriviaRepository
}

func NewTriviaHandler(triviaRepo *repository.TriviaRepository, familyRepo *repository.FamilyRepository, hub *realtime.Hub) *TriviaHandler {
	return &TriviaHandler{
		familyScope: familyScope{familyRepo: familyRepo, hub: hub},
		triviaRepo:  triviaRepo,
	}
}

func (h *TriviaHandler) CreateQuestion(w http.ResponseWriter, r *http.Request) {
	profile, familyID, ok := h.resolve(w, r)
	if !ok {
		return
	}

	var req struct {
		Question string `json:"question"`
		Answer   string `json:"answer"`
	}
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "validation_error", "invalid request body")
		return
	}
	if strings.TrimSpace(req.Question) == "" || strings.TrimSpace(req.Answer) == "" {
		respondError(w, http.StatusBadRequest, "validation_error", "question and answer are required")
		return
	}

	question, err := h.triviaRepo.CreateQuestion(familyID, req.Question, req.Answer)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	h.notify("trivia_questions", "insert", familyID, question.ID, profile.ID)
	writeJSON(w, http.StatusCreated, question)
}

func (h *TriviaHandler) ListQuestions(w http.ResponseWriter, r *http.Request) {
	_, familyID, ok := h.resolve(w, r)
	if !ok {
		return
	}

	questions, err := h.triviaRepo.ListQuestions(familyID)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, questions)
}

// Answer checks a guess against the stored answer and, when correct,
// bumps the caller's family score by one.
func (h *TriviaHandler) Answer(w http.ResponseWriter, r *http.Request) {
	profile, familyID, ok := h.resolve(w, r)
	if !ok {
		return
	}

	questionID, err := pathID(r, "questionID")
	if err != nil {
		respondError(w, http.StatusBadRequest, "validation_error", "invalid question id")
		return
	}

	var req struct {
		Answer string `json:"answer"`
	}
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "validation_error", "invalid request body")
		return
	}

	question, err := h.triviaRepo.GetQuestion(familyID, questionID)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	if question == nil {
		respondError(w, http.StatusNotFound, "question_not_found", "question not found")
		return
	}

	correct := question.CheckAnswer(req.Answer)
	if correct {
		if err := h.triviaRepo.IncrementScore(familyID, profile.ID); err != nil {
			respondServiceError(w, err)
			return
		}
		h.notify("trivia_scores", "update", familyID, profile.ID, profile.ID)
	}

	writeJSON(w, http.StatusOK, map[string]bool{"correct": correct})
}

func (h *TriviaHandler) Leaderboard(w http.ResponseWriter, r *http.Request) {
	_, familyID, ok := h.resolve(w, r)
	if !ok {
		return
	}

	scores, err := h.triviaRepo.Leaderboard(familyID)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, scores)
}
