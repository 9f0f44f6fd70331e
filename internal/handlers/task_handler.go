package handlers

import (
	"net/http"
	"strings"
	"time"

	"kyn/internal/realtime"
	"kyn/internal/repository"
)

type TaskHandler struct {
	familyScope
	taskRepo *repository.TaskRepository
}

func NewTaskHandler(taskRepo *repository.TaskRepository, familyRepo *repository.FamilyRepository, hub *realtime.Hub) *TaskHandler {
	return &TaskHandler{
		familyScope: familyScope{familyRepo: familyRepo, hub: hub},
		taskRepo:    taskRepo,
	}
}

func (h *TaskHandler) Create(w http.ResponseWriter, r *http.Request) {
	profile, familyID, ok := h.resolve(w, r)
	if !ok {
		return
	}

	var req struct {
		Title       string  `json:"title"`
		Description *string `json:"description"`
		AssignedTo  *int64  `json:"assignedTo"`
		DueDate     *string `json:"dueDate"` // RFC 3339
	}
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "validation_error", "invalid request body")
		return
	}
	if strings.TrimSpace(req.Title) == "" {
		respondError(w, http.StatusBadRequest, "validation_error", "task title is required")
		return
	}

	var dueDate *time.Time
	if req.DueDate != nil {
		parsed, err := time.Parse(time.RFC3339, *req.DueDate)
		if err != nil {
			respondError(w, http.StatusBadRequest, "validation_error", "dueDate must be RFC 3339")
			return
		}
		dueDate = &parsed
	}

	if req.AssignedTo != nil {
		isMember, err := h.familyRepo.IsFamilyMember(*req.AssignedTo, familyID)
		if err != nil {
			respondServiceError(w, err)
			return
		}
		if !isMember {
			respondError(w, http.StatusBadRequest, "validation_error", "assignee is not in this family")
			return
		}
	}

	task, err := h.taskRepo.CreateTask(familyID, req.Title, req.Description, req.AssignedTo, dueDate)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	h.notify("tasks", "insert", familyID, task.ID, profile.ID)
	writeJSON(w, http.StatusCreated, task)
}

func (h *TaskHandler) List(w http.ResponseWriter, r *http.Request) {
	_, familyID, ok := h.resolve(w, r)
	if !ok {
		return
	}

	tasks, err := h.taskRepo.ListTasks(familyID)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, tasks)
}

func (h *TaskHandler) SetCompleted(w http.ResponseWriter, r *http.Request) {
	profile, familyID, ok := h.resolve(w, r)
	if !ok {
		return
	}

	taskID, err := pathID(r, "taskID")
	if err != nil {
		respondError(w, http.StatusBadRequest, "validation_error", "invalid task id")
		return
	}

	var req struct {
		Completed bool `json:"completed"`
	}
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "validation_error", "invalid request body")
		return
	}

	if err := h.taskRepo.SetCompleted(familyID, taskID, req.Completed); err != nil {
		respondServiceError(w, err)
		return
	}

	h.notify("tasks", "update", familyID, taskID, profile.ID)
	w.WriteHeader(http.StatusNoContent)
}

func (h *TaskHandler) Delete(w http.ResponseWriter, r *http.Request) {
	profile, familyID, ok := h.resolve(w, r)
	if !ok {
		return
	}

	taskID, err := pathID(r, "taskID")
	if err != nil {
		respondError(w, http.StatusBadRequest, "validation_error", "invalid task id")
		return
	}

	if err := h.taskRepo.DeleteTask(familyID, taskID); err != nil {
		respondServiceError(w, err)
		return
	}

	h.notify("tasks", "update", familyID, taskID, profile.ID)
	w.WriteHeader(http.StatusNoContent)
}
