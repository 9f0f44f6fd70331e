package handlers

import (
	"net/http"
	"strings"

	"kyn/internal/realtime"
	"kyn/internal/repository"
)

type MessageHandler struct {
	familyScope
	messageRepo *repository.MessageRepository
}

func NewMessageHandler(messageRepo *repository.MessageRepository, familyRepo *repository.FamilyRepository, hub *realtime.Hub) *MessageHandler {
	return &MessageHandler{
		familyScope: familyScope{familyRepo: familyRepo, hub: hub},
		messageRepo: messageRepo,
	}
}

func (h *MessageHandler) Send(w http.ResponseWriter, r *http.Request) {
	profile, familyID, ok := h.resolve(w, r)
	if !ok {
		return
	}

	var req struct {
		RecipientID int64  `json:"recipientId"`
		Content     string `json:"content"`
	}
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "validation_error", "invalid request body")
		return
	}
	if strings.TrimSpace(req.Content) == "" {
		respondError(w, http.StatusBadRequest, "validation_error", "message content is required")
		return
	}
	if req.RecipientID == profile.ID {
		respondError(w, http.StatusBadRequest, "validation_error", "cannot message yourself")
		return
	}

	// both ends of the conversation have to be in the family
	isMember, err := h.familyRepo.IsFamilyMember(req.RecipientID, familyID)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	if !isMember {
		respondError(w, http.StatusNotFound, "recipient_not_found", "recipient is not in this family")
		return
	}

	msg, err := h.messageRepo.CreateMessage(familyID, profile.ID, req.RecipientID, req.Content)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	h.notify("messages", "insert", familyID, msg.ID, profile.ID)
	writeJSON(w, http.StatusCreated, msg)
}

// Conversation returns the two-way thread between the caller and {profileID},
// oldest first.
func (h *MessageHandler) Conversation(w http.ResponseWriter, r *http.Request) {
	profile, familyID, ok := h.resolve(w, r)
	if !ok {
		return
	}

	otherID, err := pathID(r, "profileID")
	if err != nil {
		respondError(w, http.StatusBadRequest, "validation_error", "invalid profile id")
		return
	}

	messages, err := h.messageRepo.ListConversation(familyID, profile.ID, otherID)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, messages)
}

func (h *MessageHandler) Inbox(w http.ResponseWriter, r *http.Request) {
	profile, familyID, ok := h.resolve(w, r)
	if !ok {
		return
	}

	messages, err := h.messageRepo.ListInbox(familyID, profile.ID)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, messages)
}
