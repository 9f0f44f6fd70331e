package repository

import (
	"database/sql"
	"fmt"
	"time"

	"kyn/internal/database"
	"kyn/internal/models"
)

// MessageRepository handles database operations for direct messages
type MessageRepository struct {
	db *database.DB
}

// NewMessageRepository creates a new message repository
func NewMessageRepository(db *database.DB) *MessageRepository {
	return &MessageRepository{db: db}
}

// CreateMessage inserts a direct message
func (r *MessageRepository) CreateMessage(familyID, senderID, recipientID int64, content string) (*models.Message, error) {
	query := "INSERT INTO messages (family_id, sender_id, recipient_id, content) VALUES (?, ?, ?, ?)"
	id, err := r.db.ExecReturningID(query, familyID, senderID, recipientID, content)
	if err != nil {
		return nil, fmt.Errorf("failed to create message: %w", err)
	}

	return &models.Message{
		ID:          id,
		FamilyID:    familyID,
		SenderID:    senderID,
		RecipientID: recipientID,
		Content:     content,
		CreatedAt:   time.Now(),
	}, nil
}

// ListConversation retrieves messages between two members in either
// direction, oldest first
func (r *MessageRepository) ListConversation(familyID, profileA, profileB int64) ([]models.Message, error) {
	query := `
		SELECT id, family_id, sender_id, recipient_id, content, created_at
		FROM messages
		WHERE family_id = ?
		  AND ((sender_id = ? AND recipient_id = ?) OR (sender_id = ? AND recipient_id = ?))
		ORDER BY created_at ASC
	`
	rows, err := r.db.Query(query, familyID, profileA, profileB, profileB, profileA)
	if err != nil {
		return nil, fmt.Errorf("failed to query conversation: %w", err)
	}
	defer rows.Close()

	return scanMessages(rows)
}

// ListInbox retrieves every message a member sent or received in a family
func (r *MessageRepository) ListInbox(familyID, profileID int64) ([]models.Message, error) {
	query := `
		SELECT id, family_id, sender_id, recipient_id, content, created_at
		FROM messages
		WHERE family_id = ? AND (sender_id = ? OR recipient_id = ?)
		ORDER BY created_at DESC
	`
	rows, err := r.db.Query(query, familyID, profileID, profileID)
	if err != nil {
		return nil, fmt.Errorf("failed to query inbox: %w", err)
	}
	defer rows.Close()

	return scanMessages(rows)
}

func scanMessages(rows *sql.Rows) ([]models.Message, error) {
	var messages []models.Message
	for rows.Next() {
		var m models.Message
		if err := rows.Scan(&m.ID, &m.FamilyID, &m.SenderID, &m.RecipientID, &m.Content, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan message: %w", err)
		}
		messages = append(messages, m)
	}
	return messages, rows.Err()
}
