package models

import "time"

// Message is a direct message between two family members
type Message struct {
	ID          int64     `json:"id"`
	FamilyID    int64     `json:"familyId"`
	SenderID    int64     `json:"senderId"`
	RecipientID int64     `json:"recipientId"`
	Content     string    `json:"content"`
	CreatedAt   time.Time `json:"createdAt"`
}
