package models

import "time"

// Story is a long-form family memory or anecdote
type Story struct {
	ID         int64     `json:"id"`
	FamilyID   int64     `json:"familyId"`
	AuthorID   int64     `json:"authorId"`
	AuthorName string    `json:"authorName,omitempty"`
	Title      string    `json:"title"`
	Content    string    `json:"content"`
	CreatedAt  time.Time `json:"createdAt"`
}
