package models

import "time"

// Recipe is a shared family dish
type Recipe struct {
	ID          int64     `json:"id"`
	FamilyID    int64     `json:"familyId"`
	AuthorID    int64     `json:"authorId"`
	Title       string    `json:"title"`
	Description *string   `json:"description,omitempty"`
	Ingredients *string   `json:"ingredients,omitempty"`
	Steps       *string   `json:"steps,omitempty"`
	ImageURL    *string   `json:"imageUrl,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}
