package models

import "time"

// Profile is the person record behind a login account. Every family
// operation is keyed by profile ID, not user ID.
type Profile struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"userId"`
	Email     string    `json:"email"`
	FullName  string    `json:"fullName"`
	AvatarURL *string   `json:"avatarUrl,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
