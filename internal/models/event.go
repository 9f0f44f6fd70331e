package models

import "time"

// Event is a calendar entry for the family
type Event struct {
	ID          int64     `json:"id"`
	FamilyID    int64     `json:"familyId"`
	Title       string    `json:"title"`
	Description *string   `json:"description,omitempty"`
	Location    *string   `json:"location,omitempty"`
	EventDate   time.Time `json:"eventDate"`
	CreatedAt   time.Time `json:"createdAt"`
}

// RSVP records one member's attendance answer for an event.
// One row per (event, profile); repeat answers overwrite.
type RSVP struct {
	ID        int64     `json:"id"`
	EventID   int64     `json:"eventId"`
	ProfileID int64     `json:"profileId"`
	Status    string    `json:"status"` // 'yes', 'no' or 'maybe'
	UpdatedAt time.Time `json:"updatedAt"`
}
