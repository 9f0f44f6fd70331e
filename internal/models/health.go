package models

import "time"

// HealthLog is one member's wellness entry for a day.
// One row per (family, profile, date); re-submitting replaces it.
type HealthLog struct {
	ID         int64   `json:"id"`
	FamilyID   int64   `json:"familyId"`
	ProfileID  int64   `json:"profileId"`
	Date       string  `json:"date"` // YYYY-MM-DD
	Steps      int     `json:"steps"`
	Calories   int     `json:"calories"`
	SleepHours float64 `json:"sleepHours"`
	Notes      *string `json:"notes,omitempty"`
}

// FitnessChallenge is a time-bounded family activity goal
type FitnessChallenge struct {
	ID          int64     `json:"id"`
	FamilyID    int64     `json:"familyId"`
	Title       string    `json:"title"`
	Description *string   `json:"description,omitempty"`
	StartDate   string    `json:"startDate"` // YYYY-MM-DD
	EndDate     string    `json:"endDate"`
	CreatedBy   int64     `json:"createdBy"`
	CreatedAt   time.Time `json:"createdAt"`
}

// MedicalRecord is an entry in the shared family medical history
type MedicalRecord struct {
	ID          int64     `json:"id"`
	FamilyID    int64     `json:"familyId"`
	ProfileID   int64     `json:"profileId"`
	Relation    string    `json:"relation"`
	Condition   string    `json:"condition"`
	Notes       *string   `json:"notes,omitempty"`
	DiagnosedAt *string   `json:"diagnosedAt,omitempty"` // YYYY-MM-DD
	CreatedAt   time.Time `json:"createdAt"`
}
