package models

import (
	"strings"
	"time"
)

// TriviaQuestion is a family-authored quiz question
type TriviaQuestion struct {
	ID        int64     `json:"id"`
	FamilyID  int64     `json:"familyId"`
	Question  string    `json:"question"`
	Answer    string    `json:"-"`
	CreatedAt time.Time `json:"createdAt"`
}

// CheckAnswer compares a guess against the stored answer,
// ignoring case and surrounding whitespace
func (q *TriviaQuestion) CheckAnswer(guess string) bool {
	return strings.EqualFold(strings.TrimSpace(guess), strings.TrimSpace(q.Answer))
}

// TriviaScore is a member's running score within a family
type TriviaScore struct {
	ID        int64  `json:"id"`
	FamilyID  int64  `json:"familyId"`
	ProfileID int64  `json:"profileId"`
	FullName  string `json:"fullName,omitempty"`
	Score     int    `json:"score"`
}
