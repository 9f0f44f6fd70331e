package models

import "time"

// Poll is a family vote with a fixed option list.
// Options are stored as a JSON array in one column.
type Poll struct {
	ID        int64     `json:"id"`
	FamilyID  int64     `json:"familyId"`
	Question  string    `json:"question"`
	Options   []string  `json:"options"`
	CreatedAt time.Time `json:"createdAt"`
}

// PollVote records one member's choice. One row per (poll, profile);
// voting again replaces the previous choice.
type PollVote struct {
	ID          int64 `json:"id"`
	PollID      int64 `json:"pollId"`
	ProfileID   int64 `json:"profileId"`
	OptionIndex int   `json:"optionIndex"`
}

// PollResult aggregates vote counts per option
type PollResult struct {
	Poll   Poll  `json:"poll"`
	Counts []int `json:"counts"`
}
