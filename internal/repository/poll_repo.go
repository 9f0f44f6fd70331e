package repository

import (
	"encoding/json"
	"fmt"
	"time"

	"kyn/internal/database"
	"kyn/internal/models"
)

// PollRepository handles database operations for polls and votes.
// Poll options are stored as a JSON array in a single column.
type PollRepository struct {
	db *database.DB
}

// NewPollRepository creates a new poll repository
func NewPollRepository(db *database.DB) *PollRepository {
	return &PollRepository{db: db}
}

// CreatePoll inserts a poll with its option list
func (r *PollRepository) CreatePoll(familyID int64, question string, options []string) (*models.Poll, error) {
	encoded, err := json.Marshal(options)
	if err != nil {
		return nil, fmt.Errorf("failed to encode poll options: %w", err)
	}

	query := "INSERT INTO polls (family_id, question, options) VALUES (?, ?, ?)"
	id, err := r.db.ExecReturningID(query, familyID, question, string(encoded))
	if err != nil {
		return nil, fmt.Errorf("failed to create poll: %w", err)
	}

	return &models.Poll{
		ID:        id,
		FamilyID:  familyID,
		Question:  question,
		Options:   options,
		CreatedAt: time.Now(),
	}, nil
}

// GetPoll retrieves a poll scoped to a family
func (r *PollRepository) GetPoll(familyID, pollID int64) (*models.Poll, error) {
	query := "SELECT id, family_id, question, options, created_at FROM polls WHERE id = ? AND family_id = ?"
	p := &models.Poll{}
	var encoded string
	err := r.db.QueryRow(query, pollID, familyID).Scan(&p.ID, &p.FamilyID, &p.Question, &encoded, &p.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to get poll: %w", err)
	}
	if err := json.Unmarshal([]byte(encoded), &p.Options); err != nil {
		return nil, fmt.Errorf("failed to decode poll options: %w", err)
	}
	return p, nil
}

// ListPolls retrieves a family's polls, newest first
func (r *PollRepository) ListPolls(familyID int64) ([]models.Poll, error) {
	query := "SELECT id, family_id, question, options, created_at FROM polls WHERE family_id = ? ORDER BY created_at DESC"
	rows, err := r.db.Query(query, familyID)
	if err != nil {
		return nil, fmt.Errorf("failed to query polls: %w", err)
	}
	defer rows.Close()

	var polls []models.Poll
	for rows.Next() {
		var p models.Poll
		var encoded string
		if err := rows.Scan(&p.ID, &p.FamilyID, &p.Question, &encoded, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan poll: %w", err)
		}
		if err := json.Unmarshal([]byte(encoded), &p.Options); err != nil {
			return nil, fmt.Errorf("failed to decode poll options: %w", err)
		}
		polls = append(polls, p)
	}

	return polls, rows.Err()
}

// UpsertVote records a member's choice, replacing any previous one
func (r *PollRepository) UpsertVote(pollID, profileID int64, optionIndex int) error {
	query := r.db.GetDialect().UpsertQuery("poll_votes",
		[]string{"poll_id", "profile_id", "option_index"},
		[]string{"poll_id", "profile_id"},
		[]string{"option_index"})
	if _, err := r.db.Exec(query, pollID, profileID, optionIndex); err != nil {
		return fmt.Errorf("failed to save vote: %w", err)
	}
	return nil
}

// CountVotes tallies votes per option index for a poll
func (r *PollRepository) CountVotes(pollID int64, optionCount int) ([]int, error) {
	query := "SELECT option_index, COUNT(*) FROM poll_votes WHERE poll_id = ? GROUP BY option_index"
	rows, err := r.db.Query(query, pollID)
	if err != nil {
		return nil, fmt.Errorf("failed to count votes: %w", err)
	}
	defer rows.Close()

	counts := make([]int, optionCount)
	for rows.Next() {
		var idx, n int
		if err := rows.Scan(&idx, &n); err != nil {
			return nil, fmt.Errorf("failed to scan vote count: %w", err)
		}
		if idx >= 0 && idx < optionCount {
			counts[idx] = n
		}
	}

	return counts, rows.Err()
}
