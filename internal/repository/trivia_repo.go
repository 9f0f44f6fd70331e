package repository

import (
	"database/sql"
	"fmt"
	"time"

	"kyn/internal/database"
	"kyn/internal/models"
)

// TriviaRepository handles database operations for the trivia game
type TriviaRepository struct {
	db *database.DB
}

// NewTriviaRepository creates a new trivia repository
func NewTriviaRepository(db *database.DB) *TriviaRepository {
	return &TriviaRepository{db: db}
}

// CreateQuestion inserts a family trivia question
func (r *TriviaRepository) CreateQuestion(familyID int64, question, answer string) (*models.TriviaQuestion, error) {
	query := "INSERT INTO trivia_questions (family_id, question, answer) VALUES (?, ?, ?)"
	id, err := r.db.ExecReturningID(query, familyID, question, answer)
	if err != nil {
		return nil, fmt.Errorf("failed to create trivia question: %w", err)
	}

	return &models.TriviaQuestion{
		ID:        id,
		FamilyID:  familyID,
		Question:  question,
		Answer:    answer,
		CreatedAt: time.Now(),
	}, nil
}

// ListQuestions retrieves a family's trivia questions
func (r *TriviaRepository) ListQuestions(familyID int64) ([]models.TriviaQuestion, error) {
	query := "SELECT id, family_id, question, answer, created_at FROM trivia_questions WHERE family_id = ? ORDER BY created_at DESC"
	rows, err := r.db.Query(query, familyID)
	if err != nil {
		return nil, fmt.Errorf("failed to query trivia questions: %w", err)
	}
	defer rows.Close()

	var questions []models.TriviaQuestion
	for rows.Next() {
		var q models.TriviaQuestion
		if err := rows.Scan(&q.ID, &q.FamilyID, &q.Question, &q.Answer, &q.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan trivia question: %w", err)
		}
		questions = append(questions, q)
	}

	return questions, rows.Err()
}

// GetQuestion retrieves a trivia question scoped to a family
func (r *TriviaRepository) GetQuestion(familyID, questionID int64) (*models.TriviaQuestion, error) {
	query := "SELECT id, family_id, question, answer, created_at FROM trivia_questions WHERE id = ? AND family_id = ?"
	q := &models.TriviaQuestion{}
	err := r.db.QueryRow(query, questionID, familyID).Scan(&q.ID, &q.FamilyID, &q.Question, &q.Answer, &q.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get trivia question: %w", err)
	}
	return q, nil
}

// IncrementScore bumps a member's score by one in a single statement,
// creating the row at score 1 on first correct answer. The upsert keeps
// concurrent correct answers from losing increments.
func (r *TriviaRepository) IncrementScore(familyID, profileID int64) error {
	query := r.db.GetDialect().UpsertIncrementQuery("trivia_scores",
		[]string{"family_id", "profile_id", "score"},
		[]string{"family_id", "profile_id"},
		"score")
	if _, err := r.db.Exec(query, familyID, profileID, 1); err != nil {
		return fmt.Errorf("failed to increment trivia score: %w", err)
	}
	return nil
}

// Leaderboard retrieves a family's scores, highest first
func (r *TriviaRepository) Leaderboard(familyID int64) ([]models.TriviaScore, error) {
	query := `
		SELECT ts.id, ts.family_id, ts.profile_id, p.full_name, ts.score
		FROM trivia_scores ts
		INNER JOIN profiles p ON ts.profile_id = p.id
		WHERE ts.family_id = ?
		ORDER BY ts.score DESC, p.full_name ASC
	`
	rows, err := r.db.Query(query, familyID)
	if err != nil {
		return nil, fmt.Errorf("failed to query leaderboard: %w", err)
	}
	defer rows.Close()

	var scores []models.TriviaScore
	for rows.Next() {
		var s models.TriviaScore
		if err := rows.Scan(&s.ID, &s.FamilyID, &s.ProfileID, &s.FullName, &s.Score); err != nil {
			return nil, fmt.Errorf("failed to scan score: %w", err)
		}
		scores = append(scores, s)
	}

	return scores, rows.Err()
}
