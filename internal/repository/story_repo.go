package repository

import (
	"fmt"
	"time"

	"kyn/internal/database"
	"kyn/internal/models"
)

// StoryRepository handles database operations for family stories
type StoryRepository struct {
	db *database.DB
}

// NewStoryRepository creates a new story repository
func NewStoryRepository(db *database.DB) *StoryRepository {
	return &StoryRepository{db: db}
}

// CreateStory inserts a story
func (r *StoryRepository) CreateStory(familyID, authorID int64, title, content string) (*models.Story, error) {
	query := "INSERT INTO family_stories (family_id, author_id, title, content) VALUES (?, ?, ?, ?)"
	id, err := r.db.ExecReturningID(query, familyID, authorID, title, content)
	if err != nil {
		return nil, fmt.Errorf("failed to create story: %w", err)
	}

	return &models.Story{
		ID:        id,
		FamilyID:  familyID,
		AuthorID:  authorID,
		Title:     title,
		Content:   content,
		CreatedAt: time.Now(),
	}, nil
}

// ListStories retrieves a family's stories, newest first
func (r *StoryRepository) ListStories(familyID int64) ([]models.Story, error) {
	query := `
		SELECT s.id, s.family_id, s.author_id, p.full_name, s.title, s.content, s.created_at
		FROM family_stories s
		INNER JOIN profiles p ON s.author_id = p.id
		WHERE s.family_id = ?
		ORDER BY s.created_at DESC
	`
	rows, err := r.db.Query(query, familyID)
	if err != nil {
		return nil, fmt.Errorf("failed to query stories: %w", err)
	}
	defer rows.Close()

	var stories []models.Story
	for rows.Next() {
		var s models.Story
		if err := rows.Scan(&s.ID, &s.FamilyID, &s.AuthorID, &s.AuthorName, &s.Title, &s.Content, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan story: %w", err)
		}
		stories = append(stories, s)
	}

	return stories, rows.Err()
}
