package repository

import (
	"fmt"
	"time"

	"kyn/internal/database"
	"kyn/internal/models"
)

// FeedRepository handles database operations for posts and comments
type FeedRepository struct {
	db *database.DB
}

// NewFeedRepository creates a new feed repository
func NewFeedRepository(db *database.DB) *FeedRepository {
	return &FeedRepository{db: db}
}

// CreatePost inserts a feed post
func (r *FeedRepository) CreatePost(familyID, authorID int64, content string) (*models.Post, error) {
	query := "INSERT INTO posts (family_id, author_id, content) VALUES (?, ?, ?)"
	id, err := r.db.ExecReturningID(query, familyID, authorID, content)
	if err != nil {
		return nil, fmt.Errorf("failed to create post: %w", err)
	}

	return &models.Post{
		ID:        id,
		FamilyID:  familyID,
		AuthorID:  authorID,
		Content:   content,
		CreatedAt: time.Now(),
	}, nil
}

// ListPosts retrieves a family's feed, newest first
func (r *FeedRepository) ListPosts(familyID int64) ([]models.Post, error) {
	query := `
		SELECT p.id, p.family_id, p.author_id, pr.full_name, p.content, p.created_at
		FROM posts p
		INNER JOIN profiles pr ON p.author_id = pr.id
		WHERE p.family_id = ?
		ORDER BY p.created_at DESC
	`
	rows, err := r.db.Query(query, familyID)
	if err != nil {
		return nil, fmt.Errorf("failed to query posts: %w", err)
	}
	defer rows.Close()

	var posts []models.Post
	for rows.Next() {
		var p models.Post
		if err := rows.Scan(&p.ID, &p.FamilyID, &p.AuthorID, &p.AuthorName, &p.Content, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan post: %w", err)
		}
		posts = append(posts, p)
	}

	return posts, rows.Err()
}

// GetPost retrieves a single post scoped to a family
func (r *FeedRepository) GetPost(familyID, postID int64) (*models.Post, error) {
	query := "SELECT id, family_id, author_id, content, created_at FROM posts WHERE id = ? AND family_id = ?"
	p := &models.Post{}
	err := r.db.QueryRow(query, postID, familyID).Scan(&p.ID, &p.FamilyID, &p.AuthorID, &p.Content, &p.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to get post: %w", err)
	}
	return p, nil
}

// CreateComment inserts a comment on a post
func (r *FeedRepository) CreateComment(postID, authorID int64, content string) (*models.Comment, error) {
	query := "INSERT INTO comments (post_id, author_id, content) VALUES (?, ?, ?)"
	id, err := r.db.ExecReturningID(query, postID, authorID, content)
	if err != nil {
		return nil, fmt.Errorf("failed to create comment: %w", err)
	}

	return &models.Comment{
		ID:        id,
		PostID:    postID,
		AuthorID:  authorID,
		Content:   content,
		CreatedAt: time.Now(),
	}, nil
}

// ListComments retrieves a post's comments, oldest first
func (r *FeedRepository) ListComments(postID int64) ([]models.Comment, error) {
	query := `
		SELECT c.id, c.post_id, c.author_id, pr.full_name, c.content, c.created_at
		FROM comments c
		INNER JOIN profiles pr ON c.author_id = pr.id
		WHERE c.post_id = ?
		ORDER BY c.created_at ASC
	`
	rows, err := r.db.Query(query, postID)
	if err != nil {
		return nil, fmt.Errorf("failed to query comments: %w", err)
	}
	defer rows.Close()

	var comments []models.Comment
	for rows.Next() {
		var c models.Comment
		if err := rows.Scan(&c.ID, &c.PostID, &c.AuthorID, &c.AuthorName, &c.Content, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan comment: %w", err)
		}
		comments = append(comments, c)
	}

	return comments, rows.Err()
}
