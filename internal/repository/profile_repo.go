package repository

import (
	"database/sql"
	"fmt"
	"time"

	"kyn/internal/database"
	"kyn/internal/models"
)

// ProfileRepository handles database operations for profiles
type ProfileRepository struct {
	db *database.DB
}

// NewProfileRepository creates a new profile repository
func NewProfileRepository(db *database.DB) *ProfileRepository {
	return &ProfileRepository{db: db}
}

// CreateProfile inserts a profile for a user
func (r *ProfileRepository) CreateProfile(userID int64, email, fullName string) (*models.Profile, error) {
	query := "INSERT INTO profiles (user_id, email, full_name) VALUES (?, ?, ?)"
	id, err := r.db.ExecReturningID(query, userID, email, fullName)
	if err != nil {
		return nil, fmt.Errorf("failed to create profile: %w", err)
	}

	profile := &models.Profile{
		ID:        id,
		UserID:    userID,
		Email:     email,
		FullName:  fullName,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	return profile, nil
}

// GetProfileByUserID retrieves the profile backing a login account
func (r *ProfileRepository) GetProfileByUserID(userID int64) (*models.Profile, error) {
	return r.scanOne("SELECT id, user_id, email, full_name, avatar_url, created_at, updated_at FROM profiles WHERE user_id = ?", userID)
}

// GetProfileByID retrieves a profile by its ID
func (r *ProfileRepository) GetProfileByID(id int64) (*models.Profile, error) {
	return r.scanOne("SELECT id, user_id, email, full_name, avatar_url, created_at, updated_at FROM profiles WHERE id = ?", id)
}

// GetProfileByEmail retrieves a profile by email address. The
// comparison ignores case since callers type addresses by hand.
func (r *ProfileRepository) GetProfileByEmail(email string) (*models.Profile, error) {
	return r.scanOne("SELECT id, user_id, email, full_name, avatar_url, created_at, updated_at FROM profiles WHERE LOWER(email) = LOWER(?)", email)
}

// UpdateProfile updates a profile's display fields
func (r *ProfileRepository) UpdateProfile(id int64, fullName string, avatarURL *string) error {
	query := "UPDATE profiles SET full_name = ?, avatar_url = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?"
	_, err := r.db.Exec(query, fullName, avatarURL, id)
	if err != nil {
		return fmt.Errorf("failed to update profile: %w", err)
	}
	return nil
}

func (r *ProfileRepository) scanOne(query string, arg interface{}) (*models.Profile, error) {
	profile := &models.Profile{}
	err := r.db.QueryRow(query, arg).Scan(
		&profile.ID,
		&profile.UserID,
		&profile.Email,
		&profile.FullName,
		&profile.AvatarURL,
		&profile.CreatedAt,
		&profile.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}

	return profile, nil
}
