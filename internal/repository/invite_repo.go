package repository

import (
	"database/sql"
	"fmt"
	"time"

	"kyn/internal/database"
	"kyn/internal/models"
)

// InviteRepository handles database operations for tokenized invites
type InviteRepository struct {
	db *database.DB
}

// NewInviteRepository creates a new invite repository
func NewInviteRepository(db *database.DB) *InviteRepository {
	return &InviteRepository{db: db}
}

// CreateInvite stores a new single-use invite token
func (r *InviteRepository) CreateInvite(familyID int64, token string, expiresAt time.Time) (*models.Invite, error) {
	query := "INSERT INTO family_invites (family_id, token, expires_at) VALUES (?, ?, ?)"
	id, err := r.db.ExecReturningID(query, familyID, token, expiresAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create invite: %w", err)
	}

	invite := &models.Invite{
		ID:        id,
		FamilyID:  familyID,
		Token:     token,
		ExpiresAt: expiresAt,
		CreatedAt: time.Now(),
	}

	return invite, nil
}

// GetInviteByToken retrieves an invite by its token regardless of state.
// Validity (used, expired) is the caller's call so it can report the
// precise failure reason.
func (r *InviteRepository) GetInviteByToken(token string) (*models.Invite, error) {
	query := `
		SELECT id, family_id, token, expires_at, used, created_at
		FROM family_invites
		WHERE token = ?
	`
	invite := &models.Invite{}
	err := r.db.QueryRow(query, token).Scan(
		&invite.ID,
		&invite.FamilyID,
		&invite.Token,
		&invite.ExpiresAt,
		&invite.Used,
		&invite.CreatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get invite: %w", err)
	}

	return invite, nil
}

// RedeemInvite marks an invite used and enrolls the profile in one
// transaction. The guarded UPDATE makes the token single-use even when
// two redemptions race: only one sees used = FALSE.
func (r *InviteRepository) RedeemInvite(inviteID, familyID, profileID int64) error {
	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	result, err := tx.Exec("UPDATE family_invites SET used = ? WHERE id = ? AND used = ?", true, inviteID, false)
	if err != nil {
		return fmt.Errorf("failed to mark invite used: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read redeem result: %w", err)
	}
	if rows == 0 {
		return ErrNotFound
	}

	_, err = tx.Exec("INSERT INTO family_members (family_id, profile_id, role) VALUES (?, ?, 'member')", familyID, profileID)
	if err != nil {
		return fmt.Errorf("failed to add family member: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}
