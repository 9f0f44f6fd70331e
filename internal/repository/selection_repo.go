package repository

import (
	"database/sql"
	"fmt"

	"kyn/internal/database"
)

// SelectionRepository persists each profile's currently selected family,
// so the choice follows the person across devices.
type SelectionRepository struct {
	db *database.DB
}

// NewSelectionRepository creates a new selection repository
func NewSelectionRepository(db *database.DB) *SelectionRepository {
	return &SelectionRepository{db: db}
}

// Get returns the stored family selection for a profile.
// The second return value reports whether a selection exists.
func (r *SelectionRepository) Get(profileID int64) (int64, bool, error) {
	var familyID int64
	err := r.db.QueryRow("SELECT family_id FROM family_selections WHERE profile_id = ?", profileID).Scan(&familyID)
	if err == sql.ErrNoRows {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("failed to get family selection: %w", err)
	}
	return familyID, true, nil
}

// Set stores or replaces the profile's family selection
func (r *SelectionRepository) Set(profileID, familyID int64) error {
	query := r.db.GetDialect().UpsertQuery("family_selections",
		[]string{"profile_id", "family_id"},
		[]string{"profile_id"},
		[]string{"family_id"})
	if _, err := r.db.Exec(query, profileID, familyID); err != nil {
		return fmt.Errorf("failed to set family selection: %w", err)
	}
	return nil
}

// Clear removes the profile's family selection
func (r *SelectionRepository) Clear(profileID int64) error {
	if _, err := r.db.Exec("DELETE FROM family_selections WHERE profile_id = ?", profileID); err != nil {
		return fmt.Errorf("failed to clear family selection: %w", err)
	}
	return nil
}
