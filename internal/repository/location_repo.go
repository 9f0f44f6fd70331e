package repository

import (
	"fmt"
	"time"

	"kyn/internal/database"
	"kyn/internal/models"
)

// LocationRepository handles database operations for saved family places
type LocationRepository struct {
	db *database.DB
}

// NewLocationRepository creates a new location repository
func NewLocationRepository(db *database.DB) *LocationRepository {
	return &LocationRepository{db: db}
}

// CreateLocation inserts a saved place
func (r *LocationRepository) CreateLocation(familyID int64, label string, latitude, longitude float64) (*models.Location, error) {
	query := "INSERT INTO family_locations (family_id, label, latitude, longitude) VALUES (?, ?, ?, ?)"
	id, err := r.db.ExecReturningID(query, familyID, label, latitude, longitude)
	if err != nil {
		return nil, fmt.Errorf("failed to create location: %w", err)
	}

	return &models.Location{
		ID:        id,
		FamilyID:  familyID,
		Label:     label,
		Latitude:  latitude,
		Longitude: longitude,
		CreatedAt: time.Now(),
	}, nil
}

// ListLocations retrieves a family's saved places
func (r *LocationRepository) ListLocations(familyID int64) ([]models.Location, error) {
	query := "SELECT id, family_id, label, latitude, longitude, created_at FROM family_locations WHERE family_id = ? ORDER BY created_at ASC"
	rows, err := r.db.Query(query, familyID)
	if err != nil {
		return nil, fmt.Errorf("failed to query locations: %w", err)
	}
	defer rows.Close()

	var locations []models.Location
	for rows.Next() {
		var l models.Location
		if err := rows.Scan(&l.ID, &l.FamilyID, &l.Label, &l.Latitude, &l.Longitude, &l.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan location: %w", err)
		}
		locations = append(locations, l)
	}

	return locations, rows.Err()
}

// DeleteLocation removes a saved place, scoped to a family
func (r *LocationRepository) DeleteLocation(familyID, locationID int64) error {
	query := "DELETE FROM family_locations WHERE id = ? AND family_id = ?"
	if _, err := r.db.Exec(query, locationID, familyID); err != nil {
		return fmt.Errorf("failed to delete location: %w", err)
	}
	return nil
}
