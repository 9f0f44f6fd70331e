package repository

import (
	"fmt"
	"time"

	"kyn/internal/database"
	"kyn/internal/models"
)

// EventRepository handles database operations for events and RSVPs
type EventRepository struct {
	db *database.DB
}

// NewEventRepository creates a new event repository
func NewEventRepository(db *database.DB) *EventRepository {
	return &EventRepository{db: db}
}

// CreateEvent inserts a calendar event
func (r *EventRepository) CreateEvent(familyID int64, title string, description, location *string, eventDate time.Time) (*models.Event, error) {
	query := "INSERT INTO events (family_id, title, description, location, event_date) VALUES (?, ?, ?, ?, ?)"
	id, err := r.db.ExecReturningID(query, familyID, title, description, location, eventDate)
	if err != nil {
		return nil, fmt.Errorf("failed to create event: %w", err)
	}

	return &models.Event{
		ID:          id,
		FamilyID:    familyID,
		Title:       title,
		Description: description,
		Location:    location,
		EventDate:   eventDate,
		CreatedAt:   time.Now(),
	}, nil
}

// ListEvents retrieves a family's events in date order
func (r *EventRepository) ListEvents(familyID int64) ([]models.Event, error) {
	query := `
		SELECT id, family_id, title, description, location, event_date, created_at
		FROM events
		WHERE family_id = ?
		ORDER BY event_date ASC
	`
	rows, err := r.db.Query(query, familyID)
	if err != nil {
		return nil, fmt.Errorf("failed to query events: %w", err)
	}
	defer rows.Close()

	var events []models.Event
	for rows.Next() {
		var e models.Event
		if err := rows.Scan(&e.ID, &e.FamilyID, &e.Title, &e.Description, &e.Location, &e.EventDate, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan event: %w", err)
		}
		events = append(events, e)
	}

	return events, rows.Err()
}

// UpsertRSVP records a member's answer for an event, replacing any
// previous answer
func (r *EventRepository) UpsertRSVP(eventID, profileID int64, status string) error {
	query := r.db.GetDialect().UpsertQuery("event_rsvps",
		[]string{"event_id", "profile_id", "status"},
		[]string{"event_id", "profile_id"},
		[]string{"status"})
	if _, err := r.db.Exec(query, eventID, profileID, status); err != nil {
		return fmt.Errorf("failed to save rsvp: %w", err)
	}
	return nil
}

// ListRSVPs retrieves all answers for an event
func (r *EventRepository) ListRSVPs(eventID int64) ([]models.RSVP, error) {
	query := `
		SELECT id, event_id, profile_id, status, updated_at
		FROM event_rsvps
		WHERE event_id = ?
	`
	rows, err := r.db.Query(query, eventID)
	if err != nil {
		return nil, fmt.Errorf("failed to query rsvps: %w", err)
	}
	defer rows.Close()

	var rsvps []models.RSVP
	for rows.Next() {
		var rsvp models.RSVP
		if err := rows.Scan(&rsvp.ID, &rsvp.EventID, &rsvp.ProfileID, &rsvp.Status, &rsvp.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan rsvp: %w", err)
		}
		rsvps = append(rsvps, rsvp)
	}

	return rsvps, rows.Err()
}

// EventBelongsToFamily checks event ownership before accepting an RSVP
func (r *EventRepository) EventBelongsToFamily(eventID, familyID int64) (bool, error) {
	var count int
	if err := r.db.QueryRow("SELECT COUNT(*) FROM events WHERE id = ? AND family_id = ?", eventID, familyID).Scan(&count); err != nil {
		return false, fmt.Errorf("failed to check event family: %w", err)
	}
	return count > 0, nil
}
