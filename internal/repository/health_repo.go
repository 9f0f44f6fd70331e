package repository

import (
	"fmt"
	"time"

	"kyn/internal/database"
	"kyn/internal/models"
)

// HealthRepository handles database operations for wellness logs,
// fitness challenges and the family medical history
type HealthRepository struct {
	db *database.DB
}

// NewHealthRepository creates a new health repository
func NewHealthRepository(db *database.DB) *HealthRepository {
	return &HealthRepository{db: db}
}

// UpsertLog records a member's wellness entry for a day, replacing any
// existing entry for the same day
func (r *HealthRepository) UpsertLog(log *models.HealthLog) error {
	query := r.db.GetDialect().UpsertQuery("family_health_logs",
		[]string{"family_id", "profile_id", "date", "steps", "calories", "sleep_hours", "notes"},
		[]string{"family_id", "profile_id", "date"},
		[]string{"steps", "calories", "sleep_hours", "notes"})
	_, err := r.db.Exec(query, log.FamilyID, log.ProfileID, log.Date, log.Steps, log.Calories, log.SleepHours, log.Notes)
	if err != nil {
		return fmt.Errorf("failed to save health log: %w", err)
	}
	return nil
}

// ListLogs retrieves a family's wellness entries, newest day first
func (r *HealthRepository) ListLogs(familyID int64) ([]models.HealthLog, error) {
	query := `
		SELECT id, family_id, profile_id, date, steps, calories, sleep_hours, notes
		FROM family_health_logs
		WHERE family_id = ?
		ORDER BY date DESC
	`
	rows, err := r.db.Query(query, familyID)
	if err != nil {
		return nil, fmt.Errorf("failed to query health logs: %w", err)
	}
	defer rows.Close()

	var logs []models.HealthLog
	for rows.Next() {
		var l models.HealthLog
		if err := rows.Scan(&l.ID, &l.FamilyID, &l.ProfileID, &l.Date, &l.Steps, &l.Calories, &l.SleepHours, &l.Notes); err != nil {
			return nil, fmt.Errorf("failed to scan health log: %w", err)
		}
		logs = append(logs, l)
	}

	return logs, rows.Err()
}

// CreateChallenge inserts a fitness challenge
func (r *HealthRepository) CreateChallenge(familyID int64, title string, description *string, startDate, endDate string, createdBy int64) (*models.FitnessChallenge, error) {
	query := "INSERT INTO family_fitness_challenges (family_id, title, description, start_date, end_date, created_by) VALUES (?, ?, ?, ?, ?, ?)"
	id, err := r.db.ExecReturningID(query, familyID, title, description, startDate, endDate, createdBy)
	if err != nil {
		return nil, fmt.Errorf("failed to create challenge: %w", err)
	}

	return &models.FitnessChallenge{
		ID:          id,
		FamilyID:    familyID,
		Title:       title,
		Description: description,
		StartDate:   startDate,
		EndDate:     endDate,
		CreatedBy:   createdBy,
		CreatedAt:   time.Now(),
	}, nil
}

// ListChallenges retrieves a family's fitness challenges
func (r *HealthRepository) ListChallenges(familyID int64) ([]models.FitnessChallenge, error) {
	query := `
		SELECT id, family_id, title, description, start_date, end_date, created_by, created_at
		FROM family_fitness_challenges
		WHERE family_id = ?
		ORDER BY start_date DESC
	`
	rows, err := r.db.Query(query, familyID)
	if err != nil {
		return nil, fmt.Errorf("failed to query challenges: %w", err)
	}
	defer rows.Close()

	var challenges []models.FitnessChallenge
	for rows.Next() {
		var c models.FitnessChallenge
		if err := rows.Scan(&c.ID, &c.FamilyID, &c.Title, &c.Description, &c.StartDate, &c.EndDate, &c.CreatedBy, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan challenge: %w", err)
		}
		challenges = append(challenges, c)
	}

	return challenges, rows.Err()
}

// CreateMedicalRecord inserts a family medical history entry
func (r *HealthRepository) CreateMedicalRecord(rec *models.MedicalRecord) (*models.MedicalRecord, error) {
	query := "INSERT INTO family_medical_history (family_id, profile_id, relation, condition_name, notes, diagnosed_at) VALUES (?, ?, ?, ?, ?, ?)"
	id, err := r.db.ExecReturningID(query, rec.FamilyID, rec.ProfileID, rec.Relation, rec.Condition, rec.Notes, rec.DiagnosedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create medical record: %w", err)
	}

	created := *rec
	created.ID = id
	created.CreatedAt = time.Now()
	return &created, nil
}

// ListMedicalRecords retrieves a family's medical history
func (r *HealthRepository) ListMedicalRecords(familyID int64) ([]models.MedicalRecord, error) {
	query := `
		SELECT id, family_id, profile_id, relation, condition_name, notes, diagnosed_at, created_at
		FROM family_medical_history
		WHERE family_id = ?
		ORDER BY created_at DESC
	`
	rows, err := r.db.Query(query, familyID)
	if err != nil {
		return nil, fmt.Errorf("failed to query medical history: %w", err)
	}
	defer rows.Close()

	var records []models.MedicalRecord
	for rows.Next() {
		var rec models.MedicalRecord
		if err := rows.Scan(&rec.ID, &rec.FamilyID, &rec.ProfileID, &rec.Relation, &rec.Condition,
			&rec.Notes, &rec.DiagnosedAt, &rec.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan medical record: %w", err)
		}
		records = append(records, rec)
	}

	return records, rows.Err()
}
