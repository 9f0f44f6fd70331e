package repository

import (
	"fmt"
	"time"

	"kyn/internal/database"
	"kyn/internal/models"
)

// TaskRepository handles database operations for family tasks
type TaskRepository struct {
	db *database.DB
}

// NewTaskRepository creates a new task repository
func NewTaskRepository(db *database.DB) *TaskRepository {
	return &TaskRepository{db: db}
}

// CreateTask inserts a task
func (r *TaskRepository) CreateTask(familyID int64, title string, description *string, assignedTo *int64, dueDate *time.Time) (*models.Task, error) {
	query := "INSERT INTO tasks (family_id, title, description, assigned_to, due_date) VALUES (?, ?, ?, ?, ?)"
	id, err := r.db.ExecReturningID(query, familyID, title, description, assignedTo, dueDate)
	if err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	return &models.Task{
		ID:          id,
		FamilyID:    familyID,
		Title:       title,
		Description: description,
		AssignedTo:  assignedTo,
		DueDate:     dueDate,
		CreatedAt:   time.Now(),
	}, nil
}

// ListTasks retrieves a family's tasks, incomplete first then by due date
func (r *TaskRepository) ListTasks(familyID int64) ([]models.Task, error) {
	query := `
		SELECT id, family_id, title, description, assigned_to, due_date, completed, created_at
		FROM tasks
		WHERE family_id = ?
		ORDER BY completed ASC, due_date ASC, created_at DESC
	`
	rows, err := r.db.Query(query, familyID)
	if err != nil {
		return nil, fmt.Errorf("failed to query tasks: %w", err)
	}
	defer rows.Close()

	var tasks []models.Task
	for rows.Next() {
		var t models.Task
		if err := rows.Scan(&t.ID, &t.FamilyID, &t.Title, &t.Description, &t.AssignedTo,
			&t.DueDate, &t.Completed, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan task: %w", err)
		}
		tasks = append(tasks, t)
	}

	return tasks, rows.Err()
}

// SetCompleted toggles a task's completed flag, scoped to a family
func (r *TaskRepository) SetCompleted(familyID, taskID int64, completed bool) error {
	query := "UPDATE tasks SET completed = ? WHERE id = ? AND family_id = ?"
	result, err := r.db.Exec(query, completed, taskID, familyID)
	if err != nil {
		return fmt.Errorf("failed to update task: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read update result: %w", err)
	}
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteTask removes a task, scoped to a family
func (r *TaskRepository) DeleteTask(familyID, taskID int64) error {
	query := "DELETE FROM tasks WHERE id = ? AND family_id = ?"
	if _, err := r.db.Exec(query, taskID, familyID); err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}
	return nil
}
