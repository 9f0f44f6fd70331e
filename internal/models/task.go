package models

import "time"

// Task is a family chore or to-do item
type Task struct {
	ID          int64      `json:"id"`
	FamilyID    int64      `json:"familyId"`
	Title       string     `json:"title"`
	Description *string    `json:"description,omitempty"`
	AssignedTo  *int64     `json:"assignedTo,omitempty"`
	DueDate     *time.Time `json:"dueDate,omitempty"`
	Completed   bool       `json:"completed"`
	CreatedAt   time.Time  `json:"createdAt"`
}
