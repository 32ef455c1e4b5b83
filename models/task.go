package models

import "time"

// Task is a single to-do item. Every task has exactly one owner which is set
// from the authenticated identity at creation and never changes.
type Task struct {
	ID          int64     `json:"id"`
	Description string    `json:"description"`
	Completed   bool      `json:"completed"`
	OwnerID     int64     `json:"owner"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// TableName returns the name of the database table
// associated with the Task model.
func (t Task) TableName() string {
	return "tasks"
}

// TaskUpdate is a partial update of a task. Only non-nil fields are written.
type TaskUpdate struct {
	Description *string
	Completed   *bool
}

// IsEmpty reports whether the update carries no changes.
func (t TaskUpdate) IsEmpty() bool {
	return t.Description == nil && t.Completed == nil
}
