package domain

import (
	"errors"
	"time"
)

var ErrTaskNotFound = errors.New("task not found")

// DefaultTaskStatus is applied when a task is created without a status.
// Status is an uninterpreted label; no transition rules are enforced.
const DefaultTaskStatus = "todo"

// Task is a unit of work inside a project. AssigneeID is the owner field
// for modification checks; CreatedBy records who created the task and
// carries no access rights.
type Task struct {
	ID          string    `json:"id"`
	ProjectID   string    `json:"project_id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Status      string    `json:"status"`
	AssigneeID  string    `json:"assignee_id"`
	CreatedBy   string    `json:"created_by"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// CanBeModifiedBy reports whether p may modify the task: the assignee may
// always modify their own task, and admins may modify any task.
func (t *Task) CanBeModifiedBy(p Principal) bool {
	return p.Role == RoleAdmin || p.ID == t.AssigneeID
}
