package ports

import (
	"context"

	"github.com/taskforge/task-system/internal/core/domain"
)

// CreateTaskInput carries all data needed to create a task inside a project.
type CreateTaskInput struct {
	ProjectID   string
	Title       string
	Description string
	Status      string
	AssigneeID  string
	Actor       domain.Principal
}

// UpdateTaskInput carries a partial task update. Nil fields are left
// untouched. Actor must be the task's assignee or an admin; the creator of
// the task holds no special rights here.
type UpdateTaskInput struct {
	TaskID      string
	Title       *string
	Description *string
	Status      *string
	Actor       domain.Principal
}

// TaskService defines use-case operations for tasks.
type TaskService interface {
	Create(ctx context.Context, in CreateTaskInput) (*domain.Task, error)
	Get(ctx context.Context, id string) (*domain.Task, error)
	ListByProject(ctx context.Context, projectID string) ([]*domain.Task, error)
	Update(ctx context.Context, in UpdateTaskInput) (*domain.Task, error)
}
