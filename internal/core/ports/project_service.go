package ports

import (
	"context"

	"github.com/taskforge/task-system/internal/core/domain"
)

// CreateProjectInput carries all data needed to create a project.
// Actor is the authenticated principal performing the call and becomes the
// project owner.
type CreateProjectInput struct {
	Name        string
	Description string
	Actor       domain.Principal
}

// ProjectService defines use-case operations for projects. Minimum-role
// requirements (manager for create, admin for delete) are enforced by the
// transport layer before these methods run.
type ProjectService interface {
	Create(ctx context.Context, in CreateProjectInput) (*domain.Project, error)
	Get(ctx context.Context, id string) (*domain.Project, error)
	List(ctx context.Context) ([]*domain.Project, error)
	Delete(ctx context.Context, id string) error
}
