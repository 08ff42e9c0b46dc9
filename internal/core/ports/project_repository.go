package ports

import (
	"context"

	"github.com/taskforge/task-system/internal/core/domain"
)

// ProjectRepository defines persistence operations for projects.
type ProjectRepository interface {
	Create(ctx context.Context, p *domain.Project) (*domain.Project, error)
	FindByID(ctx context.Context, id string) (*domain.Project, error)
	List(ctx context.Context) ([]*domain.Project, error)
	// Delete removes a project by id. Returns domain.ErrProjectNotFound when
	// no project matched.
	Delete(ctx context.Context, id string) error
}
