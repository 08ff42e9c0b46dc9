package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/taskforge/task-system/internal/core/domain"
	"github.com/taskforge/task-system/internal/core/ports"
)

// ProjectService implements project use-cases. Role gates (manager for
// create, admin for delete) run in the transport layer before these
// methods are reached.
type ProjectService struct {
	repo ports.ProjectRepository
	log  zerolog.Logger
}

func NewProjectService(repo ports.ProjectRepository, log zerolog.Logger) *ProjectService {
	return &ProjectService{repo: repo, log: log}
}

func (s *ProjectService) Create(ctx context.Context, in ports.CreateProjectInput) (*domain.Project, error) {
	if in.Name == "" {
		return nil, domain.ErrInvalidInput
	}

	now := time.Now().UTC()
	project := &domain.Project{
		Name:        in.Name,
		Description: in.Description,
		OwnerID:     in.Actor.ID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	created, err := s.repo.Create(ctx, project)
	if err != nil {
		s.log.Error().Err(err).Msg("failed to create project")
		return nil, err
	}

	s.log.Info().Str("project_id", created.ID).Str("owner_id", in.Actor.ID).Msg("project created")
	return created, nil
}

func (s *ProjectService) Get(ctx context.Context, id string) (*domain.Project, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *ProjectService) List(ctx context.Context) ([]*domain.Project, error) {
	return s.repo.List(ctx)
}

func (s *ProjectService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.log.Info().Str("project_id", id).Msg("project deleted")
	return nil
}
