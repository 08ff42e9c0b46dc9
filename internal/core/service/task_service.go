package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/taskforge/task-system/internal/core/domain"
	"github.com/taskforge/task-system/internal/core/ports"
)

// TaskService implements task use-cases. Task creation is role-gated
// upstream (manager); task updates are gated here on ownership: the
// assignee of the task, or an admin, and nobody else.
type TaskService struct {
	tasks      ports.TaskRepository
	projects   ports.ProjectRepository
	dispatcher ports.ActivityDispatcher
	log        zerolog.Logger
}

func NewTaskService(tasks ports.TaskRepository, projects ports.ProjectRepository, dispatcher ports.ActivityDispatcher, log zerolog.Logger) *TaskService {
	return &TaskService{tasks: tasks, projects: projects, dispatcher: dispatcher, log: log}
}

func (s *TaskService) Create(ctx context.Context, in ports.CreateTaskInput) (*domain.Task, error) {
	if in.Title == "" || in.AssigneeID == "" {
		return nil, domain.ErrInvalidInput
	}

	// The parent project must exist; a dangling project id is a 404, not a
	// silent orphan.
	if _, err := s.projects.FindByID(ctx, in.ProjectID); err != nil {
		return nil, err
	}

	status := in.Status
	if status == "" {
		status = domain.DefaultTaskStatus
	}

	now := time.Now().UTC()
	task := &domain.Task{
		ProjectID:   in.ProjectID,
		Title:       in.Title,
		Description: in.Description,
		Status:      status,
		AssigneeID:  in.AssigneeID,
		CreatedBy:   in.Actor.ID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	created, err := s.tasks.Create(ctx, task)
	if err != nil {
		s.log.Error().Err(err).Msg("failed to create task")
		return nil, err
	}

	s.record(ports.ActivityInput{
		TaskID:    created.ID,
		Action:    domain.ActivityTaskCreated,
		ActorID:   in.Actor.ID,
		Detail:    "assigned to " + created.AssigneeID,
		Timestamp: now,
	})

	s.log.Info().Str("task_id", created.ID).Str("project_id", created.ProjectID).Msg("task created")
	return created, nil
}

func (s *TaskService) Get(ctx context.Context, id string) (*domain.Task, error) {
	return s.tasks.FindByID(ctx, id)
}

func (s *TaskService) ListByProject(ctx context.Context, projectID string) ([]*domain.Task, error) {
	if _, err := s.projects.FindByID(ctx, projectID); err != nil {
		return nil, err
	}
	return s.tasks.ListByProject(ctx, projectID)
}

// Update applies a partial update. The lookup runs before the ownership
// check, so a missing task is reported as not-found even to callers who
// would have been denied.
func (s *TaskService) Update(ctx context.Context, in ports.UpdateTaskInput) (*domain.Task, error) {
	task, err := s.tasks.FindByID(ctx, in.TaskID)
	if err != nil {
		return nil, err
	}

	// Ownership: the owner field for task updates is the assignee, not the
	// creator.
	if !task.CanBeModifiedBy(in.Actor) {
		return nil, domain.ErrForbidden
	}

	if in.Title != nil {
		if *in.Title == "" {
			return nil, domain.ErrInvalidInput
		}
		task.Title = *in.Title
	}
	if in.Description != nil {
		task.Description = *in.Description
	}
	if in.Status != nil {
		if *in.Status == "" {
			return nil, domain.ErrInvalidInput
		}
		task.Status = *in.Status
	}
	task.UpdatedAt = time.Now().UTC()

	updated, err := s.tasks.Update(ctx, task)
	if err != nil {
		s.log.Error().Err(err).Str("task_id", in.TaskID).Msg("failed to update task")
		return nil, err
	}

	s.record(ports.ActivityInput{
		TaskID:    updated.ID,
		Action:    domain.ActivityTaskUpdated,
		ActorID:   in.Actor.ID,
		Detail:    "status " + updated.Status,
		Timestamp: task.UpdatedAt,
	})

	return updated, nil
}

func (s *TaskService) record(event ports.ActivityInput) {
	if s.dispatcher != nil {
		s.dispatcher.Enqueue(event)
	}
}
