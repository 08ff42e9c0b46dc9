package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/taskforge/task-system/internal/core/domain"
	"github.com/taskforge/task-system/internal/core/ports"
)

const activityFeedLimit = 100

// DedupChecker abstracts the idempotency store (Redis) for activity events.
type DedupChecker interface {
	IsDuplicate(ctx context.Context, taskID, action string, ts time.Time) (bool, error)
	Mark(ctx context.Context, taskID, action string, ts time.Time) error
}

type activityService struct {
	activities ports.ActivityRepository
	tasks      ports.TaskRepository
	dedup      DedupChecker
	log        zerolog.Logger
}

// NewActivityService returns an ActivityService implementation.
func NewActivityService(
	activities ports.ActivityRepository,
	tasks ports.TaskRepository,
	dedup DedupChecker,
	log zerolog.Logger,
) ports.ActivityService {
	return &activityService{
		activities: activities,
		tasks:      tasks,
		dedup:      dedup,
		log:        log,
	}
}

// Process deduplicates and persists a single activity event.
func (s *activityService) Process(ctx context.Context, in ports.ActivityInput) error {
	isDup, err := s.dedup.IsDuplicate(ctx, in.TaskID, in.Action, in.Timestamp)
	if err != nil {
		s.log.Warn().Err(err).Str("task_id", in.TaskID).Msg("dedup check failed, processing anyway")
	} else if isDup {
		s.log.Debug().Str("task_id", in.TaskID).Str("action", in.Action).Msg("duplicate activity skipped")
		return nil
	}

	if _, err := s.tasks.FindByID(ctx, in.TaskID); err != nil {
		return fmt.Errorf("process activity: %w", err)
	}

	entry := &domain.ActivityEntry{
		TaskID:    in.TaskID,
		Action:    in.Action,
		ActorID:   in.ActorID,
		Detail:    in.Detail,
		Timestamp: in.Timestamp,
	}
	if err := s.activities.Insert(ctx, entry); err != nil {
		return fmt.Errorf("insert activity: %w", err)
	}

	if err := s.dedup.Mark(ctx, in.TaskID, in.Action, in.Timestamp); err != nil {
		s.log.Warn().Err(err).Str("task_id", in.TaskID).Msg("failed to mark activity as processed")
	}

	return nil
}

// ListByTask returns the newest activity entries for a task.
func (s *activityService) ListByTask(ctx context.Context, taskID string) ([]*domain.ActivityEntry, error) {
	if _, err := s.tasks.FindByID(ctx, taskID); err != nil {
		return nil, err
	}
	return s.activities.ListByTask(ctx, taskID, activityFeedLimit)
}
