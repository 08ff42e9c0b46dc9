package ports

import (
	"context"
	"time"

	"github.com/taskforge/task-system/internal/core/domain"
)

// ActivityInput is the DTO handed from the task service to the activity
// pipeline.
type ActivityInput struct {
	TaskID    string
	Action    string
	ActorID   string
	Detail    string
	Timestamp time.Time
}

// ActivityDispatcher enqueues activity events for asynchronous processing.
type ActivityDispatcher interface {
	Enqueue(event ActivityInput)
}

// ActivityService processes activity events and serves the per-task feed.
type ActivityService interface {
	Process(ctx context.Context, in ActivityInput) error
	ListByTask(ctx context.Context, taskID string) ([]*domain.ActivityEntry, error)
}

// ActivityRepository defines persistence for the task activity feed.
type ActivityRepository interface {
	Insert(ctx context.Context, e *domain.ActivityEntry) error
	// ListByTask returns the newest entries first.
	ListByTask(ctx context.Context, taskID string, limit int) ([]*domain.ActivityEntry, error)
}
