package domain

import "time"

// Activity actions recorded in the task activity feed.
const (
	ActivityTaskCreated = "task_created"
	ActivityTaskUpdated = "task_updated"
)

// ActivityEntry is an append-only record of something that happened to a
// task. Entries are written asynchronously by the activity pipeline.
type ActivityEntry struct {
	ID        string    `json:"id"`
	TaskID    string    `json:"task_id"`
	Action    string    `json:"action"`
	ActorID   string    `json:"actor_id"`
	Detail    string    `json:"detail,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}
