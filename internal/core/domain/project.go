package domain

import (
	"errors"
	"time"
)

var ErrProjectNotFound = errors.New("project not found")

// Project groups tasks under a single owner. OwnerID is the creator of the
// project; it is informational and does not grant extra access (project
// deletion is gated on role, not ownership).
type Project struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	OwnerID     string    `json:"owner_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
