package audit

import (
	"context"

	"github.com/google/uuid"
)

// Repository is the append-only store for audit entries. There is no
// update or delete: the trail only grows.
type Repository interface {
	Append(ctx context.Context, e *Entry) error

	// FindByProjectID returns entries for a project newest first, capped at limit
	FindByProjectID(ctx context.Context, projectID uuid.UUID, limit int) ([]*Entry, error)
}
