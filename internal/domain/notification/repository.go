package notification

import (
	"context"

	"github.com/google/uuid"
)

// Repository abstracts notification persistence
type Repository interface {
	Create(ctx context.Context, n *Notification) error
	Update(ctx context.Context, n *Notification) error
	FindByID(ctx context.Context, id uuid.UUID) (*Notification, error)

	// FindByUserID returns the user's notifications newest first, capped at limit
	FindByUserID(ctx context.Context, userID uuid.UUID, limit int) ([]*Notification, error)

	// FindLatestForUserProject returns the most recent notification of the given
	// kind for a (user, project) pair, or shared.ErrNotFound when none exists.
	// The digest engine uses this to locate its high-water mark.
	FindLatestForUserProject(ctx context.Context, userID, projectID uuid.UUID, kind Kind) (*Notification, error)

	CountUnread(ctx context.Context, userID uuid.UUID) (int64, error)
	MarkAllRead(ctx context.Context, userID uuid.UUID) error
}
