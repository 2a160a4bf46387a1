package notifications

import (
	"context"

	"github.com/google/uuid"
	"github.com/portal/backend/internal/domain/notification"
	"github.com/portal/backend/internal/domain/shared"
	"go.uber.org/zap"
)

const defaultFeedLimit = 50

// NotificationService serves a user's own notification feed. Every
// operation is owner-gated: callers only ever see or mutate their own rows.
type NotificationService struct {
	repo   notification.Repository
	logger *zap.Logger
}

// NewNotificationService creates a notification service
func NewNotificationService(repo notification.Repository, logger *zap.Logger) *NotificationService {
	return &NotificationService{repo: repo, logger: logger}
}

// ListMine returns the caller's notifications newest first
func (s *NotificationService) ListMine(ctx context.Context, userID uuid.UUID, limit int) ([]*notification.Notification, error) {
	if userID == uuid.Nil {
		return nil, shared.ErrUnauthenticated
	}
	if limit <= 0 || limit > 200 {
		limit = defaultFeedLimit
	}
	return s.repo.FindByUserID(ctx, userID, limit)
}

// UnreadCount returns the caller's unread notification count
func (s *NotificationService) UnreadCount(ctx context.Context, userID uuid.UUID) (int64, error) {
	if userID == uuid.Nil {
		return 0, shared.ErrUnauthenticated
	}
	return s.repo.CountUnread(ctx, userID)
}

// MarkRead marks one of the caller's notifications read. Marking someone
// else's notification is AccessDenied, not NotFound, so probing IDs still
// reveals nothing useful.
func (s *NotificationService) MarkRead(ctx context.Context, userID, notificationID uuid.UUID) error {
	if userID == uuid.Nil {
		return shared.ErrUnauthenticated
	}

	rec, err := s.repo.FindByID(ctx, notificationID)
	if err != nil {
		return err
	}
	if rec.UserID != userID {
		return shared.ErrAccessDenied
	}
	if rec.IsRead {
		return nil
	}

	rec.MarkRead()
	return s.repo.Update(ctx, rec)
}

// MarkAllRead marks every unread notification of the caller as read
func (s *NotificationService) MarkAllRead(ctx context.Context, userID uuid.UUID) error {
	if userID == uuid.Nil {
		return shared.ErrUnauthenticated
	}
	return s.repo.MarkAllRead(ctx, userID)
}
