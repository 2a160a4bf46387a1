package notifications

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/portal/backend/internal/domain/notification"
	"github.com/portal/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

func TestNotificationService_ListMine(t *testing.T) {
	t.Run("clamps out-of-range limits to the default", func(t *testing.T) {
		repo := new(MockNotificationRepository)
		service := NewNotificationService(repo, zap.NewNop())
		userID := uuid.New()

		repo.On("FindByUserID", mock.Anything, userID, defaultFeedLimit).Return([]*notification.Notification{}, nil).Twice()
		repo.On("FindByUserID", mock.Anything, userID, 25).Return([]*notification.Notification{}, nil).Once()

		_, err := service.ListMine(context.Background(), userID, 0)
		assert.NoError(t, err)
		_, err = service.ListMine(context.Background(), userID, 1000)
		assert.NoError(t, err)
		_, err = service.ListMine(context.Background(), userID, 25)
		assert.NoError(t, err)

		repo.AssertExpectations(t)
	})

	t.Run("requires authentication", func(t *testing.T) {
		service := NewNotificationService(new(MockNotificationRepository), zap.NewNop())

		_, err := service.ListMine(context.Background(), uuid.Nil, 10)
		assert.ErrorIs(t, err, shared.ErrUnauthenticated)
	})
}

func TestNotificationService_MarkRead(t *testing.T) {
	userID := uuid.New()
	projectID := uuid.New()

	t.Run("marks own unread notification", func(t *testing.T) {
		repo := new(MockNotificationRepository)
		service := NewNotificationService(repo, zap.NewNop())

		rec, err := notification.New(userID, projectID, notification.KindNoteAdded, "New Project Update", "hello")
		assert.NoError(t, err)

		repo.On("FindByID", mock.Anything, rec.ID).Return(rec, nil)
		repo.On("Update", mock.Anything, mock.MatchedBy(func(n *notification.Notification) bool {
			return n.IsRead
		})).Return(nil)

		err = service.MarkRead(context.Background(), userID, rec.ID)
		assert.NoError(t, err)
		repo.AssertExpectations(t)
	})

	t.Run("denies marking another user's notification", func(t *testing.T) {
		repo := new(MockNotificationRepository)
		service := NewNotificationService(repo, zap.NewNop())

		rec, err := notification.New(uuid.New(), projectID, notification.KindNoteAdded, "New Project Update", "hello")
		assert.NoError(t, err)

		repo.On("FindByID", mock.Anything, rec.ID).Return(rec, nil)

		err = service.MarkRead(context.Background(), userID, rec.ID)
		assert.ErrorIs(t, err, shared.ErrAccessDenied)
		repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("already-read rows are a no-op", func(t *testing.T) {
		repo := new(MockNotificationRepository)
		service := NewNotificationService(repo, zap.NewNop())

		rec, err := notification.New(userID, projectID, notification.KindNoteAdded, "New Project Update", "hello")
		assert.NoError(t, err)
		rec.MarkRead()

		repo.On("FindByID", mock.Anything, rec.ID).Return(rec, nil)

		err = service.MarkRead(context.Background(), userID, rec.ID)
		assert.NoError(t, err)
		repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})
}
