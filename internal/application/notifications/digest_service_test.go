package notifications

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	appaudit "github.com/portal/backend/internal/application/audit"
	"github.com/portal/backend/internal/domain/authz"
	"github.com/portal/backend/internal/domain/identity"
	"github.com/portal/backend/internal/domain/notification"
	"github.com/portal/backend/internal/domain/project"
	"github.com/portal/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

type digestFixture struct {
	projectRepo      *MockProjectRepository
	documentRepo     *MockDocumentRepository
	photoRepo        *MockPhotoRepository
	notificationRepo *MockNotificationRepository
	userRepo         *MockUserRepository
	sender           *MockEmailSender
	guard            *MockIdempotencyStore
	auditRepo        *MockAuditRepository
	service          *DigestService

	admin    authz.Caller
	client   *identity.User
	project  *project.Project
	guardKey string
}

func newDigestFixture(t *testing.T) *digestFixture {
	t.Helper()

	f := &digestFixture{
		projectRepo:      new(MockProjectRepository),
		documentRepo:     new(MockDocumentRepository),
		photoRepo:        new(MockPhotoRepository),
		notificationRepo: new(MockNotificationRepository),
		userRepo:         new(MockUserRepository),
		sender:           new(MockEmailSender),
		guard:            new(MockIdempotencyStore),
		auditRepo:        new(MockAuditRepository),
	}

	adminID := uuid.New()
	f.admin = authz.Caller{UserID: adminID, Role: identity.RoleAdmin}

	client, err := identity.NewUser("client@example.com", "password123")
	assert.NoError(t, err)
	f.client = client

	proj, err := project.NewProject("Garden Room", client.ID, adminID)
	assert.NoError(t, err)
	f.project = proj
	f.guardKey = fmt.Sprintf("%s:%s", client.ID, proj.ID)

	f.service = NewDigestService(
		f.projectRepo, f.documentRepo, f.photoRepo, f.notificationRepo,
		f.userRepo, f.sender, f.guard, time.Minute,
		appaudit.NewRecorder(f.auditRepo, zap.NewNop()),
		zap.NewNop(),
	)
	return f
}

func (f *digestFixture) expectBaseline() {
	f.projectRepo.On("FindByID", mock.Anything, f.project.ID).Return(f.project, nil)
	f.userRepo.On("FindByID", mock.Anything, f.client.ID).Return(f.client, nil)
	f.guard.On("MarkProcessed", mock.Anything, f.guardKey, time.Minute).Return(true, nil)
	f.guard.On("Release", mock.Anything, f.guardKey).Return(nil)
}

func TestDigestService_ComputeAndSend(t *testing.T) {
	t.Run("no new activity sends nothing and writes no row", func(t *testing.T) {
		f := newDigestFixture(t)
		f.expectBaseline()

		f.notificationRepo.On("FindLatestForUserProject", mock.Anything, f.client.ID, f.project.ID, notification.KindProjectUpdated).
			Return(nil, shared.ErrNotFound)
		f.documentRepo.On("CountVisibleCreatedAfter", mock.Anything, f.project.ID, time.Time{}).Return(int64(0), nil)
		f.photoRepo.On("CountVisibleCreatedAfter", mock.Anything, f.project.ID, time.Time{}).Return(int64(0), nil)

		result, err := f.service.ComputeAndSend(context.Background(), f.admin, f.project.ID)

		assert.NoError(t, err)
		assert.False(t, result.Sent)
		f.sender.AssertNotCalled(t, "Send", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		f.notificationRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("activity sends one email then the high-water mark row", func(t *testing.T) {
		f := newDigestFixture(t)
		f.expectBaseline()

		f.notificationRepo.On("FindLatestForUserProject", mock.Anything, f.client.ID, f.project.ID, notification.KindProjectUpdated).
			Return(nil, shared.ErrNotFound)
		f.documentRepo.On("CountVisibleCreatedAfter", mock.Anything, f.project.ID, time.Time{}).Return(int64(2), nil)
		f.photoRepo.On("CountVisibleCreatedAfter", mock.Anything, f.project.ID, time.Time{}).Return(int64(1), nil)
		f.sender.On("Send", mock.Anything, "client@example.com", "Project Update: Garden Room", mock.Anything).Return(nil)
		f.notificationRepo.On("Create", mock.Anything, mock.MatchedBy(func(n *notification.Notification) bool {
			return n.Kind == notification.KindProjectUpdated &&
				n.UserID == f.client.ID &&
				n.EmailSent &&
				n.Message == "2 new documents, 1 new photo"
		})).Return(nil)
		f.auditRepo.On("Append", mock.Anything, mock.Anything).Return(nil)

		result, err := f.service.ComputeAndSend(context.Background(), f.admin, f.project.ID)

		assert.NoError(t, err)
		assert.True(t, result.Sent)
		assert.Equal(t, "2 new documents, 1 new photo", result.Summary)
		f.sender.AssertExpectations(t)
		f.notificationRepo.AssertExpectations(t)
	})

	t.Run("window opens at the last project_updated row", func(t *testing.T) {
		f := newDigestFixture(t)
		f.expectBaseline()

		mark, err := notification.New(f.client.ID, f.project.ID, notification.KindProjectUpdated, "Project Update", "older digest")
		assert.NoError(t, err)
		mark.CreatedAt = time.Now().Add(-24 * time.Hour)

		f.notificationRepo.On("FindLatestForUserProject", mock.Anything, f.client.ID, f.project.ID, notification.KindProjectUpdated).
			Return(mark, nil)
		f.documentRepo.On("CountVisibleCreatedAfter", mock.Anything, f.project.ID, mark.CreatedAt).Return(int64(0), nil)
		f.photoRepo.On("CountVisibleCreatedAfter", mock.Anything, f.project.ID, mark.CreatedAt).Return(int64(0), nil)

		result, err := f.service.ComputeAndSend(context.Background(), f.admin, f.project.ID)

		assert.NoError(t, err)
		assert.False(t, result.Sent)
		f.documentRepo.AssertExpectations(t)
		f.photoRepo.AssertExpectations(t)
	})

	t.Run("email failure leaves the high-water mark untouched", func(t *testing.T) {
		f := newDigestFixture(t)
		f.expectBaseline()

		f.notificationRepo.On("FindLatestForUserProject", mock.Anything, f.client.ID, f.project.ID, notification.KindProjectUpdated).
			Return(nil, shared.ErrNotFound)
		f.documentRepo.On("CountVisibleCreatedAfter", mock.Anything, f.project.ID, time.Time{}).Return(int64(1), nil)
		f.photoRepo.On("CountVisibleCreatedAfter", mock.Anything, f.project.ID, time.Time{}).Return(int64(0), nil)
		f.sender.On("Send", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(shared.ErrExternalFailure)

		result, err := f.service.ComputeAndSend(context.Background(), f.admin, f.project.ID)

		assert.Nil(t, result)
		assert.ErrorIs(t, err, shared.ErrExternalFailure)
		f.notificationRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("guard held elsewhere skips the digest", func(t *testing.T) {
		f := newDigestFixture(t)

		f.projectRepo.On("FindByID", mock.Anything, f.project.ID).Return(f.project, nil)
		f.userRepo.On("FindByID", mock.Anything, f.client.ID).Return(f.client, nil)
		f.guard.On("MarkProcessed", mock.Anything, f.guardKey, time.Minute).Return(false, nil)

		result, err := f.service.ComputeAndSend(context.Background(), f.admin, f.project.ID)

		assert.NoError(t, err)
		assert.False(t, result.Sent)
		f.documentRepo.AssertNotCalled(t, "CountVisibleCreatedAfter", mock.Anything, mock.Anything, mock.Anything)
		f.sender.AssertNotCalled(t, "Send", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("guard failure degrades to the high-water re-check", func(t *testing.T) {
		f := newDigestFixture(t)

		f.projectRepo.On("FindByID", mock.Anything, f.project.ID).Return(f.project, nil)
		f.userRepo.On("FindByID", mock.Anything, f.client.ID).Return(f.client, nil)
		f.guard.On("MarkProcessed", mock.Anything, f.guardKey, time.Minute).Return(false, errors.New("redis down"))
		f.guard.On("Release", mock.Anything, f.guardKey).Return(nil)

		f.notificationRepo.On("FindLatestForUserProject", mock.Anything, f.client.ID, f.project.ID, notification.KindProjectUpdated).
			Return(nil, shared.ErrNotFound)
		f.documentRepo.On("CountVisibleCreatedAfter", mock.Anything, f.project.ID, time.Time{}).Return(int64(0), nil)
		f.photoRepo.On("CountVisibleCreatedAfter", mock.Anything, f.project.ID, time.Time{}).Return(int64(0), nil)

		result, err := f.service.ComputeAndSend(context.Background(), f.admin, f.project.ID)

		assert.NoError(t, err)
		assert.False(t, result.Sent)
	})

	t.Run("non-admin callers are denied", func(t *testing.T) {
		f := newDigestFixture(t)
		f.projectRepo.On("FindByID", mock.Anything, f.project.ID).Return(f.project, nil)

		caller := authz.Caller{UserID: f.client.ID, Role: identity.RoleClient}
		result, err := f.service.ComputeAndSend(context.Background(), caller, f.project.ID)

		assert.Nil(t, result)
		assert.ErrorIs(t, err, shared.ErrAccessDenied)
	})
}

func TestSummaryLine(t *testing.T) {
	tests := []struct {
		docs, photos int64
		want         string
	}{
		{1, 0, "1 new document"},
		{2, 0, "2 new documents"},
		{0, 1, "1 new photo"},
		{0, 3, "3 new photos"},
		{1, 1, "1 new document, 1 new photo"},
		{2, 5, "2 new documents, 5 new photos"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, summaryLine(tt.docs, tt.photos))
	}
}
