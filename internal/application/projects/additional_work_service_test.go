package projects

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/portal/backend/internal/application/notifications"
	"github.com/portal/backend/internal/domain/audit"
	"github.com/portal/backend/internal/domain/authz"
	"github.com/portal/backend/internal/domain/identity"
	"github.com/portal/backend/internal/domain/notification"
	"github.com/portal/backend/internal/domain/project"
	"github.com/portal/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type additionalWorkFixture struct {
	projectRepo *MockProjectRepository
	workRepo    *MockAdditionalWorkRepository
	profileRepo *MockProfileRepository
	storage     *MockObjectStorage
	notifier    *MockEventNotifier
	recorder    *MockAuditRecorder
	service     *AdditionalWorkService

	admin   authz.Caller
	client  authz.Caller
	project *project.Project
}

func newAdditionalWorkFixture(t *testing.T) *additionalWorkFixture {
	t.Helper()

	f := &additionalWorkFixture{
		projectRepo: new(MockProjectRepository),
		workRepo:    new(MockAdditionalWorkRepository),
		profileRepo: new(MockProfileRepository),
		storage:     new(MockObjectStorage),
		notifier:    new(MockEventNotifier),
		recorder:    new(MockAuditRecorder),
	}
	f.service = NewAdditionalWorkService(f.projectRepo, f.workRepo, f.profileRepo, f.storage, f.notifier, f.recorder, zap.NewNop())

	f.admin = authz.Caller{UserID: uuid.New(), Role: identity.RoleAdmin}
	f.client = authz.Caller{UserID: uuid.New(), Role: identity.RoleClient}

	proj, err := project.NewProject("Patio", f.client.UserID, f.admin.UserID)
	require.NoError(t, err)
	f.project = proj
	return f
}

func TestAdditionalWorkService_Create(t *testing.T) {
	t.Run("notifies the client with the proposed price", func(t *testing.T) {
		f := newAdditionalWorkFixture(t)
		price := decimal.NewFromFloat(450.50)

		f.projectRepo.On("FindByID", mock.Anything, f.project.ID).Return(f.project, nil)
		f.workRepo.On("Create", mock.Anything, mock.Anything).Return(nil)
		f.recorder.On("Record", mock.Anything, f.project.ID, f.admin.UserID, mock.Anything,
			audit.EntityAdditionalWork, mock.Anything, "Created additional work: Extra drainage - £450.50").Return()
		f.notifier.On("NotifyEvent", mock.Anything, mock.MatchedBy(func(ev notifications.Event) bool {
			return ev.Recipient == f.client.UserID &&
				ev.Kind == notification.KindAdditionalWorkRequested &&
				ev.Message == `Additional work "Extra drainage" (£450.50) has been proposed for your project.`
		})).Return(nil)

		work, err := f.service.Create(context.Background(), f.admin, CreateAdditionalWorkInput{
			ProjectID:   f.project.ID,
			Title:       "Extra drainage",
			Description: "French drain along the rear boundary",
			Price:       price,
		})

		require.NoError(t, err)
		assert.True(t, work.Price.Equal(price))
		f.notifier.AssertExpectations(t)
	})

	t.Run("clients cannot raise proposals", func(t *testing.T) {
		f := newAdditionalWorkFixture(t)

		_, err := f.service.Create(context.Background(), f.client, CreateAdditionalWorkInput{
			ProjectID:   f.project.ID,
			Title:       "x",
			Description: "y",
			Price:       decimal.NewFromInt(1),
		})

		assert.ErrorIs(t, err, shared.ErrAccessDenied)
		f.workRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}

func TestAdditionalWorkService_Decide(t *testing.T) {
	newWork := func(t *testing.T, f *additionalWorkFixture) *project.AdditionalWork {
		t.Helper()
		work, err := project.NewAdditionalWork(f.project.ID, "Extra drainage", "French drain", decimal.NewFromInt(450), f.admin.UserID)
		require.NoError(t, err)
		return work
	}

	t.Run("owning client declines and admins hear about it", func(t *testing.T) {
		f := newAdditionalWorkFixture(t)
		work := newWork(t, f)

		f.workRepo.On("FindByID", mock.Anything, work.ID).Return(work, nil)
		f.projectRepo.On("FindByID", mock.Anything, f.project.ID).Return(f.project, nil)
		f.workRepo.On("Update", mock.Anything, work).Return(nil)
		f.recorder.On("Record", mock.Anything, f.project.ID, f.client.UserID, mock.Anything,
			audit.EntityAdditionalWork, mock.Anything, "declined additional work: Extra drainage").Return()
		f.notifier.On("BroadcastToAdmins", mock.Anything, mock.MatchedBy(func(ev notifications.Event) bool {
			return ev.Kind == notification.KindApprovalCompleted && ev.Title == "Additional Work declined"
		})).Return()

		updated, err := f.service.Decide(context.Background(), f.client, work.ID, project.DecisionDeclined, "too expensive")

		require.NoError(t, err)
		assert.Equal(t, project.ApprovalDeclined, updated.Approval.Status)
	})

	t.Run("second decision conflicts", func(t *testing.T) {
		f := newAdditionalWorkFixture(t)
		work := newWork(t, f)
		require.NoError(t, work.Decide(project.DecisionApproved, f.client.UserID, ""))

		f.workRepo.On("FindByID", mock.Anything, work.ID).Return(work, nil)
		f.projectRepo.On("FindByID", mock.Anything, f.project.ID).Return(f.project, nil)

		_, err := f.service.Decide(context.Background(), f.client, work.ID, project.DecisionDeclined, "")

		assert.ErrorIs(t, err, shared.ErrConflictingState)
		f.workRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("admins cannot decide", func(t *testing.T) {
		f := newAdditionalWorkFixture(t)
		work := newWork(t, f)

		f.workRepo.On("FindByID", mock.Anything, work.ID).Return(work, nil)
		f.projectRepo.On("FindByID", mock.Anything, f.project.ID).Return(f.project, nil)

		_, err := f.service.Decide(context.Background(), f.admin, work.ID, project.DecisionApproved, "")

		assert.ErrorIs(t, err, shared.ErrAccessDenied)
	})
}
