package projects

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/portal/backend/internal/domain/audit"
	"github.com/portal/backend/internal/domain/authz"
	"github.com/portal/backend/internal/domain/identity"
	"github.com/portal/backend/internal/domain/project"
	"github.com/portal/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type milestoneServiceFixture struct {
	projectRepo   *MockProjectRepository
	milestoneRepo *MockMilestoneRepository
	recorder      *MockAuditRecorder
	service       *MilestoneService

	admin   authz.Caller
	client  authz.Caller
	project *project.Project
}

func newMilestoneServiceFixture(t *testing.T) *milestoneServiceFixture {
	t.Helper()

	f := &milestoneServiceFixture{
		projectRepo:   new(MockProjectRepository),
		milestoneRepo: new(MockMilestoneRepository),
		recorder:      new(MockAuditRecorder),
	}
	f.service = NewMilestoneService(f.projectRepo, f.milestoneRepo, f.recorder, zap.NewNop())

	f.admin = authz.Caller{UserID: uuid.New(), Role: identity.RoleAdmin}
	f.client = authz.Caller{UserID: uuid.New(), Role: identity.RoleClient}

	proj, err := project.NewProject("Orangery", f.client.UserID, f.admin.UserID)
	require.NoError(t, err)
	f.project = proj
	return f
}

func TestMilestoneService_Create(t *testing.T) {
	t.Run("appends after the highest sort order", func(t *testing.T) {
		f := newMilestoneServiceFixture(t)

		f.projectRepo.On("FindByID", mock.Anything, f.project.ID).Return(f.project, nil)
		f.milestoneRepo.On("MaxSortOrder", mock.Anything, f.project.ID).Return(3, nil)
		f.milestoneRepo.On("Create", mock.Anything, mock.MatchedBy(func(m *project.Milestone) bool {
			return m.Title == "Roof on" && m.SortOrder == 4
		})).Return(nil)
		f.recorder.On("Record", mock.Anything, f.project.ID, f.admin.UserID, audit.ActionMilestoneCreated,
			audit.EntityMilestone, mock.Anything, "Created milestone: Roof on").Return()

		milestone, err := f.service.Create(context.Background(), f.admin, CreateMilestoneInput{
			ProjectID: f.project.ID,
			Title:     "Roof on",
		})

		require.NoError(t, err)
		assert.Equal(t, 4, milestone.SortOrder)
	})

	t.Run("clients cannot create milestones", func(t *testing.T) {
		f := newMilestoneServiceFixture(t)

		_, err := f.service.Create(context.Background(), f.client, CreateMilestoneInput{
			ProjectID: f.project.ID,
			Title:     "x",
		})

		assert.ErrorIs(t, err, shared.ErrAccessDenied)
	})
}

func TestMilestoneService_SetCompleted(t *testing.T) {
	t.Run("completion is audited", func(t *testing.T) {
		f := newMilestoneServiceFixture(t)
		milestone, err := project.NewMilestone(f.project.ID, "Roof on", 1)
		require.NoError(t, err)

		f.milestoneRepo.On("FindByID", mock.Anything, milestone.ID).Return(milestone, nil)
		f.milestoneRepo.On("Update", mock.Anything, milestone).Return(nil)
		f.recorder.On("Record", mock.Anything, f.project.ID, f.admin.UserID, audit.ActionMilestoneCompleted,
			audit.EntityMilestone, mock.Anything, "Completed milestone: Roof on").Return()

		updated, err := f.service.SetCompleted(context.Background(), f.admin, milestone.ID, true)

		require.NoError(t, err)
		assert.True(t, updated.IsCompleted)
		f.recorder.AssertExpectations(t)
	})

	t.Run("reopening is not audited", func(t *testing.T) {
		f := newMilestoneServiceFixture(t)
		milestone, err := project.NewMilestone(f.project.ID, "Roof on", 1)
		require.NoError(t, err)
		milestone.SetCompleted(true)

		f.milestoneRepo.On("FindByID", mock.Anything, milestone.ID).Return(milestone, nil)
		f.milestoneRepo.On("Update", mock.Anything, milestone).Return(nil)

		updated, err := f.service.SetCompleted(context.Background(), f.admin, milestone.ID, false)

		require.NoError(t, err)
		assert.False(t, updated.IsCompleted)
		f.recorder.AssertNotCalled(t, "Record", mock.Anything, mock.Anything, mock.Anything, mock.Anything,
			mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestMilestoneService_List(t *testing.T) {
	f := newMilestoneServiceFixture(t)

	f.projectRepo.On("FindByID", mock.Anything, f.project.ID).Return(f.project, nil)
	f.milestoneRepo.On("FindByProjectID", mock.Anything, f.project.ID).Return([]*project.Milestone{}, nil)

	_, err := f.service.List(context.Background(), f.client, f.project.ID)
	assert.NoError(t, err)
}
