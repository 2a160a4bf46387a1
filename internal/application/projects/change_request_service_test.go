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
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type changeRequestFixture struct {
	projectRepo *MockProjectRepository
	crRepo      *MockChangeRequestRepository
	profileRepo *MockProfileRepository
	recorder    *MockAuditRecorder
	service     *ChangeRequestService

	admin   authz.Caller
	client  authz.Caller
	project *project.Project
}

func newChangeRequestFixture(t *testing.T) *changeRequestFixture {
	t.Helper()

	f := &changeRequestFixture{
		projectRepo: new(MockProjectRepository),
		crRepo:      new(MockChangeRequestRepository),
		profileRepo: new(MockProfileRepository),
		recorder:    new(MockAuditRecorder),
	}
	f.service = NewChangeRequestService(f.projectRepo, f.crRepo, f.profileRepo, f.recorder, zap.NewNop())

	f.admin = authz.Caller{UserID: uuid.New(), Role: identity.RoleAdmin}
	f.client = authz.Caller{UserID: uuid.New(), Role: identity.RoleClient}

	proj, err := project.NewProject("Conservatory", f.client.UserID, f.admin.UserID)
	require.NoError(t, err)
	f.project = proj
	return f
}

func TestChangeRequestService_Create(t *testing.T) {
	t.Run("owning client raises a request", func(t *testing.T) {
		f := newChangeRequestFixture(t)

		f.projectRepo.On("FindByID", mock.Anything, f.project.ID).Return(f.project, nil)
		f.crRepo.On("Create", mock.Anything, mock.MatchedBy(func(cr *project.ChangeRequest) bool {
			return cr.Title == "Wider doors" && cr.RequestedBy == f.client.UserID
		})).Return(nil)
		f.recorder.On("Record", mock.Anything, f.project.ID, f.client.UserID, mock.Anything,
			audit.EntityChangeRequest, mock.Anything, "Created change request: Wider doors").Return()

		cr, err := f.service.Create(context.Background(), f.client, CreateChangeRequestInput{
			ProjectID:   f.project.ID,
			Title:       "Wider doors",
			Description: "Widen both rear door frames to 900mm",
		})

		require.NoError(t, err)
		assert.Equal(t, project.ChangeRequestPending, cr.Status)
	})

	t.Run("admins cannot raise requests on behalf of the client", func(t *testing.T) {
		f := newChangeRequestFixture(t)
		f.projectRepo.On("FindByID", mock.Anything, f.project.ID).Return(f.project, nil)

		_, err := f.service.Create(context.Background(), f.admin, CreateChangeRequestInput{
			ProjectID:   f.project.ID,
			Title:       "x",
			Description: "y",
		})

		assert.ErrorIs(t, err, shared.ErrAccessDenied)
	})
}

func TestChangeRequestService_Respond(t *testing.T) {
	newRequest := func(t *testing.T, f *changeRequestFixture) *project.ChangeRequest {
		t.Helper()
		cr, err := project.NewChangeRequest(f.project.ID, "Wider doors", "Widen both rear door frames", f.client.UserID)
		require.NoError(t, err)
		return cr
	}

	t.Run("admin approves with an estimate", func(t *testing.T) {
		f := newChangeRequestFixture(t)
		cr := newRequest(t, f)
		cost := decimal.NewFromInt(1200)

		f.crRepo.On("FindByID", mock.Anything, cr.ID).Return(cr, nil)
		f.crRepo.On("Update", mock.Anything, cr).Return(nil)
		f.recorder.On("Record", mock.Anything, f.project.ID, f.admin.UserID, mock.Anything,
			audit.EntityChangeRequest, mock.Anything, "approved change request: Wider doors").Return()

		updated, err := f.service.Respond(context.Background(), f.admin, cr.ID, RespondChangeRequestInput{
			Decision:      project.DecisionApproved,
			Response:      "Feasible, see estimate",
			EstimatedCost: &cost,
			EstimatedTime: "2 weeks",
		})

		require.NoError(t, err)
		assert.Equal(t, project.ChangeRequestApproved, updated.Status)
		require.NotNil(t, updated.EstimatedCost)
		assert.True(t, updated.EstimatedCost.Equal(cost))
	})

	t.Run("clients cannot respond", func(t *testing.T) {
		f := newChangeRequestFixture(t)

		_, err := f.service.Respond(context.Background(), f.client, uuid.New(), RespondChangeRequestInput{
			Decision: project.DecisionApproved,
		})

		assert.ErrorIs(t, err, shared.ErrAccessDenied)
	})

	t.Run("responding twice conflicts", func(t *testing.T) {
		f := newChangeRequestFixture(t)
		cr := newRequest(t, f)
		require.NoError(t, cr.Respond(project.DecisionDeclined, f.admin.UserID, "out of scope", nil, ""))

		f.crRepo.On("FindByID", mock.Anything, cr.ID).Return(cr, nil)

		_, err := f.service.Respond(context.Background(), f.admin, cr.ID, RespondChangeRequestInput{
			Decision: project.DecisionApproved,
		})

		assert.ErrorIs(t, err, shared.ErrConflictingState)
		f.crRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})
}

func TestChangeRequestService_StartReview(t *testing.T) {
	f := newChangeRequestFixture(t)
	cr, err := project.NewChangeRequest(f.project.ID, "Wider doors", "Widen both rear door frames", f.client.UserID)
	require.NoError(t, err)

	f.crRepo.On("FindByID", mock.Anything, cr.ID).Return(cr, nil)
	f.crRepo.On("Update", mock.Anything, cr).Return(nil)

	updated, err := f.service.StartReview(context.Background(), f.admin, cr.ID)

	require.NoError(t, err)
	assert.Equal(t, project.ChangeRequestInReview, updated.Status)
}
