package projects

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/portal/backend/internal/application/notifications"
	"github.com/portal/backend/internal/domain/audit"
	"github.com/portal/backend/internal/domain/authz"
	"github.com/portal/backend/internal/domain/identity"
	"github.com/portal/backend/internal/domain/notification"
	"github.com/portal/backend/internal/domain/project"
	"github.com/portal/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type projectServiceFixture struct {
	projectRepo *MockProjectRepository
	profileRepo *MockProfileRepository
	storage     *MockObjectStorage
	notifier    *MockEventNotifier
	recorder    *MockAuditRecorder
	service     *ProjectService
}

func newProjectServiceFixture() *projectServiceFixture {
	f := &projectServiceFixture{
		projectRepo: new(MockProjectRepository),
		profileRepo: new(MockProfileRepository),
		storage:     new(MockObjectStorage),
		notifier:    new(MockEventNotifier),
		recorder:    new(MockAuditRecorder),
	}
	f.service = NewProjectService(f.projectRepo, f.profileRepo, f.storage, f.notifier, f.recorder, zap.NewNop())
	return f
}

func newClientProfile(t *testing.T, userID uuid.UUID) *identity.Profile {
	t.Helper()
	profile, err := identity.NewProfile(userID, identity.RoleClient, "Jane", "Doe")
	require.NoError(t, err)
	return profile
}

func TestProjectService_Create(t *testing.T) {
	admin := authz.Caller{UserID: uuid.New(), Role: identity.RoleAdmin}
	clientID := uuid.New()

	t.Run("creates project and notifies the client", func(t *testing.T) {
		f := newProjectServiceFixture()

		f.profileRepo.On("FindByUserID", mock.Anything, clientID).Return(newClientProfile(t, clientID), nil)
		f.projectRepo.On("Create", mock.Anything, mock.MatchedBy(func(p *project.Project) bool {
			return p.Name == "Loft Conversion" && p.ClientID == clientID && p.CreatedBy == admin.UserID
		})).Return(nil)
		f.recorder.On("Record", mock.Anything, mock.Anything, admin.UserID, audit.ActionProjectCreated,
			audit.EntityProject, mock.Anything, "Loft Conversion").Return()
		f.notifier.On("NotifyEvent", mock.Anything, mock.MatchedBy(func(ev notifications.Event) bool {
			return ev.Recipient == clientID && ev.Kind == notification.KindProjectUpdated && ev.Title == "New Project Created"
		})).Return(nil)

		proj, err := f.service.Create(context.Background(), admin, CreateProjectInput{
			Name:     "Loft Conversion",
			ClientID: clientID,
		})

		require.NoError(t, err)
		assert.Equal(t, project.StatusPlanning, proj.Status)
		f.projectRepo.AssertExpectations(t)
		f.notifier.AssertExpectations(t)
	})

	t.Run("rejects non-admin callers", func(t *testing.T) {
		f := newProjectServiceFixture()
		caller := authz.Caller{UserID: clientID, Role: identity.RoleClient}

		_, err := f.service.Create(context.Background(), caller, CreateProjectInput{Name: "x", ClientID: clientID})

		assert.ErrorIs(t, err, shared.ErrAccessDenied)
		f.projectRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("rejects projects for admin users", func(t *testing.T) {
		f := newProjectServiceFixture()
		adminProfile, err := identity.NewProfile(clientID, identity.RoleAdmin, "Sam", "Smith")
		require.NoError(t, err)
		f.profileRepo.On("FindByUserID", mock.Anything, clientID).Return(adminProfile, nil)

		_, err = f.service.Create(context.Background(), admin, CreateProjectInput{Name: "x", ClientID: clientID})

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_CLIENT", domainErr.Code)
	})

	t.Run("rejects unknown client", func(t *testing.T) {
		f := newProjectServiceFixture()
		f.profileRepo.On("FindByUserID", mock.Anything, clientID).Return(nil, shared.ErrNotFound)

		_, err := f.service.Create(context.Background(), admin, CreateProjectInput{Name: "x", ClientID: clientID})

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_CLIENT", domainErr.Code)
	})
}

func TestProjectService_Update(t *testing.T) {
	admin := authz.Caller{UserID: uuid.New(), Role: identity.RoleAdmin}

	t.Run("status change notifies the client", func(t *testing.T) {
		f := newProjectServiceFixture()
		proj, err := project.NewProject("Kitchen", uuid.New(), admin.UserID)
		require.NoError(t, err)

		f.projectRepo.On("FindByID", mock.Anything, proj.ID).Return(proj, nil)
		f.projectRepo.On("Update", mock.Anything, proj).Return(nil)
		f.recorder.On("Record", mock.Anything, proj.ID, admin.UserID, audit.ActionStatusChanged,
			audit.EntityProject, proj.ID, string(project.StatusInProgress)).Return()
		f.notifier.On("NotifyEvent", mock.Anything, mock.MatchedBy(func(ev notifications.Event) bool {
			return ev.Recipient == proj.ClientID &&
				ev.Kind == notification.KindProjectUpdated &&
				ev.Message == `Project "Kitchen" status changed to in progress.`
		})).Return(nil)

		updated, err := f.service.Update(context.Background(), admin, proj.ID, UpdateProjectInput{
			Status: project.StatusInProgress,
		})

		require.NoError(t, err)
		assert.Equal(t, project.StatusInProgress, updated.Status)
		f.notifier.AssertExpectations(t)
	})

	t.Run("same status does not notify", func(t *testing.T) {
		f := newProjectServiceFixture()
		proj, err := project.NewProject("Kitchen", uuid.New(), admin.UserID)
		require.NoError(t, err)

		f.projectRepo.On("FindByID", mock.Anything, proj.ID).Return(proj, nil)
		f.projectRepo.On("Update", mock.Anything, proj).Return(nil)
		f.recorder.On("Record", mock.Anything, proj.ID, admin.UserID, audit.ActionProjectUpdated,
			audit.EntityProject, proj.ID, "Kitchen").Return()

		_, err = f.service.Update(context.Background(), admin, proj.ID, UpdateProjectInput{
			Status: project.StatusPlanning,
		})

		require.NoError(t, err)
		f.notifier.AssertNotCalled(t, "NotifyEvent", mock.Anything, mock.Anything)
	})
}

func TestProjectService_Get(t *testing.T) {
	adminID := uuid.New()
	owner := uuid.New()

	proj, err := project.NewProject("Garage", owner, adminID)
	require.NoError(t, err)

	tests := []struct {
		name    string
		caller  authz.Caller
		wantErr error
	}{
		{"admin reads any project", authz.Caller{UserID: adminID, Role: identity.RoleAdmin}, nil},
		{"owning client reads own project", authz.Caller{UserID: owner, Role: identity.RoleClient}, nil},
		{"other client is denied", authz.Caller{UserID: uuid.New(), Role: identity.RoleClient}, shared.ErrAccessDenied},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newProjectServiceFixture()
			f.projectRepo.On("FindByID", mock.Anything, proj.ID).Return(proj, nil)

			got, err := f.service.Get(context.Background(), tt.caller, proj.ID)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, got)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, proj, got)
			}
		})
	}
}

func TestProjectService_ListMine(t *testing.T) {
	t.Run("admin sees every project", func(t *testing.T) {
		f := newProjectServiceFixture()
		f.projectRepo.On("FindAll", mock.Anything).Return([]*project.Project{}, nil)

		_, err := f.service.ListMine(context.Background(), authz.Caller{UserID: uuid.New(), Role: identity.RoleAdmin})

		assert.NoError(t, err)
		f.projectRepo.AssertNotCalled(t, "FindByClientID", mock.Anything, mock.Anything)
	})

	t.Run("client sees only owned projects", func(t *testing.T) {
		f := newProjectServiceFixture()
		clientID := uuid.New()
		f.projectRepo.On("FindByClientID", mock.Anything, clientID).Return([]*project.Project{}, nil)

		_, err := f.service.ListMine(context.Background(), authz.Caller{UserID: clientID, Role: identity.RoleClient})

		assert.NoError(t, err)
		f.projectRepo.AssertNotCalled(t, "FindAll", mock.Anything)
	})

	t.Run("missing role is a profile error", func(t *testing.T) {
		f := newProjectServiceFixture()

		_, err := f.service.ListMine(context.Background(), authz.Caller{UserID: uuid.New()})

		assert.ErrorIs(t, err, shared.ErrProfileMissing)
	})
}

func TestProjectService_GenerateUploadURL(t *testing.T) {
	adminID := uuid.New()
	owner := uuid.New()
	proj, err := project.NewProject("Garage", owner, adminID)
	require.NoError(t, err)

	t.Run("scopes the key to the project and sanitizes the name", func(t *testing.T) {
		f := newProjectServiceFixture()
		expires := time.Now().Add(uploadURLTTL)

		f.projectRepo.On("FindByID", mock.Anything, proj.ID).Return(proj, nil)
		f.storage.On("GenerateUploadURL", mock.Anything, mock.MatchedBy(func(key string) bool {
			return len(key) > 0 && key[:9] == "projects/" && key[len(key)-9:] == "plans.pdf"
		}), "application/pdf", uploadURLTTL).Return("https://bucket/upload", expires, nil)

		result, err := f.service.GenerateUploadURL(context.Background(), authz.Caller{UserID: owner, Role: identity.RoleClient},
			proj.ID, "../../plans.pdf", "application/pdf")

		require.NoError(t, err)
		assert.Equal(t, "https://bucket/upload", result.URL)
		assert.NotContains(t, result.FileKey, "..")
	})

	t.Run("rejects empty file names", func(t *testing.T) {
		f := newProjectServiceFixture()
		f.projectRepo.On("FindByID", mock.Anything, proj.ID).Return(proj, nil)

		_, err := f.service.GenerateUploadURL(context.Background(), authz.Caller{UserID: adminID, Role: identity.RoleAdmin},
			proj.ID, "   ", "application/pdf")

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_FILE", domainErr.Code)
	})
}
