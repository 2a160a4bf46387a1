package projects

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/portal/backend/internal/application/notifications"
	"github.com/portal/backend/internal/domain/identity"
	"github.com/portal/backend/internal/domain/project"
	"github.com/stretchr/testify/mock"
)

// MockProjectRepository is a mock implementation of project.ProjectRepository
type MockProjectRepository struct {
	mock.Mock
}

func (m *MockProjectRepository) Create(ctx context.Context, p *project.Project) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockProjectRepository) Update(ctx context.Context, p *project.Project) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockProjectRepository) FindByID(ctx context.Context, id uuid.UUID) (*project.Project, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*project.Project), args.Error(1)
}

func (m *MockProjectRepository) FindAll(ctx context.Context) ([]*project.Project, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*project.Project), args.Error(1)
}

func (m *MockProjectRepository) FindByClientID(ctx context.Context, clientID uuid.UUID) ([]*project.Project, error) {
	args := m.Called(ctx, clientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*project.Project), args.Error(1)
}

// MockDocumentRepository is a mock implementation of project.DocumentRepository
type MockDocumentRepository struct {
	mock.Mock
}

func (m *MockDocumentRepository) Create(ctx context.Context, doc *project.Document) error {
	args := m.Called(ctx, doc)
	return args.Error(0)
}

func (m *MockDocumentRepository) Update(ctx context.Context, doc *project.Document) error {
	args := m.Called(ctx, doc)
	return args.Error(0)
}

func (m *MockDocumentRepository) FindByID(ctx context.Context, id uuid.UUID) (*project.Document, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*project.Document), args.Error(1)
}

func (m *MockDocumentRepository) FindByProjectID(ctx context.Context, projectID uuid.UUID) ([]*project.Document, error) {
	args := m.Called(ctx, projectID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*project.Document), args.Error(1)
}

func (m *MockDocumentRepository) CountVisibleCreatedAfter(ctx context.Context, projectID uuid.UUID, after time.Time) (int64, error) {
	args := m.Called(ctx, projectID, after)
	return args.Get(0).(int64), args.Error(1)
}

// MockPhotoRepository is a mock implementation of project.PhotoRepository
type MockPhotoRepository struct {
	mock.Mock
}

func (m *MockPhotoRepository) Create(ctx context.Context, photo *project.Photo) error {
	args := m.Called(ctx, photo)
	return args.Error(0)
}

func (m *MockPhotoRepository) Update(ctx context.Context, photo *project.Photo) error {
	args := m.Called(ctx, photo)
	return args.Error(0)
}

func (m *MockPhotoRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockPhotoRepository) FindByID(ctx context.Context, id uuid.UUID) (*project.Photo, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*project.Photo), args.Error(1)
}

func (m *MockPhotoRepository) FindByProjectID(ctx context.Context, projectID uuid.UUID) ([]*project.Photo, error) {
	args := m.Called(ctx, projectID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*project.Photo), args.Error(1)
}

func (m *MockPhotoRepository) CountVisibleCreatedAfter(ctx context.Context, projectID uuid.UUID, after time.Time) (int64, error) {
	args := m.Called(ctx, projectID, after)
	return args.Get(0).(int64), args.Error(1)
}

// MockNoteRepository is a mock implementation of project.NoteRepository
type MockNoteRepository struct {
	mock.Mock
}

func (m *MockNoteRepository) Create(ctx context.Context, note *project.Note) error {
	args := m.Called(ctx, note)
	return args.Error(0)
}

func (m *MockNoteRepository) Update(ctx context.Context, note *project.Note) error {
	args := m.Called(ctx, note)
	return args.Error(0)
}

func (m *MockNoteRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockNoteRepository) FindByID(ctx context.Context, id uuid.UUID) (*project.Note, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*project.Note), args.Error(1)
}

func (m *MockNoteRepository) FindByProjectID(ctx context.Context, projectID uuid.UUID) ([]*project.Note, error) {
	args := m.Called(ctx, projectID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*project.Note), args.Error(1)
}

// MockMilestoneRepository is a mock implementation of project.MilestoneRepository
type MockMilestoneRepository struct {
	mock.Mock
}

func (m *MockMilestoneRepository) Create(ctx context.Context, milestone *project.Milestone) error {
	args := m.Called(ctx, milestone)
	return args.Error(0)
}

func (m *MockMilestoneRepository) Update(ctx context.Context, milestone *project.Milestone) error {
	args := m.Called(ctx, milestone)
	return args.Error(0)
}

func (m *MockMilestoneRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockMilestoneRepository) FindByID(ctx context.Context, id uuid.UUID) (*project.Milestone, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*project.Milestone), args.Error(1)
}

func (m *MockMilestoneRepository) FindByProjectID(ctx context.Context, projectID uuid.UUID) ([]*project.Milestone, error) {
	args := m.Called(ctx, projectID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*project.Milestone), args.Error(1)
}

func (m *MockMilestoneRepository) MaxSortOrder(ctx context.Context, projectID uuid.UUID) (int, error) {
	args := m.Called(ctx, projectID)
	return args.Int(0), args.Error(1)
}

// MockAdditionalWorkRepository is a mock implementation of project.AdditionalWorkRepository
type MockAdditionalWorkRepository struct {
	mock.Mock
}

func (m *MockAdditionalWorkRepository) Create(ctx context.Context, work *project.AdditionalWork) error {
	args := m.Called(ctx, work)
	return args.Error(0)
}

func (m *MockAdditionalWorkRepository) Update(ctx context.Context, work *project.AdditionalWork) error {
	args := m.Called(ctx, work)
	return args.Error(0)
}

func (m *MockAdditionalWorkRepository) FindByID(ctx context.Context, id uuid.UUID) (*project.AdditionalWork, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*project.AdditionalWork), args.Error(1)
}

func (m *MockAdditionalWorkRepository) FindByProjectID(ctx context.Context, projectID uuid.UUID) ([]*project.AdditionalWork, error) {
	args := m.Called(ctx, projectID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*project.AdditionalWork), args.Error(1)
}

// MockChangeRequestRepository is a mock implementation of project.ChangeRequestRepository
type MockChangeRequestRepository struct {
	mock.Mock
}

func (m *MockChangeRequestRepository) Create(ctx context.Context, cr *project.ChangeRequest) error {
	args := m.Called(ctx, cr)
	return args.Error(0)
}

func (m *MockChangeRequestRepository) Update(ctx context.Context, cr *project.ChangeRequest) error {
	args := m.Called(ctx, cr)
	return args.Error(0)
}

func (m *MockChangeRequestRepository) FindByID(ctx context.Context, id uuid.UUID) (*project.ChangeRequest, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*project.ChangeRequest), args.Error(1)
}

func (m *MockChangeRequestRepository) FindByProjectID(ctx context.Context, projectID uuid.UUID) ([]*project.ChangeRequest, error) {
	args := m.Called(ctx, projectID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*project.ChangeRequest), args.Error(1)
}

// MockProfileRepository is a mock implementation of identity.ProfileRepository
type MockProfileRepository struct {
	mock.Mock
}

func (m *MockProfileRepository) Create(ctx context.Context, profile *identity.Profile) error {
	args := m.Called(ctx, profile)
	return args.Error(0)
}

func (m *MockProfileRepository) Update(ctx context.Context, profile *identity.Profile) error {
	args := m.Called(ctx, profile)
	return args.Error(0)
}

func (m *MockProfileRepository) FindByUserID(ctx context.Context, userID uuid.UUID) (*identity.Profile, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.Profile), args.Error(1)
}

func (m *MockProfileRepository) FindByRole(ctx context.Context, role identity.Role) ([]*identity.Profile, error) {
	args := m.Called(ctx, role)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*identity.Profile), args.Error(1)
}

func (m *MockProfileRepository) FindUserIDsByRole(ctx context.Context, role identity.Role) ([]uuid.UUID, error) {
	args := m.Called(ctx, role)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]uuid.UUID), args.Error(1)
}

// MockObjectStorage is a mock implementation of ObjectStorageService
type MockObjectStorage struct {
	mock.Mock
}

func (m *MockObjectStorage) GenerateUploadURL(ctx context.Context, storageKey, contentType string, expiresIn time.Duration) (string, time.Time, error) {
	args := m.Called(ctx, storageKey, contentType, expiresIn)
	return args.String(0), args.Get(1).(time.Time), args.Error(2)
}

func (m *MockObjectStorage) GenerateDownloadURL(ctx context.Context, storageKey string, expiresIn time.Duration) (string, time.Time, error) {
	args := m.Called(ctx, storageKey, expiresIn)
	return args.String(0), args.Get(1).(time.Time), args.Error(2)
}

func (m *MockObjectStorage) DeleteObject(ctx context.Context, storageKey string) error {
	args := m.Called(ctx, storageKey)
	return args.Error(0)
}

func (m *MockObjectStorage) ObjectExists(ctx context.Context, storageKey string) (bool, error) {
	args := m.Called(ctx, storageKey)
	return args.Bool(0), args.Error(1)
}

// MockEventNotifier is a mock implementation of EventNotifier
type MockEventNotifier struct {
	mock.Mock
}

func (m *MockEventNotifier) NotifyEvent(ctx context.Context, ev notifications.Event) error {
	args := m.Called(ctx, ev)
	return args.Error(0)
}

func (m *MockEventNotifier) BroadcastToAdmins(ctx context.Context, ev notifications.Event) {
	m.Called(ctx, ev)
}

// MockAuditRecorder is a mock implementation of AuditRecorder
type MockAuditRecorder struct {
	mock.Mock
}

func (m *MockAuditRecorder) Record(ctx context.Context, projectID, actorID uuid.UUID, action, entityType string, entityID uuid.UUID, details string) {
	m.Called(ctx, projectID, actorID, action, entityType, entityID, details)
}
