package projects

import (
	"context"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/portal/backend/internal/application/notifications"
	"github.com/portal/backend/internal/domain/audit"
	"github.com/portal/backend/internal/domain/authz"
	"github.com/portal/backend/internal/domain/identity"
	"github.com/portal/backend/internal/domain/notification"
	"github.com/portal/backend/internal/domain/project"
	"github.com/portal/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// Presigned URL lifetimes. Download URLs are short-lived because they are
// re-resolved on every read; upload URLs cover one browser upload.
const (
	downloadURLTTL = 15 * time.Minute
	uploadURLTTL   = 15 * time.Minute
)

// ProjectService handles project lifecycle operations
type ProjectService struct {
	projectRepo project.ProjectRepository
	profileRepo identity.ProfileRepository
	storage     ObjectStorageService
	notifier    EventNotifier
	recorder    AuditRecorder
	logger      *zap.Logger
}

// NewProjectService creates a project service
func NewProjectService(
	projectRepo project.ProjectRepository,
	profileRepo identity.ProfileRepository,
	storage ObjectStorageService,
	notifier EventNotifier,
	recorder AuditRecorder,
	logger *zap.Logger,
) *ProjectService {
	return &ProjectService{
		projectRepo: projectRepo,
		profileRepo: profileRepo,
		storage:     storage,
		notifier:    notifier,
		recorder:    recorder,
		logger:      logger,
	}
}

// Create creates a project for a client. Admin only. The owning client is
// notified of the new project.
func (s *ProjectService) Create(ctx context.Context, caller authz.Caller, input CreateProjectInput) (*project.Project, error) {
	if err := authz.Authorize(caller, uuid.Nil, authz.OpWriteAdminOnly); err != nil {
		return nil, err
	}

	clientProfile, err := s.profileRepo.FindByUserID(ctx, input.ClientID)
	if err != nil {
		return nil, shared.NewDomainError("INVALID_CLIENT", "Client profile not found")
	}
	if !clientProfile.IsClient() {
		return nil, shared.NewDomainError("INVALID_CLIENT", "Projects can only be created for client users")
	}

	proj, err := project.NewProject(input.Name, input.ClientID, caller.UserID)
	if err != nil {
		return nil, err
	}
	proj.SetDescription(input.Description)
	if input.Budget != nil {
		if err := proj.SetBudget(*input.Budget); err != nil {
			return nil, err
		}
	}
	if err := proj.SetSchedule(input.StartDate, input.EndDate); err != nil {
		return nil, err
	}

	if err := s.projectRepo.Create(ctx, proj); err != nil {
		return nil, err
	}

	s.recorder.Record(ctx, proj.ID, caller.UserID, audit.ActionProjectCreated,
		audit.EntityProject, proj.ID, proj.Name)

	if err := s.notifier.NotifyEvent(ctx, notifications.Event{
		Recipient: proj.ClientID,
		Actor:     caller.UserID,
		ProjectID: proj.ID,
		Kind:      notification.KindProjectUpdated,
		Title:     "New Project Created",
		Message:   fmt.Sprintf("A new project %q has been created for you.", proj.Name),
	}); err != nil {
		s.logger.Warn("Project creation notification failed",
			zap.String("project_id", proj.ID.String()),
			zap.Error(err))
	}

	s.logger.Info("Project created",
		zap.String("project_id", proj.ID.String()),
		zap.String("client_id", proj.ClientID.String()))

	return proj, nil
}

// Update applies field updates and an optional status transition. Admin
// only. A status change notifies the owning client.
func (s *ProjectService) Update(ctx context.Context, caller authz.Caller, projectID uuid.UUID, input UpdateProjectInput) (*project.Project, error) {
	if err := authz.Authorize(caller, uuid.Nil, authz.OpWriteAdminOnly); err != nil {
		return nil, err
	}

	proj, err := s.projectRepo.FindByID(ctx, projectID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		if err := proj.Rename(*input.Name); err != nil {
			return nil, err
		}
	}
	if input.Description != nil {
		proj.SetDescription(*input.Description)
	}
	if input.Budget != nil {
		if err := proj.SetBudget(*input.Budget); err != nil {
			return nil, err
		}
	}
	if input.StartDate != nil || input.EndDate != nil {
		start := proj.StartDate
		end := proj.EndDate
		if input.StartDate != nil {
			start = input.StartDate
		}
		if input.EndDate != nil {
			end = input.EndDate
		}
		if err := proj.SetSchedule(start, end); err != nil {
			return nil, err
		}
	}

	statusChanged := false
	if input.Status != "" {
		statusChanged, err = proj.ChangeStatus(input.Status)
		if err != nil {
			return nil, err
		}
	}

	if err := s.projectRepo.Update(ctx, proj); err != nil {
		return nil, err
	}

	if statusChanged {
		s.recorder.Record(ctx, proj.ID, caller.UserID, audit.ActionStatusChanged,
			audit.EntityProject, proj.ID, string(proj.Status))
		if err := s.notifier.NotifyEvent(ctx, notifications.Event{
			Recipient: proj.ClientID,
			Actor:     caller.UserID,
			ProjectID: proj.ID,
			Kind:      notification.KindProjectUpdated,
			Title:     "Project Status Updated",
			Message:   fmt.Sprintf("Project %q status changed to %s.", proj.Name, statusLabel(proj.Status)),
		}); err != nil {
			s.logger.Warn("Status change notification failed",
				zap.String("project_id", proj.ID.String()),
				zap.Error(err))
		}
	} else {
		s.recorder.Record(ctx, proj.ID, caller.UserID, audit.ActionProjectUpdated,
			audit.EntityProject, proj.ID, proj.Name)
	}

	return proj, nil
}

// Get returns a project the caller may read
func (s *ProjectService) Get(ctx context.Context, caller authz.Caller, projectID uuid.UUID) (*project.Project, error) {
	proj, err := s.projectRepo.FindByID(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if err := authz.Authorize(caller, proj.ClientID, authz.OpReadOwn); err != nil {
		return nil, err
	}
	return proj, nil
}

// ListMine returns all projects for admins and owned projects for clients
func (s *ProjectService) ListMine(ctx context.Context, caller authz.Caller) ([]*project.Project, error) {
	if caller.UserID == uuid.Nil {
		return nil, shared.ErrUnauthenticated
	}
	if !caller.Role.IsValid() {
		return nil, shared.ErrProfileMissing
	}

	if caller.Role == identity.RoleAdmin {
		return s.projectRepo.FindAll(ctx)
	}
	return s.projectRepo.FindByClientID(ctx, caller.UserID)
}

// GenerateUploadURL returns a presigned upload target scoped to a project.
// Admins and the owning client may request one.
func (s *ProjectService) GenerateUploadURL(ctx context.Context, caller authz.Caller, projectID uuid.UUID, fileName, contentType string) (*UploadURLResult, error) {
	proj, err := s.projectRepo.FindByID(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if err := authz.Authorize(caller, proj.ClientID, authz.OpReadOwn); err != nil {
		return nil, err
	}

	fileName = path.Base(strings.TrimSpace(fileName))
	if fileName == "" || fileName == "." || fileName == "/" {
		return nil, shared.NewDomainError("INVALID_FILE", "File name cannot be empty")
	}

	fileKey := fmt.Sprintf("projects/%s/%s-%s", projectID, uuid.New(), fileName)
	url, expiresAt, err := s.storage.GenerateUploadURL(ctx, fileKey, contentType, uploadURLTTL)
	if err != nil {
		return nil, err
	}

	return &UploadURLResult{URL: url, FileKey: fileKey, ExpiresAt: expiresAt}, nil
}

func statusLabel(s project.Status) string {
	return strings.ReplaceAll(string(s), "_", " ")
}
