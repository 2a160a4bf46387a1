package projects

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/portal/backend/internal/application/notifications"
	"github.com/portal/backend/internal/domain/audit"
	"github.com/portal/backend/internal/domain/authz"
	"github.com/portal/backend/internal/domain/identity"
	"github.com/portal/backend/internal/domain/notification"
	"github.com/portal/backend/internal/domain/project"
	"go.uber.org/zap"
)

// AdditionalWorkService handles priced proposals raised by admins and
// decided by the owning client
type AdditionalWorkService struct {
	projectRepo project.ProjectRepository
	workRepo    project.AdditionalWorkRepository
	profileRepo identity.ProfileRepository
	storage     ObjectStorageService
	notifier    EventNotifier
	recorder    AuditRecorder
	logger      *zap.Logger
}

// NewAdditionalWorkService creates an additional-work service
func NewAdditionalWorkService(
	projectRepo project.ProjectRepository,
	workRepo project.AdditionalWorkRepository,
	profileRepo identity.ProfileRepository,
	storage ObjectStorageService,
	notifier EventNotifier,
	recorder AuditRecorder,
	logger *zap.Logger,
) *AdditionalWorkService {
	return &AdditionalWorkService{
		projectRepo: projectRepo,
		workRepo:    workRepo,
		profileRepo: profileRepo,
		storage:     storage,
		notifier:    notifier,
		recorder:    recorder,
		logger:      logger,
	}
}

// Create raises a proposal. Admin only. The owning client is notified with
// the proposed price.
func (s *AdditionalWorkService) Create(ctx context.Context, caller authz.Caller, input CreateAdditionalWorkInput) (*project.AdditionalWork, error) {
	if err := authz.Authorize(caller, uuid.Nil, authz.OpWriteAdminOnly); err != nil {
		return nil, err
	}

	proj, err := s.projectRepo.FindByID(ctx, input.ProjectID)
	if err != nil {
		return nil, err
	}

	work, err := project.NewAdditionalWork(input.ProjectID, input.Title, input.Description, input.Price, caller.UserID)
	if err != nil {
		return nil, err
	}
	if input.FileKey != "" {
		work.AttachFile(input.FileKey, input.FileName)
	}

	if err := s.workRepo.Create(ctx, work); err != nil {
		return nil, err
	}

	s.recorder.Record(ctx, work.ProjectID, caller.UserID, audit.ActionAdditionalWorkCreated,
		audit.EntityAdditionalWork, work.ID,
		fmt.Sprintf("Created additional work: %s - £%s", work.Title, work.Price.StringFixed(2)))

	if err := s.notifier.NotifyEvent(ctx, notifications.Event{
		Recipient: proj.ClientID,
		Actor:     caller.UserID,
		ProjectID: work.ProjectID,
		Kind:      notification.KindAdditionalWorkRequested,
		Title:     "Additional Work Requested",
		Message:   fmt.Sprintf("Additional work %q (£%s) has been proposed for your project.", work.Title, work.Price.StringFixed(2)),
	}); err != nil {
		s.logger.Warn("Additional work notification failed",
			zap.String("work_id", work.ID.String()),
			zap.Error(err))
	}

	return work, nil
}

// List returns a project's proposals with creator enrichment and download
// URLs for attached files. Proposals are always client-visible.
func (s *AdditionalWorkService) List(ctx context.Context, caller authz.Caller, projectID uuid.UUID) ([]*AdditionalWorkView, error) {
	proj, err := s.projectRepo.FindByID(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if err := authz.Authorize(caller, proj.ClientID, authz.OpReadOwn); err != nil {
		return nil, err
	}

	items, err := s.workRepo.FindByProjectID(ctx, projectID)
	if err != nil {
		return nil, err
	}

	views := make([]*AdditionalWorkView, 0, len(items))
	names := newNameResolver(s.profileRepo)
	for _, work := range items {
		view := &AdditionalWorkView{
			AdditionalWork: work,
			CreatorName:    names.resolve(ctx, work.CreatedBy),
		}
		if work.FileKey != "" {
			if url, _, err := s.storage.GenerateDownloadURL(ctx, work.FileKey, downloadURLTTL); err == nil {
				view.DownloadURL = url
			} else {
				s.logger.Warn("Presigned download URL failed",
					zap.String("file_key", work.FileKey),
					zap.Error(err))
			}
		}
		views = append(views, view)
	}
	return views, nil
}

// Decide applies the owning client's decision on a proposal and broadcasts
// the outcome to every admin
func (s *AdditionalWorkService) Decide(ctx context.Context, caller authz.Caller, workID uuid.UUID, decision project.Decision, notes string) (*project.AdditionalWork, error) {
	work, err := s.workRepo.FindByID(ctx, workID)
	if err != nil {
		return nil, err
	}
	proj, err := s.projectRepo.FindByID(ctx, work.ProjectID)
	if err != nil {
		return nil, err
	}
	if err := authz.Authorize(caller, proj.ClientID, authz.OpWriteClientOfOwn); err != nil {
		return nil, err
	}

	if err := work.Decide(decision, caller.UserID, notes); err != nil {
		return nil, err
	}
	if err := s.workRepo.Update(ctx, work); err != nil {
		return nil, err
	}

	s.recorder.Record(ctx, work.ProjectID, caller.UserID, audit.ActionApprovalDecided,
		audit.EntityAdditionalWork, work.ID,
		fmt.Sprintf("%s additional work: %s", decision, work.Title))

	s.notifier.BroadcastToAdmins(ctx, notifications.Event{
		Actor:     caller.UserID,
		ProjectID: work.ProjectID,
		Kind:      notification.KindApprovalCompleted,
		Title:     fmt.Sprintf("Additional Work %s", decision),
		Message:   fmt.Sprintf("Additional work %q has been %s by the client.", work.Title, decision),
	})

	return work, nil
}
