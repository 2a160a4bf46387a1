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

// DocumentService handles document operations
type DocumentService struct {
	projectRepo  project.ProjectRepository
	documentRepo project.DocumentRepository
	profileRepo  identity.ProfileRepository
	storage      ObjectStorageService
	notifier     EventNotifier
	recorder     AuditRecorder
	logger       *zap.Logger
}

// NewDocumentService creates a document service
func NewDocumentService(
	projectRepo project.ProjectRepository,
	documentRepo project.DocumentRepository,
	profileRepo identity.ProfileRepository,
	storage ObjectStorageService,
	notifier EventNotifier,
	recorder AuditRecorder,
	logger *zap.Logger,
) *DocumentService {
	return &DocumentService{
		projectRepo:  projectRepo,
		documentRepo: documentRepo,
		profileRepo:  profileRepo,
		storage:      storage,
		notifier:     notifier,
		recorder:     recorder,
		logger:       logger,
	}
}

// Upload creates a document record for an already-uploaded file. Admin
// only. The approval state starts pending exactly when the document
// requires approval.
func (s *DocumentService) Upload(ctx context.Context, caller authz.Caller, input UploadDocumentInput) (*project.Document, error) {
	if _, err := s.projectRepo.FindByID(ctx, input.ProjectID); err != nil {
		return nil, err
	}
	if err := authz.Authorize(caller, uuid.Nil, authz.OpWriteAdminOnly); err != nil {
		return nil, err
	}

	doc, err := project.NewDocument(project.NewDocumentInput{
		ProjectID:        input.ProjectID,
		Title:            input.Title,
		Description:      input.Description,
		Type:             input.Type,
		FileKey:          input.FileKey,
		FileName:         input.FileName,
		FileSize:         input.FileSize,
		UploadedBy:       caller.UserID,
		IsVisible:        input.IsVisible,
		RequiresApproval: input.RequiresApproval,
	})
	if err != nil {
		return nil, err
	}

	if err := s.documentRepo.Create(ctx, doc); err != nil {
		return nil, err
	}

	s.recorder.Record(ctx, doc.ProjectID, caller.UserID, audit.ActionDocumentUploaded,
		audit.EntityDocument, doc.ID,
		fmt.Sprintf("Uploaded document: %s", doc.Title))

	return doc, nil
}

// List returns a project's documents the caller may see, with uploader
// names and presigned download URLs. Enrichment happens strictly after the
// visibility filter so hidden records never leak through it.
func (s *DocumentService) List(ctx context.Context, caller authz.Caller, projectID uuid.UUID) ([]*DocumentView, error) {
	proj, err := s.projectRepo.FindByID(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if err := authz.Authorize(caller, proj.ClientID, authz.OpReadOwn); err != nil {
		return nil, err
	}

	docs, err := s.documentRepo.FindByProjectID(ctx, projectID)
	if err != nil {
		return nil, err
	}
	docs = project.FilterVisible(docs, caller.Role)

	views := make([]*DocumentView, 0, len(docs))
	names := newNameResolver(s.profileRepo)
	for _, doc := range docs {
		views = append(views, &DocumentView{
			Document:     doc,
			UploaderName: names.resolve(ctx, doc.UploadedBy),
			DownloadURL:  s.downloadURL(ctx, doc.FileKey),
		})
	}
	return views, nil
}

// SetVisibility toggles a document's client-facing visibility. Admin only.
func (s *DocumentService) SetVisibility(ctx context.Context, caller authz.Caller, documentID uuid.UUID, visible bool) (*project.Document, error) {
	if err := authz.Authorize(caller, uuid.Nil, authz.OpWriteAdminOnly); err != nil {
		return nil, err
	}

	doc, err := s.documentRepo.FindByID(ctx, documentID)
	if err != nil {
		return nil, err
	}

	doc.SetVisibility(visible)
	if err := s.documentRepo.Update(ctx, doc); err != nil {
		return nil, err
	}

	s.recorder.Record(ctx, doc.ProjectID, caller.UserID, audit.ActionDocumentVisibility,
		audit.EntityDocument, doc.ID,
		fmt.Sprintf("Set document %q visible=%t", doc.Title, visible))

	return doc, nil
}

// Decide applies the owning client's approval decision and broadcasts the
// outcome to every admin. The decision is applied before the broadcast:
// notification failures never undo it.
func (s *DocumentService) Decide(ctx context.Context, caller authz.Caller, documentID uuid.UUID, decision project.Decision, notes string) (*project.Document, error) {
	doc, err := s.documentRepo.FindByID(ctx, documentID)
	if err != nil {
		return nil, err
	}
	proj, err := s.projectRepo.FindByID(ctx, doc.ProjectID)
	if err != nil {
		return nil, err
	}
	if err := authz.Authorize(caller, proj.ClientID, authz.OpWriteClientOfOwn); err != nil {
		return nil, err
	}

	if err := doc.Decide(decision, caller.UserID, notes); err != nil {
		return nil, err
	}
	if err := s.documentRepo.Update(ctx, doc); err != nil {
		return nil, err
	}

	s.recorder.Record(ctx, doc.ProjectID, caller.UserID, audit.ActionApprovalDecided,
		audit.EntityDocument, doc.ID,
		fmt.Sprintf("%s document: %s", decision, doc.Title))

	s.notifier.BroadcastToAdmins(ctx, notifications.Event{
		Actor:     caller.UserID,
		ProjectID: doc.ProjectID,
		Kind:      notification.KindApprovalCompleted,
		Title:     fmt.Sprintf("Document %s", decision),
		Message:   fmt.Sprintf("Document %q has been %s by the client.", doc.Title, decision),
	})

	return doc, nil
}

// downloadURL resolves a presigned download URL, degrading to empty on
// failure so reads never fail on storage hiccups.
func (s *DocumentService) downloadURL(ctx context.Context, fileKey string) string {
	if fileKey == "" {
		return ""
	}
	url, _, err := s.storage.GenerateDownloadURL(ctx, fileKey, downloadURLTTL)
	if err != nil {
		s.logger.Warn("Presigned download URL failed",
			zap.String("file_key", fileKey),
			zap.Error(err))
		return ""
	}
	return url
}

// nameResolver caches profile lookups within one enrichment pass
type nameResolver struct {
	profileRepo identity.ProfileRepository
	cache       map[uuid.UUID]string
}

func newNameResolver(profileRepo identity.ProfileRepository) *nameResolver {
	return &nameResolver{profileRepo: profileRepo, cache: make(map[uuid.UUID]string)}
}

func (r *nameResolver) resolve(ctx context.Context, userID uuid.UUID) string {
	if name, ok := r.cache[userID]; ok {
		return name
	}
	name := ""
	if profile, err := r.profileRepo.FindByUserID(ctx, userID); err == nil {
		name = profile.FullName()
	}
	r.cache[userID] = name
	return name
}
