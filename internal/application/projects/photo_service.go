package projects

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/portal/backend/internal/domain/audit"
	"github.com/portal/backend/internal/domain/authz"
	"github.com/portal/backend/internal/domain/identity"
	"github.com/portal/backend/internal/domain/project"
	"go.uber.org/zap"
)

// PhotoService handles photo operations
type PhotoService struct {
	projectRepo project.ProjectRepository
	photoRepo   project.PhotoRepository
	profileRepo identity.ProfileRepository
	storage     ObjectStorageService
	recorder    AuditRecorder
	logger      *zap.Logger
}

// NewPhotoService creates a photo service
func NewPhotoService(
	projectRepo project.ProjectRepository,
	photoRepo project.PhotoRepository,
	profileRepo identity.ProfileRepository,
	storage ObjectStorageService,
	recorder AuditRecorder,
	logger *zap.Logger,
) *PhotoService {
	return &PhotoService{
		projectRepo: projectRepo,
		photoRepo:   photoRepo,
		profileRepo: profileRepo,
		storage:     storage,
		recorder:    recorder,
		logger:      logger,
	}
}

// Upload creates a photo record. Admins may upload to any project; clients
// only to their own, which is the read-own predicate.
func (s *PhotoService) Upload(ctx context.Context, caller authz.Caller, input UploadPhotoInput) (*project.Photo, error) {
	proj, err := s.projectRepo.FindByID(ctx, input.ProjectID)
	if err != nil {
		return nil, err
	}
	if err := authz.Authorize(caller, proj.ClientID, authz.OpReadOwn); err != nil {
		return nil, err
	}

	photo, err := project.NewPhoto(input.ProjectID, input.Title, input.FileKey, input.FileName, caller.UserID, input.IsVisible)
	if err != nil {
		return nil, err
	}
	photo.SetCaption(input.Caption)
	photo.SetCategory(input.Category)

	if err := s.photoRepo.Create(ctx, photo); err != nil {
		return nil, err
	}

	s.recorder.Record(ctx, photo.ProjectID, caller.UserID, audit.ActionPhotoUploaded,
		audit.EntityPhoto, photo.ID,
		fmt.Sprintf("Uploaded photo: %s", photo.Title))

	return photo, nil
}

// List returns a project's photos the caller may see, enriched after
// filtering
func (s *PhotoService) List(ctx context.Context, caller authz.Caller, projectID uuid.UUID) ([]*PhotoView, error) {
	proj, err := s.projectRepo.FindByID(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if err := authz.Authorize(caller, proj.ClientID, authz.OpReadOwn); err != nil {
		return nil, err
	}

	photos, err := s.photoRepo.FindByProjectID(ctx, projectID)
	if err != nil {
		return nil, err
	}
	photos = project.FilterVisible(photos, caller.Role)

	views := make([]*PhotoView, 0, len(photos))
	names := newNameResolver(s.profileRepo)
	for _, photo := range photos {
		views = append(views, &PhotoView{
			Photo:        photo,
			UploaderName: names.resolve(ctx, photo.UploadedBy),
			DownloadURL:  s.downloadURL(ctx, photo.FileKey),
		})
	}
	return views, nil
}

// SetVisibility toggles a photo's client-facing visibility. Admin only.
func (s *PhotoService) SetVisibility(ctx context.Context, caller authz.Caller, photoID uuid.UUID, visible bool) (*project.Photo, error) {
	if err := authz.Authorize(caller, uuid.Nil, authz.OpWriteAdminOnly); err != nil {
		return nil, err
	}

	photo, err := s.photoRepo.FindByID(ctx, photoID)
	if err != nil {
		return nil, err
	}

	photo.SetVisibility(visible)
	if err := s.photoRepo.Update(ctx, photo); err != nil {
		return nil, err
	}

	s.recorder.Record(ctx, photo.ProjectID, caller.UserID, audit.ActionPhotoVisibility,
		audit.EntityPhoto, photo.ID,
		fmt.Sprintf("Set photo %q visible=%t", photo.Title, visible))

	return photo, nil
}

// Delete removes a photo. Admins may delete any photo; clients only their
// own uploads. The stored object is removed best-effort after the row.
func (s *PhotoService) Delete(ctx context.Context, caller authz.Caller, photoID uuid.UUID) error {
	photo, err := s.photoRepo.FindByID(ctx, photoID)
	if err != nil {
		return err
	}
	if err := authz.AuthorizeResource(caller, photo.UploadedBy); err != nil {
		return err
	}

	if err := s.photoRepo.Delete(ctx, photoID); err != nil {
		return err
	}

	if photo.FileKey != "" {
		if err := s.storage.DeleteObject(ctx, photo.FileKey); err != nil {
			s.logger.Warn("Failed to delete stored photo object",
				zap.String("file_key", photo.FileKey),
				zap.Error(err))
		}
	}

	s.recorder.Record(ctx, photo.ProjectID, caller.UserID, audit.ActionPhotoDeleted,
		audit.EntityPhoto, photo.ID,
		fmt.Sprintf("Deleted photo: %s", photo.Title))

	return nil
}

func (s *PhotoService) downloadURL(ctx context.Context, fileKey string) string {
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
