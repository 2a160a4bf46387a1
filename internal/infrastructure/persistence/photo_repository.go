package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/portal/backend/internal/domain/project"
	"github.com/portal/backend/internal/domain/shared"
	"github.com/portal/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormPhotoRepository implements PhotoRepository using GORM
type GormPhotoRepository struct {
	db *gorm.DB
}

// NewGormPhotoRepository creates a new GormPhotoRepository
func NewGormPhotoRepository(db *gorm.DB) *GormPhotoRepository {
	return &GormPhotoRepository{db: db}
}

// Create creates a new photo
func (r *GormPhotoRepository) Create(ctx context.Context, photo *project.Photo) error {
	model := models.PhotoModelFromDomain(photo)
	return r.db.WithContext(ctx).Create(model).Error
}

// Update saves the full photo row
func (r *GormPhotoRepository) Update(ctx context.Context, photo *project.Photo) error {
	model := models.PhotoModelFromDomain(photo)
	return r.db.WithContext(ctx).Save(model).Error
}

// Delete removes a photo
func (r *GormPhotoRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.PhotoModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// FindByID finds a photo by its ID
func (r *GormPhotoRepository) FindByID(ctx context.Context, id uuid.UUID) (*project.Photo, error) {
	var model models.PhotoModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByProjectID returns a project's photos, newest first
func (r *GormPhotoRepository) FindByProjectID(ctx context.Context, projectID uuid.UUID) ([]*project.Photo, error) {
	var photoModels []models.PhotoModel
	if err := r.db.WithContext(ctx).
		Where("project_id = ?", projectID).
		Order("created_at DESC").
		Find(&photoModels).Error; err != nil {
		return nil, err
	}

	photos := make([]*project.Photo, len(photoModels))
	for i := range photoModels {
		photos[i] = photoModels[i].ToDomain()
	}
	return photos, nil
}

// CountVisibleCreatedAfter counts client-visible photos created strictly
// after the given instant
func (r *GormPhotoRepository) CountVisibleCreatedAfter(ctx context.Context, projectID uuid.UUID, after time.Time) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.PhotoModel{}).
		Where("project_id = ? AND is_visible = ? AND created_at > ?", projectID, true, after).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
