package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/portal/backend/internal/domain/project"
	"github.com/portal/backend/internal/domain/shared"
	"github.com/portal/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormAdditionalWorkRepository implements AdditionalWorkRepository using GORM
type GormAdditionalWorkRepository struct {
	db *gorm.DB
}

// NewGormAdditionalWorkRepository creates a new GormAdditionalWorkRepository
func NewGormAdditionalWorkRepository(db *gorm.DB) *GormAdditionalWorkRepository {
	return &GormAdditionalWorkRepository{db: db}
}

// Create creates a new additional-work proposal
func (r *GormAdditionalWorkRepository) Create(ctx context.Context, work *project.AdditionalWork) error {
	model := models.AdditionalWorkModelFromDomain(work)
	return r.db.WithContext(ctx).Create(model).Error
}

// Update saves the full additional-work row
func (r *GormAdditionalWorkRepository) Update(ctx context.Context, work *project.AdditionalWork) error {
	model := models.AdditionalWorkModelFromDomain(work)
	return r.db.WithContext(ctx).Save(model).Error
}

// FindByID finds an additional-work proposal by its ID
func (r *GormAdditionalWorkRepository) FindByID(ctx context.Context, id uuid.UUID) (*project.AdditionalWork, error) {
	var model models.AdditionalWorkModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByProjectID returns a project's additional-work proposals, newest first
func (r *GormAdditionalWorkRepository) FindByProjectID(ctx context.Context, projectID uuid.UUID) ([]*project.AdditionalWork, error) {
	var workModels []models.AdditionalWorkModel
	if err := r.db.WithContext(ctx).
		Where("project_id = ?", projectID).
		Order("created_at DESC").
		Find(&workModels).Error; err != nil {
		return nil, err
	}

	work := make([]*project.AdditionalWork, len(workModels))
	for i := range workModels {
		work[i] = workModels[i].ToDomain()
	}
	return work, nil
}
