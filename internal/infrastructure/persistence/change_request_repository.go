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

// GormChangeRequestRepository implements ChangeRequestRepository using GORM
type GormChangeRequestRepository struct {
	db *gorm.DB
}

// NewGormChangeRequestRepository creates a new GormChangeRequestRepository
func NewGormChangeRequestRepository(db *gorm.DB) *GormChangeRequestRepository {
	return &GormChangeRequestRepository{db: db}
}

// Create creates a new change request
func (r *GormChangeRequestRepository) Create(ctx context.Context, cr *project.ChangeRequest) error {
	model := models.ChangeRequestModelFromDomain(cr)
	return r.db.WithContext(ctx).Create(model).Error
}

// Update saves the full change-request row
func (r *GormChangeRequestRepository) Update(ctx context.Context, cr *project.ChangeRequest) error {
	model := models.ChangeRequestModelFromDomain(cr)
	return r.db.WithContext(ctx).Save(model).Error
}

// FindByID finds a change request by its ID
func (r *GormChangeRequestRepository) FindByID(ctx context.Context, id uuid.UUID) (*project.ChangeRequest, error) {
	var model models.ChangeRequestModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByProjectID returns a project's change requests, newest first
func (r *GormChangeRequestRepository) FindByProjectID(ctx context.Context, projectID uuid.UUID) ([]*project.ChangeRequest, error) {
	var requestModels []models.ChangeRequestModel
	if err := r.db.WithContext(ctx).
		Where("project_id = ?", projectID).
		Order("created_at DESC").
		Find(&requestModels).Error; err != nil {
		return nil, err
	}

	requests := make([]*project.ChangeRequest, len(requestModels))
	for i := range requestModels {
		requests[i] = requestModels[i].ToDomain()
	}
	return requests, nil
}
