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

// GormMilestoneRepository implements MilestoneRepository using GORM
type GormMilestoneRepository struct {
	db *gorm.DB
}

// NewGormMilestoneRepository creates a new GormMilestoneRepository
func NewGormMilestoneRepository(db *gorm.DB) *GormMilestoneRepository {
	return &GormMilestoneRepository{db: db}
}

// Create creates a new milestone
func (r *GormMilestoneRepository) Create(ctx context.Context, milestone *project.Milestone) error {
	model := models.MilestoneModelFromDomain(milestone)
	return r.db.WithContext(ctx).Create(model).Error
}

// Update saves the full milestone row
func (r *GormMilestoneRepository) Update(ctx context.Context, milestone *project.Milestone) error {
	model := models.MilestoneModelFromDomain(milestone)
	return r.db.WithContext(ctx).Save(model).Error
}

// Delete removes a milestone
func (r *GormMilestoneRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.MilestoneModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// FindByID finds a milestone by its ID
func (r *GormMilestoneRepository) FindByID(ctx context.Context, id uuid.UUID) (*project.Milestone, error) {
	var model models.MilestoneModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByProjectID returns a project's milestones ordered by sort order
func (r *GormMilestoneRepository) FindByProjectID(ctx context.Context, projectID uuid.UUID) ([]*project.Milestone, error) {
	var milestoneModels []models.MilestoneModel
	if err := r.db.WithContext(ctx).
		Where("project_id = ?", projectID).
		Order("sort_order ASC").
		Find(&milestoneModels).Error; err != nil {
		return nil, err
	}

	milestones := make([]*project.Milestone, len(milestoneModels))
	for i := range milestoneModels {
		milestones[i] = milestoneModels[i].ToDomain()
	}
	return milestones, nil
}

// MaxSortOrder returns the highest sort order in use for a project, zero
// when the project has no milestones
func (r *GormMilestoneRepository) MaxSortOrder(ctx context.Context, projectID uuid.UUID) (int, error) {
	var max int
	if err := r.db.WithContext(ctx).Model(&models.MilestoneModel{}).
		Where("project_id = ?", projectID).
		Select("COALESCE(MAX(sort_order), 0)").
		Scan(&max).Error; err != nil {
		return 0, err
	}
	return max, nil
}
