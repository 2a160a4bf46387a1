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

// GormProjectRepository implements ProjectRepository using GORM
type GormProjectRepository struct {
	db *gorm.DB
}

// NewGormProjectRepository creates a new GormProjectRepository
func NewGormProjectRepository(db *gorm.DB) *GormProjectRepository {
	return &GormProjectRepository{db: db}
}

// Create creates a new project
func (r *GormProjectRepository) Create(ctx context.Context, p *project.Project) error {
	model := models.ProjectModelFromDomain(p)
	return r.db.WithContext(ctx).Create(model).Error
}

// Update saves the full project row
func (r *GormProjectRepository) Update(ctx context.Context, p *project.Project) error {
	model := models.ProjectModelFromDomain(p)
	return r.db.WithContext(ctx).Save(model).Error
}

// FindByID finds a project by its ID
func (r *GormProjectRepository) FindByID(ctx context.Context, id uuid.UUID) (*project.Project, error) {
	var model models.ProjectModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll returns every project, newest first
func (r *GormProjectRepository) FindAll(ctx context.Context) ([]*project.Project, error) {
	var projectModels []models.ProjectModel
	if err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Find(&projectModels).Error; err != nil {
		return nil, err
	}
	return projectModelsToDomain(projectModels), nil
}

// FindByClientID finds a client's projects via the client index
func (r *GormProjectRepository) FindByClientID(ctx context.Context, clientID uuid.UUID) ([]*project.Project, error) {
	var projectModels []models.ProjectModel
	if err := r.db.WithContext(ctx).
		Where("client_id = ?", clientID).
		Order("created_at DESC").
		Find(&projectModels).Error; err != nil {
		return nil, err
	}
	return projectModelsToDomain(projectModels), nil
}

func projectModelsToDomain(projectModels []models.ProjectModel) []*project.Project {
	projects := make([]*project.Project, len(projectModels))
	for i := range projectModels {
		projects[i] = projectModels[i].ToDomain()
	}
	return projects
}
