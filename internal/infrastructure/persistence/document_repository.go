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

// GormDocumentRepository implements DocumentRepository using GORM
type GormDocumentRepository struct {
	db *gorm.DB
}

// NewGormDocumentRepository creates a new GormDocumentRepository
func NewGormDocumentRepository(db *gorm.DB) *GormDocumentRepository {
	return &GormDocumentRepository{db: db}
}

// Create creates a new document
func (r *GormDocumentRepository) Create(ctx context.Context, doc *project.Document) error {
	model := models.DocumentModelFromDomain(doc)
	return r.db.WithContext(ctx).Create(model).Error
}

// Update saves the full document row
func (r *GormDocumentRepository) Update(ctx context.Context, doc *project.Document) error {
	model := models.DocumentModelFromDomain(doc)
	return r.db.WithContext(ctx).Save(model).Error
}

// FindByID finds a document by its ID
func (r *GormDocumentRepository) FindByID(ctx context.Context, id uuid.UUID) (*project.Document, error) {
	var model models.DocumentModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByProjectID returns a project's documents, newest first
func (r *GormDocumentRepository) FindByProjectID(ctx context.Context, projectID uuid.UUID) ([]*project.Document, error) {
	var documentModels []models.DocumentModel
	if err := r.db.WithContext(ctx).
		Where("project_id = ?", projectID).
		Order("created_at DESC").
		Find(&documentModels).Error; err != nil {
		return nil, err
	}

	documents := make([]*project.Document, len(documentModels))
	for i := range documentModels {
		documents[i] = documentModels[i].ToDomain()
	}
	return documents, nil
}

// CountVisibleCreatedAfter counts client-visible documents created strictly
// after the given instant
func (r *GormDocumentRepository) CountVisibleCreatedAfter(ctx context.Context, projectID uuid.UUID, after time.Time) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.DocumentModel{}).
		Where("project_id = ? AND is_visible = ? AND created_at > ?", projectID, true, after).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
