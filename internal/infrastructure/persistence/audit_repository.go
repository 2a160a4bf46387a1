package persistence

import (
	"context"

	"github.com/google/uuid"
	"github.com/portal/backend/internal/domain/audit"
	"github.com/portal/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormAuditRepository implements audit.Repository using GORM. The trail is
// insert-only; no update or delete path exists.
type GormAuditRepository struct {
	db *gorm.DB
}

// NewGormAuditRepository creates a new GormAuditRepository
func NewGormAuditRepository(db *gorm.DB) *GormAuditRepository {
	return &GormAuditRepository{db: db}
}

// Append writes a new audit entry
func (r *GormAuditRepository) Append(ctx context.Context, e *audit.Entry) error {
	model := models.AuditEntryModelFromDomain(e)
	return r.db.WithContext(ctx).Create(model).Error
}

// FindByProjectID returns entries for a project newest first, capped at limit
func (r *GormAuditRepository) FindByProjectID(ctx context.Context, projectID uuid.UUID, limit int) ([]*audit.Entry, error) {
	var entryModels []models.AuditEntryModel
	query := r.db.WithContext(ctx).
		Where("project_id = ?", projectID).
		Order("created_at DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&entryModels).Error; err != nil {
		return nil, err
	}

	entries := make([]*audit.Entry, len(entryModels))
	for i := range entryModels {
		entries[i] = entryModels[i].ToDomain()
	}
	return entries, nil
}
