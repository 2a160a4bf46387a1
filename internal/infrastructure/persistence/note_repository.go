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

// GormNoteRepository implements NoteRepository using GORM
type GormNoteRepository struct {
	db *gorm.DB
}

// NewGormNoteRepository creates a new GormNoteRepository
func NewGormNoteRepository(db *gorm.DB) *GormNoteRepository {
	return &GormNoteRepository{db: db}
}

// Create creates a new note
func (r *GormNoteRepository) Create(ctx context.Context, note *project.Note) error {
	model := models.NoteModelFromDomain(note)
	return r.db.WithContext(ctx).Create(model).Error
}

// Update saves the full note row
func (r *GormNoteRepository) Update(ctx context.Context, note *project.Note) error {
	model := models.NoteModelFromDomain(note)
	return r.db.WithContext(ctx).Save(model).Error
}

// Delete removes a note
func (r *GormNoteRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.NoteModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// FindByID finds a note by its ID
func (r *GormNoteRepository) FindByID(ctx context.Context, id uuid.UUID) (*project.Note, error) {
	var model models.NoteModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByProjectID returns a project's notes, newest first
func (r *GormNoteRepository) FindByProjectID(ctx context.Context, projectID uuid.UUID) ([]*project.Note, error) {
	var noteModels []models.NoteModel
	if err := r.db.WithContext(ctx).
		Where("project_id = ?", projectID).
		Order("created_at DESC").
		Find(&noteModels).Error; err != nil {
		return nil, err
	}

	notes := make([]*project.Note, len(noteModels))
	for i := range noteModels {
		notes[i] = noteModels[i].ToDomain()
	}
	return notes, nil
}
