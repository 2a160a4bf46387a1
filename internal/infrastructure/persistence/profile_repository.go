package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/portal/backend/internal/domain/identity"
	"github.com/portal/backend/internal/domain/shared"
	"github.com/portal/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormProfileRepository implements ProfileRepository using GORM
type GormProfileRepository struct {
	db *gorm.DB
}

// NewGormProfileRepository creates a new GormProfileRepository
func NewGormProfileRepository(db *gorm.DB) *GormProfileRepository {
	return &GormProfileRepository{db: db}
}

// Create creates a new profile
func (r *GormProfileRepository) Create(ctx context.Context, profile *identity.Profile) error {
	model := models.ProfileModelFromDomain(profile)
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return shared.ErrAlreadyExists
		}
		return err
	}
	return nil
}

// Update saves the full profile row
func (r *GormProfileRepository) Update(ctx context.Context, profile *identity.Profile) error {
	model := models.ProfileModelFromDomain(profile)
	return r.db.WithContext(ctx).Save(model).Error
}

// FindByUserID finds the profile belonging to a user
func (r *GormProfileRepository) FindByUserID(ctx context.Context, userID uuid.UUID) (*identity.Profile, error) {
	var model models.ProfileModel
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByRole finds all profiles holding a role via the role index
func (r *GormProfileRepository) FindByRole(ctx context.Context, role identity.Role) ([]*identity.Profile, error) {
	var profileModels []models.ProfileModel
	if err := r.db.WithContext(ctx).
		Where("role = ? AND is_active = ?", string(role), true).
		Find(&profileModels).Error; err != nil {
		return nil, err
	}

	profiles := make([]*identity.Profile, len(profileModels))
	for i := range profileModels {
		profiles[i] = profileModels[i].ToDomain()
	}
	return profiles, nil
}

// FindUserIDsByRole returns the user IDs of all active profiles holding a role
func (r *GormProfileRepository) FindUserIDsByRole(ctx context.Context, role identity.Role) ([]uuid.UUID, error) {
	var userIDs []uuid.UUID
	if err := r.db.WithContext(ctx).Model(&models.ProfileModel{}).
		Where("role = ? AND is_active = ?", string(role), true).
		Pluck("user_id", &userIDs).Error; err != nil {
		return nil, err
	}
	return userIDs, nil
}
