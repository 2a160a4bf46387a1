package identity

import (
	"context"

	"github.com/google/uuid"
)

// UserRepository defines the interface for user persistence
type UserRepository interface {
	// Create creates a new user
	Create(ctx context.Context, user *User) error

	// Update updates an existing user
	Update(ctx context.Context, user *User) error

	// FindByID finds a user by ID
	FindByID(ctx context.Context, id uuid.UUID) (*User, error)

	// FindByEmail finds a user by email
	FindByEmail(ctx context.Context, email string) (*User, error)

	// ExistsByEmail checks if an email already exists
	ExistsByEmail(ctx context.Context, email string) (bool, error)
}

// ProfileRepository defines the interface for profile persistence
type ProfileRepository interface {
	// Create creates a new profile
	Create(ctx context.Context, profile *Profile) error

	// Update updates an existing profile
	Update(ctx context.Context, profile *Profile) error

	// FindByUserID finds the profile belonging to a user
	FindByUserID(ctx context.Context, userID uuid.UUID) (*Profile, error)

	// FindByRole finds all profiles holding a role, via the role index.
	// Admin broadcast enumeration goes through this, never a full scan.
	FindByRole(ctx context.Context, role Role) ([]*Profile, error)

	// FindUserIDsByRole returns the user IDs of all profiles holding a role
	FindUserIDsByRole(ctx context.Context, role Role) ([]uuid.UUID, error)
}
