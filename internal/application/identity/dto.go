package identity

import (
	"time"

	"github.com/google/uuid"
	"github.com/portal/backend/internal/domain/identity"
)

// RegisterInput contains the input for self-registration
type RegisterInput struct {
	Email     string
	Password  string
	FirstName string
	LastName  string
}

// LoginInput contains the input for login
type LoginInput struct {
	Email    string
	Password string
}

// AuthResult contains the token and user info returned after
// authentication
type AuthResult struct {
	AccessToken string
	ExpiresAt   time.Time
	TokenType   string
	User        UserInfo
}

// UserInfo is the portal-facing view of a user and their profile
type UserInfo struct {
	ID        uuid.UUID
	Email     string
	Role      identity.Role
	FirstName string
	LastName  string
	Company   string
	Phone     string
	IsActive  bool
}

// UpdateProfileInput contains the input for profile updates. Role is
// optional; a non-empty value requests a role change, which only admins
// may perform.
type UpdateProfileInput struct {
	FirstName string
	LastName  string
	Company   string
	Phone     string
	Role      identity.Role
}

// InviteClientInput contains the input for an admin client invitation
type InviteClientInput struct {
	Email     string
	FirstName string
	LastName  string
	Company   string
}
