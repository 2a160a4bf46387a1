package identity

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/portal/backend/internal/domain/shared"
)

// Role represents a portal role
type Role string

const (
	RoleAdmin  Role = "admin"
	RoleClient Role = "client"
)

// IsValid reports whether the role is one of the known roles
func (r Role) IsValid() bool {
	return r == RoleAdmin || r == RoleClient
}

// Profile carries the portal-facing attributes of a user.
// Exactly one profile exists per user once created.
type Profile struct {
	shared.BaseAggregateRoot
	UserID    uuid.UUID
	Role      Role
	FirstName string
	LastName  string
	Company   string
	Phone     string
	IsActive  bool
}

// NewProfile creates a profile for a user
func NewProfile(userID uuid.UUID, role Role, firstName, lastName string) (*Profile, error) {
	if userID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_USER_ID", "User ID cannot be empty")
	}
	if !role.IsValid() {
		return nil, shared.NewDomainError("INVALID_ROLE", "Role must be admin or client")
	}
	if err := validateName(firstName, "First name"); err != nil {
		return nil, err
	}
	if err := validateName(lastName, "Last name"); err != nil {
		return nil, err
	}

	return &Profile{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		UserID:            userID,
		Role:              role,
		FirstName:         strings.TrimSpace(firstName),
		LastName:          strings.TrimSpace(lastName),
		IsActive:          true,
	}, nil
}

// UpdateDetails updates the name and contact fields
func (p *Profile) UpdateDetails(firstName, lastName, company, phone string) error {
	if err := validateName(firstName, "First name"); err != nil {
		return err
	}
	if err := validateName(lastName, "Last name"); err != nil {
		return err
	}
	if len(phone) > 50 {
		return shared.NewDomainError("INVALID_PHONE", "Phone cannot exceed 50 characters")
	}
	if len(company) > 200 {
		return shared.NewDomainError("INVALID_COMPANY", "Company cannot exceed 200 characters")
	}

	p.FirstName = strings.TrimSpace(firstName)
	p.LastName = strings.TrimSpace(lastName)
	p.Company = strings.TrimSpace(company)
	p.Phone = strings.TrimSpace(phone)
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	return nil
}

// ChangeRole changes the profile role. Callers must enforce that only an
// admin actor may invoke this; the aggregate only validates the value.
func (p *Profile) ChangeRole(role Role) error {
	if !role.IsValid() {
		return shared.NewDomainError("INVALID_ROLE", "Role must be admin or client")
	}
	if p.Role == role {
		return nil
	}
	p.Role = role
	p.UpdatedAt = time.Now()
	p.IncrementVersion()
	return nil
}

// Deactivate marks the profile inactive
func (p *Profile) Deactivate() {
	p.IsActive = false
	p.UpdatedAt = time.Now()
	p.IncrementVersion()
}

// IsAdmin reports whether the profile holds the admin role
func (p *Profile) IsAdmin() bool {
	return p.Role == RoleAdmin
}

// IsClient reports whether the profile holds the client role
func (p *Profile) IsClient() bool {
	return p.Role == RoleClient
}

// FullName returns "First Last"
func (p *Profile) FullName() string {
	return strings.TrimSpace(p.FirstName + " " + p.LastName)
}

func validateName(name, label string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", label+" cannot be empty")
	}
	if len(name) > 100 {
		return shared.NewDomainError("INVALID_NAME", label+" cannot exceed 100 characters")
	}
	return nil
}
