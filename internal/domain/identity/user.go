package identity

import (
	"regexp"
	"strings"
	"time"

	"github.com/portal/backend/internal/domain/shared"
	"golang.org/x/crypto/bcrypt"
)

// Password cost for bcrypt
const bcryptCost = 12

// User represents an account in the portal.
// It is the aggregate root for account-level operations; portal-facing
// attributes (role, name, company) live on the Profile.
type User struct {
	shared.BaseAggregateRoot
	Email        string
	PasswordHash string
	// EmailVerified marks accounts created through an admin invitation.
	// Self-registered accounts start unverified, which forces their
	// profile role to client.
	EmailVerified   bool
	EmailVerifiedAt *time.Time
	IsActive        bool
	LastLoginAt     *time.Time
}

// NewUser creates a self-registered user with required fields
func NewUser(email, password string) (*User, error) {
	if err := validateEmail(email); err != nil {
		return nil, err
	}
	if err := validatePassword(password); err != nil {
		return nil, err
	}

	passwordHash, err := hashPassword(password)
	if err != nil {
		return nil, shared.NewDomainError("PASSWORD_HASH_ERROR", "Failed to hash password")
	}

	return &User{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Email:             strings.ToLower(strings.TrimSpace(email)),
		PasswordHash:      passwordHash,
		IsActive:          true,
	}, nil
}

// NewInvitedUser creates a user account on behalf of an admin invitation.
// The account carries no password until the invitee completes setup, and is
// marked verified so the invitee's profile may be provisioned directly.
func NewInvitedUser(email string) (*User, error) {
	if err := validateEmail(email); err != nil {
		return nil, err
	}

	now := time.Now()
	return &User{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Email:             strings.ToLower(strings.TrimSpace(email)),
		EmailVerified:     true,
		EmailVerifiedAt:   &now,
		IsActive:          true,
	}, nil
}

// SetPassword sets a new password
func (u *User) SetPassword(password string) error {
	if err := validatePassword(password); err != nil {
		return err
	}

	passwordHash, err := hashPassword(password)
	if err != nil {
		return shared.NewDomainError("PASSWORD_HASH_ERROR", "Failed to hash password")
	}

	u.PasswordHash = passwordHash
	u.UpdatedAt = time.Now()
	u.IncrementVersion()

	return nil
}

// VerifyPassword verifies if the provided password matches
func (u *User) VerifyPassword(password string) bool {
	if u.PasswordHash == "" {
		return false
	}
	err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password))
	return err == nil
}

// MarkEmailVerified records email verification
func (u *User) MarkEmailVerified() {
	if u.EmailVerified {
		return
	}
	now := time.Now()
	u.EmailVerified = true
	u.EmailVerifiedAt = &now
	u.UpdatedAt = now
	u.IncrementVersion()
}

// Deactivate deactivates the account
func (u *User) Deactivate() error {
	if !u.IsActive {
		return shared.NewDomainError("ALREADY_INACTIVE", "User is already deactivated")
	}
	u.IsActive = false
	u.UpdatedAt = time.Now()
	u.IncrementVersion()
	return nil
}

// Activate reactivates the account
func (u *User) Activate() error {
	if u.IsActive {
		return shared.NewDomainError("ALREADY_ACTIVE", "User is already active")
	}
	u.IsActive = true
	u.UpdatedAt = time.Now()
	u.IncrementVersion()
	return nil
}

// RecordLoginSuccess records a successful login
func (u *User) RecordLoginSuccess() {
	now := time.Now()
	u.LastLoginAt = &now
	u.UpdatedAt = now
	u.IncrementVersion()
}

// CanLogin returns true if the account may authenticate
func (u *User) CanLogin() bool {
	return u.IsActive && u.PasswordHash != ""
}

func validatePassword(password string) error {
	if password == "" {
		return shared.NewDomainError("INVALID_PASSWORD", "Password cannot be empty")
	}
	if len(password) < 8 {
		return shared.NewDomainError("INVALID_PASSWORD", "Password must be at least 8 characters")
	}
	if len(password) > 128 {
		return shared.NewDomainError("INVALID_PASSWORD", "Password cannot exceed 128 characters")
	}
	return nil
}

func validateEmail(email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return shared.NewDomainError("INVALID_EMAIL", "Email cannot be empty")
	}
	if len(email) > 200 {
		return shared.NewDomainError("INVALID_EMAIL", "Email cannot exceed 200 characters")
	}

	emailRegex := regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
	if !emailRegex.MatchString(email) {
		return shared.NewDomainError("INVALID_EMAIL", "Invalid email format")
	}

	return nil
}

func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
