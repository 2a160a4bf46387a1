package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/portal/backend/internal/domain/identity"
)

// UserModel is the persistence model for the User domain entity.
type UserModel struct {
	AggregateModel
	Email           string `gorm:"type:varchar(200);not null;uniqueIndex"`
	PasswordHash    string `gorm:"type:varchar(255)"`
	EmailVerified   bool   `gorm:"not null;default:false"`
	EmailVerifiedAt *time.Time
	LastLoginAt     *time.Time
	IsActive        bool `gorm:"not null;default:true"`
}

// TableName returns the table name for GORM
func (UserModel) TableName() string {
	return "users"
}

// ToDomain converts the persistence model to a domain User entity.
func (m *UserModel) ToDomain() *identity.User {
	return &identity.User{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		Email:             m.Email,
		PasswordHash:      m.PasswordHash,
		EmailVerified:     m.EmailVerified,
		EmailVerifiedAt:   m.EmailVerifiedAt,
		LastLoginAt:       m.LastLoginAt,
		IsActive:          m.IsActive,
	}
}

// FromDomain populates the persistence model from a domain User entity.
func (m *UserModel) FromDomain(u *identity.User) {
	m.FromDomainAggregateRoot(u.BaseAggregateRoot)
	m.Email = u.Email
	m.PasswordHash = u.PasswordHash
	m.EmailVerified = u.EmailVerified
	m.EmailVerifiedAt = u.EmailVerifiedAt
	m.LastLoginAt = u.LastLoginAt
	m.IsActive = u.IsActive
}

// UserModelFromDomain creates a new persistence model from a domain User entity.
func UserModelFromDomain(u *identity.User) *UserModel {
	m := &UserModel{}
	m.FromDomain(u)
	return m
}

// ProfileModel is the persistence model for the Profile domain entity.
// The role column is indexed: admin fan-out queries resolve recipients
// through it rather than scanning the table.
type ProfileModel struct {
	AggregateModel
	UserID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex"`
	Role      string    `gorm:"type:varchar(20);not null;index"`
	FirstName string `gorm:"type:varchar(100);not null"`
	LastName  string `gorm:"type:varchar(100);not null"`
	Company   string `gorm:"type:varchar(200)"`
	Phone     string `gorm:"type:varchar(50)"`
	IsActive  bool   `gorm:"not null;default:true"`
}

// TableName returns the table name for GORM
func (ProfileModel) TableName() string {
	return "profiles"
}

// ToDomain converts the persistence model to a domain Profile entity.
func (m *ProfileModel) ToDomain() *identity.Profile {
	return &identity.Profile{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		UserID:            m.UserID,
		Role:              identity.Role(m.Role),
		FirstName:         m.FirstName,
		LastName:          m.LastName,
		Company:           m.Company,
		Phone:             m.Phone,
		IsActive:          m.IsActive,
	}
}

// FromDomain populates the persistence model from a domain Profile entity.
func (m *ProfileModel) FromDomain(p *identity.Profile) {
	m.FromDomainAggregateRoot(p.BaseAggregateRoot)
	m.UserID = p.UserID
	m.Role = string(p.Role)
	m.FirstName = p.FirstName
	m.LastName = p.LastName
	m.Company = p.Company
	m.Phone = p.Phone
	m.IsActive = p.IsActive
}

// ProfileModelFromDomain creates a new persistence model from a domain Profile entity.
func ProfileModelFromDomain(p *identity.Profile) *ProfileModel {
	m := &ProfileModel{}
	m.FromDomain(p)
	return m
}
