package models

import (
	"github.com/google/uuid"
	"github.com/portal/backend/internal/domain/audit"
	"github.com/portal/backend/internal/domain/notification"
)

// NotificationModel is the persistence model for the Notification entity.
// The (user_id, project_id, kind) index serves both the per-user feed and
// the digest high-water-mark lookup.
type NotificationModel struct {
	BaseModel
	UserID    uuid.UUID `gorm:"type:uuid;not null;index:idx_notifications_user_project_kind"`
	ProjectID uuid.UUID `gorm:"type:uuid;not null;index:idx_notifications_user_project_kind"`
	Kind      string    `gorm:"type:varchar(40);not null;index:idx_notifications_user_project_kind"`
	Title     string    `gorm:"type:varchar(200);not null"`
	Message   string    `gorm:"type:text"`
	IsRead    bool      `gorm:"not null;default:false"`
	EmailSent bool      `gorm:"not null;default:false"`
}

func (NotificationModel) TableName() string {
	return "notifications"
}

func (m *NotificationModel) ToDomain() *notification.Notification {
	return &notification.Notification{
		BaseEntity: m.BaseModel.ToDomain(),
		UserID:     m.UserID,
		ProjectID:  m.ProjectID,
		Kind:       notification.Kind(m.Kind),
		Title:      m.Title,
		Message:    m.Message,
		IsRead:     m.IsRead,
		EmailSent:  m.EmailSent,
	}
}

func (m *NotificationModel) FromDomain(n *notification.Notification) {
	m.FromDomainBaseEntity(n.BaseEntity)
	m.UserID = n.UserID
	m.ProjectID = n.ProjectID
	m.Kind = string(n.Kind)
	m.Title = n.Title
	m.Message = n.Message
	m.IsRead = n.IsRead
	m.EmailSent = n.EmailSent
}

// NotificationModelFromDomain creates a new persistence model from a domain Notification
func NotificationModelFromDomain(n *notification.Notification) *NotificationModel {
	m := &NotificationModel{}
	m.FromDomain(n)
	return m
}

// AuditEntryModel is the persistence model for the audit trail. Rows are
// insert-only.
type AuditEntryModel struct {
	BaseModel
	ProjectID  *uuid.UUID `gorm:"type:uuid;index"`
	ActorID    uuid.UUID  `gorm:"type:uuid;not null"`
	Action     string     `gorm:"type:varchar(60);not null"`
	EntityType string     `gorm:"type:varchar(40);not null;index:idx_audit_entries_entity"`
	EntityID   uuid.UUID  `gorm:"type:uuid;not null;index:idx_audit_entries_entity"`
	Details    string     `gorm:"type:text"`
}

func (AuditEntryModel) TableName() string {
	return "audit_entries"
}

func (m *AuditEntryModel) ToDomain() *audit.Entry {
	return &audit.Entry{
		BaseEntity: m.BaseModel.ToDomain(),
		ProjectID:  m.ProjectID,
		ActorID:    m.ActorID,
		Action:     m.Action,
		EntityType: m.EntityType,
		EntityID:   m.EntityID,
		Details:    m.Details,
	}
}

func (m *AuditEntryModel) FromDomain(e *audit.Entry) {
	m.FromDomainBaseEntity(e.BaseEntity)
	m.ProjectID = e.ProjectID
	m.ActorID = e.ActorID
	m.Action = e.Action
	m.EntityType = e.EntityType
	m.EntityID = e.EntityID
	m.Details = e.Details
}

// AuditEntryModelFromDomain creates a new persistence model from a domain audit Entry
func AuditEntryModelFromDomain(e *audit.Entry) *AuditEntryModel {
	m := &AuditEntryModel{}
	m.FromDomain(e)
	return m
}
