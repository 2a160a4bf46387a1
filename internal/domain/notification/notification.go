package notification

import (
	"strings"

	"github.com/google/uuid"
	"github.com/portal/backend/internal/domain/shared"
)

// Kind enumerates the notification event kinds
type Kind string

const (
	KindDocumentUploaded        Kind = "document_uploaded"
	KindPhotoUploaded           Kind = "photo_uploaded"
	KindNoteAdded               Kind = "note_added"
	KindApprovalRequested       Kind = "approval_requested"
	KindApprovalCompleted       Kind = "approval_completed"
	KindProjectUpdated          Kind = "project_updated"
	KindAdditionalWorkRequested Kind = "additional_work_requested"
)

// IsValid reports whether the kind is known
func (k Kind) IsValid() bool {
	switch k {
	case KindDocumentUploaded, KindPhotoUploaded, KindNoteAdded,
		KindApprovalRequested, KindApprovalCompleted, KindProjectUpdated,
		KindAdditionalWorkRequested:
		return true
	}
	return false
}

// Notification is a system-created message to a user about a project event.
// Rows are immutable once written except for the IsRead and EmailSent flags;
// content is never rewritten. A project_updated row doubles as the digest
// high-water mark for its (user, project) pair.
type Notification struct {
	shared.BaseEntity
	UserID    uuid.UUID
	ProjectID uuid.UUID
	Kind      Kind
	Title     string
	Message   string
	IsRead    bool
	EmailSent bool
}

// New creates an unread, unsent notification
func New(userID, projectID uuid.UUID, kind Kind, title, message string) (*Notification, error) {
	if userID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_RECIPIENT", "Recipient ID cannot be empty")
	}
	if projectID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PROJECT", "Project ID cannot be empty")
	}
	if !kind.IsValid() {
		return nil, shared.NewDomainError("INVALID_KIND", "Unknown notification kind")
	}
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, shared.NewDomainError("INVALID_TITLE", "Notification title cannot be empty")
	}

	return &Notification{
		BaseEntity: shared.NewBaseEntity(),
		UserID:     userID,
		ProjectID:  projectID,
		Kind:       kind,
		Title:      title,
		Message:    strings.TrimSpace(message),
	}, nil
}

// MarkRead sets the read flag
func (n *Notification) MarkRead() {
	n.IsRead = true
}

// MarkEmailSent sets the email-sent flag
func (n *Notification) MarkEmailSent() {
	n.EmailSent = true
}
