package audit

import (
	"strings"

	"github.com/google/uuid"
	"github.com/portal/backend/internal/domain/shared"
)

// Action names for the audit trail
const (
	ActionProjectCreated        = "project_created"
	ActionProjectUpdated        = "project_updated"
	ActionStatusChanged         = "status_changed"
	ActionDocumentUploaded      = "document_uploaded"
	ActionDocumentVisibility    = "document_visibility_changed"
	ActionPhotoUploaded         = "photo_uploaded"
	ActionPhotoVisibility       = "photo_visibility_changed"
	ActionPhotoDeleted          = "photo_deleted"
	ActionNoteAdded             = "note_added"
	ActionNoteUpdated           = "note_updated"
	ActionNoteDeleted           = "note_deleted"
	ActionMilestoneCreated      = "milestone_created"
	ActionMilestoneCompleted    = "milestone_completed"
	ActionApprovalDecided       = "approval_decided"
	ActionAdditionalWorkCreated = "additional_work_created"
	ActionChangeRequestCreated  = "change_request_created"
	ActionChangeRequestDecided  = "change_request_decided"
	ActionSummarySent           = "summary_sent"
	ActionClientInvited         = "client_invited"
)

// Entity type names identifying what an entry acted on
const (
	EntityProject        = "project"
	EntityDocument       = "document"
	EntityPhoto          = "photo"
	EntityNote           = "note"
	EntityMilestone      = "milestone"
	EntityAdditionalWork = "additional_work"
	EntityChangeRequest  = "change_request"
	EntityUser           = "user"
)

// Entry is one append-only audit record. Entries are never updated or
// deleted after creation. ProjectID is nil for mutations outside any
// project, such as client invitations.
type Entry struct {
	shared.BaseEntity
	ProjectID  *uuid.UUID
	ActorID    uuid.UUID
	Action     string
	EntityType string
	EntityID   uuid.UUID
	Details    string
}

// NewEntry creates an audit entry
func NewEntry(projectID *uuid.UUID, actorID uuid.UUID, action, entityType string, entityID uuid.UUID, details string) (*Entry, error) {
	if projectID != nil && *projectID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PROJECT", "Project ID cannot be empty")
	}
	if actorID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_ACTOR", "Actor ID cannot be empty")
	}
	action = strings.TrimSpace(action)
	if action == "" {
		return nil, shared.NewDomainError("INVALID_ACTION", "Audit action cannot be empty")
	}
	entityType = strings.TrimSpace(entityType)
	if entityType == "" {
		return nil, shared.NewDomainError("INVALID_ENTITY_TYPE", "Audit entity type cannot be empty")
	}
	if entityID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_ENTITY", "Audit entity ID cannot be empty")
	}

	return &Entry{
		BaseEntity: shared.NewBaseEntity(),
		ProjectID:  projectID,
		ActorID:    actorID,
		Action:     action,
		EntityType: entityType,
		EntityID:   entityID,
		Details:    details,
	}, nil
}
