package project

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/portal/backend/internal/domain/shared"
)

// Note is a project update written by an admin. Visible notes surface in the
// client's feed; hidden ones are internal working notes.
type Note struct {
	shared.BaseAggregateRoot
	ProjectID uuid.UUID
	Content   string
	CreatedBy uuid.UUID
	IsVisible bool
	IsPinned  bool
}

// NewNote creates a note
func NewNote(projectID uuid.UUID, content string, createdBy uuid.UUID, isVisible, isPinned bool) (*Note, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, shared.NewDomainError("INVALID_CONTENT", "Note content cannot be empty")
	}
	if projectID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PROJECT", "Project ID cannot be empty")
	}
	if createdBy == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_CREATOR", "Creator ID cannot be empty")
	}

	return &Note{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		ProjectID:         projectID,
		Content:           content,
		CreatedBy:         createdBy,
		IsVisible:         isVisible,
		IsPinned:          isPinned,
	}, nil
}

// UpdateContent replaces the note content
func (n *Note) UpdateContent(content string) error {
	content = strings.TrimSpace(content)
	if content == "" {
		return shared.NewDomainError("INVALID_CONTENT", "Note content cannot be empty")
	}
	n.Content = content
	n.touch()
	return nil
}

// SetVisibility toggles the client-facing visibility gate
func (n *Note) SetVisibility(visible bool) {
	n.IsVisible = visible
	n.touch()
}

// SetPinned toggles the pinned flag
func (n *Note) SetPinned(pinned bool) {
	n.IsPinned = pinned
	n.touch()
}

// Summary returns a truncated content preview for audit details
func (n *Note) Summary() string {
	const max = 100
	if len(n.Content) <= max {
		return n.Content
	}
	return n.Content[:max] + "..."
}

// Visible implements the visibility gate
func (n *Note) Visible() bool {
	return n.IsVisible
}

func (n *Note) touch() {
	n.UpdatedAt = time.Now()
	n.IncrementVersion()
}
