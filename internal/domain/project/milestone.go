package project

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/portal/backend/internal/domain/shared"
)

// Milestone is an ordered step in a project plan. Milestones are always
// client-visible; ordering is per project via SortOrder.
type Milestone struct {
	shared.BaseAggregateRoot
	ProjectID   uuid.UUID
	Title       string
	Description string
	DueDate     *time.Time
	IsCompleted bool
	CompletedAt *time.Time
	SortOrder   int
}

// NewMilestone creates a milestone with the given per-project sort order
func NewMilestone(projectID uuid.UUID, title string, sortOrder int) (*Milestone, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, shared.NewDomainError("INVALID_TITLE", "Milestone title cannot be empty")
	}
	if projectID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PROJECT", "Project ID cannot be empty")
	}
	if sortOrder < 1 {
		return nil, shared.NewDomainError("INVALID_ORDER", "Sort order must be positive")
	}

	return &Milestone{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		ProjectID:         projectID,
		Title:             title,
		SortOrder:         sortOrder,
	}, nil
}

// Update updates the editable milestone fields
func (m *Milestone) Update(title, description string, dueDate *time.Time) error {
	title = strings.TrimSpace(title)
	if title == "" {
		return shared.NewDomainError("INVALID_TITLE", "Milestone title cannot be empty")
	}
	m.Title = title
	m.Description = strings.TrimSpace(description)
	m.DueDate = dueDate
	m.touch()
	return nil
}

// SetCompleted marks the milestone complete or reopens it, maintaining the
// completion timestamp in lockstep with the flag.
func (m *Milestone) SetCompleted(completed bool) {
	m.IsCompleted = completed
	if completed {
		now := time.Now()
		m.CompletedAt = &now
	} else {
		m.CompletedAt = nil
	}
	m.touch()
}

func (m *Milestone) touch() {
	m.UpdatedAt = time.Now()
	m.IncrementVersion()
}
