package project

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/portal/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Status represents the lifecycle status of a project
type Status string

const (
	StatusPlanning   Status = "planning"
	StatusInProgress Status = "in_progress"
	StatusReview     Status = "review"
	StatusCompleted  Status = "completed"
	StatusOnHold     Status = "on_hold"
)

// IsValid reports whether the status is one of the known statuses
func (s Status) IsValid() bool {
	switch s {
	case StatusPlanning, StatusInProgress, StatusReview, StatusCompleted, StatusOnHold:
		return true
	}
	return false
}

// Project is the aggregate root every artifact hangs off. A project is
// owned by exactly one client user; any admin may manage it.
type Project struct {
	shared.BaseAggregateRoot
	Name        string
	Description string
	ClientID    uuid.UUID
	Status      Status
	CreatedBy   uuid.UUID
	Budget      *decimal.Decimal
	StartDate   *time.Time
	EndDate     *time.Time
}

// NewProject creates a project in planning status
func NewProject(name string, clientID, createdBy uuid.UUID) (*Project, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Project name cannot be empty")
	}
	if len(name) > 200 {
		return nil, shared.NewDomainError("INVALID_NAME", "Project name cannot exceed 200 characters")
	}
	if clientID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_CLIENT", "Client ID cannot be empty")
	}
	if createdBy == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_CREATOR", "Creator ID cannot be empty")
	}

	return &Project{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		ClientID:          clientID,
		Status:            StatusPlanning,
		CreatedBy:         createdBy,
	}, nil
}

// SetDescription sets the project description
func (p *Project) SetDescription(description string) {
	p.Description = strings.TrimSpace(description)
	p.touch()
}

// SetBudget sets the project budget
func (p *Project) SetBudget(budget decimal.Decimal) error {
	if budget.IsNegative() {
		return shared.NewDomainError("INVALID_BUDGET", "Budget cannot be negative")
	}
	p.Budget = &budget
	p.touch()
	return nil
}

// SetSchedule sets the start and end dates
func (p *Project) SetSchedule(start, end *time.Time) error {
	if start != nil && end != nil && end.Before(*start) {
		return shared.NewDomainError("INVALID_SCHEDULE", "End date cannot precede start date")
	}
	p.StartDate = start
	p.EndDate = end
	p.touch()
	return nil
}

// ChangeStatus transitions the project to a new status.
// Returns true if the status actually changed.
func (p *Project) ChangeStatus(status Status) (bool, error) {
	if !status.IsValid() {
		return false, shared.NewDomainError("INVALID_STATUS", "Unknown project status")
	}
	if p.Status == status {
		return false, nil
	}
	p.Status = status
	p.touch()
	return true, nil
}

// Rename changes the project name
func (p *Project) Rename(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Project name cannot be empty")
	}
	if len(name) > 200 {
		return shared.NewDomainError("INVALID_NAME", "Project name cannot exceed 200 characters")
	}
	p.Name = name
	p.touch()
	return nil
}

func (p *Project) touch() {
	p.UpdatedAt = time.Now()
	p.IncrementVersion()
}
