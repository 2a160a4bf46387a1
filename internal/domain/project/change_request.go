package project

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/portal/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// ChangeRequestStatus represents the state of a client-raised variation
type ChangeRequestStatus string

const (
	ChangeRequestPending  ChangeRequestStatus = "pending"
	ChangeRequestInReview ChangeRequestStatus = "in_review"
	ChangeRequestApproved ChangeRequestStatus = "approved"
	ChangeRequestDeclined ChangeRequestStatus = "declined"
)

// ChangeRequest is a variation the client raises against their project; an
// admin moves it through review to a terminal decision. Unlike documents and
// additional work, the admin is the decider here, and an intermediate
// in_review state exists.
type ChangeRequest struct {
	shared.BaseAggregateRoot
	ProjectID     uuid.UUID
	Title         string
	Description   string
	RequestedBy   uuid.UUID
	Status        ChangeRequestStatus
	EstimatedCost *decimal.Decimal
	EstimatedTime string
	AdminResponse string
	RespondedBy   *uuid.UUID
	RespondedAt   *time.Time
}

// NewChangeRequest creates a pending change request
func NewChangeRequest(projectID uuid.UUID, title, description string, requestedBy uuid.UUID) (*ChangeRequest, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, shared.NewDomainError("INVALID_TITLE", "Change request title cannot be empty")
	}
	description = strings.TrimSpace(description)
	if description == "" {
		return nil, shared.NewDomainError("INVALID_DESCRIPTION", "Change request description cannot be empty")
	}
	if projectID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PROJECT", "Project ID cannot be empty")
	}
	if requestedBy == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_REQUESTER", "Requester ID cannot be empty")
	}

	return &ChangeRequest{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		ProjectID:         projectID,
		Title:             title,
		Description:       description,
		RequestedBy:       requestedBy,
		Status:            ChangeRequestPending,
	}, nil
}

// StartReview moves a pending request into review
func (c *ChangeRequest) StartReview(actorID uuid.UUID) error {
	if c.Status != ChangeRequestPending {
		return shared.ErrConflictingState
	}
	c.Status = ChangeRequestInReview
	c.RespondedBy = &actorID
	c.touch()
	return nil
}

// Respond records the admin's terminal decision with an optional estimate.
// Pending and in_review requests may be decided; terminal states are final.
func (c *ChangeRequest) Respond(decision Decision, actorID uuid.UUID, response string, estimatedCost *decimal.Decimal, estimatedTime string) error {
	if !decision.IsValid() {
		return shared.NewDomainError("INVALID_DECISION", "Decision must be approved or declined")
	}
	if c.Status == ChangeRequestApproved || c.Status == ChangeRequestDeclined {
		return shared.ErrConflictingState
	}
	if estimatedCost != nil && estimatedCost.IsNegative() {
		return shared.NewDomainError("INVALID_COST", "Estimated cost cannot be negative")
	}

	now := time.Now()
	c.Status = ChangeRequestStatus(decision)
	c.AdminResponse = strings.TrimSpace(response)
	c.EstimatedCost = estimatedCost
	c.EstimatedTime = strings.TrimSpace(estimatedTime)
	c.RespondedBy = &actorID
	c.RespondedAt = &now
	c.touch()
	return nil
}

func (c *ChangeRequest) touch() {
	c.UpdatedAt = time.Now()
	c.IncrementVersion()
}
