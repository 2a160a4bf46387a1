package project

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/portal/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// AdditionalWork is a priced proposal an admin raises against a project.
// The owning client approves or declines it through the shared approval
// state machine. Additional work is always visible to the client; it exists
// to be decided on.
type AdditionalWork struct {
	shared.BaseAggregateRoot
	ProjectID   uuid.UUID
	Title       string
	Description string
	Price       decimal.Decimal
	FileKey     string
	FileName    string
	CreatedBy   uuid.UUID
	Approval    Approval `gorm:"embedded;embeddedPrefix:approval_"`
}

// NewAdditionalWork creates a proposal awaiting client decision
func NewAdditionalWork(projectID uuid.UUID, title, description string, price decimal.Decimal, createdBy uuid.UUID) (*AdditionalWork, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, shared.NewDomainError("INVALID_TITLE", "Additional work title cannot be empty")
	}
	description = strings.TrimSpace(description)
	if description == "" {
		return nil, shared.NewDomainError("INVALID_DESCRIPTION", "Additional work description cannot be empty")
	}
	if price.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Price cannot be negative")
	}
	if projectID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PROJECT", "Project ID cannot be empty")
	}
	if createdBy == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_CREATOR", "Creator ID cannot be empty")
	}

	return &AdditionalWork{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		ProjectID:         projectID,
		Title:             title,
		Description:       description,
		Price:             price,
		CreatedBy:         createdBy,
		Approval:          NewPendingApproval(),
	}, nil
}

// AttachFile attaches a supporting file to the proposal
func (w *AdditionalWork) AttachFile(fileKey, fileName string) {
	w.FileKey = fileKey
	w.FileName = fileName
	w.UpdatedAt = time.Now()
	w.IncrementVersion()
}

// Decide applies the client's decision
func (w *AdditionalWork) Decide(decision Decision, actorID uuid.UUID, notes string) error {
	if err := w.Approval.Decide(decision, actorID, notes); err != nil {
		return err
	}
	w.UpdatedAt = time.Now()
	w.IncrementVersion()
	return nil
}
