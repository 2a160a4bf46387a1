package project

import (
	"time"

	"github.com/google/uuid"
	"github.com/portal/backend/internal/domain/shared"
)

// ApprovalStatus represents the state of a client approval
type ApprovalStatus string

const (
	ApprovalPending  ApprovalStatus = "pending"
	ApprovalApproved ApprovalStatus = "approved"
	ApprovalDeclined ApprovalStatus = "declined"
)

// Decision is a terminal approval outcome requested by the client
type Decision string

const (
	DecisionApproved Decision = "approved"
	DecisionDeclined Decision = "declined"
)

// IsValid reports whether the decision is a known terminal outcome
func (d Decision) IsValid() bool {
	return d == DecisionApproved || d == DecisionDeclined
}

// Approval tracks the pending -> approved|declined state machine shared by
// documents and additional-work items. Both terminal states are final: a
// second decision attempt is rejected with CONFLICTING_STATE rather than
// silently overwriting the recorded outcome. This is the uniform policy for
// every approval-bearing artifact in the portal.
type Approval struct {
	Status     ApprovalStatus
	ApprovedBy *uuid.UUID
	ApprovedAt *time.Time
	Notes      string
}

// NewPendingApproval returns an approval awaiting a client decision
func NewPendingApproval() Approval {
	return Approval{Status: ApprovalPending}
}

// Decide applies a terminal decision. Only a pending approval may be
// decided; deciding an already-decided approval fails with
// CONFLICTING_STATE regardless of whether the new decision matches the
// recorded one.
func (a *Approval) Decide(decision Decision, actorID uuid.UUID, notes string) error {
	if !decision.IsValid() {
		return shared.NewDomainError("INVALID_DECISION", "Decision must be approved or declined")
	}
	if actorID == uuid.Nil {
		return shared.NewDomainError("INVALID_ACTOR", "Actor ID cannot be empty")
	}
	if a.Status != ApprovalPending {
		return shared.ErrConflictingState
	}

	now := time.Now()
	a.Status = ApprovalStatus(decision)
	a.ApprovedBy = &actorID
	a.ApprovedAt = &now
	a.Notes = notes

	return nil
}

// IsDecided reports whether the approval reached a terminal state
func (a *Approval) IsDecided() bool {
	return a.Status == ApprovalApproved || a.Status == ApprovalDeclined
}
