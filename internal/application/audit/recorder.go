// Package audit provides the application-level audit recorder. Every
// mutating project operation records what happened; the trail is
// append-only.
package audit

import (
	"context"

	"github.com/google/uuid"
	"github.com/portal/backend/internal/domain/audit"
	"github.com/portal/backend/internal/domain/authz"
	"github.com/portal/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// Recorder appends audit entries. Append failures are logged and swallowed:
// the mutation being audited has already succeeded, and the trail must never
// fail it retroactively.
type Recorder struct {
	repo   audit.Repository
	logger *zap.Logger
}

// NewRecorder creates an audit recorder
func NewRecorder(repo audit.Repository, logger *zap.Logger) *Recorder {
	return &Recorder{repo: repo, logger: logger}
}

// Record appends an audit entry for a mutating action. A zero projectID
// records a project-less mutation, such as a client invitation.
func (r *Recorder) Record(ctx context.Context, projectID, actorID uuid.UUID, action, entityType string, entityID uuid.UUID, details string) {
	var projectRef *uuid.UUID
	if projectID != uuid.Nil {
		projectRef = &projectID
	}

	entry, err := audit.NewEntry(projectRef, actorID, action, entityType, entityID, details)
	if err != nil {
		r.logger.Warn("Dropping invalid audit entry",
			zap.String("action", action),
			zap.Error(err))
		return
	}

	if err := r.repo.Append(ctx, entry); err != nil {
		r.logger.Warn("Failed to append audit entry",
			zap.String("project_id", projectID.String()),
			zap.String("action", action),
			zap.Error(err))
	}
}

// ListByProject returns a project's audit trail, newest first. Admin only.
func (r *Recorder) ListByProject(ctx context.Context, caller authz.Caller, projectID uuid.UUID, limit int) ([]*audit.Entry, error) {
	if err := authz.Authorize(caller, uuid.Nil, authz.OpWriteAdminOnly); err != nil {
		return nil, err
	}
	if projectID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PROJECT", "Project ID cannot be empty")
	}

	entries, err := r.repo.FindByProjectID(ctx, projectID, limit)
	if err != nil {
		return nil, err
	}
	return entries, nil
}
