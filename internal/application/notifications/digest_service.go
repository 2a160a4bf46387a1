package notifications

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	appaudit "github.com/portal/backend/internal/application/audit"
	"github.com/portal/backend/internal/domain/audit"
	"github.com/portal/backend/internal/domain/authz"
	"github.com/portal/backend/internal/domain/identity"
	"github.com/portal/backend/internal/domain/notification"
	"github.com/portal/backend/internal/domain/project"
	"github.com/portal/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// DigestResult reports whether a digest email went out and what it said
type DigestResult struct {
	Sent    bool
	Summary string
}

// DigestService computes and sends the per-project activity digest for the
// owning client. The most recent project_updated notification row is the
// high-water mark: everything client-visible created strictly after it is
// "new". The row is inserted only after a successful send, so a failed send
// leaves the window open for the next attempt.
type DigestService struct {
	projectRepo      project.ProjectRepository
	documentRepo     project.DocumentRepository
	photoRepo        project.PhotoRepository
	notificationRepo notification.Repository
	userRepo         identity.UserRepository
	sender           EmailSender
	guard            shared.IdempotencyStore
	guardTTL         time.Duration
	recorder         *appaudit.Recorder
	logger           *zap.Logger
}

// NewDigestService creates a digest service
func NewDigestService(
	projectRepo project.ProjectRepository,
	documentRepo project.DocumentRepository,
	photoRepo project.PhotoRepository,
	notificationRepo notification.Repository,
	userRepo identity.UserRepository,
	sender EmailSender,
	guard shared.IdempotencyStore,
	guardTTL time.Duration,
	recorder *appaudit.Recorder,
	logger *zap.Logger,
) *DigestService {
	if guardTTL <= 0 {
		guardTTL = time.Minute
	}
	return &DigestService{
		projectRepo:      projectRepo,
		documentRepo:     documentRepo,
		photoRepo:        photoRepo,
		notificationRepo: notificationRepo,
		userRepo:         userRepo,
		sender:           sender,
		guard:            guard,
		guardTTL:         guardTTL,
		recorder:         recorder,
		logger:           logger,
	}
}

// ComputeAndSend runs the digest for one project. Admin only.
func (s *DigestService) ComputeAndSend(ctx context.Context, caller authz.Caller, projectID uuid.UUID) (*DigestResult, error) {
	proj, err := s.projectRepo.FindByID(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if err := authz.Authorize(caller, proj.ClientID, authz.OpWriteAdminOnly); err != nil {
		return nil, err
	}

	client, err := s.userRepo.FindByID(ctx, proj.ClientID)
	if err != nil {
		return nil, err
	}
	if client.Email == "" {
		return &DigestResult{Sent: false}, nil
	}

	// Concurrency guard keyed by (client, project). Guard errors degrade to
	// the high-water-mark re-check rather than failing the digest.
	key := fmt.Sprintf("%s:%s", proj.ClientID, projectID)
	acquired, err := s.guard.MarkProcessed(ctx, key, s.guardTTL)
	if err != nil {
		s.logger.Warn("Digest guard unavailable, proceeding on high-water mark alone",
			zap.String("project_id", projectID.String()),
			zap.Error(err))
		acquired = true
	} else if !acquired {
		s.logger.Info("Digest already in flight, skipping",
			zap.String("project_id", projectID.String()))
		return &DigestResult{Sent: false}, nil
	}
	defer func() {
		if err := s.guard.Release(ctx, key); err != nil {
			s.logger.Warn("Failed to release digest guard", zap.Error(err))
		}
	}()

	var since time.Time
	last, err := s.notificationRepo.FindLatestForUserProject(ctx, proj.ClientID, projectID, notification.KindProjectUpdated)
	switch {
	case err == nil:
		since = last.CreatedAt
	case errors.Is(err, shared.ErrNotFound):
		// First digest for this pair: the window opens at zero time.
	default:
		return nil, err
	}

	newDocs, err := s.documentRepo.CountVisibleCreatedAfter(ctx, projectID, since)
	if err != nil {
		return nil, err
	}
	newPhotos, err := s.photoRepo.CountVisibleCreatedAfter(ctx, projectID, since)
	if err != nil {
		return nil, err
	}

	if newDocs+newPhotos == 0 {
		return &DigestResult{Sent: false}, nil
	}

	summary := summaryLine(newDocs, newPhotos)
	subject := fmt.Sprintf("Project Update: %s", proj.Name)
	if err := s.sender.Send(ctx, client.Email, subject, s.renderDigestEmail(proj.Name, summary)); err != nil {
		// High-water mark untouched: the next run covers the same window.
		return nil, err
	}

	rec, err := notification.New(proj.ClientID, projectID, notification.KindProjectUpdated, subject, summary)
	if err != nil {
		return nil, err
	}
	rec.MarkEmailSent()
	if err := s.notificationRepo.Create(ctx, rec); err != nil {
		// Email went out but the mark did not advance; the next digest may
		// repeat this window. Logged rather than failed: the send happened.
		s.logger.Error("Failed to record digest high-water mark",
			zap.String("project_id", projectID.String()),
			zap.Error(err))
	}

	s.recorder.Record(ctx, projectID, caller.UserID, audit.ActionSummarySent,
		audit.EntityProject, projectID, summary)

	s.logger.Info("Digest sent",
		zap.String("project_id", projectID.String()),
		zap.Int64("new_documents", newDocs),
		zap.Int64("new_photos", newPhotos))

	return &DigestResult{Sent: true, Summary: summary}, nil
}

// summaryLine renders "N new document(s), M new photo(s)" with zero
// categories omitted and correct pluralization.
func summaryLine(docs, photos int64) string {
	var parts []string
	if docs > 0 {
		parts = append(parts, fmt.Sprintf("%d new %s", docs, pluralize(docs, "document")))
	}
	if photos > 0 {
		parts = append(parts, fmt.Sprintf("%d new %s", photos, pluralize(photos, "photo")))
	}
	return strings.Join(parts, ", ")
}

func pluralize(n int64, noun string) string {
	if n == 1 {
		return noun
	}
	return noun + "s"
}

func (s *DigestService) renderDigestEmail(projectName, summary string) string {
	return fmt.Sprintf("<h2>%s</h2><p>There has been new activity on your project: %s.</p>",
		projectName, summary)
}
