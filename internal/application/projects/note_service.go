package projects

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/portal/backend/internal/application/notifications"
	"github.com/portal/backend/internal/domain/audit"
	"github.com/portal/backend/internal/domain/authz"
	"github.com/portal/backend/internal/domain/identity"
	"github.com/portal/backend/internal/domain/notification"
	"github.com/portal/backend/internal/domain/project"
	"go.uber.org/zap"
)

// NoteService handles project note operations. Notes are admin-authored;
// only visible notes reach the client feed.
type NoteService struct {
	projectRepo project.ProjectRepository
	noteRepo    project.NoteRepository
	profileRepo identity.ProfileRepository
	notifier    EventNotifier
	recorder    AuditRecorder
	logger      *zap.Logger
}

// NewNoteService creates a note service
func NewNoteService(
	projectRepo project.ProjectRepository,
	noteRepo project.NoteRepository,
	profileRepo identity.ProfileRepository,
	notifier EventNotifier,
	recorder AuditRecorder,
	logger *zap.Logger,
) *NoteService {
	return &NoteService{
		projectRepo: projectRepo,
		noteRepo:    noteRepo,
		profileRepo: profileRepo,
		notifier:    notifier,
		recorder:    recorder,
		logger:      logger,
	}
}

// Add creates a note. Admin only. A visible note notifies the owning client.
func (s *NoteService) Add(ctx context.Context, caller authz.Caller, input AddNoteInput) (*project.Note, error) {
	if err := authz.Authorize(caller, uuid.Nil, authz.OpWriteAdminOnly); err != nil {
		return nil, err
	}

	proj, err := s.projectRepo.FindByID(ctx, input.ProjectID)
	if err != nil {
		return nil, err
	}

	note, err := project.NewNote(input.ProjectID, input.Content, caller.UserID, input.IsVisible, input.IsPinned)
	if err != nil {
		return nil, err
	}
	if err := s.noteRepo.Create(ctx, note); err != nil {
		return nil, err
	}

	s.recorder.Record(ctx, note.ProjectID, caller.UserID, audit.ActionNoteAdded,
		audit.EntityNote, note.ID,
		fmt.Sprintf("Added note: %s", note.Summary()))

	if note.IsVisible {
		if err := s.notifier.NotifyEvent(ctx, notifications.Event{
			Recipient: proj.ClientID,
			Actor:     caller.UserID,
			ProjectID: note.ProjectID,
			Kind:      notification.KindNoteAdded,
			Title:     "New Project Update",
			Message:   "A new update has been added to your project.",
		}); err != nil {
			s.logger.Warn("Note notification failed",
				zap.String("note_id", note.ID.String()),
				zap.Error(err))
		}
	}

	return note, nil
}

// List returns a project's notes the caller may see, newest first with
// author enrichment after the visibility filter
func (s *NoteService) List(ctx context.Context, caller authz.Caller, projectID uuid.UUID) ([]*NoteView, error) {
	proj, err := s.projectRepo.FindByID(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if err := authz.Authorize(caller, proj.ClientID, authz.OpReadOwn); err != nil {
		return nil, err
	}

	notes, err := s.noteRepo.FindByProjectID(ctx, projectID)
	if err != nil {
		return nil, err
	}
	notes = project.FilterVisible(notes, caller.Role)

	views := make([]*NoteView, 0, len(notes))
	names := newNameResolver(s.profileRepo)
	for _, note := range notes {
		views = append(views, &NoteView{
			Note:       note,
			AuthorName: names.resolve(ctx, note.CreatedBy),
		})
	}
	return views, nil
}

// Update applies note field updates. Admin only.
func (s *NoteService) Update(ctx context.Context, caller authz.Caller, noteID uuid.UUID, input UpdateNoteInput) (*project.Note, error) {
	if err := authz.Authorize(caller, uuid.Nil, authz.OpWriteAdminOnly); err != nil {
		return nil, err
	}

	note, err := s.noteRepo.FindByID(ctx, noteID)
	if err != nil {
		return nil, err
	}

	if input.Content != nil {
		if err := note.UpdateContent(*input.Content); err != nil {
			return nil, err
		}
	}
	if input.IsVisible != nil {
		note.SetVisibility(*input.IsVisible)
	}
	if input.IsPinned != nil {
		note.SetPinned(*input.IsPinned)
	}

	if err := s.noteRepo.Update(ctx, note); err != nil {
		return nil, err
	}

	s.recorder.Record(ctx, note.ProjectID, caller.UserID, audit.ActionNoteUpdated,
		audit.EntityNote, note.ID,
		fmt.Sprintf("Updated note: %s", note.Summary()))

	return note, nil
}

// Delete removes a note. Admin only.
func (s *NoteService) Delete(ctx context.Context, caller authz.Caller, noteID uuid.UUID) error {
	if err := authz.Authorize(caller, uuid.Nil, authz.OpWriteAdminOnly); err != nil {
		return err
	}

	note, err := s.noteRepo.FindByID(ctx, noteID)
	if err != nil {
		return err
	}

	if err := s.noteRepo.Delete(ctx, noteID); err != nil {
		return err
	}

	s.recorder.Record(ctx, note.ProjectID, caller.UserID, audit.ActionNoteDeleted,
		audit.EntityNote, note.ID,
		fmt.Sprintf("Deleted note: %s", note.Summary()))

	return nil
}
