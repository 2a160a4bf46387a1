package project

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// ProjectRepository defines the interface for project persistence
type ProjectRepository interface {
	Create(ctx context.Context, project *Project) error
	Update(ctx context.Context, project *Project) error
	FindByID(ctx context.Context, id uuid.UUID) (*Project, error)
	FindAll(ctx context.Context) ([]*Project, error)
	// FindByClientID finds a client's projects via the client index
	FindByClientID(ctx context.Context, clientID uuid.UUID) ([]*Project, error)
}

// DocumentRepository defines the interface for document persistence
type DocumentRepository interface {
	Create(ctx context.Context, doc *Document) error
	Update(ctx context.Context, doc *Document) error
	FindByID(ctx context.Context, id uuid.UUID) (*Document, error)
	FindByProjectID(ctx context.Context, projectID uuid.UUID) ([]*Document, error)
	// CountVisibleCreatedAfter counts client-visible documents for a project
	// created strictly after the given instant. The digest engine's
	// "new since" query; pushed down so the hot path never loads rows.
	CountVisibleCreatedAfter(ctx context.Context, projectID uuid.UUID, after time.Time) (int64, error)
}

// PhotoRepository defines the interface for photo persistence
type PhotoRepository interface {
	Create(ctx context.Context, photo *Photo) error
	Update(ctx context.Context, photo *Photo) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*Photo, error)
	FindByProjectID(ctx context.Context, projectID uuid.UUID) ([]*Photo, error)
	CountVisibleCreatedAfter(ctx context.Context, projectID uuid.UUID, after time.Time) (int64, error)
}

// NoteRepository defines the interface for note persistence
type NoteRepository interface {
	Create(ctx context.Context, note *Note) error
	Update(ctx context.Context, note *Note) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*Note, error)
	// FindByProjectID returns notes newest-first
	FindByProjectID(ctx context.Context, projectID uuid.UUID) ([]*Note, error)
}

// MilestoneRepository defines the interface for milestone persistence
type MilestoneRepository interface {
	Create(ctx context.Context, milestone *Milestone) error
	Update(ctx context.Context, milestone *Milestone) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*Milestone, error)
	// FindByProjectID returns milestones ordered by SortOrder ascending
	FindByProjectID(ctx context.Context, projectID uuid.UUID) ([]*Milestone, error)
	// MaxSortOrder returns the highest sort order in use for a project,
	// zero when the project has no milestones
	MaxSortOrder(ctx context.Context, projectID uuid.UUID) (int, error)
}

// AdditionalWorkRepository defines the interface for additional-work persistence
type AdditionalWorkRepository interface {
	Create(ctx context.Context, work *AdditionalWork) error
	Update(ctx context.Context, work *AdditionalWork) error
	FindByID(ctx context.Context, id uuid.UUID) (*AdditionalWork, error)
	FindByProjectID(ctx context.Context, projectID uuid.UUID) ([]*AdditionalWork, error)
}

// ChangeRequestRepository defines the interface for change-request persistence
type ChangeRequestRepository interface {
	Create(ctx context.Context, cr *ChangeRequest) error
	Update(ctx context.Context, cr *ChangeRequest) error
	FindByID(ctx context.Context, id uuid.UUID) (*ChangeRequest, error)
	FindByProjectID(ctx context.Context, projectID uuid.UUID) ([]*ChangeRequest, error)
}
