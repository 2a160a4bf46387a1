package project

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/portal/backend/internal/domain/shared"
)

// Photo is a project artifact either party may upload: progress shots from
// admins, reference pictures from the owning client.
type Photo struct {
	shared.BaseAggregateRoot
	ProjectID  uuid.UUID
	Title      string
	Caption    string
	Category   string
	FileKey    string
	FileName   string
	UploadedBy uuid.UUID
	IsVisible  bool
}

// NewPhoto creates a photo
func NewPhoto(projectID uuid.UUID, title, fileKey, fileName string, uploadedBy uuid.UUID, isVisible bool) (*Photo, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, shared.NewDomainError("INVALID_TITLE", "Photo title cannot be empty")
	}
	if projectID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PROJECT", "Project ID cannot be empty")
	}
	if fileKey == "" {
		return nil, shared.NewDomainError("INVALID_FILE", "File key cannot be empty")
	}
	if uploadedBy == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_UPLOADER", "Uploader ID cannot be empty")
	}

	return &Photo{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		ProjectID:         projectID,
		Title:             title,
		FileKey:           fileKey,
		FileName:          fileName,
		UploadedBy:        uploadedBy,
		IsVisible:         isVisible,
	}, nil
}

// SetCaption sets the photo caption
func (p *Photo) SetCaption(caption string) {
	p.Caption = strings.TrimSpace(caption)
	p.touch()
}

// SetCategory sets the photo category
func (p *Photo) SetCategory(category string) {
	p.Category = strings.TrimSpace(category)
	p.touch()
}

// SetVisibility toggles the client-facing visibility gate
func (p *Photo) SetVisibility(visible bool) {
	p.IsVisible = visible
	p.touch()
}

// Visible implements the visibility gate
func (p *Photo) Visible() bool {
	return p.IsVisible
}

func (p *Photo) touch() {
	p.UpdatedAt = time.Now()
	p.IncrementVersion()
}
