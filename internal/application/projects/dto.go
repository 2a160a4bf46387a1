package projects

import (
	"time"

	"github.com/google/uuid"
	"github.com/portal/backend/internal/domain/project"
	"github.com/shopspring/decimal"
)

// CreateProjectInput contains the input for project creation
type CreateProjectInput struct {
	Name        string
	Description string
	ClientID    uuid.UUID
	Budget      *decimal.Decimal
	StartDate   *time.Time
	EndDate     *time.Time
}

// UpdateProjectInput contains the input for project updates. Nil pointers
// leave the corresponding field unchanged; Status empty means no transition.
type UpdateProjectInput struct {
	Name        *string
	Description *string
	Budget      *decimal.Decimal
	StartDate   *time.Time
	EndDate     *time.Time
	Status      project.Status
}

// UploadDocumentInput contains the input for document creation
type UploadDocumentInput struct {
	ProjectID        uuid.UUID
	Title            string
	Description      string
	Type             project.DocumentType
	FileKey          string
	FileName         string
	FileSize         int64
	IsVisible        bool
	RequiresApproval bool
}

// DocumentView is a document prepared for the caller: uploader enrichment
// and a presigned download URL on top of the domain record.
type DocumentView struct {
	*project.Document
	UploaderName string
	DownloadURL  string
}

// UploadPhotoInput contains the input for photo creation
type UploadPhotoInput struct {
	ProjectID uuid.UUID
	Title     string
	Caption   string
	Category  string
	FileKey   string
	FileName  string
	IsVisible bool
}

// PhotoView is a photo prepared for the caller
type PhotoView struct {
	*project.Photo
	UploaderName string
	DownloadURL  string
}

// AddNoteInput contains the input for note creation
type AddNoteInput struct {
	ProjectID uuid.UUID
	Content   string
	IsVisible bool
	IsPinned  bool
}

// UpdateNoteInput contains the input for note updates
type UpdateNoteInput struct {
	Content   *string
	IsVisible *bool
	IsPinned  *bool
}

// NoteView is a note prepared for the caller
type NoteView struct {
	*project.Note
	AuthorName string
}

// CreateMilestoneInput contains the input for milestone creation
type CreateMilestoneInput struct {
	ProjectID   uuid.UUID
	Title       string
	Description string
	DueDate     *time.Time
}

// UpdateMilestoneInput contains the input for milestone updates
type UpdateMilestoneInput struct {
	Title       string
	Description string
	DueDate     *time.Time
}

// CreateAdditionalWorkInput contains the input for additional-work creation
type CreateAdditionalWorkInput struct {
	ProjectID   uuid.UUID
	Title       string
	Description string
	Price       decimal.Decimal
	FileKey     string
	FileName    string
}

// AdditionalWorkView is an additional-work item prepared for the caller
type AdditionalWorkView struct {
	*project.AdditionalWork
	CreatorName string
	DownloadURL string
}

// CreateChangeRequestInput contains the input for change-request creation
type CreateChangeRequestInput struct {
	ProjectID   uuid.UUID
	Title       string
	Description string
}

// RespondChangeRequestInput contains the admin's terminal decision
type RespondChangeRequestInput struct {
	Decision      project.Decision
	Response      string
	EstimatedCost *decimal.Decimal
	EstimatedTime string
}

// ChangeRequestView is a change request prepared for the caller
type ChangeRequestView struct {
	*project.ChangeRequest
	RequesterName string
}

// UploadURLResult carries a presigned upload target
type UploadURLResult struct {
	URL       string
	FileKey   string
	ExpiresAt time.Time
}
