package project

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/portal/backend/internal/domain/shared"
)

// DocumentType classifies an uploaded document
type DocumentType string

const (
	DocumentQuote    DocumentType = "quote"
	DocumentInvoice  DocumentType = "invoice"
	DocumentContract DocumentType = "contract"
	DocumentOther    DocumentType = "other"
)

// IsValid reports whether the document type is known
func (t DocumentType) IsValid() bool {
	switch t {
	case DocumentQuote, DocumentInvoice, DocumentContract, DocumentOther:
		return true
	}
	return false
}

// Document is a project artifact uploaded by an admin: quotes, invoices,
// contracts. Documents may require a client approval decision.
type Document struct {
	shared.BaseAggregateRoot
	ProjectID        uuid.UUID
	Title            string
	Description      string
	Type             DocumentType
	FileKey          string
	FileName         string
	FileSize         int64
	UploadedBy       uuid.UUID
	IsVisible        bool
	RequiresApproval bool
	Approval         Approval `gorm:"embedded;embeddedPrefix:approval_"`
}

// NewDocumentInput carries the fields needed to create a document
type NewDocumentInput struct {
	ProjectID        uuid.UUID
	Title            string
	Description      string
	Type             DocumentType
	FileKey          string
	FileName         string
	FileSize         int64
	UploadedBy       uuid.UUID
	IsVisible        bool
	RequiresApproval bool
}

// NewDocument creates a document. Approval status is pending only when the
// document requires approval; otherwise the approval is left zero-valued.
func NewDocument(in NewDocumentInput) (*Document, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return nil, shared.NewDomainError("INVALID_TITLE", "Document title cannot be empty")
	}
	if !in.Type.IsValid() {
		return nil, shared.NewDomainError("INVALID_TYPE", "Unknown document type")
	}
	if in.ProjectID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PROJECT", "Project ID cannot be empty")
	}
	if in.FileKey == "" {
		return nil, shared.NewDomainError("INVALID_FILE", "File key cannot be empty")
	}
	if in.UploadedBy == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_UPLOADER", "Uploader ID cannot be empty")
	}

	doc := &Document{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		ProjectID:         in.ProjectID,
		Title:             title,
		Description:       strings.TrimSpace(in.Description),
		Type:              in.Type,
		FileKey:           in.FileKey,
		FileName:          in.FileName,
		FileSize:          in.FileSize,
		UploadedBy:        in.UploadedBy,
		IsVisible:         in.IsVisible,
		RequiresApproval:  in.RequiresApproval,
	}
	if in.RequiresApproval {
		doc.Approval = NewPendingApproval()
	}
	return doc, nil
}

// SetVisibility toggles the client-facing visibility gate
func (d *Document) SetVisibility(visible bool) {
	d.IsVisible = visible
	d.UpdatedAt = time.Now()
	d.IncrementVersion()
}

// Decide applies the client's approval decision
func (d *Document) Decide(decision Decision, actorID uuid.UUID, notes string) error {
	if !d.RequiresApproval {
		return shared.NewDomainError("NOT_APPROVABLE", "Document does not require approval")
	}
	if err := d.Approval.Decide(decision, actorID, notes); err != nil {
		return err
	}
	d.UpdatedAt = time.Now()
	d.IncrementVersion()
	return nil
}

// Visible implements the visibility gate
func (d *Document) Visible() bool {
	return d.IsVisible
}
