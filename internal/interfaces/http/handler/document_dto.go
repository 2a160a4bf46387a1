package handler

import (
	"github.com/portal/backend/internal/application/projects"
	"github.com/portal/backend/internal/domain/project"
)

// UploadDocumentRequest represents a document record creation request.
// The file itself is uploaded separately via a presigned URL; FileKey
// references the stored object.
type UploadDocumentRequest struct {
	Title            string `json:"title" binding:"required" example:"Quote Q-104"`
	Description      string `json:"description" example:"Revised quote for phase two"`
	Type             string `json:"type" binding:"required" enums:"quote,invoice,contract,other"`
	FileKey          string `json:"file_key" binding:"required" example:"projects/550e8400/quote-q104.pdf"`
	FileName         string `json:"file_name" binding:"required" example:"quote-q104.pdf"`
	FileSize         int64  `json:"file_size" binding:"required,min=1" example:"482133"`
	IsVisible        bool   `json:"is_visible"`
	RequiresApproval bool   `json:"requires_approval"`
}

// SetVisibilityRequest toggles client visibility on a resource
type SetVisibilityRequest struct {
	IsVisible *bool `json:"is_visible" binding:"required"`
}

// DecisionRequest represents a client's terminal approval decision
type DecisionRequest struct {
	Decision string `json:"decision" binding:"required,oneof=approved declined" enums:"approved,declined"`
	Notes    string `json:"notes" example:"Happy with the revised total"`
}

// ApprovalResponse represents an approval state in API responses
type ApprovalResponse struct {
	Status     string `json:"status" enums:"pending,approved,declined"`
	ApprovedBy string `json:"approved_by,omitempty"`
	ApprovedAt string `json:"approved_at,omitempty"`
	Notes      string `json:"notes,omitempty"`
}

// DocumentResponse represents a document in API responses
type DocumentResponse struct {
	ID               string            `json:"id"`
	ProjectID        string            `json:"project_id"`
	Title            string            `json:"title" example:"Quote Q-104"`
	Description      string            `json:"description,omitempty"`
	Type             string            `json:"type" enums:"quote,invoice,contract,other"`
	FileKey          string            `json:"file_key"`
	FileName         string            `json:"file_name"`
	FileSize         int64             `json:"file_size"`
	UploadedBy       string            `json:"uploaded_by"`
	UploaderName     string            `json:"uploader_name,omitempty"`
	IsVisible        bool              `json:"is_visible"`
	RequiresApproval bool              `json:"requires_approval"`
	Approval         *ApprovalResponse `json:"approval,omitempty"`
	DownloadURL      string            `json:"download_url,omitempty"`
	CreatedAt        string            `json:"created_at"`
	UpdatedAt        string            `json:"updated_at"`
}

func toApprovalResponse(a project.Approval, requiresApproval bool) *ApprovalResponse {
	if !requiresApproval {
		return nil
	}
	return &ApprovalResponse{
		Status:     string(a.Status),
		ApprovedBy: uuidPtrString(a.ApprovedBy),
		ApprovedAt: formatTimePtr(a.ApprovedAt),
		Notes:      a.Notes,
	}
}

func toDocumentResponse(d *project.Document) DocumentResponse {
	return DocumentResponse{
		ID:               d.ID.String(),
		ProjectID:        d.ProjectID.String(),
		Title:            d.Title,
		Description:      d.Description,
		Type:             string(d.Type),
		FileKey:          d.FileKey,
		FileName:         d.FileName,
		FileSize:         d.FileSize,
		UploadedBy:       d.UploadedBy.String(),
		IsVisible:        d.IsVisible,
		RequiresApproval: d.RequiresApproval,
		Approval:         toApprovalResponse(d.Approval, d.RequiresApproval),
		CreatedAt:        formatTime(d.CreatedAt),
		UpdatedAt:        formatTime(d.UpdatedAt),
	}
}

func toDocumentViewResponses(views []*projects.DocumentView) []DocumentResponse {
	responses := make([]DocumentResponse, len(views))
	for i, v := range views {
		resp := toDocumentResponse(v.Document)
		resp.UploaderName = v.UploaderName
		resp.DownloadURL = v.DownloadURL
		responses[i] = resp
	}
	return responses
}
