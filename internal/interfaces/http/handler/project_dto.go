package handler

import (
	"time"

	"github.com/portal/backend/internal/application/projects"
	"github.com/portal/backend/internal/domain/project"
)

// CreateProjectRequest represents a project creation request
type CreateProjectRequest struct {
	Name        string     `json:"name" binding:"required" example:"Garden Room"`
	Description string     `json:"description" example:"Rear garden studio build"`
	ClientID    string     `json:"client_id" binding:"required,uuid"`
	Budget      *float64   `json:"budget,omitempty" example:"42000.00"`
	StartDate   *time.Time `json:"start_date,omitempty"`
	EndDate     *time.Time `json:"end_date,omitempty"`
}

// UpdateProjectRequest represents a project update. Omitted fields are
// left unchanged; an empty status means no transition.
type UpdateProjectRequest struct {
	Name        *string    `json:"name,omitempty"`
	Description *string    `json:"description,omitempty"`
	Budget      *float64   `json:"budget,omitempty"`
	StartDate   *time.Time `json:"start_date,omitempty"`
	EndDate     *time.Time `json:"end_date,omitempty"`
	Status      string     `json:"status,omitempty" enums:"planning,in_progress,review,completed,on_hold"`
}

// UploadURLRequest represents a presigned upload URL request
type UploadURLRequest struct {
	FileName    string `json:"file_name" binding:"required" example:"plans.pdf"`
	ContentType string `json:"content_type" binding:"required" example:"application/pdf"`
}

// ProjectResponse represents a project in API responses
type ProjectResponse struct {
	ID          string   `json:"id" example:"550e8400-e29b-41d4-a716-446655440000"`
	Name        string   `json:"name" example:"Garden Room"`
	Description string   `json:"description" example:"Rear garden studio build"`
	ClientID    string   `json:"client_id"`
	Status      string   `json:"status" example:"planning" enums:"planning,in_progress,review,completed,on_hold"`
	CreatedBy   string   `json:"created_by"`
	Budget      *float64 `json:"budget,omitempty" example:"42000.00"`
	StartDate   string   `json:"start_date,omitempty"`
	EndDate     string   `json:"end_date,omitempty"`
	CreatedAt   string   `json:"created_at" example:"2026-01-24T12:00:00Z"`
	UpdatedAt   string   `json:"updated_at" example:"2026-01-24T12:00:00Z"`
}

// UploadURLResponse represents a presigned upload target
type UploadURLResponse struct {
	URL       string `json:"url"`
	FileKey   string `json:"file_key" example:"projects/550e8400/plans.pdf"`
	ExpiresAt string `json:"expires_at" example:"2026-01-24T12:15:00Z"`
}

func toProjectResponse(p *project.Project) ProjectResponse {
	return ProjectResponse{
		ID:          p.ID.String(),
		Name:        p.Name,
		Description: p.Description,
		ClientID:    p.ClientID.String(),
		Status:      string(p.Status),
		CreatedBy:   p.CreatedBy.String(),
		Budget:      decimalPtrFloat(p.Budget),
		StartDate:   formatTimePtr(p.StartDate),
		EndDate:     formatTimePtr(p.EndDate),
		CreatedAt:   formatTime(p.CreatedAt),
		UpdatedAt:   formatTime(p.UpdatedAt),
	}
}

func toProjectResponses(items []*project.Project) []ProjectResponse {
	responses := make([]ProjectResponse, len(items))
	for i, p := range items {
		responses[i] = toProjectResponse(p)
	}
	return responses
}

func toUploadURLResponse(result *projects.UploadURLResult) UploadURLResponse {
	return UploadURLResponse{
		URL:       result.URL,
		FileKey:   result.FileKey,
		ExpiresAt: formatTime(result.ExpiresAt),
	}
}
