package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/portal/backend/internal/application/projects"
	"github.com/portal/backend/internal/domain/project"
	"github.com/portal/backend/internal/interfaces/http/middleware"
)

// CreateAdditionalWorkRequest represents an additional-work proposal
type CreateAdditionalWorkRequest struct {
	Title       string  `json:"title" binding:"required" example:"Extra drainage"`
	Description string  `json:"description" binding:"required" example:"French drain along the rear boundary"`
	Price       float64 `json:"price" binding:"min=0" example:"450.50"`
	FileKey     string  `json:"file_key,omitempty"`
	FileName    string  `json:"file_name,omitempty"`
}

// AdditionalWorkResponse represents an additional-work item in API responses
type AdditionalWorkResponse struct {
	ID          string           `json:"id"`
	ProjectID   string           `json:"project_id"`
	Title       string           `json:"title" example:"Extra drainage"`
	Description string           `json:"description"`
	Price       float64          `json:"price" example:"450.50"`
	FileKey     string           `json:"file_key,omitempty"`
	FileName    string           `json:"file_name,omitempty"`
	CreatedBy   string           `json:"created_by"`
	CreatorName string           `json:"creator_name,omitempty"`
	Approval    ApprovalResponse `json:"approval"`
	DownloadURL string           `json:"download_url,omitempty"`
	CreatedAt   string           `json:"created_at"`
	UpdatedAt   string           `json:"updated_at"`
}

func toAdditionalWorkResponse(w *project.AdditionalWork) AdditionalWorkResponse {
	return AdditionalWorkResponse{
		ID:          w.ID.String(),
		ProjectID:   w.ProjectID.String(),
		Title:       w.Title,
		Description: w.Description,
		Price:       w.Price.InexactFloat64(),
		FileKey:     w.FileKey,
		FileName:    w.FileName,
		CreatedBy:   w.CreatedBy.String(),
		Approval: ApprovalResponse{
			Status:     string(w.Approval.Status),
			ApprovedBy: uuidPtrString(w.Approval.ApprovedBy),
			ApprovedAt: formatTimePtr(w.Approval.ApprovedAt),
			Notes:      w.Approval.Notes,
		},
		CreatedAt: formatTime(w.CreatedAt),
		UpdatedAt: formatTime(w.UpdatedAt),
	}
}

func toAdditionalWorkViewResponses(views []*projects.AdditionalWorkView) []AdditionalWorkResponse {
	responses := make([]AdditionalWorkResponse, len(views))
	for i, v := range views {
		resp := toAdditionalWorkResponse(v.AdditionalWork)
		resp.CreatorName = v.CreatorName
		resp.DownloadURL = v.DownloadURL
		responses[i] = resp
	}
	return responses
}

// AdditionalWorkHandler handles additional-work HTTP requests
type AdditionalWorkHandler struct {
	BaseHandler
	workService *projects.AdditionalWorkService
}

// NewAdditionalWorkHandler creates a new additional-work handler
func NewAdditionalWorkHandler(workService *projects.AdditionalWorkService) *AdditionalWorkHandler {
	return &AdditionalWorkHandler{
		workService: workService,
	}
}

// RegisterRoutes registers additional-work routes
func (h *AdditionalWorkHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/projects/:id/additional-work", h.Create)
	rg.GET("/projects/:id/additional-work", h.List)

	work := rg.Group("/additional-work")
	{
		work.POST("/:id/decision", h.Decide)
	}
}

// Create godoc
// @Summary      Propose additional work
// @Description  Admin-only; the owning client is notified of the priced proposal
// @Tags         additional-work
// @Accept       json
// @Produce      json
// @Param        id path string true "Project ID"
// @Param        request body CreateAdditionalWorkRequest true "Proposal details"
// @Success      201 {object} dto.Response{data=AdditionalWorkResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      403 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /projects/{id}/additional-work [post]
func (h *AdditionalWorkHandler) Create(c *gin.Context) {
	projectID, ok := h.bindID(c)
	if !ok {
		return
	}

	var req CreateAdditionalWorkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	work, err := h.workService.Create(c.Request.Context(), middleware.GetCaller(c), projects.CreateAdditionalWorkInput{
		ProjectID:   projectID,
		Title:       req.Title,
		Description: req.Description,
		Price:       toDecimal(req.Price),
		FileKey:     req.FileKey,
		FileName:    req.FileName,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, toAdditionalWorkResponse(work))
}

// List godoc
// @Summary      List additional work
// @Description  Additional work is always client-visible
// @Tags         additional-work
// @Produce      json
// @Param        id path string true "Project ID"
// @Success      200 {object} dto.Response{data=[]AdditionalWorkResponse}
// @Failure      403 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /projects/{id}/additional-work [get]
func (h *AdditionalWorkHandler) List(c *gin.Context) {
	projectID, ok := h.bindID(c)
	if !ok {
		return
	}

	views, err := h.workService.List(c.Request.Context(), middleware.GetCaller(c), projectID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, toAdditionalWorkViewResponses(views))
}

// Decide godoc
// @Summary      Decide an additional-work proposal
// @Description  Owning client only; the decision is terminal
// @Tags         additional-work
// @Accept       json
// @Produce      json
// @Param        id path string true "Additional work ID"
// @Param        request body DecisionRequest true "Approval decision"
// @Success      200 {object} dto.Response{data=AdditionalWorkResponse}
// @Failure      403 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /additional-work/{id}/decision [post]
func (h *AdditionalWorkHandler) Decide(c *gin.Context) {
	workID, ok := h.bindID(c)
	if !ok {
		return
	}

	var req DecisionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	work, err := h.workService.Decide(c.Request.Context(), middleware.GetCaller(c), workID, project.Decision(req.Decision), req.Notes)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, toAdditionalWorkResponse(work))
}
