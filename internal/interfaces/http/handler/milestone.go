package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/portal/backend/internal/application/projects"
	"github.com/portal/backend/internal/domain/project"
	"github.com/portal/backend/internal/interfaces/http/middleware"
)

// CreateMilestoneRequest represents a milestone creation request
type CreateMilestoneRequest struct {
	Title       string     `json:"title" binding:"required" example:"Roof on"`
	Description string     `json:"description" example:"Rafters, membrane and tiles complete"`
	DueDate     *time.Time `json:"due_date,omitempty"`
}

// UpdateMilestoneRequest represents a milestone update
type UpdateMilestoneRequest struct {
	Title       string     `json:"title" binding:"required" example:"Roof on"`
	Description string     `json:"description"`
	DueDate     *time.Time `json:"due_date,omitempty"`
}

// SetCompletionRequest toggles milestone completion
type SetCompletionRequest struct {
	IsCompleted *bool `json:"is_completed" binding:"required"`
}

// MilestoneResponse represents a milestone in API responses
type MilestoneResponse struct {
	ID          string `json:"id"`
	ProjectID   string `json:"project_id"`
	Title       string `json:"title" example:"Roof on"`
	Description string `json:"description,omitempty"`
	DueDate     string `json:"due_date,omitempty"`
	IsCompleted bool   `json:"is_completed"`
	CompletedAt string `json:"completed_at,omitempty"`
	SortOrder   int    `json:"sort_order" example:"1"`
	CreatedAt   string `json:"created_at"`
	UpdatedAt   string `json:"updated_at"`
}

func toMilestoneResponse(m *project.Milestone) MilestoneResponse {
	return MilestoneResponse{
		ID:          m.ID.String(),
		ProjectID:   m.ProjectID.String(),
		Title:       m.Title,
		Description: m.Description,
		DueDate:     formatTimePtr(m.DueDate),
		IsCompleted: m.IsCompleted,
		CompletedAt: formatTimePtr(m.CompletedAt),
		SortOrder:   m.SortOrder,
		CreatedAt:   formatTime(m.CreatedAt),
		UpdatedAt:   formatTime(m.UpdatedAt),
	}
}

func toMilestoneResponses(items []*project.Milestone) []MilestoneResponse {
	responses := make([]MilestoneResponse, len(items))
	for i, m := range items {
		responses[i] = toMilestoneResponse(m)
	}
	return responses
}

// MilestoneHandler handles project milestone HTTP requests
type MilestoneHandler struct {
	BaseHandler
	milestoneService *projects.MilestoneService
}

// NewMilestoneHandler creates a new milestone handler
func NewMilestoneHandler(milestoneService *projects.MilestoneService) *MilestoneHandler {
	return &MilestoneHandler{
		milestoneService: milestoneService,
	}
}

// RegisterRoutes registers milestone routes
func (h *MilestoneHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/projects/:id/milestones", h.Create)
	rg.GET("/projects/:id/milestones", h.List)

	milestones := rg.Group("/milestones")
	{
		milestones.PUT("/:id", h.Update)
		milestones.PUT("/:id/completion", h.SetCompleted)
		milestones.DELETE("/:id", h.Delete)
	}
}

// Create godoc
// @Summary      Create a milestone
// @Description  Admin-only; sorted after the project's existing milestones
// @Tags         milestones
// @Accept       json
// @Produce      json
// @Param        id path string true "Project ID"
// @Param        request body CreateMilestoneRequest true "Milestone details"
// @Success      201 {object} dto.Response{data=MilestoneResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      403 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /projects/{id}/milestones [post]
func (h *MilestoneHandler) Create(c *gin.Context) {
	projectID, ok := h.bindID(c)
	if !ok {
		return
	}

	var req CreateMilestoneRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	milestone, err := h.milestoneService.Create(c.Request.Context(), middleware.GetCaller(c), projects.CreateMilestoneInput{
		ProjectID:   projectID,
		Title:       req.Title,
		Description: req.Description,
		DueDate:     req.DueDate,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, toMilestoneResponse(milestone))
}

// List godoc
// @Summary      List project milestones
// @Tags         milestones
// @Produce      json
// @Param        id path string true "Project ID"
// @Success      200 {object} dto.Response{data=[]MilestoneResponse}
// @Failure      403 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /projects/{id}/milestones [get]
func (h *MilestoneHandler) List(c *gin.Context) {
	projectID, ok := h.bindID(c)
	if !ok {
		return
	}

	items, err := h.milestoneService.List(c.Request.Context(), middleware.GetCaller(c), projectID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, toMilestoneResponses(items))
}

// Update godoc
// @Summary      Update a milestone
// @Description  Admin-only
// @Tags         milestones
// @Accept       json
// @Produce      json
// @Param        id path string true "Milestone ID"
// @Param        request body UpdateMilestoneRequest true "Milestone fields"
// @Success      200 {object} dto.Response{data=MilestoneResponse}
// @Failure      403 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /milestones/{id} [put]
func (h *MilestoneHandler) Update(c *gin.Context) {
	milestoneID, ok := h.bindID(c)
	if !ok {
		return
	}

	var req UpdateMilestoneRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	milestone, err := h.milestoneService.Update(c.Request.Context(), middleware.GetCaller(c), milestoneID, projects.UpdateMilestoneInput{
		Title:       req.Title,
		Description: req.Description,
		DueDate:     req.DueDate,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, toMilestoneResponse(milestone))
}

// SetCompleted godoc
// @Summary      Set milestone completion
// @Description  Admin-only; completing records the completion time, reopening clears it
// @Tags         milestones
// @Accept       json
// @Produce      json
// @Param        id path string true "Milestone ID"
// @Param        request body SetCompletionRequest true "Completion flag"
// @Success      200 {object} dto.Response{data=MilestoneResponse}
// @Failure      403 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /milestones/{id}/completion [put]
func (h *MilestoneHandler) SetCompleted(c *gin.Context) {
	milestoneID, ok := h.bindID(c)
	if !ok {
		return
	}

	var req SetCompletionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	milestone, err := h.milestoneService.SetCompleted(c.Request.Context(), middleware.GetCaller(c), milestoneID, *req.IsCompleted)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, toMilestoneResponse(milestone))
}

// Delete godoc
// @Summary      Delete a milestone
// @Description  Admin-only
// @Tags         milestones
// @Param        id path string true "Milestone ID"
// @Success      204
// @Failure      403 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /milestones/{id} [delete]
func (h *MilestoneHandler) Delete(c *gin.Context) {
	milestoneID, ok := h.bindID(c)
	if !ok {
		return
	}

	if err := h.milestoneService.Delete(c.Request.Context(), middleware.GetCaller(c), milestoneID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}
