package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/portal/backend/internal/application/projects"
	"github.com/portal/backend/internal/domain/project"
	"github.com/portal/backend/internal/interfaces/http/middleware"
)

// CreateChangeRequestRequest represents a client's change request
type CreateChangeRequestRequest struct {
	Title       string `json:"title" binding:"required" example:"Wider door frames"`
	Description string `json:"description" binding:"required" example:"Widen both rear door frames to 900mm"`
}

// RespondChangeRequestRequest represents an admin's terminal response
type RespondChangeRequestRequest struct {
	Decision      string   `json:"decision" binding:"required,oneof=approved declined" enums:"approved,declined"`
	Response      string   `json:"response" example:"Approved with a two week extension"`
	EstimatedCost *float64 `json:"estimated_cost,omitempty" example:"1200.00"`
	EstimatedTime string   `json:"estimated_time,omitempty" example:"2 weeks"`
}

// ChangeRequestResponse represents a change request in API responses
type ChangeRequestResponse struct {
	ID            string   `json:"id"`
	ProjectID     string   `json:"project_id"`
	Title         string   `json:"title" example:"Wider door frames"`
	Description   string   `json:"description"`
	RequestedBy   string   `json:"requested_by"`
	RequesterName string   `json:"requester_name,omitempty"`
	Status        string   `json:"status" enums:"pending,in_review,approved,declined"`
	EstimatedCost *float64 `json:"estimated_cost,omitempty"`
	EstimatedTime string   `json:"estimated_time,omitempty"`
	AdminResponse string   `json:"admin_response,omitempty"`
	RespondedBy   string   `json:"responded_by,omitempty"`
	RespondedAt   string   `json:"responded_at,omitempty"`
	CreatedAt     string   `json:"created_at"`
	UpdatedAt     string   `json:"updated_at"`
}

func toChangeRequestResponse(r *project.ChangeRequest) ChangeRequestResponse {
	return ChangeRequestResponse{
		ID:            r.ID.String(),
		ProjectID:     r.ProjectID.String(),
		Title:         r.Title,
		Description:   r.Description,
		RequestedBy:   r.RequestedBy.String(),
		Status:        string(r.Status),
		EstimatedCost: decimalPtrFloat(r.EstimatedCost),
		EstimatedTime: r.EstimatedTime,
		AdminResponse: r.AdminResponse,
		RespondedBy:   uuidPtrString(r.RespondedBy),
		RespondedAt:   formatTimePtr(r.RespondedAt),
		CreatedAt:     formatTime(r.CreatedAt),
		UpdatedAt:     formatTime(r.UpdatedAt),
	}
}

func toChangeRequestViewResponses(views []*projects.ChangeRequestView) []ChangeRequestResponse {
	responses := make([]ChangeRequestResponse, len(views))
	for i, v := range views {
		resp := toChangeRequestResponse(v.ChangeRequest)
		resp.RequesterName = v.RequesterName
		responses[i] = resp
	}
	return responses
}

// ChangeRequestHandler handles change-request HTTP requests
type ChangeRequestHandler struct {
	BaseHandler
	requestService *projects.ChangeRequestService
}

// NewChangeRequestHandler creates a new change-request handler
func NewChangeRequestHandler(requestService *projects.ChangeRequestService) *ChangeRequestHandler {
	return &ChangeRequestHandler{
		requestService: requestService,
	}
}

// RegisterRoutes registers change-request routes
func (h *ChangeRequestHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/projects/:id/change-requests", h.Create)
	rg.GET("/projects/:id/change-requests", h.List)

	requests := rg.Group("/change-requests")
	{
		requests.POST("/:id/review", h.StartReview)
		requests.POST("/:id/response", h.Respond)
	}
}

// Create godoc
// @Summary      Raise a change request
// @Description  Owning client only; admins are notified
// @Tags         change-requests
// @Accept       json
// @Produce      json
// @Param        id path string true "Project ID"
// @Param        request body CreateChangeRequestRequest true "Change request details"
// @Success      201 {object} dto.Response{data=ChangeRequestResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      403 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /projects/{id}/change-requests [post]
func (h *ChangeRequestHandler) Create(c *gin.Context) {
	projectID, ok := h.bindID(c)
	if !ok {
		return
	}

	var req CreateChangeRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	request, err := h.requestService.Create(c.Request.Context(), middleware.GetCaller(c), projects.CreateChangeRequestInput{
		ProjectID:   projectID,
		Title:       req.Title,
		Description: req.Description,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, toChangeRequestResponse(request))
}

// List godoc
// @Summary      List change requests
// @Tags         change-requests
// @Produce      json
// @Param        id path string true "Project ID"
// @Success      200 {object} dto.Response{data=[]ChangeRequestResponse}
// @Failure      403 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /projects/{id}/change-requests [get]
func (h *ChangeRequestHandler) List(c *gin.Context) {
	projectID, ok := h.bindID(c)
	if !ok {
		return
	}

	views, err := h.requestService.List(c.Request.Context(), middleware.GetCaller(c), projectID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, toChangeRequestViewResponses(views))
}

// StartReview godoc
// @Summary      Move a change request into review
// @Description  Admin-only; allowed only from the pending state
// @Tags         change-requests
// @Produce      json
// @Param        id path string true "Change request ID"
// @Success      200 {object} dto.Response{data=ChangeRequestResponse}
// @Failure      403 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /change-requests/{id}/review [post]
func (h *ChangeRequestHandler) StartReview(c *gin.Context) {
	requestID, ok := h.bindID(c)
	if !ok {
		return
	}

	request, err := h.requestService.StartReview(c.Request.Context(), middleware.GetCaller(c), requestID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, toChangeRequestResponse(request))
}

// Respond godoc
// @Summary      Respond to a change request
// @Description  Admin-only terminal decision; the requester is notified
// @Tags         change-requests
// @Accept       json
// @Produce      json
// @Param        id path string true "Change request ID"
// @Param        request body RespondChangeRequestRequest true "Response details"
// @Success      200 {object} dto.Response{data=ChangeRequestResponse}
// @Failure      403 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /change-requests/{id}/response [post]
func (h *ChangeRequestHandler) Respond(c *gin.Context) {
	requestID, ok := h.bindID(c)
	if !ok {
		return
	}

	var req RespondChangeRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	input := projects.RespondChangeRequestInput{
		Decision:      project.Decision(req.Decision),
		Response:      req.Response,
		EstimatedTime: req.EstimatedTime,
	}
	if req.EstimatedCost != nil {
		input.EstimatedCost = toDecimalPtr(*req.EstimatedCost)
	}

	request, err := h.requestService.Respond(c.Request.Context(), middleware.GetCaller(c), requestID, input)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, toChangeRequestResponse(request))
}
