package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/portal/backend/internal/application/projects"
	"github.com/portal/backend/internal/domain/project"
	"github.com/portal/backend/internal/interfaces/http/middleware"
)

// ProjectHandler handles project HTTP requests
type ProjectHandler struct {
	BaseHandler
	projectService *projects.ProjectService
}

// NewProjectHandler creates a new project handler
func NewProjectHandler(projectService *projects.ProjectService) *ProjectHandler {
	return &ProjectHandler{
		projectService: projectService,
	}
}

// RegisterRoutes registers project routes
func (h *ProjectHandler) RegisterRoutes(rg *gin.RouterGroup) {
	group := rg.Group("/projects")
	{
		group.POST("", h.Create)
		group.GET("", h.List)
		group.GET("/:id", h.Get)
		group.PUT("/:id", h.Update)
		group.POST("/:id/upload-url", h.GenerateUploadURL)
	}
}

// Create godoc
// @Summary      Create a project
// @Description  Admin-only; the owning client is notified
// @Tags         projects
// @Accept       json
// @Produce      json
// @Param        request body CreateProjectRequest true "Project details"
// @Success      201 {object} dto.Response{data=ProjectResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      403 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /projects [post]
func (h *ProjectHandler) Create(c *gin.Context) {
	var req CreateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	clientID, err := uuid.Parse(req.ClientID)
	if err != nil {
		h.BadRequest(c, "Invalid client ID")
		return
	}

	input := projects.CreateProjectInput{
		Name:        req.Name,
		Description: req.Description,
		ClientID:    clientID,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
	}
	if req.Budget != nil {
		input.Budget = toDecimalPtr(*req.Budget)
	}

	created, err := h.projectService.Create(c.Request.Context(), middleware.GetCaller(c), input)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, toProjectResponse(created))
}

// List godoc
// @Summary      List projects
// @Description  Admins see every project; clients see only their own
// @Tags         projects
// @Produce      json
// @Success      200 {object} dto.Response{data=[]ProjectResponse}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /projects [get]
func (h *ProjectHandler) List(c *gin.Context) {
	items, err := h.projectService.ListMine(c.Request.Context(), middleware.GetCaller(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, toProjectResponses(items))
}

// Get godoc
// @Summary      Get a project
// @Tags         projects
// @Produce      json
// @Param        id path string true "Project ID"
// @Success      200 {object} dto.Response{data=ProjectResponse}
// @Failure      403 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /projects/{id} [get]
func (h *ProjectHandler) Get(c *gin.Context) {
	projectID, ok := h.bindID(c)
	if !ok {
		return
	}

	p, err := h.projectService.Get(c.Request.Context(), middleware.GetCaller(c), projectID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, toProjectResponse(p))
}

// Update godoc
// @Summary      Update a project
// @Description  Admin-only; a status change notifies the owning client
// @Tags         projects
// @Accept       json
// @Produce      json
// @Param        id path string true "Project ID"
// @Param        request body UpdateProjectRequest true "Project fields"
// @Success      200 {object} dto.Response{data=ProjectResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      403 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /projects/{id} [put]
func (h *ProjectHandler) Update(c *gin.Context) {
	projectID, ok := h.bindID(c)
	if !ok {
		return
	}

	var req UpdateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	input := projects.UpdateProjectInput{
		Name:        req.Name,
		Description: req.Description,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		Status:      project.Status(req.Status),
	}
	if req.Budget != nil {
		input.Budget = toDecimalPtr(*req.Budget)
	}

	updated, err := h.projectService.Update(c.Request.Context(), middleware.GetCaller(c), projectID, input)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, toProjectResponse(updated))
}

// GenerateUploadURL godoc
// @Summary      Generate a presigned upload URL
// @Description  Returns a short-lived URL for uploading a project file
// @Tags         projects
// @Accept       json
// @Produce      json
// @Param        id path string true "Project ID"
// @Param        request body UploadURLRequest true "Upload target"
// @Success      200 {object} dto.Response{data=UploadURLResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      403 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /projects/{id}/upload-url [post]
func (h *ProjectHandler) GenerateUploadURL(c *gin.Context) {
	projectID, ok := h.bindID(c)
	if !ok {
		return
	}

	var req UploadURLRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	result, err := h.projectService.GenerateUploadURL(c.Request.Context(), middleware.GetCaller(c), projectID, req.FileName, req.ContentType)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, toUploadURLResponse(result))
}
