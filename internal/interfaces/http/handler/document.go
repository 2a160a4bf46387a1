package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/portal/backend/internal/application/projects"
	"github.com/portal/backend/internal/domain/project"
	"github.com/portal/backend/internal/interfaces/http/middleware"
)

// DocumentHandler handles project document HTTP requests
type DocumentHandler struct {
	BaseHandler
	documentService *projects.DocumentService
}

// NewDocumentHandler creates a new document handler
func NewDocumentHandler(documentService *projects.DocumentService) *DocumentHandler {
	return &DocumentHandler{
		documentService: documentService,
	}
}

// RegisterRoutes registers document routes
func (h *DocumentHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/projects/:id/documents", h.Upload)
	rg.GET("/projects/:id/documents", h.List)

	documents := rg.Group("/documents")
	{
		documents.PUT("/:id/visibility", h.SetVisibility)
		documents.POST("/:id/decision", h.Decide)
	}
}

// Upload godoc
// @Summary      Record an uploaded document
// @Description  Admin-only; registers a document against its stored file
// @Tags         documents
// @Accept       json
// @Produce      json
// @Param        id path string true "Project ID"
// @Param        request body UploadDocumentRequest true "Document details"
// @Success      201 {object} dto.Response{data=DocumentResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      403 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /projects/{id}/documents [post]
func (h *DocumentHandler) Upload(c *gin.Context) {
	projectID, ok := h.bindID(c)
	if !ok {
		return
	}

	var req UploadDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	doc, err := h.documentService.Upload(c.Request.Context(), middleware.GetCaller(c), projects.UploadDocumentInput{
		ProjectID:        projectID,
		Title:            req.Title,
		Description:      req.Description,
		Type:             project.DocumentType(req.Type),
		FileKey:          req.FileKey,
		FileName:         req.FileName,
		FileSize:         req.FileSize,
		IsVisible:        req.IsVisible,
		RequiresApproval: req.RequiresApproval,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, toDocumentResponse(doc))
}

// List godoc
// @Summary      List project documents
// @Description  Clients see only client-visible documents with download URLs
// @Tags         documents
// @Produce      json
// @Param        id path string true "Project ID"
// @Success      200 {object} dto.Response{data=[]DocumentResponse}
// @Failure      403 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /projects/{id}/documents [get]
func (h *DocumentHandler) List(c *gin.Context) {
	projectID, ok := h.bindID(c)
	if !ok {
		return
	}

	views, err := h.documentService.List(c.Request.Context(), middleware.GetCaller(c), projectID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, toDocumentViewResponses(views))
}

// SetVisibility godoc
// @Summary      Toggle document visibility
// @Description  Admin-only
// @Tags         documents
// @Accept       json
// @Produce      json
// @Param        id path string true "Document ID"
// @Param        request body SetVisibilityRequest true "Visibility flag"
// @Success      200 {object} dto.Response{data=DocumentResponse}
// @Failure      403 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /documents/{id}/visibility [put]
func (h *DocumentHandler) SetVisibility(c *gin.Context) {
	documentID, ok := h.bindID(c)
	if !ok {
		return
	}

	var req SetVisibilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	doc, err := h.documentService.SetVisibility(c.Request.Context(), middleware.GetCaller(c), documentID, *req.IsVisible)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, toDocumentResponse(doc))
}

// Decide godoc
// @Summary      Decide a document approval
// @Description  Owning client only; the decision is terminal
// @Tags         documents
// @Accept       json
// @Produce      json
// @Param        id path string true "Document ID"
// @Param        request body DecisionRequest true "Approval decision"
// @Success      200 {object} dto.Response{data=DocumentResponse}
// @Failure      403 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /documents/{id}/decision [post]
func (h *DocumentHandler) Decide(c *gin.Context) {
	documentID, ok := h.bindID(c)
	if !ok {
		return
	}

	var req DecisionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	doc, err := h.documentService.Decide(c.Request.Context(), middleware.GetCaller(c), documentID, project.Decision(req.Decision), req.Notes)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, toDocumentResponse(doc))
}
