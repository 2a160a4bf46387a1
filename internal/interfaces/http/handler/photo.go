package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/portal/backend/internal/application/projects"
	"github.com/portal/backend/internal/domain/project"
	"github.com/portal/backend/internal/interfaces/http/middleware"
)

// UploadPhotoRequest represents a photo record creation request
type UploadPhotoRequest struct {
	Title     string `json:"title" binding:"required" example:"Week 1 groundwork"`
	Caption   string `json:"caption" example:"Footings poured on the north side"`
	Category  string `json:"category" example:"progress"`
	FileKey   string `json:"file_key" binding:"required" example:"projects/550e8400/week1.jpg"`
	FileName  string `json:"file_name" binding:"required" example:"week1.jpg"`
	IsVisible bool   `json:"is_visible"`
}

// PhotoResponse represents a photo in API responses
type PhotoResponse struct {
	ID           string `json:"id"`
	ProjectID    string `json:"project_id"`
	Title        string `json:"title" example:"Week 1 groundwork"`
	Caption      string `json:"caption,omitempty"`
	Category     string `json:"category,omitempty"`
	FileKey      string `json:"file_key"`
	FileName     string `json:"file_name"`
	UploadedBy   string `json:"uploaded_by"`
	UploaderName string `json:"uploader_name,omitempty"`
	IsVisible    bool   `json:"is_visible"`
	DownloadURL  string `json:"download_url,omitempty"`
	CreatedAt    string `json:"created_at"`
	UpdatedAt    string `json:"updated_at"`
}

func toPhotoResponse(p *project.Photo) PhotoResponse {
	return PhotoResponse{
		ID:         p.ID.String(),
		ProjectID:  p.ProjectID.String(),
		Title:      p.Title,
		Caption:    p.Caption,
		Category:   p.Category,
		FileKey:    p.FileKey,
		FileName:   p.FileName,
		UploadedBy: p.UploadedBy.String(),
		IsVisible:  p.IsVisible,
		CreatedAt:  formatTime(p.CreatedAt),
		UpdatedAt:  formatTime(p.UpdatedAt),
	}
}

func toPhotoViewResponses(views []*projects.PhotoView) []PhotoResponse {
	responses := make([]PhotoResponse, len(views))
	for i, v := range views {
		resp := toPhotoResponse(v.Photo)
		resp.UploaderName = v.UploaderName
		resp.DownloadURL = v.DownloadURL
		responses[i] = resp
	}
	return responses
}

// PhotoHandler handles project photo HTTP requests
type PhotoHandler struct {
	BaseHandler
	photoService *projects.PhotoService
}

// NewPhotoHandler creates a new photo handler
func NewPhotoHandler(photoService *projects.PhotoService) *PhotoHandler {
	return &PhotoHandler{
		photoService: photoService,
	}
}

// RegisterRoutes registers photo routes
func (h *PhotoHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/projects/:id/photos", h.Upload)
	rg.GET("/projects/:id/photos", h.List)

	photos := rg.Group("/photos")
	{
		photos.PUT("/:id/visibility", h.SetVisibility)
		photos.DELETE("/:id", h.Delete)
	}
}

// Upload godoc
// @Summary      Record an uploaded photo
// @Description  Admins and the owning client may add photos
// @Tags         photos
// @Accept       json
// @Produce      json
// @Param        id path string true "Project ID"
// @Param        request body UploadPhotoRequest true "Photo details"
// @Success      201 {object} dto.Response{data=PhotoResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      403 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /projects/{id}/photos [post]
func (h *PhotoHandler) Upload(c *gin.Context) {
	projectID, ok := h.bindID(c)
	if !ok {
		return
	}

	var req UploadPhotoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	photo, err := h.photoService.Upload(c.Request.Context(), middleware.GetCaller(c), projects.UploadPhotoInput{
		ProjectID: projectID,
		Title:     req.Title,
		Caption:   req.Caption,
		Category:  req.Category,
		FileKey:   req.FileKey,
		FileName:  req.FileName,
		IsVisible: req.IsVisible,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, toPhotoResponse(photo))
}

// List godoc
// @Summary      List project photos
// @Description  Clients see only client-visible photos with download URLs
// @Tags         photos
// @Produce      json
// @Param        id path string true "Project ID"
// @Success      200 {object} dto.Response{data=[]PhotoResponse}
// @Failure      403 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /projects/{id}/photos [get]
func (h *PhotoHandler) List(c *gin.Context) {
	projectID, ok := h.bindID(c)
	if !ok {
		return
	}

	views, err := h.photoService.List(c.Request.Context(), middleware.GetCaller(c), projectID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, toPhotoViewResponses(views))
}

// SetVisibility godoc
// @Summary      Toggle photo visibility
// @Description  Admin-only
// @Tags         photos
// @Accept       json
// @Produce      json
// @Param        id path string true "Photo ID"
// @Param        request body SetVisibilityRequest true "Visibility flag"
// @Success      200 {object} dto.Response{data=PhotoResponse}
// @Failure      403 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /photos/{id}/visibility [put]
func (h *PhotoHandler) SetVisibility(c *gin.Context) {
	photoID, ok := h.bindID(c)
	if !ok {
		return
	}

	var req SetVisibilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	photo, err := h.photoService.SetVisibility(c.Request.Context(), middleware.GetCaller(c), photoID, *req.IsVisible)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, toPhotoResponse(photo))
}

// Delete godoc
// @Summary      Delete a photo
// @Description  Admins may delete any photo; clients only their own uploads
// @Tags         photos
// @Param        id path string true "Photo ID"
// @Success      204
// @Failure      403 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /photos/{id} [delete]
func (h *PhotoHandler) Delete(c *gin.Context) {
	photoID, ok := h.bindID(c)
	if !ok {
		return
	}

	if err := h.photoService.Delete(c.Request.Context(), middleware.GetCaller(c), photoID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}
