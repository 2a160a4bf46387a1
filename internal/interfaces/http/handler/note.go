package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/portal/backend/internal/application/projects"
	"github.com/portal/backend/internal/domain/project"
	"github.com/portal/backend/internal/interfaces/http/middleware"
)

// AddNoteRequest represents a note creation request
type AddNoteRequest struct {
	Content   string `json:"content" binding:"required" example:"Scaffolding comes down on Friday"`
	IsVisible bool   `json:"is_visible"`
	IsPinned  bool   `json:"is_pinned"`
}

// UpdateNoteRequest represents a note update; omitted fields are unchanged
type UpdateNoteRequest struct {
	Content   *string `json:"content,omitempty"`
	IsVisible *bool   `json:"is_visible,omitempty"`
	IsPinned  *bool   `json:"is_pinned,omitempty"`
}

// NoteResponse represents a note in API responses
type NoteResponse struct {
	ID         string `json:"id"`
	ProjectID  string `json:"project_id"`
	Content    string `json:"content"`
	CreatedBy  string `json:"created_by"`
	AuthorName string `json:"author_name,omitempty"`
	IsVisible  bool   `json:"is_visible"`
	IsPinned   bool   `json:"is_pinned"`
	CreatedAt  string `json:"created_at"`
	UpdatedAt  string `json:"updated_at"`
}

func toNoteResponse(n *project.Note) NoteResponse {
	return NoteResponse{
		ID:        n.ID.String(),
		ProjectID: n.ProjectID.String(),
		Content:   n.Content,
		CreatedBy: n.CreatedBy.String(),
		IsVisible: n.IsVisible,
		IsPinned:  n.IsPinned,
		CreatedAt: formatTime(n.CreatedAt),
		UpdatedAt: formatTime(n.UpdatedAt),
	}
}

func toNoteViewResponses(views []*projects.NoteView) []NoteResponse {
	responses := make([]NoteResponse, len(views))
	for i, v := range views {
		resp := toNoteResponse(v.Note)
		resp.AuthorName = v.AuthorName
		responses[i] = resp
	}
	return responses
}

// NoteHandler handles project note HTTP requests
type NoteHandler struct {
	BaseHandler
	noteService *projects.NoteService
}

// NewNoteHandler creates a new note handler
func NewNoteHandler(noteService *projects.NoteService) *NoteHandler {
	return &NoteHandler{
		noteService: noteService,
	}
}

// RegisterRoutes registers note routes
func (h *NoteHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/projects/:id/notes", h.Add)
	rg.GET("/projects/:id/notes", h.List)

	notes := rg.Group("/notes")
	{
		notes.PUT("/:id", h.Update)
		notes.DELETE("/:id", h.Delete)
	}
}

// Add godoc
// @Summary      Add a project note
// @Description  Admin-only; a client-visible note notifies the owning client
// @Tags         notes
// @Accept       json
// @Produce      json
// @Param        id path string true "Project ID"
// @Param        request body AddNoteRequest true "Note details"
// @Success      201 {object} dto.Response{data=NoteResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      403 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /projects/{id}/notes [post]
func (h *NoteHandler) Add(c *gin.Context) {
	projectID, ok := h.bindID(c)
	if !ok {
		return
	}

	var req AddNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	note, err := h.noteService.Add(c.Request.Context(), middleware.GetCaller(c), projects.AddNoteInput{
		ProjectID: projectID,
		Content:   req.Content,
		IsVisible: req.IsVisible,
		IsPinned:  req.IsPinned,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, toNoteResponse(note))
}

// List godoc
// @Summary      List project notes
// @Description  Clients see only client-visible notes
// @Tags         notes
// @Produce      json
// @Param        id path string true "Project ID"
// @Success      200 {object} dto.Response{data=[]NoteResponse}
// @Failure      403 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /projects/{id}/notes [get]
func (h *NoteHandler) List(c *gin.Context) {
	projectID, ok := h.bindID(c)
	if !ok {
		return
	}

	views, err := h.noteService.List(c.Request.Context(), middleware.GetCaller(c), projectID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, toNoteViewResponses(views))
}

// Update godoc
// @Summary      Update a note
// @Description  Admin-only; omitted fields are left unchanged
// @Tags         notes
// @Accept       json
// @Produce      json
// @Param        id path string true "Note ID"
// @Param        request body UpdateNoteRequest true "Note fields"
// @Success      200 {object} dto.Response{data=NoteResponse}
// @Failure      403 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /notes/{id} [put]
func (h *NoteHandler) Update(c *gin.Context) {
	noteID, ok := h.bindID(c)
	if !ok {
		return
	}

	var req UpdateNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	note, err := h.noteService.Update(c.Request.Context(), middleware.GetCaller(c), noteID, projects.UpdateNoteInput{
		Content:   req.Content,
		IsVisible: req.IsVisible,
		IsPinned:  req.IsPinned,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, toNoteResponse(note))
}

// Delete godoc
// @Summary      Delete a note
// @Description  Admin-only
// @Tags         notes
// @Param        id path string true "Note ID"
// @Success      204
// @Failure      403 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /notes/{id} [delete]
func (h *NoteHandler) Delete(c *gin.Context) {
	noteID, ok := h.bindID(c)
	if !ok {
		return
	}

	if err := h.noteService.Delete(c.Request.Context(), middleware.GetCaller(c), noteID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}
