package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	appaudit "github.com/portal/backend/internal/application/audit"
	"github.com/portal/backend/internal/domain/audit"
	"github.com/portal/backend/internal/interfaces/http/middleware"
)

// AuditEntryResponse represents an audit trail entry in API responses
type AuditEntryResponse struct {
	ID         string `json:"id"`
	ProjectID  string `json:"project_id,omitempty"`
	ActorID    string `json:"actor_id"`
	Action     string `json:"action" example:"status_changed"`
	EntityType string `json:"entity_type" example:"document"`
	EntityID   string `json:"entity_id"`
	Details    string `json:"details,omitempty"`
	CreatedAt  string `json:"created_at"`
}

func toAuditEntryResponse(e *audit.Entry) AuditEntryResponse {
	return AuditEntryResponse{
		ID:         e.ID.String(),
		ProjectID:  uuidPtrString(e.ProjectID),
		ActorID:    e.ActorID.String(),
		Action:     e.Action,
		EntityType: e.EntityType,
		EntityID:   e.EntityID.String(),
		Details:    e.Details,
		CreatedAt:  formatTime(e.CreatedAt),
	}
}

// AuditHandler handles audit trail HTTP requests
type AuditHandler struct {
	BaseHandler
	recorder *appaudit.Recorder
}

// NewAuditHandler creates a new audit handler
func NewAuditHandler(recorder *appaudit.Recorder) *AuditHandler {
	return &AuditHandler{
		recorder: recorder,
	}
}

// RegisterRoutes registers audit routes
func (h *AuditHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/projects/:id/audit", h.ListByProject)
}

// ListByProject godoc
// @Summary      List a project's audit trail
// @Description  Admin-only; newest entries first
// @Tags         audit
// @Produce      json
// @Param        id path string true "Project ID"
// @Param        limit query int false "Maximum rows" default(100)
// @Success      200 {object} dto.Response{data=[]AuditEntryResponse}
// @Failure      403 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /projects/{id}/audit [get]
func (h *AuditHandler) ListByProject(c *gin.Context) {
	projectID, ok := h.bindID(c)
	if !ok {
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "100"))

	entries, err := h.recorder.ListByProject(c.Request.Context(), middleware.GetCaller(c), projectID, limit)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	responses := make([]AuditEntryResponse, len(entries))
	for i, e := range entries {
		responses[i] = toAuditEntryResponse(e)
	}

	h.Success(c, responses)
}
