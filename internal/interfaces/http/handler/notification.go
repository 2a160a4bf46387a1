package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/portal/backend/internal/application/notifications"
	"github.com/portal/backend/internal/domain/notification"
	"github.com/portal/backend/internal/interfaces/http/middleware"
)

// NotificationResponse represents a notification in API responses
type NotificationResponse struct {
	ID        string `json:"id"`
	ProjectID string `json:"project_id"`
	Kind      string `json:"kind" example:"project_updated"`
	Title     string `json:"title" example:"Project Update"`
	Message   string `json:"message,omitempty"`
	IsRead    bool   `json:"is_read"`
	CreatedAt string `json:"created_at"`
}

// UnreadCountResponse represents the unread notification count
type UnreadCountResponse struct {
	Count int64 `json:"count" example:"3"`
}

// DigestResponse represents the outcome of a digest send
type DigestResponse struct {
	Sent    bool   `json:"sent"`
	Summary string `json:"summary,omitempty" example:"2 new documents, 1 new photo"`
}

func toNotificationResponse(n *notification.Notification) NotificationResponse {
	return NotificationResponse{
		ID:        n.ID.String(),
		ProjectID: n.ProjectID.String(),
		Kind:      string(n.Kind),
		Title:     n.Title,
		Message:   n.Message,
		IsRead:    n.IsRead,
		CreatedAt: formatTime(n.CreatedAt),
	}
}

// NotificationHandler handles notification feed and digest HTTP requests
type NotificationHandler struct {
	BaseHandler
	notificationService *notifications.NotificationService
	digestService       *notifications.DigestService
}

// NewNotificationHandler creates a new notification handler
func NewNotificationHandler(notificationService *notifications.NotificationService, digestService *notifications.DigestService) *NotificationHandler {
	return &NotificationHandler{
		notificationService: notificationService,
		digestService:       digestService,
	}
}

// RegisterRoutes registers notification routes
func (h *NotificationHandler) RegisterRoutes(rg *gin.RouterGroup) {
	group := rg.Group("/notifications")
	{
		group.GET("", h.ListMine)
		group.GET("/unread-count", h.UnreadCount)
		group.PUT("/read-all", h.MarkAllRead)
		group.PUT("/:id/read", h.MarkRead)
	}

	rg.POST("/projects/:id/digest", h.SendDigest)
}

// ListMine godoc
// @Summary      List my notifications
// @Description  Newest first; limit is clamped to a sane default
// @Tags         notifications
// @Produce      json
// @Param        limit query int false "Maximum rows" default(50)
// @Success      200 {object} dto.Response{data=[]NotificationResponse}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /notifications [get]
func (h *NotificationHandler) ListMine(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "0"))

	items, err := h.notificationService.ListMine(c.Request.Context(), middleware.GetUserID(c), limit)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	responses := make([]NotificationResponse, len(items))
	for i, n := range items {
		responses[i] = toNotificationResponse(n)
	}

	h.Success(c, responses)
}

// UnreadCount godoc
// @Summary      Count my unread notifications
// @Tags         notifications
// @Produce      json
// @Success      200 {object} dto.Response{data=UnreadCountResponse}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /notifications/unread-count [get]
func (h *NotificationHandler) UnreadCount(c *gin.Context) {
	count, err := h.notificationService.UnreadCount(c.Request.Context(), middleware.GetUserID(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, UnreadCountResponse{Count: count})
}

// MarkRead godoc
// @Summary      Mark a notification read
// @Description  Only the recipient may mark their own notification
// @Tags         notifications
// @Param        id path string true "Notification ID"
// @Success      204
// @Failure      403 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /notifications/{id}/read [put]
func (h *NotificationHandler) MarkRead(c *gin.Context) {
	notificationID, ok := h.bindID(c)
	if !ok {
		return
	}

	if err := h.notificationService.MarkRead(c.Request.Context(), middleware.GetUserID(c), notificationID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// MarkAllRead godoc
// @Summary      Mark all my notifications read
// @Tags         notifications
// @Success      204
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /notifications/read-all [put]
func (h *NotificationHandler) MarkAllRead(c *gin.Context) {
	if err := h.notificationService.MarkAllRead(c.Request.Context(), middleware.GetUserID(c)); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// SendDigest godoc
// @Summary      Send the project activity digest
// @Description  Admin-only; emails the owning client a summary of activity
//
//	since the last digest and advances the high-water mark only
//	on a successful send
//
// @Tags         notifications
// @Produce      json
// @Param        id path string true "Project ID"
// @Success      200 {object} dto.Response{data=DigestResponse}
// @Failure      403 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      502 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /projects/{id}/digest [post]
func (h *NotificationHandler) SendDigest(c *gin.Context) {
	projectID, ok := h.bindID(c)
	if !ok {
		return
	}

	result, err := h.digestService.ComputeAndSend(c.Request.Context(), middleware.GetCaller(c), projectID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, DigestResponse{Sent: result.Sent, Summary: result.Summary})
}
