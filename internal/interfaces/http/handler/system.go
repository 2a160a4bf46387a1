package handler

import (
	"time"

	"github.com/gin-gonic/gin"
)

// HealthResponse represents the service health status
type HealthResponse struct {
	Status  string `json:"status" example:"ok"`
	Name    string `json:"name" example:"portal-backend"`
	Env     string `json:"env" example:"development"`
	Time    string `json:"time" example:"2026-01-24T12:00:00Z"`
	Version string `json:"version,omitempty"`
}

// SystemHandler handles service-level HTTP requests
type SystemHandler struct {
	BaseHandler
	appName string
	env     string
}

// NewSystemHandler creates a new system handler
func NewSystemHandler(appName, env string) *SystemHandler {
	return &SystemHandler{
		appName: appName,
		env:     env,
	}
}

// RegisterRoutes registers system routes
func (h *SystemHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/health", h.Health)
}

// Health godoc
// @Summary      Health check
// @Tags         system
// @Produce      json
// @Success      200 {object} dto.Response{data=HealthResponse}
// @Router       /health [get]
func (h *SystemHandler) Health(c *gin.Context) {
	h.Success(c, HealthResponse{
		Status: "ok",
		Name:   h.appName,
		Env:    h.env,
		Time:   time.Now().UTC().Format(time.RFC3339),
	})
}
