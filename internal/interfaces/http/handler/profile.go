package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/portal/backend/internal/application/identity"
	domainidentity "github.com/portal/backend/internal/domain/identity"
	"github.com/portal/backend/internal/interfaces/http/middleware"
)

// ProfileHandler handles profile and client-roster HTTP requests
type ProfileHandler struct {
	BaseHandler
	profileService    *identity.ProfileService
	invitationService *identity.InvitationService
}

// NewProfileHandler creates a new profile handler
func NewProfileHandler(profileService *identity.ProfileService, invitationService *identity.InvitationService) *ProfileHandler {
	return &ProfileHandler{
		profileService:    profileService,
		invitationService: invitationService,
	}
}

// RegisterRoutes registers profile and client routes
func (h *ProfileHandler) RegisterRoutes(rg *gin.RouterGroup) {
	profiles := rg.Group("/profiles")
	{
		profiles.GET("/:id", h.Get)
		profiles.PUT("/:id", h.Update)
	}

	clients := rg.Group("/clients")
	{
		clients.GET("", h.ListClients)
		clients.POST("/invite", h.InviteClient)
	}
}

// UpdateProfileRequest represents a profile update. Role is optional and
// admin-only; omitting it leaves the role unchanged.
type UpdateProfileRequest struct {
	FirstName string `json:"first_name" binding:"required" example:"Janet"`
	LastName  string `json:"last_name" binding:"required" example:"Fraser"`
	Company   string `json:"company" example:"Fraser Interiors"`
	Phone     string `json:"phone" example:"+44 20 7946 0123"`
	Role      string `json:"role,omitempty" binding:"omitempty,role" enums:"admin,client"`
}

// InviteClientRequest represents an admin's client invitation
type InviteClientRequest struct {
	Email     string `json:"email" binding:"required,email" example:"client@example.com"`
	FirstName string `json:"first_name" binding:"required" example:"Janet"`
	LastName  string `json:"last_name" binding:"required" example:"Fraser"`
	Company   string `json:"company" example:"Fraser Interiors"`
}

// Get godoc
// @Summary      Get a user profile
// @Description  Clients may read their own profile; admins may read any
// @Tags         profiles
// @Produce      json
// @Param        id path string true "User ID"
// @Success      200 {object} dto.Response{data=UserResponse}
// @Failure      403 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /profiles/{id} [get]
func (h *ProfileHandler) Get(c *gin.Context) {
	userID, ok := h.bindID(c)
	if !ok {
		return
	}

	info, err := h.profileService.Get(c.Request.Context(), middleware.GetCaller(c), userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, toUserResponse(info))
}

// Update godoc
// @Summary      Update a user profile
// @Description  Users update their own details; role changes are admin-only
// @Tags         profiles
// @Accept       json
// @Produce      json
// @Param        id path string true "User ID"
// @Param        request body UpdateProfileRequest true "Profile fields"
// @Success      200 {object} dto.Response{data=UserResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      403 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /profiles/{id} [put]
func (h *ProfileHandler) Update(c *gin.Context) {
	userID, ok := h.bindID(c)
	if !ok {
		return
	}

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	info, err := h.profileService.Update(c.Request.Context(), middleware.GetCaller(c), userID, identity.UpdateProfileInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Company:   req.Company,
		Phone:     req.Phone,
		Role:      domainidentity.Role(req.Role),
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, toUserResponse(info))
}

// ListClients godoc
// @Summary      List all clients
// @Description  Admin-only roster of client accounts
// @Tags         profiles
// @Produce      json
// @Success      200 {object} dto.Response{data=[]UserResponse}
// @Failure      403 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /clients [get]
func (h *ProfileHandler) ListClients(c *gin.Context) {
	infos, err := h.profileService.ListClients(c.Request.Context(), middleware.GetCaller(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	responses := make([]UserResponse, len(infos))
	for i := range infos {
		responses[i] = toUserResponse(&infos[i])
	}

	h.Success(c, responses)
}

// InviteClient godoc
// @Summary      Invite a client
// @Description  Creates a pre-verified client account and emails an invitation
// @Tags         profiles
// @Accept       json
// @Produce      json
// @Param        request body InviteClientRequest true "Invitation details"
// @Success      201 {object} dto.Response{data=UserResponse}
// @Failure      403 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /clients/invite [post]
func (h *ProfileHandler) InviteClient(c *gin.Context) {
	var req InviteClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	info, err := h.invitationService.InviteClient(c.Request.Context(), middleware.GetCaller(c), identity.InviteClientInput{
		Email:     req.Email,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Company:   req.Company,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, toUserResponse(info))
}
