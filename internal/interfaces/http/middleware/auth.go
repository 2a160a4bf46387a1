package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/portal/backend/internal/domain/authz"
	"github.com/portal/backend/internal/domain/identity"
	"github.com/portal/backend/internal/domain/shared"
	"github.com/portal/backend/internal/infrastructure/auth"
	"go.uber.org/zap"
)

// Context keys for the authenticated caller
const (
	CallerKey     = "auth_caller"
	ClaimsKey     = "auth_claims"
	AuthHeaderKey = "Authorization"
	BearerPrefix  = "Bearer "
)

// AuthConfig holds configuration for the authentication middleware
type AuthConfig struct {
	// JWTService validates bearer tokens
	JWTService *auth.JWTService
	// ProfileRepo resolves the caller's current role
	ProfileRepo identity.ProfileRepository
	// SkipPaths are exact paths that don't require authentication
	SkipPaths []string
	// Logger for middleware logging
	Logger *zap.Logger
}

// Auth validates the bearer token and resolves the caller's profile from
// the database on every request. The role claim inside the token is never
// trusted for authorization: a role change by an admin takes effect on the
// subject's next request, not at token expiry.
func Auth(cfg AuthConfig) gin.HandlerFunc {
	jwtService, profileRepo, logger := cfg.JWTService, cfg.ProfileRepo, cfg.Logger

	return func(c *gin.Context) {
		path := c.Request.URL.Path
		for _, skip := range cfg.SkipPaths {
			if path == skip {
				c.Next()
				return
			}
		}

		authHeader := c.GetHeader(AuthHeaderKey)
		if authHeader == "" {
			abortUnauthorized(c, "Missing authorization header")
			return
		}
		if !strings.HasPrefix(authHeader, BearerPrefix) {
			abortUnauthorized(c, "Invalid authorization header format")
			return
		}

		tokenString := strings.TrimPrefix(authHeader, BearerPrefix)
		if tokenString == "" {
			abortUnauthorized(c, "Missing token")
			return
		}

		claims, err := jwtService.ValidateToken(tokenString)
		if err != nil {
			if logger != nil {
				logger.Warn("Token validation failed",
					zap.Error(err),
					zap.String("path", c.Request.URL.Path))
			}
			if errors.Is(err, auth.ErrExpiredToken) {
				abortUnauthorized(c, "Token has expired")
				return
			}
			abortUnauthorized(c, "Invalid token")
			return
		}

		userID, err := claims.GetUserUUID()
		if err != nil {
			abortUnauthorized(c, "Invalid user ID in token")
			return
		}

		caller := authz.Caller{UserID: userID}
		profile, err := profileRepo.FindByUserID(c.Request.Context(), userID)
		switch {
		case err == nil:
			caller.Role = profile.Role
		case errors.Is(err, shared.ErrNotFound):
			// Leave the role empty: services answer PROFILE_MISSING
		default:
			if logger != nil {
				logger.Error("Failed to resolve caller profile",
					zap.String("user_id", userID.String()),
					zap.Error(err))
			}
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "INTERNAL_ERROR",
					"message": "Failed to resolve caller identity",
				},
			})
			return
		}

		c.Set(ClaimsKey, claims)
		c.Set(CallerKey, caller)
		c.Next()
	}
}

func abortUnauthorized(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"success": false,
		"error": gin.H{
			"code":    "UNAUTHENTICATED",
			"message": message,
		},
	})
}

// GetCaller returns the authenticated caller from the context. The zero
// Caller is returned on unauthenticated requests.
func GetCaller(c *gin.Context) authz.Caller {
	if v, exists := c.Get(CallerKey); exists {
		if caller, ok := v.(authz.Caller); ok {
			return caller
		}
	}
	return authz.Caller{}
}

// GetUserID returns the authenticated user's ID, or uuid.Nil
func GetUserID(c *gin.Context) uuid.UUID {
	return GetCaller(c).UserID
}

// GetClaims returns the validated token claims, or nil
func GetClaims(c *gin.Context) *auth.Claims {
	if v, exists := c.Get(ClaimsKey); exists {
		if claims, ok := v.(*auth.Claims); ok {
			return claims
		}
	}
	return nil
}
