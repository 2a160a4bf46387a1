package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/portal/backend/internal/domain/authz"
	"github.com/portal/backend/internal/domain/identity"
	"github.com/portal/backend/internal/domain/shared"
	"github.com/portal/backend/internal/infrastructure/auth"
	"github.com/portal/backend/internal/infrastructure/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type MockProfileRepository struct {
	mock.Mock
}

func (m *MockProfileRepository) Create(ctx context.Context, profile *identity.Profile) error {
	args := m.Called(ctx, profile)
	return args.Error(0)
}

func (m *MockProfileRepository) Update(ctx context.Context, profile *identity.Profile) error {
	args := m.Called(ctx, profile)
	return args.Error(0)
}

func (m *MockProfileRepository) FindByUserID(ctx context.Context, userID uuid.UUID) (*identity.Profile, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.Profile), args.Error(1)
}

func (m *MockProfileRepository) FindByRole(ctx context.Context, role identity.Role) ([]*identity.Profile, error) {
	args := m.Called(ctx, role)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*identity.Profile), args.Error(1)
}

func (m *MockProfileRepository) FindUserIDsByRole(ctx context.Context, role identity.Role) ([]uuid.UUID, error) {
	args := m.Called(ctx, role)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]uuid.UUID), args.Error(1)
}

func newTestJWTService(expiration time.Duration) *auth.JWTService {
	return auth.NewJWTService(config.JWTConfig{
		Secret:                "test-secret-key-for-unit-tests",
		AccessTokenExpiration: expiration,
		Issuer:                "portal-test",
	})
}

func authTestRouter(jwtService *auth.JWTService, profileRepo identity.ProfileRepository, capture *authz.Caller) *gin.Engine {
	router := gin.New()
	router.Use(Auth(AuthConfig{
		JWTService:  jwtService,
		ProfileRepo: profileRepo,
		SkipPaths:   []string{"/public"},
		Logger:      zap.NewNop(),
	}))
	router.GET("/protected", func(c *gin.Context) {
		*capture = GetCaller(c)
		c.Status(http.StatusOK)
	})
	router.GET("/public", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return router
}

func TestAuthResolvesCallerFromProfile(t *testing.T) {
	jwtService := newTestJWTService(time.Hour)
	repo := new(MockProfileRepository)
	userID := uuid.New()

	profile, err := identity.NewProfile(userID, identity.RoleAdmin, "Sam", "Porter")
	require.NoError(t, err)
	repo.On("FindByUserID", mock.Anything, userID).Return(profile, nil)

	// Role claim in the token is stale on purpose: the profile wins
	token, err := jwtService.GenerateToken(userID, "sam@example.com", "client")
	require.NoError(t, err)

	var caller authz.Caller
	router := authTestRouter(jwtService, repo, &caller)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token.AccessToken)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, userID, caller.UserID)
	assert.Equal(t, identity.RoleAdmin, caller.Role)
}

func TestAuthMissingProfileLeavesRoleEmpty(t *testing.T) {
	jwtService := newTestJWTService(time.Hour)
	repo := new(MockProfileRepository)
	userID := uuid.New()

	repo.On("FindByUserID", mock.Anything, userID).Return(nil, shared.ErrNotFound)

	token, err := jwtService.GenerateToken(userID, "sam@example.com", "client")
	require.NoError(t, err)

	var caller authz.Caller
	router := authTestRouter(jwtService, repo, &caller)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token.AccessToken)
	router.ServeHTTP(w, req)

	// The request proceeds; services answer PROFILE_MISSING downstream
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, userID, caller.UserID)
	assert.False(t, caller.Role.IsValid())
}

func TestAuthRejectsBadTokens(t *testing.T) {
	jwtService := newTestJWTService(time.Hour)
	repo := new(MockProfileRepository)

	var caller authz.Caller
	router := authTestRouter(jwtService, repo, &caller)

	tests := []struct {
		name   string
		header string
	}{
		{"missing header", ""},
		{"wrong scheme", "Basic dXNlcjpwYXNz"},
		{"empty token", "Bearer "},
		{"garbage token", "Bearer not.a.jwt"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			req := httptest.NewRequest("GET", "/protected", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			router.ServeHTTP(w, req)

			assert.Equal(t, http.StatusUnauthorized, w.Code)
			assert.Contains(t, w.Body.String(), "UNAUTHENTICATED")
		})
	}

	repo.AssertNotCalled(t, "FindByUserID", mock.Anything, mock.Anything)
}

func TestAuthRejectsExpiredToken(t *testing.T) {
	jwtService := newTestJWTService(-time.Minute)
	repo := new(MockProfileRepository)
	userID := uuid.New()

	token, err := jwtService.GenerateToken(userID, "sam@example.com", "client")
	require.NoError(t, err)

	var caller authz.Caller
	router := authTestRouter(jwtService, repo, &caller)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token.AccessToken)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "expired")
}

func TestAuthProfileLookupFailure(t *testing.T) {
	jwtService := newTestJWTService(time.Hour)
	repo := new(MockProfileRepository)
	userID := uuid.New()

	repo.On("FindByUserID", mock.Anything, userID).Return(nil, assert.AnError)

	token, err := jwtService.GenerateToken(userID, "sam@example.com", "client")
	require.NoError(t, err)

	var caller authz.Caller
	router := authTestRouter(jwtService, repo, &caller)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token.AccessToken)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "INTERNAL_ERROR")
}

func TestAuthSkipPaths(t *testing.T) {
	jwtService := newTestJWTService(time.Hour)
	repo := new(MockProfileRepository)

	var caller authz.Caller
	router := authTestRouter(jwtService, repo, &caller)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/public", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestGetCallerUnauthenticated(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	caller := GetCaller(c)
	assert.Equal(t, uuid.Nil, caller.UserID)
	assert.Equal(t, uuid.Nil, GetUserID(c))
	assert.Nil(t, GetClaims(c))
}
