// Package identity implements the application services for accounts,
// profiles, and admin client invitations.
package identity

import (
	"context"

	"github.com/google/uuid"
	"github.com/portal/backend/internal/domain/identity"
	"github.com/portal/backend/internal/domain/shared"
	"github.com/portal/backend/internal/infrastructure/auth"
	"go.uber.org/zap"
)

// AuthService handles registration, login, and the current-user lookup
type AuthService struct {
	userRepo    identity.UserRepository
	profileRepo identity.ProfileRepository
	jwtService  *auth.JWTService
	logger      *zap.Logger
}

// NewAuthService creates an authentication service
func NewAuthService(
	userRepo identity.UserRepository,
	profileRepo identity.ProfileRepository,
	jwtService *auth.JWTService,
	logger *zap.Logger,
) *AuthService {
	return &AuthService{
		userRepo:    userRepo,
		profileRepo: profileRepo,
		jwtService:  jwtService,
		logger:      logger,
	}
}

// Register creates a self-registered account. The profile role is forced
// to client: self-registration can never mint an admin.
func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*AuthResult, error) {
	exists, err := s.userRepo.ExistsByEmail(ctx, input.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.ErrAlreadyExists
	}

	user, err := identity.NewUser(input.Email, input.Password)
	if err != nil {
		return nil, err
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	profile, err := identity.NewProfile(user.ID, identity.RoleClient, input.FirstName, input.LastName)
	if err != nil {
		return nil, err
	}
	if err := s.profileRepo.Create(ctx, profile); err != nil {
		return nil, err
	}

	s.logger.Info("User registered",
		zap.String("user_id", user.ID.String()),
		zap.String("email", user.Email))

	return s.issueToken(user, profile)
}

// Login authenticates a user and returns a token
func (s *AuthService) Login(ctx context.Context, input LoginInput) (*AuthResult, error) {
	user, err := s.userRepo.FindByEmail(ctx, input.Email)
	if err != nil {
		s.logger.Warn("Login attempt for unknown email", zap.String("email", input.Email))
		return nil, shared.NewDomainError("INVALID_CREDENTIALS", "Invalid email or password")
	}

	if !user.CanLogin() {
		if !user.IsActive {
			s.logger.Warn("Login attempt for deactivated account", zap.String("user_id", user.ID.String()))
			return nil, shared.NewDomainError("ACCOUNT_DEACTIVATED", "Account has been deactivated")
		}
		// Invited account that never completed password setup.
		return nil, shared.NewDomainError("ACCOUNT_PENDING", "Account setup is not complete")
	}

	if !user.VerifyPassword(input.Password) {
		s.logger.Warn("Invalid password attempt", zap.String("user_id", user.ID.String()))
		return nil, shared.NewDomainError("INVALID_CREDENTIALS", "Invalid email or password")
	}

	profile, err := s.profileRepo.FindByUserID(ctx, user.ID)
	if err != nil {
		s.logger.Error("Authenticated user has no profile", zap.String("user_id", user.ID.String()))
		return nil, shared.ErrProfileMissing
	}

	user.RecordLoginSuccess()
	if err := s.userRepo.Update(ctx, user); err != nil {
		// Login still succeeds; the timestamp is advisory.
		s.logger.Error("Failed to record login success", zap.Error(err))
	}

	s.logger.Info("User logged in",
		zap.String("user_id", user.ID.String()),
		zap.String("role", string(profile.Role)))

	return s.issueToken(user, profile)
}

// CurrentUser returns the authenticated user's info. A user without a
// profile is a configuration error, reported as ProfileMissing rather than
// denial.
func (s *AuthService) CurrentUser(ctx context.Context, userID uuid.UUID) (*UserInfo, error) {
	if userID == uuid.Nil {
		return nil, shared.ErrUnauthenticated
	}

	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	profile, err := s.profileRepo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, shared.ErrProfileMissing
	}

	info := userInfo(user, profile)
	return &info, nil
}

func (s *AuthService) issueToken(user *identity.User, profile *identity.Profile) (*AuthResult, error) {
	token, err := s.jwtService.GenerateToken(user.ID, user.Email, string(profile.Role))
	if err != nil {
		s.logger.Error("Failed to generate token", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to generate authentication token")
	}

	return &AuthResult{
		AccessToken: token.AccessToken,
		ExpiresAt:   token.ExpiresAt,
		TokenType:   token.TokenType,
		User:        userInfo(user, profile),
	}, nil
}

func userInfo(user *identity.User, profile *identity.Profile) UserInfo {
	return UserInfo{
		ID:        user.ID,
		Email:     user.Email,
		Role:      profile.Role,
		FirstName: profile.FirstName,
		LastName:  profile.LastName,
		Company:   profile.Company,
		Phone:     profile.Phone,
		IsActive:  user.IsActive,
	}
}
