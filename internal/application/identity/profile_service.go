package identity

import (
	"context"

	"github.com/google/uuid"
	"github.com/portal/backend/internal/domain/authz"
	"github.com/portal/backend/internal/domain/identity"
	"github.com/portal/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// ProfileService handles profile reads and updates
type ProfileService struct {
	userRepo    identity.UserRepository
	profileRepo identity.ProfileRepository
	logger      *zap.Logger
}

// NewProfileService creates a profile service
func NewProfileService(
	userRepo identity.UserRepository,
	profileRepo identity.ProfileRepository,
	logger *zap.Logger,
) *ProfileService {
	return &ProfileService{
		userRepo:    userRepo,
		profileRepo: profileRepo,
		logger:      logger,
	}
}

// Get returns a user's profile. Users read their own; admins read any.
func (s *ProfileService) Get(ctx context.Context, caller authz.Caller, userID uuid.UUID) (*UserInfo, error) {
	if caller.UserID == uuid.Nil {
		return nil, shared.ErrUnauthenticated
	}
	if caller.UserID != userID && caller.Role != identity.RoleAdmin {
		return nil, shared.ErrAccessDenied
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

// Update modifies a profile. Users update their own details; admins update
// anyone's. A role change rides on the same input but is admin-gated
// separately: a client can never escalate their own role.
func (s *ProfileService) Update(ctx context.Context, caller authz.Caller, userID uuid.UUID, input UpdateProfileInput) (*UserInfo, error) {
	if caller.UserID == uuid.Nil {
		return nil, shared.ErrUnauthenticated
	}
	if caller.UserID != userID && caller.Role != identity.RoleAdmin {
		return nil, shared.ErrAccessDenied
	}

	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	profile, err := s.profileRepo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, shared.ErrProfileMissing
	}

	if err := profile.UpdateDetails(input.FirstName, input.LastName, input.Company, input.Phone); err != nil {
		return nil, err
	}

	if input.Role != "" && input.Role != profile.Role {
		if caller.Role != identity.RoleAdmin {
			return nil, shared.ErrAccessDenied
		}
		if err := profile.ChangeRole(input.Role); err != nil {
			return nil, err
		}
		s.logger.Info("Profile role changed",
			zap.String("user_id", userID.String()),
			zap.String("role", string(input.Role)),
			zap.String("changed_by", caller.UserID.String()))
	}

	if err := s.profileRepo.Update(ctx, profile); err != nil {
		return nil, err
	}

	info := userInfo(user, profile)
	return &info, nil
}

// ListClients returns all client users. Admin only; resolved through the
// role index.
func (s *ProfileService) ListClients(ctx context.Context, caller authz.Caller) ([]UserInfo, error) {
	if err := authz.Authorize(caller, uuid.Nil, authz.OpWriteAdminOnly); err != nil {
		return nil, err
	}

	profiles, err := s.profileRepo.FindByRole(ctx, identity.RoleClient)
	if err != nil {
		return nil, err
	}

	infos := make([]UserInfo, 0, len(profiles))
	for _, profile := range profiles {
		user, err := s.userRepo.FindByID(ctx, profile.UserID)
		if err != nil {
			s.logger.Warn("Client profile without user record",
				zap.String("user_id", profile.UserID.String()),
				zap.Error(err))
			continue
		}
		infos = append(infos, userInfo(user, profile))
	}
	return infos, nil
}
