package identity

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/portal/backend/internal/domain/audit"
	"github.com/portal/backend/internal/domain/authz"
	"github.com/portal/backend/internal/domain/identity"
	"github.com/portal/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// InvitationMailer sends the invitation email. Implemented by the
// transactional email sender in infrastructure.
type InvitationMailer interface {
	Send(ctx context.Context, to, subject, html string) error
}

// AuditRecorder records invitation mutations in the audit trail
type AuditRecorder interface {
	Record(ctx context.Context, projectID, actorID uuid.UUID, action, entityType string, entityID uuid.UUID, details string)
}

// InvitationService creates invited client accounts on behalf of admins
type InvitationService struct {
	userRepo    identity.UserRepository
	profileRepo identity.ProfileRepository
	mailer      InvitationMailer
	recorder    AuditRecorder
	portalURL   string
	logger      *zap.Logger
}

// NewInvitationService creates an invitation service
func NewInvitationService(
	userRepo identity.UserRepository,
	profileRepo identity.ProfileRepository,
	mailer InvitationMailer,
	recorder AuditRecorder,
	portalURL string,
	logger *zap.Logger,
) *InvitationService {
	return &InvitationService{
		userRepo:    userRepo,
		profileRepo: profileRepo,
		mailer:      mailer,
		recorder:    recorder,
		portalURL:   portalURL,
		logger:      logger,
	}
}

// InviteClient creates a verified, passwordless client account and sends
// the invitation email. Admin only. The email is best-effort: the account
// exists even when the send fails.
func (s *InvitationService) InviteClient(ctx context.Context, caller authz.Caller, input InviteClientInput) (*UserInfo, error) {
	if err := authz.Authorize(caller, uuid.Nil, authz.OpWriteAdminOnly); err != nil {
		return nil, err
	}

	exists, err := s.userRepo.ExistsByEmail(ctx, input.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.ErrAlreadyExists
	}

	user, err := identity.NewInvitedUser(input.Email)
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
	if input.Company != "" {
		if err := profile.UpdateDetails(input.FirstName, input.LastName, input.Company, ""); err != nil {
			return nil, err
		}
	}
	if err := s.profileRepo.Create(ctx, profile); err != nil {
		return nil, err
	}

	s.recorder.Record(ctx, uuid.Nil, caller.UserID, audit.ActionClientInvited,
		audit.EntityUser, user.ID, user.Email)

	s.logger.Info("Client invited",
		zap.String("user_id", user.ID.String()),
		zap.String("invited_by", caller.UserID.String()))

	if err := s.mailer.Send(ctx, user.Email,
		"You're invited to the client portal",
		s.renderInvitationEmail(profile.FirstName)); err != nil {
		s.logger.Warn("Invitation email failed",
			zap.String("user_id", user.ID.String()),
			zap.Error(err))
	}

	info := userInfo(user, profile)
	return &info, nil
}

func (s *InvitationService) renderInvitationEmail(firstName string) string {
	return fmt.Sprintf(`Hi %s,<br/><br/>
You've been invited to join our client portal. Please click the link below to set up your account:<br/>
<a href="%s">Join Now</a>`, firstName, s.portalURL)
}
