package projects

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/portal/backend/internal/domain/audit"
	"github.com/portal/backend/internal/domain/authz"
	"github.com/portal/backend/internal/domain/identity"
	"github.com/portal/backend/internal/domain/project"
	"go.uber.org/zap"
)

// ChangeRequestService handles client-raised variations. The decision
// direction is inverted relative to approvals: the client raises, an admin
// decides.
type ChangeRequestService struct {
	projectRepo project.ProjectRepository
	crRepo      project.ChangeRequestRepository
	profileRepo identity.ProfileRepository
	recorder    AuditRecorder
	logger      *zap.Logger
}

// NewChangeRequestService creates a change-request service
func NewChangeRequestService(
	projectRepo project.ProjectRepository,
	crRepo project.ChangeRequestRepository,
	profileRepo identity.ProfileRepository,
	recorder AuditRecorder,
	logger *zap.Logger,
) *ChangeRequestService {
	return &ChangeRequestService{
		projectRepo: projectRepo,
		crRepo:      crRepo,
		profileRepo: profileRepo,
		recorder:    recorder,
		logger:      logger,
	}
}

// Create raises a change request. Only the owning client may raise one.
func (s *ChangeRequestService) Create(ctx context.Context, caller authz.Caller, input CreateChangeRequestInput) (*project.ChangeRequest, error) {
	proj, err := s.projectRepo.FindByID(ctx, input.ProjectID)
	if err != nil {
		return nil, err
	}
	if err := authz.Authorize(caller, proj.ClientID, authz.OpWriteClientOfOwn); err != nil {
		return nil, err
	}

	cr, err := project.NewChangeRequest(input.ProjectID, input.Title, input.Description, caller.UserID)
	if err != nil {
		return nil, err
	}
	if err := s.crRepo.Create(ctx, cr); err != nil {
		return nil, err
	}

	s.recorder.Record(ctx, cr.ProjectID, caller.UserID, audit.ActionChangeRequestCreated,
		audit.EntityChangeRequest, cr.ID,
		fmt.Sprintf("Created change request: %s", cr.Title))

	return cr, nil
}

// List returns a project's change requests with requester enrichment
func (s *ChangeRequestService) List(ctx context.Context, caller authz.Caller, projectID uuid.UUID) ([]*ChangeRequestView, error) {
	proj, err := s.projectRepo.FindByID(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if err := authz.Authorize(caller, proj.ClientID, authz.OpReadOwn); err != nil {
		return nil, err
	}

	items, err := s.crRepo.FindByProjectID(ctx, projectID)
	if err != nil {
		return nil, err
	}

	views := make([]*ChangeRequestView, 0, len(items))
	names := newNameResolver(s.profileRepo)
	for _, cr := range items {
		views = append(views, &ChangeRequestView{
			ChangeRequest: cr,
			RequesterName: names.resolve(ctx, cr.RequestedBy),
		})
	}
	return views, nil
}

// StartReview moves a pending request into review. Admin only.
func (s *ChangeRequestService) StartReview(ctx context.Context, caller authz.Caller, requestID uuid.UUID) (*project.ChangeRequest, error) {
	if err := authz.Authorize(caller, uuid.Nil, authz.OpWriteAdminOnly); err != nil {
		return nil, err
	}

	cr, err := s.crRepo.FindByID(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if err := cr.StartReview(caller.UserID); err != nil {
		return nil, err
	}
	if err := s.crRepo.Update(ctx, cr); err != nil {
		return nil, err
	}
	return cr, nil
}

// Respond records the admin's terminal decision with an optional estimate
func (s *ChangeRequestService) Respond(ctx context.Context, caller authz.Caller, requestID uuid.UUID, input RespondChangeRequestInput) (*project.ChangeRequest, error) {
	if err := authz.Authorize(caller, uuid.Nil, authz.OpWriteAdminOnly); err != nil {
		return nil, err
	}

	cr, err := s.crRepo.FindByID(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if err := cr.Respond(input.Decision, caller.UserID, input.Response, input.EstimatedCost, input.EstimatedTime); err != nil {
		return nil, err
	}
	if err := s.crRepo.Update(ctx, cr); err != nil {
		return nil, err
	}

	s.recorder.Record(ctx, cr.ProjectID, caller.UserID, audit.ActionChangeRequestDecided,
		audit.EntityChangeRequest, cr.ID,
		fmt.Sprintf("%s change request: %s", input.Decision, cr.Title))

	return cr, nil
}
