package projects

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/portal/backend/internal/domain/audit"
	"github.com/portal/backend/internal/domain/authz"
	"github.com/portal/backend/internal/domain/project"
	"go.uber.org/zap"
)

// MilestoneService handles milestone operations. Milestones are always
// client-visible; only admins manage them.
type MilestoneService struct {
	projectRepo   project.ProjectRepository
	milestoneRepo project.MilestoneRepository
	recorder      AuditRecorder
	logger        *zap.Logger
}

// NewMilestoneService creates a milestone service
func NewMilestoneService(
	projectRepo project.ProjectRepository,
	milestoneRepo project.MilestoneRepository,
	recorder AuditRecorder,
	logger *zap.Logger,
) *MilestoneService {
	return &MilestoneService{
		projectRepo:   projectRepo,
		milestoneRepo: milestoneRepo,
		recorder:      recorder,
		logger:        logger,
	}
}

// Create appends a milestone at the end of the project's plan. Admin only.
func (s *MilestoneService) Create(ctx context.Context, caller authz.Caller, input CreateMilestoneInput) (*project.Milestone, error) {
	if err := authz.Authorize(caller, uuid.Nil, authz.OpWriteAdminOnly); err != nil {
		return nil, err
	}
	if _, err := s.projectRepo.FindByID(ctx, input.ProjectID); err != nil {
		return nil, err
	}

	maxOrder, err := s.milestoneRepo.MaxSortOrder(ctx, input.ProjectID)
	if err != nil {
		return nil, err
	}

	milestone, err := project.NewMilestone(input.ProjectID, input.Title, maxOrder+1)
	if err != nil {
		return nil, err
	}
	if err := milestone.Update(input.Title, input.Description, input.DueDate); err != nil {
		return nil, err
	}

	if err := s.milestoneRepo.Create(ctx, milestone); err != nil {
		return nil, err
	}

	s.recorder.Record(ctx, milestone.ProjectID, caller.UserID, audit.ActionMilestoneCreated,
		audit.EntityMilestone, milestone.ID,
		fmt.Sprintf("Created milestone: %s", milestone.Title))

	return milestone, nil
}

// List returns a project's milestones ordered by sort order
func (s *MilestoneService) List(ctx context.Context, caller authz.Caller, projectID uuid.UUID) ([]*project.Milestone, error) {
	proj, err := s.projectRepo.FindByID(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if err := authz.Authorize(caller, proj.ClientID, authz.OpReadOwn); err != nil {
		return nil, err
	}
	return s.milestoneRepo.FindByProjectID(ctx, projectID)
}

// Update applies milestone field updates. Admin only.
func (s *MilestoneService) Update(ctx context.Context, caller authz.Caller, milestoneID uuid.UUID, input UpdateMilestoneInput) (*project.Milestone, error) {
	if err := authz.Authorize(caller, uuid.Nil, authz.OpWriteAdminOnly); err != nil {
		return nil, err
	}

	milestone, err := s.milestoneRepo.FindByID(ctx, milestoneID)
	if err != nil {
		return nil, err
	}
	if err := milestone.Update(input.Title, input.Description, input.DueDate); err != nil {
		return nil, err
	}
	if err := s.milestoneRepo.Update(ctx, milestone); err != nil {
		return nil, err
	}
	return milestone, nil
}

// SetCompleted marks a milestone complete or reopens it. Admin only.
func (s *MilestoneService) SetCompleted(ctx context.Context, caller authz.Caller, milestoneID uuid.UUID, completed bool) (*project.Milestone, error) {
	if err := authz.Authorize(caller, uuid.Nil, authz.OpWriteAdminOnly); err != nil {
		return nil, err
	}

	milestone, err := s.milestoneRepo.FindByID(ctx, milestoneID)
	if err != nil {
		return nil, err
	}

	milestone.SetCompleted(completed)
	if err := s.milestoneRepo.Update(ctx, milestone); err != nil {
		return nil, err
	}

	if completed {
		s.recorder.Record(ctx, milestone.ProjectID, caller.UserID, audit.ActionMilestoneCompleted,
			audit.EntityMilestone, milestone.ID,
			fmt.Sprintf("Completed milestone: %s", milestone.Title))
	}

	return milestone, nil
}

// Delete removes a milestone. Admin only.
func (s *MilestoneService) Delete(ctx context.Context, caller authz.Caller, milestoneID uuid.UUID) error {
	if err := authz.Authorize(caller, uuid.Nil, authz.OpWriteAdminOnly); err != nil {
		return err
	}
	if _, err := s.milestoneRepo.FindByID(ctx, milestoneID); err != nil {
		return err
	}
	return s.milestoneRepo.Delete(ctx, milestoneID)
}
