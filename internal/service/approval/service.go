package approval

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"project-catalog/internal/domain"
	"project-catalog/internal/eventbus"
	"project-catalog/internal/repository"
)

// Service owns the approval status of a project: who may move it between
// PENDING, APPROVED and REJECTED. Every transition is saved before its event
// is published, and a failed save leaves the caller's project untouched.
type Service interface {
	Submit(ctx context.Context, actorID uuid.UUID, input domain.SubmitProjectInput) (*domain.Project, error)
	Resubmit(ctx context.Context, projectID, actorID uuid.UUID) (*domain.Project, error)
	Approve(ctx context.Context, projectID, approverID uuid.UUID) (*domain.Project, error)
	Reject(ctx context.Context, projectID, rejecterID uuid.UUID, reason string) (*domain.Project, error)
	AssignSupervisor(ctx context.Context, projectID, actorID, supervisorID uuid.UUID) (*domain.Project, error)

	GetByID(ctx context.Context, id uuid.UUID) (*domain.Project, error)
	ListPendingForSupervisor(ctx context.Context, supervisorID uuid.UUID) ([]domain.Project, error)
	ListUnassigned(ctx context.Context) ([]domain.Project, error)
}

type service struct {
	projectRepo repository.ProjectRepository
	userRepo    repository.UserRepository
	publisher   eventbus.Publisher
	now         func() time.Time
}

func NewService(projectRepo repository.ProjectRepository, userRepo repository.UserRepository, publisher eventbus.Publisher) Service {
	return &service{
		projectRepo: projectRepo,
		userRepo:    userRepo,
		publisher:   publisher,
		now:         func() time.Time { return time.Now().UTC() },
	}
}

func (s *service) Submit(ctx context.Context, actorID uuid.UUID, input domain.SubmitProjectInput) (*domain.Project, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, fmt.Errorf("%w: title is required", domain.ErrValidation)
	}
	if utf8.RuneCountInString(title) > domain.MaxTitleLength {
		return nil, fmt.Errorf("%w: title exceeds %d characters", domain.ErrValidation, domain.MaxTitleLength)
	}

	actor, err := s.userRepo.GetByID(ctx, actorID)
	if err != nil {
		return nil, fmt.Errorf("failed to get submitter: %w", err)
	}

	project := &domain.Project{
		ID:           uuid.New(),
		Title:        title,
		Description:  input.Description,
		OwnerID:      actor.ID,
		SupervisorID: input.SupervisorID,
	}

	approver, err := s.stampSubmission(ctx, project, actor)
	if err != nil {
		return nil, err
	}

	if err := s.projectRepo.Create(ctx, project); err != nil {
		return nil, fmt.Errorf("failed to create project: %w", err)
	}

	s.publishSubmitted(project, actor, approver)
	return project, nil
}

func (s *service) Resubmit(ctx context.Context, projectID, actorID uuid.UUID) (*domain.Project, error) {
	project, err := s.projectRepo.GetByID(ctx, projectID)
	if err != nil {
		return nil, err
	}

	actor, err := s.userRepo.GetByID(ctx, actorID)
	if err != nil {
		return nil, fmt.Errorf("failed to get submitter: %w", err)
	}

	if project.OwnerID != actor.ID && !actor.IsAdmin() {
		return nil, domain.ErrForbidden
	}

	updated := *project
	updated.RejectionReason = nil
	approver, err := s.stampSubmission(ctx, &updated, actor)
	if err != nil {
		return nil, err
	}

	if err := s.projectRepo.Update(ctx, &updated); err != nil {
		return nil, fmt.Errorf("failed to update project: %w", err)
	}

	s.publishSubmitted(&updated, actor, approver)
	return &updated, nil
}

func (s *service) Approve(ctx context.Context, projectID, approverID uuid.UUID) (*domain.Project, error) {
	project, approver, err := s.loadForReview(ctx, projectID, approverID)
	if err != nil {
		return nil, err
	}

	if project.ApprovalStatus == domain.StatusApproved {
		return project, nil
	}

	now := s.now()
	updated := *project
	updated.ApprovalStatus = domain.StatusApproved
	updated.ApprovedAt = &now
	updated.ApprovedBy = &approver.ID
	updated.RejectionReason = nil

	if err := s.projectRepo.Update(ctx, &updated); err != nil {
		return nil, fmt.Errorf("failed to approve project: %w", err)
	}

	s.publisher.Publish(domain.ProjectApproved{
		ProjectID:    updated.ID,
		OwnerID:      updated.OwnerID,
		Title:        updated.Title,
		ApproverName: approver.Name,
	})
	return &updated, nil
}

func (s *service) Reject(ctx context.Context, projectID, rejecterID uuid.UUID, reason string) (*domain.Project, error) {
	reason = strings.TrimSpace(reason)
	if utf8.RuneCountInString(reason) > domain.MaxRejectionReasonLength {
		return nil, fmt.Errorf("%w: reason exceeds %d characters", domain.ErrValidation, domain.MaxRejectionReasonLength)
	}

	project, rejecter, err := s.loadForReview(ctx, projectID, rejecterID)
	if err != nil {
		return nil, err
	}

	if project.ApprovalStatus == domain.StatusRejected {
		return project, nil
	}

	now := s.now()
	updated := *project
	updated.ApprovalStatus = domain.StatusRejected
	updated.ApprovedAt = &now
	updated.ApprovedBy = &rejecter.ID
	updated.RejectionReason = nil
	if reason != "" {
		updated.RejectionReason = &reason
	}

	if err := s.projectRepo.Update(ctx, &updated); err != nil {
		return nil, fmt.Errorf("failed to reject project: %w", err)
	}

	s.publisher.Publish(domain.ProjectRejected{
		ProjectID:    updated.ID,
		OwnerID:      updated.OwnerID,
		Title:        updated.Title,
		RejectorName: rejecter.Name,
		Reason:       reason,
	})
	return &updated, nil
}

func (s *service) AssignSupervisor(ctx context.Context, projectID, actorID, supervisorID uuid.UUID) (*domain.Project, error) {
	actor, err := s.userRepo.GetByID(ctx, actorID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if !actor.IsAdmin() {
		return nil, domain.ErrForbidden
	}

	project, err := s.projectRepo.GetByID(ctx, projectID)
	if err != nil {
		return nil, err
	}

	supervisor, err := s.resolveSupervisor(ctx, &supervisorID)
	if err != nil {
		return nil, err
	}

	updated := *project
	updated.SupervisorID = &supervisor.ID
	if err := s.projectRepo.Update(ctx, &updated); err != nil {
		return nil, fmt.Errorf("failed to assign supervisor: %w", err)
	}

	log.Info().Str("project_id", updated.ID.String()).Str("supervisor_id", supervisor.ID.String()).Msg("supervisor assigned")
	return &updated, nil
}

func (s *service) GetByID(ctx context.Context, id uuid.UUID) (*domain.Project, error) {
	return s.projectRepo.GetByID(ctx, id)
}

func (s *service) ListPendingForSupervisor(ctx context.Context, supervisorID uuid.UUID) ([]domain.Project, error) {
	return s.projectRepo.ListPendingBySupervisor(ctx, supervisorID)
}

func (s *service) ListUnassigned(ctx context.Context) ([]domain.Project, error) {
	return s.projectRepo.ListPendingWithoutSupervisor(ctx)
}

// stampSubmission sets the initial status for a (re)submitted project and
// returns the user who must be told about it.
func (s *service) stampSubmission(ctx context.Context, project *domain.Project, actor *domain.User) (*domain.User, error) {
	if actor.IsAdmin() {
		now := s.now()
		project.ApprovalStatus = domain.StatusApproved
		project.ApprovedAt = &now
		project.ApprovedBy = &actor.ID
		return actor, nil
	}

	supervisor, err := s.resolveSupervisor(ctx, project.SupervisorID)
	if err != nil {
		return nil, err
	}
	project.ApprovalStatus = domain.StatusPending
	project.ApprovedAt = nil
	project.ApprovedBy = nil
	return supervisor, nil
}

func (s *service) resolveSupervisor(ctx context.Context, supervisorID *uuid.UUID) (*domain.User, error) {
	if supervisorID == nil || *supervisorID == uuid.Nil {
		return nil, domain.ErrMissingSupervisor
	}

	supervisor, err := s.userRepo.GetByID(ctx, *supervisorID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("supervisor %s: %w", supervisorID, err)
		}
		return nil, fmt.Errorf("failed to get supervisor: %w", err)
	}

	if !supervisor.CanReview() {
		return nil, domain.ErrInvalidSupervisor
	}
	return supervisor, nil
}

// loadForReview fetches the project and reviewer and checks the reviewer may
// approve or reject it: the assigned supervisor, or any SUPERVISOR or ADMIN.
func (s *service) loadForReview(ctx context.Context, projectID, reviewerID uuid.UUID) (*domain.Project, *domain.User, error) {
	project, err := s.projectRepo.GetByID(ctx, projectID)
	if err != nil {
		return nil, nil, err
	}

	reviewer, err := s.userRepo.GetByID(ctx, reviewerID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get reviewer: %w", err)
	}

	if !project.IsSupervisedBy(reviewer.ID) && !reviewer.CanReview() {
		return nil, nil, domain.ErrUnauthorizedTransition
	}
	return project, reviewer, nil
}

func (s *service) publishSubmitted(project *domain.Project, owner, approver *domain.User) {
	s.publisher.Publish(domain.ProjectSubmitted{
		ProjectID:    project.ID,
		ApproverID:   approver.ID,
		OwnerName:    owner.Name,
		Title:        project.Title,
		ApproverName: approver.Name,
		SelfApproved: approver.ID == owner.ID,
	})
}
