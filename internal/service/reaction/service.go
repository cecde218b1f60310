package reaction

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"project-catalog/internal/domain"
	"project-catalog/internal/eventbus"
	"project-catalog/internal/repository"
)

type Service interface {
	Toggle(ctx context.Context, projectID, userID uuid.UUID) (*domain.ReactionResult, error)
}

type service struct {
	reactionRepo repository.ReactionRepository
	projectRepo  repository.ProjectRepository
	userRepo     repository.UserRepository
	publisher    eventbus.Publisher
}

func NewService(reactionRepo repository.ReactionRepository, projectRepo repository.ProjectRepository, userRepo repository.UserRepository, publisher eventbus.Publisher) Service {
	return &service{
		reactionRepo: reactionRepo,
		projectRepo:  projectRepo,
		userRepo:     userRepo,
		publisher:    publisher,
	}
}

// Toggle removes the user's reaction if present, otherwise adds one. Only an
// added reaction by someone other than the owner publishes an event.
func (s *service) Toggle(ctx context.Context, projectID, userID uuid.UUID) (*domain.ReactionResult, error) {
	project, err := s.projectRepo.GetByID(ctx, projectID)
	if err != nil {
		return nil, err
	}

	result := &domain.ReactionResult{ProjectID: project.ID, UserID: userID}

	existing, err := s.reactionRepo.Find(ctx, project.ID, userID)
	switch {
	case err == nil:
		if err := s.reactionRepo.Delete(ctx, existing.ID); err != nil {
			return nil, fmt.Errorf("failed to remove reaction: %w", err)
		}
	case errors.Is(err, domain.ErrNotFound):
		reactor, err := s.userRepo.GetByID(ctx, userID)
		if err != nil {
			return nil, fmt.Errorf("failed to get reactor: %w", err)
		}

		reaction := &domain.Reaction{ID: uuid.New(), ProjectID: project.ID, UserID: reactor.ID}
		if err := s.reactionRepo.Create(ctx, reaction); err != nil {
			return nil, fmt.Errorf("failed to add reaction: %w", err)
		}
		result.Reacted = true

		if project.OwnerID != reactor.ID {
			s.publisher.Publish(domain.ReactionAdded{
				ProjectID:   project.ID,
				OwnerID:     project.OwnerID,
				ReactionID:  reaction.ID,
				Title:       project.Title,
				ReactorName: reactor.Name,
			})
		}
	default:
		return nil, err
	}

	total, err := s.reactionRepo.CountByProject(ctx, project.ID)
	if err != nil {
		return nil, err
	}
	result.TotalReactions = total
	return result, nil
}
