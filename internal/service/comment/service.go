package comment

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"project-catalog/internal/domain"
	"project-catalog/internal/eventbus"
	"project-catalog/internal/repository"
)

type Service interface {
	Create(ctx context.Context, projectID, userID uuid.UUID, input domain.CreateCommentInput) (*domain.Comment, error)
	ListByProject(ctx context.Context, projectID uuid.UUID) ([]domain.Comment, error)
}

type service struct {
	commentRepo repository.CommentRepository
	projectRepo repository.ProjectRepository
	userRepo    repository.UserRepository
	publisher   eventbus.Publisher
}

func NewService(commentRepo repository.CommentRepository, projectRepo repository.ProjectRepository, userRepo repository.UserRepository, publisher eventbus.Publisher) Service {
	return &service{
		commentRepo: commentRepo,
		projectRepo: projectRepo,
		userRepo:    userRepo,
		publisher:   publisher,
	}
}

// Create stores a comment and publishes CommentCreated for the project owner.
// The comment is already committed when the event is built, so a failed owner
// lookup is logged and the comment still returned.
func (s *service) Create(ctx context.Context, projectID, userID uuid.UUID, input domain.CreateCommentInput) (*domain.Comment, error) {
	content := strings.TrimSpace(input.Content)
	if content == "" {
		return nil, fmt.Errorf("%w: content is required", domain.ErrValidation)
	}
	if utf8.RuneCountInString(content) > domain.MaxCommentLength {
		return nil, fmt.Errorf("%w: content exceeds %d characters", domain.ErrValidation, domain.MaxCommentLength)
	}

	project, err := s.projectRepo.GetByID(ctx, projectID)
	if err != nil {
		return nil, err
	}

	commenter, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get commenter: %w", err)
	}

	comment := &domain.Comment{
		ID:         uuid.New(),
		ProjectID:  project.ID,
		UserID:     commenter.ID,
		Content:    content,
		AuthorName: commenter.Name,
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, err
	}

	owner, err := s.userRepo.GetByID(ctx, project.OwnerID)
	if err != nil {
		log.Error().Err(err).
			Str("project_id", project.ID.String()).
			Str("comment_id", comment.ID.String()).
			Msg("comment stored but owner lookup failed, CommentCreated not published")
		return comment, nil
	}

	s.publisher.Publish(domain.CommentCreated{
		ProjectID:     project.ID,
		CommentID:     comment.ID,
		OwnerID:       owner.ID,
		OwnerRole:     owner.Role,
		CommentText:   comment.Content,
		CommenterName: commenter.Name,
	})
	return comment, nil
}

func (s *service) ListByProject(ctx context.Context, projectID uuid.UUID) ([]domain.Comment, error) {
	if _, err := s.projectRepo.GetByID(ctx, projectID); err != nil {
		return nil, err
	}
	return s.commentRepo.ListByProject(ctx, projectID)
}
