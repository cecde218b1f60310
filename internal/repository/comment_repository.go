package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"project-catalog/internal/domain"
)

type CommentRepository interface {
	Create(ctx context.Context, comment *domain.Comment) error
	ListByProject(ctx context.Context, projectID uuid.UUID) ([]domain.Comment, error)
}

type commentRepository struct {
	db *sqlx.DB
}

func NewCommentRepository(db *sqlx.DB) CommentRepository {
	return &commentRepository{db: db}
}

func (r *commentRepository) Create(ctx context.Context, comment *domain.Comment) error {
	if comment.ID == uuid.Nil {
		comment.ID = uuid.New()
	}
	comment.CreatedAt = time.Now().UTC()

	query := r.db.Rebind(`
		INSERT INTO comments (id, project_id, user_id, content, created_at)
		VALUES (?, ?, ?, ?, ?)`)

	_, err := r.db.ExecContext(ctx, query,
		comment.ID, comment.ProjectID, comment.UserID, comment.Content, comment.CreatedAt,
	)
	return err
}

func (r *commentRepository) ListByProject(ctx context.Context, projectID uuid.UUID) ([]domain.Comment, error) {
	comments := []domain.Comment{}
	query := r.db.Rebind(`
		SELECT c.id, c.project_id, c.user_id, c.content, c.created_at, u.name AS author_name
		FROM comments c
		JOIN users u ON u.id = c.user_id
		WHERE c.project_id = ?
		ORDER BY c.created_at DESC`)
	err := r.db.SelectContext(ctx, &comments, query, projectID)
	return comments, err
}
