package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"project-catalog/internal/domain"
)

type ReactionRepository interface {
	Find(ctx context.Context, projectID, userID uuid.UUID) (*domain.Reaction, error)
	Create(ctx context.Context, reaction *domain.Reaction) error
	Delete(ctx context.Context, id uuid.UUID) error
	CountByProject(ctx context.Context, projectID uuid.UUID) (int64, error)
}

type reactionRepository struct {
	db *sqlx.DB
}

func NewReactionRepository(db *sqlx.DB) ReactionRepository {
	return &reactionRepository{db: db}
}

func (r *reactionRepository) Find(ctx context.Context, projectID, userID uuid.UUID) (*domain.Reaction, error) {
	var reaction domain.Reaction
	query := r.db.Rebind(`SELECT id, project_id, user_id, created_at FROM reactions WHERE project_id = ? AND user_id = ?`)
	if err := r.db.GetContext(ctx, &reaction, query, projectID, userID); err != nil {
		return nil, notFound(err, "reaction")
	}
	return &reaction, nil
}

func (r *reactionRepository) Create(ctx context.Context, reaction *domain.Reaction) error {
	if reaction.ID == uuid.Nil {
		reaction.ID = uuid.New()
	}
	reaction.CreatedAt = time.Now().UTC()

	query := r.db.Rebind(`INSERT INTO reactions (id, project_id, user_id, created_at) VALUES (?, ?, ?, ?)`)
	_, err := r.db.ExecContext(ctx, query, reaction.ID, reaction.ProjectID, reaction.UserID, reaction.CreatedAt)
	return err
}

func (r *reactionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := r.db.Rebind(`DELETE FROM reactions WHERE id = ?`)
	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}
	return expectAffected(res, "reaction")
}

func (r *reactionRepository) CountByProject(ctx context.Context, projectID uuid.UUID) (int64, error) {
	var count int64
	query := r.db.Rebind(`SELECT COUNT(*) FROM reactions WHERE project_id = ?`)
	err := r.db.GetContext(ctx, &count, query, projectID)
	return count, err
}
