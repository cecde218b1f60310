package repository

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"project-catalog/internal/domain"
)

type Repositories struct {
	User         UserRepository
	Project      ProjectRepository
	Notification NotificationRepository
	Comment      CommentRepository
	Reaction     ReactionRepository
}

func NewRepositories(db *sqlx.DB) *Repositories {
	return &Repositories{
		User:         NewUserRepository(db),
		Project:      NewProjectRepository(db),
		Notification: NewNotificationRepository(db),
		Comment:      NewCommentRepository(db),
		Reaction:     NewReactionRepository(db),
	}
}

func notFound(err error, entity string) error {
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%s: %w", entity, domain.ErrNotFound)
	}
	return err
}

func expectAffected(res sql.Result, entity string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("%s: %w", entity, domain.ErrNotFound)
	}
	return nil
}
