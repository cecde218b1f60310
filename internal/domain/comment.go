package domain

import (
	"time"

	"github.com/google/uuid"
)

type Comment struct {
	ID         uuid.UUID `json:"id" db:"id"`
	ProjectID  uuid.UUID `json:"projectId" db:"project_id"`
	UserID     uuid.UUID `json:"userId" db:"user_id"`
	Content    string    `json:"content" db:"content"`
	AuthorName string    `json:"authorName" db:"author_name"`
	CreatedAt  time.Time `json:"createdAt" db:"created_at"`
}

const MaxCommentLength = 2000

type CreateCommentInput struct {
	Content string `json:"content" validate:"required,min=1,max=2000"`
}

type Reaction struct {
	ID        uuid.UUID `json:"id" db:"id"`
	ProjectID uuid.UUID `json:"projectId" db:"project_id"`
	UserID    uuid.UUID `json:"userId" db:"user_id"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}

type ReactionResult struct {
	ProjectID      uuid.UUID `json:"projectId"`
	UserID         uuid.UUID `json:"userId"`
	Reacted        bool      `json:"reacted"`
	TotalReactions int64     `json:"totalReactions"`
}
