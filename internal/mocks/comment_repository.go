package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"project-catalog/internal/domain"
)

type CommentRepository struct {
	mock.Mock
}

func (m *CommentRepository) Create(ctx context.Context, comment *domain.Comment) error {
	args := m.Called(ctx, comment)
	return args.Error(0)
}

func (m *CommentRepository) ListByProject(ctx context.Context, projectID uuid.UUID) ([]domain.Comment, error) {
	args := m.Called(ctx, projectID)
	return args.Get(0).([]domain.Comment), args.Error(1)
}
