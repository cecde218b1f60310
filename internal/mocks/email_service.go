package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"project-catalog/internal/service/email"
)

type EmailService struct {
	mock.Mock
}

func (m *EmailService) SendProjectStatusEmail(ctx context.Context, msg email.ProjectStatusEmail) error {
	args := m.Called(ctx, msg)
	return args.Error(0)
}
