package email_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"project-catalog/internal/domain"
	"project-catalog/internal/mocks"
	"project-catalog/internal/service/email"
)

func TestNotifier_Handle(t *testing.T) {
	ctx := context.Background()
	owner := &domain.User{ID: uuid.New(), Name: "Ana", Email: "ana@example.com", Role: domain.RoleUser}

	t.Run("Rejection mail carries reason", func(t *testing.T) {
		users := new(mocks.UserRepository)
		mailer := new(mocks.EmailService)
		users.On("GetByID", ctx, owner.ID).Return(owner, nil).Once()
		mailer.On("SendProjectStatusEmail", ctx, mock.MatchedBy(func(msg email.ProjectStatusEmail) bool {
			return msg.ToEmail == owner.Email && !msg.Approved && msg.Reason == "Scope" && msg.ReviewerName == "Ben"
		})).Return(nil).Once()

		err := email.NewNotifier(users, mailer).Handle(ctx, domain.ProjectRejected{
			ProjectID: uuid.New(), OwnerID: owner.ID, Title: "Compilers", RejectorName: "Ben", Reason: "Scope",
		})

		assert.NoError(t, err)
		mailer.AssertExpectations(t)
	})

	t.Run("Approval mail", func(t *testing.T) {
		users := new(mocks.UserRepository)
		mailer := new(mocks.EmailService)
		users.On("GetByID", ctx, owner.ID).Return(owner, nil).Once()
		mailer.On("SendProjectStatusEmail", ctx, mock.MatchedBy(func(msg email.ProjectStatusEmail) bool {
			return msg.Approved && msg.ProjectTitle == "Compilers"
		})).Return(nil).Once()

		err := email.NewNotifier(users, mailer).Handle(ctx, domain.ProjectApproved{
			ProjectID: uuid.New(), OwnerID: owner.ID, Title: "Compilers", ApproverName: "Ben",
		})

		assert.NoError(t, err)
		mailer.AssertExpectations(t)
	})

	t.Run("Other events are ignored", func(t *testing.T) {
		users := new(mocks.UserRepository)
		mailer := new(mocks.EmailService)

		err := email.NewNotifier(users, mailer).Handle(ctx, domain.ReactionAdded{OwnerID: owner.ID})

		assert.NoError(t, err)
		users.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
	})
}
