package notification_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"project-catalog/internal/domain"
	"project-catalog/internal/eventbus"
	"project-catalog/internal/mocks"
	"project-catalog/internal/service/notification"
)

func TestBuild(t *testing.T) {
	projectID := uuid.New()
	ownerID := uuid.New()
	commentID := uuid.New()

	t.Run("CommentCreated", func(t *testing.T) {
		n := notification.Build(domain.CommentCreated{
			ProjectID: projectID, CommentID: commentID, OwnerID: ownerID, OwnerRole: domain.RoleUser,
			CommentText: "Great idea", CommenterName: "Dan",
		})
		require.NotNil(t, n)
		assert.Equal(t, domain.NotifComment, n.NotificationType)
		assert.Equal(t, ownerID, n.RecipientUserID)
		assert.Equal(t, "Dan commented on your project.", n.Message)
		require.NotNil(t, n.CommentID)
		assert.Equal(t, commentID, *n.CommentID)
		assert.Equal(t, "Great idea", *n.CommentText)
		assert.Equal(t, "Dan", *n.CommenterName)
	})

	t.Run("CommentCreated on admin project is suppressed", func(t *testing.T) {
		n := notification.Build(domain.CommentCreated{ProjectID: projectID, OwnerID: ownerID, OwnerRole: domain.RoleAdmin})
		assert.Nil(t, n)
	})

	t.Run("ProjectApproved", func(t *testing.T) {
		n := notification.Build(domain.ProjectApproved{ProjectID: projectID, OwnerID: ownerID, Title: "Compilers", ApproverName: "Bea"})
		require.NotNil(t, n)
		assert.Equal(t, domain.NotifApproval, n.NotificationType)
		assert.Equal(t, `Bea approved your project "Compilers".`, n.Message)
		assert.Equal(t, "Compilers", *n.ProjectTitle)
		assert.Equal(t, "Bea", *n.ApproverName)
	})

	t.Run("ProjectRejected", func(t *testing.T) {
		n := notification.Build(domain.ProjectRejected{ProjectID: projectID, OwnerID: ownerID, Title: "Compilers", RejectorName: "Bea", Reason: "Too broad"})
		require.NotNil(t, n)
		assert.Equal(t, domain.NotifRejection, n.NotificationType)
		assert.Equal(t, `Bea rejected your project "Compilers". Reason: Too broad`, n.Message)
		assert.Equal(t, "Too broad", *n.RejectionReason)
	})

	t.Run("ProjectRejected without reason", func(t *testing.T) {
		n := notification.Build(domain.ProjectRejected{ProjectID: projectID, OwnerID: ownerID, Title: "Compilers", RejectorName: "Bea"})
		require.NotNil(t, n)
		assert.Equal(t, `Bea rejected your project "Compilers".`, n.Message)
		assert.Nil(t, n.RejectionReason)
	})

	t.Run("ProjectSubmitted", func(t *testing.T) {
		approverID := uuid.New()
		n := notification.Build(domain.ProjectSubmitted{ProjectID: projectID, ApproverID: approverID, OwnerName: "Ana", Title: "Compilers", ApproverName: "Bea"})
		require.NotNil(t, n)
		assert.Equal(t, domain.NotifSubmit, n.NotificationType)
		assert.Equal(t, approverID, n.RecipientUserID)
		assert.Equal(t, `Ana submitted the project "Compilers" for your approval.`, n.Message)
	})

	t.Run("ProjectSubmitted self approved", func(t *testing.T) {
		n := notification.Build(domain.ProjectSubmitted{ProjectID: projectID, ApproverID: ownerID, OwnerName: "Root", Title: "Compilers", ApproverName: "Root", SelfApproved: true})
		require.NotNil(t, n)
		assert.Equal(t, `Your project "Compilers" was published.`, n.Message)
	})

	t.Run("ReactionAdded", func(t *testing.T) {
		n := notification.Build(domain.ReactionAdded{ProjectID: projectID, OwnerID: ownerID, ReactionID: uuid.New(), Title: "Compilers", ReactorName: "Eve"})
		require.NotNil(t, n)
		assert.Equal(t, domain.NotifReaction, n.NotificationType)
		assert.Equal(t, `Eve reacted to your project "Compilers".`, n.Message)
	})
}

func TestMaterializer_Handle(t *testing.T) {
	ctx := context.Background()
	evt := domain.ProjectApproved{ProjectID: uuid.New(), OwnerID: uuid.New(), Title: "Compilers", ApproverName: "Bea"}

	t.Run("Persists before push", func(t *testing.T) {
		svc := new(mocks.NotificationService)
		pusher := new(mocks.Pusher)
		var order []string

		svc.On("Create", ctx, mock.MatchedBy(func(n *domain.Notification) bool {
			return n.RecipientUserID == evt.OwnerID && n.NotificationType == domain.NotifApproval
		})).Run(func(args mock.Arguments) {
			args.Get(1).(*domain.Notification).ID = uuid.New()
			order = append(order, "create")
		}).Return(nil).Once()
		pusher.On("Push", ctx, evt.OwnerID, mock.MatchedBy(func(n *domain.Notification) bool {
			return n.ID != uuid.Nil
		})).Run(func(args mock.Arguments) {
			order = append(order, "push")
		}).Once()

		err := notification.NewMaterializer(svc, pusher).Handle(ctx, evt)

		assert.NoError(t, err)
		assert.Equal(t, []string{"create", "push"}, order)
		svc.AssertExpectations(t)
		pusher.AssertExpectations(t)
	})

	t.Run("Store failure skips push", func(t *testing.T) {
		svc := new(mocks.NotificationService)
		pusher := new(mocks.Pusher)
		svc.On("Create", ctx, mock.Anything).Return(errors.New("db down")).Once()

		err := notification.NewMaterializer(svc, pusher).Handle(ctx, evt)

		assert.Error(t, err)
		assert.Contains(t, err.Error(), evt.OwnerID.String())
		pusher.AssertNotCalled(t, "Push", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Suppressed event touches nothing", func(t *testing.T) {
		svc := new(mocks.NotificationService)
		pusher := new(mocks.Pusher)

		err := notification.NewMaterializer(svc, pusher).Handle(ctx, domain.CommentCreated{OwnerID: uuid.New(), OwnerRole: domain.RoleAdmin})

		assert.NoError(t, err)
		svc.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		pusher.AssertNotCalled(t, "Push", mock.Anything, mock.Anything, mock.Anything)
	})
}

type recordingSubscriber struct {
	kinds []domain.EventKind
}

func (r *recordingSubscriber) Subscribe(kind domain.EventKind, name string, handler eventbus.Handler) {
	r.kinds = append(r.kinds, kind)
}

func TestMaterializer_RegisterCoversEveryKind(t *testing.T) {
	sub := &recordingSubscriber{}
	notification.NewMaterializer(new(mocks.NotificationService), new(mocks.Pusher)).Register(sub)
	assert.ElementsMatch(t, domain.EventKinds, sub.kinds)
}
