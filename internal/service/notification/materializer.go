package notification

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"project-catalog/internal/domain"
	"project-catalog/internal/eventbus"
	"project-catalog/internal/metrics"
)

const materializerName = "notification-materializer"

// Pusher hands a persisted notification to the recipient's live session, if
// any. It never fails from the caller's point of view.
type Pusher interface {
	Push(ctx context.Context, recipientID uuid.UUID, notif *domain.Notification)
}

type Subscriber interface {
	Subscribe(kind domain.EventKind, name string, handler eventbus.Handler)
}

// Materializer turns domain events into durable notifications and pushes
// them live. A notification is always persisted before it is pushed.
type Materializer struct {
	notifications Service
	pusher        Pusher
}

func NewMaterializer(notifications Service, pusher Pusher) *Materializer {
	return &Materializer{notifications: notifications, pusher: pusher}
}

// Register subscribes the materializer to every event kind.
func (m *Materializer) Register(bus Subscriber) {
	for _, kind := range domain.EventKinds {
		bus.Subscribe(kind, materializerName, m.Handle)
	}
}

func (m *Materializer) Handle(ctx context.Context, evt domain.DomainEvent) error {
	notif := Build(evt)
	if notif == nil {
		return nil
	}

	if err := m.notifications.Create(ctx, notif); err != nil {
		return fmt.Errorf("persist %s notification for %s: %w", notif.NotificationType, notif.RecipientUserID, err)
	}
	metrics.NotificationsMaterializedTotal.WithLabelValues(string(notif.NotificationType)).Inc()

	m.pusher.Push(ctx, notif.RecipientUserID, notif)
	return nil
}

// Build maps an event to the notification it produces, or nil when the event
// is suppressed: comments on an admin-owned project notify nobody.
func Build(evt domain.DomainEvent) *domain.Notification {
	switch e := evt.(type) {
	case domain.CommentCreated:
		if e.OwnerRole == domain.RoleAdmin {
			return nil
		}
		commentID := e.CommentID
		return &domain.Notification{
			RecipientUserID:  e.OwnerID,
			Message:          fmt.Sprintf("%s commented on your project.", e.CommenterName),
			NotificationType: domain.NotifComment,
			ProjectID:        e.ProjectID,
			CommentID:        &commentID,
			CommentText:      optional(e.CommentText),
			CommenterName:    optional(e.CommenterName),
		}

	case domain.ProjectApproved:
		return &domain.Notification{
			RecipientUserID:  e.OwnerID,
			Message:          fmt.Sprintf("%s approved your project \"%s\".", e.ApproverName, e.Title),
			NotificationType: domain.NotifApproval,
			ProjectID:        e.ProjectID,
			ProjectTitle:     optional(e.Title),
			ApproverName:     optional(e.ApproverName),
		}

	case domain.ProjectRejected:
		message := fmt.Sprintf("%s rejected your project \"%s\".", e.RejectorName, e.Title)
		if e.Reason != "" {
			message += " Reason: " + e.Reason
		}
		return &domain.Notification{
			RecipientUserID:  e.OwnerID,
			Message:          message,
			NotificationType: domain.NotifRejection,
			ProjectID:        e.ProjectID,
			ProjectTitle:     optional(e.Title),
			ApproverName:     optional(e.RejectorName),
			RejectionReason:  optional(e.Reason),
		}

	case domain.ProjectSubmitted:
		message := fmt.Sprintf("%s submitted the project \"%s\" for your approval.", e.OwnerName, e.Title)
		if e.SelfApproved {
			message = fmt.Sprintf("Your project \"%s\" was published.", e.Title)
		}
		return &domain.Notification{
			RecipientUserID:  e.ApproverID,
			Message:          message,
			NotificationType: domain.NotifSubmit,
			ProjectID:        e.ProjectID,
			ProjectTitle:     optional(e.Title),
			ApproverName:     optional(e.ApproverName),
		}

	case domain.ReactionAdded:
		return &domain.Notification{
			RecipientUserID:  e.OwnerID,
			Message:          fmt.Sprintf("%s reacted to your project \"%s\".", e.ReactorName, e.Title),
			NotificationType: domain.NotifReaction,
			ProjectID:        e.ProjectID,
			ProjectTitle:     optional(e.Title),
		}
	}
	return nil
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
