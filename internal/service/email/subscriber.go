package email

import (
	"context"
	"fmt"

	"project-catalog/internal/domain"
	"project-catalog/internal/eventbus"
	"project-catalog/internal/repository"
)

const subscriberName = "email-notifier"

type Subscriber interface {
	Subscribe(kind domain.EventKind, name string, handler eventbus.Handler)
}

// Notifier mails project owners when a reviewer decides on their project.
// It runs beside the notification materializer as an independent handler.
type Notifier struct {
	userRepo repository.UserRepository
	emailSvc Service
}

func NewNotifier(userRepo repository.UserRepository, emailSvc Service) *Notifier {
	return &Notifier{userRepo: userRepo, emailSvc: emailSvc}
}

func (n *Notifier) Register(bus Subscriber) {
	bus.Subscribe(domain.EventProjectApproved, subscriberName, n.Handle)
	bus.Subscribe(domain.EventProjectRejected, subscriberName, n.Handle)
}

func (n *Notifier) Handle(ctx context.Context, evt domain.DomainEvent) error {
	var msg ProjectStatusEmail
	switch e := evt.(type) {
	case domain.ProjectApproved:
		msg = ProjectStatusEmail{ProjectID: e.ProjectID, ProjectTitle: e.Title, ReviewerName: e.ApproverName, Approved: true}
	case domain.ProjectRejected:
		msg = ProjectStatusEmail{ProjectID: e.ProjectID, ProjectTitle: e.Title, ReviewerName: e.RejectorName, Reason: e.Reason}
	default:
		return nil
	}

	owner, err := n.userRepo.GetByID(ctx, evt.Recipient())
	if err != nil {
		return fmt.Errorf("failed to get project owner: %w", err)
	}
	if owner.Email == "" {
		return nil
	}

	msg.ToEmail = owner.Email
	msg.RecipientName = owner.Name
	if err := n.emailSvc.SendProjectStatusEmail(ctx, msg); err != nil {
		return fmt.Errorf("failed to send project status email: %w", err)
	}
	return nil
}
