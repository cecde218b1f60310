package service

import (
	"github.com/redis/go-redis/v9"

	"project-catalog/internal/config"
	"project-catalog/internal/eventbus"
	"project-catalog/internal/repository"
	"project-catalog/internal/service/approval"
	"project-catalog/internal/service/auth"
	"project-catalog/internal/service/comment"
	"project-catalog/internal/service/email"
	"project-catalog/internal/service/notification"
	"project-catalog/internal/service/reaction"
)

type Services struct {
	Auth         auth.Service
	Approval     approval.Service
	Comment      comment.Service
	Reaction     reaction.Service
	Notification notification.Service
	Email        email.Service
}

func NewServices(repos *repository.Repositories, redis *redis.Client, publisher eventbus.Publisher, cfg *config.Config) *Services {
	return &Services{
		Auth:         auth.NewService(repos.User, cfg),
		Approval:     approval.NewService(repos.Project, repos.User, publisher),
		Comment:      comment.NewService(repos.Comment, repos.Project, repos.User, publisher),
		Reaction:     reaction.NewService(repos.Reaction, repos.Project, repos.User, publisher),
		Notification: notification.NewService(repos.Notification, redis, cfg.CountCacheTTL),
		Email:        email.NewService(cfg),
	}
}

// RegisterEventHandlers subscribes the event consumers: the notification
// materializer for every event, and the e-mail notifier when Resend is
// configured.
func RegisterEventHandlers(bus *eventbus.Bus, services *Services, repos *repository.Repositories, pusher notification.Pusher, cfg *config.Config) {
	notification.NewMaterializer(services.Notification, pusher).Register(bus)

	if cfg.ResendAPIKey != "" {
		email.NewNotifier(repos.User, services.Email).Register(bus)
	}
}
