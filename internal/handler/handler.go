package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"project-catalog/internal/middleware"
	"project-catalog/internal/realtime"
	"project-catalog/internal/service"
)

type Handlers struct {
	Project      *ProjectHandler
	Comment      *CommentHandler
	Reaction     *ReactionHandler
	Notification *NotificationHandler
	Live         *LiveHandler
}

func NewHandlers(services *service.Services, registry *realtime.Registry) *Handlers {
	return &Handlers{
		Project:      NewProjectHandler(services.Approval),
		Comment:      NewCommentHandler(services.Comment),
		Reaction:     NewReactionHandler(services.Reaction),
		Notification: NewNotificationHandler(services.Notification),
		Live:         NewLiveHandler(registry),
	}
}

func parseID(c *fiber.Ctx, param, label string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Params(param))
	if err != nil {
		return uuid.Nil, middleware.BadRequest("Invalid " + label + " ID")
	}
	return id, nil
}
