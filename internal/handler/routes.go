package handler

import (
	"github.com/gofiber/fiber/v2"

	"project-catalog/internal/domain"
	"project-catalog/internal/middleware"
	"project-catalog/internal/service/auth"
)

func SetupRoutes(app *fiber.App, h *Handlers, authService auth.Service) {
	requireAuth := middleware.AuthRequired(authService)

	app.Get("/ws/notifications", h.Live.Upgrade, requireAuth, h.Live.Handle())

	v1 := app.Group("/api/v1", requireAuth)

	projects := v1.Group("/projects")
	projects.Post("/", h.Project.Submit)
	projects.Get("/pending", middleware.RequireRole(domain.RoleSupervisor), h.Project.ListPending)
	projects.Get("/unassigned", middleware.RequireRole(domain.RoleAdmin), h.Project.ListUnassigned)
	projects.Get("/:id", h.Project.Get)
	projects.Post("/:id/resubmit", h.Project.Resubmit)
	projects.Post("/:id/approve", h.Project.Approve)
	projects.Post("/:id/reject", h.Project.Reject)
	projects.Put("/:id/supervisor", middleware.RequireRole(domain.RoleAdmin), h.Project.AssignSupervisor)

	projects.Post("/:id/comments", h.Comment.Create)
	projects.Get("/:id/comments", h.Comment.List)
	projects.Post("/:id/reactions", h.Reaction.Toggle)

	notifications := v1.Group("/notifications")
	notifications.Get("/", h.Notification.List)
	notifications.Get("/count", h.Notification.Count)
	notifications.Put("/read-all", h.Notification.MarkAllAsRead)
	notifications.Delete("/clear-all", h.Notification.DeleteAll)
	notifications.Put("/:id/read", h.Notification.MarkAsRead)
	notifications.Delete("/:id", h.Notification.Delete)
}
