package handler

import (
	"github.com/gofiber/fiber/v2"

	"project-catalog/internal/middleware"
	"project-catalog/internal/service/reaction"
)

type ReactionHandler struct {
	reactionService reaction.Service
}

func NewReactionHandler(reactionService reaction.Service) *ReactionHandler {
	return &ReactionHandler{reactionService: reactionService}
}

func (h *ReactionHandler) Toggle(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return err
	}
	projectID, err := parseID(c, "id", "project")
	if err != nil {
		return err
	}

	result, err := h.reactionService.Toggle(c.Context(), projectID, userID)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(result)
}
