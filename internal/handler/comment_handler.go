package handler

import (
	"github.com/gofiber/fiber/v2"

	"project-catalog/internal/domain"
	"project-catalog/internal/middleware"
	"project-catalog/internal/service/comment"
)

type CommentHandler struct {
	commentService comment.Service
}

func NewCommentHandler(commentService comment.Service) *CommentHandler {
	return &CommentHandler{commentService: commentService}
}

func (h *CommentHandler) Create(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return err
	}
	projectID, err := parseID(c, "id", "project")
	if err != nil {
		return err
	}

	var input domain.CreateCommentInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	comment, err := h.commentService.Create(c.Context(), projectID, userID, input)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(comment)
}

func (h *CommentHandler) List(c *fiber.Ctx) error {
	projectID, err := parseID(c, "id", "project")
	if err != nil {
		return err
	}

	comments, err := h.commentService.ListByProject(c.Context(), projectID)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(comments)
}
