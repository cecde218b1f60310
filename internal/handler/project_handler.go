package handler

import (
	"github.com/gofiber/fiber/v2"

	"project-catalog/internal/domain"
	"project-catalog/internal/middleware"
	"project-catalog/internal/service/approval"
)

type ProjectHandler struct {
	approvalService approval.Service
}

func NewProjectHandler(approvalService approval.Service) *ProjectHandler {
	return &ProjectHandler{approvalService: approvalService}
}

func (h *ProjectHandler) Submit(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return err
	}

	var input domain.SubmitProjectInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	project, err := h.approvalService.Submit(c.Context(), userID, input)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(project)
}

func (h *ProjectHandler) Resubmit(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return err
	}
	projectID, err := parseID(c, "id", "project")
	if err != nil {
		return err
	}

	project, err := h.approvalService.Resubmit(c.Context(), projectID, userID)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(project)
}

func (h *ProjectHandler) Approve(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return err
	}
	projectID, err := parseID(c, "id", "project")
	if err != nil {
		return err
	}

	project, err := h.approvalService.Approve(c.Context(), projectID, userID)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(project)
}

func (h *ProjectHandler) Reject(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return err
	}
	projectID, err := parseID(c, "id", "project")
	if err != nil {
		return err
	}

	// Reason is optional; an empty body rejects without one.
	var input domain.RejectProjectInput
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&input); err != nil {
			return middleware.BadRequest("Invalid request body")
		}
	}

	project, err := h.approvalService.Reject(c.Context(), projectID, userID, input.Reason)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(project)
}

func (h *ProjectHandler) AssignSupervisor(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return err
	}
	projectID, err := parseID(c, "id", "project")
	if err != nil {
		return err
	}

	var input domain.AssignSupervisorInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	project, err := h.approvalService.AssignSupervisor(c.Context(), projectID, userID, input.SupervisorID)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(project)
}

func (h *ProjectHandler) Get(c *fiber.Ctx) error {
	projectID, err := parseID(c, "id", "project")
	if err != nil {
		return err
	}

	project, err := h.approvalService.GetByID(c.Context(), projectID)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(project)
}

func (h *ProjectHandler) ListPending(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return err
	}

	projects, err := h.approvalService.ListPendingForSupervisor(c.Context(), userID)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(projects)
}

func (h *ProjectHandler) ListUnassigned(c *fiber.Ctx) error {
	projects, err := h.approvalService.ListUnassigned(c.Context())
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(projects)
}
