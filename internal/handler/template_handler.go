package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"church-admin-be/internal/domain"
	"church-admin-be/internal/middleware"
	"church-admin-be/internal/service/audit"
	"church-admin-be/internal/service/comms"
)

type TemplateHandler struct {
	commsService comms.Service
	auditService audit.Service
}

func NewTemplateHandler(commsService comms.Service, auditService audit.Service) *TemplateHandler {
	return &TemplateHandler{commsService: commsService, auditService: auditService}
}

func (h *TemplateHandler) List(c *fiber.Ctx) error {
	result, err := h.commsService.List(c.Context())
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(result)
}

func (h *TemplateHandler) Get(c *fiber.Ctx) error {
	name := c.Params("name")
	channel := c.Query("channel", domain.ChannelEmail)

	result, err := h.commsService.Get(c.Context(), name, channel)
	if errors.Is(err, domain.ErrTemplateNotFound) {
		return middleware.NotFound("Template not found")
	}
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(result)
}

func (h *TemplateHandler) Upsert(c *fiber.Ctx) error {
	name := c.Params("name")
	if name == "" {
		return middleware.BadRequest("Missing template name")
	}

	var input domain.UpsertTemplateInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}
	if input.Channel == "" {
		input.Channel = domain.ChannelEmail
	}
	if input.Subject == "" || input.Body == "" {
		return middleware.BadRequest("subject and body are required")
	}

	result, err := h.commsService.Upsert(c.Context(), name, input)
	if err != nil {
		return err
	}

	recordAudit(c, h.auditService, domain.AuditActionUpdateTemplate, domain.AuditEntityTemplate, name, input)

	return c.Status(fiber.StatusOK).JSON(result)
}
