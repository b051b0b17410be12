package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"church-admin-be/internal/domain"
	"church-admin-be/internal/middleware"
	"church-admin-be/internal/service/audit"
	"church-admin-be/internal/service/settings"
)

type SettingsHandler struct {
	settingsService settings.Service
	auditService    audit.Service
}

func NewSettingsHandler(settingsService settings.Service, auditService audit.Service) *SettingsHandler {
	return &SettingsHandler{settingsService: settingsService, auditService: auditService}
}

func (h *SettingsHandler) GetGlobal(c *fiber.Ctx) error {
	result, err := h.settingsService.GetGlobal(c.Context())
	if errors.Is(err, domain.ErrSettingsNotFound) {
		return middleware.NotFound("Notification settings not configured")
	}
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(result)
}

func (h *SettingsHandler) UpdateGlobal(c *fiber.Ctx) error {
	var input domain.UpdateGlobalSettingsInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	result, err := h.settingsService.UpdateGlobal(c.Context(), input)
	if errors.Is(err, domain.ErrSettingsNotFound) {
		return middleware.NotFound("Notification settings not configured")
	}
	if err != nil {
		return err
	}

	recordAudit(c, h.auditService, domain.AuditActionUpdateSettings, domain.AuditEntitySettings, "global", input)

	return c.Status(fiber.StatusOK).JSON(result)
}

func (h *SettingsHandler) ListTypes(c *fiber.Ctx) error {
	result, err := h.settingsService.ListTypes(c.Context())
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(result)
}

func (h *SettingsHandler) UpsertType(c *fiber.Ctx) error {
	notificationType := c.Params("type")
	if notificationType == "" {
		return middleware.BadRequest("Missing notification type")
	}

	var input domain.UpdateTypeSettingInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}
	if input.Method == "" {
		return middleware.BadRequest("method is required")
	}

	result, err := h.settingsService.UpsertType(c.Context(), notificationType, input)
	if err != nil {
		return err
	}

	recordAudit(c, h.auditService, domain.AuditActionUpdateSettings, domain.AuditEntitySettings, notificationType, input)

	return c.Status(fiber.StatusOK).JSON(result)
}
