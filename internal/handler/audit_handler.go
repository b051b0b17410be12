package handler

import (
	"log"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"church-admin-be/internal/domain"
	"church-admin-be/internal/middleware"
	"church-admin-be/internal/service/audit"
)

type AuditHandler struct {
	auditService audit.Service
}

func NewAuditHandler(auditService audit.Service) *AuditHandler {
	return &AuditHandler{auditService: auditService}
}

func (h *AuditHandler) GetRecentActivities(c *fiber.Ctx) error {
	limit, _ := strconv.Atoi(c.Query("limit", "20"))

	logs, err := h.auditService.GetRecentActivities(c.Context(), limit)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"data": logs})
}

// recordAudit writes a best-effort audit entry for a mutating admin call.
func recordAudit(c *fiber.Ctx, svc audit.Service, action, entityType, entityRef string, detail interface{}) {
	var actorID *uuid.UUID
	if sub, ok := c.Locals(middleware.UserIDContextKey).(string); ok && sub != "" {
		if id, err := uuid.Parse(sub); err == nil {
			actorID = &id
		}
	}

	input := domain.CreateAuditLogInput{
		ActorID:    actorID,
		Action:     action,
		EntityType: entityType,
		EntityRef:  entityRef,
		Detail:     detail,
	}
	if err := svc.Record(c.Context(), input); err != nil {
		log.Printf("Failed to record audit entry for %s %s: %v", action, entityRef, err)
	}
}
