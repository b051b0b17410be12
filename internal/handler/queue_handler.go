package handler

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"church-admin-be/internal/domain"
	"church-admin-be/internal/service/audit"
	"church-admin-be/internal/service/delivery"
)

type QueueHandler struct {
	deliveryService delivery.Service
	auditService    audit.Service
}

func NewQueueHandler(deliveryService delivery.Service, auditService audit.Service) *QueueHandler {
	return &QueueHandler{deliveryService: deliveryService, auditService: auditService}
}

func (h *QueueHandler) List(c *fiber.Ctx) error {
	status := c.Query("status")

	params := getPaginationParams(c)

	result, err := h.deliveryService.List(c.Context(), status, params)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(result)
}

func (h *QueueHandler) Stats(c *fiber.Ctx) error {
	stats, err := h.deliveryService.Stats(c.Context())
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(stats)
}

// Process lets an external cron hit the queue drain over HTTP, mirroring
// the worker's own loop.
func (h *QueueHandler) Process(c *fiber.Ctx) error {
	stats, err := h.deliveryService.ProcessQueue(c.Context())
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success":   true,
		"processed": stats,
	})
}

func getPaginationParams(c *fiber.Ctx) domain.PaginationParams {
	page, _ := strconv.Atoi(c.Query("page", "1"))
	pageSize, _ := strconv.Atoi(c.Query("page_size", "20"))

	params := domain.PaginationParams{Page: page, PageSize: pageSize}
	params.Validate()
	return params
}
