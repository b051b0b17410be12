package handler

import (
	"fmt"
	"log"

	"github.com/gofiber/fiber/v2"

	"church-admin-be/internal/domain"
	"church-admin-be/internal/service/workflow"
)

type WorkflowHandler struct {
	workflowService workflow.Service
}

func NewWorkflowHandler(workflowService workflow.Service) *WorkflowHandler {
	return &WorkflowHandler{workflowService: workflowService}
}

type executeRequest struct {
	Trigger domain.WorkflowTrigger `json:"trigger"`
}

type executeResponse struct {
	Success bool                   `json:"success"`
	Message string                 `json:"message,omitempty"`
	Result  *domain.WorkflowResult `json:"result,omitempty"`
	Error   string                 `json:"error,omitempty"`
}

// Execute is the single trigger entry point. It never propagates an error
// past this boundary: every failure becomes a structured 500 response.
func (h *WorkflowHandler) Execute(c *fiber.Ctx) error {
	var req executeRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing workflow trigger: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(executeResponse{
			Success: false,
			Error:   "invalid trigger payload",
		})
	}

	result, err := h.workflowService.Execute(c.Context(), req.Trigger)
	if err != nil {
		log.Printf("Error executing workflow: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(executeResponse{
			Success: false,
			Error:   err.Error(),
		})
	}

	return c.Status(fiber.StatusOK).JSON(executeResponse{
		Success: true,
		Message: fmt.Sprintf("Workflow executed for %s (%s)", req.Trigger.Type, result.Summary()),
		Result:  result,
	})
}
