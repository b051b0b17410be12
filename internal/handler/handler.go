package handler

import "church-admin-be/internal/service"

type Handlers struct {
	Workflow *WorkflowHandler
	Queue    *QueueHandler
	Settings *SettingsHandler
	Template *TemplateHandler
	Audit    *AuditHandler
}

func NewHandlers(services *service.Services) *Handlers {
	return &Handlers{
		Workflow: NewWorkflowHandler(services.Workflow),
		Queue:    NewQueueHandler(services.Delivery, services.Audit),
		Settings: NewSettingsHandler(services.Settings, services.Audit),
		Template: NewTemplateHandler(services.Comms, services.Audit),
		Audit:    NewAuditHandler(services.Audit),
	}
}
