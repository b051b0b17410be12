package domain

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

type AuditLog struct {
	ID         uuid.UUID       `json:"id" db:"id"`
	ActorID    *uuid.UUID      `json:"actor_id,omitempty" db:"actor_id"`
	Action     string          `json:"action" db:"action"`
	EntityType string          `json:"entity_type" db:"entity_type"`
	EntityRef  string          `json:"entity_ref" db:"entity_ref"`
	Detail     json.RawMessage `json:"detail,omitempty" db:"detail"`
	CreatedAt  time.Time       `json:"created_at" db:"created_at"`
}

const (
	AuditActionExecuteWorkflow = "EXECUTE_WORKFLOW"
	AuditActionUpdateSettings  = "UPDATE_SETTINGS"
	AuditActionUpdateTemplate  = "UPDATE_TEMPLATE"

	AuditEntityWorkflow = "WORKFLOW"
	AuditEntitySettings = "NOTIFICATION_SETTINGS"
	AuditEntityTemplate = "MESSAGE_TEMPLATE"
)

type CreateAuditLogInput struct {
	ActorID    *uuid.UUID
	Action     string
	EntityType string
	EntityRef  string
	Detail     interface{}
}
