package domain

import (
	"time"

	"github.com/google/uuid"
)

// MessageTemplate is a named, channel-scoped subject/body pair stored in the
// comms_defaults table. Bodies contain {{placeholder}} tokens resolved at
// send time.
type MessageTemplate struct {
	ID           uuid.UUID `json:"id" db:"id"`
	TemplateName string    `json:"template_name" db:"template_name"`
	Channel      string    `json:"channel" db:"channel"`
	Subject      string    `json:"subject" db:"subject"`
	Body         string    `json:"body" db:"body"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}

const (
	ChannelEmail = "email"

	TemplateWelcomeMember    = "welcome_member"
	TemplateBirthdayGreeting = "birthday_greeting"
	TemplateBirthdayReminder = "birthday_reminder"
	TemplateFollowUpVisitor  = "follow_up_visitor"
	TemplateEventReminder    = "event_reminder"
)

type UpsertTemplateInput struct {
	Channel string `json:"channel" validate:"required"`
	Subject string `json:"subject" validate:"required"`
	Body    string `json:"body" validate:"required"`
}
