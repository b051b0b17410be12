package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// TenantSettings is the singleton organization record. Only the display name
// participates in template rendering; the rest of the row belongs to the
// admin screens, which are out of this backend's hands.
type TenantSettings struct {
	ID        uuid.UUID `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// DefaultChurchName is substituted when no tenant settings row exists.
const DefaultChurchName = "Our Church"

// ChurchSettings is the slice of tenant state the trigger engine needs.
type ChurchSettings struct {
	ChurchName string `json:"church_name"`
}

// NotificationGlobalSettings is the singleton on/off switch per delivery
// method, gating every notification of that method tenant-wide.
type NotificationGlobalSettings struct {
	ID           uuid.UUID `json:"id" db:"id"`
	EmailEnabled bool      `json:"email_enabled" db:"email_enabled"`
	SMSEnabled   bool      `json:"sms_enabled" db:"sms_enabled"`
	PushEnabled  bool      `json:"push_enabled" db:"push_enabled"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}

func (s *NotificationGlobalSettings) MethodEnabled(method string) bool {
	switch method {
	case MethodEmail:
		return s.EmailEnabled
	case MethodSMS:
		return s.SMSEnabled
	case MethodPush:
		return s.PushEnabled
	default:
		return false
	}
}

const (
	MethodEmail = "email"
	MethodSMS   = "sms"
	MethodPush  = "push"
)

// NotificationTypeSetting enables one notification type over one method and
// lists the staff roles permitted to receive it.
type NotificationTypeSetting struct {
	ID               uuid.UUID      `json:"id" db:"id"`
	NotificationType string         `json:"notification_type" db:"notification_type_id"`
	Method           string         `json:"method" db:"method"`
	Enabled          bool           `json:"enabled" db:"enabled"`
	Roles            pq.StringArray `json:"roles" db:"roles"`
	UpdatedAt        time.Time      `json:"updated_at" db:"updated_at"`
}

func (s *NotificationTypeSetting) AllowsRole(role string) bool {
	for _, r := range s.Roles {
		if r == role {
			return true
		}
	}
	return false
}

const NotificationMemberJoined = "member_joined"

type UpdateGlobalSettingsInput struct {
	EmailEnabled *bool `json:"email_enabled,omitempty"`
	SMSEnabled   *bool `json:"sms_enabled,omitempty"`
	PushEnabled  *bool `json:"push_enabled,omitempty"`
}

type UpdateTypeSettingInput struct {
	Method  string   `json:"method" validate:"required"`
	Enabled bool     `json:"enabled"`
	Roles   []string `json:"roles"`
}
