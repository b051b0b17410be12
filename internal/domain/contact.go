package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

type Contact struct {
	ID          uuid.UUID  `json:"id" db:"id"`
	FirstName   string     `json:"first_name" db:"first_name"`
	LastName    string     `json:"last_name" db:"last_name"`
	Email       *string    `json:"email,omitempty" db:"email"`
	Phone       *string    `json:"phone,omitempty" db:"phone"`
	DateOfBirth *time.Time `json:"date_of_birth,omitempty" db:"date_of_birth"`
	Lifecycle   string     `json:"lifecycle" db:"lifecycle"`
	CreatedAt   time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at" db:"updated_at"`
}

type ContactLifecycle string

const (
	LifecycleVisitor         ContactLifecycle = "visitor"
	LifecycleMember          ContactLifecycle = "member"
	LifecycleRegularAttendee ContactLifecycle = "regular_attendee"
)

func (c *Contact) FullName() string {
	return strings.TrimSpace(c.FirstName + " " + c.LastName)
}

func (c *Contact) HasEmail() bool {
	return c.Email != nil && *c.Email != ""
}

// TemplateFields flattens the contact into the variable set a message
// template can reference.
func (c *Contact) TemplateFields() map[string]interface{} {
	fields := map[string]interface{}{
		"first_name": c.FirstName,
		"last_name":  c.LastName,
		"lifecycle":  c.Lifecycle,
	}
	if c.Email != nil {
		fields["email"] = *c.Email
	}
	if c.Phone != nil {
		fields["phone"] = *c.Phone
	}
	return fields
}
