package repository

import (
	"github.com/jmoiron/sqlx"
)

type Repositories struct {
	Contact    ContactRepository
	Event      EventRepository
	Template   TemplateRepository
	Settings   SettingsRepository
	Staff      StaffRepository
	EmailQueue EmailQueueRepository
	AuditLog   AuditLogRepository
}

func NewRepositories(db *sqlx.DB) *Repositories {
	return &Repositories{
		Contact:    NewContactRepository(db),
		Event:      NewEventRepository(db),
		Template:   NewTemplateRepository(db),
		Settings:   NewSettingsRepository(db),
		Staff:      NewStaffRepository(db),
		EmailQueue: NewEmailQueueRepository(db),
		AuditLog:   NewAuditLogRepository(db),
	}
}
