package domain

import "errors"

var (
	ErrUnknownTriggerType = errors.New("unknown trigger type")
	ErrContactNotFound    = errors.New("contact not found")
	ErrEventNotFound      = errors.New("event not found")
	ErrTemplateNotFound   = errors.New("template not found")
	ErrSettingsNotFound   = errors.New("settings not found")
	ErrContactIDRequired  = errors.New("contactId is required for this trigger")
	ErrDuplicateEmail     = errors.New("email already queued for this contact")
)
