package workflow

import (
	"context"
	"log"

	"github.com/google/uuid"

	"church-admin-be/internal/domain"
)

// executeBirthdays sends birthday greetings. With a contact id the send is
// manual and unconditional (the test-send path); without one it sweeps every
// contact whose date of birth matches today's month-day.
func (s *service) executeBirthdays(ctx context.Context, contactID *uuid.UUID) (*domain.WorkflowResult, error) {
	result := &domain.WorkflowResult{}

	var contacts []domain.Contact

	if contactID != nil {
		log.Printf("Executing birthday workflow for contact: %s", contactID)

		contact, err := s.contactRepo.GetByID(ctx, *contactID)
		if err != nil || contact == nil {
			log.Printf("Error fetching specific contact: %v", err)
			return result, nil
		}
		if !contact.HasEmail() {
			log.Printf("Contact %s has no email, skipping birthday email", contactID)
			return result, nil
		}
		contacts = []domain.Contact{*contact}
		log.Printf("Sending birthday email to specific contact: %s", contact.FullName())
	} else {
		log.Println("Executing birthday workflows for all birthdays today")

		monthDay := s.now().Format("01-02")
		matched, err := s.contactRepo.ListWithBirthdayOn(ctx, monthDay)
		if err != nil {
			log.Printf("Error fetching birthday contacts: %v", err)
			return result, nil
		}
		if len(matched) == 0 {
			log.Println("No birthdays today")
			return result, nil
		}
		contacts = matched
	}

	template := s.birthdayTemplate(ctx)
	if template == nil {
		log.Println("Birthday template not found")
		return result, nil
	}

	church := s.churchSettings(ctx)

	for _, contact := range contacts {
		fields := contact.TemplateFields()
		subject := Render(template.Subject, fields, church)
		body := Render(template.Body, fields, church)

		inserted, err := s.queueEmail(ctx, *contact.Email, subject, body, template.TemplateName, contact.ID, "system", nil)
		switch {
		case err != nil:
			result.RecordFailure(*contact.Email, err)
		case inserted:
			result.RecordSent()
		default:
			result.RecordSkipped()
		}
	}

	log.Printf("Queued %d birthday emails", result.Sent)
	return result, nil
}

// birthdayTemplate prefers birthday_greeting and falls back to
// birthday_reminder, which older tenants still carry.
func (s *service) birthdayTemplate(ctx context.Context) *domain.MessageTemplate {
	template, err := s.templateRepo.GetByNameAndChannel(ctx, domain.TemplateBirthdayGreeting, domain.ChannelEmail)
	if err == nil && template != nil {
		return template
	}

	template, err = s.templateRepo.GetByNameAndChannel(ctx, domain.TemplateBirthdayReminder, domain.ChannelEmail)
	if err != nil {
		log.Printf("Error fetching birthday template: %v", err)
		return nil
	}
	return template
}
