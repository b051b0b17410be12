package workflow

import (
	"context"
	"log"
	"time"

	"church-admin-be/internal/domain"
)

// executeEventReminders queues one reminder per (event, contact) pair for
// every published event happening tomorrow. Recipients are all emailable
// members and regular attendees; there is no per-event RSVP filtering and no
// dedup on this path, so re-running on the same day re-enqueues.
func (s *service) executeEventReminders(ctx context.Context) (*domain.WorkflowResult, error) {
	log.Println("Executing event reminder workflows")

	result := &domain.WorkflowResult{}

	now := s.now()
	tomorrowStart := time.Date(now.Year(), now.Month(), now.Day()+1, 0, 0, 0, 0, now.Location())
	tomorrowEnd := tomorrowStart.AddDate(0, 0, 1)

	events, err := s.eventRepo.ListPublishedBetween(ctx, tomorrowStart, tomorrowEnd)
	if err != nil {
		log.Printf("Error fetching events: %v", err)
		return result, nil
	}
	if len(events) == 0 {
		log.Println("No events tomorrow")
		return result, nil
	}

	template, err := s.templateRepo.GetByNameAndChannel(ctx, domain.TemplateEventReminder, domain.ChannelEmail)
	if err != nil || template == nil {
		log.Printf("Event reminder template not found: %v", err)
		return result, nil
	}

	church := s.churchSettings(ctx)

	for _, event := range events {
		contacts, err := s.contactRepo.ListEmailableByLifecycles(ctx, []string{
			string(domain.LifecycleMember),
			string(domain.LifecycleRegularAttendee),
		})
		if err != nil {
			log.Printf("Error fetching contacts for event reminders: %v", err)
			continue
		}

		for _, contact := range contacts {
			fields := contact.TemplateFields()
			fields["event_name"] = event.Name
			fields["event_time"] = event.EventDate.Format("3:04 PM")
			fields["event_date"] = event.EventDate.Format("1/2/2006")

			subject := Render(template.Subject, fields, church)
			body := Render(template.Body, fields, church)

			inserted, err := s.queueEmail(ctx, *contact.Email, subject, body, domain.TemplateEventReminder, contact.ID, "events", nil)
			switch {
			case err != nil:
				result.RecordFailure(*contact.Email, err)
			case inserted:
				result.RecordSent()
			default:
				result.RecordSkipped()
			}
		}
	}

	log.Printf("Event reminder sweep finished: %s", result.Summary())
	return result, nil
}
