package workflow

import (
	"context"
	"fmt"
	"log"
	"time"

	"church-admin-be/internal/domain"
)

const (
	visitorWindowStart = 3 * 24 * time.Hour
	visitorWindowEnd   = 2 * 24 * time.Hour
)

// executeVisitorFollowups sweeps visitors whose first visit was two to three
// days ago and queues one follow-up each. The dedup key on the queue row
// guarantees at-most-once even across concurrent sweeps; the pre-check keeps
// the skip visible in the logs and the batch stats.
func (s *service) executeVisitorFollowups(ctx context.Context) (*domain.WorkflowResult, error) {
	log.Println("Executing visitor follow-up workflows")

	result := &domain.WorkflowResult{}

	now := s.now()
	from := now.Add(-visitorWindowStart)
	to := now.Add(-visitorWindowEnd)

	visitors, err := s.contactRepo.ListVisitorsCreatedBetween(ctx, from, to)
	if err != nil {
		log.Printf("Error fetching visitors: %v", err)
		return result, nil
	}
	if len(visitors) == 0 {
		log.Println("No visitors to follow up with")
		return result, nil
	}

	template, err := s.templateRepo.GetByNameAndChannel(ctx, domain.TemplateFollowUpVisitor, domain.ChannelEmail)
	if err != nil || template == nil {
		log.Printf("Follow-up template not found: %v", err)
		return result, nil
	}

	church := s.churchSettings(ctx)

	for _, visitor := range visitors {
		exists, err := s.queueRepo.ExistsForContactTemplate(ctx, *visitor.Email, domain.TemplateFollowUpVisitor, visitor.ID.String())
		if err != nil {
			log.Printf("Error checking existing follow-up for %s: %v", *visitor.Email, err)
		}
		if exists {
			log.Printf("Already sent follow-up to %s", *visitor.Email)
			result.RecordSkipped()
			continue
		}

		fields := visitor.TemplateFields()
		subject := Render(template.Subject, fields, church)
		body := Render(template.Body, fields, church)

		dedupKey := fmt.Sprintf("%s:%s", domain.TemplateFollowUpVisitor, visitor.ID)
		inserted, err := s.queueEmail(ctx, *visitor.Email, subject, body, domain.TemplateFollowUpVisitor, visitor.ID, "system", &dedupKey)
		switch {
		case err != nil:
			result.RecordFailure(*visitor.Email, err)
		case inserted:
			result.RecordSent()
		default:
			result.RecordSkipped()
		}
	}

	log.Printf("Visitor follow-up sweep finished: %s", result.Summary())
	return result, nil
}
