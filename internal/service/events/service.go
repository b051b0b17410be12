package events

import (
	"context"
	"log"
	"time"

	"church-admin-be/internal/repository"
)

// overdueGrace is how long past its start an event may stay scheduled
// before the sweep marks it completed.
const overdueGrace = time.Hour

type Service interface {
	AutoCompleteOverdue(ctx context.Context) (int, error)
}

type service struct {
	eventRepo repository.EventRepository
	now       func() time.Time
}

func NewService(eventRepo repository.EventRepository) Service {
	return &service{
		eventRepo: eventRepo,
		now:       time.Now,
	}
}

func (s *service) AutoCompleteOverdue(ctx context.Context) (int, error) {
	cutoff := s.now().Add(-overdueGrace)

	overdue, err := s.eventRepo.ListOverdueScheduled(ctx, cutoff)
	if err != nil {
		return 0, err
	}
	if len(overdue) == 0 {
		log.Println("No overdue events found")
		return 0, nil
	}

	completed := 0
	for _, event := range overdue {
		if err := s.eventRepo.MarkCompleted(ctx, event.ID); err != nil {
			log.Printf("Failed to auto-complete event %s (%s): %v", event.ID, event.Name, err)
			continue
		}
		completed++
		log.Printf("Auto-completed event %s (%s), scheduled for %s", event.ID, event.Name, event.EventDate.Format(time.RFC3339))
	}

	return completed, nil
}
