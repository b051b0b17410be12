package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"church-admin-be/internal/domain"
)

type EventRepository interface {
	ListPublishedBetween(ctx context.Context, from, to time.Time) ([]domain.Event, error)
	ListOverdueScheduled(ctx context.Context, before time.Time) ([]domain.Event, error)
	MarkCompleted(ctx context.Context, id uuid.UUID) error
}

type eventRepository struct {
	db *sqlx.DB
}

func NewEventRepository(db *sqlx.DB) EventRepository {
	return &eventRepository{db: db}
}

// ListPublishedBetween selects published events with event_date in
// [from, to). The caller supplies calendar-day boundaries.
func (r *eventRepository) ListPublishedBetween(ctx context.Context, from, to time.Time) ([]domain.Event, error) {
	var events []domain.Event
	query := `
		SELECT * FROM events
		WHERE status = $1
		  AND event_date >= $2
		  AND event_date < $3
		ORDER BY event_date`
	err := r.db.SelectContext(ctx, &events, query, string(domain.EventPublished), from, to)
	return events, err
}

func (r *eventRepository) ListOverdueScheduled(ctx context.Context, before time.Time) ([]domain.Event, error) {
	var events []domain.Event
	query := `
		SELECT * FROM events
		WHERE status = $1
		  AND event_date < $2
		ORDER BY event_date`
	err := r.db.SelectContext(ctx, &events, query, string(domain.EventScheduled), before)
	return events, err
}

func (r *eventRepository) MarkCompleted(ctx context.Context, id uuid.UUID) error {
	query := `UPDATE events SET status = $1, updated_at = NOW() WHERE id = $2`
	_, err := r.db.ExecContext(ctx, query, string(domain.EventCompleted), id)
	return err
}
