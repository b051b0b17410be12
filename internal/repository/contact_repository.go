package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"church-admin-be/internal/domain"
)

type ContactRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Contact, error)
	ListWithBirthdayOn(ctx context.Context, monthDay string) ([]domain.Contact, error)
	ListVisitorsCreatedBetween(ctx context.Context, from, to time.Time) ([]domain.Contact, error)
	ListEmailableByLifecycles(ctx context.Context, lifecycles []string) ([]domain.Contact, error)
}

type contactRepository struct {
	db *sqlx.DB
}

func NewContactRepository(db *sqlx.DB) ContactRepository {
	return &contactRepository{db: db}
}

func (r *contactRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Contact, error) {
	var contact domain.Contact
	query := `SELECT * FROM contacts WHERE id = $1`
	err := r.db.GetContext(ctx, &contact, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &contact, nil
}

// ListWithBirthdayOn matches on the month-day component only, so the birth
// year never affects selection.
func (r *contactRepository) ListWithBirthdayOn(ctx context.Context, monthDay string) ([]domain.Contact, error) {
	var contacts []domain.Contact
	query := `
		SELECT * FROM contacts
		WHERE date_of_birth IS NOT NULL
		  AND email IS NOT NULL
		  AND to_char(date_of_birth, 'MM-DD') = $1
		ORDER BY created_at`
	err := r.db.SelectContext(ctx, &contacts, query, monthDay)
	return contacts, err
}

func (r *contactRepository) ListVisitorsCreatedBetween(ctx context.Context, from, to time.Time) ([]domain.Contact, error) {
	var contacts []domain.Contact
	query := `
		SELECT * FROM contacts
		WHERE lifecycle = $1
		  AND email IS NOT NULL
		  AND created_at >= $2
		  AND created_at <= $3
		ORDER BY created_at`
	err := r.db.SelectContext(ctx, &contacts, query, string(domain.LifecycleVisitor), from, to)
	return contacts, err
}

func (r *contactRepository) ListEmailableByLifecycles(ctx context.Context, lifecycles []string) ([]domain.Contact, error) {
	var contacts []domain.Contact
	query := `
		SELECT * FROM contacts
		WHERE email IS NOT NULL
		  AND lifecycle = ANY($1)
		ORDER BY created_at`
	err := r.db.SelectContext(ctx, &contacts, query, pq.Array(lifecycles))
	return contacts, err
}
