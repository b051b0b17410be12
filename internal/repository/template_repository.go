package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"church-admin-be/internal/domain"
)

type TemplateRepository interface {
	GetByNameAndChannel(ctx context.Context, name, channel string) (*domain.MessageTemplate, error)
	List(ctx context.Context) ([]domain.MessageTemplate, error)
	Upsert(ctx context.Context, tmpl *domain.MessageTemplate) error
	// InsertIfAbsent seeds a default template without clobbering tenant edits.
	InsertIfAbsent(ctx context.Context, tmpl *domain.MessageTemplate) (bool, error)
}

type templateRepository struct {
	db *sqlx.DB
}

func NewTemplateRepository(db *sqlx.DB) TemplateRepository {
	return &templateRepository{db: db}
}

func (r *templateRepository) GetByNameAndChannel(ctx context.Context, name, channel string) (*domain.MessageTemplate, error) {
	var tmpl domain.MessageTemplate
	query := `SELECT * FROM comms_defaults WHERE template_name = $1 AND channel = $2`
	err := r.db.GetContext(ctx, &tmpl, query, name, channel)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &tmpl, nil
}

func (r *templateRepository) List(ctx context.Context) ([]domain.MessageTemplate, error) {
	var templates []domain.MessageTemplate
	query := `SELECT * FROM comms_defaults ORDER BY template_name, channel`
	err := r.db.SelectContext(ctx, &templates, query)
	return templates, err
}

func (r *templateRepository) Upsert(ctx context.Context, tmpl *domain.MessageTemplate) error {
	if tmpl.ID == uuid.Nil {
		tmpl.ID = uuid.New()
	}
	query := `
		INSERT INTO comms_defaults (id, template_name, channel, subject, body)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (template_name, channel)
		DO UPDATE SET subject = EXCLUDED.subject, body = EXCLUDED.body, updated_at = NOW()
		RETURNING id, created_at, updated_at`
	return r.db.QueryRowxContext(ctx, query,
		tmpl.ID, tmpl.TemplateName, tmpl.Channel, tmpl.Subject, tmpl.Body,
	).Scan(&tmpl.ID, &tmpl.CreatedAt, &tmpl.UpdatedAt)
}

func (r *templateRepository) InsertIfAbsent(ctx context.Context, tmpl *domain.MessageTemplate) (bool, error) {
	if tmpl.ID == uuid.Nil {
		tmpl.ID = uuid.New()
	}
	query := `
		INSERT INTO comms_defaults (id, template_name, channel, subject, body)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (template_name, channel) DO NOTHING`
	result, err := r.db.ExecContext(ctx, query,
		tmpl.ID, tmpl.TemplateName, tmpl.Channel, tmpl.Subject, tmpl.Body)
	if err != nil {
		return false, err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return rows > 0, nil
}
