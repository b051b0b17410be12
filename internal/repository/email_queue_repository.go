package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"church-admin-be/internal/domain"
)

type EmailQueueRepository interface {
	// Enqueue inserts one outbound row. When the row carries a dedup key that
	// already exists the insert is silently dropped and Enqueue reports
	// inserted=false; concurrent sweeps therefore cannot double-queue.
	Enqueue(ctx context.Context, email *domain.QueuedEmail) (inserted bool, err error)
	ExistsForContactTemplate(ctx context.Context, toAddress, templateType, contactID string) (bool, error)
	FetchDueBatch(ctx context.Context, now time.Time, batchSize int) ([]domain.QueuedEmail, error)
	MarkSending(ctx context.Context, id uuid.UUID, attemptAt time.Time) error
	MarkSent(ctx context.Context, id uuid.UUID, sentAt time.Time) error
	MarkFailed(ctx context.Context, id uuid.UUID, errMsg string, nextAttemptAt *time.Time) error
	List(ctx context.Context, status string, params domain.PaginationParams) ([]domain.QueuedEmail, int64, error)
	Stats(ctx context.Context) (*domain.QueueStats, error)
}

type emailQueueRepository struct {
	db *sqlx.DB
}

func NewEmailQueueRepository(db *sqlx.DB) EmailQueueRepository {
	return &emailQueueRepository{db: db}
}

func (r *emailQueueRepository) Enqueue(ctx context.Context, email *domain.QueuedEmail) (bool, error) {
	if email.ID == uuid.Nil {
		email.ID = uuid.New()
	}
	query := `
		INSERT INTO email_queue (
			id, message_id, to_address, from_address, subject,
			html_body, text_body, status, metadata, attachments,
			dedup_key, attempts, max_attempts, next_attempt_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		ON CONFLICT (dedup_key) DO NOTHING`
	result, err := r.db.ExecContext(ctx, query,
		email.ID, email.MessageID, email.ToAddress, email.FromAddress, email.Subject,
		email.HTMLBody, email.TextBody, email.Status, email.Metadata, email.Attachments,
		email.DedupKey, email.Attempts, email.MaxAttempts, email.NextAttemptAt,
	)
	if err != nil {
		return false, err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return rows > 0, nil
}

func (r *emailQueueRepository) ExistsForContactTemplate(ctx context.Context, toAddress, templateType, contactID string) (bool, error) {
	var count int64
	query := `
		SELECT COUNT(*) FROM email_queue
		WHERE to_address = $1
		  AND metadata->>'template_type' = $2
		  AND metadata->>'contact_id' = $3`
	if err := r.db.GetContext(ctx, &count, query, toAddress, templateType, contactID); err != nil {
		return false, err
	}
	return count > 0, nil
}

// FetchDueBatch returns the oldest sendable rows: pending or failed, past
// their next_attempt_at (or never scheduled), and under their attempt cap.
func (r *emailQueueRepository) FetchDueBatch(ctx context.Context, now time.Time, batchSize int) ([]domain.QueuedEmail, error) {
	var emails []domain.QueuedEmail
	query := `
		SELECT * FROM email_queue
		WHERE status IN ($1, $2)
		  AND (next_attempt_at IS NULL OR next_attempt_at <= $3)
		  AND attempts < max_attempts
		ORDER BY created_at
		LIMIT $4`
	err := r.db.SelectContext(ctx, &emails, query,
		string(domain.EmailPending), string(domain.EmailFailed), now, batchSize)
	return emails, err
}

func (r *emailQueueRepository) MarkSending(ctx context.Context, id uuid.UUID, attemptAt time.Time) error {
	query := `
		UPDATE email_queue
		SET status = $1, attempts = attempts + 1, last_attempt_at = $2, updated_at = NOW()
		WHERE id = $3`
	_, err := r.db.ExecContext(ctx, query, string(domain.EmailSending), attemptAt, id)
	return err
}

func (r *emailQueueRepository) MarkSent(ctx context.Context, id uuid.UUID, sentAt time.Time) error {
	query := `
		UPDATE email_queue
		SET status = $1, sent_at = $2, last_error = NULL, updated_at = NOW()
		WHERE id = $3`
	_, err := r.db.ExecContext(ctx, query, string(domain.EmailSent), sentAt, id)
	return err
}

func (r *emailQueueRepository) MarkFailed(ctx context.Context, id uuid.UUID, errMsg string, nextAttemptAt *time.Time) error {
	query := `
		UPDATE email_queue
		SET status = $1, last_error = $2, next_attempt_at = $3, updated_at = NOW()
		WHERE id = $4`
	_, err := r.db.ExecContext(ctx, query, string(domain.EmailFailed), errMsg, nextAttemptAt, id)
	return err
}

func (r *emailQueueRepository) List(ctx context.Context, status string, params domain.PaginationParams) ([]domain.QueuedEmail, int64, error) {
	params.Validate()

	var total int64
	var emails []domain.QueuedEmail

	if status != "" {
		countQuery := `SELECT COUNT(*) FROM email_queue WHERE status = $1`
		if err := r.db.GetContext(ctx, &total, countQuery, status); err != nil {
			return nil, 0, err
		}

		query := `
			SELECT * FROM email_queue
			WHERE status = $1
			ORDER BY created_at DESC
			LIMIT $2 OFFSET $3`
		err := r.db.SelectContext(ctx, &emails, query, status, params.PageSize, params.Offset())
		return emails, total, err
	}

	countQuery := `SELECT COUNT(*) FROM email_queue`
	if err := r.db.GetContext(ctx, &total, countQuery); err != nil {
		return nil, 0, err
	}

	query := `
		SELECT * FROM email_queue
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2`
	err := r.db.SelectContext(ctx, &emails, query, params.PageSize, params.Offset())
	return emails, total, err
}

func (r *emailQueueRepository) Stats(ctx context.Context) (*domain.QueueStats, error) {
	var stats domain.QueueStats
	query := `
		SELECT
			COUNT(*) FILTER (WHERE status = 'pending') AS pending,
			COUNT(*) FILTER (WHERE status = 'sending') AS sending,
			COUNT(*) FILTER (WHERE status = 'sent')    AS sent,
			COUNT(*) FILTER (WHERE status = 'failed')  AS failed
		FROM email_queue`
	if err := r.db.GetContext(ctx, &stats, query); err != nil {
		return nil, err
	}
	return &stats, nil
}
