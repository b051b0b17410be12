package delivery

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log"
	"strings"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/resend/resend-go/v3"

	"church-admin-be/internal/config"
	"church-admin-be/internal/domain"
	"church-admin-be/internal/repository"
)

// Service drains the email queue: it claims due rows, resolves the sender
// account, inlines any stored attachments, and hands the message to the
// provider. Rows advance pending -> sending -> sent, or back to failed with
// a backoff until the attempt cap.
type Service interface {
	ProcessQueue(ctx context.Context) (*ProcessStats, error)
	List(ctx context.Context, status string, params domain.PaginationParams) (domain.PaginatedResponse[domain.QueuedEmail], error)
	Stats(ctx context.Context) (*domain.QueueStats, error)
}

type ProcessStats struct {
	Fetched int `json:"fetched"`
	Sent    int `json:"sent"`
	Failed  int `json:"failed"`
}

type service struct {
	queueRepo repository.EmailQueueRepository
	client    *resend.Client
	minio     *minio.Client
	cfg       *config.Config
	now       func() time.Time
}

func NewService(queueRepo repository.EmailQueueRepository, minioClient *minio.Client, cfg *config.Config) Service {
	return &service{
		queueRepo: queueRepo,
		client:    resend.NewClient(cfg.ResendAPIKey),
		minio:     minioClient,
		cfg:       cfg,
		now:       time.Now,
	}
}

func (s *service) List(ctx context.Context, status string, params domain.PaginationParams) (domain.PaginatedResponse[domain.QueuedEmail], error) {
	emails, total, err := s.queueRepo.List(ctx, status, params)
	if err != nil {
		return domain.PaginatedResponse[domain.QueuedEmail]{}, err
	}
	return domain.NewPaginatedResponse(emails, params.Page, params.PageSize, total), nil
}

func (s *service) Stats(ctx context.Context) (*domain.QueueStats, error) {
	return s.queueRepo.Stats(ctx)
}

func (s *service) ProcessQueue(ctx context.Context) (*ProcessStats, error) {
	now := s.now()
	stats := &ProcessStats{}

	emails, err := s.queueRepo.FetchDueBatch(ctx, now, s.cfg.QueueBatchSize)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch emails from queue: %w", err)
	}
	if len(emails) == 0 {
		return stats, nil
	}

	log.Printf("Processing %d emails from queue", len(emails))
	stats.Fetched = len(emails)

	for i := range emails {
		email := &emails[i]
		if err := s.deliver(ctx, email); err != nil {
			stats.Failed++
			log.Printf("Error sending email %s to %s: %v", email.MessageID, email.ToAddress, err)

			next := s.nextAttemptAt(email.Attempts + 1)
			if markErr := s.queueRepo.MarkFailed(ctx, email.ID, err.Error(), next); markErr != nil {
				log.Printf("Failed to mark email %s as failed: %v", email.MessageID, markErr)
			}
			continue
		}

		stats.Sent++
		if markErr := s.queueRepo.MarkSent(ctx, email.ID, s.now()); markErr != nil {
			log.Printf("Failed to mark email %s as sent: %v", email.MessageID, markErr)
		} else {
			log.Printf("Email %s sent successfully to %s", email.MessageID, email.ToAddress)
		}
	}

	return stats, nil
}

func (s *service) deliver(ctx context.Context, email *domain.QueuedEmail) error {
	if err := s.queueRepo.MarkSending(ctx, email.ID, s.now()); err != nil {
		return fmt.Errorf("failed to claim email: %w", err)
	}

	from := s.senderFor(email)
	attachments, err := s.loadAttachments(ctx, email)
	if err != nil {
		return err
	}

	params := &resend.SendEmailRequest{
		From:        fmt.Sprintf("%s <%s>", s.cfg.FromName, from),
		To:          []string{email.ToAddress},
		Subject:     email.Subject,
		Html:        email.HTMLBody,
		Text:        email.TextBody,
		Attachments: attachments,
	}

	_, err = s.client.Emails.Send(params)
	return err
}

// senderFor picks the from address by the row's email_type. Bulk mail
// round-robins over numbered no-reply accounts, keyed by attempt count so a
// retry keeps its sender.
func (s *service) senderFor(email *domain.QueuedEmail) string {
	domainPart := s.cfg.FromEmail
	if at := strings.LastIndex(domainPart, "@"); at >= 0 {
		domainPart = domainPart[at+1:]
	}

	switch email.ParsedMetadata().EmailType {
	case "admin":
		return "admin@" + domainPart
	case "info":
		return "info@" + domainPart
	case "events":
		return "events@" + domainPart
	case "bulk":
		n := email.Attempts%9 + 1
		return fmt.Sprintf("no-reply%d@%s", n, domainPart)
	default:
		if email.FromAddress != "" {
			return email.FromAddress
		}
		return "no-reply@" + domainPart
	}
}

func (s *service) loadAttachments(ctx context.Context, email *domain.QueuedEmail) ([]*resend.Attachment, error) {
	refs := email.ParsedAttachments()
	if len(refs) == 0 {
		return nil, nil
	}
	if s.minio == nil {
		return nil, fmt.Errorf("email references attachments but no object storage is configured")
	}

	var attachments []*resend.Attachment
	for _, ref := range refs {
		obj, err := s.minio.GetObject(ctx, s.cfg.MinIOBucket, ref.ObjectKey, minio.GetObjectOptions{})
		if err != nil {
			return nil, fmt.Errorf("failed to load attachment %s: %w", ref.ObjectKey, err)
		}

		var buf bytes.Buffer
		if _, err := io.Copy(&buf, obj); err != nil {
			obj.Close()
			return nil, fmt.Errorf("failed to read attachment %s: %w", ref.ObjectKey, err)
		}
		obj.Close()

		attachments = append(attachments, &resend.Attachment{
			Content:  buf.Bytes(),
			Filename: ref.Filename,
		})
	}
	return attachments, nil
}

// nextAttemptAt backs off exponentially: 5m, 10m, 20m... Terminal failures
// (attempt cap reached) get no next attempt.
func (s *service) nextAttemptAt(attempts int) *time.Time {
	if attempts >= s.cfg.QueueMaxAttempts {
		return nil
	}
	delay := 5 * time.Minute << (attempts - 1)
	next := s.now().Add(delay)
	return &next
}
