package workflow

import (
	"context"
	"fmt"
	"log"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"

	"church-admin-be/internal/domain"
)

// EmailData is the payload of the immediate-priority send path.
// TemplateType and ContactID are optional provenance carried into the queue
// row's metadata.
type EmailData struct {
	ToAddress    string
	FromAddress  string
	Subject      string
	HTMLBody     string
	TextBody     string
	TemplateType string
	ContactID    string
}

type SendResult struct {
	Success   bool
	MessageID string
	Error     string
}

var htmlTagPattern = regexp.MustCompile(`<[^>]*>`)

func stripHTML(s string) string {
	return htmlTagPattern.ReplaceAllString(s, "")
}

// newMessageID builds the caller-generated queue id, e.g.
// workflow-1719936000000-4f3a9c1e2.
func newMessageID() string {
	suffix := strings.ReplaceAll(uuid.New().String(), "-", "")[:9]
	return fmt.Sprintf("workflow-%d-%s", time.Now().UnixMilli(), suffix)
}

// queueEmail persists one outbound message for the delivery worker. A
// non-nil dedupKey makes the insert idempotent across invocations. Insert
// failures are reported to the caller but never retried here.
func (s *service) queueEmail(ctx context.Context, toAddress, subject, body, templateType string, contactID uuid.UUID, emailType string, dedupKey *string) (bool, error) {
	if toAddress == "" {
		log.Println("No email address provided, skipping email")
		return false, nil
	}

	meta := domain.EmailMetadata{
		TemplateType: templateType,
		ContactID:    contactID.String(),
		SentVia:      "workflow_automation",
		EmailType:    emailType,
	}

	email := &domain.QueuedEmail{
		MessageID:   newMessageID(),
		ToAddress:   toAddress,
		FromAddress: s.cfg.FromEmail,
		Subject:     subject,
		HTMLBody:    fmt.Sprintf(`<div style="font-family: Arial, sans-serif; line-height: 1.6; color: #333;">%s</div>`, strings.ReplaceAll(body, "\n", "<br>")),
		TextBody:    body,
		Status:      string(domain.EmailPending),
		Metadata:    meta.Marshal(),
		DedupKey:    dedupKey,
		Attempts:    0,
		MaxAttempts: s.cfg.QueueMaxAttempts,
	}

	inserted, err := s.queueRepo.Enqueue(ctx, email)
	if err != nil {
		log.Printf("Failed to queue %s email to %s: %v", templateType, toAddress, err)
		return false, err
	}
	if !inserted {
		log.Printf("Duplicate %s email to %s suppressed by dedup key", templateType, toAddress)
		return false, nil
	}

	log.Printf("Successfully queued %s email to %s", templateType, toAddress)
	return true, nil
}

// sendEmailDirectly is the immediate-priority path used by the new-member
// workflow. Delivery still goes through the queue; the row is marked high
// priority and eligible for the next worker pass.
func (s *service) sendEmailDirectly(ctx context.Context, data EmailData) SendResult {
	messageID := newMessageID()
	now := s.now()

	fromAddress := data.FromAddress
	if fromAddress == "" {
		fromAddress = s.cfg.FromEmail
	}
	textBody := data.TextBody
	if textBody == "" {
		textBody = stripHTML(data.HTMLBody)
	}

	meta := domain.EmailMetadata{
		TemplateType: data.TemplateType,
		ContactID:    data.ContactID,
		Source:       "workflow-automation",
		Priority:     "high",
		EmailType:    "system",
		Timestamp:    now.UTC().Format(time.RFC3339),
	}

	email := &domain.QueuedEmail{
		MessageID:     messageID,
		ToAddress:     data.ToAddress,
		FromAddress:   fromAddress,
		Subject:       data.Subject,
		HTMLBody:      data.HTMLBody,
		TextBody:      textBody,
		Status:        string(domain.EmailPending),
		Metadata:      meta.Marshal(),
		Attempts:      0,
		MaxAttempts:   s.cfg.QueueMaxAttempts,
		NextAttemptAt: &now,
	}

	if _, err := s.queueRepo.Enqueue(ctx, email); err != nil {
		log.Printf("Failed to queue email to %s: %v", data.ToAddress, err)
		return SendResult{Success: false, Error: err.Error()}
	}

	return SendResult{Success: true, MessageID: messageID}
}
