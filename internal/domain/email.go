package domain

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// QueuedEmail is one outbound message awaiting the delivery worker. Rows are
// written once by the trigger engine and advanced (pending -> sending ->
// sent/failed) by the worker.
type QueuedEmail struct {
	ID            uuid.UUID       `json:"id" db:"id"`
	MessageID     string          `json:"message_id" db:"message_id"`
	ToAddress     string          `json:"to_address" db:"to_address"`
	FromAddress   string          `json:"from_address" db:"from_address"`
	Subject       string          `json:"subject" db:"subject"`
	HTMLBody      string          `json:"html_body" db:"html_body"`
	TextBody      string          `json:"text_body" db:"text_body"`
	Status        string          `json:"status" db:"status"`
	Metadata      json.RawMessage `json:"metadata,omitempty" db:"metadata"`
	Attachments   json.RawMessage `json:"attachments,omitempty" db:"attachments"`
	DedupKey      *string         `json:"dedup_key,omitempty" db:"dedup_key"`
	Attempts      int             `json:"attempts" db:"attempts"`
	MaxAttempts   int             `json:"max_attempts" db:"max_attempts"`
	NextAttemptAt *time.Time      `json:"next_attempt_at,omitempty" db:"next_attempt_at"`
	LastAttemptAt *time.Time      `json:"last_attempt_at,omitempty" db:"last_attempt_at"`
	LastError     *string         `json:"last_error,omitempty" db:"last_error"`
	SentAt        *time.Time      `json:"sent_at,omitempty" db:"sent_at"`
	CreatedAt     time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at" db:"updated_at"`
}

type EmailStatus string

const (
	EmailPending EmailStatus = "pending"
	EmailSending EmailStatus = "sending"
	EmailSent    EmailStatus = "sent"
	EmailFailed  EmailStatus = "failed"
)

// EmailMetadata is the provenance bag serialized into the metadata column.
type EmailMetadata struct {
	TemplateType string `json:"template_type,omitempty"`
	ContactID    string `json:"contact_id,omitempty"`
	SentVia      string `json:"sent_via,omitempty"`
	Source       string `json:"source,omitempty"`
	Priority     string `json:"priority,omitempty"`
	EmailType    string `json:"email_type,omitempty"`
	Timestamp    string `json:"timestamp,omitempty"`
}

func (m EmailMetadata) Marshal() json.RawMessage {
	raw, _ := json.Marshal(m)
	return raw
}

func (e *QueuedEmail) ParsedMetadata() EmailMetadata {
	var meta EmailMetadata
	if len(e.Metadata) > 0 {
		_ = json.Unmarshal(e.Metadata, &meta)
	}
	return meta
}

// EmailAttachment references an object in the attachment bucket. The worker
// downloads the object and inlines it into the provider request.
type EmailAttachment struct {
	ObjectKey string `json:"object_key"`
	Filename  string `json:"filename"`
}

func (e *QueuedEmail) ParsedAttachments() []EmailAttachment {
	if len(e.Attachments) == 0 {
		return nil
	}
	var atts []EmailAttachment
	if err := json.Unmarshal(e.Attachments, &atts); err != nil {
		return nil
	}
	return atts
}

type QueueStats struct {
	Pending int64 `json:"pending" db:"pending"`
	Sending int64 `json:"sending" db:"sending"`
	Sent    int64 `json:"sent" db:"sent"`
	Failed  int64 `json:"failed" db:"failed"`
}
