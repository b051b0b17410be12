package domain

import (
	"fmt"

	"github.com/google/uuid"
)

type TriggerType string

const (
	TriggerNewMember       TriggerType = "new_member"
	TriggerBirthday        TriggerType = "birthday"
	TriggerVisitorFollowup TriggerType = "visitor_followup"
	TriggerEventReminder   TriggerType = "event_reminder"
)

func (t TriggerType) IsValid() bool {
	switch t {
	case TriggerNewMember, TriggerBirthday, TriggerVisitorFollowup, TriggerEventReminder:
		return true
	default:
		return false
	}
}

// WorkflowTrigger is the payload of one trigger invocation. ContactID is
// required for new_member, optional for birthday (manual single-contact
// send), and ignored by the sweep triggers.
type WorkflowTrigger struct {
	Type      TriggerType `json:"type"`
	ContactID *uuid.UUID  `json:"contactId,omitempty"`
	EventID   *uuid.UUID  `json:"eventId,omitempty"`
}

// WorkflowFailure records one recipient that could not be enqueued. Failures
// never abort the rest of the batch.
type WorkflowFailure struct {
	Recipient string `json:"recipient"`
	Reason    string `json:"reason"`
}

// WorkflowResult carries per-batch statistics back to the trigger caller.
type WorkflowResult struct {
	Attempted int               `json:"attempted"`
	Sent      int               `json:"sent"`
	Skipped   int               `json:"skipped"`
	Failed    []WorkflowFailure `json:"failed,omitempty"`
}

func (r *WorkflowResult) RecordSent() {
	r.Attempted++
	r.Sent++
}

func (r *WorkflowResult) RecordSkipped() {
	r.Attempted++
	r.Skipped++
}

func (r *WorkflowResult) RecordFailure(recipient string, err error) {
	r.Attempted++
	r.Failed = append(r.Failed, WorkflowFailure{Recipient: recipient, Reason: err.Error()})
}

func (r *WorkflowResult) Summary() string {
	return fmt.Sprintf("attempted=%d sent=%d skipped=%d failed=%d", r.Attempted, r.Sent, r.Skipped, len(r.Failed))
}
