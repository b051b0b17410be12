package workflow

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"church-admin-be/internal/domain"
	"church-admin-be/internal/repository"
)

func TestExecuteEventReminders(t *testing.T) {
	reminderTemplate := &domain.MessageTemplate{
		TemplateName: domain.TemplateEventReminder,
		Channel:      domain.ChannelEmail,
		Subject:      "Reminder: {{ event_name }} tomorrow",
		Body:         "Hi {{ first_name }}, {{ event_name }} starts at {{ event_time }} on {{ event_date }}.",
	}

	t.Run("queries exactly the whole of tomorrow", func(t *testing.T) {
		now := time.Date(2026, time.March, 10, 9, 0, 0, 0, time.UTC)
		tomorrowStart := time.Date(2026, time.March, 11, 0, 0, 0, 0, time.UTC)
		dayAfterStart := time.Date(2026, time.March, 12, 0, 0, 0, 0, time.UTC)

		eventRepo := new(MockEventRepository)
		eventRepo.On("ListPublishedBetween", mock.Anything, tomorrowStart, dayAfterStart).
			Return([]domain.Event{}, nil)

		auditRepo := new(MockAuditLogRepository)
		auditRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.AuditLog")).Return(nil)

		svc := newTestService(t, &repository.Repositories{
			Event:      eventRepo,
			EmailQueue: newFakeQueueRepo(),
			AuditLog:   auditRepo,
		}, now)

		result, err := svc.Execute(context.Background(), domain.WorkflowTrigger{Type: domain.TriggerEventReminder})

		assert.NoError(t, err)
		assert.Equal(t, 0, result.Attempted)
		eventRepo.AssertExpectations(t)
	})

	t.Run("queues one reminder per event and recipient", func(t *testing.T) {
		now := time.Date(2026, time.March, 10, 9, 0, 0, 0, time.UTC)
		worship := domain.Event{
			ID:        uuid.New(),
			Name:      "Night of Worship",
			EventDate: time.Date(2026, time.March, 11, 18, 30, 0, 0, time.UTC),
			Status:    string(domain.EventPublished),
		}

		eventRepo := new(MockEventRepository)
		eventRepo.On("ListPublishedBetween", mock.Anything, mock.Anything, mock.Anything).
			Return([]domain.Event{worship}, nil)

		contactRepo := new(MockContactRepository)
		contactRepo.On("ListEmailableByLifecycles", mock.Anything, []string{"member", "regular_attendee"}).
			Return([]domain.Contact{
				{ID: uuid.New(), FirstName: "Amy", Email: strPtr("amy@x.com"), Lifecycle: "member"},
				{ID: uuid.New(), FirstName: "Raj", Email: strPtr("raj@x.com"), Lifecycle: "regular_attendee"},
			}, nil)

		templateRepo := new(MockTemplateRepository)
		templateRepo.On("GetByNameAndChannel", mock.Anything, domain.TemplateEventReminder, domain.ChannelEmail).
			Return(reminderTemplate, nil)

		settingsRepo := new(MockSettingsRepository)
		settingsRepo.On("GetTenantSettings", mock.Anything).
			Return(&domain.TenantSettings{Name: "DOCM Church"}, nil)

		auditRepo := new(MockAuditLogRepository)
		auditRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.AuditLog")).Return(nil)

		queue := newFakeQueueRepo()
		svc := newTestService(t, &repository.Repositories{
			Contact:    contactRepo,
			Event:      eventRepo,
			Template:   templateRepo,
			Settings:   settingsRepo,
			EmailQueue: queue,
			AuditLog:   auditRepo,
		}, now)

		result, err := svc.Execute(context.Background(), domain.WorkflowTrigger{Type: domain.TriggerEventReminder})

		assert.NoError(t, err)
		assert.Equal(t, 2, result.Sent)

		if assert.Len(t, queue.emails, 2) {
			email := queue.emails[0]
			assert.Equal(t, "amy@x.com", email.ToAddress)
			assert.Equal(t, "Reminder: Night of Worship tomorrow", email.Subject)
			assert.Contains(t, email.TextBody, "6:30 PM")
			assert.Contains(t, email.TextBody, "3/11/2026")
			assert.Equal(t, "events", email.ParsedMetadata().EmailType)
			assert.Nil(t, email.DedupKey)
		}
	})

	t.Run("missing template aborts the sweep without failures", func(t *testing.T) {
		now := time.Date(2026, time.March, 10, 9, 0, 0, 0, time.UTC)

		eventRepo := new(MockEventRepository)
		eventRepo.On("ListPublishedBetween", mock.Anything, mock.Anything, mock.Anything).
			Return([]domain.Event{{ID: uuid.New(), Name: "Picnic", EventDate: now.AddDate(0, 0, 1)}}, nil)

		templateRepo := new(MockTemplateRepository)
		templateRepo.On("GetByNameAndChannel", mock.Anything, domain.TemplateEventReminder, domain.ChannelEmail).
			Return(nil, nil)

		auditRepo := new(MockAuditLogRepository)
		auditRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.AuditLog")).Return(nil)

		queue := newFakeQueueRepo()
		svc := newTestService(t, &repository.Repositories{
			Event:      eventRepo,
			Template:   templateRepo,
			EmailQueue: queue,
			AuditLog:   auditRepo,
		}, now)

		result, err := svc.Execute(context.Background(), domain.WorkflowTrigger{Type: domain.TriggerEventReminder})

		assert.NoError(t, err)
		assert.Equal(t, 0, result.Attempted)
		assert.Empty(t, queue.emails)
	})
}
