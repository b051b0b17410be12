package delivery

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"church-admin-be/internal/config"
	"church-admin-be/internal/domain"
)

type MockEmailQueueRepository struct {
	mock.Mock
}

func (m *MockEmailQueueRepository) Enqueue(ctx context.Context, email *domain.QueuedEmail) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

func (m *MockEmailQueueRepository) ExistsForContactTemplate(ctx context.Context, toAddress, templateType, contactID string) (bool, error) {
	args := m.Called(ctx, toAddress, templateType, contactID)
	return args.Bool(0), args.Error(1)
}

func (m *MockEmailQueueRepository) FetchDueBatch(ctx context.Context, now time.Time, batchSize int) ([]domain.QueuedEmail, error) {
	args := m.Called(ctx, now, batchSize)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.QueuedEmail), args.Error(1)
}

func (m *MockEmailQueueRepository) MarkSending(ctx context.Context, id uuid.UUID, attemptAt time.Time) error {
	args := m.Called(ctx, id, attemptAt)
	return args.Error(0)
}

func (m *MockEmailQueueRepository) MarkSent(ctx context.Context, id uuid.UUID, sentAt time.Time) error {
	args := m.Called(ctx, id, sentAt)
	return args.Error(0)
}

func (m *MockEmailQueueRepository) MarkFailed(ctx context.Context, id uuid.UUID, errMsg string, nextAttemptAt *time.Time) error {
	args := m.Called(ctx, id, errMsg, nextAttemptAt)
	return args.Error(0)
}

func (m *MockEmailQueueRepository) List(ctx context.Context, status string, params domain.PaginationParams) ([]domain.QueuedEmail, int64, error) {
	args := m.Called(ctx, status, params)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]domain.QueuedEmail), args.Get(1).(int64), args.Error(2)
}

func (m *MockEmailQueueRepository) Stats(ctx context.Context) (*domain.QueueStats, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.QueueStats), args.Error(1)
}

func testConfig() *config.Config {
	return &config.Config{
		FromName:         "DOCM Church",
		FromEmail:        "admin@docmchurch.org",
		QueueBatchSize:   20,
		QueueMaxAttempts: 3,
	}
}

func newTestService(queueRepo *MockEmailQueueRepository) *service {
	return &service{
		queueRepo: queueRepo,
		cfg:       testConfig(),
		now: func() time.Time {
			return time.Date(2026, time.July, 4, 10, 0, 0, 0, time.UTC)
		},
	}
}

func queuedEmail(emailType string, attempts int) *domain.QueuedEmail {
	meta := domain.EmailMetadata{EmailType: emailType}
	return &domain.QueuedEmail{
		ID:       uuid.New(),
		Metadata: meta.Marshal(),
		Attempts: attempts,
	}
}

func TestSenderFor(t *testing.T) {
	svc := newTestService(nil)

	t.Run("routes by email type", func(t *testing.T) {
		assert.Equal(t, "admin@docmchurch.org", svc.senderFor(queuedEmail("admin", 0)))
		assert.Equal(t, "info@docmchurch.org", svc.senderFor(queuedEmail("info", 0)))
		assert.Equal(t, "events@docmchurch.org", svc.senderFor(queuedEmail("events", 0)))
	})

	t.Run("bulk mail round-robins numbered senders", func(t *testing.T) {
		assert.Equal(t, "no-reply1@docmchurch.org", svc.senderFor(queuedEmail("bulk", 0)))
		assert.Equal(t, "no-reply2@docmchurch.org", svc.senderFor(queuedEmail("bulk", 1)))
		assert.Equal(t, "no-reply9@docmchurch.org", svc.senderFor(queuedEmail("bulk", 8)))
		assert.Equal(t, "no-reply1@docmchurch.org", svc.senderFor(queuedEmail("bulk", 9)))
	})

	t.Run("keeps the stored from address for other types", func(t *testing.T) {
		email := queuedEmail("system", 0)
		email.FromAddress = "pastor@docmchurch.org"
		assert.Equal(t, "pastor@docmchurch.org", svc.senderFor(email))
	})

	t.Run("defaults to no-reply when nothing is set", func(t *testing.T) {
		assert.Equal(t, "no-reply@docmchurch.org", svc.senderFor(&domain.QueuedEmail{}))
	})
}

func TestNextAttemptAt(t *testing.T) {
	svc := newTestService(nil)
	base := svc.now()

	t.Run("backs off exponentially", func(t *testing.T) {
		first := svc.nextAttemptAt(1)
		if assert.NotNil(t, first) {
			assert.Equal(t, base.Add(5*time.Minute), *first)
		}

		second := svc.nextAttemptAt(2)
		if assert.NotNil(t, second) {
			assert.Equal(t, base.Add(10*time.Minute), *second)
		}
	})

	t.Run("stops retrying at the attempt cap", func(t *testing.T) {
		assert.Nil(t, svc.nextAttemptAt(3))
		assert.Nil(t, svc.nextAttemptAt(4))
	})
}

func TestProcessQueue(t *testing.T) {
	t.Run("empty batch is a no-op", func(t *testing.T) {
		queueRepo := new(MockEmailQueueRepository)
		queueRepo.On("FetchDueBatch", mock.Anything, mock.Anything, 20).
			Return([]domain.QueuedEmail{}, nil)

		svc := newTestService(queueRepo)

		stats, err := svc.ProcessQueue(context.Background())

		assert.NoError(t, err)
		assert.Equal(t, 0, stats.Fetched)
		queueRepo.AssertNotCalled(t, "MarkSending", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("claim failure marks the row failed with backoff", func(t *testing.T) {
		email := queuedEmail("system", 0)
		email.ToAddress = "a@x.com"

		queueRepo := new(MockEmailQueueRepository)
		queueRepo.On("FetchDueBatch", mock.Anything, mock.Anything, 20).
			Return([]domain.QueuedEmail{*email}, nil)
		queueRepo.On("MarkSending", mock.Anything, email.ID, mock.Anything).
			Return(assert.AnError)
		queueRepo.On("MarkFailed", mock.Anything, email.ID, mock.Anything, mock.Anything).
			Return(nil)

		svc := newTestService(queueRepo)

		stats, err := svc.ProcessQueue(context.Background())

		assert.NoError(t, err)
		assert.Equal(t, 1, stats.Fetched)
		assert.Equal(t, 1, stats.Failed)
		assert.Equal(t, 0, stats.Sent)
		queueRepo.AssertExpectations(t)
	})
}
