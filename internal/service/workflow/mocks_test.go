package workflow

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"church-admin-be/internal/config"
	"church-admin-be/internal/domain"
	"church-admin-be/internal/repository"
)

type MockContactRepository struct {
	mock.Mock
}

func (m *MockContactRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Contact, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Contact), args.Error(1)
}

func (m *MockContactRepository) ListWithBirthdayOn(ctx context.Context, monthDay string) ([]domain.Contact, error) {
	args := m.Called(ctx, monthDay)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Contact), args.Error(1)
}

func (m *MockContactRepository) ListVisitorsCreatedBetween(ctx context.Context, from, to time.Time) ([]domain.Contact, error) {
	args := m.Called(ctx, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Contact), args.Error(1)
}

func (m *MockContactRepository) ListEmailableByLifecycles(ctx context.Context, lifecycles []string) ([]domain.Contact, error) {
	args := m.Called(ctx, lifecycles)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Contact), args.Error(1)
}

type MockEventRepository struct {
	mock.Mock
}

func (m *MockEventRepository) ListPublishedBetween(ctx context.Context, from, to time.Time) ([]domain.Event, error) {
	args := m.Called(ctx, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Event), args.Error(1)
}

func (m *MockEventRepository) ListOverdueScheduled(ctx context.Context, before time.Time) ([]domain.Event, error) {
	args := m.Called(ctx, before)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Event), args.Error(1)
}

func (m *MockEventRepository) MarkCompleted(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockTemplateRepository struct {
	mock.Mock
}

func (m *MockTemplateRepository) GetByNameAndChannel(ctx context.Context, name, channel string) (*domain.MessageTemplate, error) {
	args := m.Called(ctx, name, channel)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.MessageTemplate), args.Error(1)
}

func (m *MockTemplateRepository) List(ctx context.Context) ([]domain.MessageTemplate, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.MessageTemplate), args.Error(1)
}

func (m *MockTemplateRepository) Upsert(ctx context.Context, tmpl *domain.MessageTemplate) error {
	args := m.Called(ctx, tmpl)
	return args.Error(0)
}

func (m *MockTemplateRepository) InsertIfAbsent(ctx context.Context, tmpl *domain.MessageTemplate) (bool, error) {
	args := m.Called(ctx, tmpl)
	return args.Bool(0), args.Error(1)
}

type MockSettingsRepository struct {
	mock.Mock
}

func (m *MockSettingsRepository) GetTenantSettings(ctx context.Context) (*domain.TenantSettings, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TenantSettings), args.Error(1)
}

func (m *MockSettingsRepository) GetGlobalNotificationSettings(ctx context.Context) (*domain.NotificationGlobalSettings, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.NotificationGlobalSettings), args.Error(1)
}

func (m *MockSettingsRepository) UpdateGlobalNotificationSettings(ctx context.Context, settings *domain.NotificationGlobalSettings) error {
	args := m.Called(ctx, settings)
	return args.Error(0)
}

func (m *MockSettingsRepository) ListTypeSettings(ctx context.Context) ([]domain.NotificationTypeSetting, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.NotificationTypeSetting), args.Error(1)
}

func (m *MockSettingsRepository) GetTypeSetting(ctx context.Context, notificationType, method string) (*domain.NotificationTypeSetting, error) {
	args := m.Called(ctx, notificationType, method)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.NotificationTypeSetting), args.Error(1)
}

func (m *MockSettingsRepository) UpsertTypeSetting(ctx context.Context, setting *domain.NotificationTypeSetting) error {
	args := m.Called(ctx, setting)
	return args.Error(0)
}

type MockStaffRepository struct {
	mock.Mock
}

func (m *MockStaffRepository) ListActiveByUserTypes(ctx context.Context, userTypes []string) ([]domain.StaffUser, error) {
	args := m.Called(ctx, userTypes)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.StaffUser), args.Error(1)
}

type MockAuditLogRepository struct {
	mock.Mock
}

func (m *MockAuditLogRepository) Create(ctx context.Context, entry *domain.AuditLog) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockAuditLogRepository) ListRecent(ctx context.Context, limit int) ([]domain.AuditLog, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.AuditLog), args.Error(1)
}

// fakeQueueRepo is an in-memory queue honoring the dedup-key contract, so
// idempotence tests exercise the same insert semantics the database enforces.
type fakeQueueRepo struct {
	emails     []domain.QueuedEmail
	dedup      map[string]bool
	enqueueErr error
}

func newFakeQueueRepo() *fakeQueueRepo {
	return &fakeQueueRepo{dedup: make(map[string]bool)}
}

func (f *fakeQueueRepo) Enqueue(ctx context.Context, email *domain.QueuedEmail) (bool, error) {
	if f.enqueueErr != nil {
		return false, f.enqueueErr
	}
	if email.DedupKey != nil {
		if f.dedup[*email.DedupKey] {
			return false, nil
		}
		f.dedup[*email.DedupKey] = true
	}
	f.emails = append(f.emails, *email)
	return true, nil
}

func (f *fakeQueueRepo) ExistsForContactTemplate(ctx context.Context, toAddress, templateType, contactID string) (bool, error) {
	for i := range f.emails {
		meta := f.emails[i].ParsedMetadata()
		if meta.TemplateType == templateType && meta.ContactID == contactID {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeQueueRepo) FetchDueBatch(ctx context.Context, now time.Time, batchSize int) ([]domain.QueuedEmail, error) {
	return nil, nil
}

func (f *fakeQueueRepo) MarkSending(ctx context.Context, id uuid.UUID, attemptAt time.Time) error {
	return nil
}

func (f *fakeQueueRepo) MarkSent(ctx context.Context, id uuid.UUID, sentAt time.Time) error {
	return nil
}

func (f *fakeQueueRepo) MarkFailed(ctx context.Context, id uuid.UUID, errMsg string, nextAttemptAt *time.Time) error {
	return nil
}

func (f *fakeQueueRepo) List(ctx context.Context, status string, params domain.PaginationParams) ([]domain.QueuedEmail, int64, error) {
	return nil, 0, nil
}

func (f *fakeQueueRepo) Stats(ctx context.Context) (*domain.QueueStats, error) {
	return &domain.QueueStats{}, nil
}

func newTestService(t *testing.T, repos *repository.Repositories, at time.Time) *service {
	t.Helper()
	cfg := &config.Config{
		FromEmail:        "admin@docmchurch.org",
		FromName:         "DOCM Church",
		QueueMaxAttempts: 3,
		SettingsCacheTTL: time.Minute,
	}
	svc := NewService(repos, nil, cfg).(*service)
	svc.now = func() time.Time { return at }
	return svc
}

func fixedNow() time.Time {
	return time.Date(2026, time.July, 4, 10, 0, 0, 0, time.UTC)
}

func strPtr(s string) *string {
	return &s
}

func timePtr(t time.Time) *time.Time {
	return &t
}
