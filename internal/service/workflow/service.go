package workflow

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"church-admin-be/internal/config"
	"church-admin-be/internal/domain"
	"church-admin-be/internal/repository"
)

// Service executes notification workflows. Execute never panics across its
// boundary: handler errors surface as the returned error and are converted
// to a structured failure by the HTTP layer.
type Service interface {
	Execute(ctx context.Context, trigger domain.WorkflowTrigger) (*domain.WorkflowResult, error)
}

type service struct {
	contactRepo  repository.ContactRepository
	eventRepo    repository.EventRepository
	templateRepo repository.TemplateRepository
	settingsRepo repository.SettingsRepository
	staffRepo    repository.StaffRepository
	queueRepo    repository.EmailQueueRepository
	auditRepo    repository.AuditLogRepository
	redis        *redis.Client
	cfg          *config.Config
	now          func() time.Time
}

func NewService(repos *repository.Repositories, redis *redis.Client, cfg *config.Config) Service {
	return &service{
		contactRepo:  repos.Contact,
		eventRepo:    repos.Event,
		templateRepo: repos.Template,
		settingsRepo: repos.Settings,
		staffRepo:    repos.Staff,
		queueRepo:    repos.EmailQueue,
		auditRepo:    repos.AuditLog,
		redis:        redis,
		cfg:          cfg,
		now:          time.Now,
	}
}

func (s *service) Execute(ctx context.Context, trigger domain.WorkflowTrigger) (*domain.WorkflowResult, error) {
	log.Printf("Executing workflow for trigger: %s", trigger.Type)

	var result *domain.WorkflowResult
	var err error

	switch trigger.Type {
	case domain.TriggerNewMember:
		if trigger.ContactID == nil {
			return nil, domain.ErrContactIDRequired
		}
		result, err = s.executeNewMember(ctx, *trigger.ContactID)
	case domain.TriggerBirthday:
		result, err = s.executeBirthdays(ctx, trigger.ContactID)
	case domain.TriggerVisitorFollowup:
		result, err = s.executeVisitorFollowups(ctx)
	case domain.TriggerEventReminder:
		result, err = s.executeEventReminders(ctx)
	default:
		return nil, fmt.Errorf("%w: %s", domain.ErrUnknownTriggerType, trigger.Type)
	}

	if err != nil {
		return nil, err
	}

	s.recordExecution(ctx, trigger, result)
	return result, nil
}

func (s *service) recordExecution(ctx context.Context, trigger domain.WorkflowTrigger, result *domain.WorkflowResult) {
	detail, _ := json.Marshal(result)
	entry := &domain.AuditLog{
		ID:         uuid.New(),
		Action:     domain.AuditActionExecuteWorkflow,
		EntityType: domain.AuditEntityWorkflow,
		EntityRef:  string(trigger.Type),
		Detail:     detail,
	}
	if err := s.auditRepo.Create(ctx, entry); err != nil {
		log.Printf("Failed to record workflow audit entry: %v", err)
	}
}

// churchSettings loads the tenant record, via a short-lived Redis cache when
// one is wired. A missing row falls back to the default display name.
func (s *service) churchSettings(ctx context.Context) domain.ChurchSettings {
	const cacheKey = "tenant:settings"

	if s.redis != nil {
		if cached, err := s.redis.Get(ctx, cacheKey).Result(); err == nil {
			var settings domain.ChurchSettings
			if json.Unmarshal([]byte(cached), &settings) == nil && settings.ChurchName != "" {
				return settings
			}
		}
	}

	row, err := s.settingsRepo.GetTenantSettings(ctx)
	if err != nil {
		log.Printf("Error fetching church settings: %v", err)
		return domain.ChurchSettings{ChurchName: domain.DefaultChurchName}
	}

	settings := domain.ChurchSettings{ChurchName: domain.DefaultChurchName}
	if row != nil && row.Name != "" {
		settings.ChurchName = row.Name
	}

	if s.redis != nil {
		if raw, err := json.Marshal(settings); err == nil {
			_ = s.redis.Set(ctx, cacheKey, raw, s.cfg.SettingsCacheTTL).Err()
		}
	}

	return settings
}
