package settings

import (
	"context"

	"github.com/google/uuid"

	"church-admin-be/internal/domain"
	"church-admin-be/internal/repository"
)

type Service interface {
	GetGlobal(ctx context.Context) (*domain.NotificationGlobalSettings, error)
	UpdateGlobal(ctx context.Context, input domain.UpdateGlobalSettingsInput) (*domain.NotificationGlobalSettings, error)
	ListTypes(ctx context.Context) ([]domain.NotificationTypeSetting, error)
	UpsertType(ctx context.Context, notificationType string, input domain.UpdateTypeSettingInput) (*domain.NotificationTypeSetting, error)
}

type service struct {
	settingsRepo repository.SettingsRepository
}

func NewService(settingsRepo repository.SettingsRepository) Service {
	return &service{settingsRepo: settingsRepo}
}

func (s *service) GetGlobal(ctx context.Context) (*domain.NotificationGlobalSettings, error) {
	settings, err := s.settingsRepo.GetGlobalNotificationSettings(ctx)
	if err != nil {
		return nil, err
	}
	if settings == nil {
		return nil, domain.ErrSettingsNotFound
	}
	return settings, nil
}

func (s *service) UpdateGlobal(ctx context.Context, input domain.UpdateGlobalSettingsInput) (*domain.NotificationGlobalSettings, error) {
	settings, err := s.GetGlobal(ctx)
	if err != nil {
		return nil, err
	}

	if input.EmailEnabled != nil {
		settings.EmailEnabled = *input.EmailEnabled
	}
	if input.SMSEnabled != nil {
		settings.SMSEnabled = *input.SMSEnabled
	}
	if input.PushEnabled != nil {
		settings.PushEnabled = *input.PushEnabled
	}

	if err := s.settingsRepo.UpdateGlobalNotificationSettings(ctx, settings); err != nil {
		return nil, err
	}
	return settings, nil
}

func (s *service) ListTypes(ctx context.Context) ([]domain.NotificationTypeSetting, error) {
	return s.settingsRepo.ListTypeSettings(ctx)
}

func (s *service) UpsertType(ctx context.Context, notificationType string, input domain.UpdateTypeSettingInput) (*domain.NotificationTypeSetting, error) {
	setting := &domain.NotificationTypeSetting{
		ID:               uuid.New(),
		NotificationType: notificationType,
		Method:           input.Method,
		Enabled:          input.Enabled,
		Roles:            input.Roles,
	}
	if err := s.settingsRepo.UpsertTypeSetting(ctx, setting); err != nil {
		return nil, err
	}
	return setting, nil
}
