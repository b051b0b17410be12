package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"church-admin-be/internal/domain"
)

type SettingsRepository interface {
	GetTenantSettings(ctx context.Context) (*domain.TenantSettings, error)
	GetGlobalNotificationSettings(ctx context.Context) (*domain.NotificationGlobalSettings, error)
	UpdateGlobalNotificationSettings(ctx context.Context, settings *domain.NotificationGlobalSettings) error
	ListTypeSettings(ctx context.Context) ([]domain.NotificationTypeSetting, error)
	GetTypeSetting(ctx context.Context, notificationType, method string) (*domain.NotificationTypeSetting, error)
	UpsertTypeSetting(ctx context.Context, setting *domain.NotificationTypeSetting) error
}

type settingsRepository struct {
	db *sqlx.DB
}

func NewSettingsRepository(db *sqlx.DB) SettingsRepository {
	return &settingsRepository{db: db}
}

func (r *settingsRepository) GetTenantSettings(ctx context.Context) (*domain.TenantSettings, error) {
	var settings domain.TenantSettings
	query := `SELECT id, name, updated_at FROM tenant_settings LIMIT 1`
	err := r.db.GetContext(ctx, &settings, query)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &settings, nil
}

func (r *settingsRepository) GetGlobalNotificationSettings(ctx context.Context) (*domain.NotificationGlobalSettings, error) {
	var settings domain.NotificationGlobalSettings
	query := `SELECT * FROM notification_settings LIMIT 1`
	err := r.db.GetContext(ctx, &settings, query)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &settings, nil
}

func (r *settingsRepository) UpdateGlobalNotificationSettings(ctx context.Context, settings *domain.NotificationGlobalSettings) error {
	query := `
		UPDATE notification_settings
		SET email_enabled = $1, sms_enabled = $2, push_enabled = $3, updated_at = NOW()
		WHERE id = $4`
	_, err := r.db.ExecContext(ctx, query,
		settings.EmailEnabled, settings.SMSEnabled, settings.PushEnabled, settings.ID)
	return err
}

func (r *settingsRepository) ListTypeSettings(ctx context.Context) ([]domain.NotificationTypeSetting, error) {
	var settings []domain.NotificationTypeSetting
	query := `SELECT * FROM notification_type_settings ORDER BY notification_type_id, method`
	err := r.db.SelectContext(ctx, &settings, query)
	return settings, err
}

func (r *settingsRepository) GetTypeSetting(ctx context.Context, notificationType, method string) (*domain.NotificationTypeSetting, error) {
	var setting domain.NotificationTypeSetting
	query := `SELECT * FROM notification_type_settings WHERE notification_type_id = $1 AND method = $2`
	err := r.db.GetContext(ctx, &setting, query, notificationType, method)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &setting, nil
}

func (r *settingsRepository) UpsertTypeSetting(ctx context.Context, setting *domain.NotificationTypeSetting) error {
	query := `
		INSERT INTO notification_type_settings (id, notification_type_id, method, enabled, roles)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (notification_type_id, method)
		DO UPDATE SET enabled = EXCLUDED.enabled, roles = EXCLUDED.roles, updated_at = NOW()
		RETURNING id, updated_at`
	return r.db.QueryRowxContext(ctx, query,
		setting.ID, setting.NotificationType, setting.Method, setting.Enabled, pq.Array([]string(setting.Roles)),
	).Scan(&setting.ID, &setting.UpdatedAt)
}
