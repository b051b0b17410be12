package workflow

import (
	"context"
	"log"

	"church-admin-be/internal/domain"
)

// FailOpenOnConfigError keeps staff notifications flowing when the
// notification settings cannot be read: a transient config-read failure
// over-notifies instead of going dark. Flip with care; the policy is relied
// on operationally.
const FailOpenOnConfigError = true

// PolicyConfig is the two-layer notification permission state, loaded per
// invocation and passed in explicitly so the gate stays a pure function.
type PolicyConfig struct {
	Global *domain.NotificationGlobalSettings
	Types  []domain.NotificationTypeSetting
}

func (c *PolicyConfig) typeSetting(notificationType, method string) *domain.NotificationTypeSetting {
	for i := range c.Types {
		if c.Types[i].NotificationType == notificationType && c.Types[i].Method == method {
			return &c.Types[i]
		}
	}
	return nil
}

// ShouldSend reports whether a notification of the given type may go to the
// given role over the given method. The global method flag dominates; a
// disabled or missing layer at any step denies.
func ShouldSend(cfg *PolicyConfig, notificationType, method, role string) bool {
	if cfg == nil || cfg.Global == nil || !cfg.Global.MethodEnabled(method) {
		log.Printf("%s notifications globally disabled", method)
		return false
	}

	setting := cfg.typeSetting(notificationType, method)
	if setting == nil || !setting.Enabled {
		log.Printf("%s %s notifications disabled", notificationType, method)
		return false
	}

	if !setting.AllowsRole(role) {
		log.Printf("%s not allowed for %s %s notifications", role, notificationType, method)
		return false
	}

	return true
}

// loadPolicyConfig reads both settings layers. Callers translate a read
// error into fail-open via shouldSendNotification.
func (s *service) loadPolicyConfig(ctx context.Context) (*PolicyConfig, error) {
	global, err := s.settingsRepo.GetGlobalNotificationSettings(ctx)
	if err != nil {
		return nil, err
	}
	types, err := s.settingsRepo.ListTypeSettings(ctx)
	if err != nil {
		return nil, err
	}
	return &PolicyConfig{Global: global, Types: types}, nil
}

func (s *service) shouldSendNotification(ctx context.Context, notificationType, method, role string) bool {
	cfg, err := s.loadPolicyConfig(ctx)
	if err != nil {
		log.Printf("Warning: failed to read notification settings: %v (fail-open=%t)", err, FailOpenOnConfigError)
		return FailOpenOnConfigError
	}
	return ShouldSend(cfg, notificationType, method, role)
}
