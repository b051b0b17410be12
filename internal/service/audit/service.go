package audit

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"

	"church-admin-be/internal/domain"
	"church-admin-be/internal/repository"
)

type Service interface {
	Record(ctx context.Context, input domain.CreateAuditLogInput) error
	GetRecentActivities(ctx context.Context, limit int) ([]domain.AuditLog, error)
}

type service struct {
	auditRepo repository.AuditLogRepository
}

func NewService(auditRepo repository.AuditLogRepository) Service {
	return &service{
		auditRepo: auditRepo,
	}
}

func (s *service) Record(ctx context.Context, input domain.CreateAuditLogInput) error {
	var detail json.RawMessage
	if input.Detail != nil {
		detail, _ = json.Marshal(input.Detail)
	}

	entry := &domain.AuditLog{
		ID:         uuid.New(),
		ActorID:    input.ActorID,
		Action:     input.Action,
		EntityType: input.EntityType,
		EntityRef:  input.EntityRef,
		Detail:     detail,
	}
	return s.auditRepo.Create(ctx, entry)
}

func (s *service) GetRecentActivities(ctx context.Context, limit int) ([]domain.AuditLog, error) {
	if limit < 1 || limit > 100 {
		limit = 20
	}
	return s.auditRepo.ListRecent(ctx, limit)
}
