package service

import (
	"github.com/minio/minio-go/v7"
	"github.com/redis/go-redis/v9"

	"church-admin-be/internal/config"
	"church-admin-be/internal/repository"
	"church-admin-be/internal/service/audit"
	"church-admin-be/internal/service/comms"
	"church-admin-be/internal/service/delivery"
	"church-admin-be/internal/service/events"
	"church-admin-be/internal/service/settings"
	"church-admin-be/internal/service/workflow"
)

type Services struct {
	Workflow workflow.Service
	Delivery delivery.Service
	Events   events.Service
	Comms    comms.Service
	Settings settings.Service
	Audit    audit.Service
}

func NewServices(repos *repository.Repositories, redis *redis.Client, minioClient *minio.Client, cfg *config.Config) *Services {
	return &Services{
		Workflow: workflow.NewService(repos, redis, cfg),
		Delivery: delivery.NewService(repos.EmailQueue, minioClient, cfg),
		Events:   events.NewService(repos.Event),
		Comms:    comms.NewService(repos.Template),
		Settings: settings.NewService(repos.Settings),
		Audit:    audit.NewService(repos.AuditLog),
	}
}
