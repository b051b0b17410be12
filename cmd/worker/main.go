package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	goredis "github.com/redis/go-redis/v9"

	"church-admin-be/internal/config"
	"church-admin-be/internal/domain"
	"church-admin-be/internal/repository"
	"church-admin-be/internal/service"
)

func main() {
	log.Println("Starting church-admin worker...")

	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := config.Load()

	db, err := config.NewPostgresDB(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	redis, err := config.NewRedisClient(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
	defer redis.Close()

	minioClient, err := config.NewMinIOClient(cfg)
	if err != nil {
		log.Printf("Warning: Failed to connect to MinIO: %v (email attachments will not work)", err)
	}

	repos := repository.NewRepositories(db)
	services := service.NewServices(repos, redis, minioClient, cfg)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := services.Comms.SeedDefaults(ctx, cfg.TemplateSeedPath); err != nil {
		log.Printf("Warning: failed to seed default templates: %v", err)
	}

	w := &worker{services: services, redis: redis, cfg: cfg}

	go w.runQueueDrain(ctx)
	go w.runHourlySweeps(ctx)
	go w.runDailySweeps(ctx)

	log.Println("Worker running...")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down worker...")
	cancel()
	time.Sleep(time.Second)
}

type worker struct {
	services *service.Services
	redis    *goredis.Client
	cfg      *config.Config
}

func (w *worker) runQueueDrain(ctx context.Context) {
	ticker := time.NewTicker(w.cfg.QueuePollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			stats, err := w.services.Delivery.ProcessQueue(ctx)
			if err != nil {
				log.Printf("Queue processing failed: %v", err)
				continue
			}
			if stats.Fetched > 0 {
				log.Printf("Queue drain: fetched=%d sent=%d failed=%d", stats.Fetched, stats.Sent, stats.Failed)
			}
		}
	}
}

func (w *worker) runHourlySweeps(ctx context.Context) {
	ticker := time.NewTicker(time.Hour)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			completed, err := w.services.Events.AutoCompleteOverdue(ctx)
			if err != nil {
				log.Printf("Event auto-completion failed: %v", err)
				continue
			}
			if completed > 0 {
				log.Printf("Auto-completed %d overdue events", completed)
			}
		}
	}
}

// runDailySweeps fires the scheduled workflows once per day at the
// configured hour. A per-job, per-date Redis lock keeps multiple worker
// replicas from double-running a sweep.
func (w *worker) runDailySweeps(ctx context.Context) {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	triggers := []domain.TriggerType{
		domain.TriggerBirthday,
		domain.TriggerVisitorFollowup,
		domain.TriggerEventReminder,
	}

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			now := time.Now()
			if now.Hour() != w.cfg.SweepHour {
				continue
			}

			for _, trigger := range triggers {
				if !w.acquireDayLock(ctx, trigger, now) {
					continue
				}

				result, err := w.services.Workflow.Execute(ctx, domain.WorkflowTrigger{Type: trigger})
				if err != nil {
					log.Printf("Scheduled %s workflow failed: %v", trigger, err)
					continue
				}
				log.Printf("Scheduled %s workflow finished: %s", trigger, result.Summary())
			}
		}
	}
}

func (w *worker) acquireDayLock(ctx context.Context, trigger domain.TriggerType, now time.Time) bool {
	key := fmt.Sprintf("workflow:lock:%s:%s", trigger, now.Format("2006-01-02"))
	ok, err := w.redis.SetNX(ctx, key, "1", 48*time.Hour).Result()
	if err != nil {
		log.Printf("Failed to acquire %s sweep lock: %v (running anyway)", trigger, err)
		return true
	}
	return ok
}
