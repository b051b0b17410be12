package main

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"

	"church-admin-be/internal/config"
	"church-admin-be/internal/handler"
	"church-admin-be/internal/middleware"
	"church-admin-be/internal/repository"
	"church-admin-be/internal/service"
)

func main() {
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
	handlers := handler.NewHandlers(services)

	app := fiber.New(fiber.Config{
		ErrorHandler: middleware.ErrorHandler,
	})

	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Next: func(c *fiber.Ctx) bool {
			return c.Path() == "/health"
		},
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.CORSOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization, X-Client-Info, ApiKey",
		AllowMethods: "GET, POST, PUT, PATCH, DELETE, OPTIONS",
	}))

	setupRoutes(app, handlers, cfg)

	log.Printf("Server starting on port %s", cfg.Port)
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

func setupRoutes(app *fiber.App, h *handler.Handlers, cfg *config.Config) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	v1 := app.Group("/api/v1")

	// Machine-to-machine entry points: the trigger dispatcher and the cron
	// hooks used when no worker binary is deployed.
	workflows := v1.Group("/workflows", middleware.ServiceKeyRequired(cfg.ServiceAPIKey))
	workflows.Post("/execute", h.Workflow.Execute)

	cron := v1.Group("/cron", middleware.ServiceKeyRequired(cfg.ServiceAPIKey))
	cron.Post("/process-email-queue", h.Queue.Process)

	protected := v1.Group("", middleware.AuthRequired(cfg.JWTSecret))

	queue := protected.Group("/email-queue", middleware.RequireRole("staff"))
	queue.Get("/", h.Queue.List)
	queue.Get("/stats", h.Queue.Stats)

	settings := protected.Group("/settings/notifications")
	settings.Get("/", middleware.RequireRole("staff"), h.Settings.GetGlobal)
	settings.Put("/", middleware.RequireRole("admin"), h.Settings.UpdateGlobal)
	settings.Get("/types", middleware.RequireRole("staff"), h.Settings.ListTypes)
	settings.Put("/types/:type", middleware.RequireRole("admin"), h.Settings.UpsertType)

	templates := protected.Group("/templates")
	templates.Get("/", middleware.RequireRole("staff"), h.Template.List)
	templates.Get("/:name", middleware.RequireRole("staff"), h.Template.Get)
	templates.Put("/:name", middleware.RequireRole("admin"), h.Template.Upsert)

	audit := protected.Group("/audit", middleware.RequireRole("admin"))
	audit.Get("/recent", h.Audit.GetRecentActivities)
}
