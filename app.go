package main

import (
	"time"

	"lifeshare/internal/config"
	"lifeshare/internal/handlers"
	"lifeshare/internal/middleware"
	"lifeshare/internal/repositories"
	"lifeshare/internal/services"
	"lifeshare/pkg/sessionstore"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"gorm.io/gorm"
)

// newApp wires repositories, services and handlers into a Fiber app.
// events may be nil, in which case no domain events are published.
func newApp(cfg *config.Config, db *gorm.DB, sessions sessionstore.Store, events services.EventPublisher) *fiber.App {
	// --- Repositories ---
	userRepo := repositories.NewGORMUserRepository(db)
	storyRepo := repositories.NewGORMStoryRepository(db)
	likeRepo := repositories.NewGORMLikeRepository(db)
	commentRepo := repositories.NewGORMCommentRepository(db)

	// --- Services ---
	authService := services.NewAuthService(userRepo, sessions, events, cfg.JWTSecret, cfg.SessionTTL)
	storyService := services.NewStoryService(storyRepo, events)
	likeService := services.NewLikeService(likeRepo, events)
	commentService := services.NewCommentService(commentRepo, events)

	// --- Handlers ---
	authHandler := handlers.NewAuthHandler(authService, cfg.CookieSecure)
	storyHandler := handlers.NewStoryHandler(storyService)
	interactionHandler := handlers.NewInteractionHandler(likeService, commentService)

	app := fiber.New(fiber.Config{
		AppName:      "lifeshare",
		UnescapePath: true,
	})

	// --- Middleware ---
	app.Use(recover.New())
	app.Use(requestid.New(requestid.Config{Generator: uuid.NewString}))
	app.Use(fiberlogger.New(fiberlogger.Config{
		Format: "${time} | ${locals:requestid} | ${status} | ${latency} | ${method} ${path}\n",
	}))

	prom := fiberprometheus.NewWithRegistry(prometheus.NewRegistry(), "lifeshare", "", "", nil)
	prom.RegisterAt(app, "/metrics")
	app.Use(prom.Middleware)

	// --- Health Check Endpoint ---
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
		})
	})

	// Every route below sees the caller's session, if any.
	app.Use(middleware.LoadSession(authService))

	authHandler.RegisterRoutes(app)
	storyHandler.RegisterRoutes(app)
	interactionHandler.RegisterRoutes(app)

	return app
}
