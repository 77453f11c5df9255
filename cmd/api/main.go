package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/nats-io/nats.go"
	"github.com/rs/zerolog"

	"github.com/faikerkan/QuailtyHUB/internal/auth"
	"github.com/faikerkan/QuailtyHUB/internal/config"
	"github.com/faikerkan/QuailtyHUB/internal/database"
	"github.com/faikerkan/QuailtyHUB/internal/handler"
	"github.com/faikerkan/QuailtyHUB/internal/middleware"
	"github.com/faikerkan/QuailtyHUB/internal/repository"
	"github.com/faikerkan/QuailtyHUB/internal/router"
	"github.com/faikerkan/QuailtyHUB/internal/service"
	"github.com/faikerkan/QuailtyHUB/pkg/storage"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	db, err := database.ConnectPostgres(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	if err := database.Migrate(db); err != nil {
		log.Fatalf("failed to migrate database: %v", err)
	}

	redisClient, err := database.ConnectRedis(cfg.RedisURL)
	if err != nil {
		log.Fatalf("failed to connect to redis: %v", err)
	}
	defer redisClient.Close()

	// Fan-out degrades gracefully when the bus is unreachable.
	var bus *nats.Conn
	if cfg.NATSURL != "" {
		bus, err = database.ConnectNATS(cfg.NATSURL)
		if err != nil {
			logger.Warn().Err(err).Msg("nats unavailable, evaluation fan-out disabled")
		} else {
			defer bus.Drain()
		}
	}

	uploader, err := storage.New(storage.Config{
		CloudName: cfg.CloudinaryCloudName,
		APIKey:    cfg.CloudinaryAPIKey,
		APISecret: cfg.CloudinaryAPISecret,
		Folder:    cfg.CloudinaryUploadFolder,
	}, logger)
	if err != nil {
		log.Fatalf("failed to create cloudinary client: %v", err)
	}

	validate := validator.New(validator.WithRequiredStructEnabled())
	tokens := auth.NewTokenIssuer(cfg.JWTSecret, cfg.JWTRefreshSecret, cfg.AccessTokenTTL, cfg.RefreshTokenTTL)

	userRepo := repository.NewUserRepository(db)
	rubricRepo := repository.NewRubricRepository(db)
	callRepo := repository.NewCallRepository(db)
	evaluationRepo := repository.NewEvaluationRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)
	dashboardRepo := repository.NewDashboardRepository(db)

	userService := service.NewUserService(userRepo, tokens, validate, logger)
	rubricService := service.NewRubricService(rubricRepo, validate, logger)
	callService := service.NewCallService(callRepo, userRepo, validate, uploader, logger)
	notificationService := service.NewNotificationService(notificationRepo, bus, cfg.NATSSubject, logger)
	evaluationService := service.NewEvaluationService(evaluationRepo, callRepo, rubricRepo, validate, notificationService, logger)
	dashboardService := service.NewDashboardService(dashboardRepo, redisClient, cfg.DashboardCacheTTL, logger)

	seedStandardRubric(rubricService, logger)

	app := fiber.New(fiber.Config{
		AppName:      cfg.AppName,
		ServerHeader: cfg.AppName,
	})

	middleware.Register(app, middleware.Config{Logger: &logger, CORSOrigins: cfg.CORSAllowOrigins})
	router.Register(app, cfg, router.Dependencies{
		UserHandler:         handler.NewUserHandler(userService, logger),
		RubricHandler:       handler.NewRubricHandler(rubricService, logger),
		CallHandler:         handler.NewCallHandler(callService, logger),
		EvaluationHandler:   handler.NewEvaluationHandler(evaluationService, logger),
		DashboardHandler:    handler.NewDashboardHandler(dashboardService, logger),
		NotificationHandler: handler.NewNotificationHandler(notificationService, logger),
		JWTMiddleware:       middleware.JWTProtected(cfg.JWTSecret),
	})

	go func() {
		if err := app.Listen(cfg.HTTPAddress()); err != nil {
			log.Fatalf("failed to start server: %v", err)
		}
	}()

	waitForShutdown(app)
}

// seedStandardRubric makes sure a fresh install has the standard
// evaluation form so experts can score calls immediately.
func seedStandardRubric(rubrics service.RubricService, logger zerolog.Logger) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	system := auth.Actor{Superuser: true}
	rubric, created, err := rubrics.SeedStandard(ctx, system)
	if err != nil {
		logger.Error().Err(err).Msg("failed to seed standard rubric")
		return
	}
	if created {
		logger.Info().Uint("rubric_id", rubric.ID).Msg("standard evaluation form seeded")
	}
}

func waitForShutdown(app *fiber.App) {
	shutdownCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-shutdownCtx.Done()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(ctx); err != nil {
		log.Printf("graceful shutdown failed: %v", err)
	}

	log.Println("server stopped")
}
