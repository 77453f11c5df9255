package handler_test

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/faikerkan/QuailtyHUB/internal/auth"
	"github.com/faikerkan/QuailtyHUB/internal/config"
	"github.com/faikerkan/QuailtyHUB/internal/database"
	"github.com/faikerkan/QuailtyHUB/internal/handler"
	"github.com/faikerkan/QuailtyHUB/internal/middleware"
	"github.com/faikerkan/QuailtyHUB/internal/models"
	"github.com/faikerkan/QuailtyHUB/internal/repository"
	"github.com/faikerkan/QuailtyHUB/internal/router"
	"github.com/faikerkan/QuailtyHUB/internal/service"
)

const testJWTSecret = "handler-test-secret"

type stubUploader struct{}

func (stubUploader) Upload(_ context.Context, name string, _ io.Reader) (string, error) {
	return "https://cdn.example.com/recordings/" + name, nil
}

func setupApp(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	server := miniredis.RunT(t)
	cache := redis.NewClient(&redis.Options{Addr: server.Addr()})
	t.Cleanup(func() { _ = cache.Close() })

	validate := validator.New(validator.WithRequiredStructEnabled())
	logger := zerolog.New(io.Discard)
	tokens := auth.NewTokenIssuer(testJWTSecret, testJWTSecret+"-refresh", 15*time.Minute, 24*time.Hour)

	userRepo := repository.NewUserRepository(db)
	rubricRepo := repository.NewRubricRepository(db)
	callRepo := repository.NewCallRepository(db)
	evaluationRepo := repository.NewEvaluationRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)
	dashboardRepo := repository.NewDashboardRepository(db)

	userService := service.NewUserService(userRepo, tokens, validate, logger)
	rubricService := service.NewRubricService(rubricRepo, validate, logger)
	callService := service.NewCallService(callRepo, userRepo, validate, stubUploader{}, logger)
	notificationService := service.NewNotificationService(notificationRepo, nil, "", logger)
	evaluationService := service.NewEvaluationService(evaluationRepo, callRepo, rubricRepo, validate, notificationService, logger)
	dashboardService := service.NewDashboardService(dashboardRepo, cache, time.Minute, logger)

	app := fiber.New()

	router.Register(app, config.Config{AppName: "Test", AppEnv: "test", JWTSecret: testJWTSecret}, router.Dependencies{
		UserHandler:         handler.NewUserHandler(userService, logger),
		RubricHandler:       handler.NewRubricHandler(rubricService, logger),
		CallHandler:         handler.NewCallHandler(callService, logger),
		EvaluationHandler:   handler.NewEvaluationHandler(evaluationService, logger),
		DashboardHandler:    handler.NewDashboardHandler(dashboardService, logger),
		NotificationHandler: handler.NewNotificationHandler(notificationService, logger),
		JWTMiddleware:       middleware.JWTProtected(testJWTSecret),
	})

	return app, db
}

func seedAccount(t *testing.T, db *gorm.DB, username, role string) models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("parola-"+username), bcrypt.MinCost)
	require.NoError(t, err)

	user := models.User{
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: string(hash),
		Role:         role,
		IsActive:     true,
	}
	require.NoError(t, db.Create(&user).Error)
	return user
}

func bearerFor(t *testing.T, user models.User) string {
	t.Helper()

	tokens := auth.NewTokenIssuer(testJWTSecret, testJWTSecret+"-refresh", 15*time.Minute, 24*time.Hour)
	access, _, err := tokens.Issue(service.ActorForUser(user))
	require.NoError(t, err)
	return "Bearer " + access
}

func decodeResponse(t *testing.T, resp *http.Response, target interface{}) {
	t.Helper()
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, resp.Body.Close())
	require.NoError(t, json.Unmarshal(data, target))
}
