package handler_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/noah-isme/quizhub-api/internal/config"
	"github.com/noah-isme/quizhub-api/internal/database"
	"github.com/noah-isme/quizhub-api/internal/handler"
	"github.com/noah-isme/quizhub-api/internal/middleware"
	"github.com/noah-isme/quizhub-api/internal/repository"
	"github.com/noah-isme/quizhub-api/internal/router"
	"github.com/noah-isme/quizhub-api/internal/service"
	"github.com/noah-isme/quizhub-api/internal/validator"
)

const (
	testJWTSecret = "handler-secret"
	testSeedToken = "seed-token"
)

type envelope struct {
	Success bool              `json:"success"`
	Message string            `json:"message"`
	Data    json.RawMessage   `json:"data"`
	Details map[string]string `json:"details"`
	Meta    json.RawMessage   `json:"meta"`
}

type testApp struct {
	app *fiber.App
	db  *gorm.DB
}

func setupQuizApp(t *testing.T) *testApp {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	logger := zerolog.New(io.Discard)
	validate := validator.New()

	cfg := config.Config{
		AppName:           "QuizHub API",
		AppEnv:            "test",
		JWTSecret:         testJWTSecret,
		JWTTTL:            time.Hour,
		AllowRegistration: true,
		SeedEnabled:       true,
		SeedToken:         testSeedToken,
	}

	quizRepo := repository.NewQuizRepository(db)
	attemptRepo := repository.NewQuizAttemptRepository(db)
	adminRepo := repository.NewAdminUserRepository(db)

	stats := service.NewQuizStatsService(quizRepo, attemptRepo, nil, time.Minute, logger)
	quizzes := service.NewQuizService(quizRepo, stats, validate.Engine(), logger)
	grading := service.NewGradingService(quizRepo, attemptRepo, nil, "", stats, validate.Engine(), logger)
	auth := service.NewAuthService(adminRepo, validate.Engine(), cfg.JWTSecret, cfg.JWTTTL, cfg.AllowRegistration, logger)
	seed, err := service.NewSeedService(quizRepo, quizzes, cfg.SeedEnabled, cfg.SeedToken, logger)
	require.NoError(t, err)

	app := fiber.New()
	middleware.Register(app, middleware.Config{Logger: &logger})
	router.Register(app, cfg, router.Dependencies{
		QuizHandler:      handler.NewQuizHandler(quizzes, grading, stats, validate, logger),
		AdminQuizHandler: handler.NewAdminQuizHandler(quizzes, validate, logger),
		AuthHandler:      handler.NewAuthHandler(auth, validate, logger),
		SeedHandler:      handler.NewSeedHandler(seed, validate, logger),
		JWTMiddleware:    middleware.JWTProtected(cfg.JWTSecret),
	})

	return &testApp{app: app, db: db}
}

func (a *testApp) do(t *testing.T, method, path string, body interface{}, headers map[string]string) (*http.Response, envelope) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for key, value := range headers {
		req.Header.Set(key, value)
	}

	resp, err := a.app.Test(req, -1)
	require.NoError(t, err)

	var env envelope
	decodeResponse(t, resp, &env)
	return resp, env
}

func (a *testApp) adminToken(t *testing.T) string {
	t.Helper()

	resp, env := a.do(t, http.MethodPost, "/api/v1/auth/register", map[string]string{
		"email":    "admin@example.com",
		"password": "supersecret",
	}, nil)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var auth struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &auth))
	require.NotEmpty(t, auth.Token)
	return auth.Token
}

func bearer(token string) map[string]string {
	return map[string]string{"Authorization": "Bearer " + token}
}

func decodeResponse(t *testing.T, resp *http.Response, target interface{}) {
	t.Helper()
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(body, target), string(body))
}
