package main

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/quizhub-api/internal/config"
	"github.com/noah-isme/quizhub-api/internal/database"
	"github.com/noah-isme/quizhub-api/internal/handler"
	"github.com/noah-isme/quizhub-api/internal/logger"
	"github.com/noah-isme/quizhub-api/internal/middleware"
	"github.com/noah-isme/quizhub-api/internal/repository"
	"github.com/noah-isme/quizhub-api/internal/router"
	"github.com/noah-isme/quizhub-api/internal/service"
	"github.com/noah-isme/quizhub-api/internal/utils"
	"github.com/noah-isme/quizhub-api/internal/validator"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		bootLog := logger.Setup("info", "json")
		bootLog.Fatal().Err(err).Msg("failed to load configuration")
	}

	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)

	db, err := database.ConnectPostgres(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	if err := database.Migrate(db); err != nil {
		log.Fatal().Err(err).Msg("failed to migrate database")
	}

	redisClient, err := database.ConnectRedis(cfg.RedisURL)
	if err != nil {
		log.Warn().Err(err).Msg("redis unavailable, quiz stats will not be cached")
		redisClient = nil
	} else {
		defer redisClient.Close()
	}

	var publisher service.EventPublisher
	natsConn, err := database.ConnectNATS(cfg.NATSURL, cfg.AppName)
	if err != nil {
		log.Warn().Err(err).Msg("nats unavailable, graded attempt events disabled")
	} else {
		publisher = natsConn
		defer natsConn.Drain()
	}

	validate := validator.New()

	quizRepo := repository.NewQuizRepository(db)
	attemptRepo := repository.NewQuizAttemptRepository(db)
	adminRepo := repository.NewAdminUserRepository(db)

	statsService := service.NewQuizStatsService(quizRepo, attemptRepo, redisClient, cfg.StatsCacheTTL, log)
	quizService := service.NewQuizService(quizRepo, statsService, validate.Engine(), log)
	gradingService := service.NewGradingService(quizRepo, attemptRepo, publisher, cfg.NATSSubject, statsService, validate.Engine(), log)
	authService := service.NewAuthService(adminRepo, validate.Engine(), cfg.JWTSecret, cfg.JWTTTL, cfg.AllowRegistration, log)
	seedService, err := service.NewSeedService(quizRepo, quizService, cfg.SeedEnabled, cfg.SeedToken, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to build seed service")
	}

	app := fiber.New(fiber.Config{
		AppName:      cfg.AppName,
		ServerHeader: cfg.AppName,
		BodyLimit:    1 << 20,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if fe, ok := err.(*fiber.Error); ok {
				code = fe.Code
			}
			return utils.SendError(c, code, err.Error())
		},
	})

	middleware.Register(app, middleware.Config{
		Logger:       &log,
		AllowOrigins: cfg.CORSAllowOrigins,
		AccessLog:    cfg.LogFormat == "pretty",
	})
	router.Register(app, cfg, router.Dependencies{
		QuizHandler:      handler.NewQuizHandler(quizService, gradingService, statsService, validate, log),
		AdminQuizHandler: handler.NewAdminQuizHandler(quizService, validate, log),
		AuthHandler:      handler.NewAuthHandler(authService, validate, log),
		SeedHandler:      handler.NewSeedHandler(seedService, validate, log),
		JWTMiddleware:    middleware.JWTProtected(cfg.JWTSecret),
		SubmitLimiter:    middleware.RateLimit("submit", cfg.SubmitRateMax, cfg.RateLimitWindow),
		AuthLimiter:      middleware.RateLimit("auth", cfg.AuthRateMax, cfg.RateLimitWindow),
	})

	go func() {
		log.Info().Str("address", cfg.HTTPAddress()).Msg("starting server")
		if err := app.Listen(cfg.HTTPAddress()); err != nil {
			log.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	waitForShutdown(app, log)
}

func waitForShutdown(app *fiber.App, log zerolog.Logger) {
	shutdownCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-shutdownCtx.Done()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(ctx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}

	log.Info().Msg("server stopped")
}
