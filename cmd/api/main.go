package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/unievents/unievents/internal/auth"
	"github.com/unievents/unievents/internal/code"
	"github.com/unievents/unievents/internal/config"
	"github.com/unievents/unievents/internal/email"
	"github.com/unievents/unievents/internal/handler"
	"github.com/unievents/unievents/internal/repository"
	"github.com/unievents/unievents/internal/service"
	"github.com/unievents/unievents/internal/validator"
	"github.com/unievents/unievents/pkg/database"
)

func main() {
	// .env is optional; real deployments set environment variables directly.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	initLogger(cfg)

	ctx := context.Background()

	pool, err := database.NewPool(ctx, cfg.DB.DSN(), 5)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}

	app := fiber.New(fiber.Config{
		AppName:      "UniEvents API",
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
		BodyLimit:    1 * 1024 * 1024,
	})

	// Middleware
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(logger.New())

	validate := validator.New()

	// Collaborators
	codes := code.NewSecureGenerator()
	hasher := auth.NewBcryptHasher()
	tokens := auth.NewJWTIssuer(cfg.JWT.Secret, cfg.JWT.TTL())
	notifier := email.NewSMTPNotifier(cfg.SMTP.Host, cfg.SMTP.Port, cfg.SMTP.Username, cfg.SMTP.Password, cfg.SMTP.From)

	// Repositories
	accountRepo := repository.NewAccountRepository(pool)
	eventRepo := repository.NewEventRepository(pool)
	couponRepo := repository.NewCouponRepository(pool)

	// Services (the coupon service doubles as the account service's welcome
	// coupon issuer)
	couponService := service.NewCouponService(couponRepo, codes)
	accountService := service.NewAccountService(accountRepo, couponService, hasher, tokens, notifier, codes, cfg.Codes.TTL())
	cartService := service.NewCartService(accountRepo, eventRepo)
	eventService := service.NewEventService(eventRepo)

	// Handlers
	authHandler := handler.NewAuthHandler(accountService, validate)
	accountHandler := handler.NewAccountHandler(accountService, validate)
	cartHandler := handler.NewCartHandler(cartService, validate)
	eventHandler := handler.NewEventHandler(eventService, validate)
	couponHandler := handler.NewCouponHandler(couponService, validate)
	healthHandler := handler.NewHealthHandler(pool)

	app.Get("/health", healthHandler.Check)

	// Auth routes
	app.Post("/api/auth/register", authHandler.Register)
	app.Post("/api/auth/activate", authHandler.Activate)
	app.Post("/api/auth/login", authHandler.Login)
	app.Post("/api/auth/recovery", authHandler.RequestRecovery)
	app.Post("/api/auth/password", authHandler.ChangePassword)

	// Account routes
	app.Get("/api/accounts", accountHandler.List)
	app.Get("/api/accounts/:id", accountHandler.Get)
	app.Put("/api/accounts/:id", accountHandler.Update)
	app.Delete("/api/accounts/:id", accountHandler.Delete)

	// Cart routes (nested under the owning account)
	app.Get("/api/accounts/:id/cart", cartHandler.Get)
	app.Post("/api/accounts/:id/cart/items", cartHandler.AddLine)
	app.Put("/api/accounts/:id/cart/items/:itemID", cartHandler.EditLine)
	app.Delete("/api/accounts/:id/cart/items/:itemID", cartHandler.RemoveLine)

	// Event routes
	app.Post("/api/events", eventHandler.Create)
	app.Get("/api/events", eventHandler.List)
	app.Get("/api/events/:id", eventHandler.Get)
	app.Get("/api/events/:id/availability", eventHandler.Availability)

	// Coupon routes
	app.Post("/api/coupons", couponHandler.Create)
	app.Get("/api/coupons", couponHandler.List)
	app.Get("/api/coupons/account/:accountID", couponHandler.ListForAccount)
	app.Put("/api/coupons/:id", couponHandler.Update)
	app.Delete("/api/coupons/:id", couponHandler.Revoke)
	app.Post("/api/coupons/redeem", couponHandler.Redeem)

	// Start server with graceful shutdown
	go func() {
		log.Info().Str("port", cfg.Server.Port).Msg("starting server")
		if err := app.Listen(":" + cfg.Server.Port); err != nil {
			log.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	log.Info().Str("signal", sig.String()).Msg("received shutdown signal")
	log.Info().Int("timeout_seconds", cfg.Server.ShutdownTimeout).Msg("shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer shutdownCancel()

	// Shutdown waits for in-flight requests before the pool is closed.
	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("error during server shutdown")
	}

	pool.Close()
	log.Info().Msg("server stopped")
}

// initLogger configures zerolog based on the application configuration.
func initLogger(cfg *config.Config) {
	level, err := zerolog.ParseLevel(cfg.Log.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	if cfg.Log.Pretty {
		log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout}).
			With().Timestamp().Logger()
	} else {
		zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
		log.Logger = zerolog.New(os.Stdout).With().Timestamp().Logger()
	}
}
