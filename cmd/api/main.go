// AngelaMos | 2026
// main.go

package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/carterperez-dev/invoicery/internal/admin"
	"github.com/carterperez-dev/invoicery/internal/auth"
	"github.com/carterperez-dev/invoicery/internal/config"
	"github.com/carterperez-dev/invoicery/internal/core"
	"github.com/carterperez-dev/invoicery/internal/document"
	"github.com/carterperez-dev/invoicery/internal/health"
	"github.com/carterperez-dev/invoicery/internal/invoice"
	"github.com/carterperez-dev/invoicery/internal/mail"
	"github.com/carterperez-dev/invoicery/internal/middleware"
	"github.com/carterperez-dev/invoicery/internal/otp"
	"github.com/carterperez-dev/invoicery/internal/pdf"
	"github.com/carterperez-dev/invoicery/internal/profile"
	"github.com/carterperez-dev/invoicery/internal/server"
	"github.com/carterperez-dev/invoicery/internal/storage"
	"github.com/carterperez-dev/invoicery/internal/template"
	"github.com/carterperez-dev/invoicery/internal/user"
)

const (
	drainDelay = 5 * time.Second
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	flag.Parse()

	if err := run(*configPath); err != nil {
		slog.Error("application error", "error", err)
		os.Exit(1)
	}
}

//nolint:funlen // bootstrap code is inherently verbose
func run(configPath string) error {
	ctx, stop := signal.NotifyContext(
		context.Background(),
		syscall.SIGINT,
		syscall.SIGTERM,
	)
	defer stop()

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	logger := setupLogger(cfg.Log)
	slog.SetDefault(logger)

	logger.Info("starting application",
		"name", cfg.App.Name,
		"version", cfg.App.Version,
		"environment", cfg.App.Environment,
	)

	var telemetry *core.Telemetry
	if cfg.Otel.Enabled {
		tel, telErr := core.NewTelemetry(ctx, cfg.Otel, cfg.App)
		if telErr != nil {
			logger.Warn("failed to initialize telemetry", "error", telErr)
		} else {
			telemetry = tel
			logger.Info("OpenTelemetry tracer initialized",
				"endpoint", cfg.Otel.Endpoint,
			)
		}
	}

	db, err := core.NewDatabase(ctx, cfg.Database)
	if err != nil {
		return err
	}
	logger.Info("database connected",
		"max_open_conns", cfg.Database.MaxOpenConns,
		"max_idle_conns", cfg.Database.MaxIdleConns,
	)

	redis, err := core.NewRedis(ctx, cfg.Redis)
	if err != nil {
		return err
	}
	logger.Info("redis connected",
		"pool_size", cfg.Redis.PoolSize,
	)

	jwtManager, err := auth.NewJWTManager(cfg.JWT)
	if err != nil {
		return err
	}
	logger.Info("JWT manager initialized",
		"algorithm", "ES256",
		"key_id", jwtManager.GetKeyID(),
	)

	sessionManager := auth.NewSessionManager(cfg.Session)

	mailer := mail.NewMailer(cfg.SMTP, cfg.App.Name)

	codes := otp.NewService(
		otp.NewRedisStore(redis.Client),
		cfg.OTP.Length,
		cfg.OTP.TTL,
	)

	uploader, err := storage.NewS3Uploader(cfg.Storage)
	if err != nil {
		return err
	}
	logger.Info("object storage ready", "bucket", cfg.Storage.Bucket)

	renderer := pdf.NewRenderer(cfg.PDF)

	userRepo := user.NewRepository(db.DB)
	userSvc := user.NewService(userRepo)
	userHandler := user.NewHandler(userSvc)

	authRepo := auth.NewRepository(db.DB)
	authSvc := auth.NewService(
		authRepo,
		jwtManager,
		userSvc,
		codes,
		mailer,
		auth.NewRedisBlacklist(redis.Client),
	)
	authHandler := auth.NewHandler(authSvc, sessionManager)

	templateRepo := template.NewRepository(db.DB)
	templateSvc := template.NewService(templateRepo)
	templateHandler := template.NewHandler(templateSvc)

	documentRepo := document.NewRepository(db.DB)
	documentSvc := document.NewService(documentRepo)
	documentHandler := document.NewHandler(documentSvc, templateSvc, renderer)

	invoiceRepo := invoice.NewRepository(db.DB)
	invoiceSvc := invoice.NewService(invoiceRepo)
	invoiceHandler := invoice.NewHandler(invoiceSvc, templateSvc, renderer)

	profileRepo := profile.NewRepository(db.DB)
	profileSvc := profile.NewService(profileRepo, uploader)
	profileHandler := profile.NewHandler(profileSvc, cfg.Storage)

	healthHandler := health.NewHandler(db, redis)

	adminHandler := admin.NewHandler(admin.HandlerConfig{
		DBStats:    db.Stats,
		RedisStats: redis.PoolStats,
		DBPing:     db.Ping,
		RedisPing:  redis.Ping,
		Usage:      admin.NewRepository(db.DB),
	})

	srv := server.New(server.Config{
		ServerConfig:  cfg.Server,
		HealthHandler: healthHandler,
		Logger:        logger,
	})

	router := srv.Router()

	router.Use(middleware.RequestID)
	router.Use(middleware.Logger(logger))
	router.Use(
		middleware.NewRateLimiter(redis.Client, middleware.RateLimitConfig{
			Limit: middleware.PerMinute(
				cfg.RateLimit.Requests,
				cfg.RateLimit.Burst,
			),
			FailOpen: true,
		}).Handler,
	)
	router.Use(middleware.SecurityHeaders(cfg.App.Environment == "production"))
	router.Use(middleware.CORS(cfg.CORS))

	healthHandler.RegisterRoutes(router)

	router.Get("/.well-known/jwks.json", jwtManager.GetJWKSHandler())

	authenticator := middleware.Authenticator(authSvc, sessionManager)
	adminOnly := middleware.RequireAdmin

	router.Route("/v1", func(r chi.Router) {
		authHandler.RegisterRoutes(r, authenticator)

		userHandler.RegisterRoutes(r, authenticator)
		userHandler.RegisterAdminRoutes(r, authenticator, adminOnly)

		documentHandler.RegisterRoutes(r, authenticator)
		invoiceHandler.RegisterRoutes(r, authenticator)
		templateHandler.RegisterRoutes(r, authenticator, adminOnly)
		profileHandler.RegisterRoutes(r, authenticator)

		adminHandler.RegisterRoutes(r, authenticator, adminOnly)
	})

	errChan := make(chan error, 1)
	go func() {
		errChan <- srv.Start()
	}()

	select {
	case err := <-errChan:
		return err
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		cfg.Server.ShutdownTimeout+drainDelay+5*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx, drainDelay); err != nil {
		logger.Error("server shutdown error", "error", err)
	}

	if telemetry != nil {
		if err := telemetry.Shutdown(shutdownCtx); err != nil {
			logger.Error("telemetry shutdown error", "error", err)
		}
	}

	if err := redis.Close(); err != nil {
		logger.Error("redis close error", "error", err)
	}

	if err := db.Close(); err != nil {
		logger.Error("database close error", "error", err)
	}

	logger.Info("application stopped")
	return nil
}

func setupLogger(cfg config.LogConfig) *slog.Logger {
	var handler slog.Handler

	level := slog.LevelInfo
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}

	opts := &slog.HandlerOptions{Level: level}

	if cfg.Format == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}

	return slog.New(handler)
}
