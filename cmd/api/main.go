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

	"github.com/angelamos/agencyhub/internal/account"
	"github.com/angelamos/agencyhub/internal/admin"
	"github.com/angelamos/agencyhub/internal/agency"
	"github.com/angelamos/agencyhub/internal/auth"
	"github.com/angelamos/agencyhub/internal/authz"
	"github.com/angelamos/agencyhub/internal/billing"
	"github.com/angelamos/agencyhub/internal/config"
	"github.com/angelamos/agencyhub/internal/contact"
	"github.com/angelamos/agencyhub/internal/core"
	"github.com/angelamos/agencyhub/internal/funnel"
	"github.com/angelamos/agencyhub/internal/health"
	"github.com/angelamos/agencyhub/internal/media"
	"github.com/angelamos/agencyhub/internal/middleware"
	"github.com/angelamos/agencyhub/internal/notification"
	"github.com/angelamos/agencyhub/internal/pipeline"
	"github.com/angelamos/agencyhub/internal/server"
	"github.com/angelamos/agencyhub/internal/team"
	"github.com/angelamos/agencyhub/internal/user"
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

	userRepo := user.NewRepository(db.DB)
	userSvc := user.NewService(userRepo)

	authRepo := auth.NewRepository(db.DB)
	authSvc := auth.NewService(authRepo, jwtManager, userSvc, redis.Client)
	authHandler := auth.NewHandler(authSvc)

	notificationRepo := notification.NewRepository(db.DB)
	notificationSvc := notification.NewService(
		notificationRepo, &userNamer{users: userSvc}, logger,
	)

	teamRepo := team.NewRepository(db.DB)

	agencyRepo := agency.NewRepository(db.DB)
	agencySvc := agency.NewService(agencyRepo, userSvc, notificationSvc)

	accountRepo := account.NewRepository(db.DB)
	accountSvc := account.NewService(
		accountRepo, &ownerFinder{users: userSvc}, notificationSvc,
	)
	accounts := &accountSource{accounts: accountSvc}

	mailer := team.NewResendMailer(
		mailAPIKey(cfg.Mail), cfg.Mail.FromAddress,
	)
	teamSvc := team.NewService(
		teamRepo,
		&userDirectory{users: userSvc},
		&agencyNamer{agencies: agencySvc},
		accounts,
		notificationSvc,
		mailer,
		cfg.App.BaseURL,
		logger,
	)

	access := authz.NewResolver(teamSvc)

	pipelineRepo := pipeline.NewRepository(db.DB)
	pipelineSvc := pipeline.NewService(pipelineRepo, notificationSvc)

	funnelRepo := funnel.NewRepository(db.DB)
	funnelSvc := funnel.NewService(funnelRepo, logger)

	mediaRepo := media.NewRepository(db.DB)
	mediaSvc := media.NewService(mediaRepo, notificationSvc)

	contactRepo := contact.NewRepository(db.DB)
	contactSvc := contact.NewService(contactRepo, notificationSvc)

	billingRepo := billing.NewRepository(db.DB)
	billingSvc := billing.NewService(
		billingRepo,
		&agencyLinker{agencies: agencySvc},
		cfg.Stripe.PlanPriceIDs,
		logger,
	)

	userHandler := user.NewHandler(userSvc, access)
	agencyHandler := agency.NewHandler(agencySvc, access)
	accountHandler := account.NewHandler(accountSvc, access)
	teamHandler := team.NewHandler(teamSvc, access)
	pipelineHandler := pipeline.NewHandler(pipelineSvc, access, accounts)
	funnelHandler := funnel.NewHandler(funnelSvc, access, accounts)
	mediaHandler := media.NewHandler(mediaSvc, access, accounts)
	contactHandler := contact.NewHandler(contactSvc, access, accounts)
	notificationHandler := notification.NewHandler(
		notificationSvc, access, accounts,
	)
	billingHandler := billing.NewHandler(
		billingSvc, access, cfg.Stripe.WebhookSecret, logger,
	)

	healthHandler := health.NewHandler(db, redis)

	adminHandler := admin.NewHandler(admin.HandlerConfig{
		Counts:     admin.NewRepository(db.DB),
		DBStats:    db.Stats,
		RedisStats: redis.PoolStats,
		DBPing:     db.Ping,
		RedisPing:  redis.Ping,
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

	authenticator := middleware.Authenticator(jwtManager)

	router.Route("/v1", func(r chi.Router) {
		authHandler.RegisterRoutes(r, authenticator)

		userHandler.RegisterRoutes(r, authenticator)
		agencyHandler.RegisterRoutes(r, authenticator)
		accountHandler.RegisterRoutes(r, authenticator)
		teamHandler.RegisterRoutes(r, authenticator)
		pipelineHandler.RegisterRoutes(r, authenticator)
		funnelHandler.RegisterRoutes(r, authenticator)
		mediaHandler.RegisterRoutes(r, authenticator)
		contactHandler.RegisterRoutes(r, authenticator)
		notificationHandler.RegisterRoutes(r, authenticator)
		billingHandler.RegisterRoutes(r, authenticator)

		adminHandler.RegisterRoutes(
			r, authenticator, middleware.RequireAgencyRole,
		)
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

func mailAPIKey(cfg config.MailConfig) string {
	if !cfg.Enabled {
		return ""
	}
	return cfg.ResendAPIKey
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
