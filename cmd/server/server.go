package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
	gormlogger "gorm.io/gorm/logger"

	"salesdesk/admin-api/internal/config"
	"salesdesk/admin-api/internal/domain/catalog"
	"salesdesk/admin-api/internal/domain/session"
	"salesdesk/admin-api/internal/infrastructure/crontab"
	"salesdesk/admin-api/internal/infrastructure/database"
	"salesdesk/admin-api/internal/infrastructure/imagehost"
	"salesdesk/admin-api/internal/infrastructure/llmgateway"
	"salesdesk/admin-api/internal/infrastructure/logger"
	"salesdesk/admin-api/internal/infrastructure/observability"
	"salesdesk/admin-api/internal/infrastructure/repository/catalogrepo"
	"salesdesk/admin-api/internal/infrastructure/repository/chatrepo"
	"salesdesk/admin-api/internal/infrastructure/whatsapp"
	"salesdesk/admin-api/internal/infrastructure/workflow"
	"salesdesk/admin-api/internal/interfaces/httpserver"
	"salesdesk/admin-api/internal/interfaces/httpserver/handlers"
)

func main() {
	loadEnvFiles()

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	log, err := logger.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		panic(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTelemetry, err := observability.Setup(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("initialize observability")
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		if err := shutdownTelemetry(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("shutdown telemetry")
		}
	}()

	db, err := database.Connect(database.Config{
		DSN:             cfg.DatabaseURL,
		MaxIdleConns:    cfg.DBMaxIdleConns,
		MaxOpenConns:    cfg.DBMaxOpenConns,
		ConnMaxLifetime: cfg.DBConnLifetime,
		LogLevel:        gormlogger.Warn,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("connect database")
	}

	if cfg.AutoMigrate {
		if err := database.AutoMigrate(ctx, db, log); err != nil {
			log.Fatal().Err(err).Msg("migrate database")
		}
	}

	catalogRepository := catalogrepo.NewRepository(db)
	catalogService := catalog.NewService(catalogRepository, cfg.LowStockThreshold, log)
	chatRepository := chatrepo.NewRepository(db)

	sessions := session.NewManager(cfg.SessionSecret, cfg.SessionTTL, cfg.AdminUser, cfg.AdminPassword)

	provider := handlers.NewProvider(cfg, handlers.Dependencies{
		Sessions:  sessions,
		Workflow:  workflow.NewClient(cfg.WorkflowWebhookURL, cfg.WorkflowToken, cfg.WorkflowTimeout),
		ImageHost: imagehost.NewClient(cfg.ImageHostBaseURL, cfg.ImageCloudName, cfg.ImageAPIKey, cfg.ImageAPISecret, cfg.ImageFolder),
		Catalog:   catalogService,
		ChatStore: chatRepository,
		Messenger: whatsapp.NewClient(cfg.WhatsAppBaseURL, cfg.WhatsAppBearerToken, cfg.WhatsAppQueryToken, cfg.ContactCacheTTL),
		Gateway:   llmgateway.NewClient(cfg.AgentGatewayURL, cfg.AgentGatewayKey, cfg.AgentTimeout),
	}, log)

	httpServer := httpserver.New(cfg, log, provider, sessions)
	cron := crontab.NewCrontab(catalogService, cfg)

	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		return httpServer.Run(groupCtx)
	})
	group.Go(func() error {
		return runMetricsServer(groupCtx, cfg, log)
	})
	group.Go(func() error {
		return cron.Run(groupCtx)
	})

	if err := group.Wait(); err != nil {
		log.Fatal().Err(err).Msg("application stopped with error")
	}

	log.Info().Msg("application exited cleanly")
}

func runMetricsServer(ctx context.Context, cfg *config.Config, log zerolog.Logger) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	server := &http.Server{
		Addr:    cfg.MetricsAddr(),
		Handler: mux,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", cfg.MetricsAddr()).Msg("metrics listener started")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
			return
		}
		errCh <- nil
	}()

	select {
	case <-ctx.Done():
	case err := <-errCh:
		return err
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

func loadEnvFiles() {
	paths := []string{".env", "../.env"}
	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			if err := godotenv.Overload(path); err != nil {
				fmt.Fprintf(os.Stderr, "warning: failed to load %s: %v\n", path, err)
			}
		}
	}
}
