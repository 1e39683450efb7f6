package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"mailhub/config"
	"mailhub/internal/adapter/gateway"
	adapterhandler "mailhub/internal/adapter/handler"
	"mailhub/internal/metrics"
	"mailhub/internal/server"
	"mailhub/internal/usecase"
	appmiddleware "mailhub/middleware"
	"mailhub/utils/logger"
	"mailhub/utils/otel"

	"github.com/joho/godotenv"
)

const defaultPort = "8005"

func main() {
	if len(os.Args) > 1 && os.Args[1] == "healthcheck" {
		if err := server.Healthcheck(defaultPort); err != nil {
			fmt.Fprintf(os.Stderr, "Healthcheck failed: %v\n", err)
			os.Exit(1)
		}
		os.Exit(0)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		slog.Warn("could not load .env file", "error", err)
	}

	otelCfg := otel.ConfigFromEnv("imap-gateway")
	otelShutdown, err := otel.InitProvider(ctx, otelCfg)
	if err != nil {
		slog.Warn("failed to initialize OpenTelemetry, continuing without tracing", "error", err)
		otelCfg.Enabled = false
		otelShutdown = func(context.Context) error { return nil }
	}

	logger.Init("imap-gateway", otelCfg.Enabled)

	cfg, err := config.Load(defaultPort)
	if err != nil {
		slog.ErrorContext(ctx, "failed to load configuration", "error", err)
		os.Exit(1)
	}

	slog.InfoContext(ctx, "configuration loaded",
		"identity_url", cfg.IdentityURL,
		"storage_url", cfg.StorageURL,
		"port", cfg.Port)

	// Infrastructure
	collector := metrics.NewCollector("imap-gateway")
	identityGateway := gateway.NewIdentityGateway(cfg.IdentityURL, cfg.UpstreamTimeout, collector)
	storageGateway := gateway.NewStorageGateway(cfg.StorageURL, cfg.UpstreamTimeout, collector)

	// Usecases
	sessionsUC := usecase.NewResolveSession(identityGateway, slog.Default())
	fetchEmailsUC := usecase.NewFetchEmails(sessionsUC, storageGateway, slog.Default())

	// Handlers
	emailsHandler := adapterhandler.NewEmailsHandler(fetchEmailsUC)
	healthHandler := adapterhandler.NewHealthHandler()

	e := server.New("imap-gateway", otelCfg.Enabled)

	emailsRL := appmiddleware.NewRateLimiter(100, 10) // requests per minute

	e.GET("/emails", emailsHandler.Handle, emailsRL.Middleware())
	e.GET("/health", healthHandler.Handle)
	e.GET("/metrics", collector.Handler())

	if err := server.Run(ctx, e, cfg.Port, otelShutdown); err != nil {
		slog.Error("shutdown error", "error", err)
		os.Exit(1)
	}

	slog.Info("server exited properly")
}
