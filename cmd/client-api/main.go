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
	infratoken "mailhub/internal/infrastructure/token"
	"mailhub/internal/metrics"
	"mailhub/internal/server"
	"mailhub/internal/usecase"
	appmiddleware "mailhub/middleware"
	"mailhub/utils/logger"
	"mailhub/utils/otel"

	"github.com/joho/godotenv"
)

const defaultPort = "8004"

func main() {
	// Handle healthcheck subcommand (for Docker healthcheck in distroless image)
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

	otelCfg := otel.ConfigFromEnv("client-api")
	otelShutdown, err := otel.InitProvider(ctx, otelCfg)
	if err != nil {
		slog.Warn("failed to initialize OpenTelemetry, continuing without tracing", "error", err)
		otelCfg.Enabled = false
		otelShutdown = func(context.Context) error { return nil }
	}

	logger.Init("client-api", otelCfg.Enabled)

	cfg, err := config.Load(defaultPort)
	if err != nil {
		slog.ErrorContext(ctx, "failed to load configuration", "error", err)
		os.Exit(1)
	}

	slog.InfoContext(ctx, "configuration loaded",
		"identity_url", cfg.IdentityURL,
		"port", cfg.Port,
		"upstream_timeout", cfg.UpstreamTimeout)

	// Infrastructure
	collector := metrics.NewCollector("client-api")
	identityGateway := gateway.NewIdentityGateway(cfg.IdentityURL, cfg.UpstreamTimeout, collector)
	jwtIssuer := infratoken.NewJWTIssuer(infratoken.JWTConfig{
		Secret:   cfg.BackendTokenSecret,
		Issuer:   cfg.BackendTokenIssuer,
		Audience: cfg.BackendTokenAudience,
		TTL:      cfg.BackendTokenTTL,
	})

	// Usecases
	sessionsUC := usecase.NewResolveSession(identityGateway, slog.Default())
	systemTokenUC := usecase.NewIssueSystemToken(jwtIssuer, cfg.SystemUser, slog.Default())

	// Handlers
	sessionHandler := adapterhandler.NewSessionHandler(sessionsUC, jwtIssuer)
	validateHandler := adapterhandler.NewValidateHandler(sessionsUC)
	internalHandler := adapterhandler.NewInternalHandler(systemTokenUC)
	healthHandler := adapterhandler.NewHealthHandler()

	e := server.New("client-api", otelCfg.Enabled)

	// Rate limiters per endpoint group, requests per minute
	sessionRL := appmiddleware.NewRateLimiter(30, 5)
	validateRL := appmiddleware.NewRateLimiter(100, 10)
	internalRL := appmiddleware.NewRateLimiter(10, 3)

	// Public routes
	e.GET("/api/session", sessionHandler.Handle, sessionRL.Middleware())
	e.GET("/validate", validateHandler.Handle, validateRL.Middleware())
	e.GET("/health", healthHandler.Handle)
	e.GET("/metrics", collector.Handler())

	// Internal routes (protected by shared secret)
	internalGroup := e.Group("/internal", internalRL.Middleware())
	if cfg.InternalSecret != "" {
		internalGroup.Use(appmiddleware.InternalAuth(cfg.InternalSecret))
	}
	internalGroup.GET("/system-token", internalHandler.HandleSystemToken)

	if err := server.Run(ctx, e, cfg.Port, otelShutdown); err != nil {
		slog.Error("shutdown error", "error", err)
		os.Exit(1)
	}

	slog.Info("server exited properly")
}
