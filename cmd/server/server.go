package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"feasibility-bot/chat-api/internal/config"
	"feasibility-bot/chat-api/internal/domain/chat"
	"feasibility-bot/chat-api/internal/domain/ratelimit"
	"feasibility-bot/chat-api/internal/domain/safety"
	"feasibility-bot/chat-api/internal/infrastructure/logger"
	"feasibility-bot/chat-api/internal/infrastructure/observability"
	"feasibility-bot/chat-api/internal/infrastructure/openaiclient"
	"feasibility-bot/chat-api/internal/interfaces/httpserver"
)

// Application bundles the long-running pieces of the service.
type Application struct {
	httpServer *httpserver.HTTPServer
	log        zerolog.Logger
}

func NewApplication(httpServer *httpserver.HTTPServer, log zerolog.Logger) *Application {
	return &Application{
		httpServer: httpServer,
		log:        log,
	}
}

func (a *Application) Start(ctx context.Context) error {
	return a.httpServer.Run(ctx)
}

func main() {
	loadEnvFiles()

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	log := logger.New(cfg)

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

	assistantClient := openaiclient.NewClient(cfg.OpenAIAPIKey)
	classifier := safety.NewKeywordFilter()
	limiter := ratelimit.NewLimiter(ratelimit.NewMemoryStore(), cfg.RateLimitMaxRequests, cfg.RateLimitWindow)

	chatService := chat.NewService(assistantClient, classifier, chat.Options{
		AssistantID:     cfg.AssistantID,
		AssistantModel:  cfg.AssistantModel,
		AssistantTemp:   cfg.AssistantTemp,
		PollInterval:    cfg.RunPollInterval,
		PollMaxAttempts: cfg.RunPollMaxAttempts,
	}, log)

	httpServer := httpserver.New(cfg, log, chatService, limiter)
	app := NewApplication(httpServer, log)

	if err := app.Start(ctx); err != nil {
		log.Fatal().Err(err).Msg("application stopped with error")
	}

	log.Info().Msg("application exited cleanly")
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
