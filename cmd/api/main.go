package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/brightdoor/realty-ai-platform/internal/api/router"
	appconfig "github.com/brightdoor/realty-ai-platform/internal/config"
	"github.com/brightdoor/realty-ai-platform/internal/conversation"
	"github.com/brightdoor/realty-ai-platform/internal/leads"
	"github.com/brightdoor/realty-ai-platform/internal/observability/metrics"
	"github.com/brightdoor/realty-ai-platform/pkg/logging"
)

func main() {
	// Local development convenience; missing .env is fine.
	_ = godotenv.Load()

	cfg := appconfig.Load()

	logger := logging.New(cfg.LogLevel)
	logger.Info("starting realty-ai-platform API server",
		"env", cfg.Env,
		"port", cfg.Port,
	)

	ctx := context.Background()

	// Lead store: Postgres when configured, in-memory otherwise.
	var repo leads.Repository
	if cfg.DatabaseURL != "" {
		pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
		if err != nil {
			logger.Error("failed to connect to postgres", "error", err)
			os.Exit(1)
		}
		defer pool.Close()
		repo = leads.NewPostgresRepository(pool)
		logger.Info("using postgres lead store")
	} else {
		repo = leads.NewInMemoryRepository()
		logger.Warn("DATABASE_URL not set, using in-memory lead store")
	}

	// History cache is optional.
	var redisClient *redis.Client
	if cfg.RedisAddr != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
		})
		if err := redisClient.Ping(ctx).Err(); err != nil {
			logger.Warn("redis unreachable, continuing without history cache", "error", err)
			redisClient = nil
		}
	}
	cache := conversation.NewHistoryCache(redisClient, cfg.HistoryTTL)

	llm := buildLLMClient(ctx, cfg, logger)

	m := metrics.New(prometheus.DefaultRegisterer)
	completion := conversation.NewCompletionClient(llm, cfg.OpenAIModel, m)
	orchestrator := conversation.NewOrchestrator(completion, m, logger)
	service := conversation.NewService(repo, orchestrator, cache, m, logger)
	handler := conversation.NewHandler(service, logger)

	r := router.New(&router.Config{
		Logger:              logger,
		ConversationHandler: handler,
		MetricsHandler:      promhttp.Handler(),
		CORSAllowedOrigins:  cfg.CORSAllowedOrigins,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	logger.Info("server stopped")
}

// buildLLMClient assembles the provider chain: OpenAI first, Gemini as a
// secondary when configured. With no credentials at all the returned
// client always fails, which leaves the template responder answering.
func buildLLMClient(ctx context.Context, cfg *appconfig.Config, logger *logging.Logger) conversation.LLMClient {
	var primary conversation.LLMClient
	if cfg.OpenAIAPIKey != "" {
		client, err := conversation.NewOpenAIClient(cfg.OpenAIAPIKey, cfg.OpenAIBaseURL)
		if err != nil {
			logger.Error("failed to build openai client", "error", err)
			os.Exit(1)
		}
		primary = client
	}

	var secondary conversation.LLMClient
	if cfg.GeminiAPIKey != "" {
		client, err := conversation.NewGeminiClient(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
		if err != nil {
			logger.Error("failed to build gemini client", "error", err)
			os.Exit(1)
		}
		secondary = client
	}

	switch {
	case primary != nil && secondary != nil:
		return conversation.NewFallbackLLMClient(primary, secondary, logger)
	case primary != nil:
		return primary
	case secondary != nil:
		logger.Warn("OPENAI_API_KEY not set, using gemini as the only provider")
		return secondary
	default:
		logger.Warn("no LLM credentials configured, replies will use the template responder")
		return conversation.UnavailableLLMClient{}
	}
}
