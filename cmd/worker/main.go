package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	"recipe_fetcher/internal/cache"
	"recipe_fetcher/internal/config"
	"recipe_fetcher/internal/extraction"
	"recipe_fetcher/internal/oracle"
	"recipe_fetcher/internal/oracle/openrouter"
	"recipe_fetcher/internal/queue"
	"recipe_fetcher/internal/scraper"
	"recipe_fetcher/internal/service"
	"recipe_fetcher/internal/storage/postgres"
	"recipe_fetcher/internal/worker"
)

const requeueBackoff = 5 * time.Second

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	flag.Parse()

	// Setup logger
	logger := setupLogger("info")

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger = setupLogger(cfg.LogLevel)

	db, err := sqlx.Connect("postgres", cfg.Database.DSN())
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		logger.Error("failed to ping database", "error", err)
		os.Exit(1)
	}
	logger.Info("connected to database")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize RabbitMQ queue
	rabbitMQ, err := queue.NewRabbitMQ(queue.Config{
		URL:        cfg.RabbitMQ.URL,
		Exchange:   cfg.RabbitMQ.Exchange,
		RoutingKey: cfg.RabbitMQ.RoutingKey,
		QueueName:  cfg.RabbitMQ.QueueName,
		Prefetch:   cfg.Worker.Prefetch,
	}, logger)
	if err != nil {
		logger.Error("failed to connect to rabbitmq", "error", err)
		os.Exit(1)
	}
	defer rabbitMQ.Close()

	// Initialize oracle response cache
	responseCache, err := cache.New(ctx, cache.Config{
		Enabled:  cfg.Redis.Enabled,
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
		TTL:      cfg.Redis.TTL,
	}, logger)
	if err != nil {
		logger.Error("failed to connect to redis", "error", err)
		os.Exit(1)
	}
	defer responseCache.Close()

	// Initialize stores
	recipeStore := postgres.NewRecipeStore(db)
	ingredientStore := postgres.NewIngredientStore(db)
	stepStore := postgres.NewStepStore(db)
	nutrientStore := postgres.NewNutrientStore(db)
	txManager := postgres.NewTransactionManager(db)

	// Assemble the extraction pipeline
	client := openrouter.New(openrouter.Config{
		BaseURL:        cfg.OpenRouter.BaseURL,
		APIKey:         cfg.OpenRouter.APIKey,
		Model:          cfg.OpenRouter.Model,
		VisionModel:    cfg.OpenRouter.VisionModel,
		MaxTokens:      cfg.OpenRouter.MaxTokens,
		Timeout:        cfg.OpenRouter.Timeout,
		MaxAttempts:    cfg.OpenRouter.Retry.MaxAttempts,
		InitialBackoff: cfg.OpenRouter.Retry.InitialBackoff,
		MaxBackoff:     cfg.OpenRouter.Retry.MaxBackoff,
	}, logger)

	textOracle := oracle.NewTextOracle(client, responseCache, logger)
	visionOracle := oracle.NewVisionOracle(client, responseCache, logger)

	pageFetcher := scraper.NewPageFetcher(cfg.Scraper, logger)
	schemaOrg := scraper.NewSchemaOrg(pageFetcher, logger)

	orchestrator := extraction.New(schemaOrg, pageFetcher, textOracle, visionOracle, logger)

	creationService := service.NewCreationService(
		recipeStore,
		ingredientStore,
		stepStore,
		nutrientStore,
		rabbitMQ,
		orchestrator,
		txManager,
		logger,
		cfg.Extraction,
	)

	w := worker.New(rabbitMQ, creationService, logger, worker.Config{
		Concurrency:    cfg.Worker.Concurrency,
		TaskTimeout:    cfg.Extraction.TaskTimeout,
		RequeueBackoff: requeueBackoff,
	})

	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		sig := <-sigCh
		logger.Info("received shutdown signal", "signal", sig)
		cancel()
	}()

	logger.Info("starting extraction worker",
		"queue", cfg.RabbitMQ.QueueName,
		"concurrency", cfg.Worker.Concurrency,
		"task_timeout", cfg.Extraction.TaskTimeout,
	)

	if err := w.Run(ctx); err != nil && err != context.Canceled {
		logger.Error("worker error", "error", err)
		os.Exit(1)
	}
}

func setupLogger(level string) *slog.Logger {
	var logLevel slog.Level
	switch level {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: logLevel}
	handler := slog.NewJSONHandler(os.Stdout, opts)
	return slog.New(handler)
}
