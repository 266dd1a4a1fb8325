package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	"recipe_fetcher/internal/config"
	"recipe_fetcher/internal/scheduler"
	"recipe_fetcher/internal/service"
	"recipe_fetcher/internal/source/spoonacular"
	"recipe_fetcher/internal/storage/postgres"
)

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

	// Initialize stores
	recipeStore := postgres.NewRecipeStore(db)
	ingredientStore := postgres.NewIngredientStore(db)
	stepStore := postgres.NewStepStore(db)
	nutrientStore := postgres.NewNutrientStore(db)
	userStore := postgres.NewUserStore(db)
	trendingStore := postgres.NewTrendingStore(db)
	txManager := postgres.NewTransactionManager(db)

	// Initialize Spoonacular feed
	feed := spoonacular.New(spoonacular.Config{
		BaseURL:        cfg.Spoonacular.BaseURL,
		APIKey:         cfg.Spoonacular.APIKey,
		Timeout:        cfg.Spoonacular.Timeout,
		MaxAttempts:    cfg.Spoonacular.Retry.MaxAttempts,
		InitialBackoff: cfg.Spoonacular.Retry.InitialBackoff,
		MaxBackoff:     cfg.Spoonacular.Retry.MaxBackoff,
	}, logger)

	// Create trending sync service
	trendingService := service.NewTrendingService(
		feed,
		trendingStore,
		recipeStore,
		ingredientStore,
		stepStore,
		nutrientStore,
		userStore,
		txManager,
		logger,
		cfg.Trending,
	)

	sched := scheduler.NewScheduler(trendingService, cfg.Trending, logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		sig := <-sigCh
		logger.Info("received shutdown signal", "signal", sig)
		cancel()
	}()

	logger.Info("starting trending syncer",
		"source", feed.Name(),
		"weekday", cfg.Trending.Weekday.String(),
		"hour", cfg.Trending.Hour,
		"count", cfg.Trending.Count,
	)

	if err := sched.Start(ctx); err != nil && err != context.Canceled {
		logger.Error("scheduler error", "error", err)
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
