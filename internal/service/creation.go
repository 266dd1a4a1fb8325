package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"recipe_fetcher/internal/config"
	"recipe_fetcher/internal/domain"
	"recipe_fetcher/internal/extraction"
	"recipe_fetcher/internal/ingredient"
)

// Creation result statuses returned to the caller.
const (
	StatusCompleted  = "completed"
	StatusProcessing = "processing"
)

type CreateResult struct {
	RecipeID int64
	Status   string
}

// CreationService owns the recipe creation paths and the placeholder
// lifecycle. Explicit input persists immediately; URL sources try the cheap
// synchronous scrape before falling back to the queue, and image sources
// always go through it. A placeholder either becomes a complete recipe or is
// deleted, never left stuck in processing.
type CreationService struct {
	recipes RecipeStore
	queue   TaskQueue
	orch    Orchestrator
	writer  *recipeWriter
	logger  *slog.Logger
	config  config.ExtractionConfig
}

func NewCreationService(
	recipes RecipeStore,
	ingredients IngredientStore,
	steps StepStore,
	nutrients NutrientStore,
	queue TaskQueue,
	orch Orchestrator,
	txManager TransactionManager,
	logger *slog.Logger,
	cfg config.ExtractionConfig,
) *CreationService {
	return &CreationService{
		recipes: recipes,
		queue:   queue,
		orch:    orch,
		writer: &recipeWriter{
			recipes:     recipes,
			ingredients: ingredients,
			steps:       steps,
			nutrients:   nutrients,
			txManager:   txManager,
		},
		logger: logger.With("service", "creation"),
		config: cfg,
	}
}

// CreateExplicit persists caller-provided structured fields through the same
// persistence path extraction results take.
func (s *CreationService) CreateExplicit(ctx context.Context, userID int64, data *domain.RecipeData) (*CreateResult, error) {
	sanitizeExplicit(data)

	id, err := s.writer.createTree(ctx, recipeRow(userID, data, false), data)
	if err != nil {
		return nil, fmt.Errorf("create recipe: %w", err)
	}

	s.logger.Info("recipe created from explicit input", "recipe_id", id, "user_id", userID)
	return &CreateResult{RecipeID: id, Status: StatusCompleted}, nil
}

// CreateFromURL tries the synchronous structured scrape and falls back to a
// placeholder plus queued extraction when the page needs an oracle.
func (s *CreationService) CreateFromURL(ctx context.Context, userID int64, pageURL string) (*CreateResult, error) {
	src := domain.Source{Kind: domain.SourceURL, URL: pageURL}

	if out := s.orch.Direct(ctx, src); out.Status == extraction.StatusResolved {
		data := out.Recipe
		id, err := s.writer.createTree(ctx, recipeRow(userID, data, false), data)
		if err != nil {
			return nil, fmt.Errorf("create recipe: %w", err)
		}

		s.logger.Info("recipe created from structured markup", "recipe_id", id, "url", pageURL)
		return &CreateResult{RecipeID: id, Status: StatusCompleted}, nil
	}

	return s.enqueuePlaceholder(ctx, userID, src)
}

// CreateFromImage always answers with a placeholder; vision extraction never
// runs on the request path.
func (s *CreationService) CreateFromImage(ctx context.Context, userID int64, imageB64, mime string) (*CreateResult, error) {
	src := domain.Source{Kind: domain.SourceImage, ImageB64: imageB64, ImageMIME: mime}
	return s.enqueuePlaceholder(ctx, userID, src)
}

func (s *CreationService) enqueuePlaceholder(ctx context.Context, userID int64, src domain.Source) (*CreateResult, error) {
	placeholder := &domain.Recipe{
		UserID:      userID,
		Name:        domain.PlaceholderName,
		Description: domain.PlaceholderDescription,
	}
	if src.Kind == domain.SourceURL {
		v := src.URL
		placeholder.SourceURL = &v
	}

	id, err := s.recipes.Create(ctx, placeholder)
	if err != nil {
		return nil, fmt.Errorf("create placeholder: %w", err)
	}

	task := domain.NewExtractionTask(id, userID, src, s.config.MaxAttempts)
	if err := s.queue.Publish(ctx, task); err != nil {
		// A placeholder without a task would stay processing forever.
		if delErr := s.recipes.Delete(ctx, id); delErr != nil {
			s.logger.Error("orphaned placeholder cleanup failed", "recipe_id", id, "error", delErr)
		}
		return nil, fmt.Errorf("enqueue extraction: %w", err)
	}

	s.logger.Info("placeholder created, extraction enqueued",
		"recipe_id", id,
		"task_id", task.ID,
		"kind", src.Kind,
	)

	return &CreateResult{RecipeID: id, Status: StatusProcessing}, nil
}

// HandleExtraction runs one queued extraction attempt. Transient failures
// re-enqueue the task with a linearly growing delay until attempts run out;
// rejections and exhaustion delete the placeholder. Only store-level
// failures surface to the worker.
func (s *CreationService) HandleExtraction(ctx context.Context, task domain.ExtractionTask) error {
	logger := s.logger.With(
		"task_id", task.ID,
		"recipe_id", task.RecipeID,
		"attempt", task.Attempt,
	)

	placeholder, err := s.recipes.Get(ctx, task.RecipeID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			logger.Warn("placeholder gone, dropping task")
			return nil
		}
		return fmt.Errorf("load placeholder: %w", err)
	}

	out, err := s.orch.Run(ctx, task.Source)
	if err != nil {
		return s.retryOrGiveUp(ctx, task, logger, err)
	}

	switch out.Status {
	case extraction.StatusResolved:
		if err := s.completePlaceholder(ctx, placeholder, out.Recipe); err != nil {
			return err
		}
		logger.Info("placeholder completed", "name", out.Recipe.Name)
		return nil
	case extraction.StatusRejected:
		logger.Info("source rejected, deleting placeholder", "reason", out.Reason)
		return s.deletePlaceholder(ctx, task.RecipeID)
	default:
		return s.retryOrGiveUp(ctx, task, logger, fmt.Errorf("unexpected outcome status %d", out.Status))
	}
}

func (s *CreationService) retryOrGiveUp(ctx context.Context, task domain.ExtractionTask, logger *slog.Logger, cause error) error {
	if task.Attempt >= task.MaxAttempts {
		logger.Error("extraction attempts exhausted, deleting placeholder", "error", cause)
		return s.deletePlaceholder(ctx, task.RecipeID)
	}

	delay := s.config.RetryBaseDelay * time.Duration(task.Attempt)
	next := task
	next.Attempt++

	if err := s.queue.PublishRetry(ctx, next, delay); err != nil {
		logger.Error("retry publish failed, deleting placeholder", "error", err)
		return s.deletePlaceholder(ctx, task.RecipeID)
	}

	logger.Warn("extraction failed, retry scheduled", "delay", delay, "error", cause)
	return nil
}

func (s *CreationService) completePlaceholder(ctx context.Context, placeholder *domain.Recipe, data *domain.RecipeData) error {
	updated := *placeholder

	name := strings.TrimSpace(data.Name)
	if name == "" {
		name = domain.DefaultRecipeName
	}
	updated.Name = ingredient.Truncate(name, domain.MaxNameLen)
	updated.Description = data.Description
	updated.Serves = data.Serves

	if data.ImageURL != "" {
		v := data.ImageURL
		updated.ImageURL = &v
	}
	// The original source URL on the placeholder wins over anything the
	// extraction reports.
	if updated.SourceURL == nil && data.SourceURL != "" {
		v := data.SourceURL
		updated.SourceURL = &v
	}

	if err := s.writer.updateTree(ctx, &updated, data); err != nil {
		return fmt.Errorf("complete placeholder: %w", err)
	}
	return nil
}

func (s *CreationService) deletePlaceholder(ctx context.Context, id int64) error {
	err := s.recipes.Delete(ctx, id)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return fmt.Errorf("delete placeholder: %w", err)
	}
	return nil
}

// sanitizeExplicit applies the same field limits extraction output goes
// through to caller-provided data.
func sanitizeExplicit(data *domain.RecipeData) {
	for i := range data.Ingredients {
		ing := &data.Ingredients[i]
		ing.Name = ingredient.Truncate(strings.TrimSpace(ing.Name), domain.MaxNameLen)
		ing.Unit = ingredient.Truncate(strings.TrimSpace(ing.Unit), domain.MaxUnitLen)
	}
	for i := range data.Steps {
		step := &data.Steps[i]
		step.Description = ingredient.Truncate(step.Description, domain.MaxStepLen)
		if step.Order == 0 {
			step.Order = i + 1
		}
	}
}
