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
	"recipe_fetcher/internal/normalizer"
)

// TrendingService runs the weekly trending feed sync. The ISO week string is
// the idempotency key: a week that already has entries is never written
// twice, so manual triggers and scheduler retries are safe.
type TrendingService struct {
	feed      TrendingFeed
	trending  TrendingStore
	recipes   RecipeStore
	users     UserStore
	writer    *recipeWriter
	txManager TransactionManager
	logger    *slog.Logger
	config    config.TrendingConfig
}

func NewTrendingService(
	feed TrendingFeed,
	trending TrendingStore,
	recipes RecipeStore,
	ingredients IngredientStore,
	steps StepStore,
	nutrients NutrientStore,
	users UserStore,
	txManager TransactionManager,
	logger *slog.Logger,
	cfg config.TrendingConfig,
) *TrendingService {
	return &TrendingService{
		feed:     feed,
		trending: trending,
		recipes:  recipes,
		users:    users,
		writer: &recipeWriter{
			recipes:     recipes,
			ingredients: ingredients,
			steps:       steps,
			nutrients:   nutrients,
			txManager:   txManager,
		},
		txManager: txManager,
		logger:    logger.With("service", "trending"),
		config:    cfg,
	}
}

func (s *TrendingService) Sync(ctx context.Context) (*domain.SyncStats, error) {
	startTime := time.Now()
	week, weekStart := domain.WeekOf(startTime)

	logger := s.logger.With("week", week)
	logger.Info("starting trending sync", "count", s.config.Count)

	exists, err := s.trending.WeekExists(ctx, week)
	if err != nil {
		return nil, fmt.Errorf("check week: %w", err)
	}
	if exists {
		logger.Info("week already synced, skipping")
		return &domain.SyncStats{Week: week, Skipped: true}, nil
	}

	candidates, err := s.fetchCandidates(ctx, logger)
	if err != nil {
		return nil, err
	}

	ownerID, err := s.users.GetOrCreateByUsername(ctx, s.config.OwnerUsername)
	if err != nil {
		return nil, fmt.Errorf("resolve system owner: %w", err)
	}

	stats := &domain.SyncStats{Week: week, Fetched: len(candidates)}

	for i, candidate := range candidates {
		position := i + 1

		created, err := s.syncCandidate(ctx, candidate, ownerID, week, weekStart, position)
		if err != nil {
			logger.Error("candidate failed",
				"external_id", candidate.ExternalID,
				"position", position,
				"error", err,
			)
			stats.Failed++
			continue
		}

		if created {
			stats.Created++
		} else {
			stats.Updated++
		}
	}

	stats.Duration = time.Since(startTime)

	logger.Info("trending sync completed",
		"fetched", stats.Fetched,
		"created", stats.Created,
		"updated", stats.Updated,
		"failed", stats.Failed,
		"duration", stats.Duration,
	)

	return stats, nil
}

func (s *TrendingService) fetchCandidates(ctx context.Context, logger *slog.Logger) ([]domain.TrendingCandidate, error) {
	candidates, err := s.feed.RandomRecipes(ctx, s.config.Count)
	if err != nil {
		return nil, fmt.Errorf("fetch random recipes: %w", err)
	}

	if len(candidates) == 0 {
		logger.Warn("random feed empty, falling back to popularity search")
		candidates, err = s.feed.PopularRecipes(ctx, s.config.Count)
		if err != nil {
			return nil, fmt.Errorf("fetch popular recipes: %w", err)
		}
	}

	if len(candidates) == 0 {
		return nil, errors.New("trending feed returned no candidates")
	}

	return candidates, nil
}

// syncCandidate writes one candidate inside its own transaction, so a bad
// candidate never leaves a recipe without its trending entry or vice versa.
func (s *TrendingService) syncCandidate(
	ctx context.Context,
	candidate domain.TrendingCandidate,
	ownerID int64,
	week string,
	weekStart time.Time,
	position int,
) (bool, error) {
	payload := candidate.Payload
	if payload == nil {
		return false, errors.New("candidate has no payload")
	}

	// The list endpoints often omit step-by-step instructions; fetch them
	// before the transaction opens.
	if !hasInstructions(payload) {
		instructions, err := s.feed.InstructionsFor(ctx, candidate.ExternalID)
		if err != nil {
			s.logger.Debug("instructions fetch failed",
				"external_id", candidate.ExternalID,
				"error", err,
			)
		} else if len(instructions) > 0 {
			payload["analyzedInstructions"] = instructions
		}
	}

	data := normalizer.Normalize(payload)

	var created bool
	err := s.txManager.WithTransaction(ctx, func(txCtx context.Context) error {
		existing, err := s.trending.GetByExternalID(txCtx, candidate.ExternalID)
		switch {
		case err == nil:
			return s.refreshEntry(txCtx, existing, &data, candidate, ownerID, week, weekStart, position)
		case errors.Is(err, domain.ErrNotFound):
			created = true
			return s.createEntry(txCtx, &data, candidate, ownerID, week, weekStart, position)
		default:
			return fmt.Errorf("look up trending entry: %w", err)
		}
	})

	return created, err
}

func (s *TrendingService) createEntry(
	ctx context.Context,
	data *domain.RecipeData,
	candidate domain.TrendingCandidate,
	ownerID int64,
	week string,
	weekStart time.Time,
	position int,
) error {
	recipeID, err := s.writer.createTree(ctx, recipeRow(ownerID, data, true), data)
	if err != nil {
		return err
	}

	entry := &domain.TrendingRecipe{
		RecipeID:      recipeID,
		SpoonacularID: candidate.ExternalID,
		Week:          week,
		Position:      position,
		WeekStartDate: weekStart,
		ReadyInMin:    data.ReadyInMin,
		RecipeData:    candidate.Raw,
	}

	if err := s.trending.Create(ctx, entry); err != nil {
		return fmt.Errorf("create trending entry: %w", err)
	}
	return nil
}

// refreshEntry reuses an entry seen in an earlier week: the linked recipe is
// rewritten in place and the entry re-keyed to the current week.
func (s *TrendingService) refreshEntry(
	ctx context.Context,
	entry *domain.TrendingRecipe,
	data *domain.RecipeData,
	candidate domain.TrendingCandidate,
	ownerID int64,
	week string,
	weekStart time.Time,
	position int,
) error {
	recipe, err := s.recipes.Get(ctx, entry.RecipeID)
	switch {
	case errors.Is(err, domain.ErrNotFound):
		// The linked recipe is gone. Re-create it and relink rather than
		// leaving the entry dangling.
		recipeID, err := s.writer.createTree(ctx, recipeRow(ownerID, data, true), data)
		if err != nil {
			return err
		}
		entry.RecipeID = recipeID
	case err != nil:
		return fmt.Errorf("load linked recipe: %w", err)
	default:
		row := recipeRow(recipe.UserID, data, true)
		row.ID = recipe.ID
		row.Favorite = recipe.Favorite
		row.DateAdded = recipe.DateAdded

		if err := s.writer.updateTree(ctx, row, data); err != nil {
			return err
		}
	}

	entry.Week = week
	entry.Position = position
	entry.WeekStartDate = weekStart
	entry.ReadyInMin = data.ReadyInMin
	entry.RecipeData = candidate.Raw

	if err := s.trending.Update(ctx, entry); err != nil {
		return fmt.Errorf("update trending entry: %w", err)
	}
	return nil
}

func hasInstructions(payload map[string]any) bool {
	if list, ok := payload["analyzedInstructions"].([]any); ok && len(list) > 0 {
		return true
	}
	if text, ok := payload["instructions"].(string); ok && strings.TrimSpace(text) != "" {
		return true
	}
	return false
}
