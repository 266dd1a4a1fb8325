package service

//go:generate mockgen -source=interfaces.go -destination=mocks/mocks.go -package=mocks

import (
	"context"
	"time"

	"recipe_fetcher/internal/domain"
	"recipe_fetcher/internal/extraction"
)

type RecipeStore interface {
	Create(ctx context.Context, recipe *domain.Recipe) (int64, error)
	Get(ctx context.Context, id int64) (*domain.Recipe, error)
	Update(ctx context.Context, recipe *domain.Recipe) error
	// Delete removes a recipe and its children. Refuses trending rows with
	// domain.ErrTrendingImmutable.
	Delete(ctx context.Context, id int64) error
}

type IngredientStore interface {
	ReplaceForRecipe(ctx context.Context, recipeID int64, ingredients []domain.Ingredient) error
}

type StepStore interface {
	ReplaceForRecipe(ctx context.Context, recipeID int64, steps []domain.Step) error
}

type NutrientStore interface {
	ReplaceForRecipe(ctx context.Context, recipeID int64, nutrients []domain.Nutrient) error
}

type UserStore interface {
	// GetOrCreateByUsername resolves a user id, creating an inactive
	// account when the username is unknown.
	GetOrCreateByUsername(ctx context.Context, username string) (int64, error)
}

type TrendingStore interface {
	WeekExists(ctx context.Context, week string) (bool, error)
	// GetByExternalID returns domain.ErrNotFound when no entry links the
	// external id yet.
	GetByExternalID(ctx context.Context, externalID int64) (*domain.TrendingRecipe, error)
	Create(ctx context.Context, entry *domain.TrendingRecipe) error
	Update(ctx context.Context, entry *domain.TrendingRecipe) error
}

type TaskQueue interface {
	Publish(ctx context.Context, task domain.ExtractionTask) error
	// PublishRetry schedules a redelivery of task after delay.
	PublishRetry(ctx context.Context, task domain.ExtractionTask, delay time.Duration) error
}

type Orchestrator interface {
	Run(ctx context.Context, src domain.Source) (*extraction.Outcome, error)
	Direct(ctx context.Context, src domain.Source) *extraction.Outcome
}

type TrendingFeed interface {
	RandomRecipes(ctx context.Context, count int) ([]domain.TrendingCandidate, error)
	PopularRecipes(ctx context.Context, count int) ([]domain.TrendingCandidate, error)
	// InstructionsFor fetches the analyzed instruction sets for one recipe,
	// in the same shape the feed embeds them in full payloads.
	InstructionsFor(ctx context.Context, externalID int64) ([]any, error)
}

type TransactionManager interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
