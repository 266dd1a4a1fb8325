package service

import (
	"context"
	"fmt"
	"strings"

	"recipe_fetcher/internal/domain"
	"recipe_fetcher/internal/ingredient"
)

// recipeWriter is the shared persistence choreography for a recipe and its
// child rows. Children are fully replaced, never diffed, inside one
// transaction so a reader can never observe a recipe stripped of its
// ingredients mid-write.
type recipeWriter struct {
	recipes     RecipeStore
	ingredients IngredientStore
	steps       StepStore
	nutrients   NutrientStore
	txManager   TransactionManager
}

func (w *recipeWriter) createTree(ctx context.Context, recipe *domain.Recipe, data *domain.RecipeData) (int64, error) {
	var id int64

	err := w.txManager.WithTransaction(ctx, func(txCtx context.Context) error {
		var err error
		id, err = w.recipes.Create(txCtx, recipe)
		if err != nil {
			return fmt.Errorf("create recipe: %w", err)
		}
		return w.replaceChildren(txCtx, id, data)
	})

	return id, err
}

func (w *recipeWriter) updateTree(ctx context.Context, recipe *domain.Recipe, data *domain.RecipeData) error {
	return w.txManager.WithTransaction(ctx, func(txCtx context.Context) error {
		if err := w.recipes.Update(txCtx, recipe); err != nil {
			return fmt.Errorf("update recipe: %w", err)
		}
		return w.replaceChildren(txCtx, recipe.ID, data)
	})
}

func (w *recipeWriter) replaceChildren(ctx context.Context, recipeID int64, data *domain.RecipeData) error {
	if err := w.ingredients.ReplaceForRecipe(ctx, recipeID, data.Ingredients); err != nil {
		return fmt.Errorf("replace ingredients: %w", err)
	}
	if err := w.steps.ReplaceForRecipe(ctx, recipeID, data.Steps); err != nil {
		return fmt.Errorf("replace steps: %w", err)
	}
	if err := w.nutrients.ReplaceForRecipe(ctx, recipeID, data.Nutrients); err != nil {
		return fmt.Errorf("replace nutrients: %w", err)
	}
	return nil
}

// recipeRow builds the parent row for extracted or normalized data.
func recipeRow(userID int64, data *domain.RecipeData, trending bool) *domain.Recipe {
	name := strings.TrimSpace(data.Name)
	if name == "" {
		name = domain.DefaultRecipeName
	}

	recipe := &domain.Recipe{
		UserID:      userID,
		Name:        ingredient.Truncate(name, domain.MaxNameLen),
		Description: data.Description,
		Serves:      data.Serves,
		TimesMade:   data.TimesMade,
		Trending:    trending,
	}

	if data.ImageURL != "" {
		v := data.ImageURL
		recipe.ImageURL = &v
	}
	if data.SourceURL != "" {
		v := data.SourceURL
		recipe.SourceURL = &v
	}

	return recipe
}
