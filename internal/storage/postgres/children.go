package postgres

import (
	"context"
	"strings"

	"github.com/jmoiron/sqlx"

	"recipe_fetcher/internal/domain"
)

// The ingredient, step and nutrient stores all follow the same replace
// pattern: delete the recipe's current rows, then bulk-insert the new set in
// one statement. Callers wrap the replace together with the parent write in a
// transaction, so readers never observe a recipe with half its children.

type IngredientStore struct {
	db *sqlx.DB
}

func NewIngredientStore(db *sqlx.DB) *IngredientStore {
	return &IngredientStore{db: db}
}

func (s *IngredientStore) ReplaceForRecipe(ctx context.Context, recipeID int64, ingredients []domain.Ingredient) error {
	exec := GetExecutor(ctx, s.db)

	_, err := exec.ExecContext(ctx, "DELETE FROM ingredients WHERE recipe_id = $1", recipeID)
	if err != nil {
		return err
	}

	if len(ingredients) == 0 {
		return nil
	}

	var sb strings.Builder
	sb.WriteString("INSERT INTO ingredients (recipe_id, name, quantity, unit, original_text) VALUES ")
	valueArgs := make([]interface{}, 0, len(ingredients)*4+1)
	valueArgs = append(valueArgs, recipeID)

	for i, ing := range ingredients {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString("($1, $")
		sb.WriteString(itoa(i*4 + 2))
		sb.WriteString(", $")
		sb.WriteString(itoa(i*4 + 3))
		sb.WriteString(", $")
		sb.WriteString(itoa(i*4 + 4))
		sb.WriteString(", $")
		sb.WriteString(itoa(i*4 + 5))
		sb.WriteString(")")
		valueArgs = append(valueArgs, ing.Name, ing.Quantity, ing.Unit, ing.Original)
	}

	_, err = exec.ExecContext(ctx, sb.String(), valueArgs...)
	return err
}

func (s *IngredientStore) ListForRecipe(ctx context.Context, recipeID int64) ([]domain.Ingredient, error) {
	query := `
		SELECT id, recipe_id, name, quantity, unit, original_text
		FROM ingredients
		WHERE recipe_id = $1
		ORDER BY id`

	var ingredients []domain.Ingredient
	if err := sqlx.SelectContext(ctx, GetExecutor(ctx, s.db), &ingredients, query, recipeID); err != nil {
		return nil, err
	}
	return ingredients, nil
}

type StepStore struct {
	db *sqlx.DB
}

func NewStepStore(db *sqlx.DB) *StepStore {
	return &StepStore{db: db}
}

func (s *StepStore) ReplaceForRecipe(ctx context.Context, recipeID int64, steps []domain.Step) error {
	exec := GetExecutor(ctx, s.db)

	_, err := exec.ExecContext(ctx, "DELETE FROM steps WHERE recipe_id = $1", recipeID)
	if err != nil {
		return err
	}

	if len(steps) == 0 {
		return nil
	}

	var sb strings.Builder
	sb.WriteString(`INSERT INTO steps (recipe_id, description, "order") VALUES `)
	valueArgs := make([]interface{}, 0, len(steps)*2+1)
	valueArgs = append(valueArgs, recipeID)

	for i, step := range steps {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString("($1, $")
		sb.WriteString(itoa(i*2 + 2))
		sb.WriteString(", $")
		sb.WriteString(itoa(i*2 + 3))
		sb.WriteString(")")
		valueArgs = append(valueArgs, step.Description, step.Order)
	}

	_, err = exec.ExecContext(ctx, sb.String(), valueArgs...)
	return err
}

func (s *StepStore) ListForRecipe(ctx context.Context, recipeID int64) ([]domain.Step, error) {
	query := `
		SELECT id, recipe_id, description, "order"
		FROM steps
		WHERE recipe_id = $1
		ORDER BY "order"`

	var steps []domain.Step
	if err := sqlx.SelectContext(ctx, GetExecutor(ctx, s.db), &steps, query, recipeID); err != nil {
		return nil, err
	}
	return steps, nil
}

type NutrientStore struct {
	db *sqlx.DB
}

func NewNutrientStore(db *sqlx.DB) *NutrientStore {
	return &NutrientStore{db: db}
}

func (s *NutrientStore) ReplaceForRecipe(ctx context.Context, recipeID int64, nutrients []domain.Nutrient) error {
	exec := GetExecutor(ctx, s.db)

	_, err := exec.ExecContext(ctx, "DELETE FROM nutrients WHERE recipe_id = $1", recipeID)
	if err != nil {
		return err
	}

	if len(nutrients) == 0 {
		return nil
	}

	var sb strings.Builder
	sb.WriteString("INSERT INTO nutrients (recipe_id, macro, mass) VALUES ")
	valueArgs := make([]interface{}, 0, len(nutrients)*2+1)
	valueArgs = append(valueArgs, recipeID)

	for i, n := range nutrients {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString("($1, $")
		sb.WriteString(itoa(i*2 + 2))
		sb.WriteString(", $")
		sb.WriteString(itoa(i*2 + 3))
		sb.WriteString(")")
		valueArgs = append(valueArgs, n.Macro, n.Mass)
	}

	_, err = exec.ExecContext(ctx, sb.String(), valueArgs...)
	return err
}

func (s *NutrientStore) ListForRecipe(ctx context.Context, recipeID int64) ([]domain.Nutrient, error) {
	query := `
		SELECT id, recipe_id, macro, mass
		FROM nutrients
		WHERE recipe_id = $1
		ORDER BY id`

	var nutrients []domain.Nutrient
	if err := sqlx.SelectContext(ctx, GetExecutor(ctx, s.db), &nutrients, query, recipeID); err != nil {
		return nil, err
	}
	return nutrients, nil
}

func itoa(i int) string {
	if i < 10 {
		return string(rune('0' + i))
	}
	return itoa(i/10) + string(rune('0'+i%10))
}
