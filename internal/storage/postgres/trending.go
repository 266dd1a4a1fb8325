package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"recipe_fetcher/internal/domain"
)

type TrendingStore struct {
	db *sqlx.DB
}

func NewTrendingStore(db *sqlx.DB) *TrendingStore {
	return &TrendingStore{db: db}
}

func (s *TrendingStore) WeekExists(ctx context.Context, week string) (bool, error) {
	var exists bool
	err := GetExecutor(ctx, s.db).QueryRowxContext(ctx,
		"SELECT EXISTS (SELECT 1 FROM trending_recipes WHERE week = $1)",
		week,
	).Scan(&exists)
	if err != nil {
		return false, err
	}
	return exists, nil
}

func (s *TrendingStore) GetByExternalID(ctx context.Context, externalID int64) (*domain.TrendingRecipe, error) {
	query := `
		SELECT id, recipe_id, spoonacular_id, week, position,
			week_start_date, ready_in_min, recipe_data, created_at
		FROM trending_recipes
		WHERE spoonacular_id = $1`

	var entry domain.TrendingRecipe
	err := sqlx.GetContext(ctx, GetExecutor(ctx, s.db), &entry, query, externalID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	return &entry, nil
}

func (s *TrendingStore) Create(ctx context.Context, entry *domain.TrendingRecipe) error {
	query := `
		INSERT INTO trending_recipes (
			recipe_id, spoonacular_id, week, position,
			week_start_date, ready_in_min, recipe_data
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7
		)
		RETURNING id`

	return GetExecutor(ctx, s.db).QueryRowxContext(ctx, query,
		entry.RecipeID,
		entry.SpoonacularID,
		entry.Week,
		entry.Position,
		entry.WeekStartDate,
		entry.ReadyInMin,
		entry.RecipeData,
	).Scan(&entry.ID)
}

// ListWeek returns the trending entries for a week ordered by position.
func (s *TrendingStore) ListWeek(ctx context.Context, week string) ([]domain.TrendingRecipe, error) {
	query := `
		SELECT id, recipe_id, spoonacular_id, week, position,
			week_start_date, ready_in_min, recipe_data, created_at
		FROM trending_recipes
		WHERE week = $1
		ORDER BY position`

	var entries []domain.TrendingRecipe
	if err := sqlx.SelectContext(ctx, GetExecutor(ctx, s.db), &entries, query, week); err != nil {
		return nil, err
	}

	return entries, nil
}

func (s *TrendingStore) Update(ctx context.Context, entry *domain.TrendingRecipe) error {
	query := `
		UPDATE trending_recipes SET
			recipe_id = $1,
			week = $2,
			position = $3,
			week_start_date = $4,
			ready_in_min = $5,
			recipe_data = $6
		WHERE id = $7`

	res, err := GetExecutor(ctx, s.db).ExecContext(ctx, query,
		entry.RecipeID,
		entry.Week,
		entry.Position,
		entry.WeekStartDate,
		entry.ReadyInMin,
		entry.RecipeData,
		entry.ID,
	)
	if err != nil {
		return err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.ErrNotFound
	}

	return nil
}
