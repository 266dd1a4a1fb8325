package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"

	"recipe_fetcher/internal/domain"
)

// RecipeStore persists recipe rows. Every method resolves its executor
// through GetExecutor, so calls made inside WithTransaction run on the
// transaction and calls outside run directly on the pool.
type RecipeStore struct {
	db *sqlx.DB
}

func NewRecipeStore(db *sqlx.DB) *RecipeStore {
	return &RecipeStore{db: db}
}

func (s *RecipeStore) Create(ctx context.Context, recipe *domain.Recipe) (int64, error) {
	query := `
		INSERT INTO recipes (
			user_id, name, description, image_url, source_url,
			serves, times_made, favorite, trending, date_added
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10
		)
		RETURNING id`

	dateAdded := recipe.DateAdded
	if dateAdded.IsZero() {
		dateAdded = time.Now()
	}

	var id int64
	err := GetExecutor(ctx, s.db).QueryRowxContext(ctx, query,
		recipe.UserID,
		recipe.Name,
		recipe.Description,
		recipe.ImageURL,
		recipe.SourceURL,
		recipe.Serves,
		recipe.TimesMade,
		recipe.Favorite,
		recipe.Trending,
		dateAdded,
	).Scan(&id)
	if err != nil {
		return 0, err
	}

	return id, nil
}

func (s *RecipeStore) Get(ctx context.Context, id int64) (*domain.Recipe, error) {
	query := `
		SELECT id, user_id, name, description, image_url, source_url,
			serves, times_made, favorite, trending, date_added
		FROM recipes
		WHERE id = $1`

	var recipe domain.Recipe
	err := sqlx.GetContext(ctx, GetExecutor(ctx, s.db), &recipe, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	return &recipe, nil
}

func (s *RecipeStore) Update(ctx context.Context, recipe *domain.Recipe) error {
	query := `
		UPDATE recipes SET
			name = $1,
			description = $2,
			image_url = $3,
			source_url = $4,
			serves = $5,
			times_made = $6,
			favorite = $7,
			trending = $8
		WHERE id = $9`

	res, err := GetExecutor(ctx, s.db).ExecContext(ctx, query,
		recipe.Name,
		recipe.Description,
		recipe.ImageURL,
		recipe.SourceURL,
		recipe.Serves,
		recipe.TimesMade,
		recipe.Favorite,
		recipe.Trending,
		recipe.ID,
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

// Delete removes a recipe and, through ON DELETE CASCADE, its ingredients,
// steps and nutrients. Rows flagged as trending are refused: they back a
// trending entry and must stay until the entry is re-linked or removed.
func (s *RecipeStore) Delete(ctx context.Context, id int64) error {
	exec := GetExecutor(ctx, s.db)

	res, err := exec.ExecContext(ctx, "DELETE FROM recipes WHERE id = $1 AND NOT trending", id)
	if err != nil {
		return err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected > 0 {
		return nil
	}

	// Nothing deleted: either the row is gone or it is trending-protected.
	var trending bool
	err = exec.QueryRowxContext(ctx, "SELECT trending FROM recipes WHERE id = $1", id).Scan(&trending)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.ErrNotFound
	}
	if err != nil {
		return err
	}

	return domain.ErrTrendingImmutable
}
