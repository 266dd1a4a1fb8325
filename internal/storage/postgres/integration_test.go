//go:build integration

package postgres

import (
	"context"
	"encoding/json"
	"path/filepath"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"recipe_fetcher/internal/domain"
	"recipe_fetcher/testdata/utils"
)

type PostgresIntegrationSuite struct {
	suite.Suite
	ctx       context.Context
	container *postgres.PostgresContainer
	db        *sqlx.DB
}

func (s *PostgresIntegrationSuite) SetupSuite() {
	s.ctx = context.Background()

	migrationsPath, err := filepath.Abs("../../../migrations")
	s.Require().NoError(err)

	container, err := postgres.Run(s.ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("test_db"),
		postgres.WithUsername("test"),
		postgres.WithPassword("test"),
		postgres.WithInitScripts(
			filepath.Join(migrationsPath, "001_create_recipes.up.sql"),
			filepath.Join(migrationsPath, "002_create_trending.up.sql"),
		),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	s.Require().NoError(err)
	s.container = container

	connStr, err := container.ConnectionString(s.ctx, "sslmode=disable")
	s.Require().NoError(err)

	db, err := sqlx.Connect("postgres", connStr)
	s.Require().NoError(err)
	s.db = db
}

func (s *PostgresIntegrationSuite) TearDownSuite() {
	if s.db != nil {
		s.db.Close()
	}
	if s.container != nil {
		_ = s.container.Terminate(s.ctx)
	}
}

func (s *PostgresIntegrationSuite) SetupTest() {
	_, _ = s.db.ExecContext(s.ctx, "DELETE FROM trending_recipes")
	_, _ = s.db.ExecContext(s.ctx, "DELETE FROM nutrients")
	_, _ = s.db.ExecContext(s.ctx, "DELETE FROM steps")
	_, _ = s.db.ExecContext(s.ctx, "DELETE FROM ingredients")
	_, _ = s.db.ExecContext(s.ctx, "DELETE FROM recipes")
	_, _ = s.db.ExecContext(s.ctx, "DELETE FROM users")
}

func TestPostgresIntegrationSuite(t *testing.T) {
	suite.Run(t, new(PostgresIntegrationSuite))
}

func (s *PostgresIntegrationSuite) createUser(username string) int64 {
	id, err := NewUserStore(s.db).GetOrCreateByUsername(s.ctx, username)
	s.Require().NoError(err)
	return id
}

func (s *PostgresIntegrationSuite) createRecipe(userID int64, name string, trending bool) int64 {
	id, err := NewRecipeStore(s.db).Create(s.ctx, &domain.Recipe{
		UserID:   userID,
		Name:     name,
		Trending: trending,
	})
	s.Require().NoError(err)
	return id
}

func (s *PostgresIntegrationSuite) TestUserStore_GetOrCreate() {
	store := NewUserStore(s.db)

	id1, err := store.GetOrCreateByUsername(s.ctx, "spoonacular")
	s.NoError(err)
	s.Greater(id1, int64(0))

	id2, err := store.GetOrCreateByUsername(s.ctx, "spoonacular")
	s.NoError(err)
	s.Equal(id1, id2)

	var active bool
	err = s.db.GetContext(s.ctx, &active, "SELECT active FROM users WHERE id = $1", id1)
	s.NoError(err)
	s.False(active)
}

func (s *PostgresIntegrationSuite) TestRecipeStore_CreateAndGet() {
	store := NewRecipeStore(s.db)
	userID := s.createUser("alice")

	recipe := &domain.Recipe{
		UserID:      userID,
		Name:        "Shakshuka",
		Description: "Eggs in tomato sauce.",
		ImageURL:    utils.Ptr("https://example.com/shakshuka.jpg"),
		SourceURL:   utils.Ptr("https://example.com/shakshuka"),
		Serves:      utils.Ptr(2),
		TimesMade:   3,
		Favorite:    true,
	}

	id, err := store.Create(s.ctx, recipe)
	s.NoError(err)
	s.Greater(id, int64(0))

	loaded, err := store.Get(s.ctx, id)
	s.NoError(err)
	s.Equal("Shakshuka", loaded.Name)
	s.Equal(userID, loaded.UserID)
	s.Equal("https://example.com/shakshuka.jpg", *loaded.ImageURL)
	s.Equal(2, *loaded.Serves)
	s.Equal(3, loaded.TimesMade)
	s.True(loaded.Favorite)
	s.False(loaded.Trending)
	s.False(loaded.DateAdded.IsZero())
}

func (s *PostgresIntegrationSuite) TestRecipeStore_GetMissing() {
	store := NewRecipeStore(s.db)

	_, err := store.Get(s.ctx, 99999)
	s.ErrorIs(err, domain.ErrNotFound)
}

func (s *PostgresIntegrationSuite) TestRecipeStore_Update() {
	store := NewRecipeStore(s.db)
	userID := s.createUser("alice")
	id := s.createRecipe(userID, "Processing recipe...", false)

	loaded, err := store.Get(s.ctx, id)
	s.Require().NoError(err)

	loaded.Name = "Shakshuka"
	loaded.Description = "Done."
	loaded.Serves = utils.Ptr(4)
	err = store.Update(s.ctx, loaded)
	s.NoError(err)

	reloaded, err := store.Get(s.ctx, id)
	s.NoError(err)
	s.Equal("Shakshuka", reloaded.Name)
	s.Equal("Done.", reloaded.Description)
	s.Equal(4, *reloaded.Serves)
}

func (s *PostgresIntegrationSuite) TestRecipeStore_UpdateMissing() {
	store := NewRecipeStore(s.db)

	err := store.Update(s.ctx, &domain.Recipe{ID: 99999, Name: "Ghost"})
	s.ErrorIs(err, domain.ErrNotFound)
}

func (s *PostgresIntegrationSuite) TestRecipeStore_DeleteCascades() {
	store := NewRecipeStore(s.db)
	userID := s.createUser("alice")
	id := s.createRecipe(userID, "Shakshuka", false)

	err := NewIngredientStore(s.db).ReplaceForRecipe(s.ctx, id, []domain.Ingredient{
		{Name: "eggs", Quantity: 4},
	})
	s.Require().NoError(err)

	err = store.Delete(s.ctx, id)
	s.NoError(err)

	_, err = store.Get(s.ctx, id)
	s.ErrorIs(err, domain.ErrNotFound)

	var count int
	err = s.db.GetContext(s.ctx, &count, "SELECT COUNT(*) FROM ingredients WHERE recipe_id = $1", id)
	s.NoError(err)
	s.Equal(0, count)
}

func (s *PostgresIntegrationSuite) TestRecipeStore_DeleteTrendingRefused() {
	store := NewRecipeStore(s.db)
	userID := s.createUser("spoonacular")
	id := s.createRecipe(userID, "Paella", true)

	err := store.Delete(s.ctx, id)
	s.ErrorIs(err, domain.ErrTrendingImmutable)

	_, err = store.Get(s.ctx, id)
	s.NoError(err)
}

func (s *PostgresIntegrationSuite) TestRecipeStore_DeleteMissing() {
	store := NewRecipeStore(s.db)

	err := store.Delete(s.ctx, 99999)
	s.ErrorIs(err, domain.ErrNotFound)
}

func (s *PostgresIntegrationSuite) TestIngredientStore_Replace() {
	store := NewIngredientStore(s.db)
	userID := s.createUser("alice")
	id := s.createRecipe(userID, "Shakshuka", false)

	err := store.ReplaceForRecipe(s.ctx, id, []domain.Ingredient{
		{Name: "eggs", Quantity: 4},
		{Name: "tomatoes", Quantity: 800, Unit: "g", Original: utils.Ptr("800g chopped tomatoes")},
	})
	s.NoError(err)

	ingredients, err := store.ListForRecipe(s.ctx, id)
	s.NoError(err)
	s.Require().Len(ingredients, 2)
	s.Equal("g", ingredients[1].Unit)
	s.Require().NotNil(ingredients[1].Original)
	s.Equal("800g chopped tomatoes", *ingredients[1].Original)

	err = store.ReplaceForRecipe(s.ctx, id, []domain.Ingredient{
		{Name: "eggs", Quantity: 6},
	})
	s.NoError(err)

	ingredients, err = store.ListForRecipe(s.ctx, id)
	s.NoError(err)
	s.Require().Len(ingredients, 1)
	s.Equal("eggs", ingredients[0].Name)
	s.Equal(float64(6), ingredients[0].Quantity)
	s.Nil(ingredients[0].Original)
}

func (s *PostgresIntegrationSuite) TestIngredientStore_ReplaceWithEmptyClears() {
	store := NewIngredientStore(s.db)
	userID := s.createUser("alice")
	id := s.createRecipe(userID, "Shakshuka", false)

	err := store.ReplaceForRecipe(s.ctx, id, []domain.Ingredient{{Name: "eggs", Quantity: 4}})
	s.Require().NoError(err)

	err = store.ReplaceForRecipe(s.ctx, id, nil)
	s.NoError(err)

	var count int
	err = s.db.GetContext(s.ctx, &count, "SELECT COUNT(*) FROM ingredients WHERE recipe_id = $1", id)
	s.NoError(err)
	s.Equal(0, count)
}

func (s *PostgresIntegrationSuite) TestStepStore_ReplaceKeepsOrder() {
	store := NewStepStore(s.db)
	userID := s.createUser("alice")
	id := s.createRecipe(userID, "Shakshuka", false)

	// Insert out of order; the list comes back sorted by step order.
	err := store.ReplaceForRecipe(s.ctx, id, []domain.Step{
		{Description: "Poach the eggs.", Order: 2},
		{Description: "Simmer the sauce.", Order: 1},
	})
	s.NoError(err)

	steps, err := store.ListForRecipe(s.ctx, id)
	s.NoError(err)
	s.Require().Len(steps, 2)
	s.Equal("Simmer the sauce.", steps[0].Description)
	s.Equal(1, steps[0].Order)
	s.Equal("Poach the eggs.", steps[1].Description)
	s.Equal(2, steps[1].Order)
}

func (s *PostgresIntegrationSuite) TestNutrientStore_Replace() {
	store := NewNutrientStore(s.db)
	userID := s.createUser("alice")
	id := s.createRecipe(userID, "Shakshuka", false)

	err := store.ReplaceForRecipe(s.ctx, id, []domain.Nutrient{
		{Macro: "calories", Mass: 450},
		{Macro: "protein", Mass: 32.5},
	})
	s.NoError(err)

	nutrients, err := store.ListForRecipe(s.ctx, id)
	s.NoError(err)
	s.Require().Len(nutrients, 2)
	s.Equal("calories", nutrients[0].Macro)
	s.Equal(450.0, nutrients[0].Mass)
	s.Equal("protein", nutrients[1].Macro)
	s.Equal(32.5, nutrients[1].Mass)
}

func (s *PostgresIntegrationSuite) TestTrendingStore_CreateAndWeekExists() {
	store := NewTrendingStore(s.db)
	userID := s.createUser("spoonacular")
	recipeID := s.createRecipe(userID, "Paella", true)

	exists, err := store.WeekExists(s.ctx, "2025-33")
	s.NoError(err)
	s.False(exists)

	raw, _ := json.Marshal(map[string]any{"id": 101, "title": "Paella"})
	entry := &domain.TrendingRecipe{
		RecipeID:      recipeID,
		SpoonacularID: 101,
		Week:          "2025-33",
		Position:      1,
		WeekStartDate: time.Date(2025, 8, 11, 0, 0, 0, 0, time.UTC),
		ReadyInMin:    45,
		RecipeData:    raw,
	}
	err = store.Create(s.ctx, entry)
	s.NoError(err)
	s.Greater(entry.ID, int64(0))

	exists, err = store.WeekExists(s.ctx, "2025-33")
	s.NoError(err)
	s.True(exists)
}

func (s *PostgresIntegrationSuite) TestTrendingStore_GetByExternalID() {
	store := NewTrendingStore(s.db)
	userID := s.createUser("spoonacular")
	recipeID := s.createRecipe(userID, "Paella", true)

	raw, _ := json.Marshal(map[string]any{"id": 101})
	err := store.Create(s.ctx, &domain.TrendingRecipe{
		RecipeID:      recipeID,
		SpoonacularID: 101,
		Week:          "2025-33",
		Position:      1,
		WeekStartDate: time.Date(2025, 8, 11, 0, 0, 0, 0, time.UTC),
		RecipeData:    raw,
	})
	s.Require().NoError(err)

	entry, err := store.GetByExternalID(s.ctx, 101)
	s.NoError(err)
	s.Equal(recipeID, entry.RecipeID)
	s.Equal("2025-33", entry.Week)
	s.JSONEq(`{"id": 101}`, string(entry.RecipeData))

	_, err = store.GetByExternalID(s.ctx, 999)
	s.ErrorIs(err, domain.ErrNotFound)
}

func (s *PostgresIntegrationSuite) TestTrendingStore_ListWeekOrdersByPosition() {
	store := NewTrendingStore(s.db)
	userID := s.createUser("spoonacular")

	for i, title := range []string{"Paella", "Ramen", "Tacos"} {
		recipeID := s.createRecipe(userID, title, true)
		raw, _ := json.Marshal(map[string]any{"id": 100 + i, "title": title})
		err := store.Create(s.ctx, &domain.TrendingRecipe{
			RecipeID:      recipeID,
			SpoonacularID: int64(100 + i),
			Week:          "2025-33",
			Position:      3 - i,
			WeekStartDate: time.Date(2025, 8, 11, 0, 0, 0, 0, time.UTC),
			RecipeData:    raw,
		})
		s.Require().NoError(err)
	}

	entries, err := store.ListWeek(s.ctx, "2025-33")
	s.NoError(err)
	s.Require().Len(entries, 3)
	s.Equal([]int{1, 2, 3}, []int{entries[0].Position, entries[1].Position, entries[2].Position})
	s.Equal(int64(102), entries[0].SpoonacularID)

	entries, err = store.ListWeek(s.ctx, "2025-01")
	s.NoError(err)
	s.Empty(entries)
}

func (s *PostgresIntegrationSuite) TestTrendingStore_UpdateRekeysWeek() {
	store := NewTrendingStore(s.db)
	userID := s.createUser("spoonacular")
	recipeID := s.createRecipe(userID, "Paella", true)

	raw, _ := json.Marshal(map[string]any{"id": 101})
	entry := &domain.TrendingRecipe{
		RecipeID:      recipeID,
		SpoonacularID: 101,
		Week:          "2025-33",
		Position:      3,
		WeekStartDate: time.Date(2025, 8, 11, 0, 0, 0, 0, time.UTC),
		RecipeData:    raw,
	}
	s.Require().NoError(store.Create(s.ctx, entry))

	entry.Week = "2025-34"
	entry.Position = 1
	entry.WeekStartDate = time.Date(2025, 8, 18, 0, 0, 0, 0, time.UTC)
	entry.ReadyInMin = 50
	err := store.Update(s.ctx, entry)
	s.NoError(err)

	reloaded, err := store.GetByExternalID(s.ctx, 101)
	s.NoError(err)
	s.Equal("2025-34", reloaded.Week)
	s.Equal(1, reloaded.Position)
	s.Equal(50, reloaded.ReadyInMin)
}

func (s *PostgresIntegrationSuite) TestTransaction_Commit() {
	tm := NewTransactionManager(s.db)
	recipeStore := NewRecipeStore(s.db)
	ingredientStore := NewIngredientStore(s.db)
	userID := s.createUser("alice")

	err := tm.WithTransaction(s.ctx, func(ctx context.Context) error {
		id, err := recipeStore.Create(ctx, &domain.Recipe{UserID: userID, Name: "Shakshuka"})
		if err != nil {
			return err
		}
		return ingredientStore.ReplaceForRecipe(ctx, id, []domain.Ingredient{{Name: "eggs", Quantity: 4}})
	})
	s.NoError(err)

	var count int
	err = s.db.GetContext(s.ctx, &count, "SELECT COUNT(*) FROM recipes WHERE name = $1", "Shakshuka")
	s.NoError(err)
	s.Equal(1, count)
}

func (s *PostgresIntegrationSuite) TestTransaction_Rollback() {
	tm := NewTransactionManager(s.db)
	recipeStore := NewRecipeStore(s.db)
	userID := s.createUser("alice")
	keptID := s.createRecipe(userID, "Pre-existing", false)

	err := tm.WithTransaction(s.ctx, func(ctx context.Context) error {
		_, err := recipeStore.Create(ctx, &domain.Recipe{UserID: userID, Name: "Should Rollback"})
		if err != nil {
			return err
		}
		return context.Canceled
	})
	s.Error(err)

	var count int
	err = s.db.GetContext(s.ctx, &count, "SELECT COUNT(*) FROM recipes WHERE name = $1", "Should Rollback")
	s.NoError(err)
	s.Equal(0, count)

	_, err = recipeStore.Get(s.ctx, keptID)
	s.NoError(err)
}

func (s *PostgresIntegrationSuite) TestTransaction_NestedJoins() {
	tm := NewTransactionManager(s.db)
	recipeStore := NewRecipeStore(s.db)
	userID := s.createUser("alice")

	err := tm.WithTransaction(s.ctx, func(ctx context.Context) error {
		err := tm.WithTransaction(ctx, func(ctx context.Context) error {
			_, err := recipeStore.Create(ctx, &domain.Recipe{UserID: userID, Name: "Nested"})
			return err
		})
		if err != nil {
			return err
		}
		// The outer failure must also undo the inner write.
		return context.Canceled
	})
	s.Error(err)

	var count int
	err = s.db.GetContext(s.ctx, &count, "SELECT COUNT(*) FROM recipes WHERE name = $1", "Nested")
	s.NoError(err)
	s.Equal(0, count)
}
