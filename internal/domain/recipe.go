package domain

import (
	"errors"
	"time"
)

// Placeholder values a recipe carries while extraction runs in the background.
const (
	PlaceholderName        = "Processing recipe..."
	PlaceholderDescription = "Extracting recipe details. This page will update shortly."
	DefaultRecipeName      = "Untitled Recipe"
)

// Limits every write path truncates to before persisting.
const (
	MaxNameLen = 255
	MaxUnitLen = 50
	MaxStepLen = 1000
)

var (
	ErrNotFound          = errors.New("not found")
	ErrTrendingImmutable = errors.New("recipe is linked to a trending entry")
)

type Recipe struct {
	ID          int64     `db:"id"`
	UserID      int64     `db:"user_id"`
	Name        string    `db:"name"`
	Description string    `db:"description"`
	ImageURL    *string   `db:"image_url"`
	SourceURL   *string   `db:"source_url"`
	Serves      *int      `db:"serves"`
	TimesMade   int       `db:"times_made"`
	Favorite    bool      `db:"favorite"`
	Trending    bool      `db:"trending"` // set on system-owned rows created by the trending sync
	DateAdded   time.Time `db:"date_added"`
}

type Ingredient struct {
	ID       int64   `db:"id"`
	RecipeID int64   `db:"recipe_id"`
	Name     string  `db:"name"`
	Quantity float64 `db:"quantity"` // 3 decimal places
	Unit     string  `db:"unit"`
	Original *string `db:"original_text"` // source line the record was parsed from
}

type Step struct {
	ID          int64  `db:"id"`
	RecipeID    int64  `db:"recipe_id"`
	Description string `db:"description"`
	Order       int    `db:"order"` // 1-based
}

type Nutrient struct {
	ID       int64   `db:"id"`
	RecipeID int64   `db:"recipe_id"`
	Macro    string  `db:"macro"`
	Mass     float64 `db:"mass"` // grams, except calories
}

// RecipeData is the storage-ready shape every extraction and feed path
// normalizes into before anything is persisted.
type RecipeData struct {
	Name        string
	Description string
	ImageURL    string
	SourceURL   string
	Serves      *int
	TimesMade   int
	ReadyInMin  int
	Ingredients []Ingredient
	Steps       []Step
	Nutrients   []Nutrient
}

func (d *RecipeData) HasContent() bool {
	return len(d.Ingredients) > 0 || len(d.Steps) > 0
}
