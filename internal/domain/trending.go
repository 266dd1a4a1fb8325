package domain

import (
	"encoding/json"
	"fmt"
	"time"
)

// TrendingRecipe links one week/position slot to a recipe synced from the
// external feed. Week is an ISO key like "2025-33".
type TrendingRecipe struct {
	ID            int64           `db:"id"`
	RecipeID      int64           `db:"recipe_id"`
	SpoonacularID int64           `db:"spoonacular_id"`
	Week          string          `db:"week"`
	Position      int             `db:"position"` // 1-based slot within the week
	WeekStartDate time.Time       `db:"week_start_date"`
	ReadyInMin    int             `db:"ready_in_min"`
	RecipeData    json.RawMessage `db:"recipe_data"` // raw feed payload, kept for audit
	CreatedAt     time.Time       `db:"created_at"`
}

// TrendingCandidate is one entry returned by the trending feed before
// normalization.
type TrendingCandidate struct {
	ExternalID int64
	Payload    map[string]any
	Raw        json.RawMessage
}

// WeekOf returns the ISO-8601 week key ("YYYY-WW", zero-padded) for t and the
// Monday that week starts on. The ISO year is used, so days near January 1st
// group with the week they belong to, not the calendar year.
func WeekOf(t time.Time) (string, time.Time) {
	year, week := t.ISOWeek()

	// Walk back to Monday of the current ISO week.
	wd := int(t.Weekday())
	if wd == 0 {
		wd = 7
	}
	monday := t.AddDate(0, 0, 1-wd)
	monday = time.Date(monday.Year(), monday.Month(), monday.Day(), 0, 0, 0, 0, t.Location())

	return fmt.Sprintf("%04d-%02d", year, week), monday
}
