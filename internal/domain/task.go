package domain

import "github.com/google/uuid"

const TaskExtractRecipe = "recipe.extract"

type SourceKind string

const (
	SourceURL   SourceKind = "url"
	SourceImage SourceKind = "image"
)

// Source identifies where a recipe should be extracted from. Exactly one of
// URL or ImageB64 is set, according to Kind.
type Source struct {
	Kind      SourceKind `json:"kind"`
	URL       string     `json:"url,omitempty"`
	ImageB64  string     `json:"image_b64,omitempty"`
	ImageMIME string     `json:"image_mime,omitempty"`
}

// ExtractionTask is the queue envelope for one background extraction. The
// retry counter travels with the message, not in worker state, so any worker
// instance can pick the task up and know how many attempts remain.
type ExtractionTask struct {
	ID          uuid.UUID `json:"id"`
	RecipeID    int64     `json:"recipe_id"`
	UserID      int64     `json:"user_id"`
	Source      Source    `json:"source"`
	Attempt     int       `json:"attempt"` // 1-based
	MaxAttempts int       `json:"max_attempts"`
}

func NewExtractionTask(recipeID, userID int64, src Source, maxAttempts int) ExtractionTask {
	return ExtractionTask{
		ID:          uuid.New(),
		RecipeID:    recipeID,
		UserID:      userID,
		Source:      src,
		Attempt:     1,
		MaxAttempts: maxAttempts,
	}
}
