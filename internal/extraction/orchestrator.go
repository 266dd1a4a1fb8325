// Package extraction runs the pipeline that turns a recipe source into
// storage-ready recipe data: structured markup when the page carries it,
// otherwise page text through the text oracle, and the vision oracle for
// image sources.
package extraction

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"recipe_fetcher/internal/domain"
	"recipe_fetcher/internal/oracle"
	"recipe_fetcher/internal/scraper"
)

// Status classifies an extraction outcome.
type Status int

const (
	// StatusResolved means Recipe carries complete extracted data.
	StatusResolved Status = iota
	// StatusNeedsFallback means the synchronous path could not answer and
	// the source belongs on the queue.
	StatusNeedsFallback
	// StatusRejected means the source is not a recipe. Retrying is useless.
	StatusRejected
)

// Outcome is the answer of one extraction attempt. Transient failures come
// back as errors instead, so callers retry on error and act on Outcome.
type Outcome struct {
	Status Status
	Recipe *domain.RecipeData
	Reason string
}

type StructuredScraper interface {
	Scrape(ctx context.Context, pageURL string) (*domain.RecipeData, error)
}

type PageTexter interface {
	Text(ctx context.Context, pageURL string) (string, error)
}

type TextExtractor interface {
	FromText(ctx context.Context, pageText string) (*oracle.Result, error)
}

type VisionExtractor interface {
	FromImage(ctx context.Context, imageB64, mime string) (*oracle.Result, error)
}

// Orchestrator chains the extraction stages in cost order: structured
// markup is free and the oracles each cost a completion.
type Orchestrator struct {
	structured StructuredScraper
	pages      PageTexter
	text       TextExtractor
	vision     VisionExtractor
	logger     *slog.Logger
}

func New(
	structured StructuredScraper,
	pages PageTexter,
	text TextExtractor,
	vision VisionExtractor,
	logger *slog.Logger,
) *Orchestrator {
	return &Orchestrator{
		structured: structured,
		pages:      pages,
		text:       text,
		vision:     vision,
		logger:     logger.With("component", "extraction"),
	}
}

// Run executes the full pipeline for a source. URL sources try structured
// markup first and fall back to the text oracle; image sources go straight
// to the vision oracle.
func (o *Orchestrator) Run(ctx context.Context, src domain.Source) (*Outcome, error) {
	switch src.Kind {
	case domain.SourceURL:
		return o.runURL(ctx, src.URL)
	case domain.SourceImage:
		return o.runImage(ctx, src)
	default:
		return nil, fmt.Errorf("unknown source kind: %q", src.Kind)
	}
}

// Direct is the synchronous path used at creation time: structured markup
// only for URLs, nothing for images. Every failure collapses into
// NeedsFallback because the caller's answer is simply "enqueue it".
func (o *Orchestrator) Direct(ctx context.Context, src domain.Source) *Outcome {
	if src.Kind != domain.SourceURL {
		return &Outcome{Status: StatusNeedsFallback}
	}

	data, err := o.structured.Scrape(ctx, src.URL)
	if err != nil {
		if !errors.Is(err, scraper.ErrNoRecipeMarkup) {
			o.logger.Debug("direct scrape failed", "url", src.URL, "error", err)
		}
		return &Outcome{Status: StatusNeedsFallback}
	}
	if !acceptable(data) {
		return &Outcome{Status: StatusNeedsFallback}
	}

	return &Outcome{Status: StatusResolved, Recipe: data}
}

func (o *Orchestrator) runURL(ctx context.Context, pageURL string) (*Outcome, error) {
	data, err := o.structured.Scrape(ctx, pageURL)
	switch {
	case err == nil:
		if acceptable(data) {
			o.logger.Debug("resolved from structured markup", "url", pageURL)
			return &Outcome{Status: StatusResolved, Recipe: data}, nil
		}
		o.logger.Debug("structured markup incomplete, asking oracle", "url", pageURL)
	case errors.Is(err, scraper.ErrNoRecipeMarkup):
		o.logger.Debug("no structured markup, asking oracle", "url", pageURL)
	default:
		// A failed scrape never ends the pipeline on its own. If the page is
		// truly unreachable the text fetch below fails the same way and the
		// attempt is retried as transient.
		o.logger.Warn("structured scrape failed, asking oracle", "url", pageURL, "error", err)
	}

	text, err := o.pages.Text(ctx, pageURL)
	if err != nil {
		return nil, fmt.Errorf("page text %s: %w", pageURL, err)
	}
	if strings.TrimSpace(text) == "" {
		return &Outcome{Status: StatusRejected, Reason: "page has no readable text"}, nil
	}

	res, err := o.text.FromText(ctx, text)
	return o.oracleOutcome(res, err)
}

func (o *Orchestrator) runImage(ctx context.Context, src domain.Source) (*Outcome, error) {
	if src.ImageB64 == "" {
		return &Outcome{Status: StatusRejected, Reason: "image source carries no data"}, nil
	}

	res, err := o.vision.FromImage(ctx, src.ImageB64, src.ImageMIME)
	return o.oracleOutcome(res, err)
}

// oracleOutcome maps oracle answers onto outcomes: explicit rejections are
// terminal, everything else that errors is transient and bubbles up for the
// retry policy to handle.
func (o *Orchestrator) oracleOutcome(res *oracle.Result, err error) (*Outcome, error) {
	if err != nil {
		var rej *oracle.RejectionError
		if errors.As(err, &rej) {
			return &Outcome{Status: StatusRejected, Reason: rej.Reason}, nil
		}
		return nil, err
	}

	return &Outcome{Status: StatusResolved, Recipe: oracleRecipe(res)}, nil
}

func acceptable(data *domain.RecipeData) bool {
	return data != nil && strings.TrimSpace(data.Name) != "" && data.HasContent()
}
