package spoonacular

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"recipe_fetcher/internal/domain"
)

const SourceName = "spoonacular"

// Config holds Spoonacular API configuration.
type Config struct {
	BaseURL        string
	APIKey         string
	Timeout        time.Duration
	MaxAttempts    int
	InitialBackoff time.Duration
	MaxBackoff     time.Duration
}

// Source pulls trending recipe candidates from the Spoonacular API.
type Source struct {
	httpClient     *http.Client
	baseURL        string
	apiKey         string
	maxAttempts    int
	initialBackoff time.Duration
	maxBackoff     time.Duration
	logger         *slog.Logger
}

func New(cfg Config, logger *slog.Logger) *Source {
	return &Source{
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		baseURL:        strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:         cfg.APIKey,
		maxAttempts:    cfg.MaxAttempts,
		initialBackoff: cfg.InitialBackoff,
		maxBackoff:     cfg.MaxBackoff,
		logger:         logger.With("source", SourceName),
	}
}

// Name returns the feed identifier.
func (s *Source) Name() string {
	return SourceName
}

// RandomRecipes fetches count random recipes with full information.
func (s *Source) RandomRecipes(ctx context.Context, count int) ([]domain.TrendingCandidate, error) {
	q := url.Values{}
	q.Set("number", strconv.Itoa(count))

	body, err := s.fetch(ctx, s.endpoint("/recipes/random", q))
	if err != nil {
		return nil, err
	}

	var resp randomResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	return s.candidates(resp.Recipes), nil
}

// PopularRecipes searches for the most popular recipes. Used as the fallback
// when the random endpoint comes back empty.
func (s *Source) PopularRecipes(ctx context.Context, count int) ([]domain.TrendingCandidate, error) {
	q := url.Values{}
	q.Set("number", strconv.Itoa(count))
	q.Set("sort", "popularity")
	q.Set("addRecipeInformation", "true")
	q.Set("addRecipeNutrition", "true")

	body, err := s.fetch(ctx, s.endpoint("/recipes/complexSearch", q))
	if err != nil {
		return nil, err
	}

	var resp searchResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	return s.candidates(resp.Results), nil
}

// InstructionsFor fetches the analyzed instruction groups for one recipe.
func (s *Source) InstructionsFor(ctx context.Context, externalID int64) ([]any, error) {
	path := fmt.Sprintf("/recipes/%d/analyzedInstructions", externalID)

	body, err := s.fetch(ctx, s.endpoint(path, url.Values{}))
	if err != nil {
		return nil, err
	}

	var instructions []any
	if err := json.Unmarshal(body, &instructions); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	return instructions, nil
}

func (s *Source) endpoint(path string, q url.Values) string {
	q.Set("apiKey", s.apiKey)
	return s.baseURL + path + "?" + q.Encode()
}

func (s *Source) fetch(ctx context.Context, endpoint string) ([]byte, error) {
	var body []byte
	var err error

	for attempt := 1; attempt <= s.maxAttempts; attempt++ {
		body, err = s.doRequest(ctx, endpoint)
		if err == nil {
			return body, nil
		}

		if attempt == s.maxAttempts {
			break
		}

		backoff := s.calculateBackoff(attempt)
		s.logger.Warn("request failed, retrying",
			"attempt", attempt,
			"backoff", backoff,
			"error", err,
		)

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(backoff):
		}
	}

	return nil, fmt.Errorf("after %d attempts: %w", s.maxAttempts, err)
}

func (s *Source) doRequest(ctx context.Context, endpoint string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "RecipeFetcher/1.0")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	return body, nil
}

func (s *Source) calculateBackoff(attempt int) time.Duration {
	backoff := s.initialBackoff
	for i := 1; i < attempt; i++ {
		backoff *= 2
	}
	if backoff > s.maxBackoff {
		backoff = s.maxBackoff
	}
	return backoff
}

func (s *Source) candidates(raws []json.RawMessage) []domain.TrendingCandidate {
	out := make([]domain.TrendingCandidate, 0, len(raws))

	for _, raw := range raws {
		var payload map[string]any
		if err := json.Unmarshal(raw, &payload); err != nil {
			s.logger.Warn("undecodable candidate, skipping", "error", err)
			continue
		}

		id, ok := payload["id"].(float64)
		if !ok || id <= 0 {
			s.logger.Warn("candidate without id, skipping")
			continue
		}

		out = append(out, domain.TrendingCandidate{
			ExternalID: int64(id),
			Payload:    payload,
			Raw:        raw,
		})
	}

	return out
}
