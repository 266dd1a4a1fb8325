package oracle

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"log/slog"
)

// TextCompleter and VisionCompleter are the raw completion calls, satisfied
// by the openrouter client.
type TextCompleter interface {
	CompleteText(ctx context.Context, system, user string) (string, error)
}

type VisionCompleter interface {
	CompleteVision(ctx context.Context, system, user, imageDataURL string) (string, error)
}

// ResponseCache stores validated raw completions keyed by request hash, so
// queue redelivery of the same source does not pay for a second model call.
type ResponseCache interface {
	Get(ctx context.Context, key string) (string, bool)
	Set(ctx context.Context, key, value string)
}

// TextOracle extracts recipes from cleaned page text.
type TextOracle struct {
	completer TextCompleter
	cache     ResponseCache
	logger    *slog.Logger
}

// NewTextOracle builds a text oracle. cache may be nil.
func NewTextOracle(completer TextCompleter, cache ResponseCache, logger *slog.Logger) *TextOracle {
	return &TextOracle{
		completer: completer,
		cache:     cache,
		logger:    logger.With("oracle", "text"),
	}
}

func (o *TextOracle) FromText(ctx context.Context, pageText string) (*Result, error) {
	key := cacheKey("text", textSystemPrompt, pageText)

	if res, err, ok := cachedResult(ctx, o.cache, o.logger, key); ok {
		return res, err
	}

	raw, err := o.completer.CompleteText(ctx, textSystemPrompt, textUserPrompt(pageText))
	if err != nil {
		return nil, fmt.Errorf("text completion: %w", err)
	}

	return decodeAndStore(ctx, o.cache, key, raw)
}

// VisionOracle extracts recipes from photographed or scanned recipes.
type VisionOracle struct {
	completer VisionCompleter
	cache     ResponseCache
	logger    *slog.Logger
}

// NewVisionOracle builds a vision oracle. cache may be nil.
func NewVisionOracle(completer VisionCompleter, cache ResponseCache, logger *slog.Logger) *VisionOracle {
	return &VisionOracle{
		completer: completer,
		cache:     cache,
		logger:    logger.With("oracle", "vision"),
	}
}

// FromImage runs extraction against a base64-encoded image. mime defaults
// to image/jpeg when empty.
func (o *VisionOracle) FromImage(ctx context.Context, imageB64, mime string) (*Result, error) {
	if mime == "" {
		mime = "image/jpeg"
	}
	dataURL := "data:" + mime + ";base64," + imageB64

	key := cacheKey("vision", visionSystemPrompt, dataURL)
	if res, err, ok := cachedResult(ctx, o.cache, o.logger, key); ok {
		return res, err
	}

	raw, err := o.completer.CompleteVision(ctx, visionSystemPrompt, visionUserPrompt, dataURL)
	if err != nil {
		return nil, fmt.Errorf("vision completion: %w", err)
	}

	return decodeAndStore(ctx, o.cache, key, raw)
}

// cachedResult re-decodes a cached raw completion. Entries that no longer
// decode are ignored rather than trusted.
func cachedResult(ctx context.Context, cache ResponseCache, logger *slog.Logger, key string) (*Result, error, bool) {
	if cache == nil {
		return nil, nil, false
	}
	raw, ok := cache.Get(ctx, key)
	if !ok {
		return nil, nil, false
	}

	res, err := Decode(raw)
	if err != nil && !IsRejection(err) {
		return nil, nil, false
	}
	logger.Debug("oracle cache hit", "key", key)
	return res, err, true
}

// decodeAndStore validates a fresh completion and caches it when the answer
// is usable. Rejections are cached too: asking again will not change a
// non-recipe page into a recipe. Malformed responses are never cached so a
// retry gets a fresh model call.
func decodeAndStore(ctx context.Context, cache ResponseCache, key, raw string) (*Result, error) {
	res, err := Decode(raw)
	if err != nil && !IsRejection(err) {
		return nil, err
	}
	if cache != nil {
		cache.Set(ctx, key, raw)
	}
	return res, err
}

func cacheKey(kind, system, payload string) string {
	h := sha256.New()
	h.Write([]byte(kind))
	h.Write([]byte{0})
	h.Write([]byte(system))
	h.Write([]byte{0})
	h.Write([]byte(payload))
	return "oracle:" + hex.EncodeToString(h.Sum(nil))
}
