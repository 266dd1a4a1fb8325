package oracle

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"testing"

	"github.com/stretchr/testify/suite"
)

const (
	validRecipeJSON = `{"is_recipe": true, "title": "Pasta", "ingredients": ["200 g spaghetti"], "instructions_list": ["Boil the pasta."]}`
	rejectionJSON   = `{"is_recipe": false, "reason": "ad page"}`
)

type fakeTextCompleter struct {
	response string
	err      error
	calls    int
}

func (f *fakeTextCompleter) CompleteText(_ context.Context, _, _ string) (string, error) {
	f.calls++
	return f.response, f.err
}

type fakeVisionCompleter struct {
	response string
	err      error
	calls    int
	lastURL  string
}

func (f *fakeVisionCompleter) CompleteVision(_ context.Context, _, _, imageDataURL string) (string, error) {
	f.calls++
	f.lastURL = imageDataURL
	return f.response, f.err
}

type memCache struct {
	entries map[string]string
	sets    int
}

func newMemCache() *memCache {
	return &memCache{entries: map[string]string{}}
}

func (c *memCache) Get(_ context.Context, key string) (string, bool) {
	v, ok := c.entries[key]
	return v, ok
}

func (c *memCache) Set(_ context.Context, key, value string) {
	c.sets++
	c.entries[key] = value
}

type OracleTestSuite struct {
	suite.Suite
	logger *slog.Logger
}

func (s *OracleTestSuite) SetupTest() {
	s.logger = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
}

func TestOracleTestSuite(t *testing.T) {
	suite.Run(t, new(OracleTestSuite))
}

func (s *OracleTestSuite) TestFromText_DecodesResponse() {
	completer := &fakeTextCompleter{response: validRecipeJSON}
	oracle := NewTextOracle(completer, nil, s.logger)

	res, err := oracle.FromText(context.Background(), "some page text")

	s.Require().NoError(err)
	s.Equal("Pasta", res.Title)
	s.Equal(1, completer.calls)
}

func (s *OracleTestSuite) TestFromText_CachesValidResponse() {
	completer := &fakeTextCompleter{response: validRecipeJSON}
	cache := newMemCache()
	oracle := NewTextOracle(completer, cache, s.logger)

	_, err := oracle.FromText(context.Background(), "some page text")
	s.Require().NoError(err)
	s.Equal(1, cache.sets)

	res, err := oracle.FromText(context.Background(), "some page text")
	s.Require().NoError(err)
	s.Equal("Pasta", res.Title)
	s.Equal(1, completer.calls)
}

func (s *OracleTestSuite) TestFromText_DifferentTextMisses() {
	completer := &fakeTextCompleter{response: validRecipeJSON}
	cache := newMemCache()
	oracle := NewTextOracle(completer, cache, s.logger)

	_, _ = oracle.FromText(context.Background(), "page one")
	_, _ = oracle.FromText(context.Background(), "page two")

	s.Equal(2, completer.calls)
}

func (s *OracleTestSuite) TestFromText_RejectionCached() {
	completer := &fakeTextCompleter{response: rejectionJSON}
	cache := newMemCache()
	oracle := NewTextOracle(completer, cache, s.logger)

	_, err := oracle.FromText(context.Background(), "a login page")
	s.True(IsRejection(err))
	s.Equal(1, cache.sets)

	_, err = oracle.FromText(context.Background(), "a login page")
	s.True(IsRejection(err))
	s.Equal(1, completer.calls)
}

func (s *OracleTestSuite) TestFromText_MalformedNotCached() {
	completer := &fakeTextCompleter{response: "total nonsense"}
	cache := newMemCache()
	oracle := NewTextOracle(completer, cache, s.logger)

	_, err := oracle.FromText(context.Background(), "some page text")

	s.ErrorIs(err, ErrBadResponse)
	s.Equal(0, cache.sets)
}

func (s *OracleTestSuite) TestFromText_CompleterError() {
	completer := &fakeTextCompleter{err: errors.New("upstream down")}
	oracle := NewTextOracle(completer, newMemCache(), s.logger)

	_, err := oracle.FromText(context.Background(), "some page text")

	s.Error(err)
	s.Contains(err.Error(), "text completion")
}

func (s *OracleTestSuite) TestFromText_StaleCacheEntryIgnored() {
	completer := &fakeTextCompleter{response: validRecipeJSON}
	cache := newMemCache()
	cache.entries[cacheKey("text", textSystemPrompt, "some page text")] = "corrupted entry"
	oracle := NewTextOracle(completer, cache, s.logger)

	res, err := oracle.FromText(context.Background(), "some page text")

	s.Require().NoError(err)
	s.Equal("Pasta", res.Title)
	s.Equal(1, completer.calls)
}

func (s *OracleTestSuite) TestFromImage_BuildsDataURL() {
	completer := &fakeVisionCompleter{response: validRecipeJSON}
	oracle := NewVisionOracle(completer, nil, s.logger)

	_, err := oracle.FromImage(context.Background(), "QUJD", "")
	s.Require().NoError(err)
	s.Equal("data:image/jpeg;base64,QUJD", completer.lastURL)

	_, err = oracle.FromImage(context.Background(), "QUJD", "image/png")
	s.Require().NoError(err)
	s.Equal("data:image/png;base64,QUJD", completer.lastURL)
}

func (s *OracleTestSuite) TestFromImage_CachesByImage() {
	completer := &fakeVisionCompleter{response: validRecipeJSON}
	cache := newMemCache()
	oracle := NewVisionOracle(completer, cache, s.logger)

	_, err := oracle.FromImage(context.Background(), "QUJD", "image/png")
	s.Require().NoError(err)

	res, err := oracle.FromImage(context.Background(), "QUJD", "image/png")
	s.Require().NoError(err)
	s.Equal("Pasta", res.Title)
	s.Equal(1, completer.calls)
}
