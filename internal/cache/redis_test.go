package cache

import (
	"context"
	"log/slog"
	"os"
	"testing"

	"github.com/stretchr/testify/suite"
)

type CacheTestSuite struct {
	suite.Suite
	logger *slog.Logger
}

func (s *CacheTestSuite) SetupTest() {
	s.logger = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
}

func TestCacheTestSuite(t *testing.T) {
	suite.Run(t, new(CacheTestSuite))
}

func (s *CacheTestSuite) TestDisabledCacheIsNoOp() {
	ctx := context.Background()

	c, err := New(ctx, Config{Enabled: false}, s.logger)
	s.Require().NoError(err)

	c.Set(ctx, "key", "value")

	_, ok := c.Get(ctx, "key")
	s.False(ok)

	s.NoError(c.Close())
}
