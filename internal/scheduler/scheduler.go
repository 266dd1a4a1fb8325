package scheduler

import (
	"context"
	"log/slog"
	"time"

	"recipe_fetcher/internal/config"
	"recipe_fetcher/internal/domain"
)

// Syncer defines the interface for sync operations.
type Syncer interface {
	Sync(ctx context.Context) (*domain.SyncStats, error)
}

const runTimeout = 10 * time.Minute

// Scheduler fires the trending sync once a week at the configured weekday
// and hour. A failed run is retried a few times with a fixed delay; the week
// key keeps reruns idempotent, so retrying an already-synced week is a no-op.
type Scheduler struct {
	syncer Syncer
	config config.TrendingConfig
	logger *slog.Logger
}

func NewScheduler(syncer Syncer, cfg config.TrendingConfig, logger *slog.Logger) *Scheduler {
	return &Scheduler{
		syncer: syncer,
		config: cfg,
		logger: logger,
	}
}

func (s *Scheduler) Start(ctx context.Context) error {
	s.logger.Info("scheduler started",
		"weekday", s.config.Weekday.String(),
		"hour", s.config.Hour,
	)

	if s.config.RunOnStart {
		s.runSync(ctx)
	}

	for {
		next := nextRun(time.Now(), s.config.Weekday, s.config.Hour)
		s.logger.Info("next sync scheduled", "at", next)

		select {
		case <-ctx.Done():
			s.logger.Info("scheduler stopped")
			return ctx.Err()
		case <-time.After(time.Until(next)):
			s.runSync(ctx)
		}
	}
}

func (s *Scheduler) runSync(ctx context.Context) {
	for attempt := 1; attempt <= s.config.MaxAttempts; attempt++ {
		syncCtx, cancel := context.WithTimeout(ctx, runTimeout)
		_, err := s.syncer.Sync(syncCtx)
		cancel()

		if err == nil {
			return
		}

		s.logger.Error("sync failed", "attempt", attempt, "error", err)

		if attempt == s.config.MaxAttempts {
			s.logger.Error("sync abandoned until next schedule", "attempts", attempt)
			return
		}

		select {
		case <-ctx.Done():
			return
		case <-time.After(s.config.RetryDelay):
		}
	}
}

// nextRun returns the first instant strictly after now that falls on weekday
// at hour o'clock in now's location.
func nextRun(now time.Time, weekday time.Weekday, hour int) time.Time {
	days := (int(weekday) - int(now.Weekday()) + 7) % 7
	candidate := time.Date(now.Year(), now.Month(), now.Day(), hour, 0, 0, 0, now.Location()).
		AddDate(0, 0, days)
	if !candidate.After(now) {
		candidate = candidate.AddDate(0, 0, 7)
	}
	return candidate
}
