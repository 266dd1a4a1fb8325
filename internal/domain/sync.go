package domain

import "time"

// SyncStats holds statistics about one trending sync run.
type SyncStats struct {
	Week     string
	Skipped  bool
	Fetched  int
	Created  int
	Updated  int
	Failed   int
	Duration time.Duration
}
