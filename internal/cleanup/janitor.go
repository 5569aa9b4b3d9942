package cleanup

import (
	"context"
	"log/slog"
	"time"

	"github.com/terra-clan/interview-engine/internal/storage"
)

// Janitor periodically purges completed interviews older than the
// retention window. The engine itself never deletes records; retention
// is an operational concern and lives here.
type Janitor struct {
	repo     storage.Repository
	interval time.Duration
	maxAge   time.Duration
}

// NewJanitor creates a retention worker. maxAge must be positive;
// callers skip construction entirely when retention is disabled.
func NewJanitor(repo storage.Repository, interval, maxAge time.Duration) *Janitor {
	if interval <= 0 {
		interval = 1 * time.Hour
	}

	return &Janitor{
		repo:     repo,
		interval: interval,
		maxAge:   maxAge,
	}
}

// Start begins the retention worker in a goroutine
func (j *Janitor) Start(ctx context.Context) {
	go j.run(ctx)
}

// run is the main loop for the retention worker
func (j *Janitor) run(ctx context.Context) {
	slog.Info("retention worker started", "interval", j.interval, "max_age", j.maxAge)

	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	// Run immediately on start
	j.purge(ctx)

	for {
		select {
		case <-ctx.Done():
			slog.Info("retention worker stopped")
			return
		case <-ticker.C:
			j.purge(ctx)
		}
	}
}

// purge deletes completed interviews past the retention window
func (j *Janitor) purge(ctx context.Context) {
	cutoff := time.Now().UTC().Add(-j.maxAge)

	deleted, err := j.repo.DeleteCompletedBefore(ctx, cutoff)
	if err != nil {
		slog.Error("failed to purge completed interviews", "error", err)
		return
	}

	if deleted > 0 {
		slog.Info("purged completed interviews", "count", deleted, "cutoff", cutoff)
	}
}
