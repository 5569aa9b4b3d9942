package storage

import (
	"context"
	"time"

	"github.com/terra-clan/interview-engine/internal/models"
)

// Repository defines the interface for interview persistence.
// Get returns (nil, nil) when no record matches.
type Repository interface {
	CreateInterview(ctx context.Context, iv *models.Interview) error
	GetInterview(ctx context.Context, id string) (*models.Interview, error)

	// UpdateProgress persists slots and current_index as one combined
	// write; callers must never see an answered slot with a stale index.
	UpdateProgress(ctx context.Context, iv *models.Interview) error

	// CompleteInterview persists the final slots, status, aggregate
	// result and completion time as one combined write.
	CompleteInterview(ctx context.Context, iv *models.Interview) error

	// DeleteCompletedBefore removes completed interviews finished before
	// the cutoff and returns the number deleted.
	DeleteCompletedBefore(ctx context.Context, cutoff time.Time) (int64, error)

	Ping(ctx context.Context) error
	Close() error
}
