package repository

import (
	"context"

	"github.com/plandeck/backend/domain"
)

// AnalyticsCache holds precomputed habit analytics snapshots. Get returns
// (nil, nil) on a cache miss so callers fall back to recomputing.
type AnalyticsCache interface {
	Get(ctx context.Context, habitID string) (*domain.HabitAnalytics, error)
	Put(ctx context.Context, analytics *domain.HabitAnalytics) error
	Invalidate(ctx context.Context, habitID string) error
}
