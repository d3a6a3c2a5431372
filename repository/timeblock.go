package repository

import (
	"context"
	"time"

	"github.com/plandeck/backend/domain"
)

type TimeBlockRepository interface {
	GetByID(ctx context.Context, id string) (*domain.TimeBlock, error)
	// ListRange returns blocks intersecting [from, to), ascending by start.
	ListRange(ctx context.Context, userID string, from, to time.Time) ([]domain.TimeBlock, error)
	Create(ctx context.Context, block *domain.TimeBlock) (*domain.TimeBlock, error)
	Update(ctx context.Context, block *domain.TimeBlock) error
	Delete(ctx context.Context, id string) error
}
