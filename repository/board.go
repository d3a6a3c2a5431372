package repository

import (
	"context"

	"github.com/plandeck/backend/domain"
)

type BoardRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Board, error)
	GetByUser(ctx context.Context, userID string) (*domain.Board, error)
	Save(ctx context.Context, board *domain.Board) error
}
