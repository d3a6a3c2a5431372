package postgres

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/plandeck/backend/domain"
	"github.com/plandeck/backend/repository"
)

type boardRepository struct {
	pool *pgxpool.Pool
}

// NewBoardRepository returns a Postgres-backed implementation of BoardRepository.
// Columns and card order are stored as a jsonb document.
func NewBoardRepository(pool *pgxpool.Pool) repository.BoardRepository {
	return &boardRepository{pool: pool}
}

func (r *boardRepository) GetByID(ctx context.Context, id string) (*domain.Board, error) {
	const query = `
	SELECT id, user_id, name, columns, created_at, updated_at
	FROM boards
	WHERE id = $1
	`
	return scanBoard(r.pool.QueryRow(ctx, query, id))
}

func (r *boardRepository) GetByUser(ctx context.Context, userID string) (*domain.Board, error) {
	const query = `
	SELECT id, user_id, name, columns, created_at, updated_at
	FROM boards
	WHERE user_id = $1
	ORDER BY created_at ASC
	LIMIT 1
	`
	return scanBoard(r.pool.QueryRow(ctx, query, userID))
}

func (r *boardRepository) Save(ctx context.Context, board *domain.Board) error {
	if board == nil {
		return domain.ErrInvalidPayload
	}
	if board.ID == "" {
		board.ID = uuid.NewString()
	}

	const query = `
	INSERT INTO boards (id, user_id, name, columns)
	VALUES ($1, $2, $3, $4)
	ON CONFLICT (id) DO UPDATE
	SET name = EXCLUDED.name,
		columns = EXCLUDED.columns,
		updated_at = NOW()
	RETURNING created_at, updated_at
	`
	return r.pool.QueryRow(ctx, query,
		board.ID, board.UserID, board.Name, marshalJSON(board.Columns),
	).Scan(&board.CreatedAt, &board.UpdatedAt)
}

func scanBoard(row interface {
	Scan(dest ...interface{}) error
}) (*domain.Board, error) {
	var board domain.Board
	var columns []byte

	if err := row.Scan(
		&board.ID, &board.UserID, &board.Name, &columns, &board.CreatedAt, &board.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrBoardNotFound
		}
		return nil, err
	}

	if len(columns) > 0 {
		_ = json.Unmarshal(columns, &board.Columns)
	}
	return &board, nil
}
