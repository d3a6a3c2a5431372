package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/plandeck/backend/domain"
	"github.com/plandeck/backend/repository"
)

type timeBlockRepository struct {
	pool *pgxpool.Pool
}

// NewTimeBlockRepository returns a Postgres-backed implementation of TimeBlockRepository.
func NewTimeBlockRepository(pool *pgxpool.Pool) repository.TimeBlockRepository {
	return &timeBlockRepository{pool: pool}
}

func (r *timeBlockRepository) GetByID(ctx context.Context, id string) (*domain.TimeBlock, error) {
	const query = `
	SELECT id, user_id, task_id, title, start_at, end_at, created_at, updated_at
	FROM time_blocks
	WHERE id = $1
	`
	var block domain.TimeBlock
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&block.ID, &block.UserID, &block.TaskID, &block.Title,
		&block.Start, &block.End, &block.CreatedAt, &block.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrBlockNotFound
		}
		return nil, err
	}
	return &block, nil
}

func (r *timeBlockRepository) ListRange(ctx context.Context, userID string, from, to time.Time) ([]domain.TimeBlock, error) {
	const query = `
	SELECT id, user_id, task_id, title, start_at, end_at, created_at, updated_at
	FROM time_blocks
	WHERE user_id = $1
	  AND start_at < $3
	  AND end_at > $2
	ORDER BY start_at ASC
	`
	rows, err := r.pool.Query(ctx, query, userID, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var blocks []domain.TimeBlock
	for rows.Next() {
		var block domain.TimeBlock
		if err := rows.Scan(
			&block.ID, &block.UserID, &block.TaskID, &block.Title,
			&block.Start, &block.End, &block.CreatedAt, &block.UpdatedAt,
		); err != nil {
			return nil, err
		}
		blocks = append(blocks, block)
	}
	return blocks, rows.Err()
}

func (r *timeBlockRepository) Create(ctx context.Context, block *domain.TimeBlock) (*domain.TimeBlock, error) {
	if block == nil || !block.IsValid() {
		return nil, domain.ErrInvalidPayload
	}
	if block.ID == "" {
		block.ID = uuid.NewString()
	}

	const query = `
	INSERT INTO time_blocks (id, user_id, task_id, title, start_at, end_at)
	VALUES ($1, $2, $3, $4, $5, $6)
	RETURNING created_at, updated_at
	`
	if err := r.pool.QueryRow(ctx, query,
		block.ID, block.UserID, block.TaskID, block.Title, block.Start, block.End,
	).Scan(&block.CreatedAt, &block.UpdatedAt); err != nil {
		return nil, err
	}
	return block, nil
}

func (r *timeBlockRepository) Update(ctx context.Context, block *domain.TimeBlock) error {
	if block == nil || !block.IsValid() {
		return domain.ErrInvalidPayload
	}

	const query = `
	UPDATE time_blocks
	SET task_id = $2,
		title = $3,
		start_at = $4,
		end_at = $5,
		updated_at = NOW()
	WHERE id = $1
	RETURNING updated_at
	`
	if err := r.pool.QueryRow(ctx, query,
		block.ID, block.TaskID, block.Title, block.Start, block.End,
	).Scan(&block.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrBlockNotFound
		}
		return err
	}
	return nil
}

func (r *timeBlockRepository) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM time_blocks WHERE id = $1`
	tag, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrBlockNotFound
	}
	return nil
}
