package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/plandeck/backend/domain"
	"github.com/plandeck/backend/repository"
)

type habitRepository struct {
	pool *pgxpool.Pool
}

// NewHabitRepository returns a Postgres-backed implementation of HabitRepository.
func NewHabitRepository(pool *pgxpool.Pool) repository.HabitRepository {
	return &habitRepository{pool: pool}
}

func (r *habitRepository) GetByID(ctx context.Context, id string) (*domain.Habit, error) {
	const query = `
	SELECT id, user_id, name, created_at, archived_at
	FROM habits
	WHERE id = $1
	`
	var habit domain.Habit
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&habit.ID, &habit.UserID, &habit.Name, &habit.CreatedAt, &habit.ArchivedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrHabitNotFound
		}
		return nil, err
	}
	return &habit, nil
}

func (r *habitRepository) List(ctx context.Context, userID string, includeArchived bool) ([]domain.Habit, error) {
	const query = `
	SELECT id, user_id, name, created_at, archived_at
	FROM habits
	WHERE user_id = $1
	  AND ($2 OR archived_at IS NULL)
	ORDER BY created_at ASC
	`
	rows, err := r.pool.Query(ctx, query, userID, includeArchived)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var habits []domain.Habit
	for rows.Next() {
		var habit domain.Habit
		if err := rows.Scan(&habit.ID, &habit.UserID, &habit.Name, &habit.CreatedAt, &habit.ArchivedAt); err != nil {
			return nil, err
		}
		habits = append(habits, habit)
	}
	return habits, rows.Err()
}

func (r *habitRepository) Create(ctx context.Context, habit *domain.Habit) (*domain.Habit, error) {
	if habit == nil {
		return nil, domain.ErrInvalidPayload
	}
	if habit.ID == "" {
		habit.ID = uuid.NewString()
	}

	const query = `
	INSERT INTO habits (id, user_id, name)
	VALUES ($1, $2, $3)
	RETURNING created_at
	`
	if err := r.pool.QueryRow(ctx, query, habit.ID, habit.UserID, habit.Name).Scan(&habit.CreatedAt); err != nil {
		return nil, err
	}
	return habit, nil
}

func (r *habitRepository) Archive(ctx context.Context, id string) error {
	const query = `
	UPDATE habits SET archived_at = NOW()
	WHERE id = $1 AND archived_at IS NULL
	`
	tag, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrHabitNotFound
	}
	return nil
}

func (r *habitRepository) UpsertEntry(ctx context.Context, entry *domain.HabitEntry) error {
	if entry == nil || entry.HabitID == "" || entry.Day == "" {
		return domain.ErrInvalidPayload
	}

	const query = `
	INSERT INTO habit_entries (habit_id, day, note)
	VALUES ($1, $2, $3)
	ON CONFLICT (habit_id, day) DO UPDATE
	SET note = EXCLUDED.note
	RETURNING created_at
	`
	return r.pool.QueryRow(ctx, query, entry.HabitID, entry.Day, entry.Note).Scan(&entry.CreatedAt)
}

func (r *habitRepository) DeleteEntry(ctx context.Context, habitID, day string) error {
	const query = `DELETE FROM habit_entries WHERE habit_id = $1 AND day = $2`
	_, err := r.pool.Exec(ctx, query, habitID, day)
	return err
}

func (r *habitRepository) ListEntries(ctx context.Context, habitID string, from, to string) ([]domain.HabitEntry, error) {
	const query = `
	SELECT habit_id, day, note, created_at
	FROM habit_entries
	WHERE habit_id = $1
	  AND ($2 = '' OR day >= $2)
	  AND ($3 = '' OR day <= $3)
	ORDER BY day ASC
	`
	rows, err := r.pool.Query(ctx, query, habitID, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []domain.HabitEntry
	for rows.Next() {
		var entry domain.HabitEntry
		if err := rows.Scan(&entry.HabitID, &entry.Day, &entry.Note, &entry.CreatedAt); err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}
