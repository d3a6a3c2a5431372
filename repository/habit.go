package repository

import (
	"context"

	"github.com/plandeck/backend/domain"
)

type HabitRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Habit, error)
	List(ctx context.Context, userID string, includeArchived bool) ([]domain.Habit, error)
	Create(ctx context.Context, habit *domain.Habit) (*domain.Habit, error)
	Archive(ctx context.Context, id string) error
	UpsertEntry(ctx context.Context, entry *domain.HabitEntry) error
	DeleteEntry(ctx context.Context, habitID, day string) error
	// ListEntries returns entries with from <= day <= to, ascending by day.
	ListEntries(ctx context.Context, habitID string, from, to string) ([]domain.HabitEntry, error)
}
