package habit

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/plandeck/backend/domain"
	"github.com/plandeck/backend/repository"
	"github.com/plandeck/backend/usecase"
)

type UseCase struct {
	habits repository.HabitRepository
	cache  repository.AnalyticsCache
	buffer usecase.OperationBuffer
	logger *zap.Logger
	now    func() time.Time
}

func New(habits repository.HabitRepository, cache repository.AnalyticsCache, buffer usecase.OperationBuffer, logger *zap.Logger) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{
		habits: habits,
		cache:  cache,
		buffer: buffer,
		logger: logger,
		now:    time.Now,
	}
}

func (uc *UseCase) CreateHabit(ctx context.Context, userID, name string) (*domain.Habit, error) {
	if name == "" {
		return nil, domain.ErrInvalidPayload
	}
	return uc.habits.Create(ctx, &domain.Habit{UserID: userID, Name: name})
}

func (uc *UseCase) ListHabits(ctx context.Context, userID string, includeArchived bool) ([]domain.Habit, error) {
	return uc.habits.List(ctx, userID, includeArchived)
}

func (uc *UseCase) ArchiveHabit(ctx context.Context, id string) error {
	if err := uc.habits.Archive(ctx, id); err != nil {
		return err
	}
	uc.invalidate(ctx, id)
	return nil
}

// CheckOff records the habit as done for the given day (today when empty).
// Checking off the same day twice only updates the note.
func (uc *UseCase) CheckOff(ctx context.Context, habitID, day, note string) (*domain.HabitEntry, error) {
	habit, err := uc.habits.GetByID(ctx, habitID)
	if err != nil {
		return nil, err
	}
	if habit.IsArchived() {
		return nil, domain.ErrHabitArchived
	}

	if day == "" {
		day = domain.DayKey(uc.now())
	} else if _, err := domain.ParseDay(day); err != nil {
		return nil, domain.WrapError(domain.ErrCodeInvalid, "invalid day", err)
	}

	entry := &domain.HabitEntry{HabitID: habitID, Day: day, Note: note}
	if err := uc.habits.UpsertEntry(ctx, entry); err != nil {
		if !uc.shouldBuffer(ctx, usecase.OperationCreate, entry) {
			return nil, err
		}
	}

	uc.invalidate(ctx, habitID)
	return entry, nil
}

// Uncheck removes the day's entry, e.g. an accidental check-off.
func (uc *UseCase) Uncheck(ctx context.Context, habitID, day string) error {
	if err := uc.habits.DeleteEntry(ctx, habitID, day); err != nil {
		entry := &domain.HabitEntry{HabitID: habitID, Day: day}
		if !uc.shouldBuffer(ctx, usecase.OperationDelete, entry) {
			return err
		}
	}
	uc.invalidate(ctx, habitID)
	return nil
}

// Analytics returns the habit's aggregated statistics, served from the
// snapshot cache when fresh.
func (uc *UseCase) Analytics(ctx context.Context, habitID string) (*domain.HabitAnalytics, error) {
	if uc.cache != nil {
		if cached, err := uc.cache.Get(ctx, habitID); err == nil && cached != nil {
			return cached, nil
		} else if err != nil {
			uc.logger.Warn("analytics cache read failed", zap.Error(err))
		}
	}

	if _, err := uc.habits.GetByID(ctx, habitID); err != nil {
		return nil, err
	}

	asOf := uc.now()
	from := domain.DayKey(asOf.AddDate(-1, 0, 0))
	entries, err := uc.habits.ListEntries(ctx, habitID, from, domain.DayKey(asOf))
	if err != nil {
		return nil, err
	}

	analytics := computeAnalytics(habitID, entries, asOf)
	if uc.cache != nil {
		if err := uc.cache.Put(ctx, analytics); err != nil {
			uc.logger.Warn("analytics cache write failed", zap.Error(err))
		}
	}
	return analytics, nil
}

func (uc *UseCase) invalidate(ctx context.Context, habitID string) {
	if uc.cache == nil {
		return
	}
	if err := uc.cache.Invalidate(ctx, habitID); err != nil {
		uc.logger.Warn("analytics cache invalidation failed", zap.String("habit_id", habitID), zap.Error(err))
	}
}

func (uc *UseCase) shouldBuffer(ctx context.Context, operation string, entry *domain.HabitEntry) bool {
	if uc.buffer == nil {
		return false
	}
	if err := uc.buffer.BufferHabitEntry(ctx, operation, entry); err != nil {
		uc.logger.Error("failed to buffer habit entry", zap.String("operation", operation), zap.Error(err))
		return false
	}
	uc.logger.Warn("habit entry buffered", zap.String("operation", operation))
	return true
}
