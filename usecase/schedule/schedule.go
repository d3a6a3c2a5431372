package schedule

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/plandeck/backend/domain"
	"github.com/plandeck/backend/repository"
)

type UseCase struct {
	blocks  repository.TimeBlockRepository
	tasks   repository.TaskRepository
	workday Workday
	logger  *zap.Logger
}

func New(blocks repository.TimeBlockRepository, tasks repository.TaskRepository, workday Workday, logger *zap.Logger) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	if workday.EndHour <= workday.StartHour {
		workday = Workday{StartHour: 9, EndHour: 18, Location: workday.Location}
	}
	return &UseCase{
		blocks:  blocks,
		tasks:   tasks,
		workday: workday,
		logger:  logger,
	}
}

func (uc *UseCase) ListBlocks(ctx context.Context, userID string, from, to time.Time) ([]domain.TimeBlock, error) {
	return uc.blocks.ListRange(ctx, userID, from, to)
}

// CreateBlock stores a block after rejecting collisions with the user's
// existing blocks.
func (uc *UseCase) CreateBlock(ctx context.Context, block *domain.TimeBlock) (*domain.TimeBlock, error) {
	if block == nil || !block.IsValid() {
		return nil, domain.ErrInvalidPayload
	}
	if err := uc.checkOverlap(ctx, block); err != nil {
		return nil, err
	}
	return uc.blocks.Create(ctx, block)
}

// UpdateBlock moves or resizes a block, keeping the no-overlap invariant.
func (uc *UseCase) UpdateBlock(ctx context.Context, block *domain.TimeBlock) (*domain.TimeBlock, error) {
	if block == nil || !block.IsValid() {
		return nil, domain.ErrInvalidPayload
	}
	if err := uc.checkOverlap(ctx, block); err != nil {
		return nil, err
	}
	if err := uc.blocks.Update(ctx, block); err != nil {
		return nil, err
	}
	return block, nil
}

func (uc *UseCase) DeleteBlock(ctx context.Context, id string) error {
	return uc.blocks.Delete(ctx, id)
}

// Workload reports the utilization of the day's working window.
func (uc *UseCase) Workload(ctx context.Context, userID string, day time.Time) (*Workload, error) {
	dayStart, dayEnd := uc.workday.Window(day)
	blocks, err := uc.blocks.ListRange(ctx, userID, dayStart, dayEnd)
	if err != nil {
		return nil, err
	}
	wl := computeWorkload(blocks, dayStart, dayEnd)
	return &wl, nil
}

// SuggestSlots proposes free slots of wantMinutes within the day, best
// first.
func (uc *UseCase) SuggestSlots(ctx context.Context, userID string, day time.Time, wantMinutes int) ([]SlotSuggestion, error) {
	if wantMinutes <= 0 {
		wantMinutes = 30
	}
	dayStart, dayEnd := uc.workday.Window(day)
	blocks, err := uc.blocks.ListRange(ctx, userID, dayStart, dayEnd)
	if err != nil {
		return nil, err
	}
	return suggestSlots(blocks, dayStart, dayEnd, wantMinutes), nil
}

// AutoSchedule places the user's pending tasks first-fit into the day's
// free gaps. Placed tasks move to in_progress; tasks that do not fit stay
// pending.
func (uc *UseCase) AutoSchedule(ctx context.Context, userID string, day time.Time) ([]domain.TimeBlock, error) {
	dayStart, dayEnd := uc.workday.Window(day)

	blocks, err := uc.blocks.ListRange(ctx, userID, dayStart, dayEnd)
	if err != nil {
		return nil, err
	}
	pending, err := uc.tasks.List(ctx, repository.TaskFilter{
		UserID: userID,
		Status: domain.TaskStatusPending,
	})
	if err != nil {
		return nil, err
	}

	var created []domain.TimeBlock
	for _, block := range fitTasks(pending, blocks, dayStart, dayEnd) {
		b := block
		stored, err := uc.blocks.Create(ctx, &b)
		if err != nil {
			uc.logger.Error("failed to create scheduled block", zap.Error(err))
			continue
		}
		created = append(created, *stored)

		if b.TaskID == nil {
			continue
		}
		task, err := uc.tasks.GetByID(ctx, *b.TaskID)
		if err != nil {
			continue
		}
		task.Status = domain.TaskStatusInProgress
		if err := uc.tasks.Update(ctx, task); err != nil {
			uc.logger.Warn("failed to mark task in progress", zap.String("task_id", task.ID), zap.Error(err))
		}
	}
	return created, nil
}

func (uc *UseCase) checkOverlap(ctx context.Context, block *domain.TimeBlock) error {
	existing, err := uc.blocks.ListRange(ctx, block.UserID, block.Start, block.End)
	if err != nil {
		return err
	}
	for i := range existing {
		if existing[i].ID == block.ID {
			continue
		}
		if existing[i].Overlaps(block) {
			return domain.ErrBlockOverlap
		}
	}
	return nil
}
