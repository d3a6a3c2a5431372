package task

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/plandeck/backend/domain"
	"github.com/plandeck/backend/internal/nlparse"
	"github.com/plandeck/backend/repository"
	"github.com/plandeck/backend/usecase"
)

type UseCase struct {
	tasks  repository.TaskRepository
	buffer usecase.OperationBuffer
	logger *zap.Logger
	now    func() time.Time
}

func New(tasks repository.TaskRepository, buffer usecase.OperationBuffer, logger *zap.Logger) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{
		tasks:  tasks,
		buffer: buffer,
		logger: logger,
		now:    time.Now,
	}
}

func (uc *UseCase) ListTasks(ctx context.Context, filter repository.TaskFilter) ([]domain.Task, error) {
	return uc.tasks.List(ctx, filter)
}

func (uc *UseCase) GetTask(ctx context.Context, id string) (*domain.Task, error) {
	return uc.tasks.GetByID(ctx, id)
}

// Subtasks lists the direct children of a task.
func (uc *UseCase) Subtasks(ctx context.Context, parentID string) ([]domain.Task, error) {
	return uc.tasks.List(ctx, repository.TaskFilter{ParentID: parentID})
}

func (uc *UseCase) CreateTask(ctx context.Context, task *domain.Task) (*domain.Task, error) {
	created, err := uc.tasks.Create(ctx, task)
	if err != nil {
		if uc.shouldBuffer(ctx, usecase.OperationCreate, task) {
			return task, nil
		}
		return nil, err
	}
	return created, nil
}

// QuickAdd parses free text into a task for the user and stores it.
func (uc *UseCase) QuickAdd(ctx context.Context, userID, text string) (*domain.Task, error) {
	parsed := nlparse.Parse(text, uc.now())
	if parsed.Title == "" {
		return nil, domain.ErrInvalidPayload
	}
	return uc.CreateTask(ctx, parsed.Materialize(userID))
}

func (uc *UseCase) UpdateTask(ctx context.Context, task *domain.Task) (*domain.Task, error) {
	if err := uc.tasks.Update(ctx, task); err != nil {
		if uc.shouldBuffer(ctx, usecase.OperationUpdate, task) {
			return task, nil
		}
		return nil, err
	}
	return task, nil
}

// CompleteTask marks the task completed. Tasks with incomplete dependencies
// are rejected; completing an already completed task is a no-op so a
// recurring task never spawns twice. When a recurring task completes, the
// next occurrence is created with the due date advanced by the pattern.
func (uc *UseCase) CompleteTask(ctx context.Context, id string) (*domain.Task, error) {
	task, err := uc.tasks.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if task.IsCompleted() {
		return task, nil
	}

	for _, depID := range task.DependsOn {
		dep, err := uc.tasks.GetByID(ctx, depID)
		if err != nil {
			if err == domain.ErrTaskNotFound {
				continue
			}
			return nil, err
		}
		if !dep.IsCompleted() {
			return nil, domain.ErrDependencyOpen
		}
	}

	task.Status = domain.TaskStatusCompleted
	if err := uc.tasks.Update(ctx, task); err != nil {
		if !uc.shouldBuffer(ctx, usecase.OperationUpdate, task) {
			return nil, err
		}
	}

	if next := task.NextOccurrence(); next != nil {
		if _, err := uc.tasks.Create(ctx, next); err != nil {
			if !uc.shouldBuffer(ctx, usecase.OperationCreate, next) {
				uc.logger.Error("failed to spawn recurring task", zap.String("task_id", task.ID), zap.Error(err))
			}
		}
	}

	return task, nil
}

func (uc *UseCase) DeleteTask(ctx context.Context, id string) error {
	if err := uc.tasks.Delete(ctx, id); err != nil {
		if err == domain.ErrTaskNotFound {
			return err
		}
		task := &domain.Task{ID: id}
		if uc.shouldBuffer(ctx, usecase.OperationDelete, task) {
			return nil
		}
		return err
	}
	return nil
}

func (uc *UseCase) shouldBuffer(ctx context.Context, operation string, task *domain.Task) bool {
	if uc.buffer == nil {
		return false
	}
	if err := uc.buffer.BufferTask(ctx, operation, task); err != nil {
		uc.logger.Error("failed to buffer task operation", zap.String("operation", operation), zap.Error(err))
		return false
	}
	uc.logger.Warn("task operation buffered", zap.String("operation", operation))
	return true
}
