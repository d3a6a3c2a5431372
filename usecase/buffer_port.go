package usecase

import (
	"context"

	"github.com/plandeck/backend/domain"
)

// Buffered operation names shared with the offline buffer.
const (
	OperationCreate = "create"
	OperationUpdate = "update"
	OperationDelete = "delete"
)

// OperationBuffer abstracts the buffer processor so use cases stay storage-agnostic.
type OperationBuffer interface {
	BufferProfile(ctx context.Context, operation string, user *domain.User) error
	BufferTask(ctx context.Context, operation string, task *domain.Task) error
	BufferHabitEntry(ctx context.Context, operation string, entry *domain.HabitEntry) error
}
