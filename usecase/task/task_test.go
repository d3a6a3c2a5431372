package task

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plandeck/backend/domain"
	"github.com/plandeck/backend/repository"
)

type memTasks struct {
	byID map[string]*domain.Task
	seq  int
}

func newMemTasks() *memTasks {
	return &memTasks{byID: make(map[string]*domain.Task)}
}

func (m *memTasks) GetByID(_ context.Context, id string) (*domain.Task, error) {
	task, ok := m.byID[id]
	if !ok {
		return nil, domain.ErrTaskNotFound
	}
	clone := *task
	return &clone, nil
}

func (m *memTasks) List(_ context.Context, filter repository.TaskFilter) ([]domain.Task, error) {
	var tasks []domain.Task
	for _, task := range m.byID {
		if filter.UserID != "" && task.UserID != filter.UserID {
			continue
		}
		if filter.Status != "" && task.Status != filter.Status {
			continue
		}
		if filter.ParentID != "" && (task.ParentID == nil || *task.ParentID != filter.ParentID) {
			continue
		}
		tasks = append(tasks, *task)
	}
	return tasks, nil
}

func (m *memTasks) Create(_ context.Context, task *domain.Task) (*domain.Task, error) {
	if task.ID == "" {
		m.seq++
		task.ID = string(rune('a' + m.seq))
	}
	clone := *task
	m.byID[task.ID] = &clone
	return task, nil
}

func (m *memTasks) Update(_ context.Context, task *domain.Task) error {
	if _, ok := m.byID[task.ID]; !ok {
		return domain.ErrTaskNotFound
	}
	clone := *task
	m.byID[task.ID] = &clone
	return nil
}

func (m *memTasks) Delete(_ context.Context, id string) error {
	if _, ok := m.byID[id]; !ok {
		return domain.ErrTaskNotFound
	}
	delete(m.byID, id)
	return nil
}

func TestQuickAdd(t *testing.T) {
	repo := newMemTasks()
	uc := New(repo, nil, nil)
	uc.now = func() time.Time { return time.Date(2026, 3, 10, 8, 0, 0, 0, time.UTC) }

	created, err := uc.QuickAdd(context.Background(), "u1", "Buy milk tomorrow at 5pm")

	require.NoError(t, err)
	assert.Equal(t, "Buy milk", created.Title)
	assert.Equal(t, "u1", created.UserID)
	assert.Equal(t, domain.TaskStatusPending, created.Status)
	assert.Equal(t, "shopping", created.Category)
	require.NotNil(t, created.DueDate)
	assert.Equal(t, time.Date(2026, 3, 11, 17, 0, 0, 0, time.UTC), *created.DueDate)
}

func TestQuickAddEmptyTitle(t *testing.T) {
	uc := New(newMemTasks(), nil, nil)

	_, err := uc.QuickAdd(context.Background(), "u1", "   ")
	assert.ErrorIs(t, err, domain.ErrInvalidPayload)
}

func TestCompleteTaskBlockedByDependency(t *testing.T) {
	repo := newMemTasks()
	uc := New(repo, nil, nil)

	dep, err := uc.CreateTask(context.Background(), &domain.Task{UserID: "u1", Title: "dep", Status: domain.TaskStatusPending})
	require.NoError(t, err)
	task, err := uc.CreateTask(context.Background(), &domain.Task{
		UserID: "u1", Title: "main", Status: domain.TaskStatusPending, DependsOn: []string{dep.ID},
	})
	require.NoError(t, err)

	_, err = uc.CompleteTask(context.Background(), task.ID)
	assert.ErrorIs(t, err, domain.ErrDependencyOpen)

	_, err = uc.CompleteTask(context.Background(), dep.ID)
	require.NoError(t, err)
	completed, err := uc.CompleteTask(context.Background(), task.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.TaskStatusCompleted, completed.Status)
}

func TestCompleteRecurringTaskSpawnsNext(t *testing.T) {
	repo := newMemTasks()
	uc := New(repo, nil, nil)

	due := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	task, err := uc.CreateTask(context.Background(), &domain.Task{
		UserID:     "u1",
		Title:      "water plants",
		Status:     domain.TaskStatusPending,
		DueDate:    &due,
		Recurrence: &domain.Recurrence{Freq: domain.RecurWeekly, Interval: 1},
	})
	require.NoError(t, err)

	_, err = uc.CompleteTask(context.Background(), task.ID)
	require.NoError(t, err)

	pending, err := uc.ListTasks(context.Background(), repository.TaskFilter{
		UserID: "u1",
		Status: domain.TaskStatusPending,
	})
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, "water plants", pending[0].Title)
	require.NotNil(t, pending[0].DueDate)
	assert.Equal(t, due.AddDate(0, 0, 7), *pending[0].DueDate)

	// Completing again must not spawn another occurrence.
	_, err = uc.CompleteTask(context.Background(), task.ID)
	require.NoError(t, err)
	pending, err = uc.ListTasks(context.Background(), repository.TaskFilter{
		UserID: "u1",
		Status: domain.TaskStatusPending,
	})
	require.NoError(t, err)
	assert.Len(t, pending, 1)
}

func TestSubtasks(t *testing.T) {
	repo := newMemTasks()
	uc := New(repo, nil, nil)

	parent, err := uc.CreateTask(context.Background(), &domain.Task{UserID: "u1", Title: "project", Status: domain.TaskStatusPending})
	require.NoError(t, err)
	parentID := parent.ID
	_, err = uc.CreateTask(context.Background(), &domain.Task{
		UserID: "u1", Title: "step one", Status: domain.TaskStatusPending, ParentID: &parentID,
	})
	require.NoError(t, err)

	children, err := uc.Subtasks(context.Background(), parent.ID)
	require.NoError(t, err)
	require.Len(t, children, 1)
	assert.Equal(t, "step one", children[0].Title)
}
