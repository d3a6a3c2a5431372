package buffer

import (
	"encoding/json"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "buffer.db"), "buffer")
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestEnqueueAndBatchOrder(t *testing.T) {
	store := openTestStore(t)

	low := Item{Entity: EntityTask, Operation: OperationCreate, Priority: 5, Data: json.RawMessage(`{"id":"low"}`)}
	high := Item{Entity: EntityTask, Operation: OperationCreate, Priority: 1, Data: json.RawMessage(`{"id":"high"}`)}
	require.NoError(t, store.Enqueue(low))
	require.NoError(t, store.Enqueue(high))

	items, err := store.GetBatch(10)
	require.NoError(t, err)
	require.Len(t, items, 2)
	// Keys are priority-prefixed, so the lower number drains first.
	assert.Equal(t, 1, items[0].Priority)
	assert.Equal(t, 5, items[1].Priority)

	size, err := store.Size()
	require.NoError(t, err)
	assert.Equal(t, 2, size)
}

func TestRemoveAndRequeue(t *testing.T) {
	store := openTestStore(t)

	require.NoError(t, store.Enqueue(Item{Entity: EntityHabitEntry, Operation: OperationCreate, Data: json.RawMessage(`{}`)}))

	items, err := store.GetBatch(1)
	require.NoError(t, err)
	require.Len(t, items, 1)

	require.NoError(t, store.Remove(items[0]))
	size, err := store.Size()
	require.NoError(t, err)
	assert.Zero(t, size)

	require.NoError(t, store.Requeue(items[0]))
	size, err = store.Size()
	require.NoError(t, err)
	assert.Equal(t, 1, size)
}

func TestCleanupDropsOldItems(t *testing.T) {
	store := openTestStore(t)

	stale := Item{Entity: EntityTask, Operation: OperationDelete, Timestamp: time.Now().Add(-48 * time.Hour), Data: json.RawMessage(`{}`)}
	fresh := Item{Entity: EntityTask, Operation: OperationCreate, Data: json.RawMessage(`{}`)}
	require.NoError(t, store.Enqueue(stale))
	require.NoError(t, store.Enqueue(fresh))

	require.NoError(t, store.Cleanup(time.Now().Add(-24*time.Hour)))

	size, err := store.Size()
	require.NoError(t, err)
	assert.Equal(t, 1, size)
}
