package board

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plandeck/backend/domain"
)

type memBoards struct {
	byID map[string]*domain.Board
}

func newMemBoards() *memBoards {
	return &memBoards{byID: make(map[string]*domain.Board)}
}

func cloneBoard(b *domain.Board) *domain.Board {
	clone := *b
	clone.Columns = make([]domain.Column, len(b.Columns))
	copy(clone.Columns, b.Columns)
	for i := range clone.Columns {
		clone.Columns[i].TaskIDs = append([]string(nil), b.Columns[i].TaskIDs...)
	}
	return &clone
}

func (m *memBoards) GetByID(_ context.Context, id string) (*domain.Board, error) {
	board, ok := m.byID[id]
	if !ok {
		return nil, domain.ErrBoardNotFound
	}
	return cloneBoard(board), nil
}

func (m *memBoards) GetByUser(_ context.Context, userID string) (*domain.Board, error) {
	for _, board := range m.byID {
		if board.UserID == userID {
			return cloneBoard(board), nil
		}
	}
	return nil, domain.ErrBoardNotFound
}

func (m *memBoards) Save(_ context.Context, board *domain.Board) error {
	m.byID[board.ID] = cloneBoard(board)
	return nil
}

func TestBoardForUserCreatesDefault(t *testing.T) {
	uc := New(newMemBoards(), nil)

	board, err := uc.BoardForUser(context.Background(), "u1")

	require.NoError(t, err)
	require.Len(t, board.Columns, 3)
	assert.Equal(t, ColumnTodo, board.Columns[0].ID)
	assert.Equal(t, defaultDoingWIP, board.Columns[1].WIPLimit)
	assert.Zero(t, board.Columns[2].WIPLimit)
}

func TestMoveCardBetweenColumns(t *testing.T) {
	repo := newMemBoards()
	uc := New(repo, nil)
	board, err := uc.CreateBoard(context.Background(), "u1", "work")
	require.NoError(t, err)

	_, err = uc.MoveCard(context.Background(), board.ID, "t1", ColumnTodo, 0)
	require.NoError(t, err)
	updated, err := uc.MoveCard(context.Background(), board.ID, "t1", ColumnDoing, 0)
	require.NoError(t, err)

	assert.Empty(t, updated.Column(ColumnTodo).TaskIDs)
	assert.Equal(t, []string{"t1"}, updated.Column(ColumnDoing).TaskIDs)
}

func TestMoveCardRespectsWIPLimit(t *testing.T) {
	repo := newMemBoards()
	uc := New(repo, nil)
	board, err := uc.CreateBoard(context.Background(), "u1", "work")
	require.NoError(t, err)

	for _, id := range []string{"t1", "t2", "t3"} {
		_, err = uc.MoveCard(context.Background(), board.ID, id, ColumnDoing, 0)
		require.NoError(t, err)
	}

	_, err = uc.MoveCard(context.Background(), board.ID, "t4", ColumnDoing, 0)
	assert.ErrorIs(t, err, domain.ErrWIPLimitReached)

	// The rejected move must not leave the board mutated.
	stored, err := uc.GetBoard(context.Background(), board.ID)
	require.NoError(t, err)
	assert.Len(t, stored.Column(ColumnDoing).TaskIDs, 3)
}

func TestReorderWithinFullColumn(t *testing.T) {
	repo := newMemBoards()
	uc := New(repo, nil)
	board, err := uc.CreateBoard(context.Background(), "u1", "work")
	require.NoError(t, err)

	for _, id := range []string{"t1", "t2", "t3"} {
		_, err = uc.MoveCard(context.Background(), board.ID, id, ColumnDoing, len(board.Columns))
		require.NoError(t, err)
	}

	// Moving a card inside the full doing column is still allowed.
	updated, err := uc.MoveCard(context.Background(), board.ID, "t3", ColumnDoing, 0)
	require.NoError(t, err)
	assert.Equal(t, []string{"t3", "t1", "t2"}, updated.Column(ColumnDoing).TaskIDs)
}

func TestMoveCardUnknownColumn(t *testing.T) {
	repo := newMemBoards()
	uc := New(repo, nil)
	board, err := uc.CreateBoard(context.Background(), "u1", "work")
	require.NoError(t, err)

	_, err = uc.MoveCard(context.Background(), board.ID, "t1", "review", 0)
	assert.True(t, domain.IsDomainError(err, domain.ErrCodeInvalid))
}
