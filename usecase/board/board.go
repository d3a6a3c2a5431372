package board

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/plandeck/backend/domain"
	"github.com/plandeck/backend/repository"
)

// Default column layout for new boards. The doing lane carries a WIP cap.
const (
	ColumnTodo  = "todo"
	ColumnDoing = "doing"
	ColumnDone  = "done"

	defaultDoingWIP = 3
)

type UseCase struct {
	boards repository.BoardRepository
	logger *zap.Logger
}

func New(boards repository.BoardRepository, logger *zap.Logger) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{
		boards: boards,
		logger: logger,
	}
}

func (uc *UseCase) GetBoard(ctx context.Context, id string) (*domain.Board, error) {
	return uc.boards.GetByID(ctx, id)
}

// BoardForUser returns the user's board, creating the default one on first
// access.
func (uc *UseCase) BoardForUser(ctx context.Context, userID string) (*domain.Board, error) {
	board, err := uc.boards.GetByUser(ctx, userID)
	if err == nil {
		return board, nil
	}
	if err != domain.ErrBoardNotFound {
		return nil, err
	}
	return uc.CreateBoard(ctx, userID, "My board")
}

func (uc *UseCase) CreateBoard(ctx context.Context, userID, name string) (*domain.Board, error) {
	board := &domain.Board{
		ID:     uuid.NewString(),
		UserID: userID,
		Name:   name,
		Columns: []domain.Column{
			{ID: ColumnTodo, Name: "To Do"},
			{ID: ColumnDoing, Name: "In Progress", WIPLimit: defaultDoingWIP},
			{ID: ColumnDone, Name: "Done"},
		},
	}
	board.Touch()
	if err := uc.boards.Save(ctx, board); err != nil {
		return nil, err
	}
	return board, nil
}

// MoveCard places the task into the destination column at position. The WIP
// check runs after removing the card from its source, so reordering inside
// a full column stays legal.
func (uc *UseCase) MoveCard(ctx context.Context, boardID, taskID, toColumnID string, position int) (*domain.Board, error) {
	if taskID == "" {
		return nil, domain.ErrInvalidPayload
	}

	board, err := uc.boards.GetByID(ctx, boardID)
	if err != nil {
		return nil, err
	}

	dest := board.Column(toColumnID)
	if dest == nil {
		return nil, domain.WrapError(domain.ErrCodeInvalid, "unknown column", nil)
	}

	if src := board.ColumnOf(taskID); src != nil {
		src.Remove(taskID)
	}
	if dest.AtLimit() {
		return nil, domain.ErrWIPLimitReached
	}
	dest.InsertAt(taskID, position)

	board.Touch()
	if err := uc.boards.Save(ctx, board); err != nil {
		return nil, err
	}
	return board, nil
}
