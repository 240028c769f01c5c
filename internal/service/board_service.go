package service

import (
	"fmt"

	"github.com/benbeisheim/checkers-backend/internal/model"
	"github.com/benbeisheim/checkers-backend/internal/ws"
	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"
)

type Layout string

const (
	LayoutStandard Layout = "standard"
	LayoutEmpty    Layout = "empty"
)

// CreateBoardRequest picks a preset layout or supplies a full board. Board
// wins when both are set; an empty request means the standard layout.
type CreateBoardRequest struct {
	Layout Layout            `json:"layout"`
	Board  *model.BoardState `json:"board"`
}

type BoardService struct {
	boardManager *BoardManager
}

func NewBoardService(boardManager *BoardManager) *BoardService {
	return &BoardService{
		boardManager: boardManager,
	}
}

func buildBoard(req CreateBoardRequest) (*model.Board, error) {
	if req.Board != nil {
		return model.BoardFromState(*req.Board)
	}
	switch req.Layout {
	case "", LayoutStandard:
		return model.NewBoard(), nil
	case LayoutEmpty:
		return model.EmptyBoard(), nil
	}
	return nil, fmt.Errorf("%w: unknown layout %q", model.ErrInvalidBoard, req.Layout)
}

func (bs *BoardService) CreateBoard(req CreateBoardRequest) (string, error) {
	board, err := buildBoard(req)
	if err != nil {
		return "", err
	}

	boardID := uuid.New().String()
	if err := bs.boardManager.CreateBoard(boardID, board); err != nil {
		return "", fmt.Errorf("failed to create board: %w", err)
	}

	return boardID, nil
}

func (bs *BoardService) HasBoard(boardID string) bool {
	_, err := bs.boardManager.GetBoard(boardID)
	return err == nil
}

func (bs *BoardService) GetBoardState(boardID string) (model.SessionState, error) {
	session, err := bs.boardManager.GetBoard(boardID)
	if err != nil {
		return model.SessionState{}, err
	}
	return session.State(), nil
}

func (bs *BoardService) ResetBoard(boardID string, req CreateBoardRequest) error {
	session, err := bs.boardManager.GetBoard(boardID)
	if err != nil {
		return err
	}
	board, err := buildBoard(req)
	if err != nil {
		return err
	}
	session.Reset(board)
	return nil
}

func (bs *BoardService) SetSquare(boardID string, req model.SetSquareRequest) error {
	session, err := bs.boardManager.GetBoard(boardID)
	if err != nil {
		return err
	}
	if err := session.SetSquare(req.Position, req.Piece); err != nil {
		return fmt.Errorf("failed to set square: %w", err)
	}
	return nil
}

func (bs *BoardService) GetMoves(boardID string, pos model.Position) (model.SquareMoves, error) {
	session, err := bs.boardManager.GetBoard(boardID)
	if err != nil {
		return model.SquareMoves{}, err
	}
	moves, err := session.Moves(pos)
	if err != nil {
		return model.SquareMoves{}, fmt.Errorf("failed to get moves: %w", err)
	}
	return moves, nil
}

func (bs *BoardService) DeleteBoard(boardID string) error {
	return bs.boardManager.DeleteBoard(boardID)
}

func (bs *BoardService) RegisterConnection(boardID string, clientID string, conn *websocket.Conn) error {
	return bs.boardManager.RegisterConnection(boardID, clientID, conn)
}

func (bs *BoardService) UnregisterConnection(boardID string, clientID string, conn *websocket.Conn) {
	bs.boardManager.UnregisterConnection(boardID, clientID, conn)
}

// Send replies to a single observer of boardID
func (bs *BoardService) Send(boardID string, conn *websocket.Conn, msg ws.Message) error {
	session, err := bs.boardManager.GetBoard(boardID)
	if err != nil {
		return err
	}
	return session.Send(conn, msg)
}
