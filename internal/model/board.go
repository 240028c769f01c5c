package model

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidBoard    = errors.New("invalid board")
	ErrInvalidPosition = errors.New("invalid position")
)

// Board is a row-major grid of optional pieces. The zero value is an empty board.
type Board struct {
	grid [BoardSize]*Piece
}

// BoardState is the JSON view of a board, indexed [row][col].
type BoardState struct {
	Board [][]*Piece `json:"board"`
}

func isDarkSquare(pos Position) bool {
	return (pos.Row+pos.Col)%2 != 0
}

// NewBoard returns the starting layout: black men on the dark squares of
// rows 0-2, white men on the dark squares of rows 5-7.
func NewBoard() *Board {
	board := &Board{}
	for idx := 0; idx < BoardSize; idx++ {
		pos := PositionFromIndex(idx, BoardSide)
		if !isDarkSquare(pos) {
			continue
		}
		switch {
		case pos.Row <= 2:
			piece := NewPiece(PlayerBlack)
			board.grid[idx] = &piece
		case pos.Row >= 5:
			piece := NewPiece(PlayerWhite)
			board.grid[idx] = &piece
		}
	}
	return board
}

func EmptyBoard() *Board {
	return &Board{}
}

// BoardFromState builds a board from a client supplied layout.
func BoardFromState(state BoardState) (*Board, error) {
	if len(state.Board) != BoardSide {
		return nil, fmt.Errorf("%w: expected %d rows, got %d", ErrInvalidBoard, BoardSide, len(state.Board))
	}
	board := &Board{}
	for row, squares := range state.Board {
		if len(squares) != BoardSide {
			return nil, fmt.Errorf("%w: row %d has %d squares", ErrInvalidBoard, row, len(squares))
		}
		for col, piece := range squares {
			if piece == nil {
				continue
			}
			pos := NewPosition(row, col)
			if !piece.Player.Valid() {
				return nil, fmt.Errorf("%w: unknown player %q at %s", ErrInvalidBoard, piece.Player, pos)
			}
			if !isDarkSquare(pos) {
				return nil, fmt.Errorf("%w: piece on light square %s", ErrInvalidBoard, pos)
			}
			board.Set(pos, piece)
		}
	}
	return board, nil
}

func (b *Board) Get(pos Position) *Piece {
	if !pos.IsValid(BoardSide) {
		panic(fmt.Sprintf("attempted to access invalid position: row=%d, col=%d", pos.Row, pos.Col))
	}
	piece := b.grid[pos.ToIndex(BoardSide)]
	if piece == nil {
		return nil
	}
	p := *piece
	return &p
}

// Set places a copy of piece on pos, or clears the square when piece is nil.
func (b *Board) Set(pos Position, piece *Piece) {
	if !pos.IsValid(BoardSide) {
		panic(fmt.Sprintf("attempted to set invalid position: row=%d, col=%d", pos.Row, pos.Col))
	}
	idx := pos.ToIndex(BoardSide)
	if piece == nil {
		b.grid[idx] = nil
		return
	}
	p := *piece
	b.grid[idx] = &p
}

func (b *Board) Clone() *Board {
	clone := &Board{}
	for idx, piece := range b.grid {
		if piece != nil {
			p := *piece
			clone.grid[idx] = &p
		}
	}
	return clone
}

func (b *Board) Count(player Player) int {
	count := 0
	for _, piece := range b.grid {
		if piece != nil && piece.Player == player {
			count++
		}
	}
	return count
}

func (b *Board) State() BoardState {
	state := BoardState{Board: make([][]*Piece, BoardSide)}
	for row := 0; row < BoardSide; row++ {
		state.Board[row] = make([]*Piece, BoardSide)
		for col := 0; col < BoardSide; col++ {
			state.Board[row][col] = b.Get(NewPosition(row, col))
		}
	}
	return state
}

// RegularMoves lists the simple one-square steps from src. The boolean is
// false only when src is empty; an occupied but blocked square yields an
// empty slice.
func (b *Board) RegularMoves(src Position) ([]Move, bool) {
	piece := b.Get(src)
	if piece == nil {
		return nil, false
	}

	onlyForward := !piece.King
	moves := []Move{}
	for _, diag := range src.Diagonals(BoardSide) {
		if b.Get(diag) != nil {
			continue
		}
		if onlyForward && !piece.Player.IsForwardMove(src, diag) {
			continue
		}
		moves = append(moves, Move{Src: src, Stops: []Position{diag}})
	}
	return moves, true
}

// CaptureMoves lists every maximal capture line starting at src. The boolean
// is false when src is empty or no capture is available.
func (b *Board) CaptureMoves(src Position) ([]Move, bool) {
	piece := b.Get(src)
	if piece == nil {
		return nil, false
	}

	search := newCaptureSearch(b, piece.Player, piece.King)
	captures := search.findCaptures(src, nil, nil)
	if len(captures) == 0 {
		return nil, false
	}
	return captures, true
}
