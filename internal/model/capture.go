package model

import "golang.org/x/exp/slices"

// captureSearch enumerates capture lines for one piece over a fixed board.
// Captures are hypothetical: jumped pieces stay on the board and are only
// excluded from being jumped again through the captured list. The capturing
// piece also stays on its origin, so no line can land there.
type captureSearch struct {
	board  *Board
	player Player
	king   bool
}

func newCaptureSearch(board *Board, player Player, king bool) *captureSearch {
	return &captureSearch{
		board:  board,
		player: player,
		king:   king,
	}
}

// findCaptures returns every maximal capture line reachable from current.
// path holds the squares visited before current and captured the squares
// jumped so far; neither is modified, each branch works on its own copy.
func (s *captureSearch) findCaptures(current Position, path, captured []Position) []Move {
	var moves []Move
	path = append(slices.Clone(path), current)

	for _, jumped := range current.Diagonals(BoardSide) {
		landing := current.offset(Position{Row: jumped.Row - current.Row, Col: jumped.Col - current.Col}, 2)
		if !s.isValidCapture(current, jumped, landing, captured) {
			continue
		}

		newCaptured := append(slices.Clone(captured), jumped)
		next := s.findCaptures(landing, path, newCaptured)
		if len(next) > 0 {
			moves = append(moves, next...)
			continue
		}

		stops := append(slices.Clone(path), landing)
		moves = append(moves, Move{Src: path[0], Stops: stops, Captures: newCaptured})
	}
	return moves
}

func (s *captureSearch) isValidCapture(current, jumped, landing Position, captured []Position) bool {
	if !landing.IsValid(BoardSide) {
		return false
	}
	jumpedPiece := s.board.Get(jumped)
	if jumpedPiece == nil || jumpedPiece.Player == s.player {
		return false
	}
	if s.board.Get(landing) != nil {
		return false
	}
	if !s.king && !s.player.IsForwardMove(current, landing) {
		return false
	}
	return !slices.Contains(captured, jumped)
}
