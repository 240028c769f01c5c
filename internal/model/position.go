package model

import "fmt"

const (
	BoardSide = 8
	BoardSize = BoardSide * BoardSide
)

type Position struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// diagonal offsets in enumeration order: top-left, top-right, bottom-left, bottom-right
var diagonalOffsets = [4]Position{
	{Row: -1, Col: -1},
	{Row: -1, Col: 1},
	{Row: 1, Col: -1},
	{Row: 1, Col: 1},
}

func NewPosition(row, col int) Position {
	return Position{Row: row, Col: col}
}

func PositionFromIndex(idx, side int) Position {
	return Position{Row: idx / side, Col: idx % side}
}

func (p Position) ToIndex(side int) int {
	return p.Row*side + p.Col
}

func (p Position) IsValid(side int) bool {
	return p.Row >= 0 && p.Row < side && p.Col >= 0 && p.Col < side
}

func (p Position) String() string {
	return fmt.Sprintf("(%d,%d)", p.Row, p.Col)
}

func (p Position) offset(d Position, steps int) Position {
	return Position{Row: p.Row + d.Row*steps, Col: p.Col + d.Col*steps}
}

// Diagonals returns the in-bounds diagonal neighbours of p. Calling it on an
// invalid position is a caller bug and panics.
func (p Position) Diagonals(side int) []Position {
	if !p.IsValid(side) {
		panic(fmt.Sprintf("trying to get diagonals of invalid position %s", p))
	}
	diagonals := make([]Position, 0, len(diagonalOffsets))
	for _, d := range diagonalOffsets {
		if next := p.offset(d, 1); next.IsValid(side) {
			diagonals = append(diagonals, next)
		}
	}
	return diagonals
}
