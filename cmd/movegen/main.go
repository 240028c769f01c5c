// Command movegen prints the moves available to one square of the starting
// position.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/benbeisheim/checkers-backend/internal/model"
	"github.com/davecgh/go-spew/spew"
)

func main() {
	row := flag.Int("row", 2, "row of the square to query")
	col := flag.Int("col", 3, "column of the square to query")
	flag.Parse()

	pos := model.NewPosition(*row, *col)
	if !pos.IsValid(model.BoardSide) {
		fmt.Fprintf(os.Stderr, "position %s is off the board\n", pos)
		os.Exit(2)
	}

	board := model.NewBoard()
	regularMoves, _ := board.RegularMoves(pos)
	captureMoves, _ := board.CaptureMoves(pos)

	spew.Dump(regularMoves)
	spew.Dump(captureMoves)
}
