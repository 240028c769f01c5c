package model

type Player string

const (
	PlayerBlack Player = "black"
	PlayerWhite Player = "white"
)

func (p Player) Valid() bool {
	return p == PlayerBlack || p == PlayerWhite
}

func (p Player) Opponent() Player {
	if p == PlayerBlack {
		return PlayerWhite
	}
	return PlayerBlack
}

// IsForwardMove reports whether going from src to dst heads toward the
// opponent's side: increasing rows for black, decreasing rows for white.
func (p Player) IsForwardMove(src, dst Position) bool {
	switch p {
	case PlayerBlack:
		return dst.Row > src.Row
	case PlayerWhite:
		return dst.Row < src.Row
	}
	return false
}

type Piece struct {
	Player Player `json:"player"`
	King   bool   `json:"king"`
}

func NewPiece(player Player) Piece {
	return Piece{Player: player}
}

// NewKing is for setting up positions; nothing in this package promotes a man.
func NewKing(player Player) Piece {
	return Piece{Player: player, King: true}
}
